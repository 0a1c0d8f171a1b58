// Copyright 2025 The Aigent Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package storage provides the storage abstraction layer for Aigent.
//
// This package defines the repository interface that decouples the storage
// implementation from the ingestion and retrieval logic, so the badger
// backend can be swapped for an in-memory implementation in tests.
//
// # Upsert semantics
//
// The document store is keyed by the deterministic document ID. Writing an
// ID that already exists replaces the stored text, vector, and date; it
// never fails and never duplicates. Re-ingesting an unchanged source is
// therefore a no-op from the store's point of view.
//
// # Embedding precondition
//
// Every stored vector must come from the same embedding function that is
// used at query time. Mixing embedding models across the store's lifetime
// silently corrupts similarity results; the store does not guard against
// it. Use the reembed command after switching models.
//
// # Thread safety
//
// All repository implementations must be safe for concurrent use. Writes
// go through badger transactions; a query that races an upsert observes
// the document either before or after the write, with no torn reads.
package storage
