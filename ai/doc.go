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


// Package ai provides abstractions for the AI services used by Aigent.
//
// Two capabilities are defined: Embedder turns text into vectors for the
// document store, and Generator turns an assembled RAG prompt into answer
// text. Provider aggregates both behind one lifecycle.
//
// # Implementation Packages
//
//   - ai/openai: production implementation against OpenAI-compatible APIs
//     (OpenAI, Ollama, LocalAI, vLLM) via langchaingo
//   - ai/mock: deterministic test doubles with no external dependencies
//
// Public constructors return interface types (openai.NewProvider returns
// ai.Provider) to keep callers decoupled from the backing service; mock
// constructors return concrete types so tests can inject behavior and
// inspect call counts.
package ai
