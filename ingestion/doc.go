// Package ingestion provides pipeline orchestration for meeting summaries.
//
// The Pipeline type manages the ingestion workflow for one or many summary
// sources, including:
//   - Parsing per-line utterances out of the raw text
//   - Deriving stable document identifiers from timestamp and line position
//   - Generating embeddings for the batch
//   - Upserting the batch into the document store in one call per source
//
// Two call patterns are supported: incremental (a single newly appeared
// source, typically from the directory watcher) and bulk (re-ingesting all
// known sources over a worker pool, relying on upsert idempotence).
package ingestion
