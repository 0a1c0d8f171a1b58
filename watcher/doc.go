// Package watcher reacts to meeting summary files appearing on disk.
//
// The Watcher type monitors a single directory with fsnotify and pushes
// every newly created .txt file through the ingestion pipeline, after a
// short settle delay that lets the writing process finish. It is the
// automation layer that keeps the document store current without manual
// ingest runs.
package watcher
