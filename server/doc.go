// Package server exposes the RAG pipeline over HTTP.
//
// Endpoints:
//   - POST /rag_answer    answer a question from stored meeting context
//   - GET  /vector_check  inspect stored documents, optionally by date
//   - GET  /health        liveness probe
//
// When a static directory is configured, the web UI is served from / and
// /static/. Generation failures never surface as HTTP errors: the answer
// endpoint degrades to a fixed fallback message so clients always get a
// usable response body.
package server
