// Package retrieval provides semantic retrieval over stored meeting documents.
//
// The Retriever type embeds an incoming question with the same embedding
// model used during ingestion and ranks stored documents by cosine
// similarity. Callers can ask for scored results (Search) or just the
// document texts in relevance order (RetrieveContext), which is the form
// consumed by answer generation.
package retrieval
