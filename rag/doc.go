// Package rag assembles retrieved meeting context into prompts and produces
// grounded answers through an LLM generator.
//
// The Answerer type is the question-answering entry point. It separates two
// failure domains: retrieval errors abort the call, while generation errors
// are carried inside the Result together with the retrieved context, so a
// serving layer can degrade to a fallback message without losing the
// evidence it already gathered.
package rag
