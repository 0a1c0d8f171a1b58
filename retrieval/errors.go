package retrieval

import "errors"

var (
	// ErrRepositoryRequired is returned when a document repository is not provided.
	ErrRepositoryRequired = errors.New("document repository required")

	// ErrProviderRequired is returned when an AI provider is not provided.
	ErrProviderRequired = errors.New("AI provider required")

	// ErrEmptyQuestion is returned when the question is empty or whitespace only.
	ErrEmptyQuestion = errors.New("question must not be empty")
)
