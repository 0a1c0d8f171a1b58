package watcher

import "errors"

var (
	// ErrDirectoryRequired is returned when a watch directory is not provided.
	ErrDirectoryRequired = errors.New("watch directory required")

	// ErrPipelineRequired is returned when an ingestion pipeline is not provided.
	ErrPipelineRequired = errors.New("ingestion pipeline required")
)
