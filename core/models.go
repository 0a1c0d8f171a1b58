package core

import (
	"strconv"
	"strings"
	"time"
)

// UnknownDate is the date bucket for sources whose name carries no
// extractable timestamp. All undated sources share the same identifier
// namespace (unknown_m1, unknown_m2, ...), which is an accepted limitation.
const UnknownDate = "unknown"

// Document is one retrievable utterance from a meeting summary.
// The Vector field is populated at ingestion time and replaced wholesale
// on every upsert of the same ID.
type Document struct {
	ID         string
	Date       string // ISO 8601 date (YYYY-MM-DD) or UnknownDate
	Text       string
	Vector     []float32
	InsertedAt time.Time
	UpdatedAt  time.Time
}

// SearchResult is a document match from vector similarity search.
type SearchResult struct {
	Document *Document
	Score    float32
}

// NormalizeTimestamp canonicalizes a source timestamp for identifier use.
// Date-only values (2024-03-01) are compacted to a digit run (20240301);
// composite date_time values (2024-03-01_10-30) are kept verbatim; an empty
// value falls back to UnknownDate. Identical input always yields identical
// output, which is what keeps re-ingestion idempotent.
func NormalizeTimestamp(ts string) string {
	if ts == "" {
		return UnknownDate
	}
	if strings.Contains(ts, "_") {
		return ts
	}
	return strings.ReplaceAll(ts, "-", "")
}

// DocumentID derives the stable identifier for the line at the given
// 0-based iteration index of a source with the given raw timestamp.
//
// The index counts every iterated line, including lines the parser
// skipped. Suffixes are therefore positions in the source file, not
// positions among kept records, and survive re-ingestion of the same
// content unchanged.
func DocumentID(timestamp string, lineIndex int) string {
	return NormalizeTimestamp(timestamp) + "_m" + strconv.Itoa(lineIndex+1)
}

// DateOf extracts the ISO date part of a raw source timestamp.
// "2024-03-01_10-30" and "2024-03-01" both yield "2024-03-01";
// an empty timestamp yields UnknownDate.
func DateOf(timestamp string) string {
	if timestamp == "" {
		return UnknownDate
	}
	if date, _, found := strings.Cut(timestamp, "_"); found {
		return date
	}
	return timestamp
}
