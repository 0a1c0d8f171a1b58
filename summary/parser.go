package summary

import "strings"

// Delimiter separates the discarded speaker/role label from the retained
// utterance. Only the first occurrence splits; later dashes stay in the text.
const Delimiter = "-"

// Line is one parsed utterance. Index is the 0-based position of the line
// in the source, counting skipped lines, so identifier suffixes stay stable
// across re-ingestion regardless of how many lines were dropped before it.
type Line struct {
	Index int
	Text  string
}

// ParseLines splits a source text into utterances, one per input line.
//
// Lines that are blank, carry no delimiter, or are empty once the label
// and surrounding whitespace are stripped, are silently dropped. Dropping
// one line never affects the lines after it. Malformed lines never produce
// an error; they are not the caller's problem.
func ParseLines(text string) []Line {
	var lines []Line

	// No line-length limit: an oversized line parses like any other.
	for idx, raw := range strings.Split(text, "\n") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		_, content, found := strings.Cut(raw, Delimiter)
		if !found {
			continue
		}

		content = strings.TrimSpace(content)
		if content == "" {
			continue
		}

		lines = append(lines, Line{Index: idx, Text: content})
	}

	return lines
}
