package summary

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Suffix identifies meeting-summary text files inside a watched directory.
const Suffix = ".txt"

var (
	// Producers name files either date_time or date-only. Try the more
	// specific pattern first so "2024-03-01_10-30" is not truncated.
	dateTimePattern = regexp.MustCompile(`\d{4}-\d{2}-\d{2}_\d{2}-\d{2}`)
	datePattern     = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
)

// Source is one meeting-summary source: a text blob plus the name it was
// published under. The name is only used to derive the source timestamp.
type Source struct {
	Name string
	Text string
}

// Timestamp extracts the timestamp token from the source name.
// Returns "" when the name carries none; callers degrade to the
// unknown date bucket rather than failing ingestion.
func (s Source) Timestamp() string {
	if m := dateTimePattern.FindString(s.Name); m != "" {
		return m
	}
	return datePattern.FindString(s.Name)
}

// ReadFile loads one summary file as a Source named after its base name.
func ReadFile(path string) (Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Source{}, fmt.Errorf("reading summary %s: %w", path, err)
	}
	return Source{Name: filepath.Base(path), Text: string(data)}, nil
}

// LoadDir loads every summary file in a directory, sorted by name.
// Subdirectories are not descended into.
func LoadDir(dir string) ([]Source, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scanning summary directory %s: %w", dir, err)
	}

	var sources []Source
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), Suffix) {
			continue
		}
		src, err := ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	return sources, nil
}
