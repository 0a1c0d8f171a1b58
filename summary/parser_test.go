package summary

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLines(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []Line
	}{
		{
			name: "label stripped and content trimmed",
			text: "Kim - Handled deployment\nLee - Reviewed design\n",
			want: []Line{
				{Index: 0, Text: "Handled deployment"},
				{Index: 1, Text: "Reviewed design"},
			},
		},
		{
			name: "only first delimiter splits",
			text: "Park - Fixed off-by-one in pager\n",
			want: []Line{
				{Index: 0, Text: "Fixed off-by-one in pager"},
			},
		},
		{
			name: "skipped lines still count toward indices",
			text: "agenda without delimiter\n\nKim - Handled deployment\n",
			want: []Line{
				{Index: 2, Text: "Handled deployment"},
			},
		},
		{
			name: "blank and whitespace-only lines skipped",
			text: "\n   \nLee - Reviewed design\n",
			want: []Line{
				{Index: 2, Text: "Reviewed design"},
			},
		},
		{
			name: "delimiter with empty content skipped",
			text: "Kim -   \nLee - Reviewed design\n",
			want: []Line{
				{Index: 1, Text: "Reviewed design"},
			},
		},
		{
			name: "empty input",
			text: "",
			want: nil,
		},
		{
			name: "no valid lines",
			text: "nothing to see\nhere either\n",
			want: nil,
		},
		{
			name: "missing trailing newline",
			text: "Kim - Handled deployment",
			want: []Line{
				{Index: 0, Text: "Handled deployment"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLines(tt.text))
		})
	}
}

func TestParseLines_OversizedLine(t *testing.T) {
	// A single huge line must neither fail nor swallow the lines after it.
	huge := "Kim - " + strings.Repeat("x", 2<<20)
	lines := ParseLines(huge + "\nLee - Reviewed design\n")

	require.Len(t, lines, 2)
	assert.Equal(t, 0, lines[0].Index)
	assert.Len(t, lines[0].Text, 2<<20)
	assert.Equal(t, Line{Index: 1, Text: "Reviewed design"}, lines[1])
}

func TestParseLines_IndexStableAcrossEdits(t *testing.T) {
	// Editing an unrelated malformed line must not shift indices of
	// lines after it, since indices count every iterated line.
	before := ParseLines("preamble\nKim - Handled deployment\n")
	after := ParseLines("different preamble\nKim - Handled deployment\n")

	require.Len(t, before, 1)
	require.Len(t, after, 1)
	assert.Equal(t, before[0].Index, after[0].Index)
}

func TestSource_Timestamp(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{name: "date and time", source: "2024-03-01_10-30_meeting.txt", want: "2024-03-01_10-30"},
		{name: "date only", source: "2024-03-01_meeting.txt", want: "2024-03-01"},
		{name: "no timestamp", source: "meeting.txt", want: ""},
		{name: "timestamp mid-name", source: "team_2024-03-01_meeting.txt", want: "2024-03-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Source{Name: tt.source}.Timestamp())
		})
	}
}
