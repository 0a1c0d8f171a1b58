// Package summary turns raw meeting-summary files into parsed utterances.
//
// A summary file holds one utterance per line in the form
//
//	Name - what they reported
//
// and is named after the meeting date (2024-03-01) or date and time
// (2024-03-01_10-30). The package extracts the timestamp from the file
// name and splits the text into lines the ingestion pipeline can turn
// into documents. Parsing never fails; malformed lines are dropped.
package summary
