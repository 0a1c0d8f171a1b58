package badger

// Key prefixes for different data types. The record prefix ends with the
// separator so that prefix iteration over records never picks up index keys.
const (
	documentKeyPrefix  = "metdoc:"
	documentDatePrefix = "metdocd:"
)

// makeDocumentKey generates a key for a document by ID.
func makeDocumentKey(id string) []byte {
	return []byte(documentKeyPrefix + id)
}

// makeDocumentDateKey generates a composite key for the date index.
// Format: prefix + date + ":" + id. Dates are ISO strings, so
// lexicographic key order is chronological order.
func makeDocumentDateKey(date, id string) []byte {
	return []byte(documentDatePrefix + date + ":" + id)
}

// makePartialDateKey generates the key prefix covering one date bucket.
func makePartialDateKey(date string) []byte {
	return []byte(documentDatePrefix + date + ":")
}
