package db

// Term is an exact-match filter on a keyword field.
type Term struct {
	Field string
	Value string
}

// TextQuery is the input for full-text search.
type TextQuery struct {
	IndexName string
	Query     string
	// Fields are the text fields the query is matched against.
	Fields []string
	// Filters restrict hits without affecting their score.
	Filters      []Term
	Size         int
	ReturnFields []string
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	ID     string
	Score  float64
	Fields map[string]string
}
