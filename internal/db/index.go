package db

import (
	"errors"
	"strconv"
)

// IndexFieldType enumerates supported index field kinds.
type IndexFieldType int

const (
	// IndexFieldText is analyzed full-text.
	IndexFieldText IndexFieldType = iota
	// IndexFieldKeyword is matched exactly, never analyzed.
	IndexFieldKeyword
)

func (t IndexFieldType) String() string {
	switch t {
	case IndexFieldText:
		return "text"
	case IndexFieldKeyword:
		return "keyword"
	default:
		return "unknown"
	}
}

// IndexField describes a single field in an index schema.
type IndexField struct {
	Name string
	Type IndexFieldType
}

// IndexDefinition is a complete index definition used by CreateIndex.
type IndexDefinition struct {
	Name string
	// Prefixes limit which keys a hash-backed engine indexes.
	// Empty means KeyPrefix(Name). Ignored by document engines.
	Prefixes []string
	Fields   []IndexField
}

// Validate checks that the index definition is well-formed.
func (idx *IndexDefinition) Validate() error {
	if idx.Name == "" {
		return errors.New("index name is required")
	}
	if !IsValidIndexName(idx.Name) {
		return errors.New("index name contains invalid characters")
	}
	if len(idx.Fields) == 0 {
		return errors.New("at least one field is required")
	}

	seen := make(map[string]bool)
	for i := range idx.Fields {
		f := &idx.Fields[i]
		if f.Name == "" {
			return errors.New("field name is required at index " + strconv.Itoa(i))
		}
		if seen[f.Name] {
			return errors.New("duplicate field name: " + f.Name)
		}
		seen[f.Name] = true
	}

	return nil
}

// KeyPrefix is the key prefix under which hash-backed engines store
// the documents of the named index.
func KeyPrefix(index string) string {
	return index + ":"
}

// IsValidIndexName returns true if s matches [a-z0-9_-]+ and does not start
// with '-' or '_'. The rule is the intersection of what Elasticsearch and
// the Redis Query Engine accept.
func IsValidIndexName(s string) bool {
	if s == "" || s[0] == '-' || s[0] == '_' {
		return false
	}
	for _, r := range s {
		isLower := r >= 'a' && r <= 'z'
		isDigit := r >= '0' && r <= '9'
		if !isLower && !isDigit && r != '_' && r != '-' {
			return false
		}
	}
	return true
}
