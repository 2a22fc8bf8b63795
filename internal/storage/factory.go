package storage

import (
	"fmt"
	"slices"
	"strings"
)

// NewStore returns an uninitialised store for the named backend. The empty
// kind selects the in-memory store.
func NewStore(kind, sqlitePath string) (Store, error) {
	switch kind {
	case "", "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		return NewSQLiteStore(sqlitePath), nil
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", kind)
	}
}

// DefaultStoreKind is the backend used when none is named.
func DefaultStoreKind() string { return "sqlite" }

// Persistent reports whether records saved to the named backend outlive the
// process.
func Persistent(kind string) bool {
	return kind != "" && kind != "memory"
}

// CloseIfSupported closes store when the backend holds resources.
func CloseIfSupported(store Store) error {
	closer, ok := store.(interface{ Close() error })
	if !ok {
		return nil
	}
	return closer.Close()
}

func sortRecords(recs []RuleRecord) {
	slices.SortFunc(recs, func(a, b RuleRecord) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}
