package storage

import "context"

// Store persists catalogued rule tables.
type Store interface {
	Init(ctx context.Context) error
	SaveRule(ctx context.Context, rec RuleRecord) error
	GetRule(ctx context.Context, id string) (RuleRecord, bool, error)
	// ListRules returns every record ordered by creation time, then ID.
	ListRules(ctx context.Context) ([]RuleRecord, error)
}
