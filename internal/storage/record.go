package storage

import (
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"

	"rulelab/internal/rule"
)

// RuleRecord is one catalogued rule table. Index holds the decimal rule
// index so tables of any size survive the round trip.
type RuleRecord struct {
	SchemaVersion int       `json:"schema_version"`
	CodecVersion  int       `json:"codec_version"`
	ID            string    `json:"id"`
	Base          int       `json:"base"`
	Width         int       `json:"width"`
	Index         string    `json:"index"`
	Label         string    `json:"label,omitempty"`
	Seed          int64     `json:"seed,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewRuleRecord describes t under a fresh ID.
func NewRuleRecord(t *rule.Table, label string, seed int64) RuleRecord {
	return RuleRecord{
		SchemaVersion: CurrentSchemaVersion,
		CodecVersion:  CurrentCodecVersion,
		ID:            uuid.NewString(),
		Base:          t.Base(),
		Width:         t.Width(),
		Index:         t.String(),
		Label:         label,
		Seed:          seed,
		CreatedAt:     time.Now().UTC(),
	}
}

// Table rebuilds the rule table the record describes.
func (r RuleRecord) Table() (*rule.Table, error) {
	idx, ok := new(big.Int).SetString(r.Index, 10)
	if !ok {
		return nil, fmt.Errorf("record %s: %w: %q", r.ID, rule.ErrInvalidIndex, r.Index)
	}
	return rule.New(r.Base, r.Width, idx)
}
