package storage

import (
	"encoding/json"
	"errors"
)

const (
	CurrentSchemaVersion = 1
	CurrentCodecVersion  = 1
)

// ErrVersionMismatch reports a record written with another schema or codec.
var ErrVersionMismatch = errors.New("record version mismatch")

// EncodeRule serialises a record as JSON.
func EncodeRule(r RuleRecord) ([]byte, error) {
	return json.Marshal(r)
}

// DecodeRule parses a JSON record and rejects unknown schema or codec versions.
func DecodeRule(data []byte) (RuleRecord, error) {
	var rec RuleRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return RuleRecord{}, err
	}
	if err := checkVersion(rec); err != nil {
		return RuleRecord{}, err
	}
	return rec, nil
}

func checkVersion(r RuleRecord) error {
	if r.SchemaVersion != CurrentSchemaVersion || r.CodecVersion != CurrentCodecVersion {
		return ErrVersionMismatch
	}
	return nil
}
