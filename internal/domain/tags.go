package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Tags is an optional list of labels attached to a question.
//
// It is stored as a JSON array in a text column so the schema is identical on
// SQLite and PostgreSQL. A nil Tags is stored as NULL and serialized as JSON
// null; an empty, non-nil Tags round-trips as [].
type Tags []string

// Value implements driver.Valuer.
func (t Tags) Value() (driver.Value, error) {
	if t == nil {
		return nil, nil
	}
	b, err := json.Marshal([]string(t))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (t *Tags) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*t = nil
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("tags: unsupported column type %T", src)
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("tags: %w", err)
	}
	*t = out
	return nil
}
