package repository

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// tagList stores string slices as a JSON text column so the schema stays
// identical across sqlite and postgres.
type tagList []string

func (t tagList) Value() (driver.Value, error) {
	if len(t) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal([]string(t))
	if err != nil {
		return nil, fmt.Errorf("marshal tags: %w", err)
	}
	return string(b), nil
}

func (t *tagList) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*t = nil
		return nil
	case []byte:
		return t.unmarshal(v)
	case string:
		return t.unmarshal([]byte(v))
	default:
		return fmt.Errorf("scan tags: unsupported type %T", src)
	}
}

func (t *tagList) unmarshal(b []byte) error {
	if len(b) == 0 {
		*t = nil
		return nil
	}
	var tags []string
	if err := json.Unmarshal(b, &tags); err != nil {
		return fmt.Errorf("unmarshal tags: %w", err)
	}
	*t = tags
	return nil
}
