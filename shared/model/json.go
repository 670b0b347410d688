package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

var errUnsupportedScan = errors.New("unsupported scan source")

// StringList is a []string stored as a JSONB array.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}

	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal string list: %w", err)
	}

	return b, nil
}

func (l *StringList) Scan(src any) error {
	raw, err := scanBytes(src)
	if err != nil || raw == nil {
		*l = nil

		return err
	}

	return json.Unmarshal(raw, (*[]string)(l))
}

// JSONMap is a free-form object stored as JSONB.
type JSONMap map[string]any

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}

	b, err := json.Marshal(map[string]any(m))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal json map: %w", err)
	}

	return b, nil
}

func (m *JSONMap) Scan(src any) error {
	raw, err := scanBytes(src)
	if err != nil || raw == nil {
		*m = nil

		return err
	}

	return json.Unmarshal(raw, (*map[string]any)(m))
}

func scanBytes(src any) ([]byte, error) {
	switch v := src.(type) {
	case nil:
		return nil, nil
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("%w: %T", errUnsupportedScan, src)
	}
}
