package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// encodeMap stores a checklist or notes map as a JSON column; empty maps are NULL.
func encodeMap[V any](m map[string]V) (sql.NullString, error) {
	if len(m) == 0 {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("marshal map column: %w", err)
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

func decodeMap[V any](col sql.NullString) (map[string]V, error) {
	if !col.Valid || col.String == "" {
		return nil, nil
	}
	var m map[string]V
	if err := json.Unmarshal([]byte(col.String), &m); err != nil {
		return nil, fmt.Errorf("unmarshal map column: %w", err)
	}
	return m, nil
}
