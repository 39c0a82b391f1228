package repositories

import (
	"database/sql"
	"fmt"
)

// boolToInt maps a flag onto the 0/1 column encoding used by every table.
func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

// expectAffected fails when an exec touched no rows.
func expectAffected(result sql.Result, notFound error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return notFound
	}
	return nil
}
