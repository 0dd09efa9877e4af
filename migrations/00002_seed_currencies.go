package migrations

import (
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigration(upSeedCurrencies, downSeedCurrencies)
}

var defaultCurrencies = []struct {
	Code string
	Name string
}{
	{"MMK", "Myanmar Kyat"},
	{"USD", "US Dollar"},
	{"SGD", "Singapore Dollar"},
	{"THB", "Thai Baht"},
}

// upSeedCurrencies is idempotent: existing rows are renamed/reactivated rather
// than duplicated.
func upSeedCurrencies(tx *sql.Tx) error {
	for _, cur := range defaultCurrencies {
		var count int
		if err := tx.QueryRow("SELECT COUNT(*) FROM currencies WHERE code = $1", cur.Code).Scan(&count); err != nil {
			return fmt.Errorf("failed to check currency %s: %w", cur.Code, err)
		}
		if count == 0 {
			_, err := tx.Exec(
				"INSERT INTO currencies (code, name, is_active) VALUES ($1, $2, true)",
				cur.Code, cur.Name,
			)
			if err != nil {
				return fmt.Errorf("failed to insert currency %s: %w", cur.Code, err)
			}
		} else {
			_, err := tx.Exec(
				"UPDATE currencies SET name = $2, is_active = true WHERE code = $1",
				cur.Code, cur.Name,
			)
			if err != nil {
				return fmt.Errorf("failed to update currency %s: %w", cur.Code, err)
			}
		}
	}
	return nil
}

func downSeedCurrencies(tx *sql.Tx) error {
	for _, cur := range defaultCurrencies {
		if _, err := tx.Exec("DELETE FROM currencies WHERE code = $1", cur.Code); err != nil {
			return fmt.Errorf("failed to delete currency %s: %w", cur.Code, err)
		}
	}
	return nil
}
