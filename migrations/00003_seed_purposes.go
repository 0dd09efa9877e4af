package migrations

import (
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigration(upSeedPurposes, downSeedPurposes)
}

var defaultPurposes = []string{
	"General Donation",
	"Medical Aid",
	"Education Support",
	"Emergency Relief",
}

func upSeedPurposes(tx *sql.Tx) error {
	for _, name := range defaultPurposes {
		var count int
		if err := tx.QueryRow("SELECT COUNT(*) FROM purposes WHERE name = $1", name).Scan(&count); err != nil {
			return fmt.Errorf("failed to check purpose %s: %w", name, err)
		}
		if count == 0 {
			if _, err := tx.Exec("INSERT INTO purposes (name, is_active) VALUES ($1, true)", name); err != nil {
				return fmt.Errorf("failed to insert purpose %s: %w", name, err)
			}
		} else {
			if _, err := tx.Exec("UPDATE purposes SET is_active = true WHERE name = $1", name); err != nil {
				return fmt.Errorf("failed to reactivate purpose %s: %w", name, err)
			}
		}
	}
	return nil
}

func downSeedPurposes(tx *sql.Tx) error {
	for _, name := range defaultPurposes {
		if _, err := tx.Exec("DELETE FROM purposes WHERE name = $1", name); err != nil {
			return fmt.Errorf("failed to delete purpose %s: %w", name, err)
		}
	}
	return nil
}
