package database

import (
	"fmt"

	"gorm.io/gorm"

	"boxoffice/internal/events"
)

// tierSeatConstraint keeps seats_sold within the tier allotment even if a
// code path skips the row lock.
const tierSeatConstraint = "chk_tiers_seats_sold"

// MigrateConstraints adds constraints that AutoMigrate does not create on
// tables that already exist.
func MigrateConstraints(db *gorm.DB) error {
	if db.Dialector.Name() != "postgres" {
		// SQLite cannot add a CHECK to an existing table; new tables get it
		// from the model tag.
		return nil
	}
	if db.Migrator().HasConstraint(&events.Tier{}, tierSeatConstraint) {
		return nil
	}
	if err := db.Migrator().CreateConstraint(&events.Tier{}, tierSeatConstraint); err != nil {
		return fmt.Errorf("failed to add %s: %w", tierSeatConstraint, err)
	}
	return nil
}
