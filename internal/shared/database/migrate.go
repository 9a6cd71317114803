package database

import (
	"gorm.io/gorm"

	"boxoffice/internal/bookings"
	"boxoffice/internal/events"
	"boxoffice/internal/ledger"
	"boxoffice/internal/sponsors"
	"boxoffice/internal/users"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&sponsors.Sponsor{},
		&events.Event{},
		&events.Tier{},
		&bookings.Booking{},
		&ledger.Block{},
	)
}
