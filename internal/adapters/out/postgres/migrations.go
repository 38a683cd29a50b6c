package postgres

import (
	"pressing/internal/adapters/out/postgres/fulfillerrepo"
	"pressing/internal/adapters/out/postgres/orderrepo"
	"pressing/internal/adapters/out/postgres/outboxrepo"
	"pressing/internal/adapters/out/postgres/promorepo"
	"pressing/internal/adapters/out/postgres/webhookrepo"

	"gorm.io/gorm"
)

// MigrateSchema creates or updates every table the adapters persist to.
// The promo repository adds its partial unique index on top, which
// AutoMigrate cannot express.
func MigrateSchema(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&promorepo.PromoCodeDTO{},
		&promorepo.UsageDTO{},
		&fulfillerrepo.WasherDTO{},
		&fulfillerrepo.PartnerDTO{},
		&webhookrepo.ProcessedEventDTO{},
		&outboxrepo.MessageDTO{},
	); err != nil {
		return err
	}

	return promorepo.Migrate(db)
}
