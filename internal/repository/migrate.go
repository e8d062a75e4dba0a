package repository

import (
	"gorm.io/gorm"
)

// Migrate creates the schema. On PostgreSQL it also installs an exclusion
// constraint so two active bookings for one room can never hold intersecting
// time ranges, even if a future code path skips the transactional check.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&userModel{},
		&roomModel{},
		&bookingModel{},
		&verificationTokenModel{},
	); err != nil {
		return err
	}

	if db.Dialector.Name() != "postgres" {
		return nil
	}

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		return err
	}
	return db.Exec(`
		DO $$
		BEGIN
			IF NOT EXISTS (
				SELECT 1 FROM pg_constraint WHERE conname = 'bookings_no_room_overlap'
			) THEN
				ALTER TABLE bookings ADD CONSTRAINT bookings_no_room_overlap
					EXCLUDE USING gist (
						room_id WITH =,
						tsrange(start_time, end_time, '[)') WITH &&
					) WHERE (status = 'active');
			END IF;
		END
		$$;
	`).Error
}
