package database

import (
	"careassoc_backend/internal/models"

	"gorm.io/gorm"
)

// Migrate applies the schema. uuid-ossp provides uuid_generate_v4 for the
// primary key defaults.
func Migrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return err
	}

	return db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Profile{},
		&models.CaregiverProfile{},
		&models.InstitutionProfile{},
		&models.EducationRecord{},
		&models.Document{},
	)
}
