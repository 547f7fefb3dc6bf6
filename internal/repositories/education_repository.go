package repositories

import (
	"errors"

	"careassoc_backend/internal/models"

	"gorm.io/gorm"
)

var ErrEducationRecordNotFound = errors.New("education record not found")

type EducationRepository interface {
	Create(db *gorm.DB, record *models.EducationRecord) error
	Update(db *gorm.DB, record *models.EducationRecord) error
	FindByID(db *gorm.DB, id string) (*models.EducationRecord, error)
	FindByUserID(db *gorm.DB, userID string) ([]models.EducationRecord, error)
	Delete(db *gorm.DB, id string) error
}

type EducationRepositoryImpl struct{}

func NewEducationRepository() EducationRepository {
	return &EducationRepositoryImpl{}
}

func (r *EducationRepositoryImpl) Create(db *gorm.DB, record *models.EducationRecord) error {
	return db.Create(record).Error
}

func (r *EducationRepositoryImpl) Update(db *gorm.DB, record *models.EducationRecord) error {
	return db.Save(record).Error
}

func (r *EducationRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.EducationRecord, error) {
	var record models.EducationRecord
	if err := db.Preload("Documents").First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEducationRecordNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *EducationRepositoryImpl) FindByUserID(db *gorm.DB, userID string) ([]models.EducationRecord, error) {
	var records []models.EducationRecord
	if err := db.Preload("Documents").
		Where("user_id = ?", userID).
		Order("start_year DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *EducationRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Delete(&models.EducationRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEducationRecordNotFound
	}
	return nil
}
