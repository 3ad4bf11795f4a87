package repository

import (
	"context"
	"errors"

	"health-connect-api/internal/domain/entity"
	domainRepo "health-connect-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type doctorProfileRepository struct{}

func NewDoctorProfileRepository() domainRepo.DoctorProfileRepository {
	return &doctorProfileRepository{}
}

func (r *doctorProfileRepository) Create(ctx context.Context, db *gorm.DB, profile *entity.DoctorProfile) error {
	return db.WithContext(ctx).Omit("User").Create(profile).Error
}

func (r *doctorProfileRepository) FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.DoctorProfile, error) {
	var profile entity.DoctorProfile
	err := db.WithContext(ctx).Preload("User").Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *doctorProfileRepository) FindAll(ctx context.Context, db *gorm.DB) ([]entity.DoctorProfile, error) {
	var profiles []entity.DoctorProfile
	err := db.WithContext(ctx).Preload("User").Order("created_at DESC").Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *doctorProfileRepository) FindVerified(ctx context.Context, db *gorm.DB) ([]entity.DoctorProfile, error) {
	var profiles []entity.DoctorProfile
	err := db.WithContext(ctx).Preload("User").Where("is_verified = ?", true).Order("created_at DESC").Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *doctorProfileRepository) ExistsByLicenseNumber(ctx context.Context, db *gorm.DB, licenseNumber string, excludeUserID uuid.UUID) (bool, error) {
	query := db.WithContext(ctx).Model(&entity.DoctorProfile{}).Where("license_number = ?", licenseNumber)
	if excludeUserID != uuid.Nil {
		query = query.Where("user_id <> ?", excludeUserID)
	}

	var count int64
	err := query.Count(&count).Error
	return count > 0, err
}

// Update never writes is_verified; that flag belongs to administrators.
func (r *doctorProfileRepository) Update(ctx context.Context, db *gorm.DB, profile *entity.DoctorProfile) error {
	return db.WithContext(ctx).
		Model(profile).
		Select("license_number", "specialization", "clinic_name", "clinic_address",
			"phone_number", "experience_years", "bio", "updated_at").
		Updates(profile).Error
}
