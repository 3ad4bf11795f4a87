package repository

import (
	"context"

	"health-connect-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorProfileRepository interface {
	Create(ctx context.Context, db *gorm.DB, profile *entity.DoctorProfile) error
	FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.DoctorProfile, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]entity.DoctorProfile, error)
	FindVerified(ctx context.Context, db *gorm.DB) ([]entity.DoctorProfile, error)
	// ExistsByLicenseNumber reports whether another doctor holds the license.
	// excludeUserID may be uuid.Nil.
	ExistsByLicenseNumber(ctx context.Context, db *gorm.DB, licenseNumber string, excludeUserID uuid.UUID) (bool, error)
	Update(ctx context.Context, db *gorm.DB, profile *entity.DoctorProfile) error
}
