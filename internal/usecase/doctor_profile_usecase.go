package usecase

import (
	"context"

	"health-connect-api/internal/converter"
	"health-connect-api/internal/delivery/dto"
	"health-connect-api/internal/delivery/http/middleware"
	"health-connect-api/internal/domain/repository"
	"health-connect-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type DoctorProfileUsecase interface {
	GetMyProfile(ctx context.Context, userID uuid.UUID) (*dto.DoctorResponse, error)
	// UpdateMyProfile applies a partial update. Verification status cannot
	// be changed here.
	UpdateMyProfile(ctx context.Context, userID uuid.UUID, req *dto.DoctorUpdateSelfRequest) (*dto.DoctorResponse, error)
	GetDoctor(ctx context.Context, userID uuid.UUID) (*dto.DoctorResponse, error)
	GetAllDoctors(ctx context.Context) ([]dto.DoctorResponse, error)
	GetVerifiedDoctors(ctx context.Context) ([]dto.DoctorResponse, error)
}

type doctorProfileUsecase struct {
	db                repository.Transactor
	log               *logrus.Logger
	validate          *validator.CustomValidator
	doctorProfileRepo repository.DoctorProfileRepository
}

func NewDoctorProfileUsecase(
	db repository.Transactor,
	log *logrus.Logger,
	validate *validator.CustomValidator,
	doctorProfileRepo repository.DoctorProfileRepository,
) DoctorProfileUsecase {
	return &doctorProfileUsecase{
		db:                db,
		log:               log,
		validate:          validate,
		doctorProfileRepo: doctorProfileRepo,
	}
}

func (u *doctorProfileUsecase) GetMyProfile(ctx context.Context, userID uuid.UUID) (*dto.DoctorResponse, error) {
	return u.GetDoctor(ctx, userID)
}

func (u *doctorProfileUsecase) GetDoctor(ctx context.Context, userID uuid.UUID) (*dto.DoctorResponse, error) {
	profile, err := u.doctorProfileRepo.FindByUserID(ctx, u.db.DB(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDoctorNotFound
	}

	return converter.DoctorProfileToResponse(profile, &profile.User, middleware.GetMediaBaseFromContext(ctx)), nil
}

func (u *doctorProfileUsecase) GetAllDoctors(ctx context.Context) ([]dto.DoctorResponse, error) {
	profiles, err := u.doctorProfileRepo.FindAll(ctx, u.db.DB(ctx))
	if err != nil {
		u.log.Warnf("Failed to find all doctor profiles: %+v", err)
		return nil, err
	}

	return converter.DoctorProfilesToResponses(profiles, middleware.GetMediaBaseFromContext(ctx)), nil
}

func (u *doctorProfileUsecase) GetVerifiedDoctors(ctx context.Context) ([]dto.DoctorResponse, error) {
	profiles, err := u.doctorProfileRepo.FindVerified(ctx, u.db.DB(ctx))
	if err != nil {
		u.log.Warnf("Failed to find verified doctor profiles: %+v", err)
		return nil, err
	}

	return converter.DoctorProfilesToResponses(profiles, middleware.GetMediaBaseFromContext(ctx)), nil
}

func (u *doctorProfileUsecase) UpdateMyProfile(ctx context.Context, userID uuid.UUID, req *dto.DoctorUpdateSelfRequest) (*dto.DoctorResponse, error) {
	if err := u.validate.Validate(req); err != nil {
		formatted := u.validate.FormatValidationErrors(err)
		if len(formatted) == 0 {
			return nil, err
		}
		verr := NewValidationError()
		verr.Merge(formatted)
		return nil, verr
	}

	var updated *dto.DoctorResponse
	err := u.db.WithinTransaction(ctx, func(tx *gorm.DB) error {
		profile, err := u.doctorProfileRepo.FindByUserID(ctx, tx, userID)
		if err != nil {
			u.log.Warnf("Failed to find doctor profile: %+v", err)
			return err
		}
		if profile == nil {
			return ErrDoctorNotFound
		}

		if req.LicenseNumber != nil && *req.LicenseNumber != profile.LicenseNumber {
			taken, err := u.doctorProfileRepo.ExistsByLicenseNumber(ctx, tx, *req.LicenseNumber, userID)
			if err != nil {
				u.log.Warnf("Failed to check license number: %+v", err)
				return err
			}
			if taken {
				return fieldError("license_number", MsgLicenseTaken)
			}
			profile.LicenseNumber = *req.LicenseNumber
		}
		if req.Specialization != nil {
			profile.Specialization = *req.Specialization
		}
		if req.ClinicName != nil {
			profile.ClinicName = *req.ClinicName
		}
		if req.ClinicAddress != nil {
			profile.ClinicAddress = *req.ClinicAddress
		}
		if req.PhoneNumber != nil {
			profile.PhoneNumber = *req.PhoneNumber
		}
		if req.ExperienceYears != nil {
			profile.ExperienceYears = *req.ExperienceYears
		}
		if req.Bio != nil {
			profile.Bio = *req.Bio
		}

		if err := u.doctorProfileRepo.Update(ctx, tx, profile); err != nil {
			if v := storeViolation(err); v != nil {
				return v
			}
			u.log.Warnf("Failed to update doctor profile: %+v", err)
			return err
		}

		updated = converter.DoctorProfileToResponse(profile, &profile.User, middleware.GetMediaBaseFromContext(ctx))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}
