package usecase

import (
	"context"
	"strings"
	"time"

	"health-connect-api/internal/converter"
	"health-connect-api/internal/delivery/dto"
	"health-connect-api/internal/delivery/http/middleware"
	"health-connect-api/internal/domain/repository"
	"health-connect-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type PatientProfileUsecase interface {
	GetMyProfile(ctx context.Context, userID uuid.UUID) (*dto.PatientResponse, error)
	UpdateMyProfile(ctx context.Context, userID uuid.UUID, req *dto.PatientUpdateSelfRequest) (*dto.PatientResponse, error)
	GetPatient(ctx context.Context, userID uuid.UUID) (*dto.PatientResponse, error)
	GetAllPatients(ctx context.Context) ([]dto.PatientResponse, error)
}

type patientProfileUsecase struct {
	db                 repository.Transactor
	log                *logrus.Logger
	validate           *validator.CustomValidator
	patientProfileRepo repository.PatientProfileRepository
}

func NewPatientProfileUsecase(
	db repository.Transactor,
	log *logrus.Logger,
	validate *validator.CustomValidator,
	patientProfileRepo repository.PatientProfileRepository,
) PatientProfileUsecase {
	return &patientProfileUsecase{
		db:                 db,
		log:                log,
		validate:           validate,
		patientProfileRepo: patientProfileRepo,
	}
}

func (u *patientProfileUsecase) GetMyProfile(ctx context.Context, userID uuid.UUID) (*dto.PatientResponse, error) {
	return u.GetPatient(ctx, userID)
}

func (u *patientProfileUsecase) GetPatient(ctx context.Context, userID uuid.UUID) (*dto.PatientResponse, error) {
	profile, err := u.patientProfileRepo.FindByUserID(ctx, u.db.DB(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find patient profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrPatientNotFound
	}

	return converter.PatientProfileToResponse(profile, &profile.User, middleware.GetMediaBaseFromContext(ctx)), nil
}

func (u *patientProfileUsecase) GetAllPatients(ctx context.Context) ([]dto.PatientResponse, error) {
	profiles, err := u.patientProfileRepo.FindAll(ctx, u.db.DB(ctx))
	if err != nil {
		u.log.Warnf("Failed to find all patient profiles: %+v", err)
		return nil, err
	}

	return converter.PatientProfilesToResponses(profiles, middleware.GetMediaBaseFromContext(ctx)), nil
}

func (u *patientProfileUsecase) UpdateMyProfile(ctx context.Context, userID uuid.UUID, req *dto.PatientUpdateSelfRequest) (*dto.PatientResponse, error) {
	verr := NewValidationError()
	if err := u.validate.Validate(req); err != nil {
		formatted := u.validate.FormatValidationErrors(err)
		if len(formatted) == 0 {
			return nil, err
		}
		verr.Merge(formatted)
	}

	// An empty date clears it; anything else must parse.
	var dob *time.Time
	if req.DateOfBirth != nil {
		if raw := strings.TrimSpace(*req.DateOfBirth); raw != "" {
			parsed, err := time.Parse(validator.DateLayout, raw)
			if err != nil {
				verr.Add("date_of_birth", MsgInvalidDate)
			} else {
				dob = &parsed
			}
		}
	}
	if !verr.Empty() {
		return nil, verr
	}

	var updated *dto.PatientResponse
	err := u.db.WithinTransaction(ctx, func(tx *gorm.DB) error {
		profile, err := u.patientProfileRepo.FindByUserID(ctx, tx, userID)
		if err != nil {
			u.log.Warnf("Failed to find patient profile: %+v", err)
			return err
		}
		if profile == nil {
			return ErrPatientNotFound
		}

		if req.MedicalHistory != nil {
			profile.MedicalHistory = *req.MedicalHistory
		}
		if req.Allergies != nil {
			profile.Allergies = *req.Allergies
		}
		if req.EmergencyContact != nil {
			profile.EmergencyContact = *req.EmergencyContact
		}
		if req.PhoneNumber != nil {
			profile.PhoneNumber = *req.PhoneNumber
		}
		if req.DateOfBirth != nil {
			profile.DateOfBirth = dob
		}

		if err := u.patientProfileRepo.Update(ctx, tx, profile); err != nil {
			if v := storeViolation(err); v != nil {
				return v
			}
			u.log.Warnf("Failed to update patient profile: %+v", err)
			return err
		}

		updated = converter.PatientProfileToResponse(profile, &profile.User, middleware.GetMediaBaseFromContext(ctx))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}
