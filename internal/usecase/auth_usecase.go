package usecase

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"health-connect-api/internal/converter"
	"health-connect-api/internal/delivery/dto"
	"health-connect-api/internal/delivery/http/middleware"
	"health-connect-api/internal/domain/entity"
	"health-connect-api/internal/domain/repository"
	"health-connect-api/internal/normalizer"
	"health-connect-api/internal/service"
	"health-connect-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const loginSuccessMessage = "Login successful"

type AuthUsecase interface {
	// Register creates an account and its role profile from a raw signup
	// submission. An empty role registers a patient.
	Register(ctx context.Context, role string, fields map[string]interface{}) (*dto.SignupResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
}

type authUsecase struct {
	db                 repository.Transactor
	log                *logrus.Logger
	validate           *validator.CustomValidator
	userRepo           repository.UserRepository
	patientProfileRepo repository.PatientProfileRepository
	doctorProfileRepo  repository.DoctorProfileRepository
	tokenService       service.TokenService
	bcryptCost         int

	dummyOnce sync.Once
	dummyHash []byte
}

func NewAuthUsecase(
	db repository.Transactor,
	log *logrus.Logger,
	validate *validator.CustomValidator,
	userRepo repository.UserRepository,
	patientProfileRepo repository.PatientProfileRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	tokenService service.TokenService,
	bcryptCost int,
) AuthUsecase {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &authUsecase{
		db:                 db,
		log:                log,
		validate:           validate,
		userRepo:           userRepo,
		patientProfileRepo: patientProfileRepo,
		doctorProfileRepo:  doctorProfileRepo,
		tokenService:       tokenService,
		bcryptCost:         bcryptCost,
	}
}

func (u *authUsecase) Register(ctx context.Context, role string, fields map[string]interface{}) (*dto.SignupResponse, error) {
	userType := entity.UserType(strings.TrimSpace(role))
	if userType == "" {
		userType = entity.UserTypePatient
	}
	if !userType.Valid() {
		return nil, ErrInvalidRole
	}

	data := normalizer.Normalize(fields)

	var (
		account *dto.RegisterRequest
		target  interface{}
		patient dto.RegisterPatientRequest
		doctor  dto.RegisterDoctorRequest
	)
	if userType == entity.UserTypeDoctor {
		account, target = &doctor.RegisterRequest, &doctor
	} else {
		account, target = &patient.RegisterRequest, &patient
	}

	if err := normalizer.Decode(data, target); err != nil {
		return nil, fieldError(NonFieldErrorsKey, MsgInvalidInput)
	}

	verr := NewValidationError()
	if err := u.validate.Validate(target); err != nil {
		formatted := u.validate.FormatValidationErrors(err)
		if len(formatted) == 0 {
			u.log.Warnf("Failed to validate signup: %+v", err)
			return nil, err
		}
		verr.Merge(formatted)
	}
	if confirm, ok := data["confirm_password"]; ok && confirm != nil && cast.ToString(confirm) != account.Password {
		verr.Add("confirm_password", MsgPasswordMismatch)
	}
	if !verr.Empty() {
		return nil, verr
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(account.Password), u.bcryptCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	user := &entity.User{
		ID:             uuid.New(),
		Username:       account.Username,
		Email:          normalizeEmail(account.Email),
		Password:       string(hashedPassword),
		FirstName:      account.FirstName,
		LastName:       account.LastName,
		UserType:       userType,
		AddressLine1:   account.AddressLine1,
		City:           account.City,
		State:          account.State,
		Pincode:        account.Pincode,
		ProfilePicture: account.ProfilePicture,
		IsActive:       true,
	}

	var (
		patientProfile *entity.PatientProfile
		doctorProfile  *entity.DoctorProfile
	)
	if userType == entity.UserTypeDoctor {
		// Validation already accepted experience_years and date_of_birth.
		experience, _ := strconv.Atoi(strings.TrimSpace(doctor.ExperienceYears))
		doctorProfile = &entity.DoctorProfile{
			UserID:          user.ID,
			LicenseNumber:   doctor.LicenseNumber,
			Specialization:  doctor.Specialization,
			ClinicName:      doctor.ClinicName,
			ClinicAddress:   doctor.ClinicAddress,
			PhoneNumber:     doctor.PhoneNumber,
			ExperienceYears: experience,
			Bio:             doctor.Bio,
		}
	} else {
		var dob *time.Time
		if patient.DateOfBirth != nil {
			parsed, _ := time.Parse(validator.DateLayout, *patient.DateOfBirth)
			dob = &parsed
		}
		patientProfile = &entity.PatientProfile{
			UserID:           user.ID,
			MedicalHistory:   patient.MedicalHistory,
			Allergies:        patient.Allergies,
			EmergencyContact: patient.EmergencyContact,
			PhoneNumber:      patient.PhoneNumber,
			DateOfBirth:      dob,
		}
	}

	err = u.db.WithinTransaction(ctx, func(tx *gorm.DB) error {
		taken := NewValidationError()

		exists, err := u.userRepo.ExistsByUsername(ctx, tx, user.Username)
		if err != nil {
			u.log.Warnf("Failed to check username: %+v", err)
			return err
		}
		if exists {
			taken.Add("username", MsgUsernameTaken)
		}

		exists, err = u.userRepo.ExistsByEmail(ctx, tx, user.Email)
		if err != nil {
			u.log.Warnf("Failed to check email: %+v", err)
			return err
		}
		if exists {
			taken.Add("email", MsgEmailTaken)
		}

		if doctorProfile != nil {
			exists, err = u.doctorProfileRepo.ExistsByLicenseNumber(ctx, tx, doctorProfile.LicenseNumber, uuid.Nil)
			if err != nil {
				u.log.Warnf("Failed to check license number: %+v", err)
				return err
			}
			if exists {
				taken.Add("license_number", MsgLicenseTaken)
			}
		}

		if !taken.Empty() {
			return taken
		}

		if err := u.userRepo.Create(ctx, tx, user); err != nil {
			if v := storeViolation(err); v != nil {
				return v
			}
			u.log.Warnf("Failed to create user: %+v", err)
			return err
		}

		if doctorProfile != nil {
			err = u.doctorProfileRepo.Create(ctx, tx, doctorProfile)
		} else {
			err = u.patientProfileRepo.Create(ctx, tx, patientProfile)
		}
		if err != nil {
			if v := storeViolation(err); v != nil {
				return v
			}
			u.log.Warnf("Failed to create %s profile: %+v", userType, err)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	token, err := u.tokenService.FetchOrCreate(ctx, user.ID)
	if err != nil {
		u.log.Warnf("Failed to issue token: %+v", err)
		return nil, err
	}

	mediaBase := middleware.GetMediaBaseFromContext(ctx)
	resp := &dto.SignupResponse{
		Token:    token,
		User:     *converter.UserToResponse(user, mediaBase),
		UserType: userType.String(),
	}
	if doctorProfile != nil {
		resp.Doctor = converter.DoctorProfileToResponse(doctorProfile, user, mediaBase)
	} else {
		resp.Patient = converter.PatientProfileToResponse(patientProfile, user, mediaBase)
	}

	return resp, nil
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, ErrMissingCredentials
	}

	db := u.db.DB(ctx)

	// Email is the primary identifier; fall back to the username.
	byEmail, err := u.userRepo.FindByEmail(ctx, db, normalizeEmail(req.Username))
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, err
	}

	var user *entity.User
	if byEmail != nil && checkPassword(byEmail.Password, req.Password) {
		user = byEmail
	}

	if user == nil {
		byUsername, err := u.userRepo.FindByUsername(ctx, db, req.Username)
		if err != nil {
			u.log.Warnf("Failed to find user by username: %+v", err)
			return nil, err
		}
		if byUsername != nil && checkPassword(byUsername.Password, req.Password) {
			user = byUsername
		}
		if byEmail == nil && byUsername == nil {
			// Spend the same time as a real comparison.
			checkPassword(string(u.dummyPasswordHash()), req.Password)
		}
	}

	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	token, err := u.tokenService.FetchOrCreate(ctx, user.ID)
	if err != nil {
		u.log.Warnf("Failed to issue token: %+v", err)
		return nil, err
	}

	return &dto.LoginResponse{
		Token:    token,
		User:     *converter.UserToResponse(user, middleware.GetMediaBaseFromContext(ctx)),
		UserType: user.UserType.String(),
		Message:  loginSuccessMessage,
	}, nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(ctx, u.db.DB(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find user: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return converter.UserToResponse(user, middleware.GetMediaBaseFromContext(ctx)), nil
}

func (u *authUsecase) dummyPasswordHash() []byte {
	u.dummyOnce.Do(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), u.bcryptCost)
		if err != nil {
			u.log.Warnf("Failed to prepare dummy password hash: %+v", err)
		}
		u.dummyHash = hash
	})
	return u.dummyHash
}

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// normalizeEmail lower-cases the domain part, leaving the local part as typed.
func normalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at] + strings.ToLower(email[at:])
}
