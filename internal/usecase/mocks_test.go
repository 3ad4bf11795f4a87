package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"health-connect-api/internal/domain/entity"
	"health-connect-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// =============================================================================
// In-memory store
// =============================================================================

// memStore backs all repository fakes. The transactor snapshots it before a
// transaction and restores it when the callback fails.
type memStore struct {
	mu       sync.Mutex
	users    map[uuid.UUID]entity.User
	patients map[uuid.UUID]entity.PatientProfile
	doctors  map[uuid.UUID]entity.DoctorProfile
	tokens   map[uuid.UUID]string

	// failProfileCreate makes the next profile insert fail.
	failProfileCreate error
}

func newMemStore() *memStore {
	return &memStore{
		users:    make(map[uuid.UUID]entity.User),
		patients: make(map[uuid.UUID]entity.PatientProfile),
		doctors:  make(map[uuid.UUID]entity.DoctorProfile),
		tokens:   make(map[uuid.UUID]string),
	}
}

type memSnapshot struct {
	users    map[uuid.UUID]entity.User
	patients map[uuid.UUID]entity.PatientProfile
	doctors  map[uuid.UUID]entity.DoctorProfile
}

func (s *memStore) snapshot() memSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := memSnapshot{
		users:    make(map[uuid.UUID]entity.User, len(s.users)),
		patients: make(map[uuid.UUID]entity.PatientProfile, len(s.patients)),
		doctors:  make(map[uuid.UUID]entity.DoctorProfile, len(s.doctors)),
	}
	for k, v := range s.users {
		snap.users[k] = v
	}
	for k, v := range s.patients {
		snap.patients[k] = v
	}
	for k, v := range s.doctors {
		snap.doctors[k] = v
	}
	return snap
}

func (s *memStore) restore(snap memSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users, s.patients, s.doctors = snap.users, snap.patients, snap.doctors
}

// memTransactor serializes transactions and rolls back on error.
type memTransactor struct {
	store *memStore
	txMu  sync.Mutex
}

func (t *memTransactor) DB(ctx context.Context) *gorm.DB { return nil }

func (t *memTransactor) WithinTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	t.txMu.Lock()
	defer t.txMu.Unlock()

	snap := t.store.snapshot()
	if err := fn(nil); err != nil {
		t.store.restore(snap)
		return err
	}
	return nil
}

// =============================================================================
// Repository fakes
// =============================================================================

type memUserRepository struct{ store *memStore }

func (r *memUserRepository) Create(ctx context.Context, db *gorm.DB, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	stored := *user
	stored.PatientProfile, stored.DoctorProfile = nil, nil
	r.store.users[user.ID] = stored
	return nil
}

func (r *memUserRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.ID == id })
}

func (r *memUserRepository) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.Email == email })
}

func (r *memUserRepository) FindByUsername(ctx context.Context, db *gorm.DB, username string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.Username == username })
}

func (r *memUserRepository) find(match func(entity.User) bool) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, u := range r.store.users {
		if match(u) {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

func (r *memUserRepository) ExistsByUsername(ctx context.Context, db *gorm.DB, username string) (bool, error) {
	u, err := r.FindByUsername(ctx, db, username)
	return u != nil, err
}

func (r *memUserRepository) ExistsByEmail(ctx context.Context, db *gorm.DB, email string) (bool, error) {
	u, err := r.FindByEmail(ctx, db, email)
	return u != nil, err
}

func (r *memUserRepository) FindAll(ctx context.Context, db *gorm.DB, filter *entity.UserFilter) ([]entity.User, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	search := strings.ToLower(filter.Search)
	var matched []entity.User
	for _, u := range r.store.users {
		if filter.UserType != "" && u.UserType != filter.UserType {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(u.Username), search) &&
			!strings.Contains(strings.ToLower(u.Email), search) &&
			!strings.Contains(strings.ToLower(u.FirstName), search) &&
			!strings.Contains(strings.ToLower(u.LastName), search) {
			continue
		}
		matched = append(matched, u)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].DateJoined.After(matched[j].DateJoined) })

	total := int64(len(matched))
	if filter.Offset < 0 {
		return nil, 0, fmt.Errorf("negative offset %d", filter.Offset)
	}
	if filter.Offset >= len(matched) {
		return []entity.User{}, total, nil
	}
	end := filter.Offset + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[filter.Offset:end], total, nil
}

type memPatientRepository struct{ store *memStore }

func (r *memPatientRepository) Create(ctx context.Context, db *gorm.DB, profile *entity.PatientProfile) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if err := r.store.failProfileCreate; err != nil {
		r.store.failProfileCreate = nil
		return err
	}
	stored := *profile
	stored.User = entity.User{}
	r.store.patients[profile.UserID] = stored
	return nil
}

func (r *memPatientRepository) FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.PatientProfile, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.patients[userID]
	if !ok {
		return nil, nil
	}
	p.User = r.store.users[userID]
	return &p, nil
}

func (r *memPatientRepository) FindAll(ctx context.Context, db *gorm.DB) ([]entity.PatientProfile, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	profiles := make([]entity.PatientProfile, 0, len(r.store.patients))
	for id, p := range r.store.patients {
		p.User = r.store.users[id]
		profiles = append(profiles, p)
	}
	return profiles, nil
}

func (r *memPatientRepository) Update(ctx context.Context, db *gorm.DB, profile *entity.PatientProfile) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	stored := *profile
	stored.User = entity.User{}
	r.store.patients[profile.UserID] = stored
	return nil
}

type memDoctorRepository struct{ store *memStore }

func (r *memDoctorRepository) Create(ctx context.Context, db *gorm.DB, profile *entity.DoctorProfile) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if err := r.store.failProfileCreate; err != nil {
		r.store.failProfileCreate = nil
		return err
	}
	stored := *profile
	stored.User = entity.User{}
	r.store.doctors[profile.UserID] = stored
	return nil
}

func (r *memDoctorRepository) FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.DoctorProfile, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	d, ok := r.store.doctors[userID]
	if !ok {
		return nil, nil
	}
	d.User = r.store.users[userID]
	return &d, nil
}

func (r *memDoctorRepository) FindAll(ctx context.Context, db *gorm.DB) ([]entity.DoctorProfile, error) {
	return r.filter(func(entity.DoctorProfile) bool { return true }), nil
}

func (r *memDoctorRepository) FindVerified(ctx context.Context, db *gorm.DB) ([]entity.DoctorProfile, error) {
	return r.filter(func(d entity.DoctorProfile) bool { return d.IsVerified }), nil
}

func (r *memDoctorRepository) filter(keep func(entity.DoctorProfile) bool) []entity.DoctorProfile {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	profiles := make([]entity.DoctorProfile, 0, len(r.store.doctors))
	for id, d := range r.store.doctors {
		if !keep(d) {
			continue
		}
		d.User = r.store.users[id]
		profiles = append(profiles, d)
	}
	return profiles
}

func (r *memDoctorRepository) ExistsByLicenseNumber(ctx context.Context, db *gorm.DB, licenseNumber string, excludeUserID uuid.UUID) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for id, d := range r.store.doctors {
		if d.LicenseNumber == licenseNumber && id != excludeUserID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memDoctorRepository) Update(ctx context.Context, db *gorm.DB, profile *entity.DoctorProfile) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	current, ok := r.store.doctors[profile.UserID]
	if !ok {
		return errors.New("record not found")
	}
	stored := *profile
	stored.User = entity.User{}
	stored.IsVerified = current.IsVerified
	r.store.doctors[profile.UserID] = stored
	return nil
}

// memTokenService hands out one stable key per account.
type memTokenService struct {
	store *memStore
	err   error
}

func (s *memTokenService) FetchOrCreate(ctx context.Context, userID uuid.UUID) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	key, ok := s.store.tokens[userID]
	if !ok {
		key = strings.ReplaceAll(uuid.NewString(), "-", "")[:32] + "deadbeef"
		s.store.tokens[userID] = key
	}
	return key, nil
}

func (s *memTokenService) Resolve(ctx context.Context, key string) (uuid.UUID, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	for id, k := range s.store.tokens {
		if k == key {
			return id, nil
		}
	}
	return uuid.Nil, errors.New("token not found")
}

// =============================================================================
// Test Helpers
// =============================================================================

type fixture struct {
	store    *memStore
	tx       *memTransactor
	log      *logrus.Logger
	validate *validator.CustomValidator
	users    *memUserRepository
	patients *memPatientRepository
	doctors  *memDoctorRepository
	tokens   *memTokenService
	auth     AuthUsecase
}

func newFixture() *fixture {
	store := newMemStore()
	log := logrus.New()
	log.SetOutput(io.Discard)

	f := &fixture{
		store:    store,
		tx:       &memTransactor{store: store},
		log:      log,
		validate: validator.NewValidator(),
		users:    &memUserRepository{store: store},
		patients: &memPatientRepository{store: store},
		doctors:  &memDoctorRepository{store: store},
		tokens:   &memTokenService{store: store},
	}
	f.auth = NewAuthUsecase(f.tx, log, f.validate, f.users, f.patients, f.doctors, f.tokens, bcrypt.MinCost)
	return f
}

func patientSignup() map[string]interface{} {
	return map[string]interface{}{
		"username":         "jane",
		"email":            "jane@Example.COM",
		"password":         "s3cret-pass",
		"confirm_password": "s3cret-pass",
		"first_name":       "Jane",
		"last_name":        "Doe",
		"date_of_birth":    "1990-04-12",
		"phone_number":     5551234,
	}
}

func doctorSignup() map[string]interface{} {
	return map[string]interface{}{
		"username":         "doc1",
		"email":            "doc1@clinic.test",
		"password":         "doc-pass-1",
		"first_name":       "Gregory",
		"last_name":        "House",
		"license_number":   "LIC-001",
		"specialization":   "general",
		"experience_years": "12",
		"address":          map[string]interface{}{"line1": "1 Main St", "city": "Princeton"},
	}
}

func mustRegister(f *fixture, role string, fields map[string]interface{}) {
	if _, err := f.auth.Register(context.Background(), role, fields); err != nil {
		panic(err)
	}
}

func (s *memStore) counts() (users, patients, doctors int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users), len(s.patients), len(s.doctors)
}
