package service

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"health-connect-api/internal/domain/entity"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// =============================================================================
// Test doubles
// =============================================================================

type nopTransactor struct{}

func (nopTransactor) DB(ctx context.Context) *gorm.DB { return nil }

func (nopTransactor) WithinTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

// memTokenRepository mimics the unique user_id constraint with
// ON CONFLICT DO NOTHING semantics.
type memTokenRepository struct {
	mu       sync.Mutex
	byUser   map[uuid.UUID]entity.AuthToken
	creates  int
	findErr  error
	onCreate func() // runs before the insert, used to simulate a lost race
}

func newMemTokenRepository() *memTokenRepository {
	return &memTokenRepository{byUser: make(map[uuid.UUID]entity.AuthToken)}
}

func (m *memTokenRepository) CreateIfAbsent(ctx context.Context, db *gorm.DB, token *entity.AuthToken) error {
	if m.onCreate != nil {
		m.onCreate()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creates++
	if _, exists := m.byUser[token.UserID]; exists {
		return nil
	}
	m.byUser[token.UserID] = *token
	return nil
}

func (m *memTokenRepository) FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.AuthToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findErr != nil {
		return nil, m.findErr
	}
	token, ok := m.byUser[userID]
	if !ok {
		return nil, nil
	}
	return &token, nil
}

func (m *memTokenRepository) FindByKey(ctx context.Context, db *gorm.DB, key string) (*entity.AuthToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findErr != nil {
		return nil, m.findErr
	}
	for _, token := range m.byUser {
		if token.Key == key {
			t := token
			return &t, nil
		}
	}
	return nil, nil
}

// =============================================================================
// Test Helpers
// =============================================================================

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func setupTokenService(t *testing.T) (*tokenService, *memTokenRepository, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to create miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	repo := newMemTokenRepository()

	svc := NewTokenService(nopTransactor{}, quietLogger(), repo, client, time.Hour).(*tokenService)
	return svc, repo, mr
}

// =============================================================================
// FetchOrCreate
// =============================================================================

func TestFetchOrCreate_Idempotent(t *testing.T) {
	svc, repo, mr := setupTokenService(t)
	ctx := context.Background()
	userID := uuid.New()

	first, err := svc.FetchOrCreate(ctx, userID)
	if err != nil {
		t.Fatalf("FetchOrCreate() error = %v", err)
	}
	if len(first) != 40 {
		t.Errorf("token length = %d, want 40", len(first))
	}

	second, err := svc.FetchOrCreate(ctx, userID)
	if err != nil {
		t.Fatalf("FetchOrCreate() error = %v", err)
	}
	if first != second {
		t.Errorf("second token = %q, want %q", second, first)
	}
	if repo.creates != 1 {
		t.Errorf("creates = %d, want 1", repo.creates)
	}

	cached, err := mr.Get(RedisTokenKeyPrefix + first)
	if err != nil || cached != userID.String() {
		t.Errorf("cache = %q (%v), want %s", cached, err, userID)
	}
}

func TestFetchOrCreate_LostRaceReturnsWinnerToken(t *testing.T) {
	svc, repo, _ := setupTokenService(t)
	userID := uuid.New()
	winner := "0123456789abcdef0123456789abcdef01234567"

	repo.onCreate = func() {
		repo.mu.Lock()
		repo.byUser[userID] = entity.AuthToken{Key: winner, UserID: userID}
		repo.mu.Unlock()
	}

	got, err := svc.FetchOrCreate(context.Background(), userID)
	if err != nil {
		t.Fatalf("FetchOrCreate() error = %v", err)
	}
	if got != winner {
		t.Errorf("token = %q, want winner %q", got, winner)
	}
}

func TestFetchOrCreate_ConcurrentCallers(t *testing.T) {
	svc, _, _ := setupTokenService(t)
	userID := uuid.New()

	const callers = 8
	keys := make([]string, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key, err := svc.FetchOrCreate(context.Background(), userID)
			if err != nil {
				t.Errorf("FetchOrCreate() error = %v", err)
			}
			keys[i] = key
		}(i)
	}
	wg.Wait()

	for i := 1; i < callers; i++ {
		if keys[i] != keys[0] {
			t.Fatalf("caller %d got %q, caller 0 got %q", i, keys[i], keys[0])
		}
	}
}

func TestFetchOrCreate_StoreError(t *testing.T) {
	svc, repo, _ := setupTokenService(t)
	repo.findErr = errors.New("connection refused")

	if _, err := svc.FetchOrCreate(context.Background(), uuid.New()); err == nil {
		t.Fatal("expected error")
	}
}

// =============================================================================
// Resolve
// =============================================================================

func TestResolve(t *testing.T) {
	svc, repo, mr := setupTokenService(t)
	ctx := context.Background()
	userID := uuid.New()
	key := "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	repo.byUser[userID] = entity.AuthToken{Key: key, UserID: userID}

	got, err := svc.Resolve(ctx, key)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != userID {
		t.Errorf("Resolve() = %s, want %s", got, userID)
	}
	if !mr.Exists(RedisTokenKeyPrefix + key) {
		t.Error("resolved token should be cached")
	}

	// Served from cache once the store forgets it.
	delete(repo.byUser, userID)
	got, err = svc.Resolve(ctx, key)
	if err != nil || got != userID {
		t.Errorf("cached Resolve() = %s, %v", got, err)
	}
}

func TestResolve_Unknown(t *testing.T) {
	svc, _, _ := setupTokenService(t)

	for _, key := range []string{"", "does-not-exist"} {
		if _, err := svc.Resolve(context.Background(), key); !errors.Is(err, ErrTokenNotFound) {
			t.Errorf("Resolve(%q) error = %v, want ErrTokenNotFound", key, err)
		}
	}
}

func TestResolve_CacheDownFallsBackToStore(t *testing.T) {
	svc, repo, mr := setupTokenService(t)
	userID := uuid.New()
	key := "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
	repo.byUser[userID] = entity.AuthToken{Key: key, UserID: userID}

	mr.Close()

	got, err := svc.Resolve(context.Background(), key)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != userID {
		t.Errorf("Resolve() = %s, want %s", got, userID)
	}
}
