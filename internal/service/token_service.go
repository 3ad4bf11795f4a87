package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"health-connect-api/internal/domain/entity"
	"health-connect-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ErrTokenNotFound is returned when a presented key matches no account.
var ErrTokenNotFound = errors.New("token not found")

const (
	// RedisTokenKeyPrefix namespaces cached key -> user id lookups.
	RedisTokenKeyPrefix = "auth_token:"

	tokenKeyBytes = 20
)

// TokenService issues and resolves the opaque per-account credential.
// Postgres is authoritative; Redis only caches lookups.
type TokenService interface {
	// FetchOrCreate returns the account's token, creating it on first use.
	// Concurrent callers for the same account all receive the same key.
	FetchOrCreate(ctx context.Context, userID uuid.UUID) (string, error)
	Resolve(ctx context.Context, key string) (uuid.UUID, error)
}

type tokenService struct {
	db          repository.Transactor
	log         *logrus.Logger
	tokenRepo   repository.AuthTokenRepository
	redisClient *redis.Client
	cacheTTL    time.Duration
}

func NewTokenService(
	db repository.Transactor,
	log *logrus.Logger,
	tokenRepo repository.AuthTokenRepository,
	redisClient *redis.Client,
	cacheTTL time.Duration,
) TokenService {
	return &tokenService{
		db:          db,
		log:         log,
		tokenRepo:   tokenRepo,
		redisClient: redisClient,
		cacheTTL:    cacheTTL,
	}
}

func (s *tokenService) FetchOrCreate(ctx context.Context, userID uuid.UUID) (string, error) {
	db := s.db.DB(ctx)

	token, err := s.tokenRepo.FindByUserID(ctx, db, userID)
	if err != nil {
		return "", fmt.Errorf("find token: %w", err)
	}

	if token == nil {
		key, err := generateKey()
		if err != nil {
			return "", fmt.Errorf("generate token: %w", err)
		}

		// A concurrent insert for the same user wins silently; re-read so
		// every caller ends up with the stored key.
		if err := s.tokenRepo.CreateIfAbsent(ctx, db, &entity.AuthToken{Key: key, UserID: userID}); err != nil {
			return "", fmt.Errorf("create token: %w", err)
		}

		token, err = s.tokenRepo.FindByUserID(ctx, db, userID)
		if err != nil {
			return "", fmt.Errorf("find token: %w", err)
		}
		if token == nil {
			return "", fmt.Errorf("token for user %s missing after insert", userID)
		}
	}

	s.cache(ctx, token.Key, userID)
	return token.Key, nil
}

func (s *tokenService) Resolve(ctx context.Context, key string) (uuid.UUID, error) {
	if key == "" {
		return uuid.Nil, ErrTokenNotFound
	}

	cached, err := s.redisClient.Get(ctx, RedisTokenKeyPrefix+key).Result()
	switch {
	case err == nil:
		if userID, parseErr := uuid.Parse(cached); parseErr == nil {
			return userID, nil
		}
		s.log.Warnf("Discarding malformed cached token entry for key prefix %.6s", key)
	case !errors.Is(err, redis.Nil):
		s.log.Warnf("Failed to read token cache: %+v", err)
	}

	token, err := s.tokenRepo.FindByKey(ctx, s.db.DB(ctx), key)
	if err != nil {
		return uuid.Nil, fmt.Errorf("find token: %w", err)
	}
	if token == nil {
		return uuid.Nil, ErrTokenNotFound
	}

	s.cache(ctx, token.Key, token.UserID)
	return token.UserID, nil
}

func (s *tokenService) cache(ctx context.Context, key string, userID uuid.UUID) {
	if err := s.redisClient.Set(ctx, RedisTokenKeyPrefix+key, userID.String(), s.cacheTTL).Err(); err != nil {
		s.log.Warnf("Failed to cache token: %+v", err)
	}
}

func generateKey() (string, error) {
	b := make([]byte, tokenKeyBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
