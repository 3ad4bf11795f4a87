package repository

import (
	"context"

	"health-connect-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuthTokenRepository interface {
	// CreateIfAbsent inserts the token unless the user already has one.
	CreateIfAbsent(ctx context.Context, db *gorm.DB, token *entity.AuthToken) error
	FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.AuthToken, error)
	FindByKey(ctx context.Context, db *gorm.DB, key string) (*entity.AuthToken, error)
}
