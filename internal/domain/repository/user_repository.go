package repository

import (
	"context"

	"health-connect-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, db *gorm.DB, user *entity.User) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, db *gorm.DB, email string) (*entity.User, error)
	FindByUsername(ctx context.Context, db *gorm.DB, username string) (*entity.User, error)
	ExistsByUsername(ctx context.Context, db *gorm.DB, username string) (bool, error)
	ExistsByEmail(ctx context.Context, db *gorm.DB, email string) (bool, error)
	FindAll(ctx context.Context, db *gorm.DB, filter *entity.UserFilter) ([]entity.User, int64, error)
}
