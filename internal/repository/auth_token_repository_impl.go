package repository

import (
	"context"
	"errors"

	"health-connect-api/internal/domain/entity"
	domainRepo "health-connect-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type authTokenRepository struct{}

func NewAuthTokenRepository() domainRepo.AuthTokenRepository {
	return &authTokenRepository{}
}

func (r *authTokenRepository) CreateIfAbsent(ctx context.Context, db *gorm.DB, token *entity.AuthToken) error {
	return db.WithContext(ctx).
		Omit("User").
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).
		Create(token).Error
}

func (r *authTokenRepository) FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.AuthToken, error) {
	var token entity.AuthToken
	err := db.WithContext(ctx).Where("user_id = ?", userID).First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &token, nil
}

func (r *authTokenRepository) FindByKey(ctx context.Context, db *gorm.DB, key string) (*entity.AuthToken, error) {
	var token entity.AuthToken
	err := db.WithContext(ctx).Where("key = ?", key).First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &token, nil
}
