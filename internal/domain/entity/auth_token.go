package entity

import (
	"time"

	"github.com/google/uuid"
)

// AuthToken is the opaque credential issued to an account. There is at most
// one per user.
type AuthToken struct {
	Key       string    `gorm:"type:varchar(40);primaryKey" json:"key"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (AuthToken) TableName() string {
	return "auth_tokens"
}
