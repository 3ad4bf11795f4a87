package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the account record every login resolves to. Exactly one of
// PatientProfile or DoctorProfile exists, selected by UserType.
type User struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Username       string    `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"`
	Email          string    `gorm:"type:varchar(254);uniqueIndex;not null" json:"email"`
	Password       string    `gorm:"type:text;not null" json:"-"`
	FirstName      string    `gorm:"type:varchar(30);not null" json:"first_name"`
	LastName       string    `gorm:"type:varchar(30);not null" json:"last_name"`
	UserType       UserType  `gorm:"type:varchar(10);not null;index" json:"user_type"`
	AddressLine1   string    `gorm:"column:address_line1;type:varchar(255);not null;default:''" json:"address_line1"`
	City           string    `gorm:"type:varchar(100);not null;default:''" json:"city"`
	State          string    `gorm:"type:varchar(100);not null;default:''" json:"state"`
	Pincode        string    `gorm:"type:varchar(10);not null;default:''" json:"pincode"`
	ProfilePicture *string   `gorm:"type:varchar(255)" json:"profile_picture"`
	IsActive       bool      `gorm:"not null;default:true" json:"is_active"`
	DateJoined     time.Time `gorm:"autoCreateTime;index" json:"date_joined"`

	// Relationships
	PatientProfile *PatientProfile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"patient_profile,omitempty"`
	DoctorProfile  *DoctorProfile  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"doctor_profile,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// Profile returns the role-specific profile attached to the user, or nil
// when it has not been loaded.
func (u *User) Profile() Profile {
	switch u.UserType {
	case UserTypePatient:
		if u.PatientProfile != nil {
			return u.PatientProfile
		}
	case UserTypeDoctor:
		if u.DoctorProfile != nil {
			return u.DoctorProfile
		}
	}
	return nil
}

// Profile is implemented by PatientProfile and DoctorProfile.
type Profile interface {
	OwnerID() uuid.UUID
	Role() UserType
}
