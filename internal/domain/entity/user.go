package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role tags an identity with the profile variant it owns.
type Role string

const (
	RoleCompany Role = "company"
	RoleClient  Role = "client"
)

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	return r == RoleCompany || r == RoleClient
}

// User represents the centralized authentication table
type User struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password   string    `gorm:"type:text;not null" json:"-"`
	FullName   string    `gorm:"type:varchar(255)" json:"full_name"`
	Role       Role      `gorm:"type:varchar(16);not null;index" json:"role"`
	IsVerified bool      `gorm:"not null;default:false" json:"is_verified"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
