package entity

import (
	"time"

	"github.com/google/uuid"
)

// Client is the profile owned by an identity with RoleClient.
type Client struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	NameEn    string    `gorm:"type:varchar(255)" json:"name_en"`
	NameAr    string    `gorm:"type:varchar(255)" json:"name_ar"`
	Email     string    `gorm:"type:varchar(255);not null" json:"email"`
	Photo     string    `gorm:"type:varchar(512)" json:"photo"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Client) TableName() string {
	return "clients"
}
