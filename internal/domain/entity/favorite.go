package entity

import "time"

// Favorite records a client's interest in a company. At most one row per pair.
type Favorite struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ClientID  int64     `gorm:"not null;uniqueIndex:idx_favorites_client_company" json:"client_id"`
	CompanyID int64     `gorm:"not null;uniqueIndex:idx_favorites_client_company;index" json:"company_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Client  Client  `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE" json:"client,omitempty"`
	Company Company `gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE" json:"company,omitempty"`
}

func (Favorite) TableName() string {
	return "favorites"
}
