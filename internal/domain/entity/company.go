package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Company is the profile owned by an identity with RoleCompany.
type Company struct {
	ID          int64               `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	NameAr      string              `gorm:"type:varchar(255)" json:"name_ar"`
	NameEn      string              `gorm:"type:varchar(255)" json:"name_en"`
	CategoryID  *int64              `gorm:"index" json:"category_id"`
	AddressAr   string              `gorm:"type:text" json:"address_ar"`
	AddressEn   string              `gorm:"type:text" json:"address_en"`
	AboutAr     string              `gorm:"type:text" json:"about_ar"`
	AboutEn     string              `gorm:"type:text" json:"about_en"`
	IsCertified bool                `gorm:"not null;default:false" json:"is_certified"`
	Image       string              `gorm:"type:varchar(512)" json:"image"`
	Lat         decimal.NullDecimal `gorm:"type:numeric(9,6)" json:"lat"`
	Lng         decimal.NullDecimal `gorm:"type:numeric(9,6)" json:"lng"`
	CreatedAt   time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time           `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User     User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Category *Category      `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Photos   []CompanyPhoto `gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE" json:"photos,omitempty"`
}

func (Company) TableName() string {
	return "companies"
}

// IsListed reports whether the profile is complete enough to appear in the directory.
func (c *Company) IsListed() bool {
	return c.NameEn != "" && c.CategoryID != nil && c.AddressEn != "" && c.AboutEn != ""
}

// CompanyPhoto is one image of a company's gallery.
type CompanyPhoto struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CompanyID int64     `gorm:"not null;index" json:"company_id"`
	Image     string    `gorm:"type:varchar(512);not null" json:"image"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (CompanyPhoto) TableName() string {
	return "company_photos"
}

type Category struct {
	ID   int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"type:varchar(255);not null" json:"name"`
}

func (Category) TableName() string {
	return "categories"
}
