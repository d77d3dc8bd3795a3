package dto

import (
	"github.com/shopspring/decimal"
)

// Request DTOs

// UpdateCompanyRequest is decoded from a multipart form. Nil fields are left unchanged.
type UpdateCompanyRequest struct {
	NameAr      *string          `schema:"name_ar" validate:"omitempty,max=255"`
	NameEn      *string          `schema:"name_en" validate:"omitempty,max=255"`
	AddressAr   *string          `schema:"address_ar"`
	AddressEn   *string          `schema:"address_en"`
	AboutAr     *string          `schema:"about_ar"`
	AboutEn     *string          `schema:"about_en"`
	CategoryID  *int64           `schema:"category" validate:"omitempty,gte=1"`
	IsCertified *bool            `schema:"is_certified"`
	Lat         *decimal.Decimal `schema:"lat"`
	Lng         *decimal.Decimal `schema:"lng"`
}

type ListCompaniesRequest struct {
	Search     string `schema:"search" validate:"omitempty,max=255"`
	CategoryID *int64 `schema:"category" validate:"omitempty,gte=1"`
	Limit      *int   `schema:"limit" validate:"omitempty,gte=1,lte=100"`
	Offset     int    `schema:"offset" validate:"gte=0"`
}

// Response DTOs

type CompanyPhotoResponse struct {
	ID    int64  `json:"id"`
	Image string `json:"image"`
}

// CompanyResponse is the language-selected public view of a company.
type CompanyResponse struct {
	ID          int64                  `json:"id"`
	CategoryID  *int64                 `json:"category_id"`
	Name        string                 `json:"name"`
	Address     string                 `json:"address"`
	About       string                 `json:"about"`
	IsCertified bool                   `json:"is_certified"`
	Image       string                 `json:"image"`
	Lat         decimal.NullDecimal    `json:"lat"`
	Lng         decimal.NullDecimal    `json:"lng"`
	Photos      []CompanyPhotoResponse `json:"photos,omitempty"`
	IsFavorite  *bool                  `json:"is_favorite,omitempty"`
}

// CompanyProfileResponse is the owner's view with both languages.
type CompanyProfileResponse struct {
	ID          int64                  `json:"id"`
	Email       string                 `json:"email"`
	CategoryID  *int64                 `json:"category_id"`
	NameAr      string                 `json:"name_ar"`
	NameEn      string                 `json:"name_en"`
	AddressAr   string                 `json:"address_ar"`
	AddressEn   string                 `json:"address_en"`
	AboutAr     string                 `json:"about_ar"`
	AboutEn     string                 `json:"about_en"`
	IsCertified bool                   `json:"is_certified"`
	Image       string                 `json:"image"`
	Lat         decimal.NullDecimal    `json:"lat"`
	Lng         decimal.NullDecimal    `json:"lng"`
	Photos      []CompanyPhotoResponse `json:"photos"`
}

type CategoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
