package dto

// Request DTOs

type UpdateClientRequest struct {
	NameEn *string `schema:"name_en" validate:"omitempty,max=255"`
	NameAr *string `schema:"name_ar" validate:"omitempty,max=255"`
}

type ListClientsRequest struct {
	Search string `schema:"search" validate:"omitempty,max=255"`
	Limit  *int   `schema:"limit" validate:"omitempty,gte=1,lte=100"`
	Offset int    `schema:"offset" validate:"gte=0"`
}

// Response DTOs

type ClientResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Photo string `json:"photo"`
}

type ClientProfileResponse struct {
	ID     int64  `json:"id"`
	NameEn string `json:"name_en"`
	NameAr string `json:"name_ar"`
	Email  string `json:"email"`
	Photo  string `json:"photo"`
}

// ProfileResponse holds exactly one of the two profile variants.
type ProfileResponse struct {
	UserType string                  `json:"user_type"`
	Company  *CompanyProfileResponse `json:"company,omitempty"`
	Client   *ClientProfileResponse  `json:"client,omitempty"`
}
