package dto

import "time"

// Request DTOs

type BookAppointmentRequest struct {
	Date string `json:"date" validate:"required"` // Format: YYYY-MM-DD
	Time string `json:"time" validate:"required"` // Format: HH:MM or HH:MM:SS
}

type ChangeAppointmentStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ListAppointmentsRequest is decoded from the query string.
type ListAppointmentsRequest struct {
	Status string `schema:"status"`
	Limit  *int   `schema:"limit" validate:"omitempty,gte=1,lte=100"`
	Offset int    `schema:"offset" validate:"gte=0"`
}

// Response DTOs

type AppointmentCompanyResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	CategoryID  *int64 `json:"category_id"`
	Image       string `json:"image"`
	Address     string `json:"address"`
	About       string `json:"about"`
	IsCertified bool   `json:"is_certified"`
}

type AppointmentResponse struct {
	ID        int64                       `json:"id"`
	Client    *ClientResponse             `json:"client,omitempty"`
	Company   *AppointmentCompanyResponse `json:"company,omitempty"`
	Date      string                      `json:"date"`
	Time      string                      `json:"time"`
	Status    string                      `json:"status"`
	CreatedAt time.Time                   `json:"created_at"`
}
