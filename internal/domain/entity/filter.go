package entity

// Page is a limit/offset window over an ordered result set.
type Page struct {
	Limit  int
	Offset int
}

// AppointmentFilter is a domain-level filter for listing appointments.
// Used by repository layer to avoid coupling with delivery DTOs.
type AppointmentFilter struct {
	Status AppointmentStatus // empty means any status
	Page
}

// CompanyFilter narrows the company directory.
type CompanyFilter struct {
	Search     string // matches name_ar or name_en, case-insensitive
	CategoryID *int64
	Page
}

type ClientFilter struct {
	Search string
	Page
}
