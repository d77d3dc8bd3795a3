package entity

import (
	"errors"
	"time"
)

const (
	AppointmentDateLayout = "2006-01-02"
	AppointmentTimeLayout = "15:04:05"
)

var (
	ErrInvalidAppointmentDate = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidAppointmentTime = errors.New("invalid time format, use HH:MM or HH:MM:SS")
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCanceled  AppointmentStatus = "canceled"
)

// ParseAppointmentStatus returns the status named by s, or false if s is not a known status.
func ParseAppointmentStatus(s string) (AppointmentStatus, bool) {
	switch status := AppointmentStatus(s); status {
	case AppointmentStatusPending, AppointmentStatusConfirmed, AppointmentStatusCanceled:
		return status, true
	}
	return "", false
}

// ParseAppointmentDate parses a calendar date in YYYY-MM-DD form.
func ParseAppointmentDate(s string) (time.Time, error) {
	d, err := time.Parse(AppointmentDateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidAppointmentDate
	}
	return d, nil
}

// ParseAppointmentTime accepts HH:MM or HH:MM:SS and returns it as HH:MM:SS.
func ParseAppointmentTime(s string) (string, error) {
	for _, layout := range []string{"15:04", AppointmentTimeLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(AppointmentTimeLayout), nil
		}
	}
	return "", ErrInvalidAppointmentTime
}

// Appointment is a booking between one client and one company.
type Appointment struct {
	ID        int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	ClientID  int64             `gorm:"not null;index" json:"client_id"`
	CompanyID int64             `gorm:"not null;index" json:"company_id"`
	Date      time.Time         `gorm:"column:appointment_date;type:date;not null" json:"date"`
	Time      string            `gorm:"column:appointment_time;type:time;not null" json:"time"`
	Status    AppointmentStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CreatedAt time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Client  Client  `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE" json:"client,omitempty"`
	Company Company `gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE" json:"company,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// ClockTime returns the stored time as HH:MM:SS, dropping any fractional seconds
// the driver may append.
func (a *Appointment) ClockTime() string {
	if t, err := ParseAppointmentTime(a.Time); err == nil {
		return t
	}
	return a.Time
}
