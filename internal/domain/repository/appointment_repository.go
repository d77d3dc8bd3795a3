package repository

import (
	"context"

	"dawrni-api/internal/domain/entity"

	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error
	FindByIDAndClient(ctx context.Context, db *gorm.DB, id, clientID int64) (*entity.Appointment, error)
	FindByIDAndCompany(ctx context.Context, db *gorm.DB, id, companyID int64) (*entity.Appointment, error)
	FindByClientID(ctx context.Context, db *gorm.DB, clientID int64, filter *entity.AppointmentFilter) ([]entity.Appointment, int64, error)
	FindByCompanyID(ctx context.Context, db *gorm.DB, companyID int64, filter *entity.AppointmentFilter) ([]entity.Appointment, int64, error)
	UpdateStatus(ctx context.Context, db *gorm.DB, id int64, status entity.AppointmentStatus) error
	Delete(ctx context.Context, db *gorm.DB, id int64) (int64, error)
}
