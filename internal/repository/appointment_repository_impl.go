package repository

import (
	"context"
	"errors"

	"dawrni-api/internal/domain/entity"
	domainRepo "dawrni-api/internal/domain/repository"

	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error {
	return db.WithContext(ctx).Omit("Client", "Company").Create(appointment).Error
}

func (r *appointmentRepository) FindByIDAndClient(ctx context.Context, db *gorm.DB, id, clientID int64) (*entity.Appointment, error) {
	return r.findOne(ctx, db, "id = ? AND client_id = ?", id, clientID)
}

func (r *appointmentRepository) FindByIDAndCompany(ctx context.Context, db *gorm.DB, id, companyID int64) (*entity.Appointment, error) {
	return r.findOne(ctx, db, "id = ? AND company_id = ?", id, companyID)
}

func (r *appointmentRepository) FindByClientID(ctx context.Context, db *gorm.DB, clientID int64, filter *entity.AppointmentFilter) ([]entity.Appointment, int64, error) {
	return r.findMany(ctx, db.WithContext(ctx).Model(&entity.Appointment{}).Where("client_id = ?", clientID), filter)
}

func (r *appointmentRepository) FindByCompanyID(ctx context.Context, db *gorm.DB, companyID int64, filter *entity.AppointmentFilter) ([]entity.Appointment, int64, error) {
	return r.findMany(ctx, db.WithContext(ctx).Model(&entity.Appointment{}).Where("company_id = ?", companyID), filter)
}

// UpdateStatus overwrites the status unconditionally; concurrent writers are last-writer-wins.
func (r *appointmentRepository) UpdateStatus(ctx context.Context, db *gorm.DB, id int64, status entity.AppointmentStatus) error {
	return db.WithContext(ctx).Model(&entity.Appointment{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *appointmentRepository) Delete(ctx context.Context, db *gorm.DB, id int64) (int64, error) {
	result := db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Appointment{})
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) findOne(ctx context.Context, db *gorm.DB, query string, args ...interface{}) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.WithContext(ctx).
		Preload("Client").
		Preload("Company").
		Where(query, args...).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

// findMany lists appointments in date, time, id order with an optional status filter.
func (r *appointmentRepository) findMany(ctx context.Context, query *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, int64, error) {
	page := entity.Page{}
	if filter != nil {
		if filter.Status != "" {
			query = query.Where("status = ?", filter.Status)
		}
		page = filter.Page
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var appointments []entity.Appointment
	err := query.
		Preload("Client").
		Preload("Company").
		Scopes(paginate(page)).
		Order("appointment_date ASC, appointment_time ASC, id ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, 0, err
	}
	return appointments, total, nil
}
