package usecase

import (
	"context"
	"strconv"

	"dawrni-api/internal/converter"
	"dawrni-api/internal/delivery/dto"
	"dawrni-api/internal/domain/entity"
	"dawrni-api/internal/domain/repository"
	"dawrni-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AppointmentUsecase interface {
	Book(ctx context.Context, userID uuid.UUID, companyID int64, req *dto.BookAppointmentRequest, lang entity.Language) (*dto.AppointmentResponse, error)
	Cancel(ctx context.Context, userID uuid.UUID, appointmentID int64) error
	ChangeStatus(ctx context.Context, userID uuid.UUID, appointmentID int64, req *dto.ChangeAppointmentStatusRequest, lang entity.Language) (*dto.AppointmentResponse, error)
	GetClientAppointments(ctx context.Context, userID uuid.UUID, req *dto.ListAppointmentsRequest, lang entity.Language) (*dto.ListResult[dto.AppointmentResponse], error)
	GetCompanyAppointments(ctx context.Context, userID uuid.UUID, req *dto.ListAppointmentsRequest, lang entity.Language) (*dto.ListResult[dto.AppointmentResponse], error)
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	companyRepo     repository.CompanyRepository
	clientRepo      repository.ClientRepository
	auditService    service.AuditService
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	companyRepo repository.CompanyRepository,
	clientRepo repository.ClientRepository,
	auditService service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		companyRepo:     companyRepo,
		clientRepo:      clientRepo,
		auditService:    auditService,
	}
}

// Book creates a pending appointment for the acting client. Overlapping bookings are allowed.
func (u *appointmentUsecase) Book(ctx context.Context, userID uuid.UUID, companyID int64, req *dto.BookAppointmentRequest, lang entity.Language) (*dto.AppointmentResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	client, err := u.clientRepo.FindByUserID(ctx, tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find client for user %s: %+v", userID, err)
		return nil, err
	}
	if client == nil {
		return nil, ErrClientNotFound
	}

	company, err := u.companyRepo.FindByID(ctx, tx, companyID)
	if err != nil {
		u.log.Warnf("Failed to find company %d: %+v", companyID, err)
		return nil, err
	}
	if company == nil {
		return nil, ErrCompanyNotFound
	}

	date, err := entity.ParseAppointmentDate(req.Date)
	if err != nil {
		return nil, err
	}
	clock, err := entity.ParseAppointmentTime(req.Time)
	if err != nil {
		return nil, err
	}

	appointment := &entity.Appointment{
		ClientID:  client.ID,
		CompanyID: company.ID,
		Date:      date,
		Time:      clock,
		Status:    entity.AppointmentStatusPending,
	}
	if err := u.appointmentRepo.Create(ctx, tx, appointment); err != nil {
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	appointment.Client = *client
	appointment.Company = *company

	u.log.WithFields(logrus.Fields{
		"appointment_id": appointment.ID,
		"client_id":      client.ID,
		"company_id":     company.ID,
	}).Info("Appointment booked")

	return converter.AppointmentToResponse(appointment, lang), nil
}

// Cancel deletes an appointment owned by the acting client. Appointments of
// other clients are reported as not found.
func (u *appointmentUsecase) Cancel(ctx context.Context, userID uuid.UUID, appointmentID int64) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	client, err := u.clientRepo.FindByUserID(ctx, tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find client for user %s: %+v", userID, err)
		return err
	}
	if client == nil {
		return ErrClientNotFound
	}

	appointment, err := u.appointmentRepo.FindByIDAndClient(ctx, tx, appointmentID, client.ID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %d: %+v", appointmentID, err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}

	deleted, err := u.appointmentRepo.Delete(ctx, tx, appointment.ID)
	if err != nil {
		u.log.Warnf("Failed to delete appointment %d: %+v", appointmentID, err)
		return err
	}
	if deleted == 0 {
		return ErrAppointmentNotFound
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

// ChangeStatus sets the status of an appointment owned by the acting company.
// Any known status may follow any other; ownership is checked before the value.
func (u *appointmentUsecase) ChangeStatus(ctx context.Context, userID uuid.UUID, appointmentID int64, req *dto.ChangeAppointmentStatusRequest, lang entity.Language) (*dto.AppointmentResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	company, err := u.companyRepo.FindByUserID(ctx, tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find company for user %s: %+v", userID, err)
		return nil, err
	}
	if company == nil {
		return nil, ErrCompanyNotFound
	}

	appointment, err := u.appointmentRepo.FindByIDAndCompany(ctx, tx, appointmentID, company.ID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %d: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	status, ok := entity.ParseAppointmentStatus(req.Status)
	if !ok {
		return nil, ErrInvalidAppointmentStatus
	}

	if appointment.Status != status {
		oldStatus := appointment.Status
		if err := u.appointmentRepo.UpdateStatus(ctx, tx, appointment.ID, status); err != nil {
			u.log.Warnf("Failed to update appointment %d status: %+v", appointmentID, err)
			return nil, err
		}
		appointment.Status = status

		if err := u.auditService.LogUpdate(ctx, tx, &userID, entity.AuditActionAppointmentStatus, "appointment",
			strconv.FormatInt(appointment.ID, 10),
			map[string]interface{}{"status": oldStatus},
			map[string]interface{}{"status": status},
		); err != nil {
			u.log.Warnf("Failed to audit status change of appointment %d: %+v", appointment.ID, err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.AppointmentToResponse(appointment, lang), nil
}

func (u *appointmentUsecase) GetClientAppointments(ctx context.Context, userID uuid.UUID, req *dto.ListAppointmentsRequest, lang entity.Language) (*dto.ListResult[dto.AppointmentResponse], error) {
	filter, err := appointmentFilter(req)
	if err != nil {
		return nil, err
	}

	client, err := u.clientRepo.FindByUserID(ctx, u.db, userID)
	if err != nil {
		u.log.Warnf("Failed to find client for user %s: %+v", userID, err)
		return nil, err
	}
	if client == nil {
		return nil, ErrClientNotFound
	}

	appointments, total, err := u.appointmentRepo.FindByClientID(ctx, u.db, client.ID, filter)
	if err != nil {
		u.log.Warnf("Failed to list appointments for client %d: %+v", client.ID, err)
		return nil, err
	}

	return appointmentPage(appointments, total, filter, lang), nil
}

func (u *appointmentUsecase) GetCompanyAppointments(ctx context.Context, userID uuid.UUID, req *dto.ListAppointmentsRequest, lang entity.Language) (*dto.ListResult[dto.AppointmentResponse], error) {
	filter, err := appointmentFilter(req)
	if err != nil {
		return nil, err
	}

	company, err := u.companyRepo.FindByUserID(ctx, u.db, userID)
	if err != nil {
		u.log.Warnf("Failed to find company for user %s: %+v", userID, err)
		return nil, err
	}
	if company == nil {
		return nil, ErrCompanyNotFound
	}

	appointments, total, err := u.appointmentRepo.FindByCompanyID(ctx, u.db, company.ID, filter)
	if err != nil {
		u.log.Warnf("Failed to list appointments for company %d: %+v", company.ID, err)
		return nil, err
	}

	return appointmentPage(appointments, total, filter, lang), nil
}

func appointmentFilter(req *dto.ListAppointmentsRequest) (*entity.AppointmentFilter, error) {
	if req == nil {
		req = &dto.ListAppointmentsRequest{}
	}

	filter := &entity.AppointmentFilter{
		Page: entity.Page{Limit: dto.PageLimit(req.Limit), Offset: req.Offset},
	}
	if req.Status != "" {
		status, ok := entity.ParseAppointmentStatus(req.Status)
		if !ok {
			return nil, ErrInvalidAppointmentStatus
		}
		filter.Status = status
	}
	return filter, nil
}

func appointmentPage(appointments []entity.Appointment, total int64, filter *entity.AppointmentFilter, lang entity.Language) *dto.ListResult[dto.AppointmentResponse] {
	return &dto.ListResult[dto.AppointmentResponse]{
		Items:  converter.AppointmentsToResponse(appointments, lang),
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}
}
