package usecase

import (
	"context"
	"testing"

	"dawrni-api/internal/delivery/dto"
	"dawrni-api/internal/domain/entity"
	"dawrni-api/internal/repository"
	"dawrni-api/internal/testhelper"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAppointmentUsecase(t *testing.T) (AppointmentUsecase, *gorm.DB) {
	t.Helper()

	db := testhelper.NewTestDB(t)
	uc := NewAppointmentUsecase(
		db,
		testhelper.NewLogger(),
		repository.NewAppointmentRepository(),
		repository.NewCompanyRepository(),
		repository.NewClientRepository(),
		newAuditService(),
	)
	return uc, db
}

func appointmentStatus(t *testing.T, db *gorm.DB, id int64) entity.AppointmentStatus {
	t.Helper()

	var appointment entity.Appointment
	require.NoError(t, db.First(&appointment, id).Error)
	return appointment.Status
}

// TestAppointmentUsecase_Book tests that a booking starts out pending
func TestAppointmentUsecase_Book(t *testing.T) {
	uc, db := newAppointmentUsecase(t)
	ctx := context.Background()

	company := testhelper.CreateCompany(t, db, nil)
	client := testhelper.CreateClient(t, db)

	resp, err := uc.Book(ctx, client.UserID, company.ID, &dto.BookAppointmentRequest{
		Date: "2024-06-01",
		Time: "14:30",
	}, entity.LanguageEnglish)
	require.NoError(t, err)

	assert.NotZero(t, resp.ID)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "2024-06-01", resp.Date)
	assert.Equal(t, "14:30:00", resp.Time)
	require.NotNil(t, resp.Company)
	assert.Equal(t, company.NameEn, resp.Company.Name)
	require.NotNil(t, resp.Client)
	assert.Equal(t, client.NameEn, resp.Client.Name)

	assert.Equal(t, entity.AppointmentStatusPending, appointmentStatus(t, db, resp.ID))
}

func TestAppointmentUsecase_Book_Errors(t *testing.T) {
	uc, db := newAppointmentUsecase(t)
	ctx := context.Background()

	company := testhelper.CreateCompany(t, db, nil)
	client := testhelper.CreateClient(t, db)

	tests := []struct {
		name      string
		userID    uuid.UUID
		companyID int64
		req       dto.BookAppointmentRequest
		wantErr   error
	}{
		{
			name:      "missing company",
			userID:    client.UserID,
			companyID: company.ID + 100,
			req:       dto.BookAppointmentRequest{Date: "2024-06-01", Time: "10:00"},
			wantErr:   ErrCompanyNotFound,
		},
		{
			name:      "caller without client profile",
			userID:    company.UserID,
			companyID: company.ID,
			req:       dto.BookAppointmentRequest{Date: "2024-06-01", Time: "10:00"},
			wantErr:   ErrClientNotFound,
		},
		{
			name:      "missing company reported before malformed date",
			userID:    client.UserID,
			companyID: company.ID + 100,
			req:       dto.BookAppointmentRequest{Date: "tomorrow", Time: "10:00"},
			wantErr:   ErrCompanyNotFound,
		},
		{
			name:      "malformed date",
			userID:    client.UserID,
			companyID: company.ID,
			req:       dto.BookAppointmentRequest{Date: "01/06/2024", Time: "10:00"},
			wantErr:   entity.ErrInvalidAppointmentDate,
		},
		{
			name:      "malformed time",
			userID:    client.UserID,
			companyID: company.ID,
			req:       dto.BookAppointmentRequest{Date: "2024-06-01", Time: "25:00"},
			wantErr:   entity.ErrInvalidAppointmentTime,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Book(ctx, tt.userID, tt.companyID, &tt.req, entity.LanguageEnglish)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	var count int64
	require.NoError(t, db.Model(&entity.Appointment{}).Count(&count).Error)
	assert.Zero(t, count, "failed bookings must not leave rows behind")
}

func TestAppointmentUsecase_Book_AllowsOverlap(t *testing.T) {
	uc, db := newAppointmentUsecase(t)
	ctx := context.Background()

	company := testhelper.CreateCompany(t, db, nil)
	client := testhelper.CreateClient(t, db)
	req := &dto.BookAppointmentRequest{Date: "2024-06-01", Time: "10:00"}

	first, err := uc.Book(ctx, client.UserID, company.ID, req, entity.LanguageEnglish)
	require.NoError(t, err)
	second, err := uc.Book(ctx, client.UserID, company.ID, req, entity.LanguageEnglish)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

// TestAppointmentUsecase_Cancel tests that only the owning client can cancel
func TestAppointmentUsecase_Cancel(t *testing.T) {
	uc, db := newAppointmentUsecase(t)
	ctx := context.Background()

	company := testhelper.CreateCompany(t, db, nil)
	owner := testhelper.CreateClient(t, db)
	stranger := testhelper.CreateClient(t, db)
	appointment := testhelper.CreateAppointment(t, db, owner, company, "2024-06-01", "10:00:00", entity.AppointmentStatusPending)

	err := uc.Cancel(ctx, stranger.UserID, appointment.ID)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
	assert.Equal(t, entity.AppointmentStatusPending, appointmentStatus(t, db, appointment.ID), "appointment must survive")

	require.NoError(t, uc.Cancel(ctx, owner.UserID, appointment.ID))

	var count int64
	require.NoError(t, db.Model(&entity.Appointment{}).Where("id = ?", appointment.ID).Count(&count).Error)
	assert.Zero(t, count)

	err = uc.Cancel(ctx, owner.UserID, appointment.ID)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

// TestAppointmentUsecase_ChangeStatus tests transitions between any two known statuses
func TestAppointmentUsecase_ChangeStatus(t *testing.T) {
	uc, db := newAppointmentUsecase(t)
	ctx := context.Background()

	company := testhelper.CreateCompany(t, db, nil)
	client := testhelper.CreateClient(t, db)
	appointment := testhelper.CreateAppointment(t, db, client, company, "2024-06-01", "10:00:00", entity.AppointmentStatusPending)

	for _, status := range []string{"confirmed", "confirmed", "pending", "canceled", "confirmed"} {
		resp, err := uc.ChangeStatus(ctx, company.UserID, appointment.ID,
			&dto.ChangeAppointmentStatusRequest{Status: status}, entity.LanguageEnglish)
		require.NoError(t, err, "status %s", status)
		assert.Equal(t, status, resp.Status)
		assert.Equal(t, entity.AppointmentStatus(status), appointmentStatus(t, db, appointment.ID))
	}

	var audits int64
	require.NoError(t, db.Model(&entity.AuditLog{}).
		Where("action = ?", entity.AuditActionAppointmentStatus).
		Count(&audits).Error)
	assert.Equal(t, int64(4), audits, "same-state writes are not audited")
}

func TestAppointmentUsecase_ChangeStatus_Invalid(t *testing.T) {
	uc, db := newAppointmentUsecase(t)
	ctx := context.Background()

	company := testhelper.CreateCompany(t, db, nil)
	otherCompany := testhelper.CreateCompany(t, db, nil)
	client := testhelper.CreateClient(t, db)
	appointment := testhelper.CreateAppointment(t, db, client, company, "2024-06-01", "10:00:00", entity.AppointmentStatusConfirmed)

	t.Run("unknown status", func(t *testing.T) {
		_, err := uc.ChangeStatus(ctx, company.UserID, appointment.ID,
			&dto.ChangeAppointmentStatusRequest{Status: "done"}, entity.LanguageEnglish)
		assert.ErrorIs(t, err, ErrInvalidAppointmentStatus)
		assert.True(t, IsInvalidInput(err))
		assert.Equal(t, entity.AppointmentStatusConfirmed, appointmentStatus(t, db, appointment.ID))
	})

	t.Run("status values are case-sensitive", func(t *testing.T) {
		_, err := uc.ChangeStatus(ctx, company.UserID, appointment.ID,
			&dto.ChangeAppointmentStatusRequest{Status: "Pending"}, entity.LanguageEnglish)
		assert.ErrorIs(t, err, ErrInvalidAppointmentStatus)
	})

	t.Run("another company gets not found before validation", func(t *testing.T) {
		_, err := uc.ChangeStatus(ctx, otherCompany.UserID, appointment.ID,
			&dto.ChangeAppointmentStatusRequest{Status: "done"}, entity.LanguageEnglish)
		assert.ErrorIs(t, err, ErrAppointmentNotFound)
	})

	t.Run("another company cannot change a valid status", func(t *testing.T) {
		_, err := uc.ChangeStatus(ctx, otherCompany.UserID, appointment.ID,
			&dto.ChangeAppointmentStatusRequest{Status: "canceled"}, entity.LanguageEnglish)
		assert.ErrorIs(t, err, ErrAppointmentNotFound)
		assert.Equal(t, entity.AppointmentStatusConfirmed, appointmentStatus(t, db, appointment.ID))
	})

	t.Run("missing appointment", func(t *testing.T) {
		_, err := uc.ChangeStatus(ctx, company.UserID, appointment.ID+100,
			&dto.ChangeAppointmentStatusRequest{Status: "pending"}, entity.LanguageEnglish)
		assert.ErrorIs(t, err, ErrAppointmentNotFound)
	})
}

// TestAppointmentUsecase_Listing tests per-role scoping, filtering and paging
func TestAppointmentUsecase_Listing(t *testing.T) {
	uc, db := newAppointmentUsecase(t)
	ctx := context.Background()

	company := testhelper.CreateCompany(t, db, nil)
	otherCompany := testhelper.CreateCompany(t, db, nil)
	client := testhelper.CreateClient(t, db)
	otherClient := testhelper.CreateClient(t, db)

	for day := 1; day <= 12; day++ {
		status := entity.AppointmentStatusPending
		if day%3 == 0 {
			status = entity.AppointmentStatusConfirmed
		}
		date := "2024-07-" + twoDigits(day)
		testhelper.CreateAppointment(t, db, client, company, date, "09:00:00", status)
	}
	testhelper.CreateAppointment(t, db, otherClient, company, "2024-07-01", "08:00:00", entity.AppointmentStatusPending)
	testhelper.CreateAppointment(t, db, client, otherCompany, "2024-07-01", "08:00:00", entity.AppointmentStatusPending)

	t.Run("client default page", func(t *testing.T) {
		page, err := uc.GetClientAppointments(ctx, client.UserID, nil, entity.LanguageEnglish)
		require.NoError(t, err)
		assert.Equal(t, int64(13), page.Total)
		assert.Len(t, page.Items, dto.DefaultPageLimit)
		assert.Equal(t, dto.DefaultPageLimit, page.Limit)
	})

	t.Run("client status filter", func(t *testing.T) {
		page, err := uc.GetClientAppointments(ctx, client.UserID,
			&dto.ListAppointmentsRequest{Status: "confirmed"}, entity.LanguageEnglish)
		require.NoError(t, err)
		assert.Equal(t, int64(4), page.Total)
		for _, item := range page.Items {
			assert.Equal(t, "confirmed", item.Status)
		}
	})

	t.Run("company window", func(t *testing.T) {
		limit := 2
		page, err := uc.GetCompanyAppointments(ctx, company.UserID,
			&dto.ListAppointmentsRequest{Limit: &limit, Offset: 1}, entity.LanguageEnglish)
		require.NoError(t, err)
		assert.Equal(t, int64(13), page.Total)
		require.Len(t, page.Items, 2)
		assert.Equal(t, "2024-07-01", page.Items[0].Date)
		assert.Equal(t, "09:00:00", page.Items[0].Time)
		assert.Equal(t, "2024-07-02", page.Items[1].Date)
		for _, item := range page.Items {
			require.NotNil(t, item.Client)
			assert.Equal(t, client.ID, item.Client.ID)
		}
	})

	t.Run("invalid status filter", func(t *testing.T) {
		_, err := uc.GetCompanyAppointments(ctx, company.UserID,
			&dto.ListAppointmentsRequest{Status: "archived"}, entity.LanguageEnglish)
		assert.ErrorIs(t, err, ErrInvalidAppointmentStatus)
	})

	t.Run("wrong role", func(t *testing.T) {
		_, err := uc.GetCompanyAppointments(ctx, client.UserID, nil, entity.LanguageEnglish)
		assert.ErrorIs(t, err, ErrCompanyNotFound)
	})
}

// TestAppointmentUsecase_Localized tests that relations follow the requested language
func TestAppointmentUsecase_Localized(t *testing.T) {
	uc, db := newAppointmentUsecase(t)
	ctx := context.Background()

	company := testhelper.CreateCompany(t, db, nil)
	client := testhelper.CreateClient(t, db)
	testhelper.CreateAppointment(t, db, client, company, "2024-06-01", "10:00:00", entity.AppointmentStatusPending)

	page, err := uc.GetClientAppointments(ctx, client.UserID, nil, entity.LanguageArabic)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, company.NameAr, page.Items[0].Company.Name)
	assert.Equal(t, company.AddressAr, page.Items[0].Company.Address)
	assert.Equal(t, client.NameAr, page.Items[0].Client.Name)
}

func twoDigits(n int) string {
	return string([]byte{byte('0' + n/10), byte('0' + n%10)})
}
