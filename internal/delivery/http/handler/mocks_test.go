package handler

import (
	"context"
	"io"

	"dawrni-api/internal/delivery/dto"
	"dawrni-api/internal/domain/entity"
	"dawrni-api/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockAppointmentUsecase struct {
	mock.Mock
}

func (m *mockAppointmentUsecase) Book(ctx context.Context, userID uuid.UUID, companyID int64, req *dto.BookAppointmentRequest, lang entity.Language) (*dto.AppointmentResponse, error) {
	args := m.Called(ctx, userID, companyID, req, lang)
	resp, _ := args.Get(0).(*dto.AppointmentResponse)
	return resp, args.Error(1)
}

func (m *mockAppointmentUsecase) Cancel(ctx context.Context, userID uuid.UUID, appointmentID int64) error {
	return m.Called(ctx, userID, appointmentID).Error(0)
}

func (m *mockAppointmentUsecase) ChangeStatus(ctx context.Context, userID uuid.UUID, appointmentID int64, req *dto.ChangeAppointmentStatusRequest, lang entity.Language) (*dto.AppointmentResponse, error) {
	args := m.Called(ctx, userID, appointmentID, req, lang)
	resp, _ := args.Get(0).(*dto.AppointmentResponse)
	return resp, args.Error(1)
}

func (m *mockAppointmentUsecase) GetClientAppointments(ctx context.Context, userID uuid.UUID, req *dto.ListAppointmentsRequest, lang entity.Language) (*dto.ListResult[dto.AppointmentResponse], error) {
	args := m.Called(ctx, userID, req, lang)
	resp, _ := args.Get(0).(*dto.ListResult[dto.AppointmentResponse])
	return resp, args.Error(1)
}

func (m *mockAppointmentUsecase) GetCompanyAppointments(ctx context.Context, userID uuid.UUID, req *dto.ListAppointmentsRequest, lang entity.Language) (*dto.ListResult[dto.AppointmentResponse], error) {
	args := m.Called(ctx, userID, req, lang)
	resp, _ := args.Get(0).(*dto.ListResult[dto.AppointmentResponse])
	return resp, args.Error(1)
}

type mockFavoriteUsecase struct {
	mock.Mock
}

func (m *mockFavoriteUsecase) Add(ctx context.Context, userID uuid.UUID, companyID int64, lang entity.Language) (*dto.CompanyResponse, bool, error) {
	args := m.Called(ctx, userID, companyID, lang)
	resp, _ := args.Get(0).(*dto.CompanyResponse)
	return resp, args.Bool(1), args.Error(2)
}

func (m *mockFavoriteUsecase) Remove(ctx context.Context, userID uuid.UUID, companyID int64) error {
	return m.Called(ctx, userID, companyID).Error(0)
}

func (m *mockFavoriteUsecase) List(ctx context.Context, userID uuid.UUID, req *dto.PageRequest, lang entity.Language) (*dto.ListResult[dto.CompanyResponse], error) {
	args := m.Called(ctx, userID, req, lang)
	resp, _ := args.Get(0).(*dto.ListResult[dto.CompanyResponse])
	return resp, args.Error(1)
}

type mockCompanyUsecase struct {
	mock.Mock
}

func (m *mockCompanyUsecase) ListCompanies(ctx context.Context, caller usecase.Caller, req *dto.ListCompaniesRequest, lang entity.Language) (*dto.ListResult[dto.CompanyResponse], error) {
	args := m.Called(ctx, caller, req, lang)
	resp, _ := args.Get(0).(*dto.ListResult[dto.CompanyResponse])
	return resp, args.Error(1)
}

func (m *mockCompanyUsecase) GetCompany(ctx context.Context, caller usecase.Caller, companyID int64, lang entity.Language) (*dto.CompanyResponse, error) {
	args := m.Called(ctx, caller, companyID, lang)
	resp, _ := args.Get(0).(*dto.CompanyResponse)
	return resp, args.Error(1)
}

func (m *mockCompanyUsecase) GetCategories(ctx context.Context) ([]dto.CategoryResponse, error) {
	args := m.Called(ctx)
	resp, _ := args.Get(0).([]dto.CategoryResponse)
	return resp, args.Error(1)
}

func (m *mockCompanyUsecase) UpdateCompany(ctx context.Context, userID uuid.UUID, req *dto.UpdateCompanyRequest, image io.Reader) (*dto.CompanyProfileResponse, error) {
	args := m.Called(ctx, userID, req, image)
	resp, _ := args.Get(0).(*dto.CompanyProfileResponse)
	return resp, args.Error(1)
}

func (m *mockCompanyUsecase) DeleteCompanyImage(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockCompanyUsecase) AddCompanyPhoto(ctx context.Context, userID uuid.UUID, image io.Reader) (*dto.CompanyPhotoResponse, error) {
	args := m.Called(ctx, userID, image)
	resp, _ := args.Get(0).(*dto.CompanyPhotoResponse)
	return resp, args.Error(1)
}

func (m *mockCompanyUsecase) DeleteCompanyPhoto(ctx context.Context, userID uuid.UUID, photoID int64) error {
	return m.Called(ctx, userID, photoID).Error(0)
}

type mockAuthUsecase struct {
	mock.Mock
}

func (m *mockAuthUsecase) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*dto.AuthResponse)
	return resp, args.Error(1)
}

func (m *mockAuthUsecase) VerifyAccount(ctx context.Context, req *dto.VerifyAccountRequest) (*dto.UserResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*dto.UserResponse)
	return resp, args.Error(1)
}

func (m *mockAuthUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*dto.AuthResponse)
	return resp, args.Error(1)
}

func (m *mockAuthUsecase) Logout(ctx context.Context, userID uuid.UUID, accessTokenID string) error {
	return m.Called(ctx, userID, accessTokenID).Error(0)
}

func (m *mockAuthUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*dto.TokenResponse)
	return resp, args.Error(1)
}

func (m *mockAuthUsecase) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	args := m.Called(ctx, userID)
	resp, _ := args.Get(0).(*dto.UserResponse)
	return resp, args.Error(1)
}
