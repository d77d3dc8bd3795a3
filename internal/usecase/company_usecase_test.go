package usecase

import (
	"context"
	"strings"
	"testing"

	"dawrni-api/internal/delivery/dto"
	"dawrni-api/internal/domain/entity"
	"dawrni-api/internal/repository"
	"dawrni-api/internal/testhelper"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCompanyUsecase(t *testing.T) (CompanyUsecase, *gorm.DB, *fakeStorage) {
	t.Helper()

	db := testhelper.NewTestDB(t)
	storage := &fakeStorage{}
	uc := NewCompanyUsecase(
		db,
		testhelper.NewLogger(),
		repository.NewCompanyRepository(),
		repository.NewCompanyPhotoRepository(),
		repository.NewCategoryRepository(),
		repository.NewClientRepository(),
		repository.NewFavoriteRepository(),
		storage,
		newAuditService(),
	)
	return uc, db, storage
}

func ptr[T any](v T) *T { return &v }

func TestCompanyUsecase_ListCompanies(t *testing.T) {
	uc, db, _ := newCompanyUsecase(t)
	ctx := context.Background()

	category := testhelper.CreateCategory(t, db, "Cleaning")
	listed := testhelper.CreateCompany(t, db, func(c *entity.Company) { c.CategoryID = &category.ID })
	liked := testhelper.CreateCompany(t, db, func(c *entity.Company) { c.CategoryID = &category.ID })
	testhelper.CreateCompany(t, db, nil)

	client := testhelper.CreateClient(t, db)
	require.NoError(t, db.Create(&entity.Favorite{ClientID: client.ID, CompanyID: liked.ID}).Error)

	page, err := uc.ListCompanies(ctx, Caller{UserID: client.UserID, Role: entity.RoleClient}, nil, entity.LanguageArabic)
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	require.Len(t, page.Items, 2)

	assert.Equal(t, listed.ID, page.Items[0].ID)
	assert.Equal(t, listed.NameAr, page.Items[0].Name)
	assert.False(t, *page.Items[0].IsFavorite)
	assert.Equal(t, liked.ID, page.Items[1].ID)
	assert.True(t, *page.Items[1].IsFavorite)

	page, err = uc.ListCompanies(ctx, Caller{UserID: listed.UserID, Role: entity.RoleCompany}, nil, entity.LanguageEnglish)
	require.NoError(t, err)
	for _, item := range page.Items {
		assert.Nil(t, item.IsFavorite)
	}
}

func TestCompanyUsecase_GetCompany_NotFound(t *testing.T) {
	uc, _, _ := newCompanyUsecase(t)

	_, err := uc.GetCompany(context.Background(), Caller{}, 42, entity.LanguageEnglish)
	assert.ErrorIs(t, err, ErrCompanyNotFound)
}

// TestCompanyUsecase_UpdateCompany tests partial updates and image replacement
func TestCompanyUsecase_UpdateCompany(t *testing.T) {
	uc, db, storage := newCompanyUsecase(t)
	ctx := context.Background()

	category := testhelper.CreateCategory(t, db, "Repairs")
	company := testhelper.CreateCompany(t, db, func(c *entity.Company) { c.Image = "https://cdn.test/old.jpg" })

	lat := decimal.RequireFromString("24.713600")
	resp, err := uc.UpdateCompany(ctx, company.UserID, &dto.UpdateCompanyRequest{
		NameEn:      ptr("Acme Repairs"),
		CategoryID:  &category.ID,
		IsCertified: ptr(true),
		Lat:         &lat,
	}, strings.NewReader("jpeg"))
	require.NoError(t, err)

	assert.Equal(t, "Acme Repairs", resp.NameEn)
	assert.Equal(t, company.NameAr, resp.NameAr, "omitted fields stay unchanged")
	assert.Equal(t, &category.ID, resp.CategoryID)
	assert.True(t, resp.IsCertified)
	assert.True(t, resp.Lat.Valid)
	assert.True(t, resp.Lat.Decimal.Equal(lat))
	assert.False(t, resp.Lng.Valid)
	assert.Equal(t, "https://cdn.test/companies/1.jpg", resp.Image)
	assert.Equal(t, []string{"https://cdn.test/old.jpg"}, storage.deleted)

	var stored entity.Company
	require.NoError(t, db.First(&stored, company.ID).Error)
	assert.Equal(t, "Acme Repairs", stored.NameEn)
	assert.True(t, stored.IsListed())

	var audits int64
	require.NoError(t, db.Model(&entity.AuditLog{}).Where("action = ?", entity.AuditActionCompanyUpdate).Count(&audits).Error)
	assert.Equal(t, int64(1), audits)
}

func TestCompanyUsecase_UpdateCompany_Errors(t *testing.T) {
	uc, db, storage := newCompanyUsecase(t)
	ctx := context.Background()

	company := testhelper.CreateCompany(t, db, nil)

	t.Run("unknown category discards the upload", func(t *testing.T) {
		_, err := uc.UpdateCompany(ctx, company.UserID, &dto.UpdateCompanyRequest{
			CategoryID: ptr(int64(99)),
		}, strings.NewReader("jpeg"))
		assert.ErrorIs(t, err, ErrCategoryNotFound)
		require.Len(t, storage.uploads, 1)
		assert.Equal(t, storage.uploads, storage.deleted)
	})

	t.Run("latitude out of range", func(t *testing.T) {
		_, err := uc.UpdateCompany(ctx, company.UserID, &dto.UpdateCompanyRequest{
			Lat: ptr(decimal.NewFromInt(91)),
		}, nil)
		assert.ErrorIs(t, err, ErrInvalidCoordinates)
	})

	t.Run("longitude out of range", func(t *testing.T) {
		_, err := uc.UpdateCompany(ctx, company.UserID, &dto.UpdateCompanyRequest{
			Lng: ptr(decimal.NewFromInt(-181)),
		}, nil)
		assert.ErrorIs(t, err, ErrInvalidCoordinates)
	})

	t.Run("upload failure", func(t *testing.T) {
		storage.uploadErr = errUploadFailed
		defer func() { storage.uploadErr = nil }()

		_, err := uc.UpdateCompany(ctx, company.UserID, &dto.UpdateCompanyRequest{}, strings.NewReader("jpeg"))
		assert.ErrorIs(t, err, errUploadFailed)
	})

	t.Run("not a company", func(t *testing.T) {
		client := testhelper.CreateClient(t, db)
		_, err := uc.UpdateCompany(ctx, client.UserID, &dto.UpdateCompanyRequest{}, nil)
		assert.ErrorIs(t, err, ErrCompanyNotFound)
	})
}

func TestCompanyUsecase_DeleteCompanyImage(t *testing.T) {
	uc, db, storage := newCompanyUsecase(t)
	ctx := context.Background()

	company := testhelper.CreateCompany(t, db, func(c *entity.Company) { c.Image = "https://cdn.test/logo.jpg" })

	require.NoError(t, uc.DeleteCompanyImage(ctx, company.UserID))
	assert.Equal(t, []string{"https://cdn.test/logo.jpg"}, storage.deleted)

	var stored entity.Company
	require.NoError(t, db.First(&stored, company.ID).Error)
	assert.Empty(t, stored.Image)

	assert.ErrorIs(t, uc.DeleteCompanyImage(ctx, company.UserID), ErrNoImage)
}

// TestCompanyUsecase_Photos tests that a company manages only its own photos
func TestCompanyUsecase_Photos(t *testing.T) {
	uc, db, storage := newCompanyUsecase(t)
	ctx := context.Background()

	company := testhelper.CreateCompany(t, db, nil)
	other := testhelper.CreateCompany(t, db, nil)

	photo, err := uc.AddCompanyPhoto(ctx, company.UserID, strings.NewReader("jpeg"))
	require.NoError(t, err)
	assert.NotZero(t, photo.ID)
	assert.Equal(t, "https://cdn.test/company_photos/1.jpg", photo.Image)

	err = uc.DeleteCompanyPhoto(ctx, other.UserID, photo.ID)
	assert.ErrorIs(t, err, ErrPhotoNotFound)
	assert.Empty(t, storage.deleted)

	require.NoError(t, uc.DeleteCompanyPhoto(ctx, company.UserID, photo.ID))
	assert.Equal(t, []string{photo.Image}, storage.deleted)

	err = uc.DeleteCompanyPhoto(ctx, company.UserID, photo.ID)
	assert.ErrorIs(t, err, ErrPhotoNotFound)
}

func TestCompanyUsecase_GetCategories(t *testing.T) {
	uc, db, _ := newCompanyUsecase(t)

	testhelper.CreateCategory(t, db, "Cleaning")
	testhelper.CreateCategory(t, db, "Repairs")

	categories, err := uc.GetCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Cleaning", categories[0].Name)
	assert.Equal(t, "Repairs", categories[1].Name)
}
