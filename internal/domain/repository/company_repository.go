package repository

import (
	"context"

	"dawrni-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CompanyRepository interface {
	Create(ctx context.Context, db *gorm.DB, company *entity.Company) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*entity.Company, error)
	FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.Company, error)
	FindListed(ctx context.Context, db *gorm.DB, filter *entity.CompanyFilter) ([]entity.Company, int64, error)
	Update(ctx context.Context, db *gorm.DB, company *entity.Company) error
}

type CompanyPhotoRepository interface {
	Create(ctx context.Context, db *gorm.DB, photo *entity.CompanyPhoto) error
	FindByIDAndCompany(ctx context.Context, db *gorm.DB, id, companyID int64) (*entity.CompanyPhoto, error)
	Delete(ctx context.Context, db *gorm.DB, id int64) (int64, error)
}

type CategoryRepository interface {
	FindAll(ctx context.Context, db *gorm.DB) ([]entity.Category, error)
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*entity.Category, error)
}
