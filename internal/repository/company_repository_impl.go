package repository

import (
	"context"
	"errors"

	"dawrni-api/internal/domain/entity"
	domainRepo "dawrni-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type companyRepository struct{}

func NewCompanyRepository() domainRepo.CompanyRepository {
	return &companyRepository{}
}

func (r *companyRepository) Create(ctx context.Context, db *gorm.DB, company *entity.Company) error {
	return db.WithContext(ctx).Omit("User", "Category", "Photos").Create(company).Error
}

func (r *companyRepository) FindByID(ctx context.Context, db *gorm.DB, id int64) (*entity.Company, error) {
	var company entity.Company
	err := db.WithContext(ctx).
		Preload("User").
		Preload("Photos", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("id = ?", id).
		First(&company).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &company, nil
}

func (r *companyRepository) FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.Company, error) {
	var company entity.Company
	err := db.WithContext(ctx).
		Preload("User").
		Preload("Photos", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("user_id = ?", userID).
		First(&company).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &company, nil
}

// FindListed returns companies whose profile is complete enough for the directory.
// Supports optional filters: name search and category.
func (r *companyRepository) FindListed(ctx context.Context, db *gorm.DB, filter *entity.CompanyFilter) ([]entity.Company, int64, error) {
	query := db.WithContext(ctx).Model(&entity.Company{}).
		Where("name_en IS NOT NULL AND name_en <> ''").
		Where("category_id IS NOT NULL").
		Where("address_en IS NOT NULL AND address_en <> ''").
		Where("about_en IS NOT NULL AND about_en <> ''")

	page := entity.Page{}
	if filter != nil {
		if filter.Search != "" {
			pattern := containsPattern(filter.Search)
			query = query.Where("LOWER(name_ar) LIKE ? OR LOWER(name_en) LIKE ?", pattern, pattern)
		}
		if filter.CategoryID != nil {
			query = query.Where("category_id = ?", *filter.CategoryID)
		}
		page = filter.Page
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var companies []entity.Company
	err := query.
		Preload("User").
		Preload("Photos", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Scopes(paginate(page)).
		Order("id ASC").
		Find(&companies).Error
	if err != nil {
		return nil, 0, err
	}
	return companies, total, nil
}

func (r *companyRepository) Update(ctx context.Context, db *gorm.DB, company *entity.Company) error {
	return db.WithContext(ctx).Omit("User", "Category", "Photos").Save(company).Error
}

type companyPhotoRepository struct{}

func NewCompanyPhotoRepository() domainRepo.CompanyPhotoRepository {
	return &companyPhotoRepository{}
}

func (r *companyPhotoRepository) Create(ctx context.Context, db *gorm.DB, photo *entity.CompanyPhoto) error {
	return db.WithContext(ctx).Create(photo).Error
}

func (r *companyPhotoRepository) FindByIDAndCompany(ctx context.Context, db *gorm.DB, id, companyID int64) (*entity.CompanyPhoto, error) {
	var photo entity.CompanyPhoto
	err := db.WithContext(ctx).Where("id = ? AND company_id = ?", id, companyID).First(&photo).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &photo, nil
}

func (r *companyPhotoRepository) Delete(ctx context.Context, db *gorm.DB, id int64) (int64, error) {
	result := db.WithContext(ctx).Where("id = ?", id).Delete(&entity.CompanyPhoto{})
	return result.RowsAffected, result.Error
}

type categoryRepository struct{}

func NewCategoryRepository() domainRepo.CategoryRepository {
	return &categoryRepository{}
}

func (r *categoryRepository) FindAll(ctx context.Context, db *gorm.DB) ([]entity.Category, error) {
	var categories []entity.Category
	if err := db.WithContext(ctx).Order("id ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) FindByID(ctx context.Context, db *gorm.DB, id int64) (*entity.Category, error) {
	var category entity.Category
	err := db.WithContext(ctx).Where("id = ?", id).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}
