package repository

import (
	"context"
	"errors"

	"dawrni-api/internal/domain/entity"
	domainRepo "dawrni-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type clientRepository struct{}

func NewClientRepository() domainRepo.ClientRepository {
	return &clientRepository{}
}

func (r *clientRepository) Create(ctx context.Context, db *gorm.DB, client *entity.Client) error {
	return db.WithContext(ctx).Omit("User").Create(client).Error
}

func (r *clientRepository) FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.Client, error) {
	var client entity.Client
	err := db.WithContext(ctx).Where("user_id = ?", userID).First(&client).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) FindAll(ctx context.Context, db *gorm.DB, filter *entity.ClientFilter) ([]entity.Client, int64, error) {
	query := db.WithContext(ctx).Model(&entity.Client{})

	page := entity.Page{}
	if filter != nil {
		if filter.Search != "" {
			pattern := containsPattern(filter.Search)
			query = query.Where("LOWER(name_ar) LIKE ? OR LOWER(name_en) LIKE ?", pattern, pattern)
		}
		page = filter.Page
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var clients []entity.Client
	if err := query.Scopes(paginate(page)).Order("id ASC").Find(&clients).Error; err != nil {
		return nil, 0, err
	}
	return clients, total, nil
}

func (r *clientRepository) Update(ctx context.Context, db *gorm.DB, client *entity.Client) error {
	return db.WithContext(ctx).Omit("User").Save(client).Error
}
