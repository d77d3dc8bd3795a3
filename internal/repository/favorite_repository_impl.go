package repository

import (
	"context"

	"dawrni-api/internal/domain/entity"
	domainRepo "dawrni-api/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type favoriteRepository struct{}

func NewFavoriteRepository() domainRepo.FavoriteRepository {
	return &favoriteRepository{}
}

// CreateIfNotExists relies on the (client_id, company_id) unique index so that
// concurrent adds for the same pair insert exactly one row.
func (r *favoriteRepository) CreateIfNotExists(ctx context.Context, db *gorm.DB, favorite *entity.Favorite) (bool, error) {
	result := db.WithContext(ctx).
		Omit("Client", "Company").
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "client_id"}, {Name: "company_id"}},
			DoNothing: true,
		}).
		Create(favorite)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *favoriteRepository) DeleteByClientAndCompany(ctx context.Context, db *gorm.DB, clientID, companyID int64) (int64, error) {
	result := db.WithContext(ctx).
		Where("client_id = ? AND company_id = ?", clientID, companyID).
		Delete(&entity.Favorite{})
	return result.RowsAffected, result.Error
}

func (r *favoriteRepository) FindByClientID(ctx context.Context, db *gorm.DB, clientID int64, page entity.Page) ([]entity.Favorite, int64, error) {
	query := db.WithContext(ctx).Model(&entity.Favorite{}).
		Where("client_id = ?", clientID).
		Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var favorites []entity.Favorite
	err := query.
		Preload("Company").
		Preload("Company.User").
		Preload("Company.Photos", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Scopes(paginate(page)).
		Order("id ASC").
		Find(&favorites).Error
	if err != nil {
		return nil, 0, err
	}
	return favorites, total, nil
}

// FindFavoriteCompanyIDs reports which of companyIDs the client has favorited.
func (r *favoriteRepository) FindFavoriteCompanyIDs(ctx context.Context, db *gorm.DB, clientID int64, companyIDs []int64) (map[int64]bool, error) {
	favorites := make(map[int64]bool, len(companyIDs))
	if len(companyIDs) == 0 {
		return favorites, nil
	}

	var ids []int64
	err := db.WithContext(ctx).Model(&entity.Favorite{}).
		Where("client_id = ? AND company_id IN ?", clientID, companyIDs).
		Pluck("company_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		favorites[id] = true
	}
	return favorites, nil
}
