package repository

import (
	"context"

	"dawrni-api/internal/domain/entity"

	"gorm.io/gorm"
)

type FavoriteRepository interface {
	// CreateIfNotExists inserts the favorite unless the (client, company) pair already
	// exists. It reports whether a row was inserted.
	CreateIfNotExists(ctx context.Context, db *gorm.DB, favorite *entity.Favorite) (bool, error)
	DeleteByClientAndCompany(ctx context.Context, db *gorm.DB, clientID, companyID int64) (int64, error)
	FindByClientID(ctx context.Context, db *gorm.DB, clientID int64, page entity.Page) ([]entity.Favorite, int64, error)
	FindFavoriteCompanyIDs(ctx context.Context, db *gorm.DB, clientID int64, companyIDs []int64) (map[int64]bool, error)
}
