package repository

import (
	"context"

	"dawrni-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClientRepository interface {
	Create(ctx context.Context, db *gorm.DB, client *entity.Client) error
	FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.Client, error)
	FindAll(ctx context.Context, db *gorm.DB, filter *entity.ClientFilter) ([]entity.Client, int64, error)
	Update(ctx context.Context, db *gorm.DB, client *entity.Client) error
}
