package usecase

import (
	"context"

	"dawrni-api/internal/converter"
	"dawrni-api/internal/delivery/dto"
	"dawrni-api/internal/domain/entity"
	"dawrni-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type FavoriteUsecase interface {
	// Add returns the favorited company and whether a new favorite was created.
	Add(ctx context.Context, userID uuid.UUID, companyID int64, lang entity.Language) (*dto.CompanyResponse, bool, error)
	Remove(ctx context.Context, userID uuid.UUID, companyID int64) error
	// List returns every favorite of the client when req is nil, otherwise one page of them.
	List(ctx context.Context, userID uuid.UUID, req *dto.PageRequest, lang entity.Language) (*dto.ListResult[dto.CompanyResponse], error)
}

type favoriteUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	favoriteRepo repository.FavoriteRepository
	companyRepo  repository.CompanyRepository
	clientRepo   repository.ClientRepository
}

func NewFavoriteUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	favoriteRepo repository.FavoriteRepository,
	companyRepo repository.CompanyRepository,
	clientRepo repository.ClientRepository,
) FavoriteUsecase {
	return &favoriteUsecase{
		db:           db,
		log:          log,
		favoriteRepo: favoriteRepo,
		companyRepo:  companyRepo,
		clientRepo:   clientRepo,
	}
}

// Add is get-or-create on the (client, company) pair; repeating it is not an error.
func (u *favoriteUsecase) Add(ctx context.Context, userID uuid.UUID, companyID int64, lang entity.Language) (*dto.CompanyResponse, bool, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	client, company, err := u.findPair(ctx, tx, userID, companyID)
	if err != nil {
		return nil, false, err
	}

	created, err := u.favoriteRepo.CreateIfNotExists(ctx, tx, &entity.Favorite{
		ClientID:  client.ID,
		CompanyID: company.ID,
	})
	if err != nil {
		u.log.Warnf("Failed to create favorite (%d, %d): %+v", client.ID, company.ID, err)
		return nil, false, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, false, err
	}

	isFavorite := true
	return converter.CompanyToResponse(company, lang, &isFavorite), created, nil
}

// Remove deletes the client's favorite of the company if there is one.
func (u *favoriteUsecase) Remove(ctx context.Context, userID uuid.UUID, companyID int64) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	client, company, err := u.findPair(ctx, tx, userID, companyID)
	if err != nil {
		return err
	}

	if _, err := u.favoriteRepo.DeleteByClientAndCompany(ctx, tx, client.ID, company.ID); err != nil {
		u.log.Warnf("Failed to delete favorite (%d, %d): %+v", client.ID, company.ID, err)
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

func (u *favoriteUsecase) List(ctx context.Context, userID uuid.UUID, req *dto.PageRequest, lang entity.Language) (*dto.ListResult[dto.CompanyResponse], error) {
	var page entity.Page
	if req != nil {
		page = entity.Page{Limit: dto.PageLimit(req.Limit), Offset: req.Offset}
	}

	client, err := u.clientRepo.FindByUserID(ctx, u.db, userID)
	if err != nil {
		u.log.Warnf("Failed to find client for user %s: %+v", userID, err)
		return nil, err
	}
	if client == nil {
		return nil, ErrClientNotFound
	}

	favorites, total, err := u.favoriteRepo.FindByClientID(ctx, u.db, client.ID, page)
	if err != nil {
		u.log.Warnf("Failed to list favorites for client %d: %+v", client.ID, err)
		return nil, err
	}

	isFavorite := true
	items := make([]dto.CompanyResponse, 0, len(favorites))
	for i := range favorites {
		items = append(items, *converter.CompanyToResponse(&favorites[i].Company, lang, &isFavorite))
	}

	return &dto.ListResult[dto.CompanyResponse]{
		Items:  items,
		Total:  total,
		Limit:  page.Limit,
		Offset: page.Offset,
	}, nil
}

func (u *favoriteUsecase) findPair(ctx context.Context, tx *gorm.DB, userID uuid.UUID, companyID int64) (*entity.Client, *entity.Company, error) {
	client, err := u.clientRepo.FindByUserID(ctx, tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find client for user %s: %+v", userID, err)
		return nil, nil, err
	}
	if client == nil {
		return nil, nil, ErrClientNotFound
	}

	company, err := u.companyRepo.FindByID(ctx, tx, companyID)
	if err != nil {
		u.log.Warnf("Failed to find company %d: %+v", companyID, err)
		return nil, nil, err
	}
	if company == nil {
		return nil, nil, ErrCompanyNotFound
	}

	return client, company, nil
}
