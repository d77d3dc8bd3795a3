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

type ProfileUsecase interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*dto.ProfileResponse, error)
}

type profileUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	clientRepo  repository.ClientRepository
}

func NewProfileUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	companyRepo repository.CompanyRepository,
	clientRepo repository.ClientRepository,
) ProfileUsecase {
	return &profileUsecase{
		db:          db,
		log:         log,
		userRepo:    userRepo,
		companyRepo: companyRepo,
		clientRepo:  clientRepo,
	}
}

// GetProfile returns the owner's view of whichever profile the user holds.
func (u *profileUsecase) GetProfile(ctx context.Context, userID uuid.UUID) (*dto.ProfileResponse, error) {
	user, err := u.userRepo.FindByID(ctx, u.db, userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	response := &dto.ProfileResponse{UserType: string(user.Role)}

	switch user.Role {
	case entity.RoleCompany:
		company, err := u.companyRepo.FindByUserID(ctx, u.db, user.ID)
		if err != nil {
			u.log.Warnf("Failed to find company for user %s: %+v", user.ID, err)
			return nil, err
		}
		if company == nil {
			return nil, ErrCompanyNotFound
		}
		response.Company = converter.CompanyToProfileResponse(company)
	case entity.RoleClient:
		client, err := u.clientRepo.FindByUserID(ctx, u.db, user.ID)
		if err != nil {
			u.log.Warnf("Failed to find client for user %s: %+v", user.ID, err)
			return nil, err
		}
		if client == nil {
			return nil, ErrClientNotFound
		}
		response.Client = converter.ClientToProfileResponse(client)
	}

	return response, nil
}
