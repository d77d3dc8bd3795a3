package usecase

import (
	"context"
	"io"
	"strconv"

	"dawrni-api/internal/converter"
	"dawrni-api/internal/delivery/dto"
	"dawrni-api/internal/domain/entity"
	"dawrni-api/internal/domain/repository"
	"dawrni-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ClientUsecase interface {
	ListClients(ctx context.Context, req *dto.ListClientsRequest, lang entity.Language) (*dto.ListResult[dto.ClientResponse], error)
	UpdateClient(ctx context.Context, userID uuid.UUID, req *dto.UpdateClientRequest, photo io.Reader) (*dto.ClientProfileResponse, error)
}

type clientUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	clientRepo   repository.ClientRepository
	storage      service.ImageStorage
	auditService service.AuditService
}

func NewClientUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	clientRepo repository.ClientRepository,
	storage service.ImageStorage,
	auditService service.AuditService,
) ClientUsecase {
	return &clientUsecase{
		db:           db,
		log:          log,
		clientRepo:   clientRepo,
		storage:      storage,
		auditService: auditService,
	}
}

func (u *clientUsecase) ListClients(ctx context.Context, req *dto.ListClientsRequest, lang entity.Language) (*dto.ListResult[dto.ClientResponse], error) {
	if req == nil {
		req = &dto.ListClientsRequest{}
	}
	filter := &entity.ClientFilter{
		Search: req.Search,
		Page:   entity.Page{Limit: dto.PageLimit(req.Limit), Offset: req.Offset},
	}

	clients, total, err := u.clientRepo.FindAll(ctx, u.db, filter)
	if err != nil {
		u.log.Warnf("Failed to list clients: %+v", err)
		return nil, err
	}

	return &dto.ListResult[dto.ClientResponse]{
		Items:  converter.ClientsToResponse(clients, lang),
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}, nil
}

// UpdateClient applies the non-nil names and, when photo is given, replaces the photo.
func (u *clientUsecase) UpdateClient(ctx context.Context, userID uuid.UUID, req *dto.UpdateClientRequest, photo io.Reader) (*dto.ClientProfileResponse, error) {
	var photoURL string
	if photo != nil {
		url, err := u.storage.Upload(ctx, photo, service.FolderClients)
		if err != nil {
			u.log.Warnf("Failed to upload client photo: %+v", err)
			return nil, err
		}
		photoURL = url
	}

	client, oldPhoto, err := u.updateClient(ctx, userID, req, photoURL)
	if err != nil {
		if photoURL != "" {
			u.discardImage(ctx, photoURL)
		}
		return nil, err
	}

	if photoURL != "" && oldPhoto != "" {
		u.discardImage(ctx, oldPhoto)
	}

	return converter.ClientToProfileResponse(client), nil
}

func (u *clientUsecase) updateClient(ctx context.Context, userID uuid.UUID, req *dto.UpdateClientRequest, photoURL string) (*entity.Client, string, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	client, err := u.clientRepo.FindByUserID(ctx, tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find client for user %s: %+v", userID, err)
		return nil, "", err
	}
	if client == nil {
		return nil, "", ErrClientNotFound
	}

	before := clientSnapshot(client)
	oldPhoto := client.Photo

	applyString(&client.NameEn, req.NameEn)
	applyString(&client.NameAr, req.NameAr)
	if photoURL != "" {
		client.Photo = photoURL
	}

	if err := u.clientRepo.Update(ctx, tx, client); err != nil {
		u.log.Warnf("Failed to update client %d: %+v", client.ID, err)
		return nil, "", err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &userID, entity.AuditActionClientUpdate, "client",
		strconv.FormatInt(client.ID, 10), before, clientSnapshot(client)); err != nil {
		u.log.Warnf("Failed to audit update of client %d: %+v", client.ID, err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, "", err
	}

	return client, oldPhoto, nil
}

func (u *clientUsecase) discardImage(ctx context.Context, url string) {
	if err := u.storage.Delete(ctx, url); err != nil {
		u.log.Warnf("Failed to delete image %s: %+v", url, err)
	}
}

func clientSnapshot(c *entity.Client) map[string]interface{} {
	return map[string]interface{}{
		"name_en": c.NameEn,
		"name_ar": c.NameAr,
		"photo":   c.Photo,
	}
}
