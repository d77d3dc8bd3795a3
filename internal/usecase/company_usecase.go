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
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	maxLatitude  = decimal.NewFromInt(90)
	maxLongitude = decimal.NewFromInt(180)
)

type CompanyUsecase interface {
	ListCompanies(ctx context.Context, caller Caller, req *dto.ListCompaniesRequest, lang entity.Language) (*dto.ListResult[dto.CompanyResponse], error)
	GetCompany(ctx context.Context, caller Caller, companyID int64, lang entity.Language) (*dto.CompanyResponse, error)
	GetCategories(ctx context.Context) ([]dto.CategoryResponse, error)
	UpdateCompany(ctx context.Context, userID uuid.UUID, req *dto.UpdateCompanyRequest, image io.Reader) (*dto.CompanyProfileResponse, error)
	DeleteCompanyImage(ctx context.Context, userID uuid.UUID) error
	AddCompanyPhoto(ctx context.Context, userID uuid.UUID, image io.Reader) (*dto.CompanyPhotoResponse, error)
	DeleteCompanyPhoto(ctx context.Context, userID uuid.UUID, photoID int64) error
}

// Caller identifies the authenticated user behind a request.
type Caller struct {
	UserID uuid.UUID
	Role   entity.Role
}

type companyUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	companyRepo  repository.CompanyRepository
	photoRepo    repository.CompanyPhotoRepository
	categoryRepo repository.CategoryRepository
	clientRepo   repository.ClientRepository
	favoriteRepo repository.FavoriteRepository
	storage      service.ImageStorage
	auditService service.AuditService
}

func NewCompanyUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	companyRepo repository.CompanyRepository,
	photoRepo repository.CompanyPhotoRepository,
	categoryRepo repository.CategoryRepository,
	clientRepo repository.ClientRepository,
	favoriteRepo repository.FavoriteRepository,
	storage service.ImageStorage,
	auditService service.AuditService,
) CompanyUsecase {
	return &companyUsecase{
		db:           db,
		log:          log,
		companyRepo:  companyRepo,
		photoRepo:    photoRepo,
		categoryRepo: categoryRepo,
		clientRepo:   clientRepo,
		favoriteRepo: favoriteRepo,
		storage:      storage,
		auditService: auditService,
	}
}

// ListCompanies returns the directory page. When the caller is a client every
// item carries that client's own favorite flag.
func (u *companyUsecase) ListCompanies(ctx context.Context, caller Caller, req *dto.ListCompaniesRequest, lang entity.Language) (*dto.ListResult[dto.CompanyResponse], error) {
	if req == nil {
		req = &dto.ListCompaniesRequest{}
	}
	filter := &entity.CompanyFilter{
		Search:     req.Search,
		CategoryID: req.CategoryID,
		Page:       entity.Page{Limit: dto.PageLimit(req.Limit), Offset: req.Offset},
	}

	companies, total, err := u.companyRepo.FindListed(ctx, u.db, filter)
	if err != nil {
		u.log.Warnf("Failed to list companies: %+v", err)
		return nil, err
	}

	ids := make([]int64, 0, len(companies))
	for _, company := range companies {
		ids = append(ids, company.ID)
	}
	favorites, err := u.favoritesOf(ctx, caller, ids)
	if err != nil {
		return nil, err
	}

	return &dto.ListResult[dto.CompanyResponse]{
		Items:  converter.CompaniesToResponse(companies, lang, favorites),
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}, nil
}

func (u *companyUsecase) GetCompany(ctx context.Context, caller Caller, companyID int64, lang entity.Language) (*dto.CompanyResponse, error) {
	company, err := u.companyRepo.FindByID(ctx, u.db, companyID)
	if err != nil {
		u.log.Warnf("Failed to find company %d: %+v", companyID, err)
		return nil, err
	}
	if company == nil {
		return nil, ErrCompanyNotFound
	}

	favorites, err := u.favoritesOf(ctx, caller, []int64{company.ID})
	if err != nil {
		return nil, err
	}

	var isFavorite *bool
	if favorites != nil {
		fav := favorites[company.ID]
		isFavorite = &fav
	}
	return converter.CompanyToResponse(company, lang, isFavorite), nil
}

func (u *companyUsecase) GetCategories(ctx context.Context) ([]dto.CategoryResponse, error) {
	categories, err := u.categoryRepo.FindAll(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to list categories: %+v", err)
		return nil, err
	}
	return converter.CategoriesToResponse(categories), nil
}

// UpdateCompany applies the non-nil fields of req and, when image is given,
// replaces the primary image.
func (u *companyUsecase) UpdateCompany(ctx context.Context, userID uuid.UUID, req *dto.UpdateCompanyRequest, image io.Reader) (*dto.CompanyProfileResponse, error) {
	if err := validateCoordinates(req.Lat, req.Lng); err != nil {
		return nil, err
	}

	// Upload before opening the transaction so no row is locked during network I/O.
	var imageURL string
	if image != nil {
		url, err := u.storage.Upload(ctx, image, service.FolderCompanies)
		if err != nil {
			u.log.Warnf("Failed to upload company image: %+v", err)
			return nil, err
		}
		imageURL = url
	}

	company, oldImage, err := u.updateCompany(ctx, userID, req, imageURL)
	if err != nil {
		if imageURL != "" {
			u.discardImage(ctx, imageURL)
		}
		return nil, err
	}

	if imageURL != "" && oldImage != "" {
		u.discardImage(ctx, oldImage)
	}

	return converter.CompanyToProfileResponse(company), nil
}

func (u *companyUsecase) updateCompany(ctx context.Context, userID uuid.UUID, req *dto.UpdateCompanyRequest, imageURL string) (*entity.Company, string, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	company, err := u.ownCompany(ctx, tx, userID)
	if err != nil {
		return nil, "", err
	}

	if req.CategoryID != nil {
		category, err := u.categoryRepo.FindByID(ctx, tx, *req.CategoryID)
		if err != nil {
			u.log.Warnf("Failed to find category %d: %+v", *req.CategoryID, err)
			return nil, "", err
		}
		if category == nil {
			return nil, "", ErrCategoryNotFound
		}
	}

	before := companySnapshot(company)
	oldImage := company.Image

	applyString(&company.NameAr, req.NameAr)
	applyString(&company.NameEn, req.NameEn)
	applyString(&company.AddressAr, req.AddressAr)
	applyString(&company.AddressEn, req.AddressEn)
	applyString(&company.AboutAr, req.AboutAr)
	applyString(&company.AboutEn, req.AboutEn)
	if req.CategoryID != nil {
		company.CategoryID = req.CategoryID
	}
	if req.IsCertified != nil {
		company.IsCertified = *req.IsCertified
	}
	if req.Lat != nil {
		company.Lat = decimal.NewNullDecimal(*req.Lat)
	}
	if req.Lng != nil {
		company.Lng = decimal.NewNullDecimal(*req.Lng)
	}
	if imageURL != "" {
		company.Image = imageURL
	}

	if err := u.companyRepo.Update(ctx, tx, company); err != nil {
		u.log.Warnf("Failed to update company %d: %+v", company.ID, err)
		return nil, "", err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &userID, entity.AuditActionCompanyUpdate, "company",
		strconv.FormatInt(company.ID, 10), before, companySnapshot(company)); err != nil {
		u.log.Warnf("Failed to audit update of company %d: %+v", company.ID, err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, "", err
	}

	return company, oldImage, nil
}

// DeleteCompanyImage clears the primary image of the caller's company.
func (u *companyUsecase) DeleteCompanyImage(ctx context.Context, userID uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	company, err := u.ownCompany(ctx, tx, userID)
	if err != nil {
		return err
	}
	if company.Image == "" {
		return ErrNoImage
	}

	oldImage := company.Image
	company.Image = ""
	if err := u.companyRepo.Update(ctx, tx, company); err != nil {
		u.log.Warnf("Failed to clear image of company %d: %+v", company.ID, err)
		return err
	}

	if err := u.auditService.LogDelete(ctx, tx, &userID, entity.AuditActionCompanyImageDelete, "company",
		strconv.FormatInt(company.ID, 10), map[string]interface{}{"image": oldImage}); err != nil {
		u.log.Warnf("Failed to audit image removal of company %d: %+v", company.ID, err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.discardImage(ctx, oldImage)
	return nil
}

func (u *companyUsecase) AddCompanyPhoto(ctx context.Context, userID uuid.UUID, image io.Reader) (*dto.CompanyPhotoResponse, error) {
	company, err := u.ownCompany(ctx, u.db, userID)
	if err != nil {
		return nil, err
	}

	url, err := u.storage.Upload(ctx, image, service.FolderCompanyPhotos)
	if err != nil {
		u.log.Warnf("Failed to upload company photo: %+v", err)
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	photo := &entity.CompanyPhoto{CompanyID: company.ID, Image: url}
	if err := u.photoRepo.Create(ctx, tx, photo); err != nil {
		u.log.Warnf("Failed to create photo for company %d: %+v", company.ID, err)
		u.discardImage(ctx, url)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &userID, entity.AuditActionCompanyPhotoAdd, "company_photo",
		strconv.FormatInt(photo.ID, 10), map[string]interface{}{"company_id": company.ID, "image": url}); err != nil {
		u.log.Warnf("Failed to audit photo %d: %+v", photo.ID, err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		u.discardImage(ctx, url)
		return nil, err
	}

	return &dto.CompanyPhotoResponse{ID: photo.ID, Image: photo.Image}, nil
}

// DeleteCompanyPhoto removes a photo of the caller's company. Photos of other
// companies are reported as not found.
func (u *companyUsecase) DeleteCompanyPhoto(ctx context.Context, userID uuid.UUID, photoID int64) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	company, err := u.ownCompany(ctx, tx, userID)
	if err != nil {
		return err
	}

	photo, err := u.photoRepo.FindByIDAndCompany(ctx, tx, photoID, company.ID)
	if err != nil {
		u.log.Warnf("Failed to find photo %d: %+v", photoID, err)
		return err
	}
	if photo == nil {
		return ErrPhotoNotFound
	}

	if _, err := u.photoRepo.Delete(ctx, tx, photo.ID); err != nil {
		u.log.Warnf("Failed to delete photo %d: %+v", photoID, err)
		return err
	}

	if err := u.auditService.LogDelete(ctx, tx, &userID, entity.AuditActionCompanyPhotoDelete, "company_photo",
		strconv.FormatInt(photo.ID, 10), map[string]interface{}{"company_id": company.ID, "image": photo.Image}); err != nil {
		u.log.Warnf("Failed to audit photo %d removal: %+v", photo.ID, err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.discardImage(ctx, photo.Image)
	return nil
}

func (u *companyUsecase) ownCompany(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.Company, error) {
	company, err := u.companyRepo.FindByUserID(ctx, db, userID)
	if err != nil {
		u.log.Warnf("Failed to find company for user %s: %+v", userID, err)
		return nil, err
	}
	if company == nil {
		return nil, ErrCompanyNotFound
	}
	return company, nil
}

// favoritesOf returns nil for callers that are not clients.
func (u *companyUsecase) favoritesOf(ctx context.Context, caller Caller, companyIDs []int64) (map[int64]bool, error) {
	if caller.Role != entity.RoleClient {
		return nil, nil
	}

	client, err := u.clientRepo.FindByUserID(ctx, u.db, caller.UserID)
	if err != nil {
		u.log.Warnf("Failed to find client for user %s: %+v", caller.UserID, err)
		return nil, err
	}
	if client == nil {
		return map[int64]bool{}, nil
	}

	favorites, err := u.favoriteRepo.FindFavoriteCompanyIDs(ctx, u.db, client.ID, companyIDs)
	if err != nil {
		u.log.Warnf("Failed to load favorites of client %d: %+v", client.ID, err)
		return nil, err
	}
	return favorites, nil
}

// discardImage deletes a stored image that is no longer referenced.
func (u *companyUsecase) discardImage(ctx context.Context, url string) {
	if err := u.storage.Delete(ctx, url); err != nil {
		u.log.Warnf("Failed to delete image %s: %+v", url, err)
	}
}

func validateCoordinates(lat, lng *decimal.Decimal) error {
	if lat != nil && lat.Abs().GreaterThan(maxLatitude) {
		return ErrInvalidCoordinates
	}
	if lng != nil && lng.Abs().GreaterThan(maxLongitude) {
		return ErrInvalidCoordinates
	}
	return nil
}

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func companySnapshot(c *entity.Company) map[string]interface{} {
	return map[string]interface{}{
		"name_ar":      c.NameAr,
		"name_en":      c.NameEn,
		"address_ar":   c.AddressAr,
		"address_en":   c.AddressEn,
		"about_ar":     c.AboutAr,
		"about_en":     c.AboutEn,
		"category_id":  c.CategoryID,
		"is_certified": c.IsCertified,
		"image":        c.Image,
		"lat":          c.Lat,
		"lng":          c.Lng,
	}
}
