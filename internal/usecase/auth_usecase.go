package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"dawrni-api/internal/converter"
	"dawrni-api/internal/delivery/dto"
	"dawrni-api/internal/domain/entity"
	"dawrni-api/internal/domain/repository"
	"dawrni-api/internal/service"
	"dawrni-api/pkg/jwt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthUsecase interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	VerifyAccount(ctx context.Context, req *dto.VerifyAccountRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Logout(ctx context.Context, userID uuid.UUID, accessTokenID string) error
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
}

type authUsecase struct {
	db                  *gorm.DB
	log                 *logrus.Logger
	userRepo            repository.UserRepository
	companyRepo         repository.CompanyRepository
	clientRepo          repository.ClientRepository
	verificationService service.VerificationService
	auditService        service.AuditService
	jwtService          *jwt.JWTService
	redisClient         *redis.Client
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	companyRepo repository.CompanyRepository,
	clientRepo repository.ClientRepository,
	verificationService service.VerificationService,
	auditService service.AuditService,
	jwtService *jwt.JWTService,
	redisClient *redis.Client,
) AuthUsecase {
	return &authUsecase{
		db:                  db,
		log:                 log,
		userRepo:            userRepo,
		companyRepo:         companyRepo,
		clientRepo:          clientRepo,
		verificationService: verificationService,
		auditService:        auditService,
		jwtService:          jwtService,
		redisClient:         redisClient,
	}
}

// Register creates the identity and its single profile in one transaction, then
// mails a verification code and signs the user in.
func (u *authUsecase) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	role := entity.Role(req.UserType)
	if !role.IsValid() {
		return nil, fmt.Errorf("unknown user type %q", req.UserType)
	}
	email := normalizeEmail(req.Email)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	existing, err := u.userRepo.FindByEmail(ctx, tx, email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}

	user := &entity.User{
		Email:    email,
		Password: string(hashedPassword),
		FullName: strings.TrimSpace(req.FullName),
		Role:     role,
	}

	if err := u.userRepo.Create(ctx, tx, user); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	switch role {
	case entity.RoleCompany:
		company := &entity.Company{UserID: user.ID, NameEn: user.FullName}
		if err := u.companyRepo.Create(ctx, tx, company); err != nil {
			u.log.Warnf("Failed to create company profile: %+v", err)
			return nil, err
		}
	case entity.RoleClient:
		client := &entity.Client{UserID: user.ID, NameEn: user.FullName, Email: user.Email}
		if err := u.clientRepo.Create(ctx, tx, client); err != nil {
			u.log.Warnf("Failed to create client profile: %+v", err)
			return nil, err
		}
	}

	if err := u.auditService.LogCreate(ctx, tx, &user.ID, entity.AuditActionUserRegister, "user", user.ID.String(), map[string]interface{}{
		"email":     user.Email,
		"user_type": string(user.Role),
	}); err != nil {
		u.log.Warnf("Failed to audit registration of %s: %+v", user.ID, err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	// The account exists at this point; a failed mail only delays verification.
	if err := u.verificationService.SendCode(ctx, user.Email); err != nil {
		u.log.Warnf("Failed to send verification code to %s: %+v", user.Email, err)
	}

	tokens, err := u.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		UserInfo: converter.UserToResponse(user, ""),
		Tokens:   *tokens,
	}, nil
}

func (u *authUsecase) VerifyAccount(ctx context.Context, req *dto.VerifyAccountRequest) (*dto.UserResponse, error) {
	email := normalizeEmail(req.Email)

	user, err := u.userRepo.FindByEmail(ctx, u.db, email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if err := u.verificationService.VerifyCode(ctx, email, req.Code); err != nil {
		if errors.Is(err, service.ErrVerificationCodeMismatch) {
			return nil, ErrInvalidVerificationCode
		}
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.userRepo.MarkVerified(ctx, tx, user.ID); err != nil {
		u.log.Warnf("Failed to mark user %s verified: %+v", user.ID, err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &user.ID, entity.AuditActionUserVerify, "user", user.ID.String(),
		map[string]interface{}{"is_verified": user.IsVerified},
		map[string]interface{}{"is_verified": true},
	); err != nil {
		u.log.Warnf("Failed to audit verification of %s: %+v", user.ID, err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	user.IsVerified = true
	return converter.UserToResponse(user, ""), nil
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	// Find user by email (read-only, no transaction needed)
	user, err := u.userRepo.FindByEmail(ctx, u.db, normalizeEmail(req.Email))
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	tokens, err := u.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	image, err := u.profileImage(ctx, user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		UserInfo: converter.UserToResponse(user, image),
		Tokens:   *tokens,
	}, nil
}

// Logout revokes the presented access token and every refresh token of the user.
func (u *authUsecase) Logout(ctx context.Context, userID uuid.UUID, accessTokenID string) error {
	accessKey := accessTokenKey(userID, accessTokenID)
	if err := u.redisClient.Del(ctx, accessKey).Err(); err != nil {
		u.log.Warnf("Failed to delete access token: %+v", err)
		return err
	}

	refreshKeys, err := u.redisClient.Keys(ctx, refreshTokenKey(userID, "*")).Result()
	if err != nil {
		u.log.Warnf("Failed to get refresh token keys: %+v", err)
		return err
	}
	if len(refreshKeys) > 0 {
		if err := u.redisClient.Del(ctx, refreshKeys...).Err(); err != nil {
			u.log.Warnf("Failed to delete refresh tokens: %+v", err)
			return err
		}
	}

	return nil
}

func (u *authUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := u.jwtService.ValidateToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if claims.TokenType != jwt.RefreshToken {
		return nil, ErrInvalidToken
	}

	// A refresh token is single use: deleting it both checks and revokes it.
	refreshKey := refreshTokenKey(claims.UserID, claims.TokenID)
	deleted, err := u.redisClient.Del(ctx, refreshKey).Result()
	if err != nil {
		u.log.Warnf("Failed to delete old refresh token: %+v", err)
		return nil, err
	}
	if deleted == 0 {
		return nil, ErrTokenRevoked
	}

	user, err := u.userRepo.FindByID(ctx, u.db, claims.UserID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return u.issueTokens(ctx, user)
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(ctx, u.db, userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	image, err := u.profileImage(ctx, user)
	if err != nil {
		return nil, err
	}

	return converter.UserToResponse(user, image), nil
}

// issueTokens signs an access/refresh pair and records both in the Redis allow-list.
func (u *authUsecase) issueTokens(ctx context.Context, user *entity.User) (*dto.TokenResponse, error) {
	accessToken, accessTokenID, err := u.jwtService.GenerateAccessToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	refreshToken, refreshTokenID, err := u.jwtService.GenerateRefreshToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		u.log.Warnf("Failed to generate refresh token: %+v", err)
		return nil, err
	}

	pipe := u.redisClient.TxPipeline()
	pipe.Set(ctx, accessTokenKey(user.ID, accessTokenID), "valid", u.jwtService.GetAccessExpiry())
	pipe.Set(ctx, refreshTokenKey(user.ID, refreshTokenID), "valid", u.jwtService.GetRefreshExpiry())
	if _, err := pipe.Exec(ctx); err != nil {
		u.log.Warnf("Failed to store tokens in Redis: %+v", err)
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(u.jwtService.GetAccessExpiry().Seconds()),
	}, nil
}

// profileImage returns the company image or client photo of user.
func (u *authUsecase) profileImage(ctx context.Context, user *entity.User) (string, error) {
	switch user.Role {
	case entity.RoleCompany:
		company, err := u.companyRepo.FindByUserID(ctx, u.db, user.ID)
		if err != nil {
			u.log.Warnf("Failed to find company for user %s: %+v", user.ID, err)
			return "", err
		}
		if company != nil {
			return company.Image, nil
		}
	case entity.RoleClient:
		client, err := u.clientRepo.FindByUserID(ctx, u.db, user.ID)
		if err != nil {
			u.log.Warnf("Failed to find client for user %s: %+v", user.ID, err)
			return "", err
		}
		if client != nil {
			return client.Photo, nil
		}
	}
	return "", nil
}

func accessTokenKey(userID uuid.UUID, tokenID string) string {
	return fmt.Sprintf("access_token:%s:%s", userID.String(), tokenID)
}

func refreshTokenKey(userID uuid.UUID, tokenID string) string {
	return fmt.Sprintf("refresh_token:%s:%s", userID.String(), tokenID)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
