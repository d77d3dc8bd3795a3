package usecase

import (
	"errors"
	"strings"

	"dawrni-api/internal/domain/entity"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrEmailAlreadyExists       = errors.New("email already exists")
	ErrInvalidCredentials       = errors.New("invalid email or password")
	ErrInvalidToken             = errors.New("invalid or expired token")
	ErrTokenRevoked             = errors.New("token has been revoked")
	ErrUserNotFound             = errors.New("user not found")
	ErrInvalidVerificationCode  = errors.New("invalid or expired verification code")
	ErrCompanyNotFound          = errors.New("company not found")
	ErrClientNotFound           = errors.New("client not found")
	ErrCategoryNotFound         = errors.New("category not found")
	ErrPhotoNotFound            = errors.New("photo not found")
	ErrNoImage                  = errors.New("company has no image")
	ErrAppointmentNotFound      = errors.New("appointment not found")
	ErrInvalidAppointmentStatus = errors.New("invalid appointment status, use pending, confirmed or canceled")
	ErrInvalidCoordinates       = errors.New("lat must be within [-90, 90] and lng within [-180, 180]")
)

// isDuplicateKeyError checks if the error is a PostgreSQL unique constraint violation
// containing the specified constraint name
func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		if pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}

// IsInvalidInput reports whether err stems from malformed request values.
func IsInvalidInput(err error) bool {
	return errors.Is(err, entity.ErrInvalidAppointmentDate) ||
		errors.Is(err, entity.ErrInvalidAppointmentTime) ||
		errors.Is(err, ErrInvalidAppointmentStatus) ||
		errors.Is(err, ErrInvalidCoordinates)
}
