package handler

import (
	"errors"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"dawrni-api/internal/delivery/dto"
	"dawrni-api/internal/delivery/http/middleware"
	"dawrni-api/internal/usecase"
	"dawrni-api/pkg/response"

	"github.com/gorilla/mux"
	"github.com/gorilla/schema"
)

var formDecoder = newFormDecoder()

func newFormDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}

// decodeValues fills dst from query or form values using `schema` tags.
func decodeValues(dst interface{}, values url.Values) error {
	return formDecoder.Decode(dst, values)
}

// parseForm reads a multipart or urlencoded body of at most maxBytes.
func parseForm(w http.ResponseWriter, r *http.Request, maxBytes int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	err := r.ParseMultipartForm(maxBytes)
	if errors.Is(err, http.ErrNotMultipart) {
		return r.ParseForm()
	}
	return err
}

// formFile returns the uploaded file under field, or nil when none was sent.
func formFile(r *http.Request, field string) (multipart.File, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	file, _, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	return file, err
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)[name], 10, 64)
}

func callerFrom(r *http.Request) (usecase.Caller, bool) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		return usecase.Caller{}, false
	}
	role, _ := middleware.GetRoleFromContext(r.Context())
	return usecase.Caller{UserID: userID, Role: role}, true
}

func pageMeta[T any](result *dto.ListResult[T]) *response.Meta {
	return &response.Meta{
		Limit:  result.Limit,
		Offset: result.Offset,
		Total:  result.Total,
	}
}

// writeError maps usecase errors shared by several handlers to a response.
// Errors it does not know become a 500 carrying fallback.
func writeError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrCompanyNotFound),
		errors.Is(err, usecase.ErrClientNotFound),
		errors.Is(err, usecase.ErrAppointmentNotFound),
		errors.Is(err, usecase.ErrCategoryNotFound),
		errors.Is(err, usecase.ErrPhotoNotFound),
		errors.Is(err, usecase.ErrUserNotFound):
		response.NotFound(w, err.Error())
	case usecase.IsInvalidInput(err):
		response.Error(w, http.StatusBadRequest, response.CodeValidation, err.Error(), nil)
	case errors.Is(err, usecase.ErrNoImage),
		errors.Is(err, usecase.ErrInvalidVerificationCode):
		response.BadRequest(w, err.Error())
	case errors.Is(err, usecase.ErrEmailAlreadyExists):
		response.Conflict(w, "Email already exists")
	case errors.Is(err, usecase.ErrInvalidCredentials):
		response.Unauthorized(w, "Invalid email or password")
	case errors.Is(err, usecase.ErrInvalidToken),
		errors.Is(err, usecase.ErrTokenRevoked):
		response.Unauthorized(w, err.Error())
	default:
		response.InternalServerError(w, fallback)
	}
}
