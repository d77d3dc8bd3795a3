package handler

import (
	"net/http"

	"dawrni-api/internal/delivery/dto"
	"dawrni-api/internal/delivery/http/middleware"
	"dawrni-api/internal/usecase"
	"dawrni-api/pkg/response"
	"dawrni-api/pkg/validator"
)

type FavoriteHandler struct {
	favoriteUsecase usecase.FavoriteUsecase
	validator       *validator.CustomValidator
}

func NewFavoriteHandler(favoriteUsecase usecase.FavoriteUsecase, validator *validator.CustomValidator) *FavoriteHandler {
	return &FavoriteHandler{
		favoriteUsecase: favoriteUsecase,
		validator:       validator,
	}
}

// Add handles POST /favorite/{company_id}. 201 on first add, 200 when it already existed.
func (h *FavoriteHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	companyID, err := pathID(r, "company_id")
	if err != nil {
		response.BadRequest(w, "Invalid company ID")
		return
	}

	lang := middleware.GetLanguageFromContext(r.Context())
	company, created, err := h.favoriteUsecase.Add(r.Context(), userID, companyID, lang)
	if err != nil {
		writeError(w, err, "Failed to add favorite")
		return
	}

	if created {
		response.Success(w, http.StatusCreated, "Company added to favorites", company)
		return
	}
	response.Success(w, http.StatusOK, "Company is already a favorite", company)
}

// Remove handles DELETE /favorite/{company_id}
func (h *FavoriteHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	companyID, err := pathID(r, "company_id")
	if err != nil {
		response.BadRequest(w, "Invalid company ID")
		return
	}

	if err := h.favoriteUsecase.Remove(r.Context(), userID, companyID); err != nil {
		writeError(w, err, "Failed to remove favorite")
		return
	}

	response.NoContent(w)
}

// List handles GET /favorite/{company_id}. The path id is ignored and every favorite is returned.
func (h *FavoriteHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	lang := middleware.GetLanguageFromContext(r.Context())
	result, err := h.favoriteUsecase.List(r.Context(), userID, nil, lang)
	if err != nil {
		writeError(w, err, "Failed to get favorites")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Favorites retrieved successfully", result.Items, pageMeta(result))
}

// ListPage handles GET /favorite_list?limit=&offset=
func (h *FavoriteHandler) ListPage(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.PageRequest
	if err := decodeValues(&req, r.URL.Query()); err != nil {
		response.BadRequest(w, "Invalid query parameters")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	lang := middleware.GetLanguageFromContext(r.Context())
	result, err := h.favoriteUsecase.List(r.Context(), userID, &req, lang)
	if err != nil {
		writeError(w, err, "Failed to get favorites")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Favorites retrieved successfully", result.Items, pageMeta(result))
}
