package handler

import (
	"net/http"

	"dawrni-api/internal/delivery/dto"
	"dawrni-api/internal/delivery/http/middleware"
	"dawrni-api/internal/usecase"
	"dawrni-api/pkg/response"
	"dawrni-api/pkg/validator"
)

type CompanyHandler struct {
	companyUsecase usecase.CompanyUsecase
	validator      *validator.CustomValidator
	maxUploadBytes int64
}

func NewCompanyHandler(companyUsecase usecase.CompanyUsecase, validator *validator.CustomValidator, maxUploadBytes int64) *CompanyHandler {
	return &CompanyHandler{
		companyUsecase: companyUsecase,
		validator:      validator,
		maxUploadBytes: maxUploadBytes,
	}
}

// ListCompanies handles GET /companies
// @Summary List directory companies
// @Tags Company
// @Security BearerAuth
// @Produce json
// @Param search query string false "Name search (Arabic or English)"
// @Param category query int false "Category ID"
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} response.Response
// @Router /companies [get]
func (h *CompanyHandler) ListCompanies(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.ListCompaniesRequest
	if err := decodeValues(&req, r.URL.Query()); err != nil {
		response.BadRequest(w, "Invalid query parameters")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	lang := middleware.GetLanguageFromContext(r.Context())
	result, err := h.companyUsecase.ListCompanies(r.Context(), caller, &req, lang)
	if err != nil {
		writeError(w, err, "Failed to get companies")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Companies retrieved successfully", result.Items, pageMeta(result))
}

// GetCompany handles GET /companies/{id}
func (h *CompanyHandler) GetCompany(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	companyID, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid company ID")
		return
	}

	lang := middleware.GetLanguageFromContext(r.Context())
	company, err := h.companyUsecase.GetCompany(r.Context(), caller, companyID, lang)
	if err != nil {
		writeError(w, err, "Failed to get company")
		return
	}

	response.Success(w, http.StatusOK, "Company retrieved successfully", company)
}

// GetCategories handles GET /categories
func (h *CompanyHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.companyUsecase.GetCategories(r.Context())
	if err != nil {
		writeError(w, err, "Failed to get categories")
		return
	}

	response.Success(w, http.StatusOK, "Categories retrieved successfully", categories)
}

// UpdateCompany handles PUT /update_company (multipart)
// @Summary Update own company profile
// @Tags Company
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param image formData file false "Primary image"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /update_company [put]
func (h *CompanyHandler) UpdateCompany(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	if err := parseForm(w, r, h.maxUploadBytes); err != nil {
		response.BadRequest(w, "Invalid form data")
		return
	}

	var req dto.UpdateCompanyRequest
	if err := decodeValues(&req, r.PostForm); err != nil {
		response.BadRequest(w, "Invalid form data")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	image, err := formFile(r, "image")
	if err != nil {
		response.BadRequest(w, "Invalid image file")
		return
	}
	if image != nil {
		defer image.Close()
	}

	company, err := h.companyUsecase.UpdateCompany(r.Context(), userID, &req, image)
	if err != nil {
		writeError(w, err, "Failed to update company")
		return
	}

	response.Success(w, http.StatusOK, "Company updated successfully", company)
}

// DeleteCompanyImage handles DELETE /company_profile
func (h *CompanyHandler) DeleteCompanyImage(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	if err := h.companyUsecase.DeleteCompanyImage(r.Context(), userID); err != nil {
		writeError(w, err, "Failed to delete company image")
		return
	}

	response.NoContent(w)
}

// AddPhoto handles POST /company_photos (multipart field "image")
func (h *CompanyHandler) AddPhoto(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	if err := parseForm(w, r, h.maxUploadBytes); err != nil {
		response.BadRequest(w, "Invalid form data")
		return
	}

	image, err := formFile(r, "image")
	if err != nil {
		response.BadRequest(w, "Invalid image file")
		return
	}
	if image == nil {
		response.ValidationError(w, map[string]string{"image": "image is required"})
		return
	}
	defer image.Close()

	photo, err := h.companyUsecase.AddCompanyPhoto(r.Context(), userID, image)
	if err != nil {
		writeError(w, err, "Failed to add photo")
		return
	}

	response.Success(w, http.StatusCreated, "Photo added successfully", photo)
}

// DeletePhoto handles DELETE /company_photos/{photo_id}
func (h *CompanyHandler) DeletePhoto(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	photoID, err := pathID(r, "photo_id")
	if err != nil {
		response.BadRequest(w, "Invalid photo ID")
		return
	}

	if err := h.companyUsecase.DeleteCompanyPhoto(r.Context(), userID, photoID); err != nil {
		writeError(w, err, "Failed to delete photo")
		return
	}

	response.NoContent(w)
}
