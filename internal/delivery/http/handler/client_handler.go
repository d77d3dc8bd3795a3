package handler

import (
	"net/http"

	"dawrni-api/internal/delivery/dto"
	"dawrni-api/internal/delivery/http/middleware"
	"dawrni-api/internal/usecase"
	"dawrni-api/pkg/response"
	"dawrni-api/pkg/validator"
)

type ClientHandler struct {
	clientUsecase  usecase.ClientUsecase
	validator      *validator.CustomValidator
	maxUploadBytes int64
}

func NewClientHandler(clientUsecase usecase.ClientUsecase, validator *validator.CustomValidator, maxUploadBytes int64) *ClientHandler {
	return &ClientHandler{
		clientUsecase:  clientUsecase,
		validator:      validator,
		maxUploadBytes: maxUploadBytes,
	}
}

// ListClients handles GET /clients
func (h *ClientHandler) ListClients(w http.ResponseWriter, r *http.Request) {
	var req dto.ListClientsRequest
	if err := decodeValues(&req, r.URL.Query()); err != nil {
		response.BadRequest(w, "Invalid query parameters")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	lang := middleware.GetLanguageFromContext(r.Context())
	result, err := h.clientUsecase.ListClients(r.Context(), &req, lang)
	if err != nil {
		writeError(w, err, "Failed to get clients")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Clients retrieved successfully", result.Items, pageMeta(result))
}

// UpdateClient handles PUT /client_image (multipart, optional file "photo")
func (h *ClientHandler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	if err := parseForm(w, r, h.maxUploadBytes); err != nil {
		response.BadRequest(w, "Invalid form data")
		return
	}

	var req dto.UpdateClientRequest
	if err := decodeValues(&req, r.PostForm); err != nil {
		response.BadRequest(w, "Invalid form data")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	photo, err := formFile(r, "photo")
	if err != nil {
		response.BadRequest(w, "Invalid photo file")
		return
	}
	if photo != nil {
		defer photo.Close()
	}

	client, err := h.clientUsecase.UpdateClient(r.Context(), userID, &req, photo)
	if err != nil {
		writeError(w, err, "Failed to update client")
		return
	}

	response.Success(w, http.StatusOK, "Client updated successfully", client)
}
