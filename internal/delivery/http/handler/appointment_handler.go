package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"dawrni-api/internal/delivery/dto"
	"dawrni-api/internal/delivery/http/middleware"
	"dawrni-api/internal/domain/entity"
	"dawrni-api/internal/usecase"
	"dawrni-api/pkg/response"
	"dawrni-api/pkg/validator"

	"github.com/google/uuid"
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

// Book handles POST /book_appointment/{company_id}
// @Summary Book an appointment with a company
// @Tags Appointment
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param company_id path int true "Company ID"
// @Param request body dto.BookAppointmentRequest true "Book Appointment Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /book_appointment/{company_id} [post]
func (h *AppointmentHandler) Book(w http.ResponseWriter, r *http.Request) {
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

	var req dto.BookAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	lang := middleware.GetLanguageFromContext(r.Context())
	appointment, err := h.appointmentUsecase.Book(r.Context(), userID, companyID, &req, lang)
	if err != nil {
		writeError(w, err, "Failed to book appointment")
		return
	}

	response.Success(w, http.StatusCreated, "Appointment booked successfully", appointment)
}

// Cancel handles DELETE /delete_appointment/{appointment_id}
// @Summary Cancel own appointment
// @Tags Appointment
// @Security BearerAuth
// @Param appointment_id path int true "Appointment ID"
// @Success 204
// @Failure 404 {object} response.Response
// @Router /delete_appointment/{appointment_id} [delete]
func (h *AppointmentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	appointmentID, err := pathID(r, "appointment_id")
	if err != nil {
		response.BadRequest(w, "Invalid appointment ID")
		return
	}

	if err := h.appointmentUsecase.Cancel(r.Context(), userID, appointmentID); err != nil {
		writeError(w, err, "Failed to cancel appointment")
		return
	}

	response.NoContent(w)
}

// ChangeStatus handles POST /status_appointment/{appointment_id}
// @Summary Change appointment status
// @Tags Appointment
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param appointment_id path int true "Appointment ID"
// @Param request body dto.ChangeAppointmentStatusRequest true "Status Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /status_appointment/{appointment_id} [post]
func (h *AppointmentHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	appointmentID, err := pathID(r, "appointment_id")
	if err != nil {
		response.BadRequest(w, "Invalid appointment ID")
		return
	}

	// The status value itself is checked after ownership so that a foreign
	// appointment is always reported as not found.
	var req dto.ChangeAppointmentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(w, "Invalid request body")
		return
	}

	lang := middleware.GetLanguageFromContext(r.Context())
	appointment, err := h.appointmentUsecase.ChangeStatus(r.Context(), userID, appointmentID, &req, lang)
	if err != nil {
		writeError(w, err, "Failed to change appointment status")
		return
	}

	response.Success(w, http.StatusOK, "Appointment status updated successfully", appointment)
}

// ClientAppointments handles GET /client_appointments
func (h *AppointmentHandler) ClientAppointments(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.appointmentUsecase.GetClientAppointments)
}

// CompanyAppointments handles GET /company_appointments
func (h *AppointmentHandler) CompanyAppointments(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.appointmentUsecase.GetCompanyAppointments)
}

type listAppointmentsFunc func(ctx context.Context, userID uuid.UUID, req *dto.ListAppointmentsRequest, lang entity.Language) (*dto.ListResult[dto.AppointmentResponse], error)

func (h *AppointmentHandler) list(w http.ResponseWriter, r *http.Request, fetch listAppointmentsFunc) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.ListAppointmentsRequest
	if err := decodeValues(&req, r.URL.Query()); err != nil {
		response.BadRequest(w, "Invalid query parameters")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	lang := middleware.GetLanguageFromContext(r.Context())
	result, err := fetch(r.Context(), userID, &req, lang)
	if err != nil {
		writeError(w, err, "Failed to get appointments")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Appointments retrieved successfully", result.Items, pageMeta(result))
}
