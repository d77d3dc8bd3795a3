package converter

import (
	"dawrni-api/internal/delivery/dto"
	"dawrni-api/internal/domain/entity"
)

// AppointmentToResponse renders an appointment with its client and company in lang.
// Relations that were not loaded are omitted.
func AppointmentToResponse(appointment *entity.Appointment, lang entity.Language) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:        appointment.ID,
		Date:      appointment.Date.Format(entity.AppointmentDateLayout),
		Time:      appointment.ClockTime(),
		Status:    string(appointment.Status),
		CreatedAt: appointment.CreatedAt,
	}

	if appointment.Client.ID != 0 {
		response.Client = ClientToResponse(&appointment.Client, lang)
	}

	if company := &appointment.Company; company.ID != 0 {
		response.Company = &dto.AppointmentCompanyResponse{
			ID:          company.ID,
			Name:        lang.Pick(company.NameAr, company.NameEn),
			CategoryID:  company.CategoryID,
			Image:       company.Image,
			Address:     lang.Pick(company.AddressAr, company.AddressEn),
			About:       lang.Pick(company.AboutAr, company.AboutEn),
			IsCertified: company.IsCertified,
		}
	}

	return response
}

func AppointmentsToResponse(appointments []entity.Appointment, lang entity.Language) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, 0, len(appointments))
	for i := range appointments {
		responses = append(responses, *AppointmentToResponse(&appointments[i], lang))
	}
	return responses
}
