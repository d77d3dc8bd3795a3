package converter

import (
	"dawrni-api/internal/delivery/dto"
	"dawrni-api/internal/domain/entity"
)

func ClientToResponse(client *entity.Client, lang entity.Language) *dto.ClientResponse {
	if client == nil {
		return nil
	}

	return &dto.ClientResponse{
		ID:    client.ID,
		Name:  lang.Pick(client.NameAr, client.NameEn),
		Email: client.Email,
		Photo: client.Photo,
	}
}

func ClientsToResponse(clients []entity.Client, lang entity.Language) []dto.ClientResponse {
	responses := make([]dto.ClientResponse, 0, len(clients))
	for i := range clients {
		responses = append(responses, *ClientToResponse(&clients[i], lang))
	}
	return responses
}

func ClientToProfileResponse(client *entity.Client) *dto.ClientProfileResponse {
	if client == nil {
		return nil
	}

	return &dto.ClientProfileResponse{
		ID:     client.ID,
		NameEn: client.NameEn,
		NameAr: client.NameAr,
		Email:  client.Email,
		Photo:  client.Photo,
	}
}
