package converter

import (
	"dawrni-api/internal/delivery/dto"
	"dawrni-api/internal/domain/entity"
)

// CompanyToResponse renders the public view of a company in lang.
// isFavorite is nil when the caller is not a client.
func CompanyToResponse(company *entity.Company, lang entity.Language, isFavorite *bool) *dto.CompanyResponse {
	if company == nil {
		return nil
	}

	return &dto.CompanyResponse{
		ID:          company.ID,
		CategoryID:  company.CategoryID,
		Name:        lang.Pick(company.NameAr, company.NameEn),
		Address:     lang.Pick(company.AddressAr, company.AddressEn),
		About:       lang.Pick(company.AboutAr, company.AboutEn),
		IsCertified: company.IsCertified,
		Image:       company.Image,
		Lat:         company.Lat,
		Lng:         company.Lng,
		Photos:      CompanyPhotosToResponse(company.Photos),
		IsFavorite:  isFavorite,
	}
}

// CompaniesToResponse renders a page of companies; favorites may be nil.
func CompaniesToResponse(companies []entity.Company, lang entity.Language, favorites map[int64]bool) []dto.CompanyResponse {
	responses := make([]dto.CompanyResponse, 0, len(companies))
	for i := range companies {
		var isFavorite *bool
		if favorites != nil {
			fav := favorites[companies[i].ID]
			isFavorite = &fav
		}
		responses = append(responses, *CompanyToResponse(&companies[i], lang, isFavorite))
	}
	return responses
}

func CompanyPhotosToResponse(photos []entity.CompanyPhoto) []dto.CompanyPhotoResponse {
	if len(photos) == 0 {
		return nil
	}
	responses := make([]dto.CompanyPhotoResponse, 0, len(photos))
	for _, photo := range photos {
		responses = append(responses, dto.CompanyPhotoResponse{
			ID:    photo.ID,
			Image: photo.Image,
		})
	}
	return responses
}

func CompanyToProfileResponse(company *entity.Company) *dto.CompanyProfileResponse {
	if company == nil {
		return nil
	}

	photos := CompanyPhotosToResponse(company.Photos)
	if photos == nil {
		photos = []dto.CompanyPhotoResponse{}
	}

	return &dto.CompanyProfileResponse{
		ID:          company.ID,
		Email:       company.User.Email,
		CategoryID:  company.CategoryID,
		NameAr:      company.NameAr,
		NameEn:      company.NameEn,
		AddressAr:   company.AddressAr,
		AddressEn:   company.AddressEn,
		AboutAr:     company.AboutAr,
		AboutEn:     company.AboutEn,
		IsCertified: company.IsCertified,
		Image:       company.Image,
		Lat:         company.Lat,
		Lng:         company.Lng,
		Photos:      photos,
	}
}

func CategoriesToResponse(categories []entity.Category) []dto.CategoryResponse {
	responses := make([]dto.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		responses = append(responses, dto.CategoryResponse{
			ID:   category.ID,
			Name: category.Name,
		})
	}
	return responses
}
