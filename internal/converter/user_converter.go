package converter

import (
	"dawrni-api/internal/delivery/dto"
	"dawrni-api/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO.
// image is the profile picture of whichever profile variant the user owns.
func UserToResponse(user *entity.User, image string) *dto.UserResponse {
	if user == nil {
		return nil
	}

	return &dto.UserResponse{
		ID:         user.ID,
		Email:      user.Email,
		FullName:   user.FullName,
		UserType:   string(user.Role),
		IsVerified: user.IsVerified,
		Image:      image,
		CreatedAt:  user.CreatedAt,
	}
}
