package dto

import (
	"time"

	"github.com/google/uuid"
)

type UserProfileResponse struct {
	Id            uuid.UUID  `json:"id"`
	Email         string     `json:"email"`
	FullName      string     `json:"full_name"`
	Role          string     `json:"role"`
	Status        string     `json:"status"`
	DateOfBirth   *time.Time `json:"date_of_birth,omitempty"`
	Sex           *string    `json:"sex,omitempty"`
	BloodType     *string    `json:"blood_type,omitempty"`
	FamilyHistory []string   `json:"family_history,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

type UpdateProfileRequest struct {
	FullName      string     `json:"full_name" validate:"omitempty,min=3"`
	DateOfBirth   *time.Time `json:"date_of_birth" validate:"omitempty"`
	Sex           *string    `json:"sex" validate:"omitempty,oneof=Male Female Other"`
	BloodType     *string    `json:"blood_type" validate:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	FamilyHistory []string   `json:"family_history" validate:"omitempty,dive,min=1"`
}
