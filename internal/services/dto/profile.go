package dto

import (
	"time"

	"olympschools_backend/internal/models"
)

// ProfileResponse - профиль участника с расшифрованными персональными полями
type ProfileResponse struct {
	ID    string          `json:"id"`
	Email string          `json:"email"`
	Role  models.UserRole `json:"role"`

	LastName   string `json:"last_name"`
	FirstName  string `json:"first_name"`
	MiddleName string `json:"middle_name,omitempty"`

	BirthDate time.Time     `json:"birth_date"`
	Gender    models.Gender `json:"gender"`

	ClassCourse            string `json:"class_course,omitempty"`
	EducationalInstitution string `json:"educational_institution,omitempty"`
	InstitutionAddress     string `json:"institution_address,omitempty"`
	PhoneNumber            string `json:"phone_number,omitempty"`
	ResidenceRegion        string `json:"residence_region,omitempty"`
	ResidenceSettlement    string `json:"residence_settlement,omitempty"`
	Snils                  string `json:"snils,omitempty"`
	PostalAddress          string `json:"postal_address,omitempty"`

	RegistrationDate time.Time `json:"registration_date"`
}

// ProfileUpdateRequest - частичное обновление профиля.
// nil-поля не трогаются; переданные персональные поля перешифровываются
// по отдельности, запись целиком не перешифровывается.
type ProfileUpdateRequest struct {
	Email *string `json:"email,omitempty" validate:"omitempty,email"`

	LastName   *string `json:"last_name,omitempty"`
	FirstName  *string `json:"first_name,omitempty"`
	MiddleName *string `json:"middle_name,omitempty"`

	BirthDate *string        `json:"birth_date,omitempty"`
	Gender    *models.Gender `json:"gender,omitempty" validate:"omitempty,oneof=MALE FEMALE"`

	ClassCourse            *string `json:"class_course,omitempty"`
	EducationalInstitution *string `json:"educational_institution,omitempty"`
	InstitutionAddress     *string `json:"institution_address,omitempty"`
	PhoneNumber            *string `json:"phone_number,omitempty"`
	ResidenceRegion        *string `json:"residence_region,omitempty"`
	ResidenceSettlement    *string `json:"residence_settlement,omitempty"`
	Snils                  *string `json:"snils,omitempty"`
	PostalAddress          *string `json:"postal_address,omitempty"`
}

// SetRoleRequest - явное админ-действие смены роли
type SetRoleRequest struct {
	Email string          `json:"email" validate:"required,email"`
	Role  models.UserRole `json:"role" validate:"required,oneof=USER ADMIN"`
}
