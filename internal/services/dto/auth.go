package dto

import (
	"time"

	"olympschools_backend/internal/models"
)

// RegisterRequest - анкета регистрации участника.
// Даты принимаются строкой YYYY-MM-DD (формат клиента).
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,password"`

	LastName   string `json:"last_name" validate:"required"`
	FirstName  string `json:"first_name" validate:"required"`
	MiddleName string `json:"middle_name"`

	BirthDate string        `json:"birth_date" validate:"required"`
	Gender    models.Gender `json:"gender" validate:"required,oneof=MALE FEMALE"`

	ClassCourse            string `json:"class_course"`
	EducationalInstitution string `json:"educational_institution"`
	InstitutionAddress     string `json:"institution_address"`
	PhoneNumber            string `json:"phone_number"`
	ResidenceRegion        string `json:"residence_region"`
	ResidenceSettlement    string `json:"residence_settlement"`
	Snils                  string `json:"snils"`
	PostalAddress          string `json:"postal_address"`
}

// LoginRequest - запрос на вход
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse - ответ на успешный вход или регистрацию (авто-логин)
type LoginResponse struct {
	Token   string          `json:"token"`
	Role    models.UserRole `json:"role"`
	Message string          `json:"message"`
}

// ForgotPasswordRequest - запрос ссылки на сброс пароля
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest - сброс пароля по токену
type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,password"`
}

// ResetTokenStatusResponse - результат проверки/использования токена сброса
type ResetTokenStatusResponse struct {
	Message string `json:"message"`
	Valid   bool   `json:"valid"`
}

// ChangePasswordRequest - смена пароля аутентифицированным пользователем
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,password"`
}

// ParseBirthDate разбирает дату рождения из формата клиента
func (r *RegisterRequest) ParseBirthDate() (time.Time, error) {
	return time.Parse("2006-01-02", r.BirthDate)
}
