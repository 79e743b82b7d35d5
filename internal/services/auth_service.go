package services

import (
	"time"

	"olympschools_backend/internal/auth"
	"olympschools_backend/internal/fieldcipher"
	"olympschools_backend/internal/models"
	"olympschools_backend/internal/repositories"
	"olympschools_backend/internal/services/dto"
	"olympschools_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type AuthService interface {
	Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.LoginResponse, error)
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error)
	ChangePassword(db *gorm.DB, userEmail, currentPassword, newPassword string) error
}

type authService struct {
	userRepo repositories.UserRepository
	tokens   *auth.TokenManager
	cipher   *fieldcipher.Cipher
}

func NewAuthService(
	userRepo repositories.UserRepository,
	tokens *auth.TokenManager,
	cipher *fieldcipher.Cipher,
) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		cipher:   cipher,
	}
}

// Register - регистрация нового участника с авто-логином.
// Самый первый зарегистрированный пользователь получает роль ADMIN,
// все последующие - USER. Проверка количества и вставка идут в одной
// транзакции, чтобы две конкурентные первые регистрации не дали двух админов.
func (s *authService) Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.LoginResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, err
	}

	birthDate, err := req.ParseBirthDate()
	if err != nil {
		return nil, apperrors.NewBadRequestError("Invalid birth_date format, expected YYYY-MM-DD")
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	var user *models.User

	txErr := db.Transaction(func(tx *gorm.DB) error {
		count, err := s.userRepo.Count(tx)
		if err != nil {
			return apperrors.InternalError(err)
		}

		role := models.RoleUser
		if count == 0 {
			role = models.RoleAdmin
		}

		user = &models.User{
			Email:        req.Email,
			PasswordHash: hashedPassword,
			Role:         role,

			BirthDate:              birthDate,
			Gender:                 req.Gender,
			ClassCourse:            req.ClassCourse,
			EducationalInstitution: req.EducationalInstitution,
			RegistrationDate:       todayDate(),
		}

		if err := s.encryptPersonalFields(user, req); err != nil {
			return err
		}

		if err := s.userRepo.Create(tx, user); err != nil {
			if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
				return apperrors.ErrEmailAlreadyExists
			}
			return apperrors.InternalError(err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	token, err := s.tokens.Generate(user.Email, user.Role)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.LoginResponse{
		Token:   token,
		Role:    user.Role,
		Message: "Registration successful and automatically logged in",
	}, nil
}

// Login - аутентификация пользователя.
// "Неизвестный email" и "неверный пароль" наружу неразличимы,
// чтобы нельзя было перечислять зарегистрированные адреса.
func (s *authService) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.Email, user.Role)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.LoginResponse{
		Token:   token,
		Role:    user.Role,
		Message: "Login successful",
	}, nil
}

// ChangePassword - смена пароля, когда пользователь знает текущий
func (s *authService) ChangePassword(db *gorm.DB, userEmail, currentPassword, newPassword string) error {
	user, err := s.userRepo.FindByEmail(db, userEmail)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return apperrors.ErrInvalidCredentials
	}

	if err := auth.ValidatePassword(newPassword); err != nil {
		return err
	}

	hashedPassword, err := auth.HashPassword(newPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.userRepo.UpdatePassword(db, user.ID, hashedPassword); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// todayDate возвращает сегодняшнюю дату без времени.
// Дата регистрации хранится как date и после создания не меняется.
func todayDate() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// encryptPersonalFields шифрует персональные поля анкеты.
// Каждое поле шифруется отдельно, чтобы потом обновлять их по одному.
func (s *authService) encryptPersonalFields(user *models.User, req *dto.RegisterRequest) error {
	fields := []struct {
		dst   *string
		plain string
	}{
		{&user.LastName, req.LastName},
		{&user.FirstName, req.FirstName},
		{&user.MiddleName, req.MiddleName},
		{&user.InstitutionAddress, req.InstitutionAddress},
		{&user.PhoneNumber, req.PhoneNumber},
		{&user.ResidenceRegion, req.ResidenceRegion},
		{&user.ResidenceSettlement, req.ResidenceSettlement},
		{&user.Snils, req.Snils},
		{&user.PostalAddress, req.PostalAddress},
	}

	for _, f := range fields {
		encrypted, err := s.cipher.Encrypt(f.plain)
		if err != nil {
			return err
		}
		*f.dst = encrypted
	}
	return nil
}
