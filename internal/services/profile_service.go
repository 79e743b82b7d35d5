package services

import (
	"time"

	"olympschools_backend/internal/fieldcipher"
	"olympschools_backend/internal/models"
	"olympschools_backend/internal/repositories"
	"olympschools_backend/internal/services/dto"
	"olympschools_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ProfileService interface {
	GetByEmail(db *gorm.DB, userEmail string) (*dto.ProfileResponse, error)
	Update(db *gorm.DB, userEmail string, req *dto.ProfileUpdateRequest) (*dto.ProfileResponse, error)
	ListUserProfiles(db *gorm.DB) ([]dto.ProfileResponse, error)
	SetRole(db *gorm.DB, userEmail string, role models.UserRole) error
}

type profileService struct {
	userRepo repositories.UserRepository
	cipher   *fieldcipher.Cipher
}

func NewProfileService(userRepo repositories.UserRepository, cipher *fieldcipher.Cipher) ProfileService {
	return &profileService{
		userRepo: userRepo,
		cipher:   cipher,
	}
}

// GetByEmail возвращает профиль с расшифрованными персональными полями.
// Ошибка расшифровки НЕ глушится: это 500 (ключ или данные повреждены).
func (s *profileService) GetByEmail(db *gorm.DB, userEmail string) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.FindByEmail(db, userEmail)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	return s.buildProfileResponse(user)
}

// Update - частичное обновление профиля.
// Персональные поля перешифровываются по отдельности, только переданные.
func (s *profileService) Update(db *gorm.DB, userEmail string, req *dto.ProfileUpdateRequest) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.FindByEmail(db, userEmail)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	// Смена email с проверкой уникальности
	if req.Email != nil && *req.Email != user.Email {
		exists, err := s.userRepo.ExistsByEmail(db, *req.Email)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		if exists {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		user.Email = *req.Email
	}

	if err := s.applyEncryptedUpdates(user, req); err != nil {
		return nil, err
	}

	if req.BirthDate != nil {
		birthDate, err := time.Parse("2006-01-02", *req.BirthDate)
		if err != nil {
			return nil, apperrors.NewBadRequestError("Invalid birth_date format, expected YYYY-MM-DD")
		}
		user.BirthDate = birthDate
	}
	if req.Gender != nil {
		user.Gender = *req.Gender
	}
	if req.ClassCourse != nil {
		user.ClassCourse = *req.ClassCourse
	}
	if req.EducationalInstitution != nil {
		user.EducationalInstitution = *req.EducationalInstitution
	}
	// Role и RegistrationDate через профиль не меняются

	if err := s.userRepo.Update(db, user); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.buildProfileResponse(user)
}

// ListUserProfiles возвращает профили всех участников (роль USER).
// Админ-операция для выгрузки анкет.
func (s *profileService) ListUserProfiles(db *gorm.DB) ([]dto.ProfileResponse, error) {
	users, err := s.userRepo.FindAllByRole(db, models.RoleUser)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	profiles := make([]dto.ProfileResponse, 0, len(users))
	for i := range users {
		profile, err := s.buildProfileResponse(&users[i])
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *profile)
	}
	return profiles, nil
}

// SetRole - явное админ-действие. Единственный легальный путь смены роли.
func (s *profileService) SetRole(db *gorm.DB, userEmail string, role models.UserRole) error {
	user, err := s.userRepo.FindByEmail(db, userEmail)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.InternalError(err)
	}

	if err := s.userRepo.UpdateRole(db, user.ID, role); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// applyEncryptedUpdates перешифровывает переданные персональные поля
func (s *profileService) applyEncryptedUpdates(user *models.User, req *dto.ProfileUpdateRequest) error {
	fields := []struct {
		dst *string
		src *string
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
		if f.src == nil {
			continue
		}
		encrypted, err := s.cipher.Encrypt(*f.src)
		if err != nil {
			return err
		}
		*f.dst = encrypted
	}
	return nil
}

// buildProfileResponse расшифровывает персональные поля пользователя
func (s *profileService) buildProfileResponse(user *models.User) (*dto.ProfileResponse, error) {
	resp := &dto.ProfileResponse{
		ID:    user.ID,
		Email: user.Email,
		Role:  user.Role,

		BirthDate:              user.BirthDate,
		Gender:                 user.Gender,
		ClassCourse:            user.ClassCourse,
		EducationalInstitution: user.EducationalInstitution,
		RegistrationDate:       user.RegistrationDate,
	}

	fields := []struct {
		dst *string
		enc string
	}{
		{&resp.LastName, user.LastName},
		{&resp.FirstName, user.FirstName},
		{&resp.MiddleName, user.MiddleName},
		{&resp.InstitutionAddress, user.InstitutionAddress},
		{&resp.PhoneNumber, user.PhoneNumber},
		{&resp.ResidenceRegion, user.ResidenceRegion},
		{&resp.ResidenceSettlement, user.ResidenceSettlement},
		{&resp.Snils, user.Snils},
		{&resp.PostalAddress, user.PostalAddress},
	}

	for _, f := range fields {
		if f.enc == "" {
			continue
		}
		plain, err := s.cipher.Decrypt(f.enc)
		if err != nil {
			// DECRYPTION_FAILURE пробрасывается как есть - это 500
			return nil, err
		}
		*f.dst = plain
	}

	return resp, nil
}
