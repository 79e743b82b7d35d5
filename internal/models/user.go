package models

import "time"

// UserRole - роль пользователя портала
type UserRole string

const (
	RoleUser  UserRole = "USER"
	RoleAdmin UserRole = "ADMIN" // первый зарегистрированный становится ADMIN
)

// Gender - пол участника
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

// User - учетная запись участника олимпиад.
//
// Персональные поля (фамилия, имя, отчество, адреса, телефон, регион,
// СНИЛС) хранятся в зашифрованном виде: в колонке лежит base64-шифротекст,
// сервисы шифруют при записи и расшифровывают при чтении через fieldcipher.
// Email, дата рождения, класс и учебное заведение хранятся открыто.
type User struct {
	BaseModel
	Email        string   `gorm:"uniqueIndex;not null"`
	PasswordHash string   `gorm:"not null"`
	Role         UserRole `gorm:"type:varchar(20);not null;default:'USER'"`

	// Зашифрованные персональные данные
	LastName            string
	FirstName           string
	MiddleName          string
	InstitutionAddress  string
	PhoneNumber         string
	ResidenceRegion     string
	ResidenceSettlement string
	Snils               string
	PostalAddress       string

	// Открытые, не-чувствительные атрибуты
	BirthDate              time.Time `gorm:"type:date;not null"`
	Gender                 Gender    `gorm:"type:varchar(10)"`
	ClassCourse            string
	EducationalInstitution string

	// Выставляется один раз при создании и больше не меняется
	RegistrationDate time.Time `gorm:"type:date;not null"`

	ResetTokens []PasswordResetToken `gorm:"foreignKey:UserID"`
}

// PasswordResetToken - одноразовый токен сброса пароля.
// Единственная разрешенная мутация - переход used false -> true;
// просроченные записи удаляет уборщик независимо от флага used.
type PasswordResetToken struct {
	BaseModel
	Token      string    `gorm:"not null;uniqueIndex"`
	UserID     string    `gorm:"not null;index"`
	ExpiryDate time.Time `gorm:"not null"`
	Used       bool      `gorm:"not null;default:false"`
}

// IsExpired сообщает, истек ли срок действия токена
func (t *PasswordResetToken) IsExpired() bool {
	return time.Now().After(t.ExpiryDate)
}
