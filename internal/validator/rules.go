package validator

import (
	"github.com/go-playground/validator/v10"
)

// registerCustomRules регистрирует кастомные правила валидации
func registerCustomRules(v *validator.Validate) error {
	// "password" - минимальные требования к паролю.
	// Требования намеренно мягкие (6 символов), как в остальной системе.
	if err := v.RegisterValidation("password", validatePassword); err != nil {
		return err
	}
	return nil
}

func validatePassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()
	return len(password) >= 6
}
