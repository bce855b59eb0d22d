package validator

import (
	"log"

	"github.com/go-playground/validator/v10"

	"propel_backend/internal/models"
)

// registerCustomRules регистрирует кастомные функции валидации в
// переданном экземпляре валидатора.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// Приложение не должно запускаться с неполным набором правил
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// 'is-account-role': роль аккаунта из фиксированного набора
	mustRegister("is-account-role", validateAccountRole)
}

func validateAccountRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // пустые значения проверяет 'required'
	}
	return models.Role(value) == models.RoleAdmin || models.Role(value) == models.RoleUser
}
