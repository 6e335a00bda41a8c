package validation

import (
	"unicode"

	"github.com/matheusgmdr7/contratando2/internal/pkg/apperror"
)

// ValidatePassword: минимум 8 символов, заглавная, строчная буква и цифра.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return apperror.Validation("a senha deve ter pelo menos 8 caracteres")
	}

	var hasUpper, hasLower, hasNumber bool
	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsNumber(char):
			hasNumber = true
		}
	}

	if !hasUpper {
		return apperror.Validation("a senha deve conter pelo menos uma letra maiúscula")
	}
	if !hasLower {
		return apperror.Validation("a senha deve conter pelo menos uma letra minúscula")
	}
	if !hasNumber {
		return apperror.Validation("a senha deve conter pelo menos um número")
	}
	return nil
}
