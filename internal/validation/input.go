package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/matheusgmdr7/contratando2/internal/pkg/apperror"
)

const (
	MinNameLength      = 2
	MaxNameLength      = 150
	MaxDescriptionLen  = 2000
	MaxReasonLength    = 1000
	MaxSignatureLength = 200000
)

var (
	emailLocalRe  = regexp.MustCompile(`^[a-z0-9._+-]+$`)
	emailDomainRe = regexp.MustCompile(`^[a-z0-9.-]+\.[a-z]{2,}$`)
	nonDigitRe    = regexp.MustCompile(`\D`)
)

// ValidateLength проверяет длину строки в рунах.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return apperror.Validation(fmt.Sprintf("%s deve ter pelo menos %d caracteres", fieldName, min))
	}
	if max > 0 && length > max {
		return apperror.Validation(fmt.Sprintf("%s deve ter no máximo %d caracteres", fieldName, max))
	}
	return nil
}

// ValidateEmail проверяет формат email.
func ValidateEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return apperror.Validation("email é obrigatório")
	}

	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return apperror.Validation("formato de email inválido")
	}
	local, domain := parts[0], parts[1]

	if len(local) == 0 || len(local) > 64 || !emailLocalRe.MatchString(local) {
		return apperror.Validation("formato de email inválido")
	}
	if len(domain) > 255 || !emailDomainRe.MatchString(domain) {
		return apperror.Validation("domínio do email inválido")
	}
	return nil
}

// ValidateCPF проверяет контрольные цифры CPF. Маска допускается.
func ValidateCPF(cpf string) error {
	digits := OnlyDigits(cpf)
	if len(digits) != 11 {
		return apperror.Validation("CPF deve ter 11 dígitos")
	}
	if strings.Count(digits, digits[:1]) == 11 {
		return apperror.Validation("CPF inválido")
	}

	d := make([]int, 11)
	for i, r := range digits {
		d[i] = int(r - '0')
	}
	if checkDigit(d[:9], 10) != d[9] || checkDigit(d[:10], 11) != d[10] {
		return apperror.Validation("CPF inválido")
	}
	return nil
}

func checkDigit(digits []int, weight int) int {
	sum := 0
	for _, v := range digits {
		sum += v * weight
		weight--
	}
	rest := (sum * 10) % 11
	if rest == 10 {
		return 0
	}
	return rest
}

// OnlyDigits убирает маску из CPF и телефонов.
func OnlyDigits(s string) string {
	return nonDigitRe.ReplaceAllString(s, "")
}
