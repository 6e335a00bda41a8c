package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	ErrCodeNotFound             ErrorCode = "NOT_FOUND"
	ErrCodeUnauthorized         ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden            ErrorCode = "FORBIDDEN"
	ErrCodeBadRequest           ErrorCode = "BAD_REQUEST"
	ErrCodeConflict             ErrorCode = "CONFLICT"
	ErrCodeInternal             ErrorCode = "INTERNAL_ERROR"
	ErrCodeValidation           ErrorCode = "VALIDATION_ERROR"
	ErrCodePersistence          ErrorCode = "PERSISTENCE_ERROR"
	ErrCodeInvalidBracketFormat ErrorCode = "INVALID_BRACKET_FORMAT"
	ErrCodeUpstreamUnavailable  ErrorCode = "UPSTREAM_UNAVAILABLE"
)

type AppError struct {
	Code       ErrorCode
	Message    string
	HTTPStatus int
	Cause      error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is сравнивает ошибки по коду и сообщению, чтобы errors.Is работал
// с заранее объявленными ошибками даже после Wrap.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Cause:      err,
	}
}

// Persistence оборачивает ошибку драйвера БД.
func Persistence(err error, message string) *AppError {
	return Wrap(err, ErrCodePersistence, message)
}

// Validation создаёт ошибку валидации входных данных.
func Validation(message string) *AppError {
	return New(ErrCodeValidation, message)
}

func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeForbidden:
		return http.StatusForbidden
	case ErrCodeBadRequest, ErrCodeValidation:
		return http.StatusBadRequest
	case ErrCodeInvalidBracketFormat:
		return http.StatusUnprocessableEntity
	case ErrCodeConflict:
		return http.StatusConflict
	case ErrCodeUpstreamUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

func IsNotFound(err error) bool {
	return CodeOf(err) == ErrCodeNotFound
}

func IsForbidden(err error) bool {
	return CodeOf(err) == ErrCodeForbidden
}

func IsValidation(err error) bool {
	return CodeOf(err) == ErrCodeValidation
}

func IsPersistence(err error) bool {
	return CodeOf(err) == ErrCodePersistence
}

func IsInvalidBracketFormat(err error) bool {
	return CodeOf(err) == ErrCodeInvalidBracketFormat
}

func IsUpstreamUnavailable(err error) bool {
	return CodeOf(err) == ErrCodeUpstreamUnavailable
}

var (
	ErrProposalNotFound   = New(ErrCodeNotFound, "proposta não encontrada")
	ErrPriceTableNotFound = New(ErrCodeNotFound, "tabela de preços não encontrada")
	ErrBracketNotFound    = New(ErrCodeNotFound, "faixa etária não encontrada")
	ErrProductNotFound    = New(ErrCodeNotFound, "produto não encontrado")
	ErrLinkNotFound       = New(ErrCodeNotFound, "vínculo entre produto e tabela não encontrado")
	ErrCommissionNotFound = New(ErrCodeNotFound, "comissão não encontrada")
	ErrAdminUserNotFound  = New(ErrCodeNotFound, "usuário administrativo não encontrado")
	ErrBrokerNotFound     = New(ErrCodeNotFound, "corretor não encontrado")
	ErrUnauthorized       = New(ErrCodeUnauthorized, "autenticação necessária")
	ErrForbidden          = New(ErrCodeForbidden, "permissão insuficiente")
	ErrInvalidCredentials = New(ErrCodeUnauthorized, "credenciais inválidas")
	ErrEmailAlreadyUsed   = New(ErrCodeConflict, "este email já está cadastrado")
	ErrAccountDisabled    = New(ErrCodeForbidden, "conta inativa ou aguardando aprovação")
)
