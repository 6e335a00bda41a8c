package service

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/matheusgmdr7/contratando2/internal/domain/entity"
	"github.com/matheusgmdr7/contratando2/internal/domain/repository"
	"github.com/matheusgmdr7/contratando2/internal/domain/valueobject"
	"github.com/matheusgmdr7/contratando2/internal/logger"
	"github.com/matheusgmdr7/contratando2/internal/pkg/apperror"
	"github.com/matheusgmdr7/contratando2/internal/validation"
)

// LoginInput содержит данные для входа.
type LoginInput struct {
	Role     valueobject.Role
	Email    string
	Password string
}

// AuthResult — итог авторизации.
type AuthResult struct {
	Session   entity.Session
	Name      string
	Email     string
	TokenPair *TokenPair
}

// AuthService проверяет учётные данные администраторов и corretores.
type AuthService struct {
	admins       repository.AdminUserRepository
	brokers      repository.BrokerRepository
	tokenManager *TokenManager
}

func NewAuthService(admins repository.AdminUserRepository, brokers repository.BrokerRepository, tokenManager *TokenManager) *AuthService {
	return &AuthService{
		admins:       admins,
		brokers:      brokers,
		tokenManager: tokenManager,
	}
}

// Login проверяет пароль и выпускает токены. Неизвестный email и неверный
// пароль дают одну и ту же ошибку.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, err
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))

	switch in.Role {
	case valueobject.RoleAdmin:
		return s.loginAdmin(ctx, email, in.Password)
	case valueobject.RoleBroker:
		return s.loginBroker(ctx, email, in.Password)
	default:
		return nil, apperror.Validation("tipo de usuário inválido")
	}
}

func (s *AuthService) loginAdmin(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.admins.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !checkPassword(user.PasswordHash, password) {
		return nil, apperror.ErrInvalidCredentials
	}
	if !user.IsActive() {
		return nil, apperror.ErrAccountDisabled
	}

	if err := s.admins.TouchLastAccess(ctx, user.ID); err != nil {
		logger.Component("auth").WithError(err).WithField("user_id", user.ID).
			Warn("auth: не удалось обновить ultimo_acesso")
	}

	session := entity.Session{UserID: user.ID, Role: valueobject.RoleAdmin, Profile: user.Profile}
	return s.issue(session, user.Name, user.Email)
}

func (s *AuthService) loginBroker(ctx context.Context, email, password string) (*AuthResult, error) {
	broker, err := s.brokers.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if broker == nil || !checkPassword(broker.PasswordHash, password) {
		return nil, apperror.ErrInvalidCredentials
	}
	if !broker.Approved {
		return nil, apperror.ErrAccountDisabled
	}

	session := entity.Session{UserID: broker.ID, Role: valueobject.RoleBroker}
	return s.issue(session, broker.Name, broker.Email)
}

// Refresh выпускает новую пару, если учётная запись всё ещё активна.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	session, err := s.tokenManager.ParseRefresh(refreshToken)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeUnauthorized, "sessão expirada")
	}

	switch session.Role {
	case valueobject.RoleAdmin:
		user, err := s.admins.FindByID(ctx, session.UserID)
		if err != nil {
			return nil, err
		}
		if !user.IsActive() {
			return nil, apperror.ErrAccountDisabled
		}
		session.Profile = user.Profile
	case valueobject.RoleBroker:
		broker, err := s.brokers.FindByID(ctx, session.UserID)
		if err != nil {
			return nil, err
		}
		if !broker.Approved {
			return nil, apperror.ErrAccountDisabled
		}
	}

	return s.tokenManager.GeneratePair(session)
}

func (s *AuthService) issue(session entity.Session, name, email string) (*AuthResult, error) {
	pair, err := s.tokenManager.GeneratePair(session)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "erro ao gerar token")
	}
	return &AuthResult{Session: session, Name: name, Email: email, TokenPair: pair}, nil
}

func checkPassword(hash, password string) bool {
	return hash != "" && bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
