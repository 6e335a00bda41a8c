package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/matheusgmdr7/contratando2/internal/domain/entity"
	"github.com/matheusgmdr7/contratando2/internal/domain/valueobject"
)

// TokenPair хранит пару access/refresh токенов.
type TokenPair struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	ExpiresIn    time.Duration `json:"expires_in"`
}

// sessionClaims переносят роль и perfil между запросами.
type sessionClaims struct {
	Role    string `json:"role"`
	Profile string `json:"perfil,omitempty"`
	jwt.RegisteredClaims
}

// TokenManager выпускает и проверяет JWT.
type TokenManager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewTokenManager(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenManager {
	return &TokenManager{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// GeneratePair выпускает новую пару токенов для сессии.
func (m *TokenManager) GeneratePair(session entity.Session) (*TokenPair, error) {
	now := time.Now()

	access, err := m.sign(session, now, now.Add(m.accessTTL), m.accessSecret)
	if err != nil {
		return nil, err
	}
	refresh, err := m.sign(session, now, now.Add(m.refreshTTL), m.refreshSecret)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    m.accessTTL,
	}, nil
}

func (m *TokenManager) ParseAccess(token string) (entity.Session, error) {
	return m.parse(token, m.accessSecret)
}

func (m *TokenManager) ParseRefresh(token string) (entity.Session, error) {
	return m.parse(token, m.refreshSecret)
}

func (m *TokenManager) sign(session entity.Session, now, exp time.Time, secret []byte) (string, error) {
	claims := sessionClaims{
		Role:    string(session.Role),
		Profile: string(session.Profile),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   session.UserID.String(),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func (m *TokenManager) parse(token string, secret []byte) (entity.Session, error) {
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return entity.Session{}, err
	}
	if !parsed.Valid {
		return entity.Session{}, jwt.ErrTokenInvalidClaims
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return entity.Session{}, err
	}
	role := valueobject.Role(claims.Role)
	if role != valueobject.RoleAdmin && role != valueobject.RoleBroker {
		return entity.Session{}, jwt.ErrTokenInvalidClaims
	}

	return entity.Session{
		UserID:  userID,
		Role:    role,
		Profile: valueobject.AdminProfile(claims.Profile),
	}, nil
}
