package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/matheusgmdr7/contratando2/internal/domain/valueobject"
	"github.com/matheusgmdr7/contratando2/internal/pkg/apperror"
)

// Permissions: модуль -> действие -> разрешено.
type Permissions map[string]map[string]bool

// Merge накладывает custom поверх базовых прав целыми модулями.
func (p Permissions) Merge(custom Permissions) Permissions {
	out := make(Permissions, len(p)+len(custom))
	for module, actions := range p {
		out[module] = actions
	}
	for module, actions := range custom {
		out[module] = actions
	}
	return out
}

func (p Permissions) Allows(module, action string) bool {
	return p[module][action]
}

type AdminUser struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Profile      valueobject.AdminProfile
	Status       valueobject.AdminStatus
	Permissions  Permissions
	CreatedBy    *uuid.UUID
	LastAccessAt *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func NewAdminUser(name, email, passwordHash string, profile valueobject.AdminProfile, permissions Permissions, createdBy *uuid.UUID) (*AdminUser, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.Validation("nome é obrigatório")
	}
	if passwordHash == "" {
		return nil, apperror.Validation("senha é obrigatória")
	}
	now := time.Now()
	return &AdminUser{
		ID:           uuid.New(),
		Name:         name,
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: passwordHash,
		Profile:      profile,
		Status:       valueobject.AdminStatusActive,
		Permissions:  permissions,
		CreatedBy:    createdBy,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func (u *AdminUser) IsActive() bool {
	return u.Status == valueobject.AdminStatusActive
}

// Broker — corretor в объёме, нужном для входа и уведомлений.
type Broker struct {
	ID           uuid.UUID
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	Approved     bool
}
