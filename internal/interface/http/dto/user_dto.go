package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/matheusgmdr7/contratando2/internal/domain/entity"
	"github.com/matheusgmdr7/contratando2/internal/service"
	"github.com/matheusgmdr7/contratando2/internal/usecase/adminuser"
)

type LoginRequest struct {
	Role     string `json:"tipo" binding:"required,oneof=admin corretor"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"senha" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type AuthResponse struct {
	UserID       uuid.UUID `json:"id"`
	Role         string    `json:"tipo"`
	Profile      string    `json:"perfil,omitempty"`
	Name         string    `json:"nome"`
	Email        string    `json:"email"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresIn    int64     `json:"expires_in"`
}

func ToAuthResponse(r *service.AuthResult) AuthResponse {
	return AuthResponse{
		UserID:       r.Session.UserID,
		Role:         string(r.Session.Role),
		Profile:      string(r.Session.Profile),
		Name:         r.Name,
		Email:        r.Email,
		AccessToken:  r.TokenPair.AccessToken,
		RefreshToken: r.TokenPair.RefreshToken,
		ExpiresIn:    int64(r.TokenPair.ExpiresIn.Seconds()),
	}
}

type CreateAdminUserRequest struct {
	Name        string             `json:"nome" binding:"required"`
	Email       string             `json:"email" binding:"required"`
	Password    string             `json:"senha" binding:"required"`
	Profile     string             `json:"perfil" binding:"required"`
	Permissions entity.Permissions `json:"permissoes"`
}

func (r CreateAdminUserRequest) ToInput() adminuser.CreateInput {
	return adminuser.CreateInput{
		Name:        r.Name,
		Email:       r.Email,
		Password:    r.Password,
		Profile:     r.Profile,
		Permissions: r.Permissions,
	}
}

type UpdateAdminUserRequest struct {
	Name        string             `json:"nome"`
	Email       string             `json:"email"`
	Password    string             `json:"senha"`
	Profile     string             `json:"perfil"`
	Permissions entity.Permissions `json:"permissoes"`
}

func (r UpdateAdminUserRequest) ToInput() adminuser.UpdateInput {
	return adminuser.UpdateInput{
		Name:        r.Name,
		Email:       r.Email,
		Password:    r.Password,
		Profile:     r.Profile,
		Permissions: r.Permissions,
	}
}

type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type AdminUserResponse struct {
	ID           uuid.UUID          `json:"id"`
	Name         string             `json:"nome"`
	Email        string             `json:"email"`
	Profile      string             `json:"perfil"`
	Status       string             `json:"status"`
	Permissions  entity.Permissions `json:"permissoes"`
	CreatedBy    *uuid.UUID         `json:"created_by,omitempty"`
	LastAccessAt *time.Time         `json:"ultimo_acesso,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// ToAdminUserResponse никогда не отдаёт хэш пароля.
func ToAdminUserResponse(u *entity.AdminUser) AdminUserResponse {
	return AdminUserResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Profile:      string(u.Profile),
		Status:       string(u.Status),
		Permissions:  u.Permissions,
		CreatedBy:    u.CreatedBy,
		LastAccessAt: u.LastAccessAt,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func ToAdminUserResponses(users []*entity.AdminUser) []AdminUserResponse {
	responses := make([]AdminUserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, ToAdminUserResponse(u))
	}
	return responses
}

type CommissionStatusRequest struct {
	Status string `json:"status" binding:"required"`
	PaidAt string `json:"data_pagamento"`
}

type CommissionResponse struct {
	ID          uuid.UUID  `json:"id"`
	BrokerID    uuid.UUID  `json:"corretor_id"`
	ProposalID  *uuid.UUID `json:"proposta_id,omitempty"`
	Description string     `json:"descricao"`
	Value       float64    `json:"valor"`
	Percentage  string     `json:"percentual"`
	Status      string     `json:"status"`
	Date        *time.Time `json:"data,omitempty"`
	PaidAt      *time.Time `json:"data_pagamento,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func ToCommissionResponse(c *entity.Commission) CommissionResponse {
	return CommissionResponse{
		ID:          c.ID,
		BrokerID:    c.BrokerID,
		ProposalID:  c.ProposalID,
		Description: c.Description,
		Value:       c.Value,
		Percentage:  c.Percentage,
		Status:      string(c.Status),
		Date:        c.Date,
		PaidAt:      c.PaidAt,
		CreatedAt:   c.CreatedAt,
	}
}

func ToCommissionResponses(commissions []*entity.Commission) []CommissionResponse {
	responses := make([]CommissionResponse, 0, len(commissions))
	for _, c := range commissions {
		responses = append(responses, ToCommissionResponse(c))
	}
	return responses
}

type CommissionSummaryResponse struct {
	TotalPending float64            `json:"totalPendente"`
	TotalPaid    float64            `json:"totalPago"`
	ByMonth      map[string]float64 `json:"porMes"`
}

func ToCommissionSummaryResponse(s entity.CommissionSummary) CommissionSummaryResponse {
	return CommissionSummaryResponse{
		TotalPending: s.TotalPending,
		TotalPaid:    s.TotalPaid,
		ByMonth:      s.ByMonth,
	}
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

func ToTokenResponse(p *service.TokenPair) TokenResponse {
	return TokenResponse{
		AccessToken:  p.AccessToken,
		RefreshToken: p.RefreshToken,
		ExpiresIn:    int64(p.ExpiresIn.Seconds()),
	}
}
