package valueobject

import (
	"strings"

	"github.com/matheusgmdr7/contratando2/internal/pkg/apperror"
)

type ProposalStatus string

const (
	ProposalStatusPending        ProposalStatus = "pendente"
	ProposalStatusAwaitingClient ProposalStatus = "aguardando_cliente"
	ProposalStatusApproved       ProposalStatus = "aprovada"
	ProposalStatusRejected       ProposalStatus = "rejeitada"
	ProposalStatusSigned         ProposalStatus = "ASSINADO"
)

func (s ProposalStatus) IsValid() bool {
	switch s {
	case ProposalStatusPending, ProposalStatusAwaitingClient, ProposalStatusApproved,
		ProposalStatusRejected, ProposalStatusSigned:
		return true
	}
	return false
}

// IsTerminal сообщает, что решение по proposta уже принято.
func (s ProposalStatus) IsTerminal() bool {
	return s == ProposalStatusApproved || s == ProposalStatusRejected
}

// NewProposalStatus принимает статус в любом регистре, кроме ASSINADO,
// который исторически хранится заглавными буквами.
func NewProposalStatus(status string) (ProposalStatus, error) {
	raw := strings.TrimSpace(status)
	if strings.EqualFold(raw, string(ProposalStatusSigned)) {
		return ProposalStatusSigned, nil
	}
	s := ProposalStatus(strings.ToLower(raw))
	if !s.IsValid() {
		return "", apperror.Validation("status de proposta inválido")
	}
	return s, nil
}

// ProposalOrigin — физическая таблица, из которой пришла proposta.
type ProposalOrigin string

const (
	OriginDirect ProposalOrigin = "propostas"
	OriginBroker ProposalOrigin = "propostas_corretores"
)

func (o ProposalOrigin) IsValid() bool {
	return o == OriginDirect || o == OriginBroker
}

// DocumentsBucket возвращает bucket для документов proposta данного источника.
func (o ProposalOrigin) DocumentsBucket() string {
	if o == OriginBroker {
		return "documentos-propostas-corretores"
	}
	return "documentos_propostas"
}

type CommissionStatus string

const (
	CommissionStatusPending CommissionStatus = "pendente"
	CommissionStatusPaid    CommissionStatus = "pago"
)

func NewCommissionStatus(status string) (CommissionStatus, error) {
	s := CommissionStatus(strings.ToLower(strings.TrimSpace(status)))
	if s != CommissionStatusPending && s != CommissionStatusPaid {
		return "", apperror.Validation("status de comissão inválido")
	}
	return s, nil
}

// Role — роль аутентифицированной сессии.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleBroker Role = "corretor"
)

func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleBroker
}

type AdminProfile string

const (
	AdminProfileMaster    AdminProfile = "master"
	AdminProfileSecretary AdminProfile = "secretaria"
	AdminProfileAssistant AdminProfile = "assistente"
)

func NewAdminProfile(profile string) (AdminProfile, error) {
	p := AdminProfile(strings.ToLower(strings.TrimSpace(profile)))
	switch p {
	case AdminProfileMaster, AdminProfileSecretary, AdminProfileAssistant:
		return p, nil
	}
	return "", apperror.Validation("perfil administrativo inválido")
}

type AdminStatus string

const (
	AdminStatusActive   AdminStatus = "ativo"
	AdminStatusInactive AdminStatus = "inativo"
)

func NewAdminStatus(status string) (AdminStatus, error) {
	s := AdminStatus(strings.ToLower(strings.TrimSpace(status)))
	if s != AdminStatusActive && s != AdminStatusInactive {
		return "", apperror.Validation("status de usuário inválido")
	}
	return s, nil
}
