package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/matheusgmdr7/contratando2/internal/domain/entity"
	"github.com/matheusgmdr7/contratando2/internal/pkg/apperror"
	"github.com/matheusgmdr7/contratando2/internal/usecase/proposal"
)

const dateLayout = "2006-01-02"

// ParseDate принимает "YYYY-MM-DD" или RFC3339. Пустая строка даёт nil.
func ParseDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{dateLayout, time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, apperror.Validation("data inválida, use o formato AAAA-MM-DD")
}

type DependentRequest struct {
	Name      string  `json:"nome"`
	CPF       string  `json:"cpf"`
	BirthDate string  `json:"data_nascimento"`
	Kinship   string  `json:"parentesco"`
	Value     float64 `json:"valor" binding:"gte=0"`
}

type CreateProposalRequest struct {
	ClientName  string             `json:"nome_cliente" binding:"required"`
	ClientEmail string             `json:"email" binding:"required"`
	ClientPhone string             `json:"telefone"`
	ClientCPF   string             `json:"cpf"`
	BirthDate   string             `json:"data_nascimento"`
	Value       float64            `json:"valor" binding:"gte=0"`
	ProductID   *uuid.UUID         `json:"produto_id"`
	TableID     *uuid.UUID         `json:"tabela_id"`
	Dependents  []DependentRequest `json:"dependentes" binding:"dive"`
}

func (r CreateProposalRequest) ToInput() (proposal.CreateProposalInput, error) {
	birth, err := ParseDate(r.BirthDate)
	if err != nil {
		return proposal.CreateProposalInput{}, err
	}
	input := proposal.CreateProposalInput{
		ClientName:  r.ClientName,
		ClientEmail: r.ClientEmail,
		ClientPhone: r.ClientPhone,
		ClientCPF:   r.ClientCPF,
		BirthDate:   birth,
		Value:       r.Value,
		ProductID:   r.ProductID,
		TableID:     r.TableID,
		Dependents:  make([]proposal.DependentInput, 0, len(r.Dependents)),
	}
	for _, d := range r.Dependents {
		dBirth, err := ParseDate(d.BirthDate)
		if err != nil {
			return proposal.CreateProposalInput{}, err
		}
		input.Dependents = append(input.Dependents, proposal.DependentInput{
			Name:      d.Name,
			CPF:       d.CPF,
			BirthDate: dBirth,
			Kinship:   d.Kinship,
			Value:     d.Value,
		})
	}
	return input, nil
}

type UpdateProposalStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"motivo"`
}

type ValidationEmailRequest struct {
	Email string `json:"email"`
	Name  string `json:"nome"`
}

type SignProposalRequest struct {
	Signature     string `json:"assinatura" binding:"required"`
	TermsAccepted bool   `json:"aceite_termos"`
}

type ProposalResponse struct {
	ID               uuid.UUID         `json:"id"`
	Origin           string            `json:"origem"`
	Status           string            `json:"status"`
	ClientName       string            `json:"nome_cliente"`
	ClientEmail      string            `json:"email_cliente"`
	ClientPhone      string            `json:"telefone_cliente"`
	ClientCPF        string            `json:"cpf,omitempty"`
	BirthDate        *time.Time        `json:"data_nascimento,omitempty"`
	Value            float64           `json:"valor"`
	ProductID        *uuid.UUID        `json:"produto_id,omitempty"`
	TableID          *uuid.UUID        `json:"tabela_id,omitempty"`
	BrokerID         *uuid.UUID        `json:"corretor_id,omitempty"`
	BrokerName       string            `json:"corretor_nome"`
	BrokerEmail      string            `json:"corretor_email,omitempty"`
	RejectionReason  string            `json:"motivo_rejeicao,omitempty"`
	TermsAccepted    bool              `json:"aceite_termos"`
	SignedAt         *time.Time        `json:"data_assinatura,omitempty"`
	ValidationLink   string            `json:"link_validacao,omitempty"`
	ValidationSentAt *time.Time        `json:"email_enviado_em,omitempty"`
	Documents        map[string]string `json:"documentos"`
	MissingDocuments []string          `json:"documentos_pendentes"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// ToProposalResponse не отдаёт саму подпись: она нужна только при проверке.
func ToProposalResponse(p *entity.Proposal) ProposalResponse {
	docs := p.Documents
	if docs == nil {
		docs = map[string]string{}
	}
	missing := p.MissingDocuments()
	if missing == nil {
		missing = []string{}
	}
	return ProposalResponse{
		ID:               p.ID,
		Origin:           string(p.Origin),
		Status:           string(p.Status),
		ClientName:       p.ClientName,
		ClientEmail:      p.ClientEmail,
		ClientPhone:      p.ClientPhone,
		ClientCPF:        p.ClientCPF,
		BirthDate:        p.BirthDate,
		Value:            p.Value,
		ProductID:        p.ProductID,
		TableID:          p.TableID,
		BrokerID:         p.BrokerID,
		BrokerName:       p.BrokerName,
		BrokerEmail:      p.BrokerEmail,
		RejectionReason:  p.RejectionReason,
		TermsAccepted:    p.TermsAccepted,
		SignedAt:         p.SignedAt,
		ValidationLink:   p.ValidationLink,
		ValidationSentAt: p.ValidationSentAt,
		Documents:        docs,
		MissingDocuments: missing,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func ToProposalResponses(proposals []*entity.Proposal) []ProposalResponse {
	responses := make([]ProposalResponse, 0, len(proposals))
	for _, p := range proposals {
		responses = append(responses, ToProposalResponse(p))
	}
	return responses
}

type DependentResponse struct {
	ID         uuid.UUID  `json:"id"`
	ProposalID uuid.UUID  `json:"proposta_id"`
	Name       string     `json:"nome"`
	CPF        string     `json:"cpf,omitempty"`
	BirthDate  *time.Time `json:"data_nascimento,omitempty"`
	Kinship    string     `json:"parentesco"`
	Value      float64    `json:"valor"`
	CreatedAt  time.Time  `json:"created_at"`
}

func ToDependentResponses(dependents []*entity.Dependent) []DependentResponse {
	responses := make([]DependentResponse, 0, len(dependents))
	for _, d := range dependents {
		responses = append(responses, DependentResponse{
			ID:         d.ID,
			ProposalID: d.ProposalID,
			Name:       d.Name,
			CPF:        d.CPF,
			BirthDate:  d.BirthDate,
			Kinship:    d.Kinship,
			Value:      d.Value,
			CreatedAt:  d.CreatedAt,
		})
	}
	return responses
}
