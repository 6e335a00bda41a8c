package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/matheusgmdr7/contratando2/internal/domain/valueobject"
	"github.com/matheusgmdr7/contratando2/internal/pkg/apperror"
)

const (
	DirectBrokerName  = "Direto"
	DefaultBrokerName = "Corretor"
)

// RequiredDocuments — документы titular, без которых proposta неполная.
var RequiredDocuments = []string{"rg_frente", "rg_verso", "cpf", "comprovante_residencia", "cns"}

// Proposal — нормализованное представление proposta независимо от таблицы.
// В базе не хранится, собирается при чтении.
type Proposal struct {
	ID               uuid.UUID
	Origin           valueobject.ProposalOrigin
	Status           valueobject.ProposalStatus
	ClientName       string
	ClientEmail      string
	ClientPhone      string
	ClientCPF        string
	BirthDate        *time.Time
	Value            float64
	ProductID        *uuid.UUID
	TableID          *uuid.UUID
	BrokerID         *uuid.UUID
	BrokerName       string
	BrokerEmail      string
	RejectionReason  string
	Signature        string
	TermsAccepted    bool
	SignedAt         *time.Time
	ValidationLink   string
	ValidationSentAt *time.Time
	Documents        map[string]string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (p *Proposal) IsOwnedBy(brokerID uuid.UUID) bool {
	return p.BrokerID != nil && *p.BrokerID == brokerID
}

// MissingDocuments возвращает обязательные документы, которых нет в proposta.
func (p *Proposal) MissingDocuments() []string {
	var missing []string
	for _, kind := range RequiredDocuments {
		if _, ok := p.Documents[kind]; !ok {
			missing = append(missing, kind)
		}
	}
	return missing
}

// ProposalRecord — строка одной из двух таблиц. Каждая реализация
// знает, как привести свои поля к Proposal.
type ProposalRecord interface {
	Origin() valueobject.ProposalOrigin
	Normalize() *Proposal
}

// DirectProposalRecord — строка таблицы propostas (клиент пришёл сам).
type DirectProposalRecord struct {
	ID              uuid.UUID
	Status          string
	ClientName      string // nome_cliente
	Name            string // nome
	Email           string
	Phone           string // telefone
	WhatsApp        string
	CPF             string
	BirthDate       *time.Time
	Value           float64 // valor
	PlanValue       float64 // valor_plano
	ProductID       *uuid.UUID
	TableID         *uuid.UUID
	BrokerName      string
	BrokerEmail     string
	RejectionReason string
	Signature       string
	TermsAccepted   bool
	SignedAt        *time.Time
	ValidationLink  string
	EmailSentAt     *time.Time
	DocumentURLs    map[string]string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (r *DirectProposalRecord) Origin() valueobject.ProposalOrigin {
	return valueobject.OriginDirect
}

// Normalize:
//
//	ClientName  <- nome_cliente | nome
//	ClientEmail <- email
//	ClientPhone <- telefone | whatsapp
//	Value       <- valor | valor_plano
//	BrokerName  <- corretor_nome | "Direto"
//	BrokerEmail <- corretor_email
func (r *DirectProposalRecord) Normalize() *Proposal {
	return &Proposal{
		ID:               r.ID,
		Origin:           valueobject.OriginDirect,
		Status:           normalizeStatus(r.Status),
		ClientName:       firstNonEmpty(r.ClientName, r.Name),
		ClientEmail:      r.Email,
		ClientPhone:      firstNonEmpty(r.Phone, r.WhatsApp),
		ClientCPF:        r.CPF,
		BirthDate:        r.BirthDate,
		Value:            firstPositive(r.Value, r.PlanValue),
		ProductID:        r.ProductID,
		TableID:          r.TableID,
		BrokerName:       firstNonEmpty(r.BrokerName, DirectBrokerName),
		BrokerEmail:      r.BrokerEmail,
		RejectionReason:  r.RejectionReason,
		Signature:        r.Signature,
		TermsAccepted:    r.TermsAccepted,
		SignedAt:         r.SignedAt,
		ValidationLink:   r.ValidationLink,
		ValidationSentAt: r.EmailSentAt,
		Documents:        filterDocumentURLs(r.DocumentURLs),
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

// BrokerProposalRecord — строка таблицы propostas_corretores вместе с
// данными corretor из join.
type BrokerProposalRecord struct {
	ID                uuid.UUID
	Status            string
	Client            string // cliente
	ClientName        string // nome_cliente
	ClientEmail       string // email_cliente
	Email             string
	ClientWhatsApp    string // whatsapp_cliente
	Phone             string // telefone
	CPF               string
	BirthDate         *time.Time
	ProposalValue     float64 // valor_proposta
	Value             float64 // valor
	ProductID         *uuid.UUID
	TableID           *uuid.UUID
	BrokerID          *uuid.UUID
	BrokerName        string // corretor.nome
	BrokerEmail       string // corretor.email
	RejectionReason   string
	Signature         string
	TermsAccepted     bool
	SignedAt          *time.Time
	ValidationLink    string
	EmailSentAt       *time.Time
	DocumentURLs      map[string]string
	RGFrontURL        string
	RGBackURL         string
	CPFURL            string
	ProofOfAddressURL string
	CNSURL            string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (r *BrokerProposalRecord) Origin() valueobject.ProposalOrigin {
	return valueobject.OriginBroker
}

// Normalize:
//
//	ClientName  <- cliente | nome_cliente
//	ClientEmail <- email_cliente | email
//	ClientPhone <- whatsapp_cliente | telefone
//	Value       <- valor_proposta | valor
//	BrokerName  <- corretor.nome | "Corretor"
//	BrokerEmail <- corretor.email
//	Documents   <- documentos_urls, иначе отдельные колонки *_url
func (r *BrokerProposalRecord) Normalize() *Proposal {
	docs := filterDocumentURLs(r.DocumentURLs)
	if len(docs) == 0 {
		docs = filterDocumentURLs(map[string]string{
			"rg_frente":              r.RGFrontURL,
			"rg_verso":               r.RGBackURL,
			"cpf":                    r.CPFURL,
			"comprovante_residencia": r.ProofOfAddressURL,
			"cns":                    r.CNSURL,
		})
	}

	return &Proposal{
		ID:               r.ID,
		Origin:           valueobject.OriginBroker,
		Status:           normalizeStatus(r.Status),
		ClientName:       firstNonEmpty(r.Client, r.ClientName),
		ClientEmail:      firstNonEmpty(r.ClientEmail, r.Email),
		ClientPhone:      firstNonEmpty(r.ClientWhatsApp, r.Phone),
		ClientCPF:        r.CPF,
		BirthDate:        r.BirthDate,
		Value:            firstPositive(r.ProposalValue, r.Value),
		ProductID:        r.ProductID,
		TableID:          r.TableID,
		BrokerID:         r.BrokerID,
		BrokerName:       firstNonEmpty(r.BrokerName, DefaultBrokerName),
		BrokerEmail:      r.BrokerEmail,
		RejectionReason:  r.RejectionReason,
		Signature:        r.Signature,
		TermsAccepted:    r.TermsAccepted,
		SignedAt:         r.SignedAt,
		ValidationLink:   r.ValidationLink,
		ValidationSentAt: r.EmailSentAt,
		Documents:        docs,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

// NewProposalInput — данные для новой proposta. Value == 0 означает, что
// цену надо посчитать по таблице.
type NewProposalInput struct {
	ClientName  string
	ClientEmail string
	ClientPhone string
	ClientCPF   string
	BirthDate   *time.Time
	Value       float64
	ProductID   *uuid.UUID
	TableID     *uuid.UUID
}

func NewProposal(origin valueobject.ProposalOrigin, in NewProposalInput) (*Proposal, error) {
	if !origin.IsValid() {
		return nil, apperror.Validation("origem da proposta inválida")
	}
	name := strings.TrimSpace(in.ClientName)
	if name == "" {
		return nil, apperror.Validation("nome do cliente é obrigatório")
	}
	if strings.TrimSpace(in.ClientEmail) == "" {
		return nil, apperror.Validation("email do cliente é obrigatório")
	}
	if in.Value < 0 {
		return nil, apperror.Validation("valor da proposta não pode ser negativo")
	}

	now := time.Now()
	return &Proposal{
		ID:          uuid.New(),
		Origin:      origin,
		Status:      valueobject.ProposalStatusPending,
		ClientName:  name,
		ClientEmail: strings.TrimSpace(in.ClientEmail),
		ClientPhone: strings.TrimSpace(in.ClientPhone),
		ClientCPF:   in.ClientCPF,
		BirthDate:   in.BirthDate,
		Value:       in.Value,
		ProductID:   in.ProductID,
		TableID:     in.TableID,
		Documents:   map[string]string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Dependent — зависимый участник плана.
type Dependent struct {
	ID         uuid.UUID
	ProposalID uuid.UUID
	Name       string
	CPF        string
	BirthDate  *time.Time
	Kinship    string
	Value      float64
	CreatedAt  time.Time
}

func normalizeStatus(raw string) valueobject.ProposalStatus {
	status, err := valueobject.NewProposalStatus(raw)
	if err != nil {
		return valueobject.ProposalStatusPending
	}
	return status
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func firstPositive(values ...float64) float64 {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}

// filterDocumentURLs оставляет только абсолютные ссылки и пути от корня.
func filterDocumentURLs(urls map[string]string) map[string]string {
	out := make(map[string]string, len(urls))
	for kind, u := range urls {
		u = strings.TrimSpace(u)
		if strings.HasPrefix(u, "http") || strings.HasPrefix(u, "/") {
			out[kind] = u
		}
	}
	return out
}
