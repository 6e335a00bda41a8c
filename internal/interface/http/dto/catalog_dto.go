package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/matheusgmdr7/contratando2/internal/domain/entity"
	"github.com/matheusgmdr7/contratando2/internal/usecase/pricetable"
	"github.com/matheusgmdr7/contratando2/internal/usecase/pricing"
	"github.com/matheusgmdr7/contratando2/internal/usecase/product"
)

type PriceTableRequest struct {
	Title       string `json:"titulo" binding:"required"`
	Description string `json:"descricao"`
	Operator    string `json:"operadora"`
	PlanType    string `json:"tipo_plano"`
	Active      *bool  `json:"ativo"`
}

// ToInput: без поля ativo таблица считается активной.
func (r PriceTableRequest) ToInput() pricetable.TableInput {
	active := true
	if r.Active != nil {
		active = *r.Active
	}
	return pricetable.TableInput{
		Title:       r.Title,
		Description: r.Description,
		Operator:    r.Operator,
		PlanType:    r.PlanType,
		Active:      active,
	}
}

type BracketRequest struct {
	Label string  `json:"faixa_etaria" binding:"required"`
	Value float64 `json:"valor" binding:"gte=0"`
}

type BracketResponse struct {
	ID        uuid.UUID `json:"id"`
	TableID   uuid.UUID `json:"tabela_id"`
	Label     string    `json:"faixa_etaria"`
	Value     float64   `json:"valor"`
	CreatedAt time.Time `json:"created_at"`
}

func ToBracketResponse(b *entity.PriceBracket) BracketResponse {
	return BracketResponse{
		ID:        b.ID,
		TableID:   b.TableID,
		Label:     b.Label,
		Value:     b.Value,
		CreatedAt: b.CreatedAt,
	}
}

type OverlapResponse struct {
	First  string `json:"primeira"`
	Second string `json:"segunda"`
}

type PriceTableResponse struct {
	ID          uuid.UUID         `json:"id"`
	Title       string            `json:"titulo"`
	Description string            `json:"descricao"`
	Operator    string            `json:"operadora"`
	PlanType    string            `json:"tipo_plano"`
	Active      bool              `json:"ativo"`
	Brackets    []BracketResponse `json:"faixas,omitempty"`
	Overlaps    []OverlapResponse `json:"sobreposicoes,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

func ToPriceTableResponse(t *entity.PriceTable) PriceTableResponse {
	resp := PriceTableResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Operator:    t.Operator,
		PlanType:    t.PlanType,
		Active:      t.Active,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	for i := range t.Brackets {
		resp.Brackets = append(resp.Brackets, ToBracketResponse(&t.Brackets[i]))
	}
	return resp
}

func ToPriceTableResponses(tables []*entity.PriceTable) []PriceTableResponse {
	responses := make([]PriceTableResponse, 0, len(tables))
	for _, t := range tables {
		responses = append(responses, ToPriceTableResponse(t))
	}
	return responses
}

func ToPriceTableDetails(d *pricetable.TableDetails) PriceTableResponse {
	resp := ToPriceTableResponse(d.Table)
	for _, o := range d.Overlaps {
		resp.Overlaps = append(resp.Overlaps, OverlapResponse{First: o.First, Second: o.Second})
	}
	return resp
}

type ProductRequest struct {
	Name        string `json:"nome" binding:"required"`
	Operator    string `json:"operadora" binding:"required"`
	Type        string `json:"tipo"`
	Commission  string `json:"comissao"`
	Description string `json:"descricao"`
	Available   *bool  `json:"disponivel"`
}

func (r ProductRequest) ToInput() product.ProductInput {
	available := true
	if r.Available != nil {
		available = *r.Available
	}
	return product.ProductInput{
		Name:        r.Name,
		Operator:    r.Operator,
		Type:        r.Type,
		Commission:  r.Commission,
		Description: r.Description,
		Available:   available,
	}
}

type AvailabilityRequest struct {
	Available *bool `json:"disponivel" binding:"required"`
}

type ProductResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"nome"`
	Operator    string    `json:"operadora"`
	Type        string    `json:"tipo"`
	Commission  string    `json:"comissao"`
	Description string    `json:"descricao"`
	Available   bool      `json:"disponivel"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ToProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Operator:    p.Operator,
		Type:        p.Type,
		Commission:  p.Commission,
		Description: p.Description,
		Available:   p.Available,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func ToProductResponses(products []*entity.Product) []ProductResponse {
	responses := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		responses = append(responses, ToProductResponse(p))
	}
	return responses
}

type LinkRequest struct {
	TableID      uuid.UUID `json:"tabela_id" binding:"required"`
	Segmentation string    `json:"segmentacao"`
	Description  string    `json:"descricao"`
}

func (r LinkRequest) ToInput() pricetable.LinkInput {
	return pricetable.LinkInput{
		TableID:      r.TableID,
		Segmentation: r.Segmentation,
		Description:  r.Description,
	}
}

type LinkResponse struct {
	ID           uuid.UUID `json:"id"`
	ProductID    uuid.UUID `json:"produto_id"`
	TableID      uuid.UUID `json:"tabela_id"`
	TableTitle   string    `json:"tabela_titulo,omitempty"`
	Segmentation string    `json:"segmentacao"`
	Description  string    `json:"descricao"`
	CreatedAt    time.Time `json:"created_at"`
}

func ToLinkResponse(l *entity.ProductTableLink) LinkResponse {
	return LinkResponse{
		ID:           l.ID,
		ProductID:    l.ProductID,
		TableID:      l.TableID,
		TableTitle:   l.TableTitle,
		Segmentation: l.Segmentation,
		Description:  l.Description,
		CreatedAt:    l.CreatedAt,
	}
}

func ToLinkResponses(links []*entity.ProductTableLink) []LinkResponse {
	responses := make([]LinkResponse, 0, len(links))
	for _, l := range links {
		responses = append(responses, ToLinkResponse(l))
	}
	return responses
}

// PriceQuery — параметры ?idade= или ?nascimento=.
type PriceQuery struct {
	Age       *int   `form:"idade"`
	BirthDate string `form:"nascimento"`
}

func (q PriceQuery) ToAgeQuery() (pricing.AgeQuery, error) {
	birth, err := ParseDate(q.BirthDate)
	if err != nil {
		return pricing.AgeQuery{}, err
	}
	return pricing.AgeQuery{Age: q.Age, BirthDate: birth}, nil
}
