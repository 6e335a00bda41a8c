package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/matheusgmdr7/contratando2/internal/domain/valueobject"
	"github.com/matheusgmdr7/contratando2/internal/pkg/apperror"
)

type PriceTable struct {
	ID          uuid.UUID
	Title       string
	Description string
	Operator    string
	PlanType    string
	Active      bool
	Brackets    []PriceBracket
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PriceBracket — faixa etária таблицы с ценой.
type PriceBracket struct {
	ID        uuid.UUID
	TableID   uuid.UUID
	Label     string
	Value     float64
	CreatedAt time.Time
}

func NewPriceTable(title, description, operator, planType string, active bool) (*PriceTable, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperror.Validation("título da tabela é obrigatório")
	}
	now := time.Now()
	return &PriceTable{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		Operator:    strings.TrimSpace(operator),
		PlanType:    strings.TrimSpace(planType),
		Active:      active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// NewPriceBracket проверяет метку при записи, чтобы в таблице не появлялось
// faixas, которые резолвер не сможет разобрать.
func NewPriceBracket(tableID uuid.UUID, label string, value float64) (*PriceBracket, error) {
	parsed, err := valueobject.ParseAgeBracket(label)
	if err != nil {
		return nil, err
	}
	if value < 0 {
		return nil, apperror.Validation("valor da faixa não pode ser negativo")
	}
	return &PriceBracket{
		ID:        uuid.New(),
		TableID:   tableID,
		Label:     parsed.Label,
		Value:     value,
		CreatedAt: time.Now(),
	}, nil
}

func (b PriceBracket) Parse() (valueobject.AgeBracket, error) {
	return valueobject.ParseAgeBracket(b.Label)
}
