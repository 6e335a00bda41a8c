package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/matheusgmdr7/contratando2/internal/pkg/apperror"
)

// Product — продукт, доступный corretores для продажи.
type Product struct {
	ID          uuid.UUID
	Name        string
	Operator    string
	Type        string
	Commission  string
	Description string
	Available   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewProduct(name, operator, kind, commission, description string, available bool) (*Product, error) {
	p := &Product{
		ID:          uuid.New(),
		Description: description,
		Available:   available,
		CreatedAt:   time.Now(),
	}
	if err := p.Apply(name, operator, kind, commission); err != nil {
		return nil, err
	}
	p.UpdatedAt = p.CreatedAt
	return p, nil
}

// Apply перезаписывает обязательные поля с проверкой.
func (p *Product) Apply(name, operator, kind, commission string) error {
	name = strings.TrimSpace(name)
	operator = strings.TrimSpace(operator)
	if name == "" {
		return apperror.Validation("nome do produto é obrigatório")
	}
	if operator == "" {
		return apperror.Validation("operadora é obrigatória")
	}
	p.Name = name
	p.Operator = operator
	p.Type = strings.TrimSpace(kind)
	p.Commission = strings.TrimSpace(commission)
	p.UpdatedAt = time.Now()
	return nil
}

// ProductTableLink — связь продукта с таблицей цен (produto_tabela_relacao).
type ProductTableLink struct {
	ID           uuid.UUID
	ProductID    uuid.UUID
	TableID      uuid.UUID
	Segmentation string
	Description  string
	TableTitle   string
	CreatedAt    time.Time
}

func NewProductTableLink(productID, tableID uuid.UUID, segmentation, description string) (*ProductTableLink, error) {
	segmentation = strings.TrimSpace(segmentation)
	if segmentation == "" {
		segmentation = "Padrão"
	}
	return &ProductTableLink{
		ID:           uuid.New(),
		ProductID:    productID,
		TableID:      tableID,
		Segmentation: segmentation,
		Description:  description,
		CreatedAt:    time.Now(),
	}, nil
}
