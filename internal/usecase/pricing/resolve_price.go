package pricing

import (
	"context"
	"time"

	"github.com/google/uuid"

	domainpricing "github.com/matheusgmdr7/contratando2/internal/domain/pricing"
	"github.com/matheusgmdr7/contratando2/internal/domain/repository"
	"github.com/matheusgmdr7/contratando2/internal/pkg/apperror"
)

// AgeQuery задаёт возраст напрямую или через дату рождения.
type AgeQuery struct {
	Age       *int
	BirthDate *time.Time
}

// Resolve возвращает возраст на момент now. Age важнее BirthDate.
func (q AgeQuery) Resolve(now time.Time) (int, error) {
	switch {
	case q.Age != nil:
		if *q.Age < 0 {
			return 0, apperror.Validation("idade não pode ser negativa")
		}
		return *q.Age, nil
	case q.BirthDate != nil:
		if q.BirthDate.After(now) {
			return 0, apperror.Validation("data de nascimento no futuro")
		}
		return domainpricing.AgeAt(*q.BirthDate, now), nil
	default:
		return 0, apperror.Validation("informe a idade ou a data de nascimento")
	}
}

type Quote struct {
	TableID *uuid.UUID `json:"tabela_id,omitempty"`
	Age     int        `json:"idade"`
	Value   float64    `json:"valor"`
}

type ResolveTablePriceUseCase struct {
	tables repository.PriceTableRepository
	now    func() time.Time
}

func NewResolveTablePriceUseCase(tables repository.PriceTableRepository) *ResolveTablePriceUseCase {
	return &ResolveTablePriceUseCase{tables: tables, now: time.Now}
}

func (uc *ResolveTablePriceUseCase) Execute(ctx context.Context, tableID uuid.UUID, q AgeQuery) (*Quote, error) {
	age, err := q.Resolve(uc.now())
	if err != nil {
		return nil, err
	}
	value, err := uc.priceFor(ctx, tableID, age)
	if err != nil {
		return nil, err
	}
	return &Quote{TableID: &tableID, Age: age, Value: value}, nil
}

func (uc *ResolveTablePriceUseCase) priceFor(ctx context.Context, tableID uuid.UUID, age int) (float64, error) {
	if _, err := uc.tables.FindByID(ctx, tableID); err != nil {
		return 0, err
	}
	brackets, err := uc.tables.ListBrackets(ctx, tableID)
	if err != nil {
		return 0, err
	}
	return domainpricing.ResolveRate(age, brackets)
}

// ResolveProductPriceUseCase считает цену по первой привязанной к продукту таблице.
// Продукт без таблиц стоит 0.
type ResolveProductPriceUseCase struct {
	products repository.ProductRepository
	table    *ResolveTablePriceUseCase
}

func NewResolveProductPriceUseCase(products repository.ProductRepository, tables repository.PriceTableRepository) *ResolveProductPriceUseCase {
	return &ResolveProductPriceUseCase{products: products, table: NewResolveTablePriceUseCase(tables)}
}

func (uc *ResolveProductPriceUseCase) Execute(ctx context.Context, productID uuid.UUID, q AgeQuery) (*Quote, error) {
	age, err := q.Resolve(uc.table.now())
	if err != nil {
		return nil, err
	}
	if _, err := uc.products.FindByID(ctx, productID); err != nil {
		return nil, err
	}
	links, err := uc.products.ListTables(ctx, productID)
	if err != nil {
		return nil, err
	}
	if len(links) == 0 {
		return &Quote{Age: age}, nil
	}

	tableID := links[0].TableID
	value, err := uc.table.priceFor(ctx, tableID, age)
	if err != nil {
		return nil, err
	}
	return &Quote{TableID: &tableID, Age: age, Value: value}, nil
}
