package product

import (
	"context"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/matheusgmdr7/contratando2/internal/domain/entity"
	"github.com/matheusgmdr7/contratando2/internal/domain/repository"
	"github.com/matheusgmdr7/contratando2/internal/pkg/apperror"
	"github.com/matheusgmdr7/contratando2/internal/validation"
)

type ProductInput struct {
	Name        string
	Operator    string
	Type        string
	Commission  string
	Description string
	Available   bool
}

type ProductUseCase struct {
	products repository.ProductRepository
}

func NewProductUseCase(products repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{products: products}
}

// List отдаёт продукты по имени. Corretor видит только доступные.
func (uc *ProductUseCase) List(ctx context.Context, session entity.Session) ([]*entity.Product, error) {
	products, err := uc.products.List(ctx, !session.IsAdmin())
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(products, func(a, b *entity.Product) int {
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})
	return products, nil
}

func (uc *ProductUseCase) Get(ctx context.Context, session entity.Session, id uuid.UUID) (*entity.Product, error) {
	p, err := uc.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.Available && !session.IsAdmin() {
		return nil, apperror.ErrProductNotFound
	}
	return p, nil
}

func (uc *ProductUseCase) Create(ctx context.Context, session entity.Session, input ProductInput) (*entity.Product, error) {
	if !session.IsAdmin() {
		return nil, apperror.ErrForbidden
	}
	if err := validation.ValidateLength("descrição", input.Description, 0, validation.MaxDescriptionLen); err != nil {
		return nil, err
	}
	p, err := entity.NewProduct(input.Name, input.Operator, input.Type, input.Commission, input.Description, input.Available)
	if err != nil {
		return nil, err
	}
	if err := uc.products.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (uc *ProductUseCase) Update(ctx context.Context, session entity.Session, id uuid.UUID, input ProductInput) (*entity.Product, error) {
	if !session.IsAdmin() {
		return nil, apperror.ErrForbidden
	}
	if err := validation.ValidateLength("descrição", input.Description, 0, validation.MaxDescriptionLen); err != nil {
		return nil, err
	}
	p, err := uc.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := p.Apply(input.Name, input.Operator, input.Type, input.Commission); err != nil {
		return nil, err
	}
	p.Description = input.Description
	p.Available = input.Available
	if err := uc.products.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (uc *ProductUseCase) SetAvailability(ctx context.Context, session entity.Session, id uuid.UUID, available bool) (*entity.Product, error) {
	if !session.IsAdmin() {
		return nil, apperror.ErrForbidden
	}
	p, err := uc.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Available == available {
		return p, nil
	}
	p.Available = available
	if err := uc.products.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (uc *ProductUseCase) Delete(ctx context.Context, session entity.Session, id uuid.UUID) error {
	if !session.IsAdmin() {
		return apperror.ErrForbidden
	}
	return uc.products.Delete(ctx, id)
}
