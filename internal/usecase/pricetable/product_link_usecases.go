package pricetable

import (
	"context"

	"github.com/google/uuid"

	"github.com/matheusgmdr7/contratando2/internal/domain/entity"
	"github.com/matheusgmdr7/contratando2/internal/domain/repository"
)

type LinkInput struct {
	TableID      uuid.UUID
	Segmentation string
	Description  string
}

// ProductTablesUseCase управляет связями продукт <-> таблица.
type ProductTablesUseCase struct {
	products repository.ProductRepository
	tables   repository.PriceTableRepository
}

func NewProductTablesUseCase(products repository.ProductRepository, tables repository.PriceTableRepository) *ProductTablesUseCase {
	return &ProductTablesUseCase{products: products, tables: tables}
}

func (uc *ProductTablesUseCase) Link(ctx context.Context, session entity.Session, productID uuid.UUID, input LinkInput) (*entity.ProductTableLink, error) {
	if err := requireAdmin(session); err != nil {
		return nil, err
	}
	if _, err := uc.products.FindByID(ctx, productID); err != nil {
		return nil, err
	}
	table, err := uc.tables.FindByID(ctx, input.TableID)
	if err != nil {
		return nil, err
	}

	link, err := entity.NewProductTableLink(productID, table.ID, input.Segmentation, input.Description)
	if err != nil {
		return nil, err
	}
	link.TableTitle = table.Title
	if err := uc.products.LinkTable(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

func (uc *ProductTablesUseCase) Unlink(ctx context.Context, session entity.Session, linkID uuid.UUID) error {
	if err := requireAdmin(session); err != nil {
		return err
	}
	return uc.products.UnlinkTable(ctx, linkID)
}

// List отдаёт таблицы продукта в порядке привязки.
func (uc *ProductTablesUseCase) List(ctx context.Context, productID uuid.UUID) ([]*entity.ProductTableLink, error) {
	if _, err := uc.products.FindByID(ctx, productID); err != nil {
		return nil, err
	}
	return uc.products.ListTables(ctx, productID)
}
