package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/matheusgmdr7/contratando2/internal/domain/entity"
)

type PriceTableRepository interface {
	List(ctx context.Context) ([]*entity.PriceTable, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.PriceTable, error)
	Create(ctx context.Context, table *entity.PriceTable) error
	Update(ctx context.Context, table *entity.PriceTable) error

	// ListBrackets отдаёт faixas в порядке хранения (created_at, id).
	ListBrackets(ctx context.Context, tableID uuid.UUID) ([]entity.PriceBracket, error)
	FindBracket(ctx context.Context, id uuid.UUID) (*entity.PriceBracket, error)
	CreateBracket(ctx context.Context, bracket *entity.PriceBracket) error
	UpdateBracket(ctx context.Context, bracket *entity.PriceBracket) error
	DeleteBracket(ctx context.Context, id uuid.UUID) error
}

type ProductRepository interface {
	List(ctx context.Context, onlyAvailable bool) ([]*entity.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	Create(ctx context.Context, product *entity.Product) error
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error

	LinkTable(ctx context.Context, link *entity.ProductTableLink) error
	UnlinkTable(ctx context.Context, linkID uuid.UUID) error
	// ListTables отдаёт связи в порядке создания; первая — таблица по умолчанию.
	ListTables(ctx context.Context, productID uuid.UUID) ([]*entity.ProductTableLink, error)
}
