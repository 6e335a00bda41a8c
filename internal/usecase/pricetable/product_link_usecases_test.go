package pricetable

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matheusgmdr7/contratando2/internal/domain/entity"
	"github.com/matheusgmdr7/contratando2/internal/pkg/apperror"
)

type memProducts struct {
	products map[uuid.UUID]*entity.Product
	links    []*entity.ProductTableLink
}

func (m *memProducts) List(ctx context.Context, onlyAvailable bool) ([]*entity.Product, error) {
	return nil, nil
}

func (m *memProducts) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	if p, ok := m.products[id]; ok {
		return p, nil
	}
	return nil, apperror.ErrProductNotFound
}

func (m *memProducts) Create(ctx context.Context, p *entity.Product) error { return nil }
func (m *memProducts) Update(ctx context.Context, p *entity.Product) error { return nil }
func (m *memProducts) Delete(ctx context.Context, id uuid.UUID) error      { return nil }

func (m *memProducts) LinkTable(ctx context.Context, link *entity.ProductTableLink) error {
	m.links = append(m.links, link)
	return nil
}

func (m *memProducts) UnlinkTable(ctx context.Context, linkID uuid.UUID) error {
	for i, l := range m.links {
		if l.ID == linkID {
			m.links = append(m.links[:i], m.links[i+1:]...)
			return nil
		}
	}
	return apperror.ErrLinkNotFound
}

func (m *memProducts) ListTables(ctx context.Context, productID uuid.UUID) ([]*entity.ProductTableLink, error) {
	var out []*entity.ProductTableLink
	for _, l := range m.links {
		if l.ProductID == productID {
			out = append(out, l)
		}
	}
	return out, nil
}

func TestProductTables_LinkListUnlink(t *testing.T) {
	tables := newMemTables()
	table, _ := entity.NewPriceTable("Enfermaria", "", "Amil", "", true)
	tables.tables[table.ID] = table

	product, _ := entity.NewProduct("Amil 400", "Amil", "PME", "10%", "", true)
	products := &memProducts{products: map[uuid.UUID]*entity.Product{product.ID: product}}
	uc := NewProductTablesUseCase(products, tables)
	ctx := context.Background()

	link, err := uc.Link(ctx, adminSession, product.ID, LinkInput{TableID: table.ID})
	require.NoError(t, err)
	assert.Equal(t, "Padrão", link.Segmentation)
	assert.Equal(t, "Enfermaria", link.TableTitle)

	links, err := uc.List(ctx, product.ID)
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, table.ID, links[0].TableID)

	require.NoError(t, uc.Unlink(ctx, adminSession, link.ID))
	assert.True(t, apperror.IsNotFound(uc.Unlink(ctx, adminSession, link.ID)))
}

func TestProductTables_Errors(t *testing.T) {
	tables := newMemTables()
	product, _ := entity.NewProduct("Amil 400", "Amil", "", "", "", true)
	products := &memProducts{products: map[uuid.UUID]*entity.Product{product.ID: product}}
	uc := NewProductTablesUseCase(products, tables)
	ctx := context.Background()

	_, err := uc.Link(ctx, brokerSession, product.ID, LinkInput{TableID: uuid.New()})
	assert.True(t, apperror.IsForbidden(err))

	_, err = uc.Link(ctx, adminSession, product.ID, LinkInput{TableID: uuid.New()})
	assert.True(t, apperror.IsNotFound(err))

	_, err = uc.Link(ctx, adminSession, uuid.New(), LinkInput{TableID: uuid.New()})
	assert.True(t, apperror.IsNotFound(err))

	_, err = uc.List(ctx, uuid.New())
	assert.True(t, apperror.IsNotFound(err))
}
