package pricing

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matheusgmdr7/contratando2/internal/domain/entity"
	"github.com/matheusgmdr7/contratando2/internal/pkg/apperror"
)

type mockTables struct {
	tables   map[uuid.UUID]*entity.PriceTable
	brackets map[uuid.UUID][]entity.PriceBracket
}

func (m *mockTables) List(ctx context.Context) ([]*entity.PriceTable, error) { return nil, nil }
func (m *mockTables) FindByID(ctx context.Context, id uuid.UUID) (*entity.PriceTable, error) {
	if t, ok := m.tables[id]; ok {
		return t, nil
	}
	return nil, apperror.ErrPriceTableNotFound
}
func (m *mockTables) Create(ctx context.Context, t *entity.PriceTable) error { return nil }
func (m *mockTables) Update(ctx context.Context, t *entity.PriceTable) error { return nil }
func (m *mockTables) ListBrackets(ctx context.Context, tableID uuid.UUID) ([]entity.PriceBracket, error) {
	return m.brackets[tableID], nil
}
func (m *mockTables) FindBracket(ctx context.Context, id uuid.UUID) (*entity.PriceBracket, error) {
	return nil, apperror.ErrBracketNotFound
}
func (m *mockTables) CreateBracket(ctx context.Context, b *entity.PriceBracket) error { return nil }
func (m *mockTables) UpdateBracket(ctx context.Context, b *entity.PriceBracket) error { return nil }
func (m *mockTables) DeleteBracket(ctx context.Context, id uuid.UUID) error          { return nil }

type mockProducts struct {
	products map[uuid.UUID]*entity.Product
	links    map[uuid.UUID][]*entity.ProductTableLink
}

func (m *mockProducts) List(ctx context.Context, onlyAvailable bool) ([]*entity.Product, error) {
	return nil, nil
}
func (m *mockProducts) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	if p, ok := m.products[id]; ok {
		return p, nil
	}
	return nil, apperror.ErrProductNotFound
}
func (m *mockProducts) Create(ctx context.Context, p *entity.Product) error            { return nil }
func (m *mockProducts) Update(ctx context.Context, p *entity.Product) error            { return nil }
func (m *mockProducts) Delete(ctx context.Context, id uuid.UUID) error                 { return nil }
func (m *mockProducts) LinkTable(ctx context.Context, l *entity.ProductTableLink) error { return nil }
func (m *mockProducts) UnlinkTable(ctx context.Context, id uuid.UUID) error            { return nil }
func (m *mockProducts) ListTables(ctx context.Context, productID uuid.UUID) ([]*entity.ProductTableLink, error) {
	return m.links[productID], nil
}

func seedTable(labels map[string]float64, order []string) (*mockTables, uuid.UUID) {
	id := uuid.New()
	tables := &mockTables{
		tables:   map[uuid.UUID]*entity.PriceTable{id: {ID: id, Title: "Enfermaria"}},
		brackets: map[uuid.UUID][]entity.PriceBracket{},
	}
	for _, label := range order {
		tables.brackets[id] = append(tables.brackets[id], entity.PriceBracket{ID: uuid.New(), TableID: id, Label: label, Value: labels[label]})
	}
	return tables, id
}

func intPtr(v int) *int { return &v }

func TestResolveTablePrice_ByAge(t *testing.T) {
	tables, id := seedTable(map[string]float64{"0-18": 100, "19-23": 150, "59+": 900}, []string{"0-18", "19-23", "59+"})
	uc := NewResolveTablePriceUseCase(tables)

	q, err := uc.Execute(context.Background(), id, AgeQuery{Age: intPtr(20)})
	require.NoError(t, err)
	assert.Equal(t, 150.0, q.Value)

	q, err = uc.Execute(context.Background(), id, AgeQuery{Age: intPtr(70)})
	require.NoError(t, err)
	assert.Equal(t, 900.0, q.Value)

	q, err = uc.Execute(context.Background(), id, AgeQuery{Age: intPtr(40)})
	require.NoError(t, err)
	assert.Zero(t, q.Value)
}

func TestResolveTablePrice_ByBirthDate(t *testing.T) {
	tables, id := seedTable(map[string]float64{"36-40": 300}, []string{"36-40"})
	uc := NewResolveTablePriceUseCase(tables)
	uc.now = func() time.Time { return time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC) }

	birth := time.Date(1990, 6, 2, 0, 0, 0, 0, time.UTC)
	q, err := uc.Execute(context.Background(), id, AgeQuery{BirthDate: &birth})
	require.NoError(t, err)
	assert.Equal(t, 35, q.Age)
	assert.Zero(t, q.Value)

	birth = time.Date(1990, 5, 31, 0, 0, 0, 0, time.UTC)
	q, err = uc.Execute(context.Background(), id, AgeQuery{BirthDate: &birth})
	require.NoError(t, err)
	assert.Equal(t, 36, q.Age)
	assert.Equal(t, 300.0, q.Value)
}

func TestResolveTablePrice_Errors(t *testing.T) {
	tables, id := seedTable(map[string]float64{"abc": 1}, []string{"abc"})
	uc := NewResolveTablePriceUseCase(tables)

	_, err := uc.Execute(context.Background(), id, AgeQuery{})
	assert.True(t, apperror.IsValidation(err))

	_, err = uc.Execute(context.Background(), id, AgeQuery{Age: intPtr(-1)})
	assert.True(t, apperror.IsValidation(err))

	_, err = uc.Execute(context.Background(), uuid.New(), AgeQuery{Age: intPtr(10)})
	assert.True(t, apperror.IsNotFound(err))

	_, err = uc.Execute(context.Background(), id, AgeQuery{Age: intPtr(10)})
	assert.True(t, apperror.IsInvalidBracketFormat(err))
}

func TestResolveProductPrice_FirstLinkedTable(t *testing.T) {
	tables, first := seedTable(map[string]float64{"0-100": 210}, []string{"0-100"})
	second := uuid.New()
	tables.tables[second] = &entity.PriceTable{ID: second}
	tables.brackets[second] = []entity.PriceBracket{{Label: "0-100", Value: 999}}

	productID := uuid.New()
	products := &mockProducts{
		products: map[uuid.UUID]*entity.Product{productID: {ID: productID, Name: "Plano Ouro"}},
		links: map[uuid.UUID][]*entity.ProductTableLink{
			productID: {{ProductID: productID, TableID: first}, {ProductID: productID, TableID: second}},
		},
	}

	q, err := NewResolveProductPriceUseCase(products, tables).Execute(context.Background(), productID, AgeQuery{Age: intPtr(45)})
	require.NoError(t, err)
	assert.Equal(t, 210.0, q.Value)
	assert.Equal(t, first, *q.TableID)
}

func TestResolveProductPrice_NoTables(t *testing.T) {
	productID := uuid.New()
	products := &mockProducts{products: map[uuid.UUID]*entity.Product{productID: {ID: productID}}}

	q, err := NewResolveProductPriceUseCase(products, &mockTables{}).Execute(context.Background(), productID, AgeQuery{Age: intPtr(45)})
	require.NoError(t, err)
	assert.Zero(t, q.Value)
	assert.Nil(t, q.TableID)
}
