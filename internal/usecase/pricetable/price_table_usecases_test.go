package pricetable

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matheusgmdr7/contratando2/internal/domain/entity"
	"github.com/matheusgmdr7/contratando2/internal/domain/valueobject"
	"github.com/matheusgmdr7/contratando2/internal/logger"
	"github.com/matheusgmdr7/contratando2/internal/pkg/apperror"
)

type memTables struct {
	tables   map[uuid.UUID]*entity.PriceTable
	brackets []*entity.PriceBracket
}

func newMemTables() *memTables {
	return &memTables{tables: map[uuid.UUID]*entity.PriceTable{}}
}

func (m *memTables) List(ctx context.Context) ([]*entity.PriceTable, error) {
	var out []*entity.PriceTable
	for _, t := range m.tables {
		out = append(out, t)
	}
	return out, nil
}

func (m *memTables) FindByID(ctx context.Context, id uuid.UUID) (*entity.PriceTable, error) {
	if t, ok := m.tables[id]; ok {
		return t, nil
	}
	return nil, apperror.ErrPriceTableNotFound
}

func (m *memTables) Create(ctx context.Context, t *entity.PriceTable) error {
	m.tables[t.ID] = t
	return nil
}

func (m *memTables) Update(ctx context.Context, t *entity.PriceTable) error {
	if _, ok := m.tables[t.ID]; !ok {
		return apperror.ErrPriceTableNotFound
	}
	m.tables[t.ID] = t
	return nil
}

func (m *memTables) ListBrackets(ctx context.Context, tableID uuid.UUID) ([]entity.PriceBracket, error) {
	var out []entity.PriceBracket
	for _, b := range m.brackets {
		if b.TableID == tableID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *memTables) FindBracket(ctx context.Context, id uuid.UUID) (*entity.PriceBracket, error) {
	for _, b := range m.brackets {
		if b.ID == id {
			cp := *b
			return &cp, nil
		}
	}
	return nil, apperror.ErrBracketNotFound
}

func (m *memTables) CreateBracket(ctx context.Context, b *entity.PriceBracket) error {
	m.brackets = append(m.brackets, b)
	return nil
}

func (m *memTables) UpdateBracket(ctx context.Context, b *entity.PriceBracket) error {
	for i, cur := range m.brackets {
		if cur.ID == b.ID {
			m.brackets[i] = b
			return nil
		}
	}
	return apperror.ErrBracketNotFound
}

func (m *memTables) DeleteBracket(ctx context.Context, id uuid.UUID) error {
	for i, b := range m.brackets {
		if b.ID == id {
			m.brackets = append(m.brackets[:i], m.brackets[i+1:]...)
			return nil
		}
	}
	return apperror.ErrBracketNotFound
}

var (
	adminSession  = entity.Session{UserID: uuid.New(), Role: valueobject.RoleAdmin}
	brokerSession = entity.Session{UserID: uuid.New(), Role: valueobject.RoleBroker}
)

func captureLogs(t *testing.T) *logtest.Hook {
	t.Helper()
	logger.Init("debug")
	logger.Log.SetOutput(io.Discard)
	t.Cleanup(func() { logger.Log = nil })
	return logtest.NewLocal(logger.Log)
}

func TestCreateAndListTables(t *testing.T) {
	repo := newMemTables()
	create := NewCreatePriceTableUseCase(repo)

	for _, title := range []string{"Enfermaria", "apartamento", "Coletivo"} {
		_, err := create.Execute(context.Background(), adminSession, TableInput{Title: title, Active: true})
		require.NoError(t, err)
	}

	tables, err := NewListPriceTablesUseCase(repo).Execute(context.Background())
	require.NoError(t, err)
	require.Len(t, tables, 3)
	assert.Equal(t, []string{"apartamento", "Coletivo", "Enfermaria"},
		[]string{tables[0].Title, tables[1].Title, tables[2].Title})

	_, err = create.Execute(context.Background(), adminSession, TableInput{Title: "  "})
	assert.True(t, apperror.IsValidation(err))

	_, err = create.Execute(context.Background(), brokerSession, TableInput{Title: "X"})
	assert.True(t, apperror.IsForbidden(err))
}

func TestUpdateTable(t *testing.T) {
	repo := newMemTables()
	table, _ := entity.NewPriceTable("Velha", "", "Amil", "PME", true)
	repo.tables[table.ID] = table

	got, err := NewUpdatePriceTableUseCase(repo).Execute(context.Background(), adminSession, table.ID,
		TableInput{Title: "Nova", Operator: "Bradesco", Active: false})
	require.NoError(t, err)
	assert.Equal(t, "Nova", got.Title)
	assert.Equal(t, "Bradesco", got.Operator)
	assert.False(t, got.Active)

	_, err = NewUpdatePriceTableUseCase(repo).Execute(context.Background(), adminSession, uuid.New(), TableInput{Title: "x"})
	assert.True(t, apperror.IsNotFound(err))
}

func TestBrackets_AddValidatesLabelAndWarnsOnOverlap(t *testing.T) {
	hook := captureLogs(t)
	repo := newMemTables()
	table, _ := entity.NewPriceTable("Enfermaria", "", "", "", true)
	repo.tables[table.ID] = table
	uc := NewBracketUseCase(repo)

	_, err := uc.Add(context.Background(), adminSession, table.ID, "0-18", 100)
	require.NoError(t, err)
	_, err = uc.Add(context.Background(), adminSession, table.ID, "abc", 100)
	assert.True(t, apperror.IsInvalidBracketFormat(err))
	assert.Empty(t, hook.AllEntries())

	_, err = uc.Add(context.Background(), adminSession, table.ID, "18-25", 150)
	require.NoError(t, err)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "0-18", entry.Data["first"])
	assert.Equal(t, "18-25", entry.Data["second"])

	details, err := NewGetPriceTableUseCase(repo).Execute(context.Background(), table.ID)
	require.NoError(t, err)
	assert.Len(t, details.Table.Brackets, 2)
	assert.Len(t, details.Overlaps, 1)
}

func TestBrackets_UpdateAndRemove(t *testing.T) {
	repo := newMemTables()
	table, _ := entity.NewPriceTable("Enfermaria", "", "", "", true)
	repo.tables[table.ID] = table
	uc := NewBracketUseCase(repo)

	b, err := uc.Add(context.Background(), adminSession, table.ID, "59+", 900)
	require.NoError(t, err)
	created := b.CreatedAt

	time.Sleep(time.Millisecond)
	updated, err := uc.Update(context.Background(), adminSession, b.ID, " 60+ ", 950)
	require.NoError(t, err)
	assert.Equal(t, "60+", updated.Label)
	assert.Equal(t, 950.0, updated.Value)
	assert.Equal(t, created, updated.CreatedAt, "stored order must not change")

	_, err = uc.Update(context.Background(), adminSession, b.ID, "60-50", 1)
	assert.True(t, apperror.IsInvalidBracketFormat(err))

	require.NoError(t, uc.Remove(context.Background(), adminSession, b.ID))
	assert.True(t, apperror.IsNotFound(uc.Remove(context.Background(), adminSession, b.ID)))
	assert.True(t, apperror.IsForbidden(uc.Remove(context.Background(), brokerSession, b.ID)))
}
