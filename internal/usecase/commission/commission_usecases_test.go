package commission

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matheusgmdr7/contratando2/internal/domain/entity"
	"github.com/matheusgmdr7/contratando2/internal/domain/valueobject"
	"github.com/matheusgmdr7/contratando2/internal/pkg/apperror"
)

type memCommissions struct {
	rows map[uuid.UUID]*entity.Commission
}

func (m *memCommissions) ListByBroker(ctx context.Context, brokerID uuid.UUID) ([]*entity.Commission, error) {
	var out []*entity.Commission
	for _, c := range m.rows {
		if c.BrokerID == brokerID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memCommissions) FindByID(ctx context.Context, id uuid.UUID) (*entity.Commission, error) {
	if c, ok := m.rows[id]; ok {
		return c, nil
	}
	return nil, apperror.ErrCommissionNotFound
}

func (m *memCommissions) Update(ctx context.Context, c *entity.Commission) error {
	m.rows[c.ID] = c
	return nil
}

func date(y int, mo time.Month, d int) *time.Time {
	t := time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func seed(brokerID uuid.UUID) *memCommissions {
	m := &memCommissions{rows: map[uuid.UUID]*entity.Commission{}}
	for _, c := range []*entity.Commission{
		{ID: uuid.New(), BrokerID: brokerID, Value: 100, Status: valueobject.CommissionStatusPending, Date: date(2026, 1, 5)},
		{ID: uuid.New(), BrokerID: brokerID, Value: 50, Status: valueobject.CommissionStatusPaid, Date: date(2026, 1, 20)},
		{ID: uuid.New(), BrokerID: brokerID, Value: 70, Status: valueobject.CommissionStatusPaid, CreatedAt: *date(2026, 2, 1)},
		{ID: uuid.New(), BrokerID: uuid.New(), Value: 999, Status: valueobject.CommissionStatusPaid, Date: date(2026, 1, 1)},
	} {
		m.rows[c.ID] = c
	}
	return m
}

func TestSummary_ForBrokerSession(t *testing.T) {
	brokerID := uuid.New()
	uc := NewCommissionUseCase(seed(brokerID))
	session := entity.Session{UserID: brokerID, Role: valueobject.RoleBroker}

	// brokerID из запроса игнорируется для corretor
	summary, err := uc.Summary(context.Background(), session, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 100.0, summary.TotalPending)
	assert.Equal(t, 120.0, summary.TotalPaid)
	assert.Equal(t, map[string]float64{"2026-01": 150, "2026-02": 70}, summary.ByMonth)
}

func TestList_AdminNeedsBroker(t *testing.T) {
	brokerID := uuid.New()
	uc := NewCommissionUseCase(seed(brokerID))
	admin := entity.Session{UserID: uuid.New(), Role: valueobject.RoleAdmin}

	_, err := uc.List(context.Background(), admin, uuid.Nil)
	assert.True(t, apperror.IsValidation(err))

	list, err := uc.List(context.Background(), admin, brokerID)
	require.NoError(t, err)
	assert.Len(t, list, 3)

	_, err = uc.List(context.Background(), entity.PublicSession, brokerID)
	assert.True(t, apperror.IsForbidden(err))
}

func TestUpdateStatus(t *testing.T) {
	brokerID := uuid.New()
	repo := seed(brokerID)
	uc := NewCommissionUseCase(repo)
	admin := entity.Session{UserID: uuid.New(), Role: valueobject.RoleAdmin}

	var pending *entity.Commission
	for _, c := range repo.rows {
		if c.Status == valueobject.CommissionStatusPending {
			pending = c
		}
	}

	paid, err := uc.UpdateStatus(context.Background(), admin, pending.ID, "pago", nil)
	require.NoError(t, err)
	assert.Equal(t, valueobject.CommissionStatusPaid, paid.Status)
	require.NotNil(t, paid.PaidAt)

	back, err := uc.UpdateStatus(context.Background(), admin, pending.ID, "pendente", nil)
	require.NoError(t, err)
	assert.Nil(t, back.PaidAt)

	_, err = uc.UpdateStatus(context.Background(), admin, pending.ID, "cancelado", nil)
	assert.True(t, apperror.IsValidation(err))

	broker := entity.Session{UserID: brokerID, Role: valueobject.RoleBroker}
	_, err = uc.UpdateStatus(context.Background(), broker, pending.ID, "pago", nil)
	assert.True(t, apperror.IsForbidden(err))
}
