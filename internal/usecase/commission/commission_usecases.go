package commission

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matheusgmdr7/contratando2/internal/domain/entity"
	"github.com/matheusgmdr7/contratando2/internal/domain/repository"
	"github.com/matheusgmdr7/contratando2/internal/domain/valueobject"
	"github.com/matheusgmdr7/contratando2/internal/pkg/apperror"
)

type CommissionUseCase struct {
	commissions repository.CommissionRepository
}

func NewCommissionUseCase(commissions repository.CommissionRepository) *CommissionUseCase {
	return &CommissionUseCase{commissions: commissions}
}

// List отдаёт комиссии corretor. Corretor видит только свои, администратор
// указывает brokerID явно.
func (uc *CommissionUseCase) List(ctx context.Context, session entity.Session, brokerID uuid.UUID) ([]*entity.Commission, error) {
	owner, err := ownerOf(session, brokerID)
	if err != nil {
		return nil, err
	}
	return uc.commissions.ListByBroker(ctx, owner)
}

func (uc *CommissionUseCase) Summary(ctx context.Context, session entity.Session, brokerID uuid.UUID) (entity.CommissionSummary, error) {
	list, err := uc.List(ctx, session, brokerID)
	if err != nil {
		return entity.CommissionSummary{}, err
	}
	return entity.Summarize(list), nil
}

// UpdateStatus переводит комиссию в pago или обратно в pendente.
// paidAt учитывается только для pago; без него берётся текущее время.
func (uc *CommissionUseCase) UpdateStatus(ctx context.Context, session entity.Session, id uuid.UUID, rawStatus string, paidAt *time.Time) (*entity.Commission, error) {
	if !session.IsAdmin() {
		return nil, apperror.ErrForbidden
	}
	status, err := valueobject.NewCommissionStatus(rawStatus)
	if err != nil {
		return nil, err
	}
	c, err := uc.commissions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if status == valueobject.CommissionStatusPaid {
		c.MarkPaid(paidAt)
	} else {
		c.MarkPending()
	}
	if err := uc.commissions.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func ownerOf(session entity.Session, brokerID uuid.UUID) (uuid.UUID, error) {
	switch {
	case session.IsBroker():
		return session.UserID, nil
	case session.IsAdmin():
		if brokerID == uuid.Nil {
			return uuid.Nil, apperror.Validation("corretor é obrigatório")
		}
		return brokerID, nil
	default:
		return uuid.Nil, apperror.ErrForbidden
	}
}
