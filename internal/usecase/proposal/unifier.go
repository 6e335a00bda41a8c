// Package proposal объединяет две таблицы propostas в один поток записей.
//
// propostas (A) хранит заявки, пришедшие напрямую, propostas_corretores (B)
// заявки corretores. Чтение отдаёт нормализованные записи с меткой origin,
// запись по id идёт ровно в ту таблицу, где запись найдена.
package proposal

import (
	"context"
	"slices"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/matheusgmdr7/contratando2/internal/domain/entity"
	"github.com/matheusgmdr7/contratando2/internal/domain/repository"
	"github.com/matheusgmdr7/contratando2/internal/domain/valueobject"
	"github.com/matheusgmdr7/contratando2/internal/logger"
	"github.com/matheusgmdr7/contratando2/internal/pkg/apperror"
	"github.com/matheusgmdr7/contratando2/internal/validation"
)

var errProposalClosed = apperror.New(apperror.ErrCodeConflict, "proposta já finalizada")

type ListFilter struct {
	Status *valueobject.ProposalStatus
}

type Unifier struct {
	direct  repository.ProposalSource
	broker  repository.ProposalSource
	origins repository.OriginCache
	events  *Notifications
	log     *logrus.Entry
}

func NewUnifier(direct, broker repository.ProposalSource, origins repository.OriginCache, events *Notifications) *Unifier {
	return &Unifier{
		direct:  direct,
		broker:  broker,
		origins: origins,
		events:  events,
		log:     logger.Component("proposal"),
	}
}

// sources в порядке опроса: сначала A, потом B.
func (u *Unifier) sources() []repository.ProposalSource {
	return []repository.ProposalSource{u.direct, u.broker}
}

func (u *Unifier) source(origin valueobject.ProposalOrigin) repository.ProposalSource {
	if origin == valueobject.OriginBroker {
		return u.broker
	}
	return u.direct
}

// List отдаёт propostas из обеих таблиц, новые первыми. Corretor видит только
// свои записи из B. Если одна таблица недоступна, отдаётся вторая;
// ошибка возвращается, только когда не ответила ни одна.
func (u *Unifier) List(ctx context.Context, session entity.Session, filter ListFilter) ([]*entity.Proposal, error) {
	sources := u.sources()
	query := repository.ProposalFilter{Status: filter.Status}

	switch {
	case session.IsAdmin():
	case session.IsBroker():
		brokerID := session.UserID
		query.BrokerID = &brokerID
		sources = []repository.ProposalSource{u.broker}
	default:
		return nil, apperror.ErrForbidden
	}

	var (
		result   []*entity.Proposal
		failures int
		lastErr  error
	)
	for _, src := range sources {
		records, err := src.List(ctx, query)
		if err != nil {
			failures++
			lastErr = err
			u.log.WithError(err).WithField("origin", src.Origin()).
				Warn("proposal: таблица недоступна, список неполный")
			continue
		}
		for _, rec := range records {
			p := rec.Normalize()
			u.origins.Set(p.ID, p.Origin)
			result = append(result, p)
		}
	}
	if failures == len(sources) {
		return nil, lastErr
	}

	slices.SortStableFunc(result, func(a, b *entity.Proposal) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return result, nil
}

// Get отдаёт одну proposta. Публичная сессия (клиент по ссылке) видит любую
// запись по id, corretor только свою.
func (u *Unifier) Get(ctx context.Context, session entity.Session, id uuid.UUID) (*entity.Proposal, error) {
	_, p, err := u.resolve(ctx, id)
	if err != nil {
		return nil, err
	}
	if !session.IsPublic() {
		if err := authorize(session, p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// UpdateStatus меняет статус в таблице, где живёт запись, и уведомляет corretor.
func (u *Unifier) UpdateStatus(ctx context.Context, session entity.Session, id uuid.UUID, rawStatus, reason string) (*entity.Proposal, error) {
	if !session.IsAdmin() {
		return nil, apperror.ErrForbidden
	}
	status, err := valueobject.NewProposalStatus(rawStatus)
	if err != nil {
		return nil, err
	}
	if status != valueobject.ProposalStatusRejected {
		reason = ""
	}
	if err := validation.ValidateLength("motivo", reason, 0, validation.MaxReasonLength); err != nil {
		return nil, err
	}

	src, p, err := u.resolve(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := src.UpdateStatus(ctx, id, status, reason); err != nil {
		return nil, err
	}

	previous := p.Status
	p.Status = status
	p.RejectionReason = reason
	u.events.StatusChanged(ctx, p, previous)
	return p, nil
}

func (u *Unifier) ListDependents(ctx context.Context, session entity.Session, id uuid.UUID) ([]*entity.Dependent, error) {
	src, p, err := u.resolve(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(session, p); err != nil {
		return nil, err
	}
	return src.ListDependents(ctx, id)
}

// resolve находит таблицу записи: сначала кэш origin, затем A, затем B.
// NotFound из A означает "ищи в B"; любая другая ошибка A возвращается сразу.
func (u *Unifier) resolve(ctx context.Context, id uuid.UUID) (repository.ProposalSource, *entity.Proposal, error) {
	if origin, ok := u.origins.Get(id); ok {
		src := u.source(origin)
		rec, err := src.FindByID(ctx, id)
		if err != nil {
			return nil, nil, err
		}
		return src, rec.Normalize(), nil
	}

	for _, src := range u.sources() {
		rec, err := src.FindByID(ctx, id)
		if err == nil {
			u.origins.Set(id, src.Origin())
			return src, rec.Normalize(), nil
		}
		if !apperror.IsNotFound(err) {
			return nil, nil, err
		}
	}
	return nil, nil, apperror.ErrProposalNotFound
}

func authorize(session entity.Session, p *entity.Proposal) error {
	switch {
	case session.IsAdmin():
		return nil
	case session.IsBroker() && p.IsOwnedBy(session.UserID):
		return nil
	default:
		return apperror.ErrForbidden
	}
}
