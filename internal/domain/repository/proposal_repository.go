package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/matheusgmdr7/contratando2/internal/domain/entity"
	"github.com/matheusgmdr7/contratando2/internal/domain/valueobject"
)

// ProposalSource — одна физическая таблица proposals. FindByID возвращает
// NotFound, если id в этой таблице нет.
type ProposalSource interface {
	Origin() valueobject.ProposalOrigin
	List(ctx context.Context, filter ProposalFilter) ([]entity.ProposalRecord, error)
	FindByID(ctx context.Context, id uuid.UUID) (entity.ProposalRecord, error)
	Create(ctx context.Context, proposal *entity.Proposal) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status valueobject.ProposalStatus, reason string) error
	Sign(ctx context.Context, id uuid.UUID, signature string, termsAccepted bool, signedAt time.Time) error
	MarkValidationSent(ctx context.Context, id uuid.UUID, link string, sentAt time.Time) error
	SetDocuments(ctx context.Context, id uuid.UUID, documents map[string]string) error
	ListDependents(ctx context.Context, proposalID uuid.UUID) ([]*entity.Dependent, error)
	CreateDependents(ctx context.Context, dependents []*entity.Dependent) error
}

type ProposalFilter struct {
	BrokerID *uuid.UUID
	Status   *valueobject.ProposalStatus
}
