package proposal

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/matheusgmdr7/contratando2/internal/domain/entity"
	"github.com/matheusgmdr7/contratando2/internal/domain/valueobject"
	"github.com/matheusgmdr7/contratando2/internal/usecase/pricing"
	"github.com/matheusgmdr7/contratando2/internal/validation"
)

type TablePricer interface {
	Execute(ctx context.Context, tableID uuid.UUID, q pricing.AgeQuery) (*pricing.Quote, error)
}

type ProductPricer interface {
	Execute(ctx context.Context, productID uuid.UUID, q pricing.AgeQuery) (*pricing.Quote, error)
}

type DependentInput struct {
	Name      string
	CPF       string
	BirthDate *time.Time
	Kinship   string
	Value     float64
}

type CreateProposalInput struct {
	ClientName  string
	ClientEmail string
	ClientPhone string
	ClientCPF   string
	BirthDate   *time.Time
	Value       float64
	ProductID   *uuid.UUID
	TableID     *uuid.UUID
	Dependents  []DependentInput
}

type CreateProposalUseCase struct {
	unifier  *Unifier
	tables   TablePricer
	products ProductPricer
}

func NewCreateProposalUseCase(unifier *Unifier, tables TablePricer, products ProductPricer) *CreateProposalUseCase {
	return &CreateProposalUseCase{unifier: unifier, tables: tables, products: products}
}

// Execute сохраняет proposta: сессия corretor пишет в propostas_corretores,
// остальные в propostas. Без явного valor цена берётся из таблицы по возрасту.
// Dependentes сохраняются после записи; их ошибка не отменяет proposta.
func (uc *CreateProposalUseCase) Execute(ctx context.Context, session entity.Session, input CreateProposalInput) (*entity.Proposal, error) {
	if err := validation.ValidateLength("nome", strings.TrimSpace(input.ClientName), validation.MinNameLength, validation.MaxNameLength); err != nil {
		return nil, err
	}
	if err := validation.ValidateEmail(input.ClientEmail); err != nil {
		return nil, err
	}
	if input.ClientCPF != "" {
		if err := validation.ValidateCPF(input.ClientCPF); err != nil {
			return nil, err
		}
	}

	origin := valueobject.OriginDirect
	if session.IsBroker() {
		origin = valueobject.OriginBroker
	}

	p, err := entity.NewProposal(origin, entity.NewProposalInput{
		ClientName:  input.ClientName,
		ClientEmail: strings.ToLower(strings.TrimSpace(input.ClientEmail)),
		ClientPhone: input.ClientPhone,
		ClientCPF:   validation.OnlyDigits(input.ClientCPF),
		BirthDate:   input.BirthDate,
		Value:       input.Value,
		ProductID:   input.ProductID,
		TableID:     input.TableID,
	})
	if err != nil {
		return nil, err
	}
	if session.IsBroker() {
		brokerID := session.UserID
		p.BrokerID = &brokerID
	}

	if p.Value == 0 && p.BirthDate != nil {
		quote, err := uc.quote(ctx, p, *p.BirthDate)
		if err != nil {
			return nil, err
		}
		p.Value = quote.Value
		if p.TableID == nil {
			p.TableID = quote.TableID
		}
	}

	src := uc.unifier.source(origin)
	if err := src.Create(ctx, p); err != nil {
		return nil, err
	}
	uc.unifier.origins.Set(p.ID, origin)

	if len(input.Dependents) > 0 {
		uc.saveDependents(ctx, p, input.Dependents)
	}
	uc.unifier.events.Created(p)
	return p, nil
}

func (uc *CreateProposalUseCase) quote(ctx context.Context, p *entity.Proposal, birth time.Time) (*pricing.Quote, error) {
	q := pricing.AgeQuery{BirthDate: &birth}
	switch {
	case p.TableID != nil:
		return uc.tables.Execute(ctx, *p.TableID, q)
	case p.ProductID != nil:
		return uc.products.Execute(ctx, *p.ProductID, q)
	default:
		return &pricing.Quote{}, nil
	}
}

func (uc *CreateProposalUseCase) saveDependents(ctx context.Context, p *entity.Proposal, inputs []DependentInput) {
	log := uc.unifier.log.WithField("proposal_id", p.ID)
	now := time.Now()

	dependents := make([]*entity.Dependent, 0, len(inputs))
	for _, in := range inputs {
		name := strings.TrimSpace(in.Name)
		if name == "" {
			log.Warn("proposal: dependente без имени пропущен")
			continue
		}
		d := &entity.Dependent{
			ID:         uuid.New(),
			ProposalID: p.ID,
			Name:       name,
			CPF:        validation.OnlyDigits(in.CPF),
			BirthDate:  in.BirthDate,
			Kinship:    in.Kinship,
			Value:      in.Value,
			CreatedAt:  now,
		}
		if d.Value == 0 && d.BirthDate != nil && p.TableID != nil {
			quote, err := uc.tables.Execute(ctx, *p.TableID, pricing.AgeQuery{BirthDate: d.BirthDate})
			if err != nil {
				log.WithError(err).Warn("proposal: не удалось рассчитать valor dependente")
			} else {
				d.Value = quote.Value
			}
		}
		dependents = append(dependents, d)
	}
	if len(dependents) == 0 {
		return
	}

	if err := uc.unifier.source(p.Origin).CreateDependents(ctx, dependents); err != nil {
		log.WithError(err).WithField("count", len(dependents)).
			Warn("proposal: dependentes не сохранены, proposta создана без них")
	}
}
