package proposal

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/matheusgmdr7/contratando2/internal/domain/entity"
	"github.com/matheusgmdr7/contratando2/internal/domain/repository"
	"github.com/matheusgmdr7/contratando2/internal/domain/valueobject"
	"github.com/matheusgmdr7/contratando2/internal/pkg/apperror"
	"github.com/matheusgmdr7/contratando2/internal/validation"
)

type ValidationEmailInput struct {
	Email string
	Name  string
}

type SendValidationEmailUseCase struct {
	unifier *Unifier
	email   repository.EmailSender
	baseURL string
	now     func() time.Time
}

func NewSendValidationEmailUseCase(unifier *Unifier, email repository.EmailSender, baseURL string) *SendValidationEmailUseCase {
	return &SendValidationEmailUseCase{unifier: unifier, email: email, baseURL: baseURL, now: time.Now}
}

// Execute отправляет клиенту ссылку на завершение proposta. Статус меняется
// на aguardando_cliente только после успешной отправки.
func (uc *SendValidationEmailUseCase) Execute(ctx context.Context, session entity.Session, id uuid.UUID, input ValidationEmailInput) (*entity.Proposal, error) {
	src, p, err := uc.unifier.resolve(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(session, p); err != nil {
		return nil, err
	}
	if p.Status.IsTerminal() || p.Status == valueobject.ProposalStatusSigned {
		return nil, errProposalClosed
	}

	to := strings.TrimSpace(input.Email)
	if to == "" {
		to = p.ClientEmail
	}
	if to == "" {
		return nil, apperror.Validation("email do cliente é obrigatório")
	}
	if err := validation.ValidateEmail(to); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = p.ClientName
	}

	link := validationLink(uc.baseURL, p.ID)
	err = uc.email.Send(ctx, repository.EmailMessage{
		To:       to,
		Name:     name,
		Kind:     repository.EmailProposalClient,
		Broker:   p.BrokerName,
		Link:     link,
		Client:   name,
		Proposal: p.ID.String(),
		Value:    formatBRL(p.Value),
	})
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeUpstreamUnavailable, "serviço de email indisponível")
	}

	sentAt := uc.now()
	if err := src.MarkValidationSent(ctx, p.ID, link, sentAt); err != nil {
		return nil, err
	}
	p.Status = valueobject.ProposalStatusAwaitingClient
	p.ValidationLink = link
	p.ValidationSentAt = &sentAt
	return p, nil
}

// validationLink — ссылка, по которой клиент завершает proposta.
func validationLink(baseURL string, id uuid.UUID) string {
	return strings.TrimRight(baseURL, "/") + "/proposta-digital/completar/" + id.String()
}
