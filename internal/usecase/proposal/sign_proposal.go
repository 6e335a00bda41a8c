package proposal

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/matheusgmdr7/contratando2/internal/domain/entity"
	"github.com/matheusgmdr7/contratando2/internal/domain/valueobject"
	"github.com/matheusgmdr7/contratando2/internal/pkg/apperror"
	"github.com/matheusgmdr7/contratando2/internal/validation"
)

type SignInput struct {
	Signature     string
	TermsAccepted bool
}

type SignProposalUseCase struct {
	unifier *Unifier
	now     func() time.Time
}

func NewSignProposalUseCase(unifier *Unifier) *SignProposalUseCase {
	return &SignProposalUseCase{unifier: unifier, now: time.Now}
}

// Execute фиксирует подпись клиента. Доступно по ссылке без учётной записи.
func (uc *SignProposalUseCase) Execute(ctx context.Context, id uuid.UUID, input SignInput) (*entity.Proposal, error) {
	signature := strings.TrimSpace(input.Signature)
	if signature == "" {
		return nil, apperror.Validation("assinatura é obrigatória")
	}
	if err := validation.ValidateLength("assinatura", signature, 0, validation.MaxSignatureLength); err != nil {
		return nil, err
	}
	if !input.TermsAccepted {
		return nil, apperror.Validation("é necessário aceitar os termos")
	}

	src, p, err := uc.unifier.resolve(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Status == valueobject.ProposalStatusSigned || p.Status.IsTerminal() {
		return nil, errProposalClosed
	}

	signedAt := uc.now()
	if err := src.Sign(ctx, id, signature, true, signedAt); err != nil {
		return nil, err
	}

	p.Status = valueobject.ProposalStatusSigned
	p.Signature = signature
	p.TermsAccepted = true
	p.SignedAt = &signedAt
	uc.unifier.events.Signed(ctx, p)
	return p, nil
}
