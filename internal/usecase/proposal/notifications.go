package proposal

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/matheusgmdr7/contratando2/internal/domain/entity"
	"github.com/matheusgmdr7/contratando2/internal/domain/repository"
	"github.com/matheusgmdr7/contratando2/internal/domain/valueobject"
	"github.com/matheusgmdr7/contratando2/internal/goroutine"
	"github.com/matheusgmdr7/contratando2/internal/logger"
)

// Notifications рассылает письма и websocket-события после изменения proposta.
// Всё уходит в фон: ошибка доставки пишется в лог и не влияет на результат.
type Notifications struct {
	email  repository.EmailSender
	hub    repository.Notifier
	runner goroutine.Runner
	log    *logrus.Entry
}

func NewNotifications(email repository.EmailSender, hub repository.Notifier, runner goroutine.Runner) *Notifications {
	return &Notifications{
		email:  email,
		hub:    hub,
		runner: runner,
		log:    logger.Component("proposal"),
	}
}

type statusEvent struct {
	ID       string `json:"id"`
	Origin   string `json:"origem"`
	Client   string `json:"cliente"`
	Status   string `json:"status"`
	Previous string `json:"status_anterior,omitempty"`
	Reason   string `json:"motivo,omitempty"`
}

func eventOf(p *entity.Proposal) statusEvent {
	return statusEvent{
		ID:     p.ID.String(),
		Origin: string(p.Origin),
		Client: p.ClientName,
		Status: string(p.Status),
		Reason: p.RejectionReason,
	}
}

func (n *Notifications) Created(p *entity.Proposal) {
	n.hub.NotifyRole(valueobject.RoleAdmin, repository.EventProposalCreated, eventOf(p))
}

// StatusChanged уведомляет corretor о решении. Письмо уходит только для
// aprovada и rejeitada.
func (n *Notifications) StatusChanged(ctx context.Context, p *entity.Proposal, previous valueobject.ProposalStatus) {
	ev := eventOf(p)
	ev.Previous = string(previous)
	if p.BrokerID != nil {
		n.hub.Notify(*p.BrokerID, repository.EventProposalStatusChanged, ev)
	}

	var kind repository.EmailKind
	switch p.Status {
	case valueobject.ProposalStatusApproved:
		kind = repository.EmailProposalApproved
	case valueobject.ProposalStatusRejected:
		kind = repository.EmailProposalRejected
	default:
		return
	}
	n.sendToBroker(ctx, p, kind)
}

// Signed уведомляет corretor и администраторов о подписи клиента.
func (n *Notifications) Signed(ctx context.Context, p *entity.Proposal) {
	ev := eventOf(p)
	if p.BrokerID != nil {
		n.hub.Notify(*p.BrokerID, repository.EventProposalSigned, ev)
	}
	n.hub.NotifyRole(valueobject.RoleAdmin, repository.EventProposalSigned, ev)

	if p.Origin == valueobject.OriginBroker {
		n.sendToBroker(ctx, p, repository.EmailProposalSigned)
	}
}

// DocumentsCompleted: клиент приложил последний обязательный документ.
func (n *Notifications) DocumentsCompleted(ctx context.Context, p *entity.Proposal) {
	if p.Origin == valueobject.OriginBroker {
		n.sendToBroker(ctx, p, repository.EmailProposalCompleted)
	}
}

func (n *Notifications) sendToBroker(ctx context.Context, p *entity.Proposal, kind repository.EmailKind) {
	if p.BrokerEmail == "" {
		n.log.WithFields(logrus.Fields{"proposal_id": p.ID, "kind": kind}).
			Debug("proposal: у corretor нет email, письмо не отправлено")
		return
	}
	n.send(ctx, p, repository.EmailMessage{
		To:       p.BrokerEmail,
		Name:     p.BrokerName,
		Kind:     kind,
		Broker:   p.BrokerName,
		Client:   p.ClientName,
		Proposal: p.ID.String(),
		Value:    formatBRL(p.Value),
		Reason:   p.RejectionReason,
	})
}

func (n *Notifications) send(ctx context.Context, p *entity.Proposal, msg repository.EmailMessage) {
	// запрос может завершиться раньше письма
	ctx = context.WithoutCancel(ctx)
	n.runner.Go(func() {
		if err := n.email.Send(ctx, msg); err != nil {
			n.log.WithError(err).WithFields(logrus.Fields{
				"proposal_id": p.ID,
				"kind":        msg.Kind,
			}).Warn("proposal: письмо не отправлено, продолжаем")
		}
	})
}

// formatBRL: 1234.5 -> "R$ 1.234,50".
func formatBRL(v float64) string {
	raw := fmt.Sprintf("%.2f", v)
	intPart, frac, _ := strings.Cut(raw, ".")

	sign := ""
	if strings.HasPrefix(intPart, "-") {
		sign, intPart = "-", intPart[1:]
	}
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	return "R$ " + sign + b.String() + "," + frac
}
