package repository

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/matheusgmdr7/contratando2/internal/domain/valueobject"
)

type EmailKind string

const (
	EmailProposalClient    EmailKind = "proposta_cliente"
	EmailProposalCompleted EmailKind = "proposta_completada"
	EmailProposalSigned    EmailKind = "proposta_assinada"
	EmailProposalApproved  EmailKind = "proposta_aprovada"
	EmailProposalRejected  EmailKind = "proposta_rejeitada"
)

// EmailMessage — параметры шаблонного письма. Шаблон выбирает Kind.
type EmailMessage struct {
	To         string
	Name       string
	Subject    string
	Kind       EmailKind
	Broker     string
	Link       string
	Client     string
	Proposal   string
	Value      string
	Commission string
	Reason     string
}

type EmailSender interface {
	Send(ctx context.Context, msg EmailMessage) error
}

// FileStorage хранит объекты в именованных bucket.
type FileStorage interface {
	Upload(ctx context.Context, bucket, path string, r io.Reader) (publicURL string, err error)
	Delete(ctx context.Context, bucket, path string) error
}

const (
	EventProposalCreated       = "proposal.created"
	EventProposalStatusChanged = "proposal.status_changed"
	EventProposalSigned        = "proposal.signed"
)

// Notifier доставляет события в открытые соединения. Не блокируется.
type Notifier interface {
	Notify(userID uuid.UUID, event string, data any)
	NotifyRole(role valueobject.Role, event string, data any)
}

// DocumentInspector определяет тип загружаемого документа по содержимому.
// Возвращённый reader отдаёт файл целиком.
type DocumentInspector interface {
	Inspect(r io.Reader) (extension string, body io.Reader, err error)
}

// OriginCache запоминает, в какой таблице живёт proposta.
type OriginCache interface {
	Get(id uuid.UUID) (valueobject.ProposalOrigin, bool)
	Set(id uuid.UUID, origin valueobject.ProposalOrigin)
}
