package proposal_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/matheusgmdr7/contratando2/internal/domain/entity"
	"github.com/matheusgmdr7/contratando2/internal/domain/repository"
	"github.com/matheusgmdr7/contratando2/internal/domain/valueobject"
	"github.com/matheusgmdr7/contratando2/internal/goroutine"
	"github.com/matheusgmdr7/contratando2/internal/pkg/apperror"
	"github.com/matheusgmdr7/contratando2/internal/usecase/pricing"
	"github.com/matheusgmdr7/contratando2/internal/usecase/proposal"
)

var errDown = errors.New("connection refused")

// mockSource — таблица propostas в памяти. rows хранит уже нормализованные
// записи, raw — строки таблицы как есть.
type mockSource struct {
	origin     valueobject.ProposalOrigin
	rows       map[uuid.UUID]*entity.Proposal
	raw        map[uuid.UUID]entity.ProposalRecord
	dependents map[uuid.UUID][]*entity.Dependent
	listErr    error
	findErr    error
	depErr     error
	finds      int
}

func newMockSource(origin valueobject.ProposalOrigin) *mockSource {
	return &mockSource{
		origin:     origin,
		rows:       make(map[uuid.UUID]*entity.Proposal),
		raw:        make(map[uuid.UUID]entity.ProposalRecord),
		dependents: make(map[uuid.UUID][]*entity.Dependent),
	}
}

// record оборачивает Proposal, чтобы mock отдавал entity.ProposalRecord.
type record struct {
	p *entity.Proposal
}

func (r record) Origin() valueobject.ProposalOrigin { return r.p.Origin }
func (r record) Normalize() *entity.Proposal {
	cp := *r.p
	return &cp
}

func (m *mockSource) add(p *entity.Proposal) *entity.Proposal {
	p.Origin = m.origin
	m.rows[p.ID] = p
	return p
}

func (m *mockSource) addRaw(id uuid.UUID, rec entity.ProposalRecord) {
	m.raw[id] = rec
}

func (m *mockSource) Origin() valueobject.ProposalOrigin { return m.origin }

func (m *mockSource) List(ctx context.Context, filter repository.ProposalFilter) ([]entity.ProposalRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []entity.ProposalRecord
	for _, p := range m.rows {
		if filter.BrokerID != nil && !p.IsOwnedBy(*filter.BrokerID) {
			continue
		}
		if filter.Status != nil && p.Status != *filter.Status {
			continue
		}
		out = append(out, record{p})
	}
	for _, rec := range m.raw {
		out = append(out, rec)
	}
	return out, nil
}

func (m *mockSource) FindByID(ctx context.Context, id uuid.UUID) (entity.ProposalRecord, error) {
	m.finds++
	if m.findErr != nil {
		return nil, m.findErr
	}
	if p, ok := m.rows[id]; ok {
		return record{p}, nil
	}
	if rec, ok := m.raw[id]; ok {
		return rec, nil
	}
	return nil, apperror.ErrProposalNotFound
}

func (m *mockSource) Create(ctx context.Context, p *entity.Proposal) error {
	m.rows[p.ID] = p
	return nil
}

func (m *mockSource) get(id uuid.UUID) (*entity.Proposal, error) {
	p, ok := m.rows[id]
	if !ok {
		return nil, apperror.ErrProposalNotFound
	}
	return p, nil
}

func (m *mockSource) UpdateStatus(ctx context.Context, id uuid.UUID, status valueobject.ProposalStatus, reason string) error {
	p, err := m.get(id)
	if err != nil {
		return err
	}
	p.Status = status
	p.RejectionReason = reason
	return nil
}

func (m *mockSource) Sign(ctx context.Context, id uuid.UUID, signature string, terms bool, at time.Time) error {
	p, err := m.get(id)
	if err != nil {
		return err
	}
	p.Status = valueobject.ProposalStatusSigned
	p.Signature = signature
	p.TermsAccepted = terms
	p.SignedAt = &at
	return nil
}

func (m *mockSource) MarkValidationSent(ctx context.Context, id uuid.UUID, link string, at time.Time) error {
	p, err := m.get(id)
	if err != nil {
		return err
	}
	p.Status = valueobject.ProposalStatusAwaitingClient
	p.ValidationLink = link
	p.ValidationSentAt = &at
	return nil
}

func (m *mockSource) SetDocuments(ctx context.Context, id uuid.UUID, docs map[string]string) error {
	p, err := m.get(id)
	if err != nil {
		return err
	}
	p.Documents = docs
	return nil
}

func (m *mockSource) ListDependents(ctx context.Context, id uuid.UUID) ([]*entity.Dependent, error) {
	return m.dependents[id], nil
}

func (m *mockSource) CreateDependents(ctx context.Context, deps []*entity.Dependent) error {
	if m.depErr != nil {
		return m.depErr
	}
	for _, d := range deps {
		m.dependents[d.ProposalID] = append(m.dependents[d.ProposalID], d)
	}
	return nil
}

type mapCache map[uuid.UUID]valueobject.ProposalOrigin

func (c mapCache) Get(id uuid.UUID) (valueobject.ProposalOrigin, bool) {
	o, ok := c[id]
	return o, ok
}

func (c mapCache) Set(id uuid.UUID, o valueobject.ProposalOrigin) { c[id] = o }

type mockEmail struct {
	mu   sync.Mutex
	sent []repository.EmailMessage
	err  error
}

func (m *mockEmail) Send(ctx context.Context, msg repository.EmailMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *mockEmail) kinds() []repository.EmailKind {
	var out []repository.EmailKind
	for _, msg := range m.sent {
		out = append(out, msg.Kind)
	}
	return out
}

type notification struct {
	userID uuid.UUID
	role   valueobject.Role
	event  string
}

type mockNotifier struct {
	events []notification
}

func (m *mockNotifier) Notify(userID uuid.UUID, event string, data any) {
	m.events = append(m.events, notification{userID: userID, event: event})
}

func (m *mockNotifier) NotifyRole(role valueobject.Role, event string, data any) {
	m.events = append(m.events, notification{role: role, event: event})
}

type mockStorage struct {
	uploads map[string]string
	failFor string
}

func (m *mockStorage) Upload(ctx context.Context, bucket, path string, r io.Reader) (string, error) {
	if m.failFor != "" && containsKind(path, m.failFor) {
		return "", errDown
	}
	if _, err := io.ReadAll(r); err != nil {
		return "", err
	}
	url := "https://files.example.com/" + bucket + "/" + path
	m.uploads[path] = url
	return url, nil
}

func (m *mockStorage) Delete(ctx context.Context, bucket, path string) error { return nil }

func containsKind(path, kind string) bool {
	return strings.Contains(path, "titular_"+kind+"_")
}

// inspectorByPrefix принимает файлы, начинающиеся с "%PDF".
type inspectorByPrefix struct{}

func (inspectorByPrefix) Inspect(r io.Reader) (string, io.Reader, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", nil, err
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		return "", nil, apperror.Validation("tipo de arquivo não suportado")
	}
	return "pdf", bytes.NewReader(data), nil
}

type fixedPricer struct {
	value   float64
	tableID uuid.UUID
	calls   int
}

func (f *fixedPricer) Execute(ctx context.Context, id uuid.UUID, q pricing.AgeQuery) (*pricing.Quote, error) {
	f.calls++
	tableID := f.tableID
	return &pricing.Quote{TableID: &tableID, Value: f.value}, nil
}

type fixture struct {
	direct   *mockSource
	broker   *mockSource
	cache    mapCache
	email    *mockEmail
	notifier *mockNotifier
	unifier  *proposal.Unifier
}

func newFixture() *fixture {
	f := &fixture{
		direct:   newMockSource(valueobject.OriginDirect),
		broker:   newMockSource(valueobject.OriginBroker),
		cache:    mapCache{},
		email:    &mockEmail{},
		notifier: &mockNotifier{},
	}
	events := proposal.NewNotifications(f.email, f.notifier, goroutine.Inline{})
	f.unifier = proposal.NewUnifier(f.direct, f.broker, f.cache, events)
	return f
}

var (
	admin       = entity.Session{UserID: uuid.New(), Role: valueobject.RoleAdmin, Profile: valueobject.AdminProfileMaster}
	brokerID    = uuid.New()
	brokerSess  = entity.Session{UserID: brokerID, Role: valueobject.RoleBroker}
	otherBroker = entity.Session{UserID: uuid.New(), Role: valueobject.RoleBroker}
)

func newProposal(name string, createdAt time.Time) *entity.Proposal {
	return &entity.Proposal{
		ID:          uuid.New(),
		Status:      valueobject.ProposalStatusPending,
		ClientName:  name,
		ClientEmail: "cliente@example.com",
		Value:       300,
		Documents:   map[string]string{},
		CreatedAt:   createdAt,
	}
}

func ownedBy(p *entity.Proposal, id uuid.UUID) *entity.Proposal {
	p.BrokerID = &id
	p.BrokerName = "Bia"
	p.BrokerEmail = "bia@example.com"
	return p
}
