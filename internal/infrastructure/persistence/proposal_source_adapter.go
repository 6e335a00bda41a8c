package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"

	"github.com/matheusgmdr7/contratando2/internal/domain/entity"
	"github.com/matheusgmdr7/contratando2/internal/domain/repository"
	"github.com/matheusgmdr7/contratando2/internal/domain/valueobject"
	"github.com/matheusgmdr7/contratando2/internal/pkg/apperror"
)

// proposalTable — общие для обеих таблиц операции. Колонки статуса,
// подписи, ссылки и документов называются одинаково.
type proposalTable struct {
	db              *sqlx.DB
	table           string
	dependentsTable string
	dependentsFK    string
}

func (t *proposalTable) UpdateStatus(ctx context.Context, id uuid.UUID, status valueobject.ProposalStatus, reason string) error {
	query := fmt.Sprintf(`
		UPDATE %s SET status = $2, motivo_rejeicao = NULLIF($3, ''), updated_at = NOW()
		WHERE id = $1`, t.table)
	return t.execOne(ctx, "não foi possível atualizar o status da proposta", query, id, string(status), reason)
}

func (t *proposalTable) Sign(ctx context.Context, id uuid.UUID, signature string, termsAccepted bool, signedAt time.Time) error {
	query := fmt.Sprintf(`
		UPDATE %s SET status = $2, assinatura = $3, termos_aceitos = $4, data_assinatura = $5, updated_at = NOW()
		WHERE id = $1`, t.table)
	return t.execOne(ctx, "não foi possível registrar a assinatura", query,
		id, string(valueobject.ProposalStatusSigned), signature, termsAccepted, signedAt)
}

func (t *proposalTable) MarkValidationSent(ctx context.Context, id uuid.UUID, link string, sentAt time.Time) error {
	query := fmt.Sprintf(`
		UPDATE %s SET status = $2, link_validacao = $3, email_validacao_enviado = TRUE,
		email_enviado_em = $4, updated_at = NOW()
		WHERE id = $1`, t.table)
	return t.execOne(ctx, "não foi possível registrar o envio do email", query,
		id, string(valueobject.ProposalStatusAwaitingClient), link, sentAt)
}

func (t *proposalTable) SetDocuments(ctx context.Context, id uuid.UUID, documents map[string]string) error {
	raw, err := encodeDocuments(documents)
	if err != nil {
		return apperror.Persistence(err, "não foi possível salvar os documentos")
	}
	query := fmt.Sprintf(`UPDATE %s SET documentos_urls = $2, updated_at = NOW() WHERE id = $1`, t.table)
	return t.execOne(ctx, "não foi possível salvar os documentos", query, id, raw)
}

func (t *proposalTable) ListDependents(ctx context.Context, proposalID uuid.UUID) ([]*entity.Dependent, error) {
	var rows []dependentRow
	query := fmt.Sprintf(`
		SELECT id, %[2]s AS proposta_id, nome, cpf, data_nascimento, parentesco, valor_individual, created_at
		FROM %[1]s WHERE %[2]s = $1 ORDER BY created_at, id`, t.dependentsTable, t.dependentsFK)
	if err := t.db.SelectContext(ctx, &rows, query, proposalID); err != nil {
		return nil, apperror.Persistence(err, "não foi possível carregar os dependentes")
	}
	result := make([]*entity.Dependent, len(rows))
	for i := range rows {
		result[i] = rows[i].toEntity()
	}
	return result, nil
}

func (t *proposalTable) CreateDependents(ctx context.Context, dependents []*entity.Dependent) error {
	if len(dependents) == 0 {
		return nil
	}
	query := fmt.Sprintf(`
		INSERT INTO %s (id, %s, nome, cpf, data_nascimento, parentesco, valor_individual, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`, t.dependentsTable, t.dependentsFK)

	tx, err := t.db.BeginTxx(ctx, nil)
	if err != nil {
		return apperror.Persistence(err, "não foi possível salvar os dependentes")
	}
	defer tx.Rollback()

	for _, d := range dependents {
		if _, err := tx.ExecContext(ctx, query,
			d.ID, d.ProposalID, d.Name, d.CPF, d.BirthDate, d.Kinship, d.Value, d.CreatedAt,
		); err != nil {
			return apperror.Persistence(err, "não foi possível salvar os dependentes")
		}
	}
	if err := tx.Commit(); err != nil {
		return apperror.Persistence(err, "não foi possível salvar os dependentes")
	}
	return nil
}

// execOne выполняет UPDATE и превращает "0 строк" в NotFound.
func (t *proposalTable) execOne(ctx context.Context, message, query string, args ...any) error {
	res, err := t.db.ExecContext(ctx, query, args...)
	if err != nil {
		return apperror.Persistence(err, message)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return apperror.Persistence(err, message)
	}
	if n == 0 {
		return apperror.ErrProposalNotFound
	}
	return nil
}

// DirectProposalSource — таблица propostas.
type DirectProposalSource struct {
	proposalTable
}

func NewDirectProposalSource(db *sqlx.DB) *DirectProposalSource {
	return &DirectProposalSource{proposalTable{
		db:              db,
		table:           string(valueobject.OriginDirect),
		dependentsTable: "dependentes",
		dependentsFK:    "proposta_id",
	}}
}

func (s *DirectProposalSource) Origin() valueobject.ProposalOrigin {
	return valueobject.OriginDirect
}

const directColumns = `
	id, status, nome_cliente, nome, email, telefone, whatsapp, cpf, data_nascimento,
	valor, valor_plano, produto_id, tabela_id, corretor_nome, corretor_email,
	motivo_rejeicao, assinatura, termos_aceitos, data_assinatura, link_validacao,
	email_enviado_em, documentos_urls, created_at, updated_at`

func (s *DirectProposalSource) List(ctx context.Context, filter repository.ProposalFilter) ([]entity.ProposalRecord, error) {
	query := `SELECT ` + directColumns + ` FROM propostas WHERE ($1::text IS NULL OR status = $1) ORDER BY created_at DESC`
	var rows []directRow
	if err := s.db.SelectContext(ctx, &rows, query, statusArg(filter)); err != nil {
		return nil, apperror.Persistence(err, "não foi possível carregar propostas")
	}
	out := make([]entity.ProposalRecord, len(rows))
	for i := range rows {
		out[i] = rows[i].toRecord()
	}
	return out, nil
}

func (s *DirectProposalSource) FindByID(ctx context.Context, id uuid.UUID) (entity.ProposalRecord, error) {
	var row directRow
	if err := s.db.GetContext(ctx, &row, `SELECT `+directColumns+` FROM propostas WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrProposalNotFound
		}
		return nil, apperror.Persistence(err, "não foi possível carregar a proposta")
	}
	return row.toRecord(), nil
}

func (s *DirectProposalSource) Create(ctx context.Context, p *entity.Proposal) error {
	docs, err := encodeDocuments(p.Documents)
	if err != nil {
		return apperror.Persistence(err, "não foi possível criar a proposta")
	}
	query := `
		INSERT INTO propostas (id, status, nome_cliente, email, telefone, cpf, data_nascimento,
			valor, produto_id, tabela_id, corretor_nome, documentos_urls, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err = s.db.ExecContext(ctx, query,
		p.ID, string(p.Status), p.ClientName, p.ClientEmail, nullString(p.ClientPhone), nullString(p.ClientCPF),
		p.BirthDate, p.Value, p.ProductID, p.TableID, nullString(p.BrokerName), docs, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return apperror.Persistence(err, "não foi possível criar a proposta")
	}
	return nil
}

// BrokerProposalSource — таблица propostas_corretores с join на corretores.
type BrokerProposalSource struct {
	proposalTable
}

func NewBrokerProposalSource(db *sqlx.DB) *BrokerProposalSource {
	return &BrokerProposalSource{proposalTable{
		db:              db,
		table:           string(valueobject.OriginBroker),
		dependentsTable: "dependentes_propostas_corretores",
		dependentsFK:    "proposta_corretor_id",
	}}
}

func (s *BrokerProposalSource) Origin() valueobject.ProposalOrigin {
	return valueobject.OriginBroker
}

const brokerSelect = `
	SELECT p.id, p.status, p.cliente, p.nome_cliente, p.email_cliente, p.email, p.whatsapp_cliente,
		p.telefone, p.cpf_cliente, p.data_nascimento, p.valor_proposta, p.valor, p.produto_id,
		p.tabela_id, p.corretor_id, c.nome AS corretor_nome, c.email AS corretor_email,
		p.motivo_rejeicao, p.assinatura, p.termos_aceitos, p.data_assinatura, p.link_validacao,
		p.email_enviado_em, p.documentos_urls, p.rg_frente_url, p.rg_verso_url, p.cpf_url,
		p.comprovante_residencia_url, p.cns_url, p.created_at, p.updated_at
	FROM propostas_corretores p
	LEFT JOIN corretores c ON c.id = p.corretor_id`

func (s *BrokerProposalSource) List(ctx context.Context, filter repository.ProposalFilter) ([]entity.ProposalRecord, error) {
	query := brokerSelect + `
		WHERE ($1::uuid IS NULL OR p.corretor_id = $1) AND ($2::text IS NULL OR p.status = $2)
		ORDER BY p.created_at DESC`
	var rows []brokerRow
	if err := s.db.SelectContext(ctx, &rows, query, filter.BrokerID, statusArg(filter)); err != nil {
		return nil, apperror.Persistence(err, "não foi possível carregar propostas de corretores")
	}
	out := make([]entity.ProposalRecord, len(rows))
	for i := range rows {
		out[i] = rows[i].toRecord()
	}
	return out, nil
}

func (s *BrokerProposalSource) FindByID(ctx context.Context, id uuid.UUID) (entity.ProposalRecord, error) {
	var row brokerRow
	if err := s.db.GetContext(ctx, &row, brokerSelect+` WHERE p.id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrProposalNotFound
		}
		return nil, apperror.Persistence(err, "não foi possível carregar a proposta")
	}
	return row.toRecord(), nil
}

func (s *BrokerProposalSource) Create(ctx context.Context, p *entity.Proposal) error {
	docs, err := encodeDocuments(p.Documents)
	if err != nil {
		return apperror.Persistence(err, "não foi possível criar a proposta")
	}
	query := `
		INSERT INTO propostas_corretores (id, corretor_id, status, cliente, email_cliente, whatsapp_cliente,
			cpf_cliente, data_nascimento, valor_proposta, produto_id, tabela_id, documentos_urls,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err = s.db.ExecContext(ctx, query,
		p.ID, p.BrokerID, string(p.Status), p.ClientName, p.ClientEmail, nullString(p.ClientPhone),
		nullString(p.ClientCPF), p.BirthDate, p.Value, p.ProductID, p.TableID, docs, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return apperror.Persistence(err, "não foi possível criar a proposta")
	}
	return nil
}

type directRow struct {
	ID             uuid.UUID       `db:"id"`
	Status         string          `db:"status"`
	NomeCliente    sql.NullString  `db:"nome_cliente"`
	Nome           sql.NullString  `db:"nome"`
	Email          sql.NullString  `db:"email"`
	Telefone       sql.NullString  `db:"telefone"`
	Whatsapp       sql.NullString  `db:"whatsapp"`
	CPF            sql.NullString  `db:"cpf"`
	DataNascimento *time.Time      `db:"data_nascimento"`
	Valor          sql.NullFloat64 `db:"valor"`
	ValorPlano     sql.NullFloat64 `db:"valor_plano"`
	ProdutoID      *uuid.UUID      `db:"produto_id"`
	TabelaID       *uuid.UUID      `db:"tabela_id"`
	CorretorNome   sql.NullString  `db:"corretor_nome"`
	CorretorEmail  sql.NullString  `db:"corretor_email"`
	MotivoRejeicao sql.NullString  `db:"motivo_rejeicao"`
	Assinatura     sql.NullString  `db:"assinatura"`
	TermosAceitos  bool            `db:"termos_aceitos"`
	DataAssinatura *time.Time      `db:"data_assinatura"`
	LinkValidacao  sql.NullString  `db:"link_validacao"`
	EmailEnviadoEm *time.Time      `db:"email_enviado_em"`
	DocumentosURLs types.JSONText  `db:"documentos_urls"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}

func (r *directRow) toRecord() *entity.DirectProposalRecord {
	return &entity.DirectProposalRecord{
		ID:              r.ID,
		Status:          r.Status,
		ClientName:      r.NomeCliente.String,
		Name:            r.Nome.String,
		Email:           r.Email.String,
		Phone:           r.Telefone.String,
		WhatsApp:        r.Whatsapp.String,
		CPF:             r.CPF.String,
		BirthDate:       r.DataNascimento,
		Value:           r.Valor.Float64,
		PlanValue:       r.ValorPlano.Float64,
		ProductID:       r.ProdutoID,
		TableID:         r.TabelaID,
		BrokerName:      r.CorretorNome.String,
		BrokerEmail:     r.CorretorEmail.String,
		RejectionReason: r.MotivoRejeicao.String,
		Signature:       r.Assinatura.String,
		TermsAccepted:   r.TermosAceitos,
		SignedAt:        r.DataAssinatura,
		ValidationLink:  r.LinkValidacao.String,
		EmailSentAt:     r.EmailEnviadoEm,
		DocumentURLs:    decodeDocuments(r.DocumentosURLs),
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

type brokerRow struct {
	ID                       uuid.UUID       `db:"id"`
	Status                   string          `db:"status"`
	Cliente                  sql.NullString  `db:"cliente"`
	NomeCliente              sql.NullString  `db:"nome_cliente"`
	EmailCliente             sql.NullString  `db:"email_cliente"`
	Email                    sql.NullString  `db:"email"`
	WhatsappCliente          sql.NullString  `db:"whatsapp_cliente"`
	Telefone                 sql.NullString  `db:"telefone"`
	CPFCliente               sql.NullString  `db:"cpf_cliente"`
	DataNascimento           *time.Time      `db:"data_nascimento"`
	ValorProposta            sql.NullFloat64 `db:"valor_proposta"`
	Valor                    sql.NullFloat64 `db:"valor"`
	ProdutoID                *uuid.UUID      `db:"produto_id"`
	TabelaID                 *uuid.UUID      `db:"tabela_id"`
	CorretorID               *uuid.UUID      `db:"corretor_id"`
	CorretorNome             sql.NullString  `db:"corretor_nome"`
	CorretorEmail            sql.NullString  `db:"corretor_email"`
	MotivoRejeicao           sql.NullString  `db:"motivo_rejeicao"`
	Assinatura               sql.NullString  `db:"assinatura"`
	TermosAceitos            bool            `db:"termos_aceitos"`
	DataAssinatura           *time.Time      `db:"data_assinatura"`
	LinkValidacao            sql.NullString  `db:"link_validacao"`
	EmailEnviadoEm           *time.Time      `db:"email_enviado_em"`
	DocumentosURLs           types.JSONText  `db:"documentos_urls"`
	RGFrenteURL              sql.NullString  `db:"rg_frente_url"`
	RGVersoURL               sql.NullString  `db:"rg_verso_url"`
	CPFURL                   sql.NullString  `db:"cpf_url"`
	ComprovanteResidenciaURL sql.NullString  `db:"comprovante_residencia_url"`
	CNSURL                   sql.NullString  `db:"cns_url"`
	CreatedAt                time.Time       `db:"created_at"`
	UpdatedAt                time.Time       `db:"updated_at"`
}

func (r *brokerRow) toRecord() *entity.BrokerProposalRecord {
	return &entity.BrokerProposalRecord{
		ID:                r.ID,
		Status:            r.Status,
		Client:            r.Cliente.String,
		ClientName:        r.NomeCliente.String,
		ClientEmail:       r.EmailCliente.String,
		Email:             r.Email.String,
		ClientWhatsApp:    r.WhatsappCliente.String,
		Phone:             r.Telefone.String,
		CPF:               r.CPFCliente.String,
		BirthDate:         r.DataNascimento,
		ProposalValue:     r.ValorProposta.Float64,
		Value:             r.Valor.Float64,
		ProductID:         r.ProdutoID,
		TableID:           r.TabelaID,
		BrokerID:          r.CorretorID,
		BrokerName:        r.CorretorNome.String,
		BrokerEmail:       r.CorretorEmail.String,
		RejectionReason:   r.MotivoRejeicao.String,
		Signature:         r.Assinatura.String,
		TermsAccepted:     r.TermosAceitos,
		SignedAt:          r.DataAssinatura,
		ValidationLink:    r.LinkValidacao.String,
		EmailSentAt:       r.EmailEnviadoEm,
		DocumentURLs:      decodeDocuments(r.DocumentosURLs),
		RGFrontURL:        r.RGFrenteURL.String,
		RGBackURL:         r.RGVersoURL.String,
		CPFURL:            r.CPFURL.String,
		ProofOfAddressURL: r.ComprovanteResidenciaURL.String,
		CNSURL:            r.CNSURL.String,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}

type dependentRow struct {
	ID             uuid.UUID  `db:"id"`
	PropostaID     uuid.UUID  `db:"proposta_id"`
	Nome           string     `db:"nome"`
	CPF            string     `db:"cpf"`
	DataNascimento *time.Time `db:"data_nascimento"`
	Parentesco     string     `db:"parentesco"`
	Valor          float64    `db:"valor_individual"`
	CreatedAt      time.Time  `db:"created_at"`
}

func (r *dependentRow) toEntity() *entity.Dependent {
	return &entity.Dependent{
		ID:         r.ID,
		ProposalID: r.PropostaID,
		Name:       r.Nome,
		CPF:        r.CPF,
		BirthDate:  r.DataNascimento,
		Kinship:    r.Parentesco,
		Value:      r.Valor,
		CreatedAt:  r.CreatedAt,
	}
}

// decodeDocuments читает documentos_urls. Нестроковые значения и битый JSON
// игнорируются: старые строки иногда хранили там массивы.
func decodeDocuments(raw types.JSONText) map[string]string {
	out := map[string]string{}
	if len(raw) == 0 {
		return out
	}
	var generic map[string]any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return out
	}
	for k, v := range generic {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}

func encodeDocuments(docs map[string]string) (types.JSONText, error) {
	if docs == nil {
		docs = map[string]string{}
	}
	raw, err := json.Marshal(docs)
	if err != nil {
		return nil, err
	}
	return types.JSONText(raw), nil
}

func statusArg(filter repository.ProposalFilter) *string {
	if filter.Status == nil {
		return nil
	}
	s := string(*filter.Status)
	return &s
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
