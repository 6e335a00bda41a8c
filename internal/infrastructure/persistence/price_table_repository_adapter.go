package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/matheusgmdr7/contratando2/internal/domain/entity"
	"github.com/matheusgmdr7/contratando2/internal/pkg/apperror"
)

type PriceTableRepositoryAdapter struct {
	db *sqlx.DB
}

func NewPriceTableRepositoryAdapter(db *sqlx.DB) *PriceTableRepositoryAdapter {
	return &PriceTableRepositoryAdapter{db: db}
}

func (r *PriceTableRepositoryAdapter) List(ctx context.Context) ([]*entity.PriceTable, error) {
	var rows []priceTableRow
	query := `
		SELECT id, titulo, descricao, operadora, tipo_plano, ativo, created_at, updated_at
		FROM tabelas_precos ORDER BY titulo`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, apperror.Persistence(err, "não foi possível carregar as tabelas de preços")
	}
	result := make([]*entity.PriceTable, len(rows))
	for i := range rows {
		result[i] = rows[i].toEntity()
	}
	return result, nil
}

func (r *PriceTableRepositoryAdapter) FindByID(ctx context.Context, id uuid.UUID) (*entity.PriceTable, error) {
	var row priceTableRow
	query := `
		SELECT id, titulo, descricao, operadora, tipo_plano, ativo, created_at, updated_at
		FROM tabelas_precos WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrPriceTableNotFound
		}
		return nil, apperror.Persistence(err, "não foi possível carregar a tabela de preços")
	}
	return row.toEntity(), nil
}

func (r *PriceTableRepositoryAdapter) Create(ctx context.Context, t *entity.PriceTable) error {
	query := `
		INSERT INTO tabelas_precos (id, titulo, descricao, operadora, tipo_plano, ativo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	if _, err := r.db.ExecContext(ctx, query,
		t.ID, t.Title, t.Description, t.Operator, t.PlanType, t.Active, t.CreatedAt, t.UpdatedAt,
	); err != nil {
		return apperror.Persistence(err, "não foi possível criar a tabela de preços")
	}
	return nil
}

func (r *PriceTableRepositoryAdapter) Update(ctx context.Context, t *entity.PriceTable) error {
	query := `
		UPDATE tabelas_precos SET titulo = $2, descricao = $3, operadora = $4, tipo_plano = $5,
		ativo = $6, updated_at = $7
		WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, t.ID, t.Title, t.Description, t.Operator, t.PlanType, t.Active, t.UpdatedAt)
	if err != nil {
		return apperror.Persistence(err, "não foi possível atualizar a tabela de preços")
	}
	return expectOne(res, apperror.ErrPriceTableNotFound)
}

func (r *PriceTableRepositoryAdapter) ListBrackets(ctx context.Context, tableID uuid.UUID) ([]entity.PriceBracket, error) {
	var rows []bracketRow
	query := `
		SELECT id, tabela_id, faixa_etaria, valor, created_at
		FROM tabelas_precos_faixas WHERE tabela_id = $1 ORDER BY created_at, id`
	if err := r.db.SelectContext(ctx, &rows, query, tableID); err != nil {
		return nil, apperror.Persistence(err, "não foi possível carregar as faixas etárias")
	}
	result := make([]entity.PriceBracket, len(rows))
	for i := range rows {
		result[i] = rows[i].toEntity()
	}
	return result, nil
}

func (r *PriceTableRepositoryAdapter) FindBracket(ctx context.Context, id uuid.UUID) (*entity.PriceBracket, error) {
	var row bracketRow
	query := `SELECT id, tabela_id, faixa_etaria, valor, created_at FROM tabelas_precos_faixas WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrBracketNotFound
		}
		return nil, apperror.Persistence(err, "não foi possível carregar a faixa etária")
	}
	b := row.toEntity()
	return &b, nil
}

func (r *PriceTableRepositoryAdapter) CreateBracket(ctx context.Context, b *entity.PriceBracket) error {
	query := `
		INSERT INTO tabelas_precos_faixas (id, tabela_id, faixa_etaria, valor, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.db.ExecContext(ctx, query, b.ID, b.TableID, b.Label, b.Value, b.CreatedAt); err != nil {
		return apperror.Persistence(err, "não foi possível criar a faixa etária")
	}
	return nil
}

func (r *PriceTableRepositoryAdapter) UpdateBracket(ctx context.Context, b *entity.PriceBracket) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tabelas_precos_faixas SET faixa_etaria = $2, valor = $3 WHERE id = $1`,
		b.ID, b.Label, b.Value)
	if err != nil {
		return apperror.Persistence(err, "não foi possível atualizar a faixa etária")
	}
	return expectOne(res, apperror.ErrBracketNotFound)
}

func (r *PriceTableRepositoryAdapter) DeleteBracket(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tabelas_precos_faixas WHERE id = $1`, id)
	if err != nil {
		return apperror.Persistence(err, "não foi possível remover a faixa etária")
	}
	return expectOne(res, apperror.ErrBracketNotFound)
}

type priceTableRow struct {
	ID        uuid.UUID `db:"id"`
	Titulo    string    `db:"titulo"`
	Descricao string    `db:"descricao"`
	Operadora string    `db:"operadora"`
	TipoPlano string    `db:"tipo_plano"`
	Ativo     bool      `db:"ativo"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r *priceTableRow) toEntity() *entity.PriceTable {
	return &entity.PriceTable{
		ID:          r.ID,
		Title:       r.Titulo,
		Description: r.Descricao,
		Operator:    r.Operadora,
		PlanType:    r.TipoPlano,
		Active:      r.Ativo,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

type bracketRow struct {
	ID          uuid.UUID `db:"id"`
	TabelaID    uuid.UUID `db:"tabela_id"`
	FaixaEtaria string    `db:"faixa_etaria"`
	Valor       float64   `db:"valor"`
	CreatedAt   time.Time `db:"created_at"`
}

func (r *bracketRow) toEntity() entity.PriceBracket {
	return entity.PriceBracket{
		ID:        r.ID,
		TableID:   r.TabelaID,
		Label:     r.FaixaEtaria,
		Value:     r.Valor,
		CreatedAt: r.CreatedAt,
	}
}

// expectOne превращает "0 затронутых строк" в переданную ошибку NotFound.
func expectOne(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return apperror.Persistence(err, "não foi possível confirmar a alteração")
	}
	if n == 0 {
		return notFound
	}
	return nil
}
