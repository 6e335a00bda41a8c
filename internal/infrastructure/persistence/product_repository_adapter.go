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

type ProductRepositoryAdapter struct {
	db *sqlx.DB
}

func NewProductRepositoryAdapter(db *sqlx.DB) *ProductRepositoryAdapter {
	return &ProductRepositoryAdapter{db: db}
}

const productColumns = `id, nome, operadora, tipo, comissao, descricao, disponivel, created_at, updated_at`

func (r *ProductRepositoryAdapter) List(ctx context.Context, onlyAvailable bool) ([]*entity.Product, error) {
	var rows []productRow
	query := `SELECT ` + productColumns + ` FROM produtos_corretores WHERE (NOT $1 OR disponivel) ORDER BY nome`
	if err := r.db.SelectContext(ctx, &rows, query, onlyAvailable); err != nil {
		return nil, apperror.Persistence(err, "não foi possível carregar os produtos")
	}
	result := make([]*entity.Product, len(rows))
	for i := range rows {
		result[i] = rows[i].toEntity()
	}
	return result, nil
}

func (r *ProductRepositoryAdapter) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var row productRow
	if err := r.db.GetContext(ctx, &row, `SELECT `+productColumns+` FROM produtos_corretores WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrProductNotFound
		}
		return nil, apperror.Persistence(err, "não foi possível carregar o produto")
	}
	return row.toEntity(), nil
}

func (r *ProductRepositoryAdapter) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO produtos_corretores (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	if _, err := r.db.ExecContext(ctx, query,
		p.ID, p.Name, p.Operator, p.Type, p.Commission, p.Description, p.Available, p.CreatedAt, p.UpdatedAt,
	); err != nil {
		return apperror.Persistence(err, "não foi possível criar o produto")
	}
	return nil
}

func (r *ProductRepositoryAdapter) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE produtos_corretores SET nome = $2, operadora = $3, tipo = $4, comissao = $5,
		descricao = $6, disponivel = $7, updated_at = $8
		WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query,
		p.ID, p.Name, p.Operator, p.Type, p.Commission, p.Description, p.Available, p.UpdatedAt)
	if err != nil {
		return apperror.Persistence(err, "não foi possível atualizar o produto")
	}
	return expectOne(res, apperror.ErrProductNotFound)
}

func (r *ProductRepositoryAdapter) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM produtos_corretores WHERE id = $1`, id)
	if err != nil {
		return apperror.Persistence(err, "não foi possível excluir o produto")
	}
	return expectOne(res, apperror.ErrProductNotFound)
}

func (r *ProductRepositoryAdapter) LinkTable(ctx context.Context, l *entity.ProductTableLink) error {
	query := `
		INSERT INTO produto_tabela_relacao (id, produto_id, tabela_id, segmentacao, descricao, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.db.ExecContext(ctx, query,
		l.ID, l.ProductID, l.TableID, l.Segmentation, l.Description, l.CreatedAt,
	); err != nil {
		return apperror.Persistence(err, "não foi possível vincular a tabela ao produto")
	}
	return nil
}

func (r *ProductRepositoryAdapter) UnlinkTable(ctx context.Context, linkID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM produto_tabela_relacao WHERE id = $1`, linkID)
	if err != nil {
		return apperror.Persistence(err, "não foi possível remover o vínculo")
	}
	return expectOne(res, apperror.ErrLinkNotFound)
}

func (r *ProductRepositoryAdapter) ListTables(ctx context.Context, productID uuid.UUID) ([]*entity.ProductTableLink, error) {
	var rows []productTableRow
	query := `
		SELECT r.id, r.produto_id, r.tabela_id, r.segmentacao, r.descricao, r.created_at,
			t.titulo AS tabela_titulo
		FROM produto_tabela_relacao r
		JOIN tabelas_precos t ON t.id = r.tabela_id
		WHERE r.produto_id = $1
		ORDER BY r.created_at, r.id`
	if err := r.db.SelectContext(ctx, &rows, query, productID); err != nil {
		return nil, apperror.Persistence(err, "não foi possível carregar as tabelas do produto")
	}
	result := make([]*entity.ProductTableLink, len(rows))
	for i, row := range rows {
		result[i] = &entity.ProductTableLink{
			ID:           row.ID,
			ProductID:    row.ProdutoID,
			TableID:      row.TabelaID,
			Segmentation: row.Segmentacao,
			Description:  row.Descricao,
			TableTitle:   row.TabelaTitulo,
			CreatedAt:    row.CreatedAt,
		}
	}
	return result, nil
}

type productRow struct {
	ID         uuid.UUID `db:"id"`
	Nome       string    `db:"nome"`
	Operadora  string    `db:"operadora"`
	Tipo       string    `db:"tipo"`
	Comissao   string    `db:"comissao"`
	Descricao  string    `db:"descricao"`
	Disponivel bool      `db:"disponivel"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

func (r *productRow) toEntity() *entity.Product {
	return &entity.Product{
		ID:          r.ID,
		Name:        r.Nome,
		Operator:    r.Operadora,
		Type:        r.Tipo,
		Commission:  r.Comissao,
		Description: r.Descricao,
		Available:   r.Disponivel,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

type productTableRow struct {
	ID           uuid.UUID `db:"id"`
	ProdutoID    uuid.UUID `db:"produto_id"`
	TabelaID     uuid.UUID `db:"tabela_id"`
	Segmentacao  string    `db:"segmentacao"`
	Descricao    string    `db:"descricao"`
	CreatedAt    time.Time `db:"created_at"`
	TabelaTitulo string    `db:"tabela_titulo"`
}
