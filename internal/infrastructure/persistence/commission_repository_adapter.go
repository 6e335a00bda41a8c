package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/matheusgmdr7/contratando2/internal/domain/entity"
	"github.com/matheusgmdr7/contratando2/internal/domain/valueobject"
	"github.com/matheusgmdr7/contratando2/internal/pkg/apperror"
)

type CommissionRepositoryAdapter struct {
	db *sqlx.DB
}

func NewCommissionRepositoryAdapter(db *sqlx.DB) *CommissionRepositoryAdapter {
	return &CommissionRepositoryAdapter{db: db}
}

const commissionColumns = `id, corretor_id, proposta_id, descricao, valor, percentual, status, data, data_pagamento, created_at`

func (r *CommissionRepositoryAdapter) ListByBroker(ctx context.Context, brokerID uuid.UUID) ([]*entity.Commission, error) {
	var rows []commissionRow
	query := `SELECT ` + commissionColumns + ` FROM comissoes WHERE corretor_id = $1 ORDER BY data DESC NULLS LAST, created_at DESC`
	if err := r.db.SelectContext(ctx, &rows, query, brokerID); err != nil {
		return nil, apperror.Persistence(err, "erro ao buscar comissões")
	}
	result := make([]*entity.Commission, len(rows))
	for i := range rows {
		result[i] = rows[i].toEntity()
	}
	return result, nil
}

func (r *CommissionRepositoryAdapter) FindByID(ctx context.Context, id uuid.UUID) (*entity.Commission, error) {
	var row commissionRow
	if err := r.db.GetContext(ctx, &row, `SELECT `+commissionColumns+` FROM comissoes WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrCommissionNotFound
		}
		return nil, apperror.Persistence(err, "erro ao buscar comissão")
	}
	return row.toEntity(), nil
}

func (r *CommissionRepositoryAdapter) Update(ctx context.Context, c *entity.Commission) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE comissoes SET status = $2, data_pagamento = $3 WHERE id = $1`,
		c.ID, string(c.Status), c.PaidAt)
	if err != nil {
		return apperror.Persistence(err, "erro ao atualizar status da comissão")
	}
	return expectOne(res, apperror.ErrCommissionNotFound)
}

type commissionRow struct {
	ID            uuid.UUID  `db:"id"`
	CorretorID    uuid.UUID  `db:"corretor_id"`
	PropostaID    *uuid.UUID `db:"proposta_id"`
	Descricao     string     `db:"descricao"`
	Valor         float64    `db:"valor"`
	Percentual    string     `db:"percentual"`
	Status        string     `db:"status"`
	Data          *time.Time `db:"data"`
	DataPagamento *time.Time `db:"data_pagamento"`
	CreatedAt     time.Time  `db:"created_at"`
}

func (r *commissionRow) toEntity() *entity.Commission {
	return &entity.Commission{
		ID:          r.ID,
		BrokerID:    r.CorretorID,
		ProposalID:  r.PropostaID,
		Description: r.Descricao,
		Value:       r.Valor,
		Percentage:  r.Percentual,
		Status:      valueobject.CommissionStatus(r.Status),
		Date:        r.Data,
		PaidAt:      r.DataPagamento,
		CreatedAt:   r.CreatedAt,
	}
}
