package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"

	"github.com/matheusgmdr7/contratando2/internal/domain/entity"
	"github.com/matheusgmdr7/contratando2/internal/domain/valueobject"
	"github.com/matheusgmdr7/contratando2/internal/pkg/apperror"
)

type AdminUserRepositoryAdapter struct {
	db *sqlx.DB
}

func NewAdminUserRepositoryAdapter(db *sqlx.DB) *AdminUserRepositoryAdapter {
	return &AdminUserRepositoryAdapter{db: db}
}

const adminColumns = `id, nome, email, senha_hash, perfil, status, permissoes, criado_por, ultimo_acesso, criado_em, atualizado_em`

func (r *AdminUserRepositoryAdapter) List(ctx context.Context) ([]*entity.AdminUser, error) {
	var rows []adminUserRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT `+adminColumns+` FROM usuarios_admin ORDER BY criado_em DESC`); err != nil {
		return nil, apperror.Persistence(err, "erro ao buscar usuários administrativos")
	}
	result := make([]*entity.AdminUser, len(rows))
	for i := range rows {
		result[i] = rows[i].toEntity()
	}
	return result, nil
}

func (r *AdminUserRepositoryAdapter) FindByID(ctx context.Context, id uuid.UUID) (*entity.AdminUser, error) {
	var row adminUserRow
	if err := r.db.GetContext(ctx, &row, `SELECT `+adminColumns+` FROM usuarios_admin WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrAdminUserNotFound
		}
		return nil, apperror.Persistence(err, "erro ao buscar usuário")
	}
	return row.toEntity(), nil
}

func (r *AdminUserRepositoryAdapter) FindByEmail(ctx context.Context, email string) (*entity.AdminUser, error) {
	var row adminUserRow
	query := `SELECT ` + adminColumns + ` FROM usuarios_admin WHERE email = $1`
	if err := r.db.GetContext(ctx, &row, query, strings.ToLower(strings.TrimSpace(email))); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.Persistence(err, "erro ao buscar usuário")
	}
	return row.toEntity(), nil
}

func (r *AdminUserRepositoryAdapter) Create(ctx context.Context, u *entity.AdminUser) error {
	perms, err := json.Marshal(u.Permissions)
	if err != nil {
		return apperror.Persistence(err, "erro ao criar usuário administrativo")
	}
	query := `
		INSERT INTO usuarios_admin (` + adminColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	if _, err := r.db.ExecContext(ctx, query,
		u.ID, u.Name, u.Email, u.PasswordHash, string(u.Profile), string(u.Status), types.JSONText(perms),
		u.CreatedBy, u.LastAccessAt, u.CreatedAt, u.UpdatedAt,
	); err != nil {
		return apperror.Persistence(err, "erro ao criar usuário administrativo")
	}
	return nil
}

func (r *AdminUserRepositoryAdapter) Update(ctx context.Context, u *entity.AdminUser) error {
	perms, err := json.Marshal(u.Permissions)
	if err != nil {
		return apperror.Persistence(err, "erro ao atualizar usuário")
	}
	query := `
		UPDATE usuarios_admin SET nome = $2, email = $3, senha_hash = $4, perfil = $5, status = $6,
		permissoes = $7, atualizado_em = $8
		WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query,
		u.ID, u.Name, u.Email, u.PasswordHash, string(u.Profile), string(u.Status), types.JSONText(perms), u.UpdatedAt)
	if err != nil {
		return apperror.Persistence(err, "erro ao atualizar usuário")
	}
	return expectOne(res, apperror.ErrAdminUserNotFound)
}

func (r *AdminUserRepositoryAdapter) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM usuarios_admin WHERE id = $1`, id)
	if err != nil {
		return apperror.Persistence(err, "erro ao excluir usuário")
	}
	return expectOne(res, apperror.ErrAdminUserNotFound)
}

func (r *AdminUserRepositoryAdapter) TouchLastAccess(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE usuarios_admin SET ultimo_acesso = NOW() WHERE id = $1`, id); err != nil {
		return apperror.Persistence(err, "erro ao registrar último acesso")
	}
	return nil
}

func (r *AdminUserRepositoryAdapter) ProfilePermissions(ctx context.Context, profile valueobject.AdminProfile) (entity.Permissions, error) {
	var rows []struct {
		Modulo     string         `db:"modulo"`
		Permissoes types.JSONText `db:"permissoes"`
	}
	if err := r.db.SelectContext(ctx, &rows,
		`SELECT modulo, permissoes FROM perfis_permissoes WHERE perfil = $1 ORDER BY modulo`, string(profile),
	); err != nil {
		return nil, apperror.Persistence(err, "erro ao buscar permissões do perfil")
	}
	perms := make(entity.Permissions, len(rows))
	for _, row := range rows {
		actions := map[string]bool{}
		_ = json.Unmarshal(row.Permissoes, &actions)
		perms[row.Modulo] = actions
	}
	return perms, nil
}

type adminUserRow struct {
	ID           uuid.UUID      `db:"id"`
	Nome         string         `db:"nome"`
	Email        string         `db:"email"`
	SenhaHash    string         `db:"senha_hash"`
	Perfil       string         `db:"perfil"`
	Status       string         `db:"status"`
	Permissoes   types.JSONText `db:"permissoes"`
	CriadoPor    *uuid.UUID     `db:"criado_por"`
	UltimoAcesso *time.Time     `db:"ultimo_acesso"`
	CriadoEm     time.Time      `db:"criado_em"`
	AtualizadoEm time.Time      `db:"atualizado_em"`
}

func (r *adminUserRow) toEntity() *entity.AdminUser {
	perms := entity.Permissions{}
	_ = json.Unmarshal(r.Permissoes, &perms)
	return &entity.AdminUser{
		ID:           r.ID,
		Name:         r.Nome,
		Email:        r.Email,
		PasswordHash: r.SenhaHash,
		Profile:      valueobject.AdminProfile(r.Perfil),
		Status:       valueobject.AdminStatus(r.Status),
		Permissions:  perms,
		CreatedBy:    r.CriadoPor,
		LastAccessAt: r.UltimoAcesso,
		CreatedAt:    r.CriadoEm,
		UpdatedAt:    r.AtualizadoEm,
	}
}

type BrokerRepositoryAdapter struct {
	db *sqlx.DB
}

func NewBrokerRepositoryAdapter(db *sqlx.DB) *BrokerRepositoryAdapter {
	return &BrokerRepositoryAdapter{db: db}
}

func (r *BrokerRepositoryAdapter) FindByID(ctx context.Context, id uuid.UUID) (*entity.Broker, error) {
	var row brokerAccountRow
	query := `SELECT id, nome, email, telefone, senha_hash, aprovado FROM corretores WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrBrokerNotFound
		}
		return nil, apperror.Persistence(err, "erro ao buscar corretor")
	}
	return row.toEntity(), nil
}

func (r *BrokerRepositoryAdapter) FindByEmail(ctx context.Context, email string) (*entity.Broker, error) {
	var row brokerAccountRow
	query := `SELECT id, nome, email, telefone, senha_hash, aprovado FROM corretores WHERE email = $1`
	if err := r.db.GetContext(ctx, &row, query, strings.ToLower(strings.TrimSpace(email))); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.Persistence(err, "erro ao buscar corretor")
	}
	return row.toEntity(), nil
}

type brokerAccountRow struct {
	ID        uuid.UUID `db:"id"`
	Nome      string    `db:"nome"`
	Email     string    `db:"email"`
	Telefone  string    `db:"telefone"`
	SenhaHash string    `db:"senha_hash"`
	Aprovado  bool      `db:"aprovado"`
}

func (r *brokerAccountRow) toEntity() *entity.Broker {
	return &entity.Broker{
		ID:           r.ID,
		Name:         r.Nome,
		Email:        r.Email,
		Phone:        r.Telefone,
		PasswordHash: r.SenhaHash,
		Approved:     r.Aprovado,
	}
}
