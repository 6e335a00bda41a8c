package pricetable

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/matheusgmdr7/contratando2/internal/domain/entity"
	"github.com/matheusgmdr7/contratando2/internal/domain/pricing"
	"github.com/matheusgmdr7/contratando2/internal/domain/repository"
	"github.com/matheusgmdr7/contratando2/internal/logger"
	"github.com/matheusgmdr7/contratando2/internal/pkg/apperror"
	"github.com/matheusgmdr7/contratando2/internal/validation"
)

type TableInput struct {
	Title       string
	Description string
	Operator    string
	PlanType    string
	Active      bool
}

// TableDetails — таблица с faixas в порядке хранения и найденными пересечениями.
type TableDetails struct {
	Table    *entity.PriceTable
	Overlaps []pricing.Overlap
}

func requireAdmin(session entity.Session) error {
	if !session.IsAdmin() {
		return apperror.ErrForbidden
	}
	return nil
}

type ListPriceTablesUseCase struct {
	tables repository.PriceTableRepository
}

func NewListPriceTablesUseCase(tables repository.PriceTableRepository) *ListPriceTablesUseCase {
	return &ListPriceTablesUseCase{tables: tables}
}

func (uc *ListPriceTablesUseCase) Execute(ctx context.Context) ([]*entity.PriceTable, error) {
	tables, err := uc.tables.List(ctx)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(tables, func(a, b *entity.PriceTable) int {
		return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
	})
	return tables, nil
}

type GetPriceTableUseCase struct {
	tables repository.PriceTableRepository
}

func NewGetPriceTableUseCase(tables repository.PriceTableRepository) *GetPriceTableUseCase {
	return &GetPriceTableUseCase{tables: tables}
}

func (uc *GetPriceTableUseCase) Execute(ctx context.Context, id uuid.UUID) (*TableDetails, error) {
	table, err := uc.tables.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	brackets, err := uc.tables.ListBrackets(ctx, id)
	if err != nil {
		return nil, err
	}
	table.Brackets = brackets
	return &TableDetails{Table: table, Overlaps: pricing.FindOverlaps(brackets)}, nil
}

type CreatePriceTableUseCase struct {
	tables repository.PriceTableRepository
}

func NewCreatePriceTableUseCase(tables repository.PriceTableRepository) *CreatePriceTableUseCase {
	return &CreatePriceTableUseCase{tables: tables}
}

func (uc *CreatePriceTableUseCase) Execute(ctx context.Context, session entity.Session, input TableInput) (*entity.PriceTable, error) {
	if err := requireAdmin(session); err != nil {
		return nil, err
	}
	if err := validation.ValidateLength("descrição", input.Description, 0, validation.MaxDescriptionLen); err != nil {
		return nil, err
	}
	table, err := entity.NewPriceTable(input.Title, input.Description, input.Operator, input.PlanType, input.Active)
	if err != nil {
		return nil, err
	}
	if err := uc.tables.Create(ctx, table); err != nil {
		return nil, err
	}
	return table, nil
}

type UpdatePriceTableUseCase struct {
	tables repository.PriceTableRepository
}

func NewUpdatePriceTableUseCase(tables repository.PriceTableRepository) *UpdatePriceTableUseCase {
	return &UpdatePriceTableUseCase{tables: tables}
}

func (uc *UpdatePriceTableUseCase) Execute(ctx context.Context, session entity.Session, id uuid.UUID, input TableInput) (*entity.PriceTable, error) {
	if err := requireAdmin(session); err != nil {
		return nil, err
	}
	table, err := uc.tables.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	updated, err := entity.NewPriceTable(input.Title, input.Description, input.Operator, input.PlanType, input.Active)
	if err != nil {
		return nil, err
	}

	table.Title = updated.Title
	table.Description = updated.Description
	table.Operator = updated.Operator
	table.PlanType = updated.PlanType
	table.Active = updated.Active
	table.UpdatedAt = time.Now()
	if err := uc.tables.Update(ctx, table); err != nil {
		return nil, err
	}
	return table, nil
}

// BracketUseCase добавляет, меняет и удаляет faixas. Пересечения не
// запрещены: первая подходящая faixa выигрывает, пересечение только логируется.
type BracketUseCase struct {
	tables repository.PriceTableRepository
	log    *logrus.Entry
}

func NewBracketUseCase(tables repository.PriceTableRepository) *BracketUseCase {
	return &BracketUseCase{tables: tables, log: logger.Component("pricetable")}
}

func (uc *BracketUseCase) Add(ctx context.Context, session entity.Session, tableID uuid.UUID, label string, value float64) (*entity.PriceBracket, error) {
	if err := requireAdmin(session); err != nil {
		return nil, err
	}
	if _, err := uc.tables.FindByID(ctx, tableID); err != nil {
		return nil, err
	}
	bracket, err := entity.NewPriceBracket(tableID, label, value)
	if err != nil {
		return nil, err
	}
	if err := uc.tables.CreateBracket(ctx, bracket); err != nil {
		return nil, err
	}
	uc.warnOverlaps(ctx, tableID)
	return bracket, nil
}

func (uc *BracketUseCase) Update(ctx context.Context, session entity.Session, id uuid.UUID, label string, value float64) (*entity.PriceBracket, error) {
	if err := requireAdmin(session); err != nil {
		return nil, err
	}
	current, err := uc.tables.FindBracket(ctx, id)
	if err != nil {
		return nil, err
	}
	checked, err := entity.NewPriceBracket(current.TableID, label, value)
	if err != nil {
		return nil, err
	}

	current.Label = checked.Label
	current.Value = checked.Value
	if err := uc.tables.UpdateBracket(ctx, current); err != nil {
		return nil, err
	}
	uc.warnOverlaps(ctx, current.TableID)
	return current, nil
}

func (uc *BracketUseCase) Remove(ctx context.Context, session entity.Session, id uuid.UUID) error {
	if err := requireAdmin(session); err != nil {
		return err
	}
	return uc.tables.DeleteBracket(ctx, id)
}

func (uc *BracketUseCase) warnOverlaps(ctx context.Context, tableID uuid.UUID) {
	brackets, err := uc.tables.ListBrackets(ctx, tableID)
	if err != nil {
		uc.log.WithError(err).WithField("table_id", tableID).Warn("pricetable: не удалось проверить пересечения")
		return
	}
	for _, o := range pricing.FindOverlaps(brackets) {
		uc.log.WithFields(logrus.Fields{
			"table_id": tableID,
			"first":    o.First,
			"second":   o.Second,
		}).Warn("pricetable: faixas пересекаются, применяется первая")
	}
}
