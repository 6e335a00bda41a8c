package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/matheusgmdr7/contratando2/internal/domain/valueobject"
)

type Commission struct {
	ID          uuid.UUID
	BrokerID    uuid.UUID
	ProposalID  *uuid.UUID
	Description string
	Value       float64
	Percentage  string
	Status      valueobject.CommissionStatus
	Date        *time.Time
	PaidAt      *time.Time
	CreatedAt   time.Time
}

// MarkPaid переводит комиссию в pago. Если дата не передана, берётся now.
func (c *Commission) MarkPaid(paidAt *time.Time) {
	c.Status = valueobject.CommissionStatusPaid
	if paidAt == nil {
		now := time.Now()
		paidAt = &now
	}
	c.PaidAt = paidAt
}

func (c *Commission) MarkPending() {
	c.Status = valueobject.CommissionStatusPending
	c.PaidAt = nil
}

// ReferenceDate — дата, по которой комиссия попадает в месяц сводки.
func (c *Commission) ReferenceDate() time.Time {
	if c.Date != nil {
		return *c.Date
	}
	return c.CreatedAt
}

type CommissionSummary struct {
	TotalPending float64
	TotalPaid    float64
	ByMonth      map[string]float64
}

// Summarize считает итоги по статусам и по месяцам (ключ "YYYY-MM").
func Summarize(commissions []*Commission) CommissionSummary {
	summary := CommissionSummary{ByMonth: make(map[string]float64)}
	for _, c := range commissions {
		switch c.Status {
		case valueobject.CommissionStatusPending:
			summary.TotalPending += c.Value
		case valueobject.CommissionStatusPaid:
			summary.TotalPaid += c.Value
		}
		summary.ByMonth[c.ReferenceDate().Format("2006-01")] += c.Value
	}
	return summary
}
