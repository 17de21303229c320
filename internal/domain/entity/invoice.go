package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice statuses. An invoice is immutable once issued except for the status
// itself: draft -> issued -> paid | cancelled.
const (
	InvoiceStatusDraft     = "draft"
	InvoiceStatusIssued    = "issued"
	InvoiceStatusPaid      = "paid"
	InvoiceStatusCancelled = "cancelled"
)

// InvoiceJob is the stored per-takeoff summary row. Line-item detail is never
// persisted; it is recomputed from the takeoff and the price list as of
// GeneratedDate whenever the invoice is redisplayed.
type InvoiceJob struct {
	ID        string
	InvoiceID string
	TakeoffID string
	Position  int // 0-based input order, drives the printed column
	Subtotal  decimal.Decimal
	Tax       decimal.Decimal
	Total     decimal.Decimal
}

// Invoice is the persisted billing aggregate. It references its source
// takeoffs by ID only and never mutates them beyond the status flip at
// generation time.
type Invoice struct {
	ID            string
	TenantID      string
	Number        string // INV-{year}-{seq}
	GeneratedBy   string // user ID
	Jobs          []InvoiceJob
	Subtotal      decimal.Decimal
	Tax           decimal.Decimal
	Total         decimal.Decimal
	Status        string
	GeneratedDate time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// legal status transitions
var invoiceTransitions = map[string][]string{
	InvoiceStatusDraft:  {InvoiceStatusIssued},
	InvoiceStatusIssued: {InvoiceStatusPaid, InvoiceStatusCancelled},
}

// CanTransition reports whether moving from the current status to the given
// one is legal.
func (i *Invoice) CanTransition(to string) bool {
	for _, allowed := range invoiceTransitions[i.Status] {
		if allowed == to {
			return true
		}
	}
	return false
}
