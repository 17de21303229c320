package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePriceEntryRequest body for POST /api/pricing. Exactly one of
// install_cost / increase_cost should be non-zero.
type CreatePriceEntryRequest struct {
	Item         string          `json:"item"`
	Type         string          `json:"type,omitempty"`
	Casing       string          `json:"casing,omitempty"`
	InstallCost  decimal.Decimal `json:"install_cost"`
	IncreaseCost decimal.Decimal `json:"increase_cost"`
	ValidFrom    time.Time       `json:"valid_from"`
	ValidUntil   *time.Time      `json:"valid_until,omitempty"`
}

// PriceEntryResponse catalog entry in responses.
type PriceEntryResponse struct {
	ID           string          `json:"id"`
	Item         string          `json:"item"`
	Type         string          `json:"type,omitempty"`
	Casing       string          `json:"casing,omitempty"`
	InstallCost  decimal.Decimal `json:"install_cost"`
	IncreaseCost decimal.Decimal `json:"increase_cost"`
	ValidFrom    time.Time       `json:"valid_from"`
	ValidUntil   *time.Time      `json:"valid_until,omitempty"`
	IsActive     bool            `json:"is_active"`
	Version      int             `json:"version"`
}
