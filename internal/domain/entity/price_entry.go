package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceEntry is one versioned, time-bounded price record keyed by item, type
// and casing. InstallCost is a base per-unit installation price; IncreaseCost
// is a surcharge delta added on top of some base (taller doors, specialty
// windows). An entry carries one or the other.
//
// Price updates never mutate rows: a new entry is inserted with a later
// ValidFrom and, usually, the old one gets a ValidUntil.
type PriceEntry struct {
	ID           string
	TenantID     string
	Item         string // canonical item key, e.g. "single_door", "door_height_85_plus"
	Type         string // secondary dimension, e.g. stair variant; empty = none
	Casing       string // trim width class: "2-3/4", "3-1/2"; empty = not casing-priced
	InstallCost  decimal.Decimal
	IncreaseCost decimal.Decimal
	ValidFrom    time.Time
	ValidUntil   *time.Time // nil = open ended
	IsActive     bool
	Version      int
	CreatedAt    time.Time
}

// InEffect reports whether the entry applies at the given instant.
func (e *PriceEntry) InEffect(at time.Time) bool {
	if !e.IsActive {
		return false
	}
	if e.ValidFrom.After(at) {
		return false
	}
	if e.ValidUntil != nil && e.ValidUntil.Before(at) {
		return false
	}
	return true
}
