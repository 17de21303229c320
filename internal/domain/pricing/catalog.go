// Package pricing implements the versioned price-catalog lookup the invoice
// calculator runs against. A Catalog is an immutable snapshot of a tenant's
// price entries; lookups are pure reads, so one snapshot can serve any number
// of concurrent calculations.
package pricing

import (
	"time"

	"github.com/trimworks/takeoff-api/internal/domain"
	"github.com/trimworks/takeoff-api/internal/domain/entity"
)

// Catalog is a read-only snapshot of price entries.
type Catalog struct {
	entries []entity.PriceEntry
}

// NewCatalog builds a snapshot over the given entries. The slice is not
// copied; callers must not mutate it afterwards.
func NewCatalog(entries []entity.PriceEntry) *Catalog {
	return &Catalog{entries: entries}
}

// Lookup selects the price entry for (item, typ, casing) in effect at the
// given instant. Empty typ or casing means "don't constrain that dimension".
//
// Among entries that match the key, are active and whose validity window
// covers the instant, the one with the latest ValidFrom wins. Two survivors
// sharing that same latest ValidFrom is a data fault the caller has to deal
// with: Lookup reports it as domain.ErrPriceAmbiguous instead of picking one.
func (c *Catalog) Lookup(item, typ, casing string, at time.Time) (*entity.PriceEntry, error) {
	var best *entity.PriceEntry
	ambiguous := false
	for i := range c.entries {
		e := &c.entries[i]
		if e.Item != item {
			continue
		}
		if typ != "" && e.Type != typ {
			continue
		}
		if casing != "" && e.Casing != casing {
			continue
		}
		if !e.InEffect(at) {
			continue
		}
		switch {
		case best == nil || e.ValidFrom.After(best.ValidFrom):
			best = e
			ambiguous = false
		case e.ValidFrom.Equal(best.ValidFrom):
			ambiguous = true
		}
	}
	if best == nil {
		return nil, domain.ErrPriceNotFound
	}
	if ambiguous {
		return nil, domain.ErrPriceAmbiguous
	}
	return best, nil
}
