package repository

import "github.com/trimworks/takeoff-api/internal/domain/entity"

// PricingRepository defines the persistence port for the price catalog.
// Entries are append-only: a price change inserts a new version with a later
// ValidFrom instead of mutating the old row.
type PricingRepository interface {
	Create(entry *entity.PriceEntry) error
	// ListByTenant returns every entry of the tenant; the pricing.Catalog
	// snapshot does the date filtering.
	ListByTenant(tenantID string) ([]entity.PriceEntry, error)
	// Deactivate retires an entry without deleting it.
	Deactivate(id string) error
}
