package postgres

import (
	"context"
	"fmt"

	"github.com/trimworks/takeoff-api/internal/domain"
	"github.com/trimworks/takeoff-api/internal/domain/entity"
	"github.com/trimworks/takeoff-api/internal/domain/repository"
)

var _ repository.PricingRepository = (*PricingRepo)(nil)

// PricingRepo implements PricingRepository (usable with pool or tx). The table
// is append-only: price changes insert a new version, rows are never updated
// except for the is_active flag.
type PricingRepo struct {
	q Querier
}

// NewPricingRepository builds the adapter. Pass a pool or a tx (Querier).
func NewPricingRepository(q Querier) *PricingRepo {
	return &PricingRepo{q: q}
}

// Create inserts a new price entry version.
func (r *PricingRepo) Create(entry *entity.PriceEntry) error {
	query := `
		INSERT INTO price_entries (id, tenant_id, item, type, casing, install_cost, increase_cost, valid_from, valid_until, is_active, version, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.TenantID, entry.Item,
		nullIfEmpty(entry.Type), nullIfEmpty(entry.Casing),
		entry.InstallCost, entry.IncreaseCost,
		entry.ValidFrom, entry.ValidUntil,
		entry.IsActive, entry.Version, entry.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert price entry: %w", err)
	}
	return nil
}

// ListByTenant fetches every price entry of the tenant, retired versions
// included; the catalog snapshot does the filtering.
func (r *PricingRepo) ListByTenant(tenantID string) ([]entity.PriceEntry, error) {
	query := `
		SELECT id, tenant_id, item, COALESCE(type, ''), COALESCE(casing, ''),
		       install_cost, increase_cost, valid_from, valid_until, is_active, version, created_at
		FROM price_entries WHERE tenant_id = $1
		ORDER BY item, type, casing, valid_from`
	rows, err := r.q.Query(context.Background(), query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list price entries: %w", err)
	}
	defer rows.Close()
	var list []entity.PriceEntry
	for rows.Next() {
		var e entity.PriceEntry
		if err := rows.Scan(
			&e.ID, &e.TenantID, &e.Item, &e.Type, &e.Casing,
			&e.InstallCost, &e.IncreaseCost,
			&e.ValidFrom, &e.ValidUntil, &e.IsActive, &e.Version, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan price entry: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// Deactivate retires an entry without deleting it.
func (r *PricingRepo) Deactivate(id string) error {
	query := `UPDATE price_entries SET is_active = FALSE WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("deactivate price entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
