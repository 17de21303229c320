package pricing

import (
	"time"

	"github.com/google/uuid"

	"github.com/trimworks/takeoff-api/internal/application/dto"
	"github.com/trimworks/takeoff-api/internal/domain"
	"github.com/trimworks/takeoff-api/internal/domain/entity"
	"github.com/trimworks/takeoff-api/internal/domain/repository"
)

// PriceListExporter renders a tenant's current price list to a spreadsheet.
type PriceListExporter interface {
	Export(entries []entity.PriceEntry) ([]byte, error)
}

// UseCase manages the append-only price catalog.
type UseCase struct {
	repo     repository.PricingRepository
	exporter PriceListExporter
}

// NewUseCase builds the pricing use case.
func NewUseCase(repo repository.PricingRepository, exporter PriceListExporter) *UseCase {
	return &UseCase{repo: repo, exporter: exporter}
}

// Create appends a new price entry version. Old entries are never mutated; a
// price change is a new row with a later valid_from.
func (uc *UseCase) Create(tenantID string, in dto.CreatePriceEntryRequest) (*dto.PriceEntryResponse, error) {
	if in.Item == "" || in.ValidFrom.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	if in.InstallCost.IsNegative() || in.IncreaseCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.ListByTenant(tenantID)
	if err != nil {
		return nil, err
	}
	version := 1
	for _, e := range existing {
		if e.Item == in.Item && e.Type == in.Type && e.Casing == in.Casing && e.Version >= version {
			version = e.Version + 1
		}
	}
	entry := &entity.PriceEntry{
		ID:           uuid.New().String(),
		TenantID:     tenantID,
		Item:         in.Item,
		Type:         in.Type,
		Casing:       in.Casing,
		InstallCost:  in.InstallCost,
		IncreaseCost: in.IncreaseCost,
		ValidFrom:    in.ValidFrom,
		ValidUntil:   in.ValidUntil,
		IsActive:     true,
		Version:      version,
		CreatedAt:    time.Now(),
	}
	if err := uc.repo.Create(entry); err != nil {
		return nil, err
	}
	return toResponse(entry), nil
}

// List returns every price entry of the tenant, retired versions included.
func (uc *UseCase) List(tenantID string) ([]dto.PriceEntryResponse, error) {
	entries, err := uc.repo.ListByTenant(tenantID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PriceEntryResponse, 0, len(entries))
	for i := range entries {
		out = append(out, *toResponse(&entries[i]))
	}
	return out, nil
}

// Deactivate retires an entry without deleting it. Invoices generated while
// it was in effect still recompute against it through the date filter.
func (uc *UseCase) Deactivate(tenantID, id string) error {
	entries, err := uc.repo.ListByTenant(tenantID)
	if err != nil {
		return err
	}
	for i := range entries {
		if entries[i].ID == id {
			return uc.repo.Deactivate(id)
		}
	}
	return domain.ErrNotFound
}

// Export renders the tenant's active price list as an xlsx workbook.
func (uc *UseCase) Export(tenantID string) ([]byte, error) {
	entries, err := uc.repo.ListByTenant(tenantID)
	if err != nil {
		return nil, err
	}
	active := make([]entity.PriceEntry, 0, len(entries))
	for _, e := range entries {
		if e.IsActive {
			active = append(active, e)
		}
	}
	return uc.exporter.Export(active)
}

func toResponse(e *entity.PriceEntry) *dto.PriceEntryResponse {
	return &dto.PriceEntryResponse{
		ID:           e.ID,
		Item:         e.Item,
		Type:         e.Type,
		Casing:       e.Casing,
		InstallCost:  e.InstallCost,
		IncreaseCost: e.IncreaseCost,
		ValidFrom:    e.ValidFrom,
		ValidUntil:   e.ValidUntil,
		IsActive:     e.IsActive,
		Version:      e.Version,
	}
}
