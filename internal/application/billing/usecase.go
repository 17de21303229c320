package billing

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/trimworks/takeoff-api/internal/application/dto"
	"github.com/trimworks/takeoff-api/internal/domain"
	"github.com/trimworks/takeoff-api/internal/domain/billing"
	"github.com/trimworks/takeoff-api/internal/domain/entity"
	"github.com/trimworks/takeoff-api/internal/domain/pricing"
	"github.com/trimworks/takeoff-api/internal/domain/repository"
	"github.com/trimworks/takeoff-api/pkg/logger"
)

// InvoiceUseCase generates invoices from completed takeoffs and serves them
// back. Line detail is never stored: every read reprices the source takeoffs
// with the catalog as of the invoice's generation date.
type InvoiceUseCase struct {
	txRunner    BillingTxRunner
	takeoffRepo repository.TakeoffRepository
	pricingRepo repository.PricingRepository
	invoiceRepo repository.InvoiceRepository
	pdf         InvoicePDFGenerator
	log         *logger.Logger
}

// NewInvoiceUseCase builds the invoice use case.
func NewInvoiceUseCase(
	txRunner BillingTxRunner,
	takeoffRepo repository.TakeoffRepository,
	pricingRepo repository.PricingRepository,
	invoiceRepo repository.InvoiceRepository,
	pdf InvoicePDFGenerator,
	log *logger.Logger,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		txRunner:    txRunner,
		takeoffRepo: takeoffRepo,
		pricingRepo: pricingRepo,
		invoiceRepo: invoiceRepo,
		pdf:         pdf,
		log:         log,
	}
}

// Generate prices 1 to 5 completed takeoffs and persists the invoice in one
// transaction: allocate the number, insert header and job rows, flip the
// takeoffs to invoiced. A concurrent generator racing for the same number
// loses the insert and retries once; the retry is a fresh transaction because
// the unique violation aborts the one it happened in.
func (uc *InvoiceUseCase) Generate(ctx context.Context, tenantID, userID string, in dto.GenerateInvoiceRequest) (*dto.InvoiceResponse, error) {
	n := len(in.TakeoffIDs)
	if n < 1 || n > billing.FormColumns {
		return nil, domain.ErrTooManyJobs
	}
	seen := make(map[string]bool, n)
	for _, id := range in.TakeoffIDs {
		if id == "" || seen[id] {
			return nil, domain.ErrInvalidInput
		}
		seen[id] = true
	}

	// Load and validate the takeoffs outside the transaction, read only.
	takeoffs := make([]*entity.Takeoff, 0, n)
	for _, id := range in.TakeoffIDs {
		t, err := uc.takeoffRepo.GetByID(id)
		if err != nil {
			return nil, err
		}
		if t == nil {
			return nil, domain.ErrNotFound
		}
		if t.TenantID != tenantID {
			return nil, domain.ErrForbidden
		}
		if !t.CanInvoice() {
			return nil, domain.ErrTakeoffNotBilled
		}
		takeoffs = append(takeoffs, t)
	}

	now := time.Now()
	results, err := uc.calculateAll(tenantID, takeoffs, now)
	if err != nil {
		return nil, err
	}
	// Packing fails fast here rather than on first display.
	if _, err := billing.Aggregate(results); err != nil {
		return nil, err
	}

	inv := &entity.Invoice{
		ID:            uuid.New().String(),
		TenantID:      tenantID,
		GeneratedBy:   userID,
		Status:        entity.InvoiceStatusDraft,
		GeneratedDate: now,
		CreatedAt:     now,
		UpdatedAt:     now,
		Subtotal:      decimal.Zero,
		Tax:           decimal.Zero,
		Total:         decimal.Zero,
	}
	for i, r := range results {
		job := entity.InvoiceJob{
			ID:        uuid.New().String(),
			InvoiceID: inv.ID,
			TakeoffID: r.TakeoffID,
			Position:  i,
			Subtotal:  r.Subtotal,
			Tax:       r.Tax,
			Total:     r.Total,
		}
		inv.Jobs = append(inv.Jobs, job)
		inv.Subtotal = inv.Subtotal.Add(r.Subtotal)
		inv.Tax = inv.Tax.Add(r.Tax)
		inv.Total = inv.Total.Add(r.Total)
	}

	// One retry: a unique violation on the number means another invoice took
	// it between our sequence read and insert. Postgres aborts the whole
	// transaction on the failed insert, so every attempt needs its own; the
	// loser's rollback also returns its sequence value, and the retry reads
	// past the winner's committed counter.
	for attempt := 0; ; attempt++ {
		err = uc.txRunner.RunBilling(ctx, func(invoiceRepo repository.InvoiceRepository, takeoffRepo repository.TakeoffRepository) error {
			seq, err := invoiceRepo.NextSequence(tenantID, now.Year())
			if err != nil {
				return fmt.Errorf("allocate invoice number: %w", err)
			}
			inv.Number = billing.FormatInvoiceNumber(now.Year(), seq)
			if err := invoiceRepo.Create(inv); err != nil {
				return err
			}
			for i := range inv.Jobs {
				if err := invoiceRepo.CreateJob(&inv.Jobs[i]); err != nil {
					return err
				}
			}
			for _, t := range takeoffs {
				if err := takeoffRepo.UpdateStatus(t.ID, entity.TakeoffStatusInvoiced); err != nil {
					return err
				}
			}
			return nil
		})
		if err == nil {
			break
		}
		if errors.Is(err, domain.ErrNumberConflict) && attempt == 0 {
			continue
		}
		return nil, err
	}

	unpriced := unpricedKeys(results)
	if len(unpriced) > 0 {
		uc.log.Warn().
			Str("invoice", inv.Number).
			Str("tenant_id", tenantID).
			Strs("categories", unpriced).
			Msg("invoice generated with unpriced categories")
	}

	resp := toInvoiceResponse(inv)
	resp.UnpricedCategories = unpriced
	return resp, nil
}

// GetDetail returns the invoice with its form lines repriced as of the
// generation date.
func (uc *InvoiceUseCase) GetDetail(tenantID, id string) (*dto.InvoiceDetailResponse, error) {
	inv, _, agg, results, err := uc.rebuild(tenantID, id)
	if err != nil {
		return nil, err
	}
	resp := &dto.InvoiceDetailResponse{InvoiceResponse: *toInvoiceResponse(inv)}
	resp.UnpricedCategories = unpricedKeys(results)
	for _, line := range agg.Lines {
		resp.Lines = append(resp.Lines, packLine(line))
	}
	return resp, nil
}

// List returns all invoices of the tenant, headers only.
func (uc *InvoiceUseCase) List(tenantID string) ([]dto.InvoiceResponse, error) {
	items, err := uc.invoiceRepo.ListByTenant(tenantID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InvoiceResponse, 0, len(items))
	for _, inv := range items {
		out = append(out, *toInvoiceResponse(inv))
	}
	return out, nil
}

// UpdateStatus applies one workflow transition. Illegal moves (paid back to
// draft, anything out of a terminal state) fail with ErrBadStatusChange.
func (uc *InvoiceUseCase) UpdateStatus(tenantID, id, status string) (*dto.InvoiceResponse, error) {
	inv, err := uc.loadInvoice(tenantID, id)
	if err != nil {
		return nil, err
	}
	if !inv.CanTransition(status) {
		return nil, domain.ErrBadStatusChange
	}
	if err := uc.invoiceRepo.UpdateStatus(id, status); err != nil {
		return nil, err
	}
	inv.Status = status
	return toInvoiceResponse(inv), nil
}

// RenderPDF reprices the invoice and renders the printable form.
func (uc *InvoiceUseCase) RenderPDF(tenantID, id string) ([]byte, string, error) {
	inv, takeoffs, agg, _, err := uc.rebuild(tenantID, id)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.pdf.Render(inv, agg, takeoffs)
	if err != nil {
		return nil, "", fmt.Errorf("render invoice %s: %w", inv.Number, err)
	}
	return pdf, fmt.Sprintf("%s.pdf", inv.Number), nil
}

// rebuild loads the invoice and reprices its takeoffs as of GeneratedDate,
// returning the aggregate ready for display or printing.
func (uc *InvoiceUseCase) rebuild(tenantID, id string) (*entity.Invoice, []*entity.Takeoff, *billing.AggregateResult, []*billing.CalculationResult, error) {
	inv, err := uc.loadInvoice(tenantID, id)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	jobs := append([]entity.InvoiceJob(nil), inv.Jobs...)
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].Position < jobs[j].Position })

	takeoffs := make([]*entity.Takeoff, 0, len(jobs))
	for _, job := range jobs {
		t, err := uc.takeoffRepo.GetByID(job.TakeoffID)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		if t == nil {
			return nil, nil, nil, nil, fmt.Errorf("invoice %s: takeoff %s: %w", inv.Number, job.TakeoffID, domain.ErrNotFound)
		}
		takeoffs = append(takeoffs, t)
	}
	results, err := uc.calculateAll(tenantID, takeoffs, inv.GeneratedDate)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	agg, err := billing.Aggregate(results)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	return inv, takeoffs, agg, results, nil
}

func (uc *InvoiceUseCase) calculateAll(tenantID string, takeoffs []*entity.Takeoff, at time.Time) ([]*billing.CalculationResult, error) {
	entries, err := uc.pricingRepo.ListByTenant(tenantID)
	if err != nil {
		return nil, err
	}
	calc := billing.NewCalculator(pricing.NewCatalog(entries))
	results := make([]*billing.CalculationResult, 0, len(takeoffs))
	for _, t := range takeoffs {
		r, err := calc.Calculate(t, at)
		if err != nil {
			return nil, fmt.Errorf("takeoff %s: %w", t.ID, err)
		}
		results = append(results, r)
	}
	return results, nil
}

func (uc *InvoiceUseCase) loadInvoice(tenantID, id string) (*entity.Invoice, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if inv.TenantID != tenantID {
		return nil, domain.ErrForbidden
	}
	return inv, nil
}

// ── response mapping ──────────────────────────────────────────────────────────

func toInvoiceResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:            inv.ID,
		TenantID:      inv.TenantID,
		Number:        inv.Number,
		Status:        inv.Status,
		GeneratedBy:   inv.GeneratedBy,
		GeneratedDate: inv.GeneratedDate.Format("2006-01-02"),
		Subtotal:      inv.Subtotal,
		Tax:           inv.Tax,
		Total:         inv.Total,
		Jobs:          make([]dto.InvoiceJobResponse, 0, len(inv.Jobs)),
	}
	for _, job := range inv.Jobs {
		resp.Jobs = append(resp.Jobs, dto.InvoiceJobResponse{
			TakeoffID: job.TakeoffID,
			Position:  job.Position,
			Subtotal:  job.Subtotal,
			Tax:       job.Tax,
			Total:     job.Total,
		})
	}
	return resp
}

// packLine renders a packed form row for JSON: amounts as fixed cents,
// quantities as plain numbers, blanks as null.
func packLine(line billing.PackedLine) dto.PackedLineResponse {
	out := dto.PackedLineResponse{
		Category:    string(line.Category),
		Description: line.Description,
	}
	for i, slot := range line.Slots {
		if !slot.Valid {
			continue
		}
		var s string
		if i%2 == 0 {
			s = slot.Decimal.StringFixed(2)
		} else {
			s = slot.Decimal.String()
		}
		out.Slots[i] = &s
	}
	return out
}

// unpricedKeys flattens the per-job pricing gaps into a deduplicated list,
// first-seen order.
func unpricedKeys(results []*billing.CalculationResult) []string {
	var keys []string
	seen := make(map[billing.CategoryKey]bool)
	for _, r := range results {
		for _, k := range r.Unpriced {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, string(k))
			}
		}
	}
	return keys
}
