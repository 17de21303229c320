package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/trimworks/takeoff-api/internal/domain"
	"github.com/trimworks/takeoff-api/internal/domain/entity"
	"github.com/trimworks/takeoff-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implements InvoiceRepository (usable with pool or tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository builds the adapter. Pass a pool or a tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create persists the invoice header. A duplicate number maps to
// ErrNumberConflict so the caller can retry with a fresh sequence value.
func (r *InvoiceRepo) Create(invoice *entity.Invoice) error {
	query := `
		INSERT INTO invoices (id, tenant_id, number, generated_by, subtotal, tax, total, status, generated_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.TenantID, invoice.Number, invoice.GeneratedBy,
		invoice.Subtotal, invoice.Tax, invoice.Total,
		invoice.Status, invoice.GeneratedDate,
		invoice.CreatedAt, invoice.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrNumberConflict
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// CreateJob persists one per-takeoff summary row.
func (r *InvoiceRepo) CreateJob(job *entity.InvoiceJob) error {
	query := `
		INSERT INTO invoice_jobs (id, invoice_id, takeoff_id, position, subtotal, tax, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		job.ID, job.InvoiceID, job.TakeoffID, job.Position,
		job.Subtotal, job.Tax, job.Total,
	)
	if err != nil {
		return fmt.Errorf("insert invoice job: %w", err)
	}
	return nil
}

// GetByID fetches an invoice with its job rows. Returns (nil, nil) when absent.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	query := `
		SELECT id, tenant_id, number, generated_by, subtotal, tax, total, status, generated_date, created_at, updated_at
		FROM invoices WHERE id = $1`
	var inv entity.Invoice
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&inv.ID, &inv.TenantID, &inv.Number, &inv.GeneratedBy,
		&inv.Subtotal, &inv.Tax, &inv.Total,
		&inv.Status, &inv.GeneratedDate, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	jobs, err := r.jobsByInvoiceID(id)
	if err != nil {
		return nil, err
	}
	inv.Jobs = jobs
	return &inv, nil
}

// ListByTenant fetches the tenant's invoices with their job rows, newest first.
func (r *InvoiceRepo) ListByTenant(tenantID string) ([]*entity.Invoice, error) {
	query := `
		SELECT id, tenant_id, number, generated_by, subtotal, tax, total, status, generated_date, created_at, updated_at
		FROM invoices WHERE tenant_id = $1 ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		var inv entity.Invoice
		if err := rows.Scan(
			&inv.ID, &inv.TenantID, &inv.Number, &inv.GeneratedBy,
			&inv.Subtotal, &inv.Tax, &inv.Total,
			&inv.Status, &inv.GeneratedDate, &inv.CreatedAt, &inv.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, &inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, inv := range list {
		jobs, err := r.jobsByInvoiceID(inv.ID)
		if err != nil {
			return nil, err
		}
		inv.Jobs = jobs
	}
	return list, nil
}

// UpdateStatus flips only the invoice status.
func (r *InvoiceRepo) UpdateStatus(id, status string) error {
	query := `UPDATE invoices SET status = $2, updated_at = NOW() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, status)
	if err != nil {
		return fmt.Errorf("update invoice status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// NextSequence atomically bumps the tenant's counter for the year. The upsert
// serializes concurrent callers on the (tenant_id, year) row, so two
// generators never read the same value.
func (r *InvoiceRepo) NextSequence(tenantID string, year int) (int64, error) {
	query := `
		INSERT INTO invoice_sequences (tenant_id, year, last_value)
		VALUES ($1, $2, 1)
		ON CONFLICT (tenant_id, year)
		DO UPDATE SET last_value = invoice_sequences.last_value + 1
		RETURNING last_value`
	var seq int64
	if err := r.q.QueryRow(context.Background(), query, tenantID, year).Scan(&seq); err != nil {
		return 0, fmt.Errorf("next invoice sequence: %w", err)
	}
	return seq, nil
}

func (r *InvoiceRepo) jobsByInvoiceID(invoiceID string) ([]entity.InvoiceJob, error) {
	query := `
		SELECT id, invoice_id, takeoff_id, position, subtotal, tax, total
		FROM invoice_jobs WHERE invoice_id = $1 ORDER BY position`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice jobs: %w", err)
	}
	defer rows.Close()
	var jobs []entity.InvoiceJob
	for rows.Next() {
		var j entity.InvoiceJob
		if err := rows.Scan(&j.ID, &j.InvoiceID, &j.TakeoffID, &j.Position, &j.Subtotal, &j.Tax, &j.Total); err != nil {
			return nil, fmt.Errorf("scan invoice job: %w", err)
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}
