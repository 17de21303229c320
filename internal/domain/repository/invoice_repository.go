package repository

import "github.com/trimworks/takeoff-api/internal/domain/entity"

// InvoiceRepository defines the persistence port for invoices, their job
// summary rows and the per-tenant-per-year number sequence.
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	CreateJob(job *entity.InvoiceJob) error
	GetByID(id string) (*entity.Invoice, error)
	ListByTenant(tenantID string) ([]*entity.Invoice, error)
	UpdateStatus(id, status string) error
	// NextSequence atomically increments and returns the tenant's invoice
	// sequence for the given year. Two concurrent callers never see the
	// same value.
	NextSequence(tenantID string, year int) (int64, error)
}
