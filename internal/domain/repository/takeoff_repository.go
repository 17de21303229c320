package repository

import "github.com/trimworks/takeoff-api/internal/domain/entity"

// TakeoffRepository defines the persistence port for takeoffs. The measured
// sections travel as one document alongside the scalar columns.
type TakeoffRepository interface {
	Create(takeoff *entity.Takeoff) error
	Update(takeoff *entity.Takeoff) error
	GetByID(id string) (*entity.Takeoff, error)
	ListByTenant(tenantID string) ([]*entity.Takeoff, error)
	// UpdateStatus flips only the workflow status.
	UpdateStatus(id, status string) error
}
