package repository

import "github.com/trimworks/takeoff-api/internal/domain/entity"

// TenantRepository defines the persistence port for tenants.
type TenantRepository interface {
	Create(tenant *entity.Tenant) error
	GetByID(id string) (*entity.Tenant, error)
}
