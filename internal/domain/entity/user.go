package entity

import "time"

// User roles.
const (
	RoleAdmin     = "admin"     // full access, price list management
	RoleEstimator = "estimator" // creates and completes takeoffs
	RoleOffice    = "office"    // generates invoices, updates their status
)

// User belongs to exactly one tenant.
type User struct {
	ID           string
	TenantID     string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
