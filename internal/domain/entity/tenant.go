package entity

import "time"

// Tenant is an isolated carpentry company account. Takeoffs, price lists and
// invoice numbering are segregated per tenant.
type Tenant struct {
	ID        string
	Name      string
	Phone     string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
