package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Takeoff statuses. Only complete takeoffs can be invoiced; invoicing flips
// them to invoiced so the same job is never billed twice.
const (
	TakeoffStatusDraft    = "draft"
	TakeoffStatusComplete = "complete"
	TakeoffStatusInvoiced = "invoiced"
)

// DoorRow is one measured row of a door section. Left and Right are the swing
// counts on the paper form; Height is free text as written by the estimator
// ("6-8", "2/6" or a bare inch count).
type DoorRow struct {
	Left   int
	Right  int
	Height string
	Note   string
}

// ArchRow is one measured archway row.
type ArchRow struct {
	Quantity int
	Height   string
}

// TrimRow is a free-text trim line. Description carries the casing hint the
// calculator scans for ("3-1/2", "2-3/4").
type TrimRow struct {
	Description string
	Quantity    decimal.Decimal // linear feet
}

// DoorSections groups the door rows by door kind.
type DoorSections struct {
	Single  []DoorRow
	Double  []DoorRow
	Cantina []DoorRow
	French  []DoorRow
}

// WindowCounts holds the per-style window counts.
type WindowCounts struct {
	Regular   int
	RoundTop  int
	BayBow    int
	OpenAbove int
}

// StairCounts holds the three stair variants billed separately.
type StairCounts struct {
	Straight int
	Winder   int
	Open     int
}

// UnitCounts holds the singleton each-priced items on the form.
type UnitCounts struct {
	AtticHatch   int
	WindowSeat   int
	SolidColumns int
	SplitColumns int
	DoorClosers  int
	TallerDoors  int
	WetAreas     int
	ExteriorLock int
}

// LinearFootage holds the foot-priced items on the form.
type LinearFootage struct {
	Baseboard    decimal.Decimal
	QuarterRound decimal.Decimal
	Capping      decimal.Decimal
	Handrail     decimal.Decimal
	WireShelving decimal.Decimal
}

// Takeoff is one measured job. The legacy paper form encodes category meaning
// purely by row position; here every category is a named field, and the
// positional layout is reconstructed only at the printed-form boundary.
type Takeoff struct {
	ID           string
	TenantID     string
	CustomerName string
	Lot          string
	SiteAddress  string
	Status       string
	Doors        DoorSections
	Arches       []ArchRow
	Windows      WindowCounts
	Trim         []TrimRow
	Stairs       StairCounts
	Counts       UnitCounts
	Footage      LinearFootage
	CreatedBy    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CanInvoice reports whether the takeoff may be billed.
func (t *Takeoff) CanInvoice() bool {
	return t.Status == TakeoffStatusComplete
}
