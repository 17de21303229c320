package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DoorRowDTO one measured door row.
type DoorRowDTO struct {
	Left   int    `json:"left"`
	Right  int    `json:"right"`
	Height string `json:"height,omitempty"`
	Note   string `json:"note,omitempty"`
}

// ArchRowDTO one measured archway row.
type ArchRowDTO struct {
	Quantity int    `json:"quantity"`
	Height   string `json:"height,omitempty"`
}

// TrimRowDTO one free-text trim line.
type TrimRowDTO struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// TakeoffSectionsDTO mirrors the measured sections of a takeoff.
type TakeoffSectionsDTO struct {
	SingleDoors  []DoorRowDTO `json:"single_doors,omitempty"`
	DoubleDoors  []DoorRowDTO `json:"double_doors,omitempty"`
	CantinaDoors []DoorRowDTO `json:"cantina_doors,omitempty"`
	FrenchDoors  []DoorRowDTO `json:"french_doors,omitempty"`
	Arches       []ArchRowDTO `json:"arches,omitempty"`
	Trim         []TrimRowDTO `json:"trim,omitempty"`

	RegularWindows   int `json:"regular_windows"`
	RoundTopWindows  int `json:"round_top_windows"`
	BayBowWindows    int `json:"bay_bow_windows"`
	OpenAboveWindows int `json:"open_above_windows"`

	StairsStraight int `json:"stairs_straight"`
	StairsWinder   int `json:"stairs_winder"`
	StairsOpen     int `json:"stairs_open"`

	AtticHatch   int `json:"attic_hatch"`
	WindowSeat   int `json:"window_seat"`
	SolidColumns int `json:"solid_columns"`
	SplitColumns int `json:"split_columns"`
	DoorClosers  int `json:"door_closers"`
	TallerDoors  int `json:"taller_doors"`
	WetAreas     int `json:"wet_areas"`
	ExteriorLock int `json:"exterior_lock"`

	BaseboardFeet    decimal.Decimal `json:"baseboard_feet"`
	QuarterRoundFeet decimal.Decimal `json:"quarter_round_feet"`
	CappingFeet      decimal.Decimal `json:"capping_feet"`
	HandrailFeet     decimal.Decimal `json:"handrail_feet"`
	WireShelvingFeet decimal.Decimal `json:"wire_shelving_feet"`
}

// CreateTakeoffRequest body for POST /api/takeoffs.
type CreateTakeoffRequest struct {
	CustomerName string             `json:"customer_name"`
	Lot          string             `json:"lot,omitempty"`
	SiteAddress  string             `json:"site_address,omitempty"`
	Sections     TakeoffSectionsDTO `json:"sections"`
}

// UpdateTakeoffRequest body for PUT /api/takeoffs/:id. Only draft takeoffs
// accept updates.
type UpdateTakeoffRequest struct {
	CustomerName string             `json:"customer_name"`
	Lot          string             `json:"lot,omitempty"`
	SiteAddress  string             `json:"site_address,omitempty"`
	Sections     TakeoffSectionsDTO `json:"sections"`
}

// TakeoffResponse takeoff in responses.
type TakeoffResponse struct {
	ID           string             `json:"id"`
	TenantID     string             `json:"tenant_id"`
	CustomerName string             `json:"customer_name"`
	Lot          string             `json:"lot,omitempty"`
	SiteAddress  string             `json:"site_address,omitempty"`
	Status       string             `json:"status"`
	Sections     TakeoffSectionsDTO `json:"sections"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}
