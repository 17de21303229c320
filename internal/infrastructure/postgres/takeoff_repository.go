package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/trimworks/takeoff-api/internal/domain/entity"
	"github.com/trimworks/takeoff-api/internal/domain/repository"
)

var _ repository.TakeoffRepository = (*TakeoffRepo)(nil)

// TakeoffRepo implements TakeoffRepository (usable with pool or tx). The
// measured sections travel as one JSONB document next to the scalar columns;
// the calculator never queries inside it, so a document keeps the schema flat.
type TakeoffRepo struct {
	q Querier
}

// NewTakeoffRepository builds the adapter. Pass a pool or a tx (Querier).
func NewTakeoffRepository(q Querier) *TakeoffRepo {
	return &TakeoffRepo{q: q}
}

// sectionsDoc is the JSONB shape of the measured sections.
type sectionsDoc struct {
	SingleDoors  []doorRowDoc `json:"single_doors,omitempty"`
	DoubleDoors  []doorRowDoc `json:"double_doors,omitempty"`
	CantinaDoors []doorRowDoc `json:"cantina_doors,omitempty"`
	FrenchDoors  []doorRowDoc `json:"french_doors,omitempty"`
	Arches       []archRowDoc `json:"arches,omitempty"`
	Trim         []trimRowDoc `json:"trim,omitempty"`

	Windows struct {
		Regular   int `json:"regular"`
		RoundTop  int `json:"round_top"`
		BayBow    int `json:"bay_bow"`
		OpenAbove int `json:"open_above"`
	} `json:"windows"`
	Stairs struct {
		Straight int `json:"straight"`
		Winder   int `json:"winder"`
		Open     int `json:"open"`
	} `json:"stairs"`
	Counts struct {
		AtticHatch   int `json:"attic_hatch"`
		WindowSeat   int `json:"window_seat"`
		SolidColumns int `json:"solid_columns"`
		SplitColumns int `json:"split_columns"`
		DoorClosers  int `json:"door_closers"`
		TallerDoors  int `json:"taller_doors"`
		WetAreas     int `json:"wet_areas"`
		ExteriorLock int `json:"exterior_lock"`
	} `json:"counts"`
	Footage struct {
		Baseboard    decimal.Decimal `json:"baseboard"`
		QuarterRound decimal.Decimal `json:"quarter_round"`
		Capping      decimal.Decimal `json:"capping"`
		Handrail     decimal.Decimal `json:"handrail"`
		WireShelving decimal.Decimal `json:"wire_shelving"`
	} `json:"footage"`
}

type doorRowDoc struct {
	Left   int    `json:"left"`
	Right  int    `json:"right"`
	Height string `json:"height,omitempty"`
	Note   string `json:"note,omitempty"`
}

type archRowDoc struct {
	Quantity int    `json:"quantity"`
	Height   string `json:"height,omitempty"`
}

type trimRowDoc struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
}

func sectionsToDoc(t *entity.Takeoff) sectionsDoc {
	var doc sectionsDoc
	doors := func(rows []entity.DoorRow) []doorRowDoc {
		out := make([]doorRowDoc, 0, len(rows))
		for _, r := range rows {
			out = append(out, doorRowDoc{Left: r.Left, Right: r.Right, Height: r.Height, Note: r.Note})
		}
		return out
	}
	doc.SingleDoors = doors(t.Doors.Single)
	doc.DoubleDoors = doors(t.Doors.Double)
	doc.CantinaDoors = doors(t.Doors.Cantina)
	doc.FrenchDoors = doors(t.Doors.French)
	for _, r := range t.Arches {
		doc.Arches = append(doc.Arches, archRowDoc{Quantity: r.Quantity, Height: r.Height})
	}
	for _, r := range t.Trim {
		doc.Trim = append(doc.Trim, trimRowDoc{Description: r.Description, Quantity: r.Quantity})
	}
	doc.Windows.Regular = t.Windows.Regular
	doc.Windows.RoundTop = t.Windows.RoundTop
	doc.Windows.BayBow = t.Windows.BayBow
	doc.Windows.OpenAbove = t.Windows.OpenAbove
	doc.Stairs.Straight = t.Stairs.Straight
	doc.Stairs.Winder = t.Stairs.Winder
	doc.Stairs.Open = t.Stairs.Open
	doc.Counts.AtticHatch = t.Counts.AtticHatch
	doc.Counts.WindowSeat = t.Counts.WindowSeat
	doc.Counts.SolidColumns = t.Counts.SolidColumns
	doc.Counts.SplitColumns = t.Counts.SplitColumns
	doc.Counts.DoorClosers = t.Counts.DoorClosers
	doc.Counts.TallerDoors = t.Counts.TallerDoors
	doc.Counts.WetAreas = t.Counts.WetAreas
	doc.Counts.ExteriorLock = t.Counts.ExteriorLock
	doc.Footage.Baseboard = t.Footage.Baseboard
	doc.Footage.QuarterRound = t.Footage.QuarterRound
	doc.Footage.Capping = t.Footage.Capping
	doc.Footage.Handrail = t.Footage.Handrail
	doc.Footage.WireShelving = t.Footage.WireShelving
	return doc
}

func docToSections(doc sectionsDoc, t *entity.Takeoff) {
	doors := func(rows []doorRowDoc) []entity.DoorRow {
		out := make([]entity.DoorRow, 0, len(rows))
		for _, r := range rows {
			out = append(out, entity.DoorRow{Left: r.Left, Right: r.Right, Height: r.Height, Note: r.Note})
		}
		return out
	}
	t.Doors = entity.DoorSections{
		Single:  doors(doc.SingleDoors),
		Double:  doors(doc.DoubleDoors),
		Cantina: doors(doc.CantinaDoors),
		French:  doors(doc.FrenchDoors),
	}
	for _, r := range doc.Arches {
		t.Arches = append(t.Arches, entity.ArchRow{Quantity: r.Quantity, Height: r.Height})
	}
	for _, r := range doc.Trim {
		t.Trim = append(t.Trim, entity.TrimRow{Description: r.Description, Quantity: r.Quantity})
	}
	t.Windows = entity.WindowCounts{
		Regular:   doc.Windows.Regular,
		RoundTop:  doc.Windows.RoundTop,
		BayBow:    doc.Windows.BayBow,
		OpenAbove: doc.Windows.OpenAbove,
	}
	t.Stairs = entity.StairCounts{
		Straight: doc.Stairs.Straight,
		Winder:   doc.Stairs.Winder,
		Open:     doc.Stairs.Open,
	}
	t.Counts = entity.UnitCounts{
		AtticHatch:   doc.Counts.AtticHatch,
		WindowSeat:   doc.Counts.WindowSeat,
		SolidColumns: doc.Counts.SolidColumns,
		SplitColumns: doc.Counts.SplitColumns,
		DoorClosers:  doc.Counts.DoorClosers,
		TallerDoors:  doc.Counts.TallerDoors,
		WetAreas:     doc.Counts.WetAreas,
		ExteriorLock: doc.Counts.ExteriorLock,
	}
	t.Footage = entity.LinearFootage{
		Baseboard:    doc.Footage.Baseboard,
		QuarterRound: doc.Footage.QuarterRound,
		Capping:      doc.Footage.Capping,
		Handrail:     doc.Footage.Handrail,
		WireShelving: doc.Footage.WireShelving,
	}
}

// Create persists a takeoff with its sections document.
func (r *TakeoffRepo) Create(takeoff *entity.Takeoff) error {
	sections, err := json.Marshal(sectionsToDoc(takeoff))
	if err != nil {
		return fmt.Errorf("marshal sections: %w", err)
	}
	query := `
		INSERT INTO takeoffs (id, tenant_id, customer_name, lot, site_address, status, sections, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err = r.q.Exec(context.Background(), query,
		takeoff.ID, takeoff.TenantID, takeoff.CustomerName,
		nullIfEmpty(takeoff.Lot), nullIfEmpty(takeoff.SiteAddress),
		takeoff.Status, sections, takeoff.CreatedBy,
		takeoff.CreatedAt, takeoff.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert takeoff: %w", err)
	}
	return nil
}

// Update rewrites the header fields and the sections document.
func (r *TakeoffRepo) Update(takeoff *entity.Takeoff) error {
	sections, err := json.Marshal(sectionsToDoc(takeoff))
	if err != nil {
		return fmt.Errorf("marshal sections: %w", err)
	}
	query := `
		UPDATE takeoffs
		SET customer_name = $2,
		    lot           = $3,
		    site_address  = $4,
		    sections      = $5,
		    updated_at    = $6
		WHERE id = $1`
	_, err = r.q.Exec(context.Background(), query,
		takeoff.ID, takeoff.CustomerName,
		nullIfEmpty(takeoff.Lot), nullIfEmpty(takeoff.SiteAddress),
		sections, takeoff.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update takeoff: %w", err)
	}
	return nil
}

// GetByID fetches a takeoff by ID. Returns (nil, nil) when absent.
func (r *TakeoffRepo) GetByID(id string) (*entity.Takeoff, error) {
	query := `
		SELECT id, tenant_id, customer_name, lot, site_address, status, sections, created_by, created_at, updated_at
		FROM takeoffs WHERE id = $1`
	t, err := scanTakeoff(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get takeoff: %w", err)
	}
	return t, nil
}

// ListByTenant fetches every takeoff of the tenant, newest first.
func (r *TakeoffRepo) ListByTenant(tenantID string) ([]*entity.Takeoff, error) {
	query := `
		SELECT id, tenant_id, customer_name, lot, site_address, status, sections, created_by, created_at, updated_at
		FROM takeoffs WHERE tenant_id = $1 ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list takeoffs: %w", err)
	}
	defer rows.Close()
	var list []*entity.Takeoff
	for rows.Next() {
		t, err := scanTakeoff(rows)
		if err != nil {
			return nil, fmt.Errorf("scan takeoff: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// UpdateStatus flips only the workflow status.
func (r *TakeoffRepo) UpdateStatus(id, status string) error {
	query := `UPDATE takeoffs SET status = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, status)
	if err != nil {
		return fmt.Errorf("update takeoff status: %w", err)
	}
	return nil
}

func scanTakeoff(row pgx.Row) (*entity.Takeoff, error) {
	var (
		t        entity.Takeoff
		lot      *string
		site     *string
		sections []byte
	)
	err := row.Scan(
		&t.ID, &t.TenantID, &t.CustomerName, &lot, &site,
		&t.Status, &sections, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.Lot = derefStr(lot)
	t.SiteAddress = derefStr(site)
	var doc sectionsDoc
	if len(sections) > 0 {
		if err := json.Unmarshal(sections, &doc); err != nil {
			return nil, fmt.Errorf("unmarshal sections: %w", err)
		}
	}
	docToSections(doc, &t)
	return &t, nil
}
