package takeoff

import (
	"time"

	"github.com/google/uuid"

	"github.com/trimworks/takeoff-api/internal/application/dto"
	"github.com/trimworks/takeoff-api/internal/domain"
	"github.com/trimworks/takeoff-api/internal/domain/entity"
	"github.com/trimworks/takeoff-api/internal/domain/repository"
)

// UseCase takeoff CRUD and workflow. All operations are tenant-scoped: a
// takeoff belonging to another tenant reads as forbidden, never leaked.
type UseCase struct {
	repo repository.TakeoffRepository
}

// NewUseCase builds the takeoff use case.
func NewUseCase(repo repository.TakeoffRepository) *UseCase {
	return &UseCase{repo: repo}
}

// Create stores a new draft takeoff for the tenant.
func (uc *UseCase) Create(tenantID, userID string, in dto.CreateTakeoffRequest) (*dto.TakeoffResponse, error) {
	if in.CustomerName == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	t := &entity.Takeoff{
		ID:           uuid.New().String(),
		TenantID:     tenantID,
		CustomerName: in.CustomerName,
		Lot:          in.Lot,
		SiteAddress:  in.SiteAddress,
		Status:       entity.TakeoffStatusDraft,
		CreatedBy:    userID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	applySections(t, in.Sections)
	if err := uc.repo.Create(t); err != nil {
		return nil, err
	}
	return toResponse(t), nil
}

// Update replaces the measured sections of a draft takeoff.
func (uc *UseCase) Update(tenantID, id string, in dto.UpdateTakeoffRequest) (*dto.TakeoffResponse, error) {
	t, err := uc.load(tenantID, id)
	if err != nil {
		return nil, err
	}
	if t.Status != entity.TakeoffStatusDraft {
		return nil, domain.ErrConflict
	}
	if in.CustomerName != "" {
		t.CustomerName = in.CustomerName
	}
	t.Lot = in.Lot
	t.SiteAddress = in.SiteAddress
	applySections(t, in.Sections)
	t.UpdatedAt = time.Now()
	if err := uc.repo.Update(t); err != nil {
		return nil, err
	}
	return toResponse(t), nil
}

// Complete marks a draft takeoff ready for invoicing.
func (uc *UseCase) Complete(tenantID, id string) (*dto.TakeoffResponse, error) {
	t, err := uc.load(tenantID, id)
	if err != nil {
		return nil, err
	}
	if t.Status != entity.TakeoffStatusDraft {
		return nil, domain.ErrConflict
	}
	if err := uc.repo.UpdateStatus(id, entity.TakeoffStatusComplete); err != nil {
		return nil, err
	}
	t.Status = entity.TakeoffStatusComplete
	return toResponse(t), nil
}

// GetByID returns one takeoff of the tenant.
func (uc *UseCase) GetByID(tenantID, id string) (*dto.TakeoffResponse, error) {
	t, err := uc.load(tenantID, id)
	if err != nil {
		return nil, err
	}
	return toResponse(t), nil
}

// List returns all takeoffs of the tenant.
func (uc *UseCase) List(tenantID string) ([]dto.TakeoffResponse, error) {
	items, err := uc.repo.ListByTenant(tenantID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TakeoffResponse, 0, len(items))
	for _, t := range items {
		out = append(out, *toResponse(t))
	}
	return out, nil
}

func (uc *UseCase) load(tenantID, id string) (*entity.Takeoff, error) {
	t, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	if t.TenantID != tenantID {
		return nil, domain.ErrForbidden
	}
	return t, nil
}

// ── DTO mapping ───────────────────────────────────────────────────────────────

func applySections(t *entity.Takeoff, s dto.TakeoffSectionsDTO) {
	t.Doors = entity.DoorSections{
		Single:  doorRows(s.SingleDoors),
		Double:  doorRows(s.DoubleDoors),
		Cantina: doorRows(s.CantinaDoors),
		French:  doorRows(s.FrenchDoors),
	}
	t.Arches = archRows(s.Arches)
	t.Trim = trimRows(s.Trim)
	t.Windows = entity.WindowCounts{
		Regular:   s.RegularWindows,
		RoundTop:  s.RoundTopWindows,
		BayBow:    s.BayBowWindows,
		OpenAbove: s.OpenAboveWindows,
	}
	t.Stairs = entity.StairCounts{
		Straight: s.StairsStraight,
		Winder:   s.StairsWinder,
		Open:     s.StairsOpen,
	}
	t.Counts = entity.UnitCounts{
		AtticHatch:   s.AtticHatch,
		WindowSeat:   s.WindowSeat,
		SolidColumns: s.SolidColumns,
		SplitColumns: s.SplitColumns,
		DoorClosers:  s.DoorClosers,
		TallerDoors:  s.TallerDoors,
		WetAreas:     s.WetAreas,
		ExteriorLock: s.ExteriorLock,
	}
	t.Footage = entity.LinearFootage{
		Baseboard:    s.BaseboardFeet,
		QuarterRound: s.QuarterRoundFeet,
		Capping:      s.CappingFeet,
		Handrail:     s.HandrailFeet,
		WireShelving: s.WireShelvingFeet,
	}
}

func doorRows(in []dto.DoorRowDTO) []entity.DoorRow {
	out := make([]entity.DoorRow, 0, len(in))
	for _, r := range in {
		out = append(out, entity.DoorRow{Left: r.Left, Right: r.Right, Height: r.Height, Note: r.Note})
	}
	return out
}

func archRows(in []dto.ArchRowDTO) []entity.ArchRow {
	out := make([]entity.ArchRow, 0, len(in))
	for _, r := range in {
		out = append(out, entity.ArchRow{Quantity: r.Quantity, Height: r.Height})
	}
	return out
}

func trimRows(in []dto.TrimRowDTO) []entity.TrimRow {
	out := make([]entity.TrimRow, 0, len(in))
	for _, r := range in {
		out = append(out, entity.TrimRow{Description: r.Description, Quantity: r.Quantity})
	}
	return out
}

func toResponse(t *entity.Takeoff) *dto.TakeoffResponse {
	s := dto.TakeoffSectionsDTO{
		RegularWindows:   t.Windows.Regular,
		RoundTopWindows:  t.Windows.RoundTop,
		BayBowWindows:    t.Windows.BayBow,
		OpenAboveWindows: t.Windows.OpenAbove,
		StairsStraight:   t.Stairs.Straight,
		StairsWinder:     t.Stairs.Winder,
		StairsOpen:       t.Stairs.Open,
		AtticHatch:       t.Counts.AtticHatch,
		WindowSeat:       t.Counts.WindowSeat,
		SolidColumns:     t.Counts.SolidColumns,
		SplitColumns:     t.Counts.SplitColumns,
		DoorClosers:      t.Counts.DoorClosers,
		TallerDoors:      t.Counts.TallerDoors,
		WetAreas:         t.Counts.WetAreas,
		ExteriorLock:     t.Counts.ExteriorLock,
		BaseboardFeet:    t.Footage.Baseboard,
		QuarterRoundFeet: t.Footage.QuarterRound,
		CappingFeet:      t.Footage.Capping,
		HandrailFeet:     t.Footage.Handrail,
		WireShelvingFeet: t.Footage.WireShelving,
	}
	for _, r := range t.Doors.Single {
		s.SingleDoors = append(s.SingleDoors, dto.DoorRowDTO{Left: r.Left, Right: r.Right, Height: r.Height, Note: r.Note})
	}
	for _, r := range t.Doors.Double {
		s.DoubleDoors = append(s.DoubleDoors, dto.DoorRowDTO{Left: r.Left, Right: r.Right, Height: r.Height, Note: r.Note})
	}
	for _, r := range t.Doors.Cantina {
		s.CantinaDoors = append(s.CantinaDoors, dto.DoorRowDTO{Left: r.Left, Right: r.Right, Height: r.Height, Note: r.Note})
	}
	for _, r := range t.Doors.French {
		s.FrenchDoors = append(s.FrenchDoors, dto.DoorRowDTO{Left: r.Left, Right: r.Right, Height: r.Height, Note: r.Note})
	}
	for _, r := range t.Arches {
		s.Arches = append(s.Arches, dto.ArchRowDTO{Quantity: r.Quantity, Height: r.Height})
	}
	for _, r := range t.Trim {
		s.Trim = append(s.Trim, dto.TrimRowDTO{Description: r.Description, Quantity: r.Quantity})
	}
	return &dto.TakeoffResponse{
		ID:           t.ID,
		TenantID:     t.TenantID,
		CustomerName: t.CustomerName,
		Lot:          t.Lot,
		SiteAddress:  t.SiteAddress,
		Status:       t.Status,
		Sections:     s,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}
