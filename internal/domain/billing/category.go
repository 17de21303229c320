// Package billing implements the invoice pricing engine: the fixed category
// table mirroring the printed invoice form, the per-takeoff calculator and the
// multi-job column packer.
package billing

// CategoryKey identifies one billing category. Keys are stable; the printed
// form shows Description.
type CategoryKey string

const (
	CatBaseboard        CategoryKey = "baseboard"
	CatSingleDoors      CategoryKey = "single_doors"
	CatDoubleDoors      CategoryKey = "double_doors"
	CatCantinaDoors     CategoryKey = "cantina_doors"
	CatFrenchDoors      CategoryKey = "french_doors"
	CatArchways         CategoryKey = "archways"
	CatRegularWindows   CategoryKey = "regular_windows"
	CatRoundTopWindows  CategoryKey = "round_top_windows"
	CatBayBowWindows    CategoryKey = "bay_bow_windows"
	CatOpenAboveWindows CategoryKey = "open_above_windows"
	CatAtticHatch       CategoryKey = "attic_hatch"
	CatWindowSeat       CategoryKey = "window_seat"
	CatCapping          CategoryKey = "capping"
	CatSolidColumns     CategoryKey = "solid_columns"
	CatSplitColumns     CategoryKey = "split_columns"
	CatWireShelving     CategoryKey = "wire_shelving"
	CatStairsStraight   CategoryKey = "stairs_straight"
	CatStairsWinder     CategoryKey = "stairs_winder"
	CatStairsOpen       CategoryKey = "stairs_open"
	CatDoorCloser       CategoryKey = "door_closer"
	CatQuarterRound     CategoryKey = "quarter_round"
	CatTallerDoors      CategoryKey = "taller_doors"
	CatWetAreas         CategoryKey = "wet_areas"
	CatExteriorLock     CategoryKey = "exterior_lock"
	CatHandrail         CategoryKey = "handrail"
)

// Surcharge item keys in the price catalog. These are explicit keys; the
// legacy form matched surcharges by their dollar value, which broke every
// time a price changed.
const (
	ItemDoorHeight81To84 = "door_height_81_84"
	ItemDoorHeight85Plus = "door_height_85_plus"
)

// Category describes one row of the printed invoice form and how it is priced.
type Category struct {
	Key         CategoryKey
	Description string
	Item        string // catalog item key
	Type        string // catalog type dimension; empty for most categories
	Unit        string // "ea" or "ft"
	Casing      bool   // price varies by the takeoff's resolved casing width
	windowExtra bool   // priced as regular-window base plus this item's increase
}

// Categories is the fixed, ordered billing table. Every calculation emits
// exactly one line item per entry, in this order, so the printed layout is
// stable regardless of what a particular takeoff contains.
var Categories = []Category{
	{Key: CatBaseboard, Description: "Baseboard", Item: "baseboard", Unit: "ft"},
	{Key: CatSingleDoors, Description: "Single doors", Item: "single_door", Unit: "ea", Casing: true},
	{Key: CatDoubleDoors, Description: "Double doors", Item: "double_door", Unit: "ea", Casing: true},
	{Key: CatCantinaDoors, Description: "Cantina doors", Item: "cantina_door", Unit: "ea", Casing: true},
	{Key: CatFrenchDoors, Description: "French doors", Item: "french_door", Unit: "ea", Casing: true},
	{Key: CatArchways, Description: "Archways", Item: "archway", Unit: "ea", Casing: true},
	{Key: CatRegularWindows, Description: "Regular windows", Item: "window_regular", Unit: "ea", Casing: true},
	{Key: CatRoundTopWindows, Description: "Round top windows", Item: "window_round_top", Unit: "ea", Casing: true, windowExtra: true},
	{Key: CatBayBowWindows, Description: "Bay/bow windows", Item: "window_bay_bow", Unit: "ea", Casing: true, windowExtra: true},
	{Key: CatOpenAboveWindows, Description: "Open to above windows", Item: "window_open_above", Unit: "ea", Casing: true, windowExtra: true},
	{Key: CatAtticHatch, Description: "Attic hatch", Item: "attic_hatch", Unit: "ea"},
	{Key: CatWindowSeat, Description: "Window seat", Item: "window_seat", Unit: "ea", Casing: true, windowExtra: true},
	{Key: CatCapping, Description: "Capping", Item: "capping", Unit: "ft"},
	{Key: CatSolidColumns, Description: "Solid columns", Item: "column_solid", Unit: "ea"},
	{Key: CatSplitColumns, Description: "Split columns", Item: "column_split", Unit: "ea"},
	{Key: CatWireShelving, Description: "Wire shelving", Item: "wire_shelving", Unit: "ft"},
	{Key: CatStairsStraight, Description: "Stairs - straight", Item: "stairs", Type: "straight", Unit: "ea"},
	{Key: CatStairsWinder, Description: "Stairs - winder", Item: "stairs", Type: "winder", Unit: "ea"},
	{Key: CatStairsOpen, Description: "Stairs - open side", Item: "stairs", Type: "open", Unit: "ea"},
	{Key: CatDoorCloser, Description: "Door closer", Item: "door_closer", Unit: "ea"},
	{Key: CatQuarterRound, Description: "Quarter round", Item: "quarter_round", Unit: "ft"},
	{Key: CatTallerDoors, Description: "Taller doors", Item: "taller_door", Unit: "ea"},
	{Key: CatWetAreas, Description: "Wet areas", Item: "wet_area", Unit: "ea"},
	{Key: CatExteriorLock, Description: "Exterior lock", Item: "exterior_lock", Unit: "ea"},
	{Key: CatHandrail, Description: "Handrail", Item: "handrail", Unit: "ft"},
}

// CategoryCount is the number of rows on the printed form.
var CategoryCount = len(Categories)
