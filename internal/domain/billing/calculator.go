package billing

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/trimworks/takeoff-api/internal/domain"
	"github.com/trimworks/takeoff-api/internal/domain/entity"
	"github.com/trimworks/takeoff-api/internal/domain/pricing"
)

// Ontario HST, 13%. Fixed by the jurisdiction the company operates in, not
// configuration.
var (
	hstRate   = decimal.New(13, -2)  // 0.13
	hstFactor = decimal.New(113, -2) // 1.13
)

// LineItem is one priced row of the invoice. Amount is always rounded to
// cents. Amount can exceed Quantity x UnitPrice when per-row height
// surcharges applied; UnitPrice stays the base price shown on the form.
type LineItem struct {
	Category    CategoryKey
	Description string
	Quantity    decimal.Decimal
	Unit        string
	UnitPrice   decimal.Decimal
	Amount      decimal.Decimal
}

// CalculationResult is the priced outcome for a single takeoff. LineItems
// always holds one entry per billing category, in form order. Unpriced lists
// the categories that had quantity but no catalog entry: their lines carry a
// zero amount (the legacy silent-degrade behavior) and the caller decides
// whether to warn.
type CalculationResult struct {
	TakeoffID string
	Casing    string
	LineItems []LineItem
	Subtotal  decimal.Decimal
	Tax       decimal.Decimal
	Total     decimal.Decimal
	Unpriced  []CategoryKey
}

// Calculator prices takeoffs against a catalog snapshot. Safe for concurrent
// use: Calculate is a pure function of its inputs.
type Calculator struct {
	catalog *pricing.Catalog
}

// NewCalculator builds a calculator over the given snapshot.
func NewCalculator(catalog *pricing.Catalog) *Calculator {
	return &Calculator{catalog: catalog}
}

// Calculate prices every billing category of the takeoff with the prices in
// effect at the given instant.
//
// A missing price never fails the calculation; the category degrades to a
// zero-amount line and is reported in Unpriced. An ambiguous price (two
// catalog entries sharing the same effective date) does fail: totals computed
// off an arbitrary pick would silently change invoices.
func (c *Calculator) Calculate(t *entity.Takeoff, at time.Time) (*CalculationResult, error) {
	if t == nil {
		return nil, domain.ErrInvalidInput
	}
	res := &CalculationResult{
		TakeoffID: t.ID,
		Casing:    ResolveCasing(t.Trim),
		LineItems: make([]LineItem, 0, len(Categories)),
		Subtotal:  decimal.Zero,
	}
	for _, cat := range Categories {
		var (
			li  LineItem
			err error
		)
		switch cat.Key {
		case CatSingleDoors:
			li, err = c.doorLine(cat, t.Doors.Single, res.Casing, at, res)
		case CatDoubleDoors:
			li, err = c.doorLine(cat, t.Doors.Double, res.Casing, at, res)
		case CatCantinaDoors:
			li, err = c.doorLine(cat, t.Doors.Cantina, res.Casing, at, res)
		case CatFrenchDoors:
			li, err = c.doorLine(cat, t.Doors.French, res.Casing, at, res)
		case CatArchways:
			li, err = c.archLine(cat, t.Arches, res.Casing, at, res)
		default:
			li, err = c.flatLine(cat, flatQuantity(cat, t), res.Casing, at, res)
		}
		if err != nil {
			return nil, err
		}
		res.LineItems = append(res.LineItems, li)
		res.Subtotal = res.Subtotal.Add(li.Amount)
	}
	res.Subtotal = res.Subtotal.Round(2)
	res.Tax = res.Subtotal.Mul(hstRate).Round(2)
	res.Total = res.Subtotal.Mul(hstFactor).Round(2)
	return res, nil
}

// flatQuantity extracts the billed quantity for the categories that are a
// plain count or footage on the takeoff. Door and archway categories are
// handled separately because of per-row height surcharges.
func flatQuantity(cat Category, t *entity.Takeoff) decimal.Decimal {
	count := func(n int) decimal.Decimal { return decimal.NewFromInt(int64(n)) }
	switch cat.Key {
	case CatBaseboard:
		return t.Footage.Baseboard
	case CatRegularWindows:
		return count(t.Windows.Regular)
	case CatRoundTopWindows:
		return count(t.Windows.RoundTop)
	case CatBayBowWindows:
		return count(t.Windows.BayBow)
	case CatOpenAboveWindows:
		return count(t.Windows.OpenAbove)
	case CatAtticHatch:
		return count(t.Counts.AtticHatch)
	case CatWindowSeat:
		return count(t.Counts.WindowSeat)
	case CatCapping:
		return t.Footage.Capping
	case CatSolidColumns:
		return count(t.Counts.SolidColumns)
	case CatSplitColumns:
		return count(t.Counts.SplitColumns)
	case CatWireShelving:
		return t.Footage.WireShelving
	case CatStairsStraight:
		return count(t.Stairs.Straight)
	case CatStairsWinder:
		return count(t.Stairs.Winder)
	case CatStairsOpen:
		return count(t.Stairs.Open)
	case CatDoorCloser:
		return count(t.Counts.DoorClosers)
	case CatQuarterRound:
		return t.Footage.QuarterRound
	case CatTallerDoors:
		return count(t.Counts.TallerDoors)
	case CatWetAreas:
		return count(t.Counts.WetAreas)
	case CatExteriorLock:
		return count(t.Counts.ExteriorLock)
	case CatHandrail:
		return t.Footage.Handrail
	}
	return decimal.Zero
}

// flatLine prices a count/footage category. Zero quantity still emits a line
// so the printed layout never shifts.
func (c *Calculator) flatLine(cat Category, qty decimal.Decimal, casing string, at time.Time, res *CalculationResult) (LineItem, error) {
	if !qty.IsPositive() {
		return zeroLine(cat), nil
	}
	unit, err := c.unitPrice(cat, casing, at)
	if errors.Is(err, domain.ErrPriceNotFound) {
		res.Unpriced = append(res.Unpriced, cat.Key)
		return LineItem{Category: cat.Key, Description: cat.Description, Quantity: qty, Unit: cat.Unit, UnitPrice: decimal.Zero, Amount: decimal.Zero}, nil
	}
	if err != nil {
		return LineItem{}, fmt.Errorf("category %s: %w", cat.Key, err)
	}
	return LineItem{
		Category:    cat.Key,
		Description: cat.Description,
		Quantity:    qty,
		Unit:        cat.Unit,
		UnitPrice:   unit,
		Amount:      unit.Mul(qty).Round(2),
	}, nil
}

// doorLine prices a door section row by row: each row bills its count at the
// base unit price plus the height surcharge its measured height falls into.
func (c *Calculator) doorLine(cat Category, rows []entity.DoorRow, casing string, at time.Time, res *CalculationResult) (LineItem, error) {
	qty := 0
	for _, row := range rows {
		if n := row.Left + row.Right; n > 0 {
			qty += n
		}
	}
	if qty == 0 {
		return zeroLine(cat), nil
	}
	quantity := decimal.NewFromInt(int64(qty))

	unit, err := c.unitPrice(cat, casing, at)
	if errors.Is(err, domain.ErrPriceNotFound) {
		res.Unpriced = append(res.Unpriced, cat.Key)
		return LineItem{Category: cat.Key, Description: cat.Description, Quantity: quantity, Unit: cat.Unit, UnitPrice: decimal.Zero, Amount: decimal.Zero}, nil
	}
	if err != nil {
		return LineItem{}, fmt.Errorf("category %s: %w", cat.Key, err)
	}

	amount := decimal.Zero
	for _, row := range rows {
		n := row.Left + row.Right
		if n <= 0 {
			continue
		}
		sur, err := c.heightSurcharge(row.Height, at)
		if err != nil {
			return LineItem{}, fmt.Errorf("category %s: %w", cat.Key, err)
		}
		amount = amount.Add(unit.Add(sur).Mul(decimal.NewFromInt(int64(n))))
	}
	return LineItem{
		Category:    cat.Key,
		Description: cat.Description,
		Quantity:    quantity,
		Unit:        cat.Unit,
		UnitPrice:   unit,
		Amount:      amount.Round(2),
	}, nil
}

// archLine prices archways like doors: per-row height surcharges over a base
// unit price.
func (c *Calculator) archLine(cat Category, rows []entity.ArchRow, casing string, at time.Time, res *CalculationResult) (LineItem, error) {
	qty := 0
	for _, row := range rows {
		if row.Quantity > 0 {
			qty += row.Quantity
		}
	}
	if qty == 0 {
		return zeroLine(cat), nil
	}
	quantity := decimal.NewFromInt(int64(qty))

	unit, err := c.unitPrice(cat, casing, at)
	if errors.Is(err, domain.ErrPriceNotFound) {
		res.Unpriced = append(res.Unpriced, cat.Key)
		return LineItem{Category: cat.Key, Description: cat.Description, Quantity: quantity, Unit: cat.Unit, UnitPrice: decimal.Zero, Amount: decimal.Zero}, nil
	}
	if err != nil {
		return LineItem{}, fmt.Errorf("category %s: %w", cat.Key, err)
	}

	amount := decimal.Zero
	for _, row := range rows {
		if row.Quantity <= 0 {
			continue
		}
		sur, err := c.heightSurcharge(row.Height, at)
		if err != nil {
			return LineItem{}, fmt.Errorf("category %s: %w", cat.Key, err)
		}
		amount = amount.Add(unit.Add(sur).Mul(decimal.NewFromInt(int64(row.Quantity))))
	}
	return LineItem{
		Category:    cat.Key,
		Description: cat.Description,
		Quantity:    quantity,
		Unit:        cat.Unit,
		UnitPrice:   unit,
		Amount:      amount.Round(2),
	}, nil
}

// unitPrice resolves the base unit price for a category. Specialty window
// categories are priced as the regular-window base plus their own increase
// entry; everything else is a direct install-cost lookup.
func (c *Calculator) unitPrice(cat Category, casing string, at time.Time) (decimal.Decimal, error) {
	casingArg := ""
	if cat.Casing {
		casingArg = casing
	}
	if cat.windowExtra {
		base, err := c.catalog.Lookup("window_regular", "", casingArg, at)
		if err != nil {
			return decimal.Zero, err
		}
		inc, err := c.catalog.Lookup(cat.Item, cat.Type, "", at)
		if err != nil {
			return decimal.Zero, err
		}
		return base.InstallCost.Add(inc.IncreaseCost), nil
	}
	e, err := c.catalog.Lookup(cat.Item, cat.Type, casingArg, at)
	if err != nil {
		return decimal.Zero, err
	}
	return e.InstallCost, nil
}

// heightSurcharge returns the per-unit increase for a measured door or
// archway height. Unparseable heights read as 0 inches, meaning no surcharge.
// A missing surcharge entry degrades to zero like any other missing price;
// an ambiguous one is an error.
func (c *Calculator) heightSurcharge(height string, at time.Time) (decimal.Decimal, error) {
	h := ParseHeightInches(height)
	var item string
	switch {
	case h >= tallDoorHigh:
		item = ItemDoorHeight85Plus
	case h >= tallDoorLow:
		item = ItemDoorHeight81To84
	default:
		return decimal.Zero, nil
	}
	e, err := c.catalog.Lookup(item, "", "", at)
	if errors.Is(err, domain.ErrPriceNotFound) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("surcharge %s: %w", item, err)
	}
	return e.IncreaseCost, nil
}

func zeroLine(cat Category) LineItem {
	return LineItem{
		Category:    cat.Key,
		Description: cat.Description,
		Quantity:    decimal.Zero,
		Unit:        cat.Unit,
		UnitPrice:   decimal.Zero,
		Amount:      decimal.Zero,
	}
}
