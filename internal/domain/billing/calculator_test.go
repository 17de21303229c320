package billing_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trimworks/takeoff-api/internal/domain"
	"github.com/trimworks/takeoff-api/internal/domain/billing"
	"github.com/trimworks/takeoff-api/internal/domain/entity"
	"github.com/trimworks/takeoff-api/internal/domain/pricing"
)

// ──────────────────────────────────────────────────────────────────────────────
// Test helpers
// ──────────────────────────────────────────────────────────────────────────────

var (
	asOf    = time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	inForce = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
)

func install(item, typ, casing string, cost float64) entity.PriceEntry {
	return entity.PriceEntry{
		Item: item, Type: typ, Casing: casing,
		InstallCost: decimal.NewFromFloat(cost),
		ValidFrom:   inForce, IsActive: true,
	}
}

func increase(item string, cost float64) entity.PriceEntry {
	return entity.PriceEntry{
		Item:         item,
		IncreaseCost: decimal.NewFromFloat(cost),
		ValidFrom:    inForce, IsActive: true,
	}
}

func lineFor(t *testing.T, res *billing.CalculationResult, key billing.CategoryKey) billing.LineItem {
	t.Helper()
	for _, li := range res.LineItems {
		if li.Category == key {
			return li
		}
	}
	t.Fatalf("no line item for category %s", key)
	return billing.LineItem{}
}

func money(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Equal(t, want, got.StringFixed(2))
}

// ──────────────────────────────────────────────────────────────────────────────
// Scenario A: 2 single doors at $50.79, casing 2-3/4, standard height
// ──────────────────────────────────────────────────────────────────────────────

func TestCalculate_SingleDoorsBasePrice(t *testing.T) {
	cat := pricing.NewCatalog([]entity.PriceEntry{
		install("single_door", "", "2-3/4", 50.79),
	})
	takeoff := &entity.Takeoff{
		ID: "tk-1",
		Doors: entity.DoorSections{
			Single: []entity.DoorRow{{Left: 1, Right: 1}},
		},
	}

	res, err := billing.NewCalculator(cat).Calculate(takeoff, asOf)
	require.NoError(t, err)

	li := lineFor(t, res, billing.CatSingleDoors)
	assert.Equal(t, "2", li.Quantity.String())
	money(t, "50.79", li.UnitPrice)
	money(t, "101.58", li.Amount)
	money(t, "101.58", res.Subtotal)
	assert.Equal(t, "2-3/4", res.Casing, "no trim hint defaults the casing")
}

// ──────────────────────────────────────────────────────────────────────────────
// Scenario B: same doors at 86", the 85+ surcharge folds into the line
// ──────────────────────────────────────────────────────────────────────────────

func TestCalculate_TallDoorSurcharge(t *testing.T) {
	cat := pricing.NewCatalog([]entity.PriceEntry{
		install("single_door", "", "2-3/4", 50.79),
		increase(billing.ItemDoorHeight85Plus, 17.53),
	})
	takeoff := &entity.Takeoff{
		Doors: entity.DoorSections{
			Single: []entity.DoorRow{{Left: 1, Right: 1, Height: "86"}},
		},
	}

	res, err := billing.NewCalculator(cat).Calculate(takeoff, asOf)
	require.NoError(t, err)

	li := lineFor(t, res, billing.CatSingleDoors)
	money(t, "136.64", li.Amount) // (50.79 + 17.53) x 2
	money(t, "50.79", li.UnitPrice)
}

func TestCalculate_MidHeightSurchargeBand(t *testing.T) {
	cat := pricing.NewCatalog([]entity.PriceEntry{
		install("single_door", "", "2-3/4", 50.00),
		increase(billing.ItemDoorHeight81To84, 9.00),
		increase(billing.ItemDoorHeight85Plus, 17.53),
	})
	takeoff := &entity.Takeoff{
		Doors: entity.DoorSections{
			Single: []entity.DoorRow{
				{Left: 1, Height: "6-10"}, // 82" -> small surcharge
				{Right: 1, Height: "6-8"}, // 80" -> none
			},
		},
	}

	res, err := billing.NewCalculator(cat).Calculate(takeoff, asOf)
	require.NoError(t, err)

	li := lineFor(t, res, billing.CatSingleDoors)
	money(t, "109.00", li.Amount) // 59.00 + 50.00
	assert.Equal(t, "2", li.Quantity.String())
}

// ──────────────────────────────────────────────────────────────────────────────
// Scenario C: tax identities at a round subtotal
// ──────────────────────────────────────────────────────────────────────────────

func TestCalculate_HSTOnRoundSubtotal(t *testing.T) {
	cat := pricing.NewCatalog([]entity.PriceEntry{
		install("baseboard", "", "", 10.00),
	})
	takeoff := &entity.Takeoff{
		Footage: entity.LinearFootage{Baseboard: decimal.NewFromInt(100)},
	}

	res, err := billing.NewCalculator(cat).Calculate(takeoff, asOf)
	require.NoError(t, err)

	money(t, "1000.00", res.Subtotal)
	money(t, "130.00", res.Tax)
	money(t, "1130.00", res.Total)
}

func TestCalculate_TaxIsRoundedSubtotalTimesRate(t *testing.T) {
	cat := pricing.NewCatalog([]entity.PriceEntry{
		install("single_door", "", "2-3/4", 50.79),
	})
	takeoff := &entity.Takeoff{
		Doors: entity.DoorSections{Single: []entity.DoorRow{{Left: 1, Right: 1}}},
	}

	res, err := billing.NewCalculator(cat).Calculate(takeoff, asOf)
	require.NoError(t, err)

	money(t, "13.21", res.Tax)    // round(101.58 x 0.13)
	money(t, "114.79", res.Total) // round(101.58 x 1.13)
}

// ──────────────────────────────────────────────────────────────────────────────
// Structural invariants
// ──────────────────────────────────────────────────────────────────────────────

// Every category always emits exactly one line item, zero quantity included,
// so the printed layout never shifts.
func TestCalculate_EmitsEveryCategory(t *testing.T) {
	res, err := billing.NewCalculator(pricing.NewCatalog(nil)).Calculate(&entity.Takeoff{}, asOf)
	require.NoError(t, err)

	require.Len(t, res.LineItems, len(billing.Categories))
	for i, li := range res.LineItems {
		assert.Equal(t, billing.Categories[i].Key, li.Category, "line order must follow the form")
		assert.True(t, li.Quantity.IsZero())
		assert.True(t, li.Amount.IsZero())
	}
	money(t, "0.00", res.Subtotal)
	assert.Empty(t, res.Unpriced, "nothing to bill means nothing unpriced")
}

func TestCalculate_SubtotalEqualsSumOfLines(t *testing.T) {
	cat := pricing.NewCatalog([]entity.PriceEntry{
		install("single_door", "", "2-3/4", 50.79),
		install("baseboard", "", "", 2.35),
		install("attic_hatch", "", "", 65.00),
	})
	takeoff := &entity.Takeoff{
		Doors:   entity.DoorSections{Single: []entity.DoorRow{{Left: 2, Right: 1}}},
		Footage: entity.LinearFootage{Baseboard: decimal.RequireFromString("212.5")},
		Counts:  entity.UnitCounts{AtticHatch: 1},
	}

	res, err := billing.NewCalculator(cat).Calculate(takeoff, asOf)
	require.NoError(t, err)

	sum := decimal.Zero
	for _, li := range res.LineItems {
		sum = sum.Add(li.Amount)
	}
	assert.True(t, res.Subtotal.Equal(sum), "subtotal %s vs line sum %s", res.Subtotal, sum)
}

// A priced quantity with no catalog entry degrades to a zero-amount line and
// is reported in Unpriced instead of failing the whole invoice.
func TestCalculate_MissingPriceDegradesToZero(t *testing.T) {
	takeoff := &entity.Takeoff{Windows: entity.WindowCounts{Regular: 3}}

	res, err := billing.NewCalculator(pricing.NewCatalog(nil)).Calculate(takeoff, asOf)
	require.NoError(t, err)

	li := lineFor(t, res, billing.CatRegularWindows)
	assert.Equal(t, "3", li.Quantity.String(), "quantity survives even unpriced")
	assert.True(t, li.Amount.IsZero())
	assert.Contains(t, res.Unpriced, billing.CatRegularWindows)
	money(t, "0.00", res.Subtotal)
}

// Ambiguous pricing data fails the calculation outright: picking a price at
// random would silently change invoice totals.
func TestCalculate_AmbiguousPriceFails(t *testing.T) {
	cat := pricing.NewCatalog([]entity.PriceEntry{
		install("single_door", "", "2-3/4", 50.79),
		install("single_door", "", "2-3/4", 52.00),
	})
	takeoff := &entity.Takeoff{
		Doors: entity.DoorSections{Single: []entity.DoorRow{{Left: 1}}},
	}

	_, err := billing.NewCalculator(cat).Calculate(takeoff, asOf)
	assert.ErrorIs(t, err, domain.ErrPriceAmbiguous)
}

// The casing hint in the trim rows drives which price row every category uses.
func TestCalculate_CasingHintSelectsPriceRow(t *testing.T) {
	cat := pricing.NewCatalog([]entity.PriceEntry{
		install("single_door", "", "2-3/4", 50.79),
		install("single_door", "", "3-1/2", 55.20),
	})
	takeoff := &entity.Takeoff{
		Doors: entity.DoorSections{Single: []entity.DoorRow{{Left: 1}}},
		Trim:  []entity.TrimRow{{Description: "casing 3-1/2 throughout"}},
	}

	res, err := billing.NewCalculator(cat).Calculate(takeoff, asOf)
	require.NoError(t, err)

	assert.Equal(t, "3-1/2", res.Casing)
	money(t, "55.20", lineFor(t, res, billing.CatSingleDoors).Amount)
}

// Specialty windows price as the regular-window base plus their own increase.
func TestCalculate_SpecialtyWindowPricing(t *testing.T) {
	cat := pricing.NewCatalog([]entity.PriceEntry{
		install("window_regular", "", "2-3/4", 30.00),
		increase("window_bay_bow", 24.50),
	})
	takeoff := &entity.Takeoff{Windows: entity.WindowCounts{BayBow: 2}}

	res, err := billing.NewCalculator(cat).Calculate(takeoff, asOf)
	require.NoError(t, err)

	li := lineFor(t, res, billing.CatBayBowWindows)
	money(t, "54.50", li.UnitPrice)
	money(t, "109.00", li.Amount)
}

// Stair variants share one item key and split on the type dimension.
func TestCalculate_StairVariantsByType(t *testing.T) {
	cat := pricing.NewCatalog([]entity.PriceEntry{
		install("stairs", "straight", "", 120.00),
		install("stairs", "winder", "", 180.00),
		install("stairs", "open", "", 240.00),
	})
	takeoff := &entity.Takeoff{Stairs: entity.StairCounts{Straight: 1, Winder: 1, Open: 2}}

	res, err := billing.NewCalculator(cat).Calculate(takeoff, asOf)
	require.NoError(t, err)

	money(t, "120.00", lineFor(t, res, billing.CatStairsStraight).Amount)
	money(t, "180.00", lineFor(t, res, billing.CatStairsWinder).Amount)
	money(t, "480.00", lineFor(t, res, billing.CatStairsOpen).Amount)
	money(t, "780.00", res.Subtotal)
}

func TestCalculate_NilTakeoff(t *testing.T) {
	_, err := billing.NewCalculator(pricing.NewCatalog(nil)).Calculate(nil, asOf)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
