package pricing_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trimworks/takeoff-api/internal/domain"
	"github.com/trimworks/takeoff-api/internal/domain/entity"
	"github.com/trimworks/takeoff-api/internal/domain/pricing"
)

// ──────────────────────────────────────────────────────────────────────────────
// Test helpers
// ──────────────────────────────────────────────────────────────────────────────

var (
	jan2023 = time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	jan2025 = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	jun2026 = time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
)

func entry(item, typ, casing string, install float64, from time.Time) entity.PriceEntry {
	return entity.PriceEntry{
		Item:        item,
		Type:        typ,
		Casing:      casing,
		InstallCost: decimal.NewFromFloat(install),
		ValidFrom:   from,
		IsActive:    true,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Lookup selection rules
// ──────────────────────────────────────────────────────────────────────────────

// The entry with the latest ValidFrom that is still <= atDate wins.
func TestLookup_PicksLatestEffectiveVersion(t *testing.T) {
	cat := pricing.NewCatalog([]entity.PriceEntry{
		entry("single_door", "", "2-3/4", 45.00, jan2023),
		entry("single_door", "", "2-3/4", 50.79, jan2025),
	})

	e, err := cat.Lookup("single_door", "", "2-3/4", jun2026)
	require.NoError(t, err)
	assert.True(t, e.InstallCost.Equal(decimal.NewFromFloat(50.79)),
		"the 2025 price should supersede the 2023 one, got %s", e.InstallCost)
}

// An entry whose ValidFrom is after atDate is not yet in effect.
func TestLookup_IgnoresFutureVersions(t *testing.T) {
	future := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
	cat := pricing.NewCatalog([]entity.PriceEntry{
		entry("single_door", "", "2-3/4", 50.79, jan2025),
		entry("single_door", "", "2-3/4", 60.00, future),
	})

	e, err := cat.Lookup("single_door", "", "2-3/4", jun2026)
	require.NoError(t, err)
	assert.True(t, e.InstallCost.Equal(decimal.NewFromFloat(50.79)),
		"a 2027 price must not apply in 2026")
}

// validUntil absent OR >= atDate keeps the entry alive; an expired window
// drops it.
func TestLookup_HonorsValidUntil(t *testing.T) {
	until := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	expired := entry("baseboard", "", "", 2.10, jan2023)
	expired.ValidUntil = &until
	cat := pricing.NewCatalog([]entity.PriceEntry{expired})

	_, err := cat.Lookup("baseboard", "", "", jun2026)
	assert.ErrorIs(t, err, domain.ErrPriceNotFound, "expired entry must not resolve")

	e, err := cat.Lookup("baseboard", "", "", jan2025)
	require.NoError(t, err)
	assert.True(t, e.InstallCost.Equal(decimal.NewFromFloat(2.10)))
}

func TestLookup_IgnoresInactiveEntries(t *testing.T) {
	inactive := entry("handrail", "", "", 9.25, jan2023)
	inactive.IsActive = false
	cat := pricing.NewCatalog([]entity.PriceEntry{inactive})

	_, err := cat.Lookup("handrail", "", "", jun2026)
	assert.ErrorIs(t, err, domain.ErrPriceNotFound)
}

// Type and casing constrain the match only when the caller provides them.
func TestLookup_TypeAndCasingDimensions(t *testing.T) {
	cat := pricing.NewCatalog([]entity.PriceEntry{
		entry("stairs", "straight", "", 120.00, jan2023),
		entry("stairs", "winder", "", 180.00, jan2023),
		entry("single_door", "", "2-3/4", 50.79, jan2023),
		entry("single_door", "", "3-1/2", 55.20, jan2023),
	})

	e, err := cat.Lookup("stairs", "winder", "", jun2026)
	require.NoError(t, err)
	assert.True(t, e.InstallCost.Equal(decimal.NewFromFloat(180.00)))

	e, err = cat.Lookup("single_door", "", "3-1/2", jun2026)
	require.NoError(t, err)
	assert.True(t, e.InstallCost.Equal(decimal.NewFromFloat(55.20)))

	// Unconstrained casing with two candidates sharing ValidFrom is ambiguous.
	_, err = cat.Lookup("single_door", "", "", jun2026)
	assert.ErrorIs(t, err, domain.ErrPriceAmbiguous)
}

func TestLookup_NotFound(t *testing.T) {
	cat := pricing.NewCatalog(nil)
	_, err := cat.Lookup("attic_hatch", "", "", jun2026)
	assert.ErrorIs(t, err, domain.ErrPriceNotFound)
}

// Two entries for the same key sharing the same ValidFrom is corrupt source
// data; Lookup must refuse to pick one arbitrarily.
func TestLookup_SameValidFromIsAmbiguous(t *testing.T) {
	cat := pricing.NewCatalog([]entity.PriceEntry{
		entry("single_door", "", "2-3/4", 50.79, jan2025),
		entry("single_door", "", "2-3/4", 52.00, jan2025),
	})

	_, err := cat.Lookup("single_door", "", "2-3/4", jun2026)
	assert.ErrorIs(t, err, domain.ErrPriceAmbiguous,
		"duplicate effective dates must surface, not be silently tie-broken")
}

// An older duplicate that is superseded by a clean later version is harmless.
func TestLookup_SupersededDuplicateIsNotAmbiguous(t *testing.T) {
	cat := pricing.NewCatalog([]entity.PriceEntry{
		entry("single_door", "", "2-3/4", 45.00, jan2023),
		entry("single_door", "", "2-3/4", 46.00, jan2023),
		entry("single_door", "", "2-3/4", 50.79, jan2025),
	})

	e, err := cat.Lookup("single_door", "", "2-3/4", jun2026)
	require.NoError(t, err)
	assert.True(t, e.InstallCost.Equal(decimal.NewFromFloat(50.79)))
}
