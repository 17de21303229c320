package billing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/trimworks/takeoff-api/internal/domain/billing"
	"github.com/trimworks/takeoff-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Height parsing
// ──────────────────────────────────────────────────────────────────────────────

func TestParseHeightInches(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"2/6", 30}, // feet/inches
		{"6-8", 80}, // feet-inches
		{"7-0", 84},
		{"86", 86},    // bare inches
		{" 6-8 ", 80}, // whitespace tolerated
		{"", 0},
		{"tall", 0}, // malformed reads as absent
		{"6-x", 0},
		{"-5", 0},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, billing.ParseHeightInches(c.in), "input %q", c.in)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Casing heuristic
// ──────────────────────────────────────────────────────────────────────────────

func trimRow(desc string) entity.TrimRow {
	return entity.TrimRow{Description: desc, Quantity: decimal.NewFromInt(100)}
}

func TestResolveCasing_FindsHintInTrimRows(t *testing.T) {
	rows := []entity.TrimRow{
		trimRow("baseboard 4-1/4 colonial"),
		trimRow("casing 3-1/2 throughout"),
	}
	assert.Equal(t, "3-1/2", billing.ResolveCasing(rows))
}

func TestResolveCasing_FirstHintWins(t *testing.T) {
	rows := []entity.TrimRow{
		trimRow("casing 2-3/4 main floor"),
		trimRow("casing 3-1/2 second floor"),
	}
	assert.Equal(t, "2-3/4", billing.ResolveCasing(rows),
		"one casing assumption per takeoff: the first hinted row decides")
}

func TestResolveCasing_DefaultsWithoutHint(t *testing.T) {
	rows := []entity.TrimRow{trimRow("shoe moulding"), trimRow("crown")}
	assert.Equal(t, billing.DefaultCasing, billing.ResolveCasing(rows))
	assert.Equal(t, billing.DefaultCasing, billing.ResolveCasing(nil))
}
