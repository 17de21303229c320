package billing

import (
	"strconv"
	"strings"

	"github.com/trimworks/takeoff-api/internal/domain/entity"
)

// Casing width classes. Pricing is keyed on these exact strings.
const (
	Casing312     = "3-1/2"
	Casing234     = "2-3/4"
	DefaultCasing = Casing234
)

// ResolveCasing scans the takeoff's free-text trim rows for a casing-width
// hint and returns the first one found, defaulting to 2-3/4". One casing
// assumption holds for the whole takeoff.
//
// This heuristic is known to be fragile (a note like "no 3-1/2 anywhere"
// flips the casing); whether casing should become a structured field on the
// takeoff is an open question with the estimators.
func ResolveCasing(trim []entity.TrimRow) string {
	for _, row := range trim {
		if strings.Contains(row.Description, Casing312) {
			return Casing312
		}
		if strings.Contains(row.Description, Casing234) {
			return Casing234
		}
	}
	return DefaultCasing
}

// ParseHeightInches converts an estimator's height note to inches.
// Accepted forms: "feet-inches" ("6-8" -> 80), "feet/inches" ("2/6" -> 30)
// and a bare inch count ("86" -> 86). Anything unparseable reads as 0,
// which simply means no height surcharge applies.
func ParseHeightInches(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	sep := ""
	switch {
	case strings.Contains(s, "-"):
		sep = "-"
	case strings.Contains(s, "/"):
		sep = "/"
	}
	if sep == "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return 0
		}
		return n
	}
	parts := strings.SplitN(s, sep, 2)
	feet, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || feet < 0 {
		return 0
	}
	inches, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || inches < 0 {
		return 0
	}
	return feet*12 + inches
}

// Height surcharge thresholds in inches. Standard doors are 80"; 81-84 takes
// the small surcharge, 85 and up the large one.
const (
	tallDoorLow  = 81
	tallDoorHigh = 85
)
