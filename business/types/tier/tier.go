// Package tier represents the engagement tier used for time-series reporting.
package tier

import "fmt"

// The set of engagement tiers, assigned by 60-day trailing login count. The
// four per-day counts in the time series sum to that day's user population.
var (
	Power   = newTier("Power")
	Regular = newTier("Regular")
	Light   = newTier("Light")
	Dormant = newTier("Dormant")
)

// Trailing 60-day login-count boundaries for the tiers.
const (
	powerMinLogins   = 40
	regularMinLogins = 8
	lightMinLogins   = 1
)

// =============================================================================

// Set of known tiers.
var tiers = make(map[string]Tier)

// Tier represents an engagement tier in the system.
type Tier struct {
	value string
}

func newTier(t string) Tier {
	tr := Tier{t}
	tiers[t] = tr
	return tr
}

// String returns the name of the tier.
func (t Tier) String() string {
	return t.value
}

// Equal provides support for the go-cmp package and testing.
func (t Tier) Equal(t2 Tier) bool {
	return t.value == t2.value
}

// MarshalText provides support for logging and any marshal needs.
func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.value), nil
}

// =============================================================================

// Classify derives the engagement tier from a 60-day trailing login count.
func Classify(trailingLogins int) Tier {
	switch {
	case trailingLogins >= powerMinLogins:
		return Power
	case trailingLogins >= regularMinLogins:
		return Regular
	case trailingLogins >= lightMinLogins:
		return Light
	default:
		return Dormant
	}
}

// Parse parses the string value and returns a tier if one exists.
func Parse(value string) (Tier, error) {
	t, exists := tiers[value]
	if !exists {
		return Tier{}, fmt.Errorf("invalid tier %q", value)
	}

	return t, nil
}

// MustParse parses the string value and returns a tier if one exists. If
// an error occurs the function panics.
func MustParse(value string) Tier {
	t, err := Parse(value)
	if err != nil {
		panic(err)
	}

	return t
}
