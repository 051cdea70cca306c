// Package frequency represents the login-frequency tier of a user within a
// reporting window.
package frequency

import "fmt"

// The set of frequency tiers. Every user in a window falls into exactly one.
var (
	Daily      = newFrequency("Daily")
	Weekly     = newFrequency("Weekly")
	Occasional = newFrequency("Occasional")
	Dormant    = newFrequency("Dormant")
)

// Average-days-between-logins boundaries for the tiers.
const (
	dailyMaxAverage  = 1.5
	weeklyMaxAverage = 7.0
)

// =============================================================================

// Set of known frequencies.
var frequencies = make(map[string]Frequency)

// Frequency represents a login-frequency tier in the system.
type Frequency struct {
	value string
}

func newFrequency(freq string) Frequency {
	f := Frequency{freq}
	frequencies[freq] = f
	return f
}

// String returns the name of the frequency tier.
func (f Frequency) String() string {
	return f.value
}

// Equal provides support for the go-cmp package and testing.
func (f Frequency) Equal(f2 Frequency) bool {
	return f.value == f2.value
}

// MarshalText provides support for logging and any marshal needs.
func (f Frequency) MarshalText() ([]byte, error) {
	return []byte(f.value), nil
}

// =============================================================================

// Classify derives the frequency tier from the number of logins recorded in
// a window of the given length. A user with zero logins cannot be rated by
// the average-gap formula and is Dormant outright.
func Classify(windowDays int, loginCount int) Frequency {
	if loginCount <= 0 {
		return Dormant
	}

	average := float64(windowDays) / float64(loginCount)

	switch {
	case average <= dailyMaxAverage:
		return Daily
	case average <= weeklyMaxAverage:
		return Weekly
	default:
		return Occasional
	}
}

// Parse parses the string value and returns a frequency if one exists.
func Parse(value string) (Frequency, error) {
	freq, exists := frequencies[value]
	if !exists {
		return Frequency{}, fmt.Errorf("invalid frequency %q", value)
	}

	return freq, nil
}

// MustParse parses the string value and returns a frequency if one exists.
// If an error occurs the function panics.
func MustParse(value string) Frequency {
	freq, err := Parse(value)
	if err != nil {
		panic(err)
	}

	return freq
}
