// Package status represents the activity-recency status of a user.
package status

import (
	"fmt"
	"time"
)

// The set of statuses a user can hold. The three values partition the
// resolved user set: every user holds exactly one.
var (
	Active   = newStatus("Active")
	Inactive = newStatus("Inactive")
	Dormant  = newStatus("Dormant")
)

// Recency thresholds in days, measured from the dataset reference date.
const (
	activeWithinDays   = 7
	inactiveWithinDays = 60
)

// =============================================================================

// Set of known statuses.
var statuses = make(map[string]Status)

// Status represents an activity-recency status in the system.
type Status struct {
	value string
}

func newStatus(sts string) Status {
	s := Status{sts}
	statuses[sts] = s
	return s
}

// String returns the name of the status.
func (s Status) String() string {
	return s.value
}

// Equal provides support for the go-cmp package and testing.
func (s Status) Equal(s2 Status) bool {
	return s.value == s2.value
}

// MarshalText provides support for logging and any marshal needs.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.value), nil
}

// =============================================================================

// Classify derives the status of a user from their last login relative to the
// dataset reference date: Active within 7 days, Inactive within 60, Dormant
// beyond that. A last login after the reference date still reads as Active.
func Classify(lastLogin time.Time, referenceDate time.Time) Status {
	days := int(referenceDate.Sub(lastLogin).Hours() / 24)

	switch {
	case days <= activeWithinDays:
		return Active
	case days <= inactiveWithinDays:
		return Inactive
	default:
		return Dormant
	}
}

// Parse parses the string value and returns a status if one exists.
func Parse(value string) (Status, error) {
	sts, exists := statuses[value]
	if !exists {
		return Status{}, fmt.Errorf("invalid status %q", value)
	}

	return sts, nil
}

// MustParse parses the string value and returns a status if one exists. If
// an error occurs the function panics.
func MustParse(value string) Status {
	sts, err := Parse(value)
	if err != nil {
		panic(err)
	}

	return sts
}
