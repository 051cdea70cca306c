// Package environment represents the deployment environment type in the system.
package environment

import "fmt"

// The set of environments activity can be recorded under.
var (
	Production  = newEnvironment("Production")
	Development = newEnvironment("Development")
	Staging     = newEnvironment("Staging")
)

// =============================================================================

// Set of known environments.
var environments = make(map[string]Environment)

// Environment represents a deployment environment in the system.
type Environment struct {
	value string
}

func newEnvironment(env string) Environment {
	e := Environment{env}
	environments[env] = e
	return e
}

// String returns the name of the environment.
func (e Environment) String() string {
	return e.value
}

// Equal provides support for the go-cmp package and testing.
func (e Environment) Equal(e2 Environment) bool {
	return e.value == e2.value
}

// MarshalText provides support for logging and any marshal needs.
func (e Environment) MarshalText() ([]byte, error) {
	return []byte(e.value), nil
}

// =============================================================================

// Parse parses the string value and returns an environment if one exists.
// The labels sometimes seen in exported data are folded into the canonical
// set ("Live" is Production, "Pre-production" is Staging).
func Parse(value string) (Environment, error) {
	switch value {
	case "Live":
		return Production, nil
	case "Pre-production":
		return Staging, nil
	}

	env, exists := environments[value]
	if !exists {
		return Environment{}, fmt.Errorf("invalid environment %q", value)
	}

	return env, nil
}

// MustParse parses the string value and returns an environment if one exists.
// If an error occurs the function panics.
func MustParse(value string) Environment {
	env, err := Parse(value)
	if err != nil {
		panic(err)
	}

	return env
}
