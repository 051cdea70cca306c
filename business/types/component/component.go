// Package component represents the platform component type in the system.
package component

import "fmt"

// The set of components licences and activity are attributed to.
var (
	Connect   = newComponent("Connect")
	Workbench = newComponent("Workbench")
)

// =============================================================================

// Set of known components.
var components = make(map[string]Component)

// Component represents a platform component in the system.
type Component struct {
	value string
}

func newComponent(comp string) Component {
	c := Component{comp}
	components[comp] = c
	return c
}

// String returns the name of the component.
func (c Component) String() string {
	return c.value
}

// Equal provides support for the go-cmp package and testing.
func (c Component) Equal(c2 Component) bool {
	return c.value == c2.value
}

// MarshalText provides support for logging and any marshal needs.
func (c Component) MarshalText() ([]byte, error) {
	return []byte(c.value), nil
}

// =============================================================================

// Parse parses the string value and returns a component if one exists.
func Parse(value string) (Component, error) {
	comp, exists := components[value]
	if !exists {
		return Component{}, fmt.Errorf("invalid component %q", value)
	}

	return comp, nil
}

// MustParse parses the string value and returns a component if one exists. If
// an error occurs the function panics.
func MustParse(value string) Component {
	comp, err := Parse(value)
	if err != nil {
		panic(err)
	}

	return comp
}
