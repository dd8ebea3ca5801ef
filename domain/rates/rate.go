package rates

import (
	"fmt"
	"strconv"
)

// Rate is the result of a selection-rate computation: either a defined
// value or undefined. Undefined is a first-class value, not an error - it
// is produced whenever a denominator is zero or unusable and it flows
// through every derived computation (diffs, ratios) instead of aborting.
type Rate struct {
	value   float64
	defined bool
}

// Defined creates a defined rate holding v
func Defined(v float64) Rate {
	return Rate{value: v, defined: true}
}

// Undefined creates the undefined rate
func Undefined() Rate {
	return Rate{}
}

// IsDefined reports whether the rate holds a value
func (r Rate) IsDefined() bool {
	return r.defined
}

// Value returns the rate value and whether it is defined
func (r Rate) Value() (float64, bool) {
	return r.value, r.defined
}

// Sub computes r - o, undefined when either operand is undefined
func (r Rate) Sub(o Rate) Rate {
	if !r.defined || !o.defined {
		return Undefined()
	}
	return Defined(r.value - o.value)
}

// Div computes r / o, undefined when either operand is undefined or the
// denominator is not strictly positive
func (r Rate) Div(o Rate) Rate {
	if !r.defined || !o.defined || o.value <= 0 {
		return Undefined()
	}
	return Defined(r.value / o.value)
}

// Less defines a total order for display purposes only: undefined sorts
// below every defined value. Never used in arithmetic.
func (r Rate) Less(o Rate) bool {
	if !r.defined {
		return o.defined
	}
	if !o.defined {
		return false
	}
	return r.value < o.value
}

// Percent renders the rate as a percentage with one decimal place
// (0.453 -> "45.3%"), or "-" when undefined
func (r Rate) Percent() string {
	if !r.defined {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", r.value*100)
}

// String renders the raw value, or "-" when undefined
func (r Rate) String() string {
	if !r.defined {
		return "-"
	}
	return strconv.FormatFloat(r.value, 'g', -1, 64)
}

// MarshalJSON renders a defined rate as a number and undefined as null
func (r Rate) MarshalJSON() ([]byte, error) {
	if !r.defined {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(r.value, 'g', -1, 64)), nil
}

// UnmarshalJSON accepts a number or null
func (r *Rate) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = Undefined()
		return nil
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return err
	}
	*r = Defined(v)
	return nil
}
