package docfields

import "strings"

// Validator checks extracted fields against a required-field policy.
// The zero value is not usable; construct with NewValidator.
type Validator struct {
	required []string
}

// NewValidator builds a validator for the given required-field names.
// The slice is copied; its order is preserved in every Validate result so
// responses stay deterministic and diffable.
func NewValidator(required []string) *Validator {
	r := make([]string, len(required))
	copy(r, required)
	return &Validator{required: r}
}

// Required returns the policy's field names in declared order.
func (v *Validator) Required() []string {
	out := make([]string, len(v.required))
	copy(out, v.required)
	return out
}

// Validate reports the required fields that are absent or empty after
// trimming, in declared policy order. Pure: no I/O, input not mutated.
func (v *Validator) Validate(fields DocumentFields) (missing []string, ok bool) {
	missing = make([]string, 0, len(v.required))
	for _, name := range v.required {
		val := fields.Get(name)
		if val == nil || strings.TrimSpace(*val) == "" {
			missing = append(missing, name)
		}
	}
	return missing, len(missing) == 0
}
