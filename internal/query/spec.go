// Package query builds row predicates from validated filter
// specifications. A Spec is an immutable value object: it is validated at
// construction so that an inverted year range or unknown dimension value
// is caught as a caller bug, long before any panel data is touched.
package query

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"oceanwatch/internal/panel"
)

// All is the sentinel selection meaning "every geography at the requested
// scale" or "every economic unit at the requested level". It never widens
// the scale or level itself; that would silently double count.
const All = "ALL"

// ErrInvalidSpec indicates a filter spec that is wrong by construction,
// e.g. year_min greater than year_max. This is a caller logic error, not
// a data condition, and is reported at spec-construction time.
var ErrInvalidSpec = errors.New("invalid filter spec")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Spec selects a slice of the panel across its five filter dimensions.
// The zero value is not usable; build specs with NewSpec.
type Spec struct {
	Scale    panel.GeoScale `json:"scale"`
	GeoName  string         `json:"geography" validate:"required"`
	Level    panel.AggLevel `json:"level"`
	UnitName string         `json:"unit" validate:"required"`
	YearMin  int            `json:"year_min" validate:"required"`
	YearMax  int            `json:"year_max" validate:"required,gtefield=YearMin"`
}

// NewSpec builds and validates a filter spec. It fails fast with an
// ErrInvalidSpec-wrapped error on any constraint violation.
func NewSpec(scale panel.GeoScale, geoName string, level panel.AggLevel, unitName string, yearMin, yearMax int) (Spec, error) {
	s := Spec{
		Scale:    scale,
		GeoName:  geoName,
		Level:    level,
		UnitName: unitName,
		YearMin:  yearMin,
		YearMax:  yearMax,
	}
	if err := s.Validate(); err != nil {
		return Spec{}, err
	}
	return s, nil
}

// Validate checks structural and cross-field constraints.
func (s Spec) Validate() error {
	if !s.Scale.IsValid() {
		return fmt.Errorf("%w: unknown geography scale %d", ErrInvalidSpec, int(s.Scale))
	}
	if !s.Level.IsValid() {
		return fmt.Errorf("%w: unknown aggregation level %d", ErrInvalidSpec, int(s.Level))
	}
	if s.YearMin > s.YearMax {
		return fmt.Errorf("%w: year_min %d greater than year_max %d", ErrInvalidSpec, s.YearMin, s.YearMax)
	}
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidSpec, err.Error())
	}
	return nil
}

// AllGeographies reports whether the spec selects every geography at its
// scale.
func (s Spec) AllGeographies() bool { return s.GeoName == All }

// AllUnits reports whether the spec selects every economic unit at its
// level.
func (s Spec) AllUnits() bool { return s.UnitName == All }
