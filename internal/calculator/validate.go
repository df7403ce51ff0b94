package calculator

import (
	"math"

	"github.com/stwalsh4118/estate/api/internal/models"
)

// check accumulates the first precondition failure so each calculator can list its rules in order.
type check struct {
	err *models.ValidationError
}

func (c *check) finite(field string, v float64) {
	if c.err == nil && (math.IsNaN(v) || math.IsInf(v, 0)) {
		c.err = models.NewValidationError(field, "must be a finite number")
	}
}

func (c *check) positive(field string, v float64) {
	c.finite(field, v)
	if c.err == nil && v <= 0 {
		c.err = models.NewValidationError(field, "must be > 0")
	}
}

func (c *check) nonNegative(field string, v float64) {
	c.finite(field, v)
	if c.err == nil && v < 0 {
		c.err = models.NewValidationError(field, "must be >= 0")
	}
}

func (c *check) atLeast(field string, v, floor float64) {
	c.finite(field, v)
	if c.err == nil && v < floor {
		c.err = models.NewValidationError(field, "must be >= %g", floor)
	}
}

func (c *check) greaterThan(field string, v, floor float64) {
	c.finite(field, v)
	if c.err == nil && v <= floor {
		c.err = models.NewValidationError(field, "must be > %g", floor)
	}
}

func (c *check) result() error {
	if c.err == nil {
		return nil
	}
	return c.err
}

// representable rejects inputs whose results overflow float64, which would otherwise
// surface as Inf or NaN in a response.
func representable(values ...float64) error {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return models.NewValidationError("result", "inputs produce a value outside the representable range")
		}
	}
	return nil
}
