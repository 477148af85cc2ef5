// Package money represents amounts as integer minor units (cents) so that
// totals and payment-amount comparisons are exact.
package money

import (
	"fmt"
	"math"
)

// Cents is a monetary amount in minor units.
type Cents int64

const (
	// TaxRate is applied to the order subtotal.
	TaxRate = 0.08
	// FreeShippingThreshold is the subtotal at which shipping becomes free.
	FreeShippingThreshold Cents = 5000
	// StandardShippingCost applies below the free-shipping threshold.
	StandardShippingCost Cents = 599
)

// ApplyRate multiplies the amount by a fractional rate, rounding half up.
func (c Cents) ApplyRate(rate float64) Cents {
	return Cents(math.Floor(float64(c)*rate + 0.5))
}

// Times scales the amount by a quantity.
func (c Cents) Times(qty int) Cents {
	return c * Cents(qty)
}

func (c Cents) String() string {
	sign := ""
	v := int64(c)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s$%d.%02d", sign, v/100, v%100)
}

// ShippingCost returns the shipping charge for a given subtotal.
func ShippingCost(subtotal Cents) Cents {
	if subtotal >= FreeShippingThreshold {
		return 0
	}
	return StandardShippingCost
}
