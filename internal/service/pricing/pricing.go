// Package pricing computes the unit rate and total amount of a milk
// delivery from the owner's linear coefficients.
package pricing

// Coefficients are the owner's pricing inputs: rate = fat*A + B.
type Coefficients struct {
	A float64
	B float64
}

// Quote is the priced result for one delivery.
type Quote struct {
	Rate        float64
	TotalAmount float64
}

// Rate computes the per-unit rate for the given fat percentage.
func Rate(fat float64, c Coefficients) float64 {
	return fat*c.A + c.B
}

// Compute prices a delivery. A non-nil overrideRate or overrideTotal is used
// verbatim in place of the computed value; overrides are only honored at
// entry creation, updates always recompute.
func Compute(fat, quantity float64, c Coefficients, overrideRate, overrideTotal *float64) Quote {
	rate := Rate(fat, c)
	if overrideRate != nil {
		rate = *overrideRate
	}

	total := quantity * rate
	if overrideTotal != nil {
		total = *overrideTotal
	}

	return Quote{Rate: rate, TotalAmount: total}
}
