package domain

import "fmt"

// Money keeps the float64 semantics of the upstream ledger. All monetary
// arithmetic goes through this type so a later switch to fixed-point
// decimals touches one place.
type Money float64

func (m Money) Percent(p float64) Money {
	return Money(float64(m) * p)
}

func (m Money) Add(other Money) Money {
	return m + other
}

// Display renders two decimal places. Rounding happens only here,
// never during computation.
func (m Money) Display() string {
	return fmt.Sprintf("%.2f", float64(m))
}

func (m Money) Float64() float64 {
	return float64(m)
}
