package model

import "fmt"

// Cents is a money amount in USD cents. All prices and totals on the wire
// and in memory use cents so totals stay exact.
type Cents int64

func (c Cents) Dollars() float64 {
	return float64(c) / 100
}

func (c Cents) Format() string {
	sign := ""
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s$%d.%02d", sign, c/100, c%100)
}
