// Package types holds small value objects shared across modules.
package types

import "math"

type Money struct {
	Amount   int64
	Currency string
}

// DefaultCurrency is used whenever a record carries no explicit currency.
const DefaultCurrency = "JPY"

func Yen(amount int64) Money {
	return Money{Amount: amount, Currency: DefaultCurrency}
}

// RoundYen rounds a fractional amount half-up to the nearest whole yen.
func RoundYen(v float64) int64 {
	if v >= 0 {
		return int64(math.Floor(v + 0.5))
	}
	return -int64(math.Floor(-v + 0.5))
}
