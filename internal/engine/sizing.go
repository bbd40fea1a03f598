package engine

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidSizing marks a position-sizing call with non-positive stop-loss
// distance or pip value. Configuration validation should make this
// unreachable at runtime.
var ErrInvalidSizing = errors.New("invalid sizing configuration")

// UnitsForRisk converts a USD risk budget and a stop-loss distance into a
// position size:
//
//	units = floor(riskUSD / (slPips * pipValue))
//
// pipValue is the USD value of one pip per unit (the pip size, for USD-quoted
// pairs). The result is never negative; zero units is a valid answer meaning
// "no trade", and callers must not place a zero-unit order.
func UnitsForRisk(riskUSD, slPips, pipValue float64) (int, error) {
	if slPips <= 0 {
		return 0, fmt.Errorf("%w: stop-loss pips %v", ErrInvalidSizing, slPips)
	}
	if pipValue <= 0 {
		return 0, fmt.Errorf("%w: pip value %v", ErrInvalidSizing, pipValue)
	}
	units := int(math.Floor(riskUSD / (slPips * pipValue)))
	if units < 0 {
		units = 0
	}
	return units, nil
}
