package results

import (
	"fmt"
	"math"
	"math/big"
)

var (
	hundred = big.NewFloat(100)
	half    = big.NewFloat(0.5)
)

// FormatPercent renders a probability as a percentage with two decimals,
// e.g. 0.12345 -> "12.35%". Rounding is half-up on the exact binary value
// of p*100, matching Number.prototype.toFixed.
func FormatPercent(p float64) string {
	pct := p * 100
	switch {
	case math.IsNaN(pct):
		return "NaN%"
	case math.IsInf(pct, 1):
		return "Infinity%"
	case math.IsInf(pct, -1):
		return "-Infinity%"
	}

	// 256 bits keeps the scaled value and the +0.5 exact.
	x := new(big.Float).SetPrec(256).SetFloat64(math.Abs(pct))
	x.Mul(x, hundred).Add(x, half)
	cents, _ := x.Int(nil)

	whole, frac := new(big.Int).QuoRem(cents, big.NewInt(100), new(big.Int))
	sign := ""
	if pct < 0 && cents.Sign() != 0 {
		sign = "-"
	}
	return fmt.Sprintf("%s%s.%02d%%", sign, whole.String(), frac.Int64())
}
