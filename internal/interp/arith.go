package interp

import (
	"math"

	"github.com/ThornLang/thorn/internal/value"
)

func numberPow(base, exp value.Number) value.Number {
	return value.Number(math.Pow(float64(base), float64(exp)))
}

func modFloat(a, b float64) float64 {
	return math.Mod(a, b)
}
