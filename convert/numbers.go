package convert

import (
	"math"
)

func OneDecimal(number float64) float64 {
	return RoundFloat64(number, 1)
}

func RoundFloat64(number float64, decimals int) float64 {
	return math.Round(number*math.Pow10(decimals)) / math.Pow10(decimals)
}
