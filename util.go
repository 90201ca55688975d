package entropy

import (
	"math"
	mathbits "math/bits"
)

// bitLength returns ⌈log2(x+1)⌉, the number of bits needed to write x in
// plain binary.  bitLength(0) is 0.
func bitLength(x int) int {
	if x <= 0 {
		return 0
	}
	return mathbits.Len(uint(x))
}

func isPowerOfTwo(x int) bool {
	return x > 0 && x&(x-1) == 0
}

func round(x float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(x*scale) / scale
}
