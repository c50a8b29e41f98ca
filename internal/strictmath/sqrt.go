package strictmath

import "math"

// Sqrt returns the correctly rounded square root of x. IEEE 754 requires sqrt to be
// exact to the last bit, so fdlibm's e_sqrt and math.Sqrt agree on every input.
func Sqrt(x float64) float64 {
	return math.Sqrt(x)
}
