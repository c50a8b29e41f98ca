// Package javafmt renders floating point values exactly as Java's Double.toString and
// Float.toString do (JDK 19 and later), so text fixtures compare byte for byte.
package javafmt

import (
	"math"
	"strconv"
	"strings"
)

// FormatDouble formats f like Double.toString.
func FormatDouble(f float64) string {
	return format(f, 64)
}

// FormatFloat formats f like Float.toString.
func FormatFloat(f float32) string {
	return format(float64(f), 32)
}

func format(f float64, bitSize int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		if math.Signbit(f) {
			return "-0.0"
		}
		return "0.0"
	}

	var b strings.Builder
	if f < 0 {
		b.WriteByte('-')
		f = -f
	}

	digits, exp := shortest(f, bitSize)
	switch {
	case exp >= 0 && exp < 7:
		if len(digits) <= exp+1 {
			b.WriteString(digits)
			b.WriteString(strings.Repeat("0", exp+1-len(digits)))
			b.WriteString(".0")
		} else {
			b.WriteString(digits[:exp+1])
			b.WriteByte('.')
			b.WriteString(digits[exp+1:])
		}
	case exp < 0 && exp >= -3:
		b.WriteString("0.")
		b.WriteString(strings.Repeat("0", -exp-1))
		b.WriteString(digits)
	default:
		b.WriteByte(digits[0])
		b.WriteByte('.')
		if len(digits) > 1 {
			b.WriteString(digits[1:])
		} else {
			b.WriteByte('0')
		}
		b.WriteByte('E')
		b.WriteString(strconv.Itoa(exp))
	}
	return b.String()
}

// shortest returns the significant digits and decimal exponent of the shortest
// decimal that rounds to f. Java never settles for a single digit: when one digit
// would do, the closest two-digit decimal is used instead (4.9E-324, not 5E-324).
func shortest(f float64, bitSize int) (string, int) {
	digits, exp := split(strconv.FormatFloat(f, 'e', -1, bitSize))
	if len(digits) == 1 {
		digits, exp = split(strconv.FormatFloat(f, 'e', 1, bitSize))
		if t := strings.TrimRight(digits, "0"); t != "" {
			digits = t
		}
	}
	return digits, exp
}

// split breaks "d.ddde±xx" into "dddd" and the exponent.
func split(s string) (string, int) {
	mant, e, _ := strings.Cut(s, "e")
	exp, _ := strconv.Atoi(e)
	return strings.Replace(mant, ".", "", 1), exp
}
