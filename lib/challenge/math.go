package challenge

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
)

func init() {
	Register("math", mathGenerator{})
}

// mathGenerator asks for the solution of a small algebra, arithmetic, or
// calculus problem. Numeric answers are rounded to two decimals and
// matched with tolerance by the verifier, so registrants don't need to
// reproduce the exact rounding.
type mathGenerator struct{}

func (mathGenerator) Generate(rng *rand.Rand) (string, string) {
	switch rng.Intn(3) {
	case 0: // solve ax + b = c for x
		a := randRange(rng, 2, 20)
		b := randRange(rng, -50, 50)
		c := randRange(rng, -100, 100)
		question := fmt.Sprintf("Solve for x: %dx + (%d) = %d. Provide the answer as a decimal number.", a, b, c)
		return question, formatDecimal(float64(c-b) / float64(a))

	case 1: // evaluate ((a + b) * c) / d
		a := randRange(rng, 10, 100)
		b := randRange(rng, 10, 100)
		c := randRange(rng, 2, 10)
		d := randRange(rng, 2, 10)
		question := fmt.Sprintf("Calculate: ((%d + %d) * %d) / %d. Provide the answer as a decimal number.", a, b, c, d)
		return question, formatDecimal(float64((a+b)*c) / float64(d))

	default: // derivative of ax^2 + bx
		a := randRange(rng, 1, 10)
		b := randRange(rng, 1, 10)
		question := fmt.Sprintf("What is the derivative of f(x) = %dx^2 + %dx with respect to x? Provide in the form 'ax + b'.", a, b)
		return question, fmt.Sprintf("%dx + %d", 2*a, b)
	}
}

// formatDecimal renders x rounded to two decimal places, without
// trailing zeros.
func formatDecimal(x float64) string {
	return strconv.FormatFloat(math.Round(x*100)/100, 'f', -1, 64)
}
