package toys

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
)

var ErrInvalidRange = errors.New("invalid range")

// Ingredients are the smoothie ingredients RandomIngredient picks from.
var Ingredients = []string{
	"rainbow kale", "glitter berries", "unicorn tears", "coconut", "starlight honey",
	"lunar lemon", "blueberries", "mermaid mint", "dragon fruit", "pixie dust",
	"butterfly pea flower", "phoenix feather", "chocolate protein powder", "grapes", "hot peppers",
	"fairy floss", "avocado", "wizard's beard", "pineapple", "rosemary",
}

func RandomIngredient(r *rand.Rand) string {
	return Ingredients[r.IntN(len(Ingredients))]
}

// RandomNumber returns an integer in [x, y].
func RandomNumber(r *rand.Rand, x, y int) (int, error) {
	if x > y {
		return 0, fmt.Errorf("%w: lower bound %d is greater than upper bound %d", ErrInvalidRange, x, y)
	}
	// The span is computed unsigned: y-x+1 overflows int for wide ranges.
	span := uint64(y) - uint64(x)
	var v uint64
	if span == math.MaxUint64 {
		v = r.Uint64()
	} else {
		v = r.Uint64N(span + 1)
	}
	return x + int(v), nil
}
