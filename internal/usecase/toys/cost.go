package toys

import "fmt"

const DefaultPricePer1000Tokens = 0.015

// EstimateCost prices a text by assuming four characters per token.
func EstimateCost(characters int, pricePer1000Tokens float64) string {
	tokens := float64(characters) / 4
	cost := tokens / 1000 * pricePer1000Tokens
	return fmt.Sprintf("$%.4f", cost)
}
