// Package toys holds the small standalone helpers from the learning log:
// pet-age converters, random pickers and an LLM cost estimator.
package toys

import (
	"sort"
	"strings"
)

// DogAge converts human years to dog years.
func DogAge(humanAge float64) float64 {
	return humanAge / 7
}

// GoldfishAge converts human years to goldfish years.
func GoldfishAge(humanAge float64) float64 {
	return humanAge / 5
}

// CatAge treats the first 14 human years as the first two cat years and
// every 4 human years after that as one more.
func CatAge(humanAge float64) float64 {
	if humanAge <= 14 {
		return humanAge / 7
	}
	return 2 + (humanAge-14)/4
}

type AgeFunc func(float64) float64

var species = map[string]AgeFunc{
	"dog":      DogAge,
	"goldfish": GoldfishAge,
	"cat":      CatAge,
}

// AgeFor looks up the converter for a species name, ignoring case.
func AgeFor(name string) (AgeFunc, bool) {
	fn, ok := species[strings.ToLower(name)]
	return fn, ok
}

// SpeciesNames returns the known species in sorted order.
func SpeciesNames() []string {
	names := make([]string, 0, len(species))
	for name := range species {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
