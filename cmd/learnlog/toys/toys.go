package toyscmder

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"learnlog/internal/usecase/toys"
)

// NewToysCmds returns the small standalone commands: age, ingredient,
// number and cost.
func NewToysCmds() []*cobra.Command {
	return []*cobra.Command{
		newAgeCmd(),
		newIngredientCmd(),
		newNumberCmd(),
		newCostCmd(),
	}
}

func newAgeCmd() *cobra.Command {
	species := toys.SpeciesNames()

	return &cobra.Command{
		Use:   "age <" + strings.Join(species, "|") + "> <human-age>",
		Short: "Convert a human age to a pet age",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fn, ok := toys.AgeFor(args[0])
			if !ok {
				return fmt.Errorf("unknown species %q, want one of %s", args[0], strings.Join(species, ", "))
			}
			age, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("could not parse age %q: %w", args[1], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%g\n", fn(age))
			return nil
		},
	}
}

func newIngredientCmd() *cobra.Command {
	var seed uint64

	cmd := &cobra.Command{
		Use:   "ingredient",
		Short: "Pick a random smoothie ingredient",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), toys.RandomIngredient(newRand(cmd, seed)))
			return nil
		},
	}
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Seed for reproducible picks")
	return cmd
}

func newNumberCmd() *cobra.Command {
	var seed uint64

	cmd := &cobra.Command{
		Use:   "number <x> <y>",
		Short: "Pick a random integer between x and y, inclusive",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("could not parse x %q: %w", args[0], err)
			}
			y, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("could not parse y %q: %w", args[1], err)
			}
			n, err := toys.RandomNumber(newRand(cmd, seed), x, y)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	}
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Seed for reproducible picks")
	return cmd
}

func newCostCmd() *cobra.Command {
	var price float64

	cmd := &cobra.Command{
		Use:   "cost <characters>",
		Short: "Estimate what a prompt of n characters costs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chars, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("could not parse characters %q: %w", args[0], err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), toys.EstimateCost(chars, price))
			return nil
		},
	}
	cmd.Flags().Float64Var(&price, "price", toys.DefaultPricePer1000Tokens, "Price per 1000 tokens")
	return cmd
}

func newRand(cmd *cobra.Command, seed uint64) *rand.Rand {
	if cmd.Flags().Changed("seed") {
		return rand.New(rand.NewPCG(seed, seed))
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}
