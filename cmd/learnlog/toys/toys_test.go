package toyscmder

import (
	"bytes"
	"slices"
	"strconv"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnlog/internal/usecase/toys"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := &cobra.Command{Use: "learnlog", SilenceUsage: true, SilenceErrors: true}
	root.AddCommand(NewToysCmds()...)

	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return strings.TrimSpace(out.String()), err
}

func TestAgeCommand(t *testing.T) {
	out, err := run(t, "age", "cat", "18")
	require.NoError(t, err)
	assert.Equal(t, "3", out)

	out, err = run(t, "age", "Dog", "35")
	require.NoError(t, err)
	assert.Equal(t, "5", out)

	_, err = run(t, "age", "hamster", "3")
	assert.Error(t, err)
}

func TestIngredientCommand(t *testing.T) {
	out, err := run(t, "ingredient", "--seed", "42")
	require.NoError(t, err)
	assert.True(t, slices.Contains(toys.Ingredients, out), out)
}

func TestNumberCommand(t *testing.T) {
	out, err := run(t, "number", "1", "3")
	require.NoError(t, err)
	n, err := strconv.Atoi(out)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n, 1)
	assert.LessOrEqual(t, n, 3)

	_, err = run(t, "number", "3", "1")
	assert.ErrorIs(t, err, toys.ErrInvalidRange)
}

func TestCostCommand(t *testing.T) {
	out, err := run(t, "cost", "4000")
	require.NoError(t, err)
	assert.Equal(t, "$0.0150", out)

	out, err = run(t, "cost", "8000", "--price", "0.01")
	require.NoError(t, err)
	assert.Equal(t, "$0.0200", out)
}
