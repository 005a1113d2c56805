package parser

import (
	"context"
	"errors"
	"testing"

	"species-matrix/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGridSingleTable(t *testing.T) {
	grid := model.NewGrid(
		[]interface{}{"Site survey"},
		[]interface{}{"物种", "P1", "P2", nil, "ignored"},
		[]interface{}{"Oak", 2, "3"},
		[]interface{}{"Pine", nil, "5 stems"},
	)

	res, err := ParseGrid(context.Background(), grid, DefaultOptions(), Discard)
	require.NoError(t, err)
	require.Len(t, res.Tables, 1)

	table := res.Tables[0]
	assert.Equal(t, model.CellRef{Row: 1, Col: 0}, table.Anchor)
	assert.Equal(t, []string{"P1", "P2"}, table.Plots)
	assert.Equal(t, []string{"Oak", "Pine"}, table.Species)
	assert.Equal(t, []float64{2, 3}, table.Values["Oak"])
	assert.Equal(t, []float64{0, 5}, table.Values["Pine"])
	assert.Equal(t, 2, res.Records)
}

func TestParseGridMultipleTables(t *testing.T) {
	grid := model.NewGrid(
		[]interface{}{"物种", "P1", "P2"},
		[]interface{}{"Oak", 2, 0},
		[]interface{}{nil},
		[]interface{}{nil, nil, "物种", "P2", "P3"},
		[]interface{}{nil, nil, "Oak", 5, 1},
		[]interface{}{nil, nil, "Fern", 4, 4},
	)

	res, err := ParseGrid(context.Background(), grid, DefaultOptions(), Discard)
	require.NoError(t, err)
	require.Len(t, res.Tables, 2)

	assert.Equal(t, []string{"Oak"}, res.Tables[0].Species)
	second := res.Tables[1]
	assert.Equal(t, model.CellRef{Row: 3, Col: 2}, second.Anchor)
	assert.Equal(t, []string{"P2", "P3"}, second.Plots)
	assert.Equal(t, []float64{5, 1}, second.Values["Oak"])
	assert.Equal(t, 1, second.PlotIndex("P3"))
	assert.Equal(t, -1, second.PlotIndex("P1"))
}

func TestParseGridTruncatesSpeciesNames(t *testing.T) {
	grid := model.NewGrid(
		[]interface{}{"物种", "P1"},
		[]interface{}{"Quercus robur", 1},
		[]interface{}{"Quercus petraea", 2},
		[]interface{}{"Pinus ", 3},
	)
	rec := &recorder{}

	res, err := ParseGrid(context.Background(), grid, DefaultOptions(), rec)
	require.NoError(t, err)

	table := res.Tables[0]
	assert.Equal(t, []string{"Quercus", "Pinus"}, table.Species)
	assert.Equal(t, []float64{3}, table.Values["Quercus"])
	assert.Equal(t, 2, res.Truncated)
	assert.Len(t, rec.warnings, 1)
}

func TestParseGridKeepFullNames(t *testing.T) {
	grid := model.NewGrid(
		[]interface{}{"物种", "P1"},
		[]interface{}{"Quercus robur", 1},
		[]interface{}{"Quercus petraea", 2},
	)
	opts := DefaultOptions()
	opts.KeepFullNames = true

	res, err := ParseGrid(context.Background(), grid, opts, Discard)
	require.NoError(t, err)
	assert.Equal(t, []string{"Quercus robur", "Quercus petraea"}, res.Tables[0].Species)
	assert.Zero(t, res.Truncated)
}

func TestParseGridDuplicatePolicy(t *testing.T) {
	grid := model.NewGrid(
		[]interface{}{"物种", "P1", "P2"},
		[]interface{}{"Oak", 1, 2},
		[]interface{}{"Oak", 3, 4},
	)

	res, err := ParseGrid(context.Background(), grid, DefaultOptions(), Discard)
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 6}, res.Tables[0].Values["Oak"])

	opts := DefaultOptions()
	opts.Policy = model.PolicyKeepFirst
	res, err = ParseGrid(context.Background(), grid, opts, Discard)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, res.Tables[0].Values["Oak"])
}

func TestParseGridShortRowsPadWithZero(t *testing.T) {
	grid := model.NewGrid(
		[]interface{}{"物种", "P1", "P2", "P3"},
		[]interface{}{"Oak", 7},
		[]interface{}{"Pine", "n/a", -2, 1.5},
	)

	res, err := ParseGrid(context.Background(), grid, DefaultOptions(), Discard)
	require.NoError(t, err)
	assert.Equal(t, []float64{7, 0, 0}, res.Tables[0].Values["Oak"])
	assert.Equal(t, []float64{0, 0, 1.5}, res.Tables[0].Values["Pine"])
}

func TestParseGridErrors(t *testing.T) {
	t.Run("No anchor", func(t *testing.T) {
		grid := model.NewGrid([]interface{}{"物种名称", "P1"}, []interface{}{"Oak", 1})
		_, err := ParseGrid(context.Background(), grid, DefaultOptions(), Discard)
		assert.True(t, errors.Is(err, ErrNoHeaderFound))
	})

	t.Run("Only empty tables", func(t *testing.T) {
		grid := model.NewGrid(
			[]interface{}{"物种", "P1"},
			[]interface{}{nil},
			[]interface{}{"物种", "P2"},
		)
		res, err := ParseGrid(context.Background(), grid, DefaultOptions(), Discard)
		assert.Nil(t, res)
		assert.True(t, errors.Is(err, ErrNoDataExtracted))
		assert.True(t, IsStructural(err))
	})

	t.Run("Cancelled", func(t *testing.T) {
		grid := model.NewGrid([]interface{}{"物种", "P1"}, []interface{}{"Oak", 1})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := ParseGrid(ctx, grid, DefaultOptions(), Discard)
		assert.True(t, errors.Is(err, ErrCancelled))
		assert.False(t, IsStructural(err))
	})
}

func TestParseGridWarnsOnTablesSharingARow(t *testing.T) {
	grid := model.NewGrid(
		[]interface{}{"物种", "P1", nil, "物种", "P2"},
		[]interface{}{"Oak", 1, nil, "Pine", 2},
	)

	rec := &recorder{}
	res, err := ParseGrid(context.Background(), grid, DefaultOptions(), rec)
	require.NoError(t, err)

	require.Len(t, res.Tables, 1)
	assert.Equal(t, []string{"P2"}, res.Tables[0].Plots)
	assert.Equal(t, []float64{2}, res.Tables[0].Values["Pine"])
	assert.Equal(t, 1, res.Warnings)
	require.Len(t, rec.warnings, 1)
	assert.Contains(t, rec.warnings[0], "shares its row with the next table")
}

func TestFindAnchors(t *testing.T) {
	grid := model.NewGrid(
		[]interface{}{" 物种 ", "物种名称", nil, "物种"},
		[]interface{}{nil, 5},
		[]interface{}{nil, "物种"},
	)

	assert.Equal(t, []model.CellRef{{Row: 0, Col: 0}, {Row: 0, Col: 3}, {Row: 2, Col: 1}}, FindAnchors(grid, "物种"))
	assert.Empty(t, FindAnchors(grid, "Species"))
}
