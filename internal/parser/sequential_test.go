package parser

import (
	"context"
	"errors"
	"strings"
	"testing"

	"species-matrix/internal/logger"
	"species-matrix/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	logs     []string
	warnings []string
	progress []int
	issues   []int
}

func (r *recorder) Issue(row int, err error) {
	r.issues = append(r.issues, row)
}

func (r *recorder) Log(level logger.Level, msg string) {
	r.logs = append(r.logs, msg)
	if level == logger.LevelWarn {
		r.warnings = append(r.warnings, msg)
	}
}

func (r *recorder) Progress(percent int, label string) {
	r.progress = append(r.progress, percent)
}

func TestSequentialAggregatesDuplicates(t *testing.T) {
	grid := model.NewGrid(
		[]interface{}{"物种名称", "1-1-1"},
		[]interface{}{"Oak", 3},
		[]interface{}{"Oak", 5},
		[]interface{}{"Pine", "2"},
	)

	res, err := ParseSequential(context.Background(), grid, DefaultOptions(), Discard)
	require.NoError(t, err)

	assert.Equal(t, map[string]float64{"Oak": 8, "Pine": 2}, res.Data["1-1-1"])
	assert.Equal(t, 3, res.Records)
}

func TestSequentialKeepFirstPolicy(t *testing.T) {
	grid := model.NewGrid(
		[]interface{}{"物种名称 1-1-1"},
		[]interface{}{"Oak", 3},
		[]interface{}{"Oak", 5},
	)

	opts := DefaultOptions()
	opts.Policy = model.PolicyKeepFirst

	res, err := ParseSequential(context.Background(), grid, opts, Discard)
	require.NoError(t, err)
	assert.Equal(t, 3.0, res.Data["1-1-1"]["Oak"])
}

func TestSequentialHeaderExtraction(t *testing.T) {
	tests := []struct {
		name   string
		header []interface{}
		want   string
	}{
		{"Second cell fallback", []interface{}{"物种名称 样地A", "1-1-1"}, "1-1-1"},
		{"Triplet in label wins", []interface{}{"物种名称 2-1-3", "9-9-9"}, "2-1-3"},
		{"Pair in label", []interface{}{"物种名称\t4-2"}, "4-2"},
		{"Bare integer", []interface{}{"物种名称 12"}, "12"},
		{"Numeric second cell", []interface{}{"物种名称", 7}, "7"},
		{"Text label in second cell", []interface{}{"物种名称", " 样地A "}, "样地A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grid := model.NewGrid(tt.header, []interface{}{"Oak", 1})
			res, err := ParseSequential(context.Background(), grid, DefaultOptions(), Discard)
			require.NoError(t, err)
			assert.Equal(t, []string{tt.want}, res.PlotOrder)
			assert.Equal(t, 1.0, res.Data[tt.want]["Oak"])
		})
	}
}

func TestSequentialUnrecognizedHeaderKeepsContext(t *testing.T) {
	grid := model.NewGrid(
		[]interface{}{"物种名称 1-1-1"},
		[]interface{}{"Oak", 1},
		[]interface{}{"物种名称"},
		[]interface{}{"Pine", 2},
	)
	rec := &recorder{}

	res, err := ParseSequential(context.Background(), grid, DefaultOptions(), rec)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Warnings)
	assert.Equal(t, map[string]float64{"Oak": 1, "Pine": 2}, res.Data["1-1-1"])
	require.Len(t, rec.warnings, 1)
	assert.Contains(t, rec.warnings[0], "row 3")
	assert.Equal(t, []int{3}, rec.issues)
}

func TestSequentialCountCoercion(t *testing.T) {
	grid := model.NewGrid(
		[]interface{}{"物种名称", "P1"},
		[]interface{}{"Oak", "12 stems"},
		[]interface{}{"Pine", "n/a"},
		[]interface{}{"Birch"},
		[]interface{}{"Fern", 2.5},
	)

	res, err := ParseSequential(context.Background(), grid, DefaultOptions(), Discard)
	require.NoError(t, err)

	assert.Equal(t, map[string]float64{"Oak": 12, "Pine": 0, "Birch": 0, "Fern": 2.5}, res.Data["P1"])
}

func TestSequentialFullWidthCounts(t *testing.T) {
	grid := model.NewGrid(
		[]interface{}{"物种名称 1-1-1"},
		[]interface{}{"Oak", "３"},
		[]interface{}{"Pine", "１２株"},
	)

	res, err := ParseSequential(context.Background(), grid, DefaultOptions(), Discard)
	require.NoError(t, err)

	assert.Equal(t, map[string]float64{"Oak": 3, "Pine": 12}, res.Data["1-1-1"])
}

func TestSequentialSkipsRowsOutsidePlots(t *testing.T) {
	grid := model.NewGrid(
		[]interface{}{"Survey 2024"},
		[]interface{}{"Oak", 4},
		[]interface{}{nil, nil},
		[]interface{}{"物种名称 1-1"},
		[]interface{}{42, 1},
		[]interface{}{"   ", 3},
		[]interface{}{"Pine", 1},
	)

	res, err := ParseSequential(context.Background(), grid, DefaultOptions(), Discard)
	require.NoError(t, err)

	assert.Equal(t, model.PlotData{"1-1": {"Pine": 1}}, res.Data)
}

func TestSequentialRegistersEmptyPlots(t *testing.T) {
	grid := model.NewGrid(
		[]interface{}{"物种名称 1-1-1"},
		[]interface{}{"物种名称 1-1-2"},
		[]interface{}{"Oak", 1},
	)

	res, err := ParseSequential(context.Background(), grid, DefaultOptions(), Discard)
	require.NoError(t, err)

	assert.Equal(t, []string{"1-1-1", "1-1-2"}, res.PlotOrder)
	assert.Empty(t, res.Data["1-1-1"])
}

func TestSequentialNoPlotFound(t *testing.T) {
	grid := model.NewGrid(
		[]interface{}{"Oak", 3},
		[]interface{}{"物种名称"},
	)

	_, err := ParseSequential(context.Background(), grid, DefaultOptions(), Discard)
	assert.True(t, errors.Is(err, ErrNoPlotFound))
}

func TestSequentialCancellation(t *testing.T) {
	grid := model.NewGrid(
		[]interface{}{"物种名称 1"},
		[]interface{}{"Oak", 1},
		[]interface{}{"物种名称 2"},
		[]interface{}{"Pine", 1},
		[]interface{}{"物种名称 3"},
		[]interface{}{"Fern", 1},
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var logs []string
	events := EventFuncs{OnLog: func(level logger.Level, msg string) {
		logs = append(logs, msg)
		if strings.HasPrefix(msg, "Found plot: 2") {
			cancel()
		}
	}}

	res, err := ParseSequential(ctx, grid, DefaultOptions(), events)
	assert.Nil(t, res)
	assert.True(t, errors.Is(err, ErrCancelled))
	assert.True(t, IsCancelled(err))
	assert.Contains(t, logs, "Processing interrupted at row 4")
}

func TestSequentialProgressIsMonotonicWithinRange(t *testing.T) {
	rows := [][]interface{}{{"物种名称 1-1-1"}}
	for i := 0; i < 200; i++ {
		rows = append(rows, []interface{}{"Species", i})
	}
	rec := &recorder{}

	_, err := ParseSequential(context.Background(), model.NewGrid(rows...), DefaultOptions(), rec)
	require.NoError(t, err)

	require.NotEmpty(t, rec.progress)
	for i, p := range rec.progress {
		assert.GreaterOrEqual(t, p, DefaultProgressStart)
		assert.LessOrEqual(t, p, DefaultProgressEnd)
		if i > 0 {
			assert.GreaterOrEqual(t, p, rec.progress[i-1])
		}
	}
	assert.Equal(t, DefaultProgressEnd, rec.progress[len(rec.progress)-1])
}

func TestSequentialCustomMarker(t *testing.T) {
	grid := model.NewGrid(
		[]interface{}{"Species name", "A-1"},
		[]interface{}{"Oak", 2},
	)
	opts := DefaultOptions()
	opts.PlotMarker = "Species name"

	res, err := ParseSequential(context.Background(), grid, opts, nil)
	require.NoError(t, err)
	assert.Equal(t, 2.0, res.Data["A-1"]["Oak"])
}
