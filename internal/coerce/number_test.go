package coerce

import (
	"math"
	"testing"

	"species-matrix/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   float64
		wantOK bool
	}{
		{"Integer", "12", 12, true},
		{"Decimal", "2.5", 2.5, true},
		{"Padded", "  7 ", 7, true},
		{"Embedded count", "12 stems", 12, true},
		{"Embedded decimal", "about 3.25 m", 3.25, true},
		{"Chinese unit", "15株", 15, true},
		{"Full-width count", "１２株", 12, true},
		{"Full-width digit", "３", 3, true},
		{"Full-width decimal", "２．５", 2.5, true},
		{"Not a number", "n/a", 0, false},
		{"Empty", "", 0, false},
		{"Whitespace", "   ", 0, false},
		{"NaN text", "NaN", 0, false},
		{"Infinity text", "inf", 0, false},
		{"Dotted version", "1.2.3", 1.2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseNumber(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValue(t *testing.T) {
	tests := []struct {
		name   string
		cell   model.Cell
		want   float64
		wantOK bool
	}{
		{"Number", model.Number(4), 4, true},
		{"Fraction", model.Number(0.5), 0.5, true},
		{"Text number", model.Text("12 stems"), 12, true},
		{"Bad text", model.Text("n/a"), 0, false},
		{"Empty", model.Empty(), 0, false},
		{"Negative number", model.Number(-3), 0, false},
		{"Negative text", model.Text("-3"), 0, false},
		{"NaN", model.Number(math.NaN()), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Value(tt.cell)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCountOrZero(t *testing.T) {
	assert.Equal(t, 12.0, CountOrZero(model.Text("12 stems")))
	assert.Equal(t, 0.0, CountOrZero(model.Text("n/a")))
	assert.Equal(t, 0.0, CountOrZero(model.Empty()))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "8", Format(8))
	assert.Equal(t, "0", Format(0))
	assert.Equal(t, "2.5", Format(2.5))
	assert.True(t, IsIntegral(3))
	assert.False(t, IsIntegral(3.1))
}
