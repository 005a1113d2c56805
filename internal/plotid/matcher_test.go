package plotid

import (
	"testing"

	"species-matrix/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name        string
		label       model.Cell
		next        model.Cell
		wantID      string
		wantMatcher string
		wantOK      bool
	}{
		{"Triplet in label", model.Text("物种名称 1-1-1"), model.Empty(), "1-1-1", "dash-triplet", true},
		{"Triplet beats second cell", model.Text("物种名称\t2-3-4"), model.Text("9-9-9"), "2-3-4", "dash-triplet", true},
		{"Pair in label", model.Text("物种名称 3-12"), model.Empty(), "3-12", "dash-pair", true},
		{"Bare integer in label", model.Text("物种名称7"), model.Empty(), "7", "bare-integer", true},
		{"Second cell text", model.Text("物种名称 样地A"), model.Text(" 1-1-1 "), "1-1-1", "literal-text", true},
		{"Second cell number", model.Text("物种名称"), model.Number(12), "12", "literal-text", true},
		{"Nothing", model.Text("物种名称"), model.Text("  "), "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, ok := Extract(tt.label, tt.next)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, res.ID)
			assert.Equal(t, tt.wantMatcher, res.Matcher)
		})
	}
}

func TestLabelMatcherOrder(t *testing.T) {
	names := make([]string, 0, len(LabelMatchers))
	for _, m := range LabelMatchers {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"dash-triplet", "dash-pair", "bare-integer"}, names)
}
