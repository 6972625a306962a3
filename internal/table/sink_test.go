package table

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type fakeSink struct {
	calls  []string
	failOn string
}

func (s *fakeSink) CreateGrid(at Point, rows, cols int, rowHeight, colWidth float64) (Grid, error) {
	s.calls = append(s.calls, fmt.Sprintf("create %v %dx%d %v %v", at, rows, cols, rowHeight, colWidth))
	if s.failOn == "create" {
		return nil, errors.New("host not running")
	}
	return s, nil
}

func (s *fakeSink) SetTextHeight(row int, height float64) error {
	s.calls = append(s.calls, fmt.Sprintf("height %d %v", row, height))
	return nil
}

func (s *fakeSink) MergeCells(fromRow, fromCol, toRow, toCol int) error {
	s.calls = append(s.calls, fmt.Sprintf("merge %d,%d-%d,%d", fromRow, fromCol, toRow, toCol))
	return nil
}

func (s *fakeSink) SetCellText(row, col int, text string) error {
	s.calls = append(s.calls, fmt.Sprintf("text %d,%d %q", row, col, text))
	if s.failOn == "text" {
		return errors.New("cell locked")
	}
	return nil
}

func TestApplyOrder(t *testing.T) {
	layout, err := Build([]Row{{"a"}}, Spec{
		Title:          "T",
		ColumnNames:    []string{"X"},
		RowHeight:      2.5,
		ColumnWidth:    15,
		TextHeight:     1,
		InsertionPoint: Point{X: 1, Y: 2},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sink := &fakeSink{}
	if err := Apply(layout, sink); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []string{
		"create {1 2} 3x2 2.5 15",
		"height 0 1",
		"height 1 1",
		"height 2 1",
		"merge 0,0-0,1",
		`text 0,0 "T"`,
		`text 1,0 "TT"`,
		`text 1,1 "X"`,
		`text 2,0 "1"`,
		`text 2,1 "a"`,
	}
	if diff := cmp.Diff(expected, sink.calls); diff != "" {
		t.Errorf("call sequence mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyErrors(t *testing.T) {
	layout, err := Build([]Row{{"a"}}, Spec{Title: "T"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, failOn := range []string{"create", "text"} {
		t.Run(failOn, func(t *testing.T) {
			sink := &fakeSink{failOn: failOn}
			if err := Apply(layout, sink); err == nil {
				t.Fatal("expected error, but got nil")
			}
		})
	}
}
