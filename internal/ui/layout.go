package ui

import "math"

// Minimum playfield interior, in cells
const (
	MinCols = 20
	MinRows = 10
)

const (
	hudRows    = 1
	hintRows   = 1
	cellAspect = 2.0 // Terminal cells are roughly twice as tall as wide
)

// Layout maps playfield pixels onto terminal cells. Row 0 holds the HUD, the
// last row holds the hint line and the playfield sits in a bordered box
// between them, narrowed to keep the field's proportions.
type Layout struct {
	Left, Top   int // First interior cell
	Cols, Rows  int // Interior size
	FieldWidth  float64
	FieldHeight float64
}

// NewLayout fits a fieldW x fieldH playfield into a screenW x screenH terminal
func NewLayout(screenW, screenH int, fieldW, fieldH float64) Layout {
	rows := screenH - hudRows - hintRows - 2
	cols := screenW - 2
	if fieldW > 0 && fieldH > 0 {
		if want := int(math.Round(float64(rows) * fieldW / fieldH * cellAspect)); want < cols {
			cols = want
		}
	}
	rows = max(rows, 0)
	cols = max(cols, 0)

	return Layout{
		Left:        (screenW - cols) / 2,
		Top:         hudRows + 1,
		Cols:        cols,
		Rows:        rows,
		FieldWidth:  fieldW,
		FieldHeight: fieldH,
	}
}

// TooSmall reports whether the terminal cannot show a playable field
func (l Layout) TooSmall() bool {
	return l.Cols < MinCols || l.Rows < MinRows || l.FieldWidth <= 0 || l.FieldHeight <= 0
}

// CellX returns the column for a playfield x, clamped to the interior
func (l Layout) CellX(px float64) int {
	col := int(math.Floor(px / l.FieldWidth * float64(l.Cols)))
	return l.Left + min(max(col, 0), l.Cols-1)
}

// CellY returns the row for a playfield y and whether it is inside the field
func (l Layout) CellY(py float64) (int, bool) {
	row := int(math.Floor(py / l.FieldHeight * float64(l.Rows)))
	return l.Top + row, row >= 0 && row < l.Rows
}

// FieldX converts a column back to the playfield x at the cell's centre
func (l Layout) FieldX(col int) float64 {
	return (float64(col-l.Left) + 0.5) / float64(l.Cols) * l.FieldWidth
}

// Contains reports whether a cell lies inside the playfield interior
func (l Layout) Contains(col, row int) bool {
	return col >= l.Left && col < l.Left+l.Cols && row >= l.Top && row < l.Top+l.Rows
}
