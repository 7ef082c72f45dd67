// Package sheet lays rendered labels out on a fixed-geometry page grid and
// writes the result as a paginated PDF, individual PNG files, or full-page
// PNG images.
package sheet

import "fmt"

const pointsPerInch = 72.0

// Layout describes a label-sheet template as a fixed grid. All dimensions
// are in PDF points (1/72 inch), with the origin at the top-left corner.
type Layout struct {
	Rows    int
	Cols    int
	MarginX float64
	MarginY float64
	PageW   float64
	PageH   float64
}

// LetterGrid is the default template: 3 columns by 10 rows on US Letter
// with half-inch margins, matching common 30-up adhesive label sheets.
func LetterGrid() Layout {
	return Layout{
		Rows:    10,
		Cols:    3,
		MarginX: 0.5 * pointsPerInch,
		MarginY: 0.5 * pointsPerInch,
		PageW:   8.5 * pointsPerInch,
		PageH:   11 * pointsPerInch,
	}
}

// Validate checks that the grid geometry is usable.
func (l Layout) Validate() error {
	if l.Rows < 1 || l.Cols < 1 {
		return fmt.Errorf("layout needs at least one row and column, got %dx%d", l.Rows, l.Cols)
	}
	if l.CellWidth() <= 0 || l.CellHeight() <= 0 {
		return fmt.Errorf("layout margins leave no room for cells on a %gx%g page", l.PageW, l.PageH)
	}
	return nil
}

// CellWidth returns the width of one grid cell.
func (l Layout) CellWidth() float64 {
	return (l.PageW - 2*l.MarginX) / float64(l.Cols)
}

// CellHeight returns the height of one grid cell.
func (l Layout) CellHeight() float64 {
	return (l.PageH - 2*l.MarginY) / float64(l.Rows)
}

// PerPage returns how many labels fit on one page.
func (l Layout) PerPage() int {
	return l.Rows * l.Cols
}

// PageCount returns how many pages n labels occupy.
func (l Layout) PageCount(n int) int {
	per := l.PerPage()
	return (n + per - 1) / per
}

// Cell locates the i-th label: its zero-based page and the top-left corner
// of its cell. Labels fill left to right, top to bottom; when a page's
// cells are exhausted the next page starts at the same coordinates.
type Cell struct {
	Page int
	X    float64
	Y    float64
}

// Cell returns the placement of the i-th label.
func (l Layout) Cell(i int) Cell {
	per := l.PerPage()
	idx := i % per
	row := idx / l.Cols
	col := idx % l.Cols
	return Cell{
		Page: i / per,
		X:    l.MarginX + float64(col)*l.CellWidth(),
		Y:    l.MarginY + float64(row)*l.CellHeight(),
	}
}
