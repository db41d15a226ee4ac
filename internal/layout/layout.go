package layout

import (
	"fmt"
	"math"
	"strings"
)

// DefaultDPI is the resolution used when rendering pages and computing
// sheet geometry.
const DefaultDPI = 200

// minCellPx clamps degenerate cell sizes. Extreme margin/gap combinations
// are clamped rather than rejected, so a cell may overflow the sheet in
// pathological cases but composition never fails.
const minCellPx = 50

// Paper is a named physical paper size.
type Paper string

const (
	PaperA4     Paper = "A4"
	PaperLetter Paper = "Letter"
)

// paperSizesMM maps paper names to portrait (width, height) in millimeters.
var paperSizesMM = map[Paper][2]float64{
	PaperA4:     {210.0, 297.0},
	PaperLetter: {216.0, 279.0},
}

// ParsePaper resolves a paper name, case-insensitively.
func ParsePaper(s string) (Paper, error) {
	for p := range paperSizesMM {
		if strings.EqualFold(string(p), s) {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown paper size %q", s)
}

// Orientation of the output sheet.
type Orientation string

const (
	Portrait  Orientation = "portrait"
	Landscape Orientation = "landscape"
)

// ParseOrientation resolves an orientation name, case-insensitively.
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(s) {
	case "portrait":
		return Portrait, nil
	case "landscape":
		return Landscape, nil
	}
	return "", fmt.Errorf("unknown orientation %q", s)
}

// Direction is the reading order used to place pages into grid cells.
type Direction string

const (
	// LeftToRight fills cells row by row.
	LeftToRight Direction = "ltr"
	// TopToBottom fills cells column by column.
	TopToBottom Direction = "ttb"
)

// ParseDirection resolves a reading direction name.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(s) {
	case "ltr", "left-to-right":
		return LeftToRight, nil
	case "ttb", "top-to-bottom":
		return TopToBottom, nil
	}
	return "", fmt.Errorf("unknown reading direction %q", s)
}

// Grid is the n-up grid shape: Cols columns by Rows rows.
type Grid struct {
	Cols int
	Rows int
}

// Cells returns the number of source pages packed per sheet.
func (g Grid) Cells() int { return g.Cols * g.Rows }

func (g Grid) String() string {
	// The conventional names come from the pages-per-sheet count,
	// not cols x rows: 3x1 is one column of three.
	switch g {
	case Grid{1, 3}:
		return "3x1"
	case Grid{2, 2}:
		return "2x2"
	case Grid{2, 3}:
		return "3x2"
	}
	return fmt.Sprintf("%dx%d", g.Cols, g.Rows)
}

// ParseGrid maps a layout name to its grid shape. Only the fixed set
// of supported layouts is accepted.
func ParseGrid(s string) (Grid, error) {
	switch strings.ToLower(s) {
	case "3x1":
		return Grid{Cols: 1, Rows: 3}, nil
	case "2x2":
		return Grid{Cols: 2, Rows: 2}, nil
	case "3x2":
		return Grid{Cols: 2, Rows: 3}, nil
	}
	return Grid{}, fmt.Errorf("unknown layout %q (want 3x1, 2x2 or 3x2)", s)
}

// Params collects every knob of the compact layout generator. Pure value
// type, owned by the caller.
type Params struct {
	Grid          Grid
	Paper         Paper
	Orientation   Orientation
	OuterMarginMM float64
	InnerGapMM    float64
	Direction     Direction
	Border        bool
	Quality       int
}

// DefaultParams mirrors the built-in layout defaults.
func DefaultParams() Params {
	return Params{
		Grid:          Grid{Cols: 2, Rows: 2},
		Paper:         PaperA4,
		Orientation:   Portrait,
		OuterMarginMM: 5.0,
		InnerGapMM:    2.0,
		Direction:     LeftToRight,
		Border:        false,
		Quality:       85,
	}
}

// Cell is one grid slot on a sheet, in sheet pixel coordinates.
type Cell struct {
	X int
	Y int
	W int
	H int
}

// Sheet is the computed pixel geometry of one output sheet.
type Sheet struct {
	Width  int
	Height int
	CellW  int
	CellH  int
	cells  []Cell
	grid   Grid
}

// CellAt returns the pixel box for grid position (col, row), zero-based.
func (s Sheet) CellAt(col, row int) Cell { return s.cells[row*s.grid.Cols+col] }

// Cells returns all cell boxes in row-major order.
func (s Sheet) Cells() []Cell { return s.cells }

// MMToPx converts millimeters to pixels at the given resolution.
func MMToPx(mm float64, dpi int) int {
	return int(math.Round(mm * float64(dpi) / 25.4))
}

// Compute derives the sheet pixel geometry from physical layout
// parameters. All inputs are assumed pre-validated; degenerate cell
// sizes are clamped to a minimum, never rejected.
func Compute(p Params, dpi int) Sheet {
	wmm, hmm := PaperSizeMM(p.Paper)
	if p.Orientation == Landscape {
		wmm, hmm = hmm, wmm
	}
	sheetW := MMToPx(wmm, dpi)
	sheetH := MMToPx(hmm, dpi)

	outer := MMToPx(p.OuterMarginMM, dpi)
	inner := MMToPx(p.InnerGapMM, dpi)

	usableW := sheetW - 2*outer - (p.Grid.Cols-1)*inner
	usableH := sheetH - 2*outer - (p.Grid.Rows-1)*inner
	cellW := max(minCellPx, usableW/p.Grid.Cols)
	cellH := max(minCellPx, usableH/p.Grid.Rows)

	cells := make([]Cell, 0, p.Grid.Cells())
	for r := 0; r < p.Grid.Rows; r++ {
		for c := 0; c < p.Grid.Cols; c++ {
			cells = append(cells, Cell{
				X: outer + c*(cellW+inner),
				Y: outer + r*(cellH+inner),
				W: cellW,
				H: cellH,
			})
		}
	}

	return Sheet{
		Width:  sheetW,
		Height: sheetH,
		CellW:  cellW,
		CellH:  cellH,
		cells:  cells,
		grid:   p.Grid,
	}
}

// PaperSizeMM returns the portrait dimensions of a paper size in
// millimeters. Unknown papers fall back to A4.
func PaperSizeMM(p Paper) (w, h float64) {
	dims, ok := paperSizesMM[p]
	if !ok {
		dims = paperSizesMM[PaperA4]
	}
	return dims[0], dims[1]
}

// CellPosition maps a placement index to its (row, col) grid coordinates
// under the given reading direction.
func CellPosition(g Grid, d Direction, cellIdx int) (row, col int) {
	if d == TopToBottom {
		return cellIdx % g.Rows, cellIdx / g.Rows
	}
	return cellIdx / g.Cols, cellIdx % g.Cols
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
