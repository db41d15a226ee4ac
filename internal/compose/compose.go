// Package compose builds n-up layout sheets: it packs processed page
// images into a pixel grid computed by the layout package, producing one
// sheet raster per group of grid-size pages.
package compose

import (
	"context"
	"image"
	"image/color"
	"image/draw"

	"github.com/rs/zerolog/log"
	xdraw "golang.org/x/image/draw"

	"github.com/local/notespress/internal/layout"
	"github.com/local/notespress/internal/metrics"
)

// Sheets composes the given pages into output sheets according to the
// layout parameters. Sheet count is ceil(len(pages)/cellsPerSheet); cells
// past the last page stay blank. Pages are placed strictly in order and
// progress is reported after each placement as a fraction of total pages.
//
// Cell geometry is always computed in portrait space. For landscape
// output the finished sheet is rotated 270 degrees exactly once, after
// all cells are placed. Computing geometry directly in landscape space
// would place margins more faithfully; the single whole-sheet rotation
// is the committed behavior here.
//
// The input pages are never modified; sheets own their pixels.
func Sheets(ctx context.Context, pages []*image.RGBA, p layout.Params, dpi int, progress func(float64)) ([]*image.RGBA, error) {
	geom := layout.Compute(portraitSpace(p), dpi)
	cellsPerSheet := p.Grid.Cells()
	total := len(pages)
	sheetCount := (total + cellsPerSheet - 1) / cellsPerSheet

	sheets := make([]*image.RGBA, 0, sheetCount)
	for s := 0; s < sheetCount; s++ {
		sheet := newWhite(geom.Width, geom.Height)

		for cellIdx := 0; cellIdx < cellsPerSheet; cellIdx++ {
			pageIdx := s*cellsPerSheet + cellIdx
			if pageIdx >= total {
				break
			}
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			row, col := layout.CellPosition(p.Grid, p.Direction, cellIdx)
			cell := geom.CellAt(col, row)

			placed := fitInto(pages[pageIdx], cell.W, cell.H)
			pw := placed.Bounds().Dx()
			ph := placed.Bounds().Dy()
			x := cell.X + (cell.W-pw)/2
			y := cell.Y + (cell.H-ph)/2
			draw.Draw(sheet, image.Rect(x, y, x+pw, y+ph), placed, placed.Bounds().Min, draw.Src)

			// Border goes on top of the paste so it is never occluded.
			if p.Border {
				drawCellBorder(sheet, cell)
			}

			if progress != nil {
				progress(float64(pageIdx+1) / float64(total))
			}
		}

		if p.Orientation == layout.Landscape {
			sheet = rotate270(sheet)
		}
		sheets = append(sheets, sheet)
		metrics.IncSheet()
	}

	log.Debug().
		Int("pages", total).
		Int("sheets", len(sheets)).
		Str("grid", p.Grid.String()).
		Str("orientation", string(p.Orientation)).
		Msg("composed sheets")

	return sheets, nil
}

// FitCell downscales a single page to its cell size under the given
// layout, used by the size estimator to mirror what composition would
// place on a sheet.
func FitCell(page *image.RGBA, p layout.Params, dpi int) *image.RGBA {
	geom := layout.Compute(portraitSpace(p), dpi)
	return fitInto(page, geom.CellW, geom.CellH)
}

// portraitSpace pins the geometry computation to portrait regardless of
// the requested orientation; landscape is applied by whole-sheet rotation.
func portraitSpace(p layout.Params) layout.Params {
	p.Orientation = layout.Portrait
	return p
}

// fitInto scales src down to fit within (w, h), preserving aspect ratio.
// Images already small enough are returned unscaled; pages are never
// upscaled.
func fitInto(src *image.RGBA, w, h int) *image.RGBA {
	sw := src.Bounds().Dx()
	sh := src.Bounds().Dy()
	if sw <= w && sh <= h {
		return src
	}
	scale := float64(w) / float64(sw)
	if s := float64(h) / float64(sh); s < scale {
		scale = s
	}
	tw := int(float64(sw) * scale)
	th := int(float64(sh) * scale)
	if tw < 1 {
		tw = 1
	}
	if th < 1 {
		th = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, tw, th))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

// drawCellBorder draws a one-pixel rectangle outline exactly on the cell
// box boundary.
func drawCellBorder(sheet *image.RGBA, c layout.Cell) {
	black := color.RGBA{A: 255}
	for x := c.X; x < c.X+c.W; x++ {
		sheet.SetRGBA(x, c.Y, black)
		sheet.SetRGBA(x, c.Y+c.H-1, black)
	}
	for y := c.Y; y < c.Y+c.H; y++ {
		sheet.SetRGBA(c.X, y, black)
		sheet.SetRGBA(c.X+c.W-1, y, black)
	}
}

// rotate270 rotates src 270 degrees counterclockwise (90 clockwise).
func rotate270(src *image.RGBA) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewRGBA(image.Rect(0, 0, h, w))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dst.SetRGBA(h-1-y, x, src.RGBAAt(b.Min.X+x, b.Min.Y+y))
		}
	}
	return dst
}

func newWhite(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	return img
}
