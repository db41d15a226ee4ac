// Package document owns the in-memory model of a loaded document: an
// ordered collection of page records, each holding the immutable original
// raster, the current processed raster and a selection flag.
package document

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/local/notespress/internal/enhance"
	"github.com/local/notespress/internal/metrics"
)

// textAnchorPx is the fixed top-left anchor for rendered text pages.
const textAnchorPx = 50

// Page is one logical page. Original is immutable once loaded; Processed
// is re-derivable from Original at any time, which is the basis for
// revert. The two always have equal dimensions.
type Page struct {
	Original  *image.RGBA
	Processed *image.RGBA
	Selected  bool
}

// Document is an ordered sequence of pages. Page identity is positional:
// inserting or moving pages renumbers everything after the edit point.
//
// Document provides no locking. The caller must serialize mutating
// operations; export and composition only read.
type Document struct {
	pages []Page
}

// New returns an empty document.
func New() *Document { return &Document{} }

// Len returns the number of logical pages.
func (d *Document) Len() int { return len(d.pages) }

// Page returns the record at index i.
func (d *Document) Page(i int) Page { return d.pages[i] }

// SetSelected flips the selection flag for page i. Out-of-range indices
// are ignored.
func (d *Document) SetSelected(i int, sel bool) {
	if i >= 0 && i < len(d.pages) {
		d.pages[i].Selected = sel
	}
}

// Load replaces all document state with the given rasterized originals,
// deriving each processed page through the enhancement pipeline. All
// pages start selected. Progress is reported after each page; ctx is
// checked between pages and cancellation leaves the document valid with
// the pages loaded so far.
func (d *Document) Load(ctx context.Context, originals []*image.RGBA, params enhance.Params, progress func(float64)) error {
	d.pages = d.pages[:0]
	total := len(originals)
	for i, orig := range originals {
		if err := ctx.Err(); err != nil {
			return err
		}
		d.pages = append(d.pages, Page{
			Original:  orig,
			Processed: enhance.Process(orig, params),
			Selected:  true,
		})
		metrics.IncEnhanced()
		report(progress, i+1, total)
	}
	log.Debug().Int("pages", len(d.pages)).Msg("document loaded")
	return nil
}

// ReprocessPage re-derives processed page i from its original. Out-of-range
// indices are ignored.
func (d *Document) ReprocessPage(i int, params enhance.Params) {
	if i < 0 || i >= len(d.pages) {
		return
	}
	d.pages[i].Processed = enhance.Process(d.pages[i].Original, params)
	metrics.IncEnhanced()
}

// ReprocessAll re-derives every processed page from its original with the
// given parameters. Pages are processed strictly in index order so
// progress is monotonic; cancellation between pages leaves a valid,
// partially reprocessed document since each page is independently
// re-derivable.
func (d *Document) ReprocessAll(ctx context.Context, params enhance.Params, progress func(float64)) error {
	total := len(d.pages)
	for i := range d.pages {
		if err := ctx.Err(); err != nil {
			return err
		}
		d.pages[i].Processed = enhance.Process(d.pages[i].Original, params)
		metrics.IncEnhanced()
		report(progress, i+1, total)
	}
	return nil
}

// RevertPage replaces processed page i with a fresh copy of its original.
func (d *Document) RevertPage(i int) {
	if i < 0 || i >= len(d.pages) {
		return
	}
	d.pages[i].Processed = enhance.Clone(d.pages[i].Original)
}

// RevertAll restores every processed page to a copy of its original.
func (d *Document) RevertAll() {
	for i := range d.pages {
		d.pages[i].Processed = enhance.Clone(d.pages[i].Original)
	}
}

// InsertBlank inserts a blank white page at index i, sized to match the
// first page. Original and processed start as identical copies.
func (d *Document) InsertBlank(i int) error {
	blank, err := d.newBlankPage()
	if err != nil {
		return err
	}
	return d.insert(i, blank)
}

// InsertText inserts a white page with text rendered at a fixed anchor.
func (d *Document) InsertText(i int, text string) error {
	img, err := d.newBlankPage()
	if err != nil {
		return err
	}
	drawText(img, text)
	return d.insert(i, img)
}

// Move swaps the page at index i with the page at i+direction. A no-op,
// not an error, if either index is out of bounds.
func (d *Document) Move(i, direction int) {
	j := i + direction
	if i < 0 || i >= len(d.pages) || j < 0 || j >= len(d.pages) {
		return
	}
	d.pages[i], d.pages[j] = d.pages[j], d.pages[i]
}

// Processed returns the processed images of all pages in order.
func (d *Document) Processed() []*image.RGBA {
	out := make([]*image.RGBA, len(d.pages))
	for i := range d.pages {
		out[i] = d.pages[i].Processed
	}
	return out
}

// SelectedProcessed returns the processed images for the given indices,
// in the given order, skipping pages whose selection flag is cleared.
func (d *Document) SelectedProcessed(indices []int) []*image.RGBA {
	out := make([]*image.RGBA, 0, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= len(d.pages) {
			continue
		}
		if d.pages[idx].Selected {
			out = append(out, d.pages[idx].Processed)
		}
	}
	return out
}

func (d *Document) insert(i int, img *image.RGBA) error {
	if i < 0 {
		i = 0
	}
	if i > len(d.pages) {
		i = len(d.pages)
	}
	rec := Page{Original: img, Processed: enhance.Clone(img), Selected: true}
	d.pages = append(d.pages, Page{})
	copy(d.pages[i+1:], d.pages[i:])
	d.pages[i] = rec
	return nil
}

// newBlankPage creates a white page matching the first page's size.
func (d *Document) newBlankPage() (*image.RGBA, error) {
	if len(d.pages) == 0 {
		return nil, ErrNoReferencePage
	}
	b := d.pages[0].Original.Bounds()
	img := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	return img, nil
}

func drawText(img *image.RGBA, text string) {
	face := basicfont.Face7x13
	dr := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Black),
		Face: face,
	}
	lineHeight := face.Metrics().Height.Ceil()
	y := textAnchorPx + face.Metrics().Ascent.Ceil()
	for _, line := range strings.Split(text, "\n") {
		dr.Dot = fixed.P(textAnchorPx, y)
		dr.DrawString(line)
		y += lineHeight
	}
}

func report(progress func(float64), done, total int) {
	if progress != nil && total > 0 {
		progress(float64(done) / float64(total))
	}
}
