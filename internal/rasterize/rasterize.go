// Package rasterize renders source document pages into raster images
// using MuPDF (via go-fitz). PDF, XPS and EPUB inputs are supported by
// the underlying library.
package rasterize

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/gen2brain/go-fitz"
	"github.com/rs/zerolog/log"

	"github.com/local/notespress/internal/metrics"
)

// PageCount returns the number of pages in the document at path.
func PageCount(path string) (int, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open document: %w", err)
	}
	defer doc.Close()
	return doc.NumPage(), nil
}

// Pages renders every page of the document at path to an RGBA image at
// the given DPI, in page order. Progress is reported after each page;
// ctx is checked between pages and cancellation returns the pages
// rendered so far along with ctx.Err().
func Pages(ctx context.Context, path string, dpi int, progress func(float64)) ([]*image.RGBA, error) {
	start := time.Now()
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open document: %w", err)
	}
	defer doc.Close()

	total := doc.NumPage()
	pages := make([]*image.RGBA, 0, total)
	for i := 0; i < total; i++ {
		if err := ctx.Err(); err != nil {
			return pages, err
		}
		img, err := doc.ImageDPI(i, float64(dpi))
		if err != nil {
			return pages, fmt.Errorf("failed to render page %d: %w", i+1, err)
		}
		pages = append(pages, img)
		if progress != nil {
			progress(float64(i+1) / float64(total))
		}
	}

	metrics.AddRendered(len(pages))
	metrics.ObserveStage("render", time.Since(start))
	log.Debug().
		Str("path", path).
		Int("pages", len(pages)).
		Int("dpi", dpi).
		Dur("elapsed", time.Since(start)).
		Msg("rasterized document")

	return pages, nil
}
