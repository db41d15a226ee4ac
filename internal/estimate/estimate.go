// Package estimate predicts the output size of a compact layout export by
// sampling a few pages, compressing their cell-fitted images at the
// target quality and extrapolating. The result is a heuristic with no
// correctness guarantee beyond monotonicity: higher quality or larger
// pages never produce a smaller estimate for the same inputs.
package estimate

import (
	"errors"
	"fmt"
	"image"

	"github.com/rs/zerolog/log"

	"github.com/local/notespress/internal/codec"
	"github.com/local/notespress/internal/compose"
	"github.com/local/notespress/internal/layout"
)

// SampleCount is the maximum number of pages sampled per estimate.
const SampleCount = 3

// overheadFactor compensates for PDF container overhead on top of the
// raw per-cell JPEG payload.
const overheadFactor = 1.15

// ErrNoPages is returned when estimating an empty document.
var ErrNoPages = errors.New("no pages to estimate")

// Result is a whole-document size estimate.
type Result struct {
	Bytes   int64
	Samples int
}

// String renders the estimate in megabytes, two decimal places.
func (r Result) String() string {
	return fmt.Sprintf("~%.2f MB", float64(r.Bytes)/(1024*1024))
}

// Size estimates the compact PDF size for the given pages and layout.
// Samples are spaced evenly across the document by index
// floor(i*total/count).
func Size(pages []*image.RGBA, p layout.Params, dpi int) (Result, error) {
	total := len(pages)
	if total == 0 {
		return Result{}, ErrNoPages
	}

	count := SampleCount
	if total < count {
		count = total
	}

	var sum int64
	for i := 0; i < count; i++ {
		idx := i * total / count
		cell := compose.FitCell(pages[idx], p, dpi)
		data, err := codec.EncodeJPEG(cell, p.Quality)
		if err != nil {
			return Result{}, fmt.Errorf("failed to encode sample page %d: %w", idx+1, err)
		}
		sum += int64(len(data))
	}

	avg := float64(sum) / float64(count)
	est := Result{
		Bytes:   int64(avg * float64(total) * overheadFactor),
		Samples: count,
	}

	log.Debug().
		Int("samples", count).
		Int("quality", p.Quality).
		Int64("estimated_bytes", est.Bytes).
		Msg("estimated compact size")

	return est, nil
}
