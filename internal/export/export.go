// Package export serializes an ordered sequence of raster images into a
// single multi-page PDF, one page per image.
package export

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/rs/zerolog/log"

	"github.com/local/notespress/internal/codec"
	"github.com/local/notespress/internal/metrics"
)

// PDF writes images to destPath as one PDF page per image, preserving
// order. With quality in [1,100] each image is round-tripped through the
// JPEG codec at that quality to bound output size; quality <= 0 embeds
// images losslessly as PNG.
//
// The document is assembled in a staging directory and moved into place
// only after the page count has been verified, so a failed export never
// leaves a partial file at destPath.
func PDF(images []*image.RGBA, destPath string, quality int, progress func(float64)) error {
	if len(images) == 0 {
		metrics.IncExport("empty")
		return &EmptySelectionError{}
	}

	start := time.Now()
	staging := filepath.Join(os.TempDir(), "notespress-"+uuid.NewString())
	if err := os.MkdirAll(staging, 0o755); err != nil {
		metrics.IncExport("error")
		return fmt.Errorf("failed to create staging dir: %w", err)
	}
	defer os.RemoveAll(staging)

	files, err := encodePages(images, staging, quality, progress)
	if err != nil {
		metrics.IncExport("error")
		return err
	}

	tmpOut := filepath.Join(staging, "out.pdf")
	if err := api.ImportImagesFile(files, tmpOut, nil, nil); err != nil {
		metrics.IncExport("error")
		return &EncodingError{Err: fmt.Errorf("pdf assembly failed: %w", err)}
	}

	n, err := api.PageCountFile(tmpOut)
	if err != nil {
		metrics.IncExport("error")
		return &EncodingError{Err: fmt.Errorf("pdf verification failed: %w", err)}
	}
	if n != len(images) {
		metrics.IncExport("error")
		return &EncodingError{Err: fmt.Errorf("pdf verification failed: got %d pages, want %d", n, len(images))}
	}

	if err := moveIntoPlace(tmpOut, destPath); err != nil {
		metrics.IncExport("error")
		return err
	}

	metrics.IncExport("success")
	metrics.ObserveStage("export", time.Since(start))
	log.Info().
		Str("dest", destPath).
		Int("pages", len(images)).
		Int("quality", quality).
		Dur("elapsed", time.Since(start)).
		Msg("exported PDF")
	return nil
}

func encodePages(images []*image.RGBA, staging string, quality int, progress func(float64)) ([]string, error) {
	files := make([]string, 0, len(images))
	total := len(images)
	for i, img := range images {
		var data []byte
		var err error
		var name string
		if quality > 0 {
			data, err = codec.EncodeJPEG(img, quality)
			name = fmt.Sprintf("page-%04d.jpg", i+1)
		} else {
			data, err = codec.EncodePNG(img)
			name = fmt.Sprintf("page-%04d.png", i+1)
		}
		if err != nil {
			return nil, &EncodingError{Page: i + 1, Err: err}
		}
		path := filepath.Join(staging, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, &EncodingError{Page: i + 1, Err: err}
		}
		files = append(files, path)
		if progress != nil {
			progress(float64(i+1) / float64(total))
		}
	}
	return files, nil
}

// moveIntoPlace publishes the staged PDF at destPath via a rename within
// the destination directory, falling back to copy for cross-device
// staging dirs.
func moveIntoPlace(tmpOut, destPath string) error {
	sibling := destPath + ".partial-" + uuid.NewString()[:8]
	if err := copyFile(tmpOut, sibling); err != nil {
		return fmt.Errorf("failed to stage output: %w", err)
	}
	if err := os.Rename(sibling, destPath); err != nil {
		os.Remove(sibling)
		return fmt.Errorf("failed to move output into place: %w", err)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	return out.Close()
}
