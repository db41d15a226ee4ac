package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/local/notespress/internal/document"
	"github.com/local/notespress/internal/enhance"
	"github.com/local/notespress/internal/filetype"
	"github.com/local/notespress/internal/rasterize"
	"github.com/local/notespress/internal/source"
)

// loadDocument resolves ref (path, file://, http(s)://, s3://), validates
// its type, rasterizes every page and loads them into a document with the
// given enhancement parameters applied.
func loadDocument(ctx context.Context, ref string, dpi int, params enhance.Params) (*document.Document, error) {
	path, cleanup, err := source.Resolve(ctx, ref)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	info, err := filetype.Detect(path)
	if err != nil {
		return nil, err
	}
	if !info.Supported {
		return nil, fmt.Errorf("%s: %s", ref, info.Description)
	}

	pages, err := rasterize.Pages(ctx, path, dpi, progressPrinter("rendering"))
	if err != nil {
		return nil, err
	}

	doc := document.New()
	if err := doc.Load(ctx, pages, params, progressPrinter("enhancing")); err != nil {
		return nil, err
	}
	return doc, nil
}

// progressPrinter writes a one-line percentage ticker to stderr.
func progressPrinter(stage string) func(float64) {
	last := -1
	return func(frac float64) {
		pct := int(frac * 100)
		if pct == last {
			return
		}
		last = pct
		fmt.Fprintf(os.Stderr, "\r%s: %3d%%", stage, pct)
		if pct >= 100 {
			fmt.Fprintln(os.Stderr)
		}
	}
}

// addEnhanceFlags registers the shared enhancement parameter flags.
func addEnhanceFlags(cmd *cobra.Command) {
	cmd.Flags().String("preset", "", "named preset from the settings file")
	cmd.Flags().Float64("contrast", 0, "contrast factor (1.0 = unchanged)")
	cmd.Flags().Float64("brightness", 0, "brightness factor (1.0 = unchanged)")
	cmd.Flags().Float64("sharpness", 0, "sharpness factor (1.0 = unchanged)")
	cmd.Flags().Bool("grayscale", false, "convert pages to grayscale")
}

// resolveEnhanceParams builds enhancement parameters from the settings
// record, an optional preset, and explicit flag overrides, in that order.
func resolveEnhanceParams(cmd *cobra.Command) (enhance.Params, error) {
	rec := store.Load()
	params := rec.Params()

	if name, _ := cmd.Flags().GetString("preset"); name != "" {
		preset, ok := rec.Presets[name]
		if !ok {
			return params, fmt.Errorf("preset %q not found", name)
		}
		params = preset
	}

	if cmd.Flags().Changed("contrast") {
		params.Contrast, _ = cmd.Flags().GetFloat64("contrast")
	}
	if cmd.Flags().Changed("brightness") {
		params.Brightness, _ = cmd.Flags().GetFloat64("brightness")
	}
	if cmd.Flags().Changed("sharpness") {
		params.Sharpness, _ = cmd.Flags().GetFloat64("sharpness")
	}
	if cmd.Flags().Changed("grayscale") {
		params.Grayscale, _ = cmd.Flags().GetBool("grayscale")
	}
	return params, nil
}
