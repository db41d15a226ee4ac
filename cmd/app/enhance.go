package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/local/notespress/internal/document"
	"github.com/local/notespress/internal/export"
)

var enhanceCmd = &cobra.Command{
	Use:   "enhance <document> [document...]",
	Short: "Enhance pages and export them one per output page",
	Long: `Enhance rasterizes every page of the input, runs the enhancement
pipeline (invert, optional grayscale, contrast, brightness, sharpness)
and exports the processed pages as a new PDF.

With multiple inputs each result is written next to its source as
<name>_converted.pdf (batch mode); --output is only valid for a single
input.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEnhance,
}

func init() {
	enhanceCmd.Flags().StringP("output", "o", "", "output PDF path (single input only)")
	enhanceCmd.Flags().String("pages", "", "page ranges to export, 1-based (e.g. 1-5,7,10-12); empty = all")
	enhanceCmd.Flags().Int("quality", 85, "JPEG quality 1-100 for embedded pages; 0 embeds losslessly")
	addEnhanceFlags(enhanceCmd)

	rootCmd.AddCommand(enhanceCmd)
}

func runEnhance(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	rangeSpec, _ := cmd.Flags().GetString("pages")
	quality, _ := cmd.Flags().GetInt("quality")

	if output != "" && len(args) > 1 {
		return fmt.Errorf("--output cannot be combined with multiple inputs")
	}

	params, err := resolveEnhanceParams(cmd)
	if err != nil {
		return err
	}

	for _, ref := range args {
		doc, err := loadDocument(cmd.Context(), ref, cfg.Render.DPI, params)
		if err != nil {
			return err
		}

		indices, err := document.ParseRanges(rangeSpec, doc.Len())
		if err != nil {
			return err
		}

		dest := output
		if dest == "" {
			dest = derivedOutput(ref)
		}
		if err := export.PDF(doc.SelectedProcessed(indices), dest, quality, progressPrinter("exporting")); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d pages)\n", dest, len(indices))
	}
	return nil
}

// derivedOutput names the batch-mode result next to its source.
func derivedOutput(ref string) string {
	base := filepath.Base(ref)
	ext := filepath.Ext(base)
	return filepath.Join(filepath.Dir(ref), strings.TrimSuffix(base, ext)+"_converted.pdf")
}
