package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/local/notespress/internal/compose"
	"github.com/local/notespress/internal/document"
	"github.com/local/notespress/internal/export"
	"github.com/local/notespress/internal/layout"
)

var compactCmd = &cobra.Command{
	Use:   "compact <document>",
	Short: "Pack enhanced pages onto compact n-up sheets",
	Long: `Compact enhances every page, then packs groups of pages onto single
output sheets in a 2x2, 3x1 or 3x2 grid under the chosen paper size,
orientation, margins and reading direction.`,
	Args: cobra.ExactArgs(1),
	RunE: runCompact,
}

func init() {
	compactCmd.Flags().StringP("output", "o", "", "output PDF path (required)")
	compactCmd.Flags().String("pages", "", "page ranges to include, 1-based; empty = all")
	addLayoutFlags(compactCmd)
	addEnhanceFlags(compactCmd)
	_ = compactCmd.MarkFlagRequired("output")

	rootCmd.AddCommand(compactCmd)
}

func runCompact(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	rangeSpec, _ := cmd.Flags().GetString("pages")

	lp, err := resolveLayoutParams(cmd)
	if err != nil {
		return err
	}
	params, err := resolveEnhanceParams(cmd)
	if err != nil {
		return err
	}

	doc, err := loadDocument(cmd.Context(), args[0], cfg.Render.DPI, params)
	if err != nil {
		return err
	}

	indices, err := document.ParseRanges(rangeSpec, doc.Len())
	if err != nil {
		return err
	}

	pages := doc.SelectedProcessed(indices)
	sheets, err := compose.Sheets(cmd.Context(), pages, lp, cfg.Render.DPI, progressPrinter("composing"))
	if err != nil {
		return err
	}

	if err := export.PDF(sheets, output, lp.Quality, progressPrinter("exporting")); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d pages on %d sheets)\n", output, len(pages), len(sheets))
	return nil
}

// addLayoutFlags registers the shared compact layout flags.
func addLayoutFlags(cmd *cobra.Command) {
	def := layout.DefaultParams()
	cmd.Flags().String("grid", def.Grid.String(), "pages per sheet: 2x2, 3x1 or 3x2")
	cmd.Flags().String("paper", string(def.Paper), "paper size: A4 or Letter")
	cmd.Flags().String("orientation", string(def.Orientation), "portrait or landscape")
	cmd.Flags().Float64("outer-margin", def.OuterMarginMM, "outer margin in mm")
	cmd.Flags().Float64("inner-gap", def.InnerGapMM, "gap between cells in mm")
	cmd.Flags().String("direction", string(def.Direction), "reading direction: ltr or ttb")
	cmd.Flags().Bool("border", def.Border, "draw a border around each cell")
	cmd.Flags().Int("quality", def.Quality, "JPEG quality 1-100 for output sheets")
}

func resolveLayoutParams(cmd *cobra.Command) (layout.Params, error) {
	p := layout.DefaultParams()
	var err error

	gridStr, _ := cmd.Flags().GetString("grid")
	if p.Grid, err = layout.ParseGrid(gridStr); err != nil {
		return p, err
	}
	paperStr, _ := cmd.Flags().GetString("paper")
	if p.Paper, err = layout.ParsePaper(paperStr); err != nil {
		return p, err
	}
	orientStr, _ := cmd.Flags().GetString("orientation")
	if p.Orientation, err = layout.ParseOrientation(orientStr); err != nil {
		return p, err
	}
	dirStr, _ := cmd.Flags().GetString("direction")
	if p.Direction, err = layout.ParseDirection(dirStr); err != nil {
		return p, err
	}
	p.OuterMarginMM, _ = cmd.Flags().GetFloat64("outer-margin")
	p.InnerGapMM, _ = cmd.Flags().GetFloat64("inner-gap")
	p.Border, _ = cmd.Flags().GetBool("border")
	p.Quality, _ = cmd.Flags().GetInt("quality")
	if p.Quality < 1 || p.Quality > 100 {
		return p, fmt.Errorf("quality must be in 1-100, got %d", p.Quality)
	}
	return p, nil
}
