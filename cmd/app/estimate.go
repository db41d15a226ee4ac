package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/local/notespress/internal/estimate"
)

var estimateCmd = &cobra.Command{
	Use:   "estimate <document>",
	Short: "Estimate the compact PDF output size",
	Long: `Estimate samples a few pages evenly across the document, compresses
their cell-fitted images at the target quality and extrapolates the
whole-document size. The result is an approximation, not a guarantee.`,
	Args: cobra.ExactArgs(1),
	RunE: runEstimate,
}

func init() {
	addLayoutFlags(estimateCmd)
	addEnhanceFlags(estimateCmd)

	rootCmd.AddCommand(estimateCmd)
}

func runEstimate(cmd *cobra.Command, args []string) error {
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

	res, err := estimate.Size(doc.Processed(), lp, cfg.Render.DPI)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "estimated size: %s (%d pages, %d sampled, quality %d)\n",
		res, doc.Len(), res.Samples, lp.Quality)
	return nil
}
