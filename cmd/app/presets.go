package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/local/notespress/internal/enhance"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "Manage named enhancement presets",
}

var presetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List presets",
	RunE: func(cmd *cobra.Command, args []string) error {
		rec := store.Load()
		names := make([]string, 0, len(rec.Presets))
		for name := range rec.Presets {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			marker := " "
			if name == rec.LastPreset {
				marker = "*"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, name)
		}
		return nil
	},
}

var presetsShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a preset's parameters",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rec := store.Load()
		p, ok := rec.Presets[args[0]]
		if !ok {
			return fmt.Errorf("preset %q not found", args[0])
		}
		fmt.Fprintf(cmd.OutOrStdout(), "contrast: %g\nbrightness: %g\nsharpness: %g\ngrayscale: %t\n",
			p.Contrast, p.Brightness, p.Sharpness, p.Grayscale)
		return nil
	},
}

var presetsSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Save a preset from the given parameters",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rec := store.Load()
		p := enhance.DefaultParams()
		if cmd.Flags().Changed("contrast") {
			p.Contrast, _ = cmd.Flags().GetFloat64("contrast")
		}
		if cmd.Flags().Changed("brightness") {
			p.Brightness, _ = cmd.Flags().GetFloat64("brightness")
		}
		if cmd.Flags().Changed("sharpness") {
			p.Sharpness, _ = cmd.Flags().GetFloat64("sharpness")
		}
		if cmd.Flags().Changed("grayscale") {
			p.Grayscale, _ = cmd.Flags().GetBool("grayscale")
		}
		rec.Presets[args[0]] = p
		rec.LastPreset = args[0]
		if err := store.Save(rec); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "saved preset %q\n", args[0])
		return nil
	},
}

var presetsDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a preset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rec := store.Load()
		if _, ok := rec.Presets[args[0]]; !ok {
			return fmt.Errorf("preset %q not found", args[0])
		}
		delete(rec.Presets, args[0])
		if rec.LastPreset == args[0] {
			rec.LastPreset = ""
		}
		if err := store.Save(rec); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted preset %q\n", args[0])
		return nil
	},
}

func init() {
	presetsSaveCmd.Flags().Float64("contrast", 1.2, "contrast factor")
	presetsSaveCmd.Flags().Float64("brightness", 1.0, "brightness factor")
	presetsSaveCmd.Flags().Float64("sharpness", 1.0, "sharpness factor")
	presetsSaveCmd.Flags().Bool("grayscale", true, "convert to grayscale")

	presetsCmd.AddCommand(presetsListCmd, presetsShowCmd, presetsSaveCmd, presetsDeleteCmd)
	rootCmd.AddCommand(presetsCmd)
}
