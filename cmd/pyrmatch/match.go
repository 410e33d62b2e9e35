package main

import (
	"fmt"
	"image"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/soocke/pyrmatch/debug"
	"github.com/soocke/pyrmatch/domain/match"
	"github.com/soocke/pyrmatch/ingestion"
)

func newMatchCmd(state *runtimeState) *cobra.Command {
	var overlayPath string

	cmd := &cobra.Command{
		Use:   "match <template.png> <image.png>",
		Short: "Run a single match of a template against an image file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			templatePath, imagePath := args[0], args[1]

			tmplRaw, err := ingestion.LoadPNGFile(templatePath)
			if err != nil {
				return err
			}
			imgRaw, err := ingestion.LoadPNGFile(imagePath)
			if err != nil {
				return err
			}

			ct, err := match.CompileTemplate(tmplRaw, state.cfg.Compile)
			if err != nil {
				return err
			}

			m := match.NewMatcher(ct, state.logger)
			results, stats, err := m.Match(imgRaw, state.cfg.Match)
			if err != nil {
				return err
			}

			printResults(cmd, results, stats)

			if overlayPath != "" {
				overlay := debug.RenderOverlay(imgRaw, image.Pt(tmplRaw.Width, tmplRaw.Height), results)
				if err := os.WriteFile(overlayPath, debug.EncodePNG(overlay), 0o644); err != nil {
					return fmt.Errorf("write overlay: %w", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&overlayPath, "overlay", "", "write a debug overlay PNG to this path")
	return cmd
}

func printResults(cmd *cobra.Command, results []match.Result, stats match.Stats) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%d result(s), %s candidates evaluated across %d level(s) in %s\n",
		len(results),
		humanize.Comma(stats.CandidatesEvaluated),
		stats.LevelsSearched,
		stats.Elapsed,
	)
	for i, r := range results {
		fmt.Fprintf(out, "  #%d  x=%.2f y=%.2f angle=%.2f score=%.4f\n", i, r.X, r.Y, r.AngleDeg, r.Score)
	}
}
