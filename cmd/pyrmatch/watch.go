package main

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/ncruces/go-strftime"
	"github.com/spf13/cobra"
	"github.com/vova616/screenshot"

	"github.com/soocke/pyrmatch/debug"
	"github.com/soocke/pyrmatch/domain/match"
	"github.com/soocke/pyrmatch/domain/pixel"
	"github.com/soocke/pyrmatch/ingestion"
)

// newWatchCmd repeatedly grabs a screenshot and runs a synchronous
// match against it, sleeping interval between calls. Each call is
// independent; the engine itself never streams frames, honoring the
// streaming/online non-goal.
func newWatchCmd(state *runtimeState) *cobra.Command {
	var interval time.Duration
	var count int
	var overlayDir string

	cmd := &cobra.Command{
		Use:   "watch <template.png>",
		Short: "Repeatedly match a template against the live screen",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			templatePath := args[0]
			tmplRaw, err := ingestion.LoadPNGFile(templatePath)
			if err != nil {
				return err
			}
			ct, err := match.CompileTemplate(tmplRaw, state.cfg.Compile)
			if err != nil {
				return err
			}
			m := match.NewMatcher(ct, state.logger)

			var stop func()
			if state.cfg.Debug {
				stop = debug.StartGoroutineLogger(5*time.Second, state.logger)
				defer stop()
			}

			for i := 0; count <= 0 || i < count; i++ {
				shot, err := screenshot.CaptureScreen()
				if err != nil {
					return fmt.Errorf("capture screen: %w", err)
				}
				gray := ingestion.FromImage(shot)

				results, stats, err := m.Match(gray, state.cfg.Match)
				if err != nil {
					state.logger.Warn("watch: no match", "error", err, "iteration", i)
				} else {
					printResults(cmd, results, stats)
					if overlayDir != "" {
						if err := writeOverlay(overlayDir, gray, tmplRaw, results); err != nil {
							state.logger.Warn("watch: failed to write overlay", "error", err)
						}
					}
				}

				if count > 0 && i == count-1 {
					break
				}
				time.Sleep(interval)
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", time.Second, "delay between screen captures")
	cmd.Flags().IntVar(&count, "count", 0, "number of captures to run (0 = run forever)")
	cmd.Flags().StringVar(&overlayDir, "overlay-dir", "", "directory to write timestamped debug overlay PNGs to")
	return cmd
}

func writeOverlay(dir string, img *pixel.GrayImage, tmplRaw *pixel.GrayImage, results []match.Result) error {
	overlay := debug.RenderOverlay(img, image.Pt(tmplRaw.Width, tmplRaw.Height), results)
	name := strftime.Format("pyrmatch-%Y%m%d-%H%M%S.png", time.Now())
	return os.WriteFile(filepath.Join(dir, name), debug.EncodePNG(overlay), 0o644)
}
