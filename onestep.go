package pyrmatch

import (
	"fmt"
	"log/slog"

	"github.com/soocke/pyrmatch/config"
	"github.com/soocke/pyrmatch/domain/match"
	"github.com/soocke/pyrmatch/ingestion"
)

// MatchFiles loads a template and a search image from PNG files, compiles
// the template, and runs a single match using cfg (pass config.Default()
// for the library defaults). It is the thin one-shot convenience entry
// point; repeated matches against the same template should compile it
// once via match.CompileTemplate and reuse a match.Matcher instead.
func MatchFiles(templatePath, imagePath string, cfg config.Config, logger *slog.Logger) ([]match.Result, match.Stats, error) {
	tmplRaw, err := ingestion.LoadPNGFile(templatePath)
	if err != nil {
		return nil, match.Stats{}, fmt.Errorf("pyrmatch: load template: %w", err)
	}
	imgRaw, err := ingestion.LoadPNGFile(imagePath)
	if err != nil {
		return nil, match.Stats{}, fmt.Errorf("pyrmatch: load image: %w", err)
	}

	ct, err := match.CompileTemplate(tmplRaw, cfg.Compile)
	if err != nil {
		return nil, match.Stats{}, fmt.Errorf("pyrmatch: compile template: %w", err)
	}

	m := match.NewMatcher(ct, logger)
	return m.Match(imgRaw, cfg.Match)
}
