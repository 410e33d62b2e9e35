package match

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/soocke/pyrmatch/domain/pixel"
	"github.com/soocke/pyrmatch/domain/preprocess"
	"github.com/soocke/pyrmatch/domain/search"
	"github.com/soocke/pyrmatch/domain/template"
)

// Result is the external answer for one kept candidate: finest-level
// coordinates (possibly fractional after subpixel refinement), the
// refined angle in (-180, 180], and the score it was ranked on.
type Result struct {
	X, Y     float64
	AngleDeg float64
	Score    float64
}

// Matcher ties a compiled template to the beam search engine. It borrows
// the CompiledTemplate for the lifetime of every call and never mutates
// it; CompiledImage instances are built fresh per call (spec.md §3
// "Ownership").
type Matcher struct {
	tmpl   *template.CompiledTemplate
	logger *slog.Logger
}

// NewMatcher wraps a compiled template. logger may be nil, in which case
// a discarding logger is used.
func NewMatcher(tmpl *template.CompiledTemplate, logger *slog.Logger) *Matcher {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(noopWriter{}, nil))
	}
	return &Matcher{tmpl: tmpl, logger: logger}
}

// Match runs one matching call against img with cfg, returning the
// top cfg.TopK results (best first) and observability Stats.
//
// Errors: InvalidConfig (bad cfg), InvalidImage (zero-sized, or smaller
// than the template at the finest level), or NoMatch (no candidate
// survived). Internal numeric exceptions never escape as a distinct
// error: they are logged with Kind InternalNumeric and folded into
// NoMatch, per spec.md §7 ("exceptional only; logged and surfaced as
// NoMatch to the caller").
func (m *Matcher) Match(img *pixel.GrayImage, cfg Config) (results []Result, stats Stats, err error) {
	callID := uuid.NewString()
	logger := m.logger.With("call_id", callID)

	defer func() {
		if r := recover(); r != nil {
			ierr := newError(InternalNumeric, "panic during search: %v", r)
			logger.Error("internal numeric error", "error", ierr)
			results, err = nil, newError(NoMatch, "no candidate survived min_score")
		}
	}()

	return m.match(img, cfg, logger)
}

func (m *Matcher) match(img *pixel.GrayImage, cfg Config, logger *slog.Logger) ([]Result, Stats, error) {
	start := time.Now()

	if img.Width == 0 || img.Height == 0 {
		err := newError(InvalidImage, "zero-sized image %dx%d", img.Width, img.Height)
		logger.Error("invalid image", "error", err)
		return nil, Stats{}, err
	}
	finest := m.tmpl.Pyramid.Level(0)
	if img.Width < finest.Width || img.Height < finest.Height {
		err := newError(InvalidImage, "image %dx%d smaller than template %dx%d", img.Width, img.Height, finest.Width, finest.Height)
		logger.Error("invalid image", "error", err)
		return nil, Stats{}, err
	}

	sc, cerr := cfg.toSearchConfig()
	if cerr != nil {
		logger.Error("invalid config", "error", cerr)
		return nil, Stats{}, cerr
	}

	ci, err := preprocess.Compile(img, cfg.MaxImageLevels, m.tmpl.Pyramid.NumLevels(), cfg.Parallel)
	if err != nil {
		wrapped := newError(InvalidImage, "%v", err)
		logger.Error("preprocess failed", "error", wrapped)
		return nil, Stats{}, wrapped
	}

	results, sstats, serr := search.Search(m.tmpl, ci, sc)
	stats := Stats{
		CandidatesEvaluated: sstats.CandidatesEvaluated,
		LevelsSearched:      sstats.LevelsSearched,
		Elapsed:             time.Since(start),
	}
	if serr != nil {
		logger.Info("no match", "candidates_evaluated", stats.CandidatesEvaluated)
		return nil, stats, newError(NoMatch, "no candidate survived min_score")
	}

	out := make([]Result, len(results))
	for i, r := range results {
		out[i] = Result{X: r.X, Y: r.Y, AngleDeg: r.AngleDeg, Score: r.Score}
	}
	logger.Info("match complete", "results", len(out), "candidates_evaluated", stats.CandidatesEvaluated, "elapsed", stats.Elapsed)
	return out, stats, nil
}

type noopWriter struct{}

func (noopWriter) Write(p []byte) (int, error) { return len(p), nil }
