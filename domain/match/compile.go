package match

import (
	"github.com/soocke/pyrmatch/domain/pixel"
	"github.com/soocke/pyrmatch/domain/template"
)

// CompileTemplate wraps template.Compile, tagging any failure (zero-sized
// or degenerate constant-intensity template) with Kind InvalidTemplate so
// callers get the same Kind/Error taxonomy for template compilation as
// for Match itself (spec.md §7).
func CompileTemplate(raw *pixel.GrayImage, cfg template.CompileConfig) (*template.CompiledTemplate, error) {
	ct, err := template.Compile(raw, cfg)
	if err != nil {
		return nil, newError(InvalidTemplate, "%v", err)
	}
	return ct, nil
}
