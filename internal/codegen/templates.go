package codegen

import (
	"embed"
	"fmt"
	"sync"
	"text/template"
)

const (
	tmplRoot     = "preamble"
	tmplVertex   = "vertex"
	tmplFragment = "fragment"
	tmplConfig   = "config"
)

const templatePattern = "templates/*.gtpl"

//go:embed templates/*.gtpl
var templatesFS embed.FS

var (
	preambleTmpl *template.Template
	tmplInitOnce sync.Once
	tmplInitErr  error
)

// preambleModel is the data every preamble template renders from.
type preambleModel struct {
	Target  string
	Version string
	ES      bool
}

// stageTemplates names the preamble template of each buffer.
var stageTemplates = map[Stage]string{
	StageVertex:   tmplVertex,
	StageFragment: tmplFragment,
	StageConfig:   tmplConfig,
}

// validateTemplates ensures every buffer has a preamble template.
func validateTemplates() error {
	for _, name := range []string{tmplVertex, tmplFragment, tmplConfig} {
		if preambleTmpl.Lookup(name) == nil {
			return fmt.Errorf("required template %q not found", name)
		}
	}
	return nil
}

// ensureTemplates parses and validates templates exactly once.
func ensureTemplates() error {
	tmplInitOnce.Do(func() {
		var t *template.Template
		t, tmplInitErr = template.New(tmplRoot).ParseFS(templatesFS, templatePattern)
		if tmplInitErr != nil {
			return
		}
		preambleTmpl = t
		tmplInitErr = validateTemplates()
	})
	return tmplInitErr
}
