package codegen

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/calumari/pslc/internal/manifest"
)

// Artifact names written by every compile.
const (
	VertexFile   = "shader.vsh"
	FragmentFile = "shader.fsh"
	ConfigFile   = "shader.csh"
)

// Artifacts maps artifact names to their text.
type Artifacts map[string]string

func (a Artifacts) Vertex() string   { return a[VertexFile] }
func (a Artifacts) Fragment() string { return a[FragmentFile] }
func (a Artifacts) Config() string   { return a[ConfigFile] }

// Manifest parses the configuration artifact.
func (a Artifacts) Manifest() (*manifest.Manifest, error) {
	return manifest.Parse(a.Config())
}

// WriteDir writes every artifact into dir.
func (a Artifacts) WriteDir(dir string) error {
	names := make([]string, 0, len(a))
	for name := range a {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(a[name]), 0o644); err != nil {
			return err
		}
	}
	return nil
}
