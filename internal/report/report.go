// Package report renders estimate results as downloadable documents.
package report

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/ontax-dev/ontax/internal/model"
)

// Renderer writes results in one document format.
type Renderer interface {
	Format() string
	Extension() string
	ContentType() string
	RenderProperty(w io.Writer, results []model.PropertyTaxResult) error
	RenderIncome(w io.Writer, result model.IncomeTaxResult) error
}

// Registry holds renderers by format name.
type Registry struct {
	renderers map[string]Renderer
}

// NewRegistry creates an empty renderer registry.
func NewRegistry() *Registry {
	return &Registry{renderers: make(map[string]Renderer)}
}

// Register adds a renderer. Panics on duplicate format.
func (r *Registry) Register(rd Renderer) {
	key := strings.ToLower(rd.Format())
	if _, ok := r.renderers[key]; ok {
		panic("duplicate report format: " + key)
	}
	r.renderers[key] = rd
}

// Get returns the renderer for format.
func (r *Registry) Get(format string) (Renderer, error) {
	rd, ok := r.renderers[strings.ToLower(format)]
	if !ok {
		return nil, fmt.Errorf("unknown report format %q (want one of %s)", format, strings.Join(r.Formats(), ", "))
	}
	return rd, nil
}

// Formats returns the registered format names, sorted.
func (r *Registry) Formats() []string {
	names := make([]string, 0, len(r.renderers))
	for k := range r.renderers {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry returns a registry with all built-in renderers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(TextRenderer{})
	r.Register(CSVRenderer{})
	r.Register(XLSXRenderer{})
	return r
}

// FileName returns a timestamped report file name such as
// property_report_20240131_154500.xlsx.
func FileName(kind string, rd Renderer, now time.Time) string {
	return fmt.Sprintf("%s_report_%s.%s", kind, now.Format("20060102_150405"), rd.Extension())
}

// DefaultPath joins dir with FileName.
func DefaultPath(dir, kind string, rd Renderer, now time.Time) string {
	return filepath.Join(dir, FileName(kind, rd, now))
}
