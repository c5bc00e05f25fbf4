package generator

import (
	"bytes"
	"fmt"
	"io/fs"
	"sync"
	"text/template"
)

// Renderer parses templates from a filesystem and caches them by path
type Renderer struct {
	funcMap template.FuncMap
	cache   map[string]*template.Template
	mu      sync.RWMutex
}

// NewRenderer creates a renderer with no helper functions
func NewRenderer() *Renderer {
	return &Renderer{
		funcMap: template.FuncMap{},
		cache:   make(map[string]*template.Template),
	}
}

// WithFuncs adds helper functions, replacing any with the same name.
// Call it before rendering: templates already in the cache keep the
// functions they were parsed with.
func (r *Renderer) WithFuncs(funcs template.FuncMap) *Renderer {
	r.mu.Lock()
	defer r.mu.Unlock()

	for name, fn := range funcs {
		r.funcMap[name] = fn
	}
	return r
}

// RenderFS renders a template from a filesystem, usually an embed.FS
func (r *Renderer) RenderFS(fsys fs.FS, path string, data any) ([]byte, error) {
	r.mu.RLock()
	tmpl, ok := r.cache[path]
	r.mu.RUnlock()

	if !ok {
		text, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("failed to read template from fs '%s': %w", path, err)
		}
		if tmpl, err = r.parse(path, string(text)); err != nil {
			return nil, err
		}

		r.mu.Lock()
		r.cache[path] = tmpl
		r.mu.Unlock()
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render template '%s': %w", path, err)
	}
	return buf.Bytes(), nil
}

// parse builds a template that fails on unknown map keys instead of
// printing "<no value>" into a generated file
func (r *Renderer) parse(name, text string) (*template.Template, error) {
	r.mu.RLock()
	funcs := make(template.FuncMap, len(r.funcMap))
	for k, v := range r.funcMap {
		funcs[k] = v
	}
	r.mu.RUnlock()

	tmpl, err := template.New(name).Funcs(funcs).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template '%s': %w", name, err)
	}
	return tmpl, nil
}
