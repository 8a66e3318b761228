package reviewflow

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"text/template"
)

// embeddedPrompts holds the default agent prompts compiled into the
// binary. An override directory can shadow them per deployment.
//
//go:embed prompts/*.txt
var embeddedPrompts embed.FS

// promptVars are the substitution variables available to prompt
// templates.
type promptVars struct {
	Task string
	Code string
}

// PromptLoader loads and renders agent prompt templates by name
// ("orchestrate", "generate", "review", "document", "fallback").
type PromptLoader struct {
	overrideDir string
	mu          sync.Mutex
	cache       map[string]*template.Template
}

// NewPromptLoader creates a loader that serves the embedded prompts.
// When overrideDir is non-empty, a <name>.txt file there takes
// precedence over the embedded version.
func NewPromptLoader(overrideDir string) *PromptLoader {
	return &PromptLoader{
		overrideDir: overrideDir,
		cache:       make(map[string]*template.Template),
	}
}

// Render loads the named prompt and substitutes vars.
func (l *PromptLoader) Render(name string, vars promptVars) (string, error) {
	tmpl, err := l.getTemplate(name)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, vars); err != nil {
		return "", fmt.Errorf("render prompt %s: %w", name, err)
	}
	return buf.String(), nil
}

func (l *PromptLoader) getTemplate(name string) (*template.Template, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if tmpl, ok := l.cache[name]; ok {
		return tmpl, nil
	}

	raw, err := l.loadRaw(name)
	if err != nil {
		return nil, err
	}

	tmpl, err := template.New(name).Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse prompt %s: %w", name, err)
	}

	l.cache[name] = tmpl
	return tmpl, nil
}

func (l *PromptLoader) loadRaw(name string) (string, error) {
	if l.overrideDir != "" {
		path := filepath.Join(l.overrideDir, name+".txt")
		if data, err := os.ReadFile(path); err == nil {
			return string(data), nil
		}
	}

	data, err := embeddedPrompts.ReadFile("prompts/" + name + ".txt")
	if err != nil {
		return "", fmt.Errorf("prompt %s not found: %w", name, err)
	}
	return string(data), nil
}
