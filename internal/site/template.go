package site

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Placeholder is the literal token replaced by the rendered cards.
const Placeholder = "__REPLACE_ANIMALS_INFO__"

// ErrPlaceholderMissing is returned when a template lacks Placeholder.
var ErrPlaceholderMissing = errors.New("template does not contain placeholder " + Placeholder)

//go:embed assets/animals_template.html
var defaultTemplate string

// DefaultTemplate returns the embedded page template.
func DefaultTemplate() string {
	return defaultTemplate
}

// LoadTemplate reads the page template at path.
// An empty path selects the embedded default template.
func LoadTemplate(path string) (string, error) {
	if path == "" {
		return defaultTemplate, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("site: read template %s: %w", path, err)
	}
	return string(data), nil
}

// Substitute replaces every occurrence of Placeholder in tmpl with fragment.
func Substitute(tmpl, fragment string) (string, error) {
	if !strings.Contains(tmpl, Placeholder) {
		return "", ErrPlaceholderMissing
	}
	return strings.ReplaceAll(tmpl, Placeholder, fragment), nil
}

// WritePage writes the generated document to path, creating parent directories.
func WritePage(path, page string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("site: create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(page), 0o644); err != nil {
		return fmt.Errorf("site: write %s: %w", path, err)
	}
	return nil
}
