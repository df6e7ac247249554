package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// ErrInvalidConfig matches every *ConfigError via errors.Is.
var ErrInvalidConfig = errors.New("invalid config")

// ConfigError reports everything wrong with one config file at once.
// Validation messages use the form "section.key: problem"; messages without
// a section apply to the whole file.
type ConfigError struct {
	Path    string
	Missing []string // ${VAR} references with no value and no default
	Errors  []string
}

func (e *ConfigError) Error() string {
	if !e.HasErrors() {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "config %s:", e.Path)

	if len(e.Missing) > 0 {
		fmt.Fprintf(&b, "\n  unset variables %s (export them or set them in %s)",
			strings.Join(e.Missing, ", "), filepath.Join(filepath.Dir(e.Path), ".env"))
	}

	for _, section := range e.Sections() {
		indent := "  "
		if section != "" {
			fmt.Fprintf(&b, "\n  [%s]", section)
			indent = "    "
		}
		for _, msg := range e.Section(section) {
			b.WriteString("\n" + indent + "- " + msg)
		}
	}

	return b.String()
}

func (e *ConfigError) Unwrap() error { return ErrInvalidConfig }

// HasErrors reports whether anything was recorded.
func (e *ConfigError) HasErrors() bool {
	return len(e.Missing) > 0 || len(e.Errors) > 0
}

// Sections lists the sections with validation errors, file-wide errors
// ("") first and the rest sorted.
func (e *ConfigError) Sections() []string {
	var out []string
	for _, msg := range e.Errors {
		s, _ := splitSection(msg)
		if !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	slices.Sort(out)
	return out
}

// Section returns the validation errors for one section with the section
// prefix removed.
func (e *ConfigError) Section(name string) []string {
	var out []string
	for _, msg := range e.Errors {
		if s, rest := splitSection(msg); s == name {
			out = append(out, rest)
		}
	}
	return out
}

func splitSection(msg string) (section, rest string) {
	key, _, ok := strings.Cut(msg, ": ")
	if !ok {
		return "", msg
	}
	section, _, ok = strings.Cut(key, ".")
	if !ok || strings.Contains(section, " ") {
		return "", msg
	}
	return section, strings.TrimPrefix(msg, section+".")
}
