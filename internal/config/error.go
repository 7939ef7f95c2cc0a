package config

import (
	"fmt"
	"strings"
)

// ConfigError collects everything wrong with a config file in one error:
// unresolved ${VAR} references and failed validation rules. Load reports
// all of them at once instead of stopping at the first.
type ConfigError struct {
	Path    string
	Missing []string // unresolved environment variables
	Errors  []string // validation failures, "field: rule" form
}

func (e *ConfigError) Error() string {
	var b strings.Builder
	if len(e.Missing) > 0 {
		fmt.Fprintf(&b, "missing environment variables: %s", strings.Join(e.Missing, ", "))
	}
	if len(e.Errors) > 0 {
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("validation failed:")
		for _, msg := range e.Errors {
			b.WriteString("\n  - ")
			b.WriteString(msg)
		}
	}
	return b.String()
}

// HasErrors reports whether anything was collected.
func (e *ConfigError) HasErrors() bool {
	return len(e.Missing) > 0 || len(e.Errors) > 0
}
