package codegen

import (
	"fmt"
	"strings"
)

// ConfigurationError is raised when an unknown target identifier is
// requested, before any parsing or emission work happens.
type ConfigurationError struct {
	Target    string
	Available []Target
}

func (e *ConfigurationError) Error() string {
	names := make([]string, 0, len(e.Available))
	for _, t := range e.Available {
		names = append(names, string(t))
	}
	return fmt.Sprintf("unsupported target: %v (available targets: %v)", e.Target, strings.Join(names, ", "))
}

// UnmappedConstructError is raised when a symbolic name has no translation in
// the requested target's mapping table and the table's policy treats the
// absence as fatal.
type UnmappedConstructError struct {
	Target    Target
	Construct string
	Name      string
}

func (e *UnmappedConstructError) Error() string {
	return fmt.Sprintf("target %v has no mapping for %v %q", e.Target, e.Construct, e.Name)
}
