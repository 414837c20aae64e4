package codegen

import (
	"github.com/ailang-dev/ailang/ir"
)

// Result carries the generated text and the byte sizes the build bookkeeping
// records alongside it.
type Result struct {
	Text       string
	SourceSize int
	OutputSize int
}

// Emit dispatches to the requested target's emitter. An unknown target is a
// ConfigurationError reported before any emission work; an emitter failure
// propagates as is (typically an UnmappedConstructError naming the offending
// symbolic name). Emission either fully succeeds or returns nothing.
func (r *Registry) Emit(m *ir.Model, source []byte, target Target) (*Result, error) {
	entry, ok := r.Entry(target)
	if !ok {
		var available []Target
		for _, e := range r.Targets() {
			available = append(available, e.Target)
		}
		return nil, &ConfigurationError{
			Target:    string(target),
			Available: available,
		}
	}
	text, err := entry.Emit(m, entry.Table)
	if err != nil {
		return nil, err
	}
	return &Result{
		Text:       text,
		SourceSize: len(source),
		OutputSize: len(text),
	}, nil
}
