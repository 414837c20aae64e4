// Package codegen translates the IR into source code for each supported
// target. Emitters are pure functions of (Model, Table); the Registry is
// built once at startup and is safe for concurrent lookups.
package codegen

import (
	"sort"
	"sync"

	"github.com/ailang-dev/ailang/ir"
)

type Target string

const (
	TargetPython     = Target("python")
	TargetCPP        = Target("cpp")
	TargetJavaScript = Target("javascript")
)

type EmitFunc func(*ir.Model, *Table) (string, error)

// Entry associates a target identifier with its file extension, the runner
// program used to execute compiled artifacts, its mapping table, and its
// emitter.
type Entry struct {
	Target Target
	Ext    string
	Runner string
	Table  *Table
	Emit   EmitFunc
}

type Registry struct {
	mu      sync.RWMutex
	entries map[Target]*Entry
}

func NewRegistry() *Registry {
	return &Registry{
		entries: map[Target]*Entry{},
	}
}

// DefaultRegistry returns a registry with the three built-in targets.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&Entry{
		Target: TargetPython,
		Ext:    "py",
		Runner: "python3",
		Table:  pythonTable(),
		Emit:   EmitPython,
	})
	r.Register(&Entry{
		Target: TargetCPP,
		Ext:    "cpp",
		Runner: "g++",
		Table:  cppTable(),
		Emit:   EmitCPP,
	})
	r.Register(&Entry{
		Target: TargetJavaScript,
		Ext:    "js",
		Runner: "node",
		Table:  jsTable(),
		Emit:   EmitJavaScript,
	})
	return r
}

func (r *Registry) Register(e *Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[e.Target] = e
}

func (r *Registry) Entry(t Target) (*Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[t]
	return e, ok
}

// Targets returns all registered entries ordered by target identifier.
func (r *Registry) Targets() []*Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entries := make([]*Entry, 0, len(r.entries))
	for _, e := range r.entries {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Target < entries[j].Target
	})
	return entries
}
