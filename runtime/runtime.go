// Package runtime defines the boundary to the execution collaborator that
// trains and evaluates a built model against a real ML backend. This module
// performs no numerical computation itself; backends register a factory here
// and are selected by name.
package runtime

import (
	"fmt"
	"sort"
	"sync"

	"github.com/ailang-dev/ailang/ir"
)

// Runtime executes a resolved model configuration on one backend.
type Runtime interface {
	// Initialize builds the backend's model object from the configuration.
	// It must be called before any other method.
	Initialize() error
	// Train fits the model and returns backend-specific metrics.
	Train(xTrain, yTrain interface{}) (map[string]float64, error)
	// Evaluate scores the model on held-out data.
	Evaluate(xTest, yTest interface{}) (map[string]float64, error)
	// Predict returns the model's output for the given input.
	Predict(x interface{}) (interface{}, error)
	// Save persists the trained model to path.
	Save(path string) error
}

// Factory constructs a Runtime for a model.
type Factory func(m *ir.Model) (Runtime, error)

// LoadFactory restores a Runtime from a model previously persisted with
// Save. It is the backend's alternative constructor; the restored runtime
// needs no Initialize call.
type LoadFactory func(path string) (Runtime, error)

var (
	mu        sync.RWMutex
	factories = map[string]Factory{}
	loaders   = map[string]LoadFactory{}
)

// Register makes a backend available under the given name. Backends are
// expected to register at startup; Register is safe for concurrent use.
func Register(backend string, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	factories[backend] = f
}

// RegisterLoader makes a backend's saved-model constructor available under
// the given name.
func RegisterLoader(backend string, f LoadFactory) {
	mu.Lock()
	defer mu.Unlock()
	loaders[backend] = f
}

// New constructs a runtime for the named backend.
func New(backend string, m *ir.Model) (Runtime, error) {
	mu.RLock()
	f, ok := factories[backend]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unsupported runtime backend: %v (registered backends: %v)", backend, Backends())
	}
	return f(m)
}

// Load restores a saved model with the named backend.
func Load(backend, path string) (Runtime, error) {
	mu.RLock()
	f, ok := loaders[backend]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("runtime backend %v cannot load saved models", backend)
	}
	return f(path)
}

// Backends returns the registered backend names in sorted order.
func Backends() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
