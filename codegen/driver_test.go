package codegen

import (
	"errors"
	"testing"
)

func TestRegistry_Emit(t *testing.T) {
	src := []byte(`model Net { input: 4; layer: 8 "relu"; layer: 1 }`)
	m := parseModel(t, string(src))
	registry := DefaultRegistry()

	result, err := registry.Emit(m, src, TargetPython)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.SourceSize != len(src) {
		t.Fatalf("unexpected source size; want: %v, got: %v", len(src), result.SourceSize)
	}
	if result.OutputSize != len(result.Text) {
		t.Fatalf("unexpected output size; want: %v, got: %v", len(result.Text), result.OutputSize)
	}
	if result.Text == "" {
		t.Fatalf("generated code must be non-empty")
	}
}

func TestRegistry_EmitUnknownTarget(t *testing.T) {
	src := []byte(`model Net { input: 4; layer: 1 }`)
	m := parseModel(t, string(src))
	registry := DefaultRegistry()

	_, err := registry.Emit(m, src, Target("rust"))
	var confErr *ConfigurationError
	if !errors.As(err, &confErr) {
		t.Fatalf("unexpected error; want: ConfigurationError, got: %v", err)
	}
	if confErr.Target != "rust" {
		t.Fatalf("unexpected target in the error; want: rust, got: %v", confErr.Target)
	}
	want := []Target{TargetCPP, TargetJavaScript, TargetPython}
	if len(confErr.Available) != len(want) {
		t.Fatalf("unexpected available targets; want: %v, got: %v", want, confErr.Available)
	}
	for i, tgt := range confErr.Available {
		if tgt != want[i] {
			t.Fatalf("unexpected available targets; want: %v, got: %v", want, confErr.Available)
		}
	}
}

func TestRegistry_Targets(t *testing.T) {
	entries := DefaultRegistry().Targets()
	if len(entries) != 3 {
		t.Fatalf("unexpected number of targets; want: 3, got: %v", len(entries))
	}
	// Ordered by target identifier.
	wants := []struct {
		target Target
		ext    string
		runner string
	}{
		{TargetCPP, "cpp", "g++"},
		{TargetJavaScript, "js", "node"},
		{TargetPython, "py", "python3"},
	}
	for i, want := range wants {
		e := entries[i]
		if e.Target != want.target || e.Ext != want.ext || e.Runner != want.runner {
			t.Fatalf("unexpected entry; want: %+v, got: %+v", want, e)
		}
	}
}
