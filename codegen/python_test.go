package codegen

import (
	"errors"
	"strings"
	"testing"

	"github.com/ailang-dev/ailang/ir"
	"github.com/ailang-dev/ailang/spec"
)

func parseModel(t *testing.T, src string) *ir.Model {
	t.Helper()
	ast, err := spec.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	b := &ir.Builder{
		AST: ast,
	}
	m, err := b.Build()
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}
	return m
}

func emit(t *testing.T, src string, target Target) string {
	t.Helper()
	m := parseModel(t, src)
	entry, ok := DefaultRegistry().Entry(target)
	if !ok {
		t.Fatalf("unknown target: %v", target)
	}
	text, err := entry.Emit(m, entry.Table)
	if err != nil {
		t.Fatalf("unexpected emit error: %v", err)
	}
	return text
}

func assertContains(t *testing.T, text string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(text, want) {
			t.Fatalf("generated code must contain %q; got:\n%v", want, text)
		}
	}
}

func assertNotContains(t *testing.T, text string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if strings.Contains(text, want) {
			t.Fatalf("generated code must not contain %q; got:\n%v", want, text)
		}
	}
}

func TestEmitPython_MinimalModel(t *testing.T) {
	text := emit(t, `model TinyNet { input: 4; layer: 8 "relu"; layer: 1 }`, TargetPython)
	assertContains(t, text,
		"from tensorflow.keras.models import Sequential",
		"from tensorflow.keras.layers import Dense",
		"# Model: TinyNet",
		"model = Sequential([",
		`Dense(8, activation="relu"),`,
		"Dense(1),",
	)
	assertNotContains(t, text, "model.compile", "model.fit")

	// Layers must appear in declaration order.
	if strings.Index(text, "Dense(8") > strings.Index(text, "Dense(1)") {
		t.Fatalf("layers are out of order:\n%v", text)
	}
}

func TestEmitPython_ShapedInput(t *testing.T) {
	text := emit(t, `
model ConvNet {
    input { shape: [_, 28, 28, 1] }
    layer { type: conv2d; filters: 32; kernel_size: 3; activation: relu }
    layer { type: maxpool2d; kernel_size: 2 }
    layer { type: flatten }
    layer { type: dropout; rate: 0.5 }
    layer: 10 "softmax"
}
`, TargetPython)
	assertContains(t, text,
		"from tensorflow.keras.layers import Input, Conv2D, MaxPooling2D, Flatten, Dropout, Dense",
		"Input(shape=(None, 28, 28, 1)),",
		`Conv2D(32, kernel_size=3, activation="relu"),`,
		"MaxPooling2D(pool_size=2),",
		"Flatten(),",
		"Dropout(0.5),",
		`Dense(10, activation="softmax"),`,
	)
}

func TestEmitPython_CompileAndFit(t *testing.T) {
	text := emit(t, `
model Net { input: 4; layer: 1 }
train {
    epochs: 10
    batch_size: 32
    optimizer: adam(learning_rate=0.001)
    loss: "categorical_crossentropy"
    metrics: [accuracy, "mae"]
    callback: early_stopping(patience=5)
    dataset: mnist
}
`, TargetPython)
	assertContains(t, text,
		"from tensorflow.keras.optimizers import Adam",
		"from tensorflow.keras.callbacks import EarlyStopping",
		"model.compile(",
		"optimizer=Adam(learning_rate=0.001),",
		`loss="categorical_crossentropy",`,
		`metrics=["accuracy", "mae"],`,
		"model.fit(",
		"mnist.train_data,",
		"mnist.train_labels,",
		"epochs=10,",
		"batch_size=32,",
		"callbacks=[EarlyStopping(patience=5)],",
		"validation_data=(mnist.test_data, mnist.test_labels),",
	)
}

func TestEmitPython_OptimizerWithoutLearningRateStaysAString(t *testing.T) {
	text := emit(t, `
model Net { input: 4; layer: 1 }
train { epochs: 5; batch_size: 16; optimizer: sgd; loss: "mse" }
`, TargetPython)
	assertContains(t, text, `optimizer="sgd",`)
	assertNotContains(t, text, "from tensorflow.keras.optimizers")
}

func TestEmitPython_UnmappedOptimizerPassesThrough(t *testing.T) {
	text := emit(t, `
model Net { input: 4; layer: 1 }
train { epochs: 5; batch_size: 16; optimizer: adagrad(learning_rate=0.01); loss: "mse" }
`, TargetPython)
	assertContains(t, text, `optimizer="adagrad",`)
	assertNotContains(t, text, "from tensorflow.keras.optimizers")
}

func TestEmitPython_CompileDefaults(t *testing.T) {
	text := emit(t, `
model Net { input: 4; layer: 1 }
train { epochs: 5; batch_size: 16 }
`, TargetPython)
	assertContains(t, text,
		`optimizer="adam",`,
		`loss="mse",`,
		`metrics=["accuracy"],`,
		"x_train,",
		"y_train,",
	)
}

func TestEmitPython_UnmappedActivationIsDropped(t *testing.T) {
	text := emit(t, `model Net { input: 4; layer: 8 "gelu"; layer: 1 }`, TargetPython)
	assertContains(t, text, "Dense(8),")
	assertNotContains(t, text, "gelu")
}

func TestEmitPython_UnmappedLossPassesThrough(t *testing.T) {
	text := emit(t, `
model Net { input: 4; layer: 1 }
train { epochs: 1; batch_size: 1; loss: "huber" }
`, TargetPython)
	assertContains(t, text, `loss="huber",`)
}

func TestEmitPython_UnknownLayerKindFails(t *testing.T) {
	m := parseModel(t, `model Net { input: 4; layer { type: attention } }`)
	entry, _ := DefaultRegistry().Entry(TargetPython)
	_, err := entry.Emit(m, entry.Table)
	var unmapped *UnmappedConstructError
	if !errors.As(err, &unmapped) {
		t.Fatalf("unexpected error; want: UnmappedConstructError, got: %v", err)
	}
	if unmapped.Name != "attention" || unmapped.Construct != "layer kind" {
		t.Fatalf("unexpected error detail: %+v", unmapped)
	}
}
