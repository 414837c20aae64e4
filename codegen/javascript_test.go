package codegen

import (
	"errors"
	"strings"
	"testing"
)

func TestEmitJavaScript_ClassPerModel(t *testing.T) {
	text := emit(t, `model TinyNet { input: 4; layer: 8 "relu"; layer: 1 }`, TargetJavaScript)
	assertContains(t, text,
		"const tf = require('@tensorflow/tfjs');",
		"class TinyNet extends tf.Sequential {",
		"this.add(tf.layers.inputLayer({inputShape: [4]}));",
		`this.add(tf.layers.dense({units: 8, activation: "relu"}));`,
		"this.add(tf.layers.dense({units: 1}));",
		"const model = new TinyNet();",
		"model.summary();",
	)
	assertNotContains(t, text, "this.compile", "trainModel")
}

func TestEmitJavaScript_ShapedInputDropsBatchAxis(t *testing.T) {
	text := emit(t, `
model ConvNet {
    input { shape: [_, 28, 28, 1] }
    layer { type: conv2d; filters: 32; kernel_size: 3 }
    layer { type: flatten }
    layer: 10 "softmax"
}
`, TargetJavaScript)
	assertContains(t, text,
		"this.add(tf.layers.inputLayer({inputShape: [28, 28, 1]}));",
		"this.add(tf.layers.conv2d({filters: 32, kernelSize: 3}));",
		"this.add(tf.layers.flatten({}));",
		`this.add(tf.layers.dense({units: 10, activation: "softmax"}));`,
	)
}

func TestEmitJavaScript_InteriorUnspecifiedAxisIsNull(t *testing.T) {
	text := emit(t, `
model SeqNet {
    input { shape: [28, _, 3] }
    layer { type: flatten }
    layer: 10 "softmax"
}
`, TargetJavaScript)
	assertContains(t, text,
		"this.add(tf.layers.inputLayer({inputShape: [28, null, 3]}));",
	)
	assertNotContains(t, text, "[28, 0, 3]")
}

func TestEmitJavaScript_FixedCompilePair(t *testing.T) {
	// The compile block is gated on the presence of a train config only;
	// its optimizer and loss settings are not projected.
	text := emit(t, `
model Net { input: 4; layer: 1 }
train { epochs: 50; batch_size: 16; optimizer: sgd(learning_rate=0.1); loss: "categorical_crossentropy" }
`, TargetJavaScript)
	assertContains(t, text,
		`optimizer: "adam",`,
		`loss: "meanSquaredError",`,
		`metrics: ["accuracy"],`,
		"async function trainModel(model, xs, ys) {",
		"epochs: 50,",
		"batchSize: 16,",
	)
	assertNotContains(t, text, "sgd", "categorical_crossentropy")
}

func TestEmitJavaScript_NoCompileWithoutTrainConfig(t *testing.T) {
	text := emit(t, `model Net { input: 4; layer: 1 }`, TargetJavaScript)
	assertNotContains(t, text, "this.compile", "optimizer", "trainModel")
}

func TestEmitJavaScript_UnmappedActivationIsDropped(t *testing.T) {
	text := emit(t, `model Net { input: 4; layer: 8 "elu"; layer: 1 }`, TargetJavaScript)
	assertContains(t, text, "this.add(tf.layers.dense({units: 8}));")
	assertNotContains(t, text, "elu")
}

func TestEmitJavaScript_TwoSpaceIndent(t *testing.T) {
	text := emit(t, `model Net { input: 4; layer: 1 }`, TargetJavaScript)
	if !strings.Contains(text, "  constructor() {") {
		t.Fatalf("the class body must be indented by two spaces; got:\n%v", text)
	}
}

func TestEmitJavaScript_UnknownLayerKindFails(t *testing.T) {
	m := parseModel(t, `model Net { input: 4; layer { type: attention } }`)
	entry, _ := DefaultRegistry().Entry(TargetJavaScript)
	_, err := entry.Emit(m, entry.Table)
	var unmapped *UnmappedConstructError
	if !errors.As(err, &unmapped) {
		t.Fatalf("unexpected error; want: UnmappedConstructError, got: %v", err)
	}
	if unmapped.Target != TargetJavaScript {
		t.Fatalf("unexpected error detail: %+v", unmapped)
	}
}
