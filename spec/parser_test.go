package spec

import (
	"errors"
	"strings"
	"testing"

	verr "github.com/ailang-dev/ailang/error"
)

func TestParse(t *testing.T) {
	model := func(name string, input *InputNode, layers ...*LayerNode) *ModelNode {
		return &ModelNode{
			Name:   name,
			Input:  input,
			Layers: layers,
		}
	}
	sizedInput := func(size string) *InputNode {
		return &InputNode{
			Size: size,
		}
	}
	shapedInput := func(dims ...string) *InputNode {
		return &InputNode{
			Shape: dims,
		}
	}
	minLayer := func(units, activation string) *LayerNode {
		return &LayerNode{
			Units:      units,
			Activation: activation,
			Quoted:     activation != "",
		}
	}
	keyedLayer := func(attrs ...*AttrNode) *LayerNode {
		return &LayerNode{
			Attrs: attrs,
		}
	}
	train := func(attrs ...*AttrNode) *TrainNode {
		return &TrainNode{
			Attrs: attrs,
		}
	}
	attr := func(key string, value *ValueNode) *AttrNode {
		return &AttrNode{
			Key:   key,
			Value: value,
		}
	}
	intVal := func(text string) *ValueNode {
		return &ValueNode{
			Kind: ValueKindInt,
			Text: text,
		}
	}
	floatVal := func(text string) *ValueNode {
		return &ValueNode{
			Kind: ValueKindFloat,
			Text: text,
		}
	}
	strVal := func(text string) *ValueNode {
		return &ValueNode{
			Kind: ValueKindString,
			Text: text,
		}
	}
	idVal := func(text string) *ValueNode {
		return &ValueNode{
			Kind: ValueKindID,
			Text: text,
		}
	}
	listVal := func(elems ...string) *ValueNode {
		return &ValueNode{
			Kind:  ValueKindList,
			Elems: elems,
		}
	}
	callVal := func(name string, args ...*ArgNode) *ValueNode {
		return &ValueNode{
			Kind: ValueKindCall,
			Call: &CallNode{
				Name: name,
				Args: args,
			},
		}
	}
	arg := func(key, value string) *ArgNode {
		return &ArgNode{
			Key:   key,
			Value: value,
		}
	}

	tests := []struct {
		caption string
		src     string
		ast     *RootNode
		synErr  *SyntaxError
	}{
		{
			caption: "a model with minimal layers is valid",
			src:     `model TinyNet { input: 4; layer: 8 "relu"; layer: 1; }`,
			ast: &RootNode{
				Model: model("TinyNet",
					sizedInput("4"),
					minLayer("8", "relu"),
					minLayer("1", ""),
				),
			},
		},
		{
			caption: "semicolons between statements are optional",
			src: `
model TinyNet {
    input: 4
    layer: 8 "relu"
    layer: 1
}
`,
			ast: &RootNode{
				Model: model("TinyNet",
					sizedInput("4"),
					minLayer("8", "relu"),
					minLayer("1", ""),
				),
			},
		},
		{
			caption: "an input can carry a multi-dimensional shape with unspecified axes",
			src: `
model ConvNet {
    input { shape: [_, 28, 28, 1] }
    layer { type: conv2d; filters: 32; kernel_size: 3 }
    layer: 10 "softmax"
}
`,
			ast: &RootNode{
				Model: model("ConvNet",
					shapedInput("_", "28", "28", "1"),
					keyedLayer(
						attr("type", idVal("conv2d")),
						attr("filters", intVal("32")),
						attr("kernel_size", intVal("3")),
					),
					minLayer("10", "softmax"),
				),
			},
		},
		{
			caption: "a train block can follow a model",
			src: `
model Net { input: 4; layer: 1 }
train {
    epochs: 10
    batch_size: 32
    optimizer: adam(learning_rate=0.001)
    loss: "categorical_crossentropy"
    metrics: [accuracy, "mae"]
    callback: early_stopping
    dataset: mnist
    validation_split: 0.2
}
`,
			ast: &RootNode{
				Model: model("Net", sizedInput("4"), minLayer("1", "")),
				Train: train(
					attr("epochs", intVal("10")),
					attr("batch_size", intVal("32")),
					attr("optimizer", callVal("adam", arg("learning_rate", "0.001"))),
					attr("loss", strVal("categorical_crossentropy")),
					attr("metrics", listVal("accuracy", "mae")),
					attr("callback", idVal("early_stopping")),
					attr("dataset", idVal("mnist")),
					attr("validation_split", floatVal("0.2")),
				),
			},
		},
		{
			caption: "a source must start with a model declaration",
			src:     `train { epochs: 10 }`,
			synErr:  synErrNoModel,
		},
		{
			caption: "a model must have a name",
			src:     `model { input: 4 }`,
			synErr:  synErrNoModelName,
		},
		{
			caption: "a model must have a body",
			src:     `model Net`,
			synErr:  synErrNoModelBody,
		},
		{
			caption: "a model must declare an input",
			src:     `model Net { layer: 1 }`,
			synErr:  synErrNoInput,
		},
		{
			caption: "a model must not declare two inputs",
			src:     `model Net { input: 4; input: 8; layer: 1 }`,
			synErr:  synErrDupInput,
		},
		{
			caption: "an input size must be an integer",
			src:     `model Net { input: relu }`,
			synErr:  synErrNoInputSize,
		},
		{
			caption: "an input block must declare a shape",
			src:     `model Net { input { } layer: 1 }`,
			synErr:  synErrNoShape,
		},
		{
			caption: "a shape must have at least one dimension",
			src:     `model Net { input { shape: [] } layer: 1 }`,
			synErr:  synErrNoShapeDim,
		},
		{
			caption: "a minimal layer must have a unit count",
			src:     `model Net { input: 4; layer: "relu" }`,
			synErr:  synErrNoLayerUnits,
		},
		{
			caption: "an attribute must have a value",
			src:     `model Net { input: 4; layer { type: } }`,
			synErr:  synErrNoAttrValue,
		},
		{
			caption: "a call argument must have a value",
			src: `
model Net { input: 4; layer: 1 }
train { optimizer: adam(learning_rate=) }
`,
			synErr: synErrNoCallArgValue,
		},
		{
			caption: "a call must be closed",
			src: `
model Net { input: 4; layer: 1 }
train { optimizer: adam(learning_rate=0.001 }
`,
			synErr: synErrUnclosedCall,
		},
		{
			caption: "a model body must be closed",
			src:     `model Net { input: 4; layer: 1`,
			synErr:  synErrUnclosedBlock,
		},
		{
			caption: "a train block must have a body",
			src: `
model Net { input: 4; layer: 1 }
train epochs
`,
			synErr: synErrNoTrainBody,
		},
		{
			caption: "content after the train block is an error",
			src: `
model Net { input: 4; layer: 1 }
train { epochs: 10 }
model Another { input: 2; layer: 1 }
`,
			synErr: synErrTrailingContent,
		},
		{
			caption: "an unknown character raises a syntax error",
			src:     `model Net { input: 4; layer: 1 ! }`,
			synErr:  synErrInvalidToken,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			ast, err := Parse(strings.NewReader(tt.src))
			if tt.synErr != nil {
				if !errors.Is(err, tt.synErr) {
					t.Fatalf("unexpected error; want: %v, got: %v", tt.synErr, err)
				}
				if ast != nil {
					t.Fatalf("AST must be nil")
				}
			} else {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if ast == nil {
					t.Fatalf("AST must be non-nil")
				}
				testRootNode(t, ast, tt.ast)
			}
		})
	}
}

func TestParse_UnclosedBlockReportsOpeningPosition(t *testing.T) {
	src := "model Net {\n    input: 4\n    layer: 1\n"
	_, err := Parse(strings.NewReader(src))
	if !errors.Is(err, synErrUnclosedBlock) {
		t.Fatalf("unexpected error; want: %v, got: %v", synErrUnclosedBlock, err)
	}
	var specErr *verr.SpecError
	if !errors.As(err, &specErr) {
		t.Fatalf("unexpected error type: %T", err)
	}
	if specErr.Row != 1 || specErr.Col != 1 {
		t.Fatalf("unexpected position; want: 1:1, got: %v:%v", specErr.Row, specErr.Col)
	}
}

func testRootNode(t *testing.T, root, expected *RootNode) {
	t.Helper()
	testModelNode(t, root.Model, expected.Model)
	if expected.Train == nil {
		if root.Train != nil {
			t.Fatalf("unexpected train block; want: nil, got: %+v", root.Train)
		}
		return
	}
	if root.Train == nil {
		t.Fatalf("a train block is not set; want: %+v, got: nil", expected.Train)
	}
	testAttrNodes(t, root.Train.Attrs, expected.Train.Attrs)
}

func testModelNode(t *testing.T, model, expected *ModelNode) {
	t.Helper()
	if model.Name != expected.Name {
		t.Fatalf("unexpected model name; want: %v, got: %v", expected.Name, model.Name)
	}
	if model.Input.Size != expected.Input.Size {
		t.Fatalf("unexpected input size; want: %v, got: %v", expected.Input.Size, model.Input.Size)
	}
	if len(model.Input.Shape) != len(expected.Input.Shape) {
		t.Fatalf("unexpected input shape; want: %v, got: %v", expected.Input.Shape, model.Input.Shape)
	}
	for i, dim := range model.Input.Shape {
		if dim != expected.Input.Shape[i] {
			t.Fatalf("unexpected input shape; want: %v, got: %v", expected.Input.Shape, model.Input.Shape)
		}
	}
	if len(model.Layers) != len(expected.Layers) {
		t.Fatalf("unexpected length of layers; want: %v, got: %v", len(expected.Layers), len(model.Layers))
	}
	for i, layer := range model.Layers {
		testLayerNode(t, layer, expected.Layers[i])
	}
}

func testLayerNode(t *testing.T, layer, expected *LayerNode) {
	t.Helper()
	if layer.Units != expected.Units || layer.Activation != expected.Activation || layer.Quoted != expected.Quoted {
		t.Fatalf("unexpected layer; want: %+v, got: %+v", expected, layer)
	}
	testAttrNodes(t, layer.Attrs, expected.Attrs)
}

func testAttrNodes(t *testing.T, attrs, expected []*AttrNode) {
	t.Helper()
	if len(attrs) != len(expected) {
		t.Fatalf("unexpected length of attributes; want: %v, got: %v", len(expected), len(attrs))
	}
	for i, a := range attrs {
		testAttrNode(t, a, expected[i])
	}
}

func testAttrNode(t *testing.T, attr, expected *AttrNode) {
	t.Helper()
	if attr.Key != expected.Key {
		t.Fatalf("unexpected attribute key; want: %v, got: %v", expected.Key, attr.Key)
	}
	testValueNode(t, attr.Value, expected.Value)
}

func testValueNode(t *testing.T, val, expected *ValueNode) {
	t.Helper()
	if val.Kind != expected.Kind || val.Text != expected.Text {
		t.Fatalf("unexpected value; want: %+v, got: %+v", expected, val)
	}
	if len(val.Elems) != len(expected.Elems) {
		t.Fatalf("unexpected list elements; want: %v, got: %v", expected.Elems, val.Elems)
	}
	for i, elem := range val.Elems {
		if elem != expected.Elems[i] {
			t.Fatalf("unexpected list elements; want: %v, got: %v", expected.Elems, val.Elems)
		}
	}
	if expected.Call == nil {
		if val.Call != nil {
			t.Fatalf("unexpected call; want: nil, got: %+v", val.Call)
		}
		return
	}
	if val.Call == nil {
		t.Fatalf("a call is not set; want: %+v, got: nil", expected.Call)
	}
	if val.Call.Name != expected.Call.Name {
		t.Fatalf("unexpected call name; want: %v, got: %v", expected.Call.Name, val.Call.Name)
	}
	if len(val.Call.Args) != len(expected.Call.Args) {
		t.Fatalf("unexpected length of call arguments; want: %v, got: %v", len(expected.Call.Args), len(val.Call.Args))
	}
	for i, a := range val.Call.Args {
		if a.Key != expected.Call.Args[i].Key || a.Value != expected.Call.Args[i].Value {
			t.Fatalf("unexpected call argument; want: %+v, got: %+v", expected.Call.Args[i], a)
		}
	}
}
