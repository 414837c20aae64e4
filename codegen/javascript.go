package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ailang-dev/ailang/ir"
)

// EmitJavaScript renders the class-based target: a TensorFlow.js class named
// after the model, whose constructor registers an explicit input layer and
// one layer per IR layer. The compile-and-fit block is gated solely on the
// presence of a TrainConfig and always uses the default adam/meanSquaredError
// pair; the config's own optimizer and loss kinds are not consulted.
func EmitJavaScript(m *ir.Model, t *Table) (string, error) {
	g := newGenerator("  ")
	g.emitLine("// Import TensorFlow.js")
	g.emitLine("const tf = require('@tensorflow/tfjs');")
	g.emitLine("")
	g.emitLinef("// Model: %s", m.Name)
	g.emitLinef("class %s extends tf.Sequential {", m.Name)
	g.indent++
	g.emitLine("constructor() {")
	g.indent++
	g.emitLine("super();")
	g.emitLinef("this.add(tf.layers.inputLayer({inputShape: %s}));", jsInputShape(m.Input))
	for _, l := range m.Layers {
		factory, ok := t.Layer(l.Kind)
		if !ok {
			return "", &UnmappedConstructError{
				Target:    TargetJavaScript,
				Construct: "layer kind",
				Name:      string(l.Kind),
			}
		}
		g.emitLinef("this.add(tf.layers.%s({%s}));", factory, jsLayerConfig(l, t))
	}
	if m.TrainConfig != nil {
		g.emitLine("")
		g.emitLine("// Compile the model")
		g.emitLine("this.compile({")
		g.indent++
		g.emitLine(`optimizer: "adam",`)
		g.emitLine(`loss: "meanSquaredError",`)
		g.emitLine(`metrics: ["accuracy"],`)
		g.indent--
		g.emitLine("});")
	}
	g.indent--
	g.emitLine("}")
	g.indent--
	g.emitLine("}")

	if m.TrainConfig != nil {
		tc := m.TrainConfig
		g.emitLine("")
		g.emitLine("// Train the model")
		g.emitLine("async function trainModel(model, xs, ys) {")
		g.indent++
		g.emitLine("return model.fit(xs, ys, {")
		g.indent++
		g.emitLinef("epochs: %d,", tc.Epochs)
		g.emitLinef("batchSize: %d,", tc.BatchSize)
		g.indent--
		g.emitLine("});")
		g.indent--
		g.emitLine("}")
	}

	g.emitLine("")
	g.emitLinef("const model = new %s();", m.Name)
	g.emitLine("model.summary();")
	return g.String(), nil
}

func jsInputShape(input *ir.Input) string {
	if input.Shape == nil {
		return fmt.Sprintf("[%d]", input.Size)
	}
	var dims []string
	for i, d := range input.Shape {
		if d == ir.DimUnspecified {
			// tf.js input shapes exclude the batch axis; drop a leading
			// unspecified dimension. An interior unknown axis stays as
			// null, the tf.js token for an unknown dimension.
			if i == 0 {
				continue
			}
			dims = append(dims, "null")
			continue
		}
		dims = append(dims, strconv.Itoa(d))
	}
	return "[" + strings.Join(dims, ", ") + "]"
}

func jsLayerConfig(l *ir.Layer, t *Table) string {
	var fields []string
	switch l.Kind {
	case ir.LayerConv2D:
		fields = append(fields, fmt.Sprintf("filters: %d", l.Filters))
		if l.KernelSize > 0 {
			fields = append(fields, fmt.Sprintf("kernelSize: %d", l.KernelSize))
		}
	case ir.LayerMaxPool2D:
		if l.KernelSize > 0 {
			fields = append(fields, fmt.Sprintf("poolSize: %d", l.KernelSize))
		}
	case ir.LayerFlatten, ir.LayerBatchNorm:
		// no configuration
	case ir.LayerDropout:
		fields = append(fields, fmt.Sprintf("rate: %s", formatFloat(l.Rate)))
	case ir.LayerEmbedding:
		inputDim := strconv.Itoa(l.Units)
		if dim, ok := l.Extra["input_dim"]; ok {
			inputDim = dim
		}
		fields = append(fields, fmt.Sprintf("inputDim: %s", inputDim), fmt.Sprintf("outputDim: %d", l.Units))
	default:
		fields = append(fields, fmt.Sprintf("units: %d", l.Units))
	}
	if act := t.Activation(l.Activation); act != "" {
		fields = append(fields, fmt.Sprintf("activation: %q", act))
	}
	return strings.Join(fields, ", ")
}
