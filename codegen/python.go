package codegen

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ailang-dev/ailang/ir"
)

// EmitPython renders the declarative-sequential target: a Keras Sequential
// layer list, an optional compile step projecting the TrainConfig's actual
// optimizer and loss kinds, and an optional fit step.
func EmitPython(m *ir.Model, t *Table) (string, error) {
	var layerClasses []string
	seen := map[string]bool{}
	addClass := func(cls string) {
		if !seen[cls] {
			seen[cls] = true
			layerClasses = append(layerClasses, cls)
		}
	}
	if m.Input.Shape != nil {
		addClass("Input")
	}

	var layerLines []string
	for _, l := range m.Layers {
		cls, ok := t.Layer(l.Kind)
		if !ok {
			return "", &UnmappedConstructError{
				Target:    TargetPython,
				Construct: "layer kind",
				Name:      string(l.Kind),
			}
		}
		addClass(cls)
		layerLines = append(layerLines, fmt.Sprintf("%s(%s),", cls, pythonLayerArgs(l, t)))
	}

	optToken, optImport := pythonOptimizer(m.TrainConfig, t)

	var cbTokens []string
	var cbImports []string
	if m.TrainConfig != nil {
		for _, cb := range m.TrainConfig.Callbacks {
			cls, ok := t.Callback(cb.Kind)
			if !ok {
				return "", &UnmappedConstructError{
					Target:    TargetPython,
					Construct: "callback kind",
					Name:      string(cb.Kind),
				}
			}
			cbImports = append(cbImports, cls)
			cbTokens = append(cbTokens, fmt.Sprintf("%s(%s)", cls, pythonKwargs(cb.Params)))
		}
	}

	g := newGenerator("    ")
	g.emitLine("from tensorflow.keras.models import Sequential")
	if len(layerClasses) > 0 {
		g.emitLinef("from tensorflow.keras.layers import %s", strings.Join(layerClasses, ", "))
	}
	if optImport != "" {
		g.emitLinef("from tensorflow.keras.optimizers import %s", optImport)
	}
	if len(cbImports) > 0 {
		g.emitLinef("from tensorflow.keras.callbacks import %s", strings.Join(cbImports, ", "))
	}
	g.emitLine("")
	g.emitLinef("# Model: %s", m.Name)
	g.emitLine("model = Sequential([")
	g.indent++
	if m.Input.Shape != nil {
		g.emitLinef("Input(shape=%s),", pythonShape(m.Input.Shape))
	}
	for _, line := range layerLines {
		g.emitLine(line)
	}
	g.indent--
	g.emitLine("])")

	tc := m.TrainConfig
	if tc == nil {
		return g.String(), nil
	}

	metrics := tc.Metrics
	if len(metrics) == 0 {
		metrics = []string{"accuracy"}
	}
	quoted := make([]string, len(metrics))
	for i, met := range metrics {
		quoted[i] = strconv.Quote(met)
	}

	g.emitLine("")
	g.emitLine("# Compile the model")
	g.emitLine("model.compile(")
	g.indent++
	g.emitLinef("optimizer=%s,", optToken)
	g.emitLinef("loss=%s,", pythonLoss(tc, t))
	g.emitLinef("metrics=[%s],", strings.Join(quoted, ", "))
	g.indent--
	g.emitLine(")")

	xRef, yRef := "x_train", "y_train"
	if tc.Dataset != "" {
		xRef = tc.Dataset + ".train_data"
		yRef = tc.Dataset + ".train_labels"
	}

	g.emitLine("")
	g.emitLine("# Train the model")
	g.emitLine("model.fit(")
	g.indent++
	g.emitLinef("%s,", xRef)
	g.emitLinef("%s,", yRef)
	g.emitLinef("epochs=%d,", tc.Epochs)
	g.emitLinef("batch_size=%d,", tc.BatchSize)
	if len(cbTokens) > 0 {
		g.emitLinef("callbacks=[%s],", strings.Join(cbTokens, ", "))
	}
	if tc.Dataset != "" {
		g.emitLinef("validation_data=(%s.test_data, %s.test_labels),", tc.Dataset, tc.Dataset)
	}
	g.indent--
	g.emitLine(")")

	return g.String(), nil
}

func pythonLayerArgs(l *ir.Layer, t *Table) string {
	var args []string
	switch l.Kind {
	case ir.LayerConv2D:
		args = append(args, strconv.Itoa(l.Filters))
		if l.KernelSize > 0 {
			args = append(args, fmt.Sprintf("kernel_size=%d", l.KernelSize))
		}
	case ir.LayerMaxPool2D:
		if l.KernelSize > 0 {
			args = append(args, fmt.Sprintf("pool_size=%d", l.KernelSize))
		}
	case ir.LayerFlatten, ir.LayerBatchNorm:
		// no arguments
	case ir.LayerDropout:
		args = append(args, formatFloat(l.Rate))
	case ir.LayerEmbedding:
		inputDim := strconv.Itoa(l.Units)
		if dim, ok := l.Extra["input_dim"]; ok {
			inputDim = dim
		}
		args = append(args, fmt.Sprintf("input_dim=%s", inputDim), fmt.Sprintf("output_dim=%d", l.Units))
	default:
		args = append(args, strconv.Itoa(l.Units))
	}
	if act := t.Activation(l.Activation); act != "" {
		args = append(args, fmt.Sprintf("activation=%q", act))
	}
	return strings.Join(args, ", ")
}

// pythonOptimizer returns the optimizer token for a compile step and, when
// the constructor form is needed, the class to import. A learning rate
// forces the constructor form; otherwise Keras accepts the plain string name.
// An unmapped kind passes through as a literal string.
func pythonOptimizer(tc *ir.TrainConfig, t *Table) (string, string) {
	if tc == nil || tc.Optimizer == nil {
		return `"adam"`, ""
	}
	opt := tc.Optimizer
	cls, ok := t.Optimizer(opt.Kind)
	if !ok {
		return strconv.Quote(string(opt.Kind)), ""
	}
	if opt.LearningRate == 0 {
		return strconv.Quote(strings.ToLower(cls)), ""
	}
	args := []string{fmt.Sprintf("learning_rate=%s", formatFloat(opt.LearningRate))}
	if len(opt.Params) > 0 {
		args = append(args, pythonKwargs(opt.Params))
	}
	return fmt.Sprintf("%s(%s)", cls, strings.Join(args, ", ")), cls
}

func pythonLoss(tc *ir.TrainConfig, t *Table) string {
	if tc.Loss == nil {
		return `"mse"`
	}
	if name, ok := t.Loss(tc.Loss.Kind); ok {
		return strconv.Quote(name)
	}
	return strconv.Quote(string(tc.Loss.Kind))
}

func pythonShape(shape []int) string {
	dims := make([]string, len(shape))
	for i, d := range shape {
		if d == ir.DimUnspecified {
			dims[i] = "None"
			continue
		}
		dims[i] = strconv.Itoa(d)
	}
	if len(dims) == 1 {
		return "(" + dims[0] + ",)"
	}
	return "(" + strings.Join(dims, ", ") + ")"
}

func pythonKwargs(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	args := make([]string, len(keys))
	for i, k := range keys {
		args[i] = fmt.Sprintf("%s=%s", k, pythonScalar(params[k]))
	}
	return strings.Join(args, ", ")
}

func pythonScalar(s string) string {
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return s
	}
	return strconv.Quote(s)
}
