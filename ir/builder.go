package ir

import (
	"strconv"
	"strings"

	verr "github.com/ailang-dev/ailang/error"
	"github.com/ailang-dev/ailang/spec"
)

// Builder turns a parse tree into a Model. It performs type coercion only;
// semantic checks (naming conventions, required parameters, value ranges)
// belong to the analyzer.
type Builder struct {
	AST *spec.RootNode

	errs verr.SpecErrors
}

func (b *Builder) Build() (*Model, error) {
	model := &Model{
		Name:   b.AST.Model.Name,
		Input:  b.buildInput(b.AST.Model.Input),
		Layers: make([]*Layer, 0, len(b.AST.Model.Layers)),
		Pos:    b.AST.Model.Pos,
	}
	for _, layer := range b.AST.Model.Layers {
		model.Layers = append(model.Layers, b.buildLayer(layer))
	}
	if b.AST.Train != nil {
		model.TrainConfig = b.buildTrainConfig(b.AST.Train)
	}
	if len(b.errs) > 0 {
		return nil, b.errs
	}
	return model, nil
}

func (b *Builder) buildInput(node *spec.InputNode) *Input {
	input := &Input{
		Pos: node.Pos,
	}
	if node.Shape != nil {
		input.Shape = make([]int, 0, len(node.Shape))
		for _, dim := range node.Shape {
			if dim == "_" {
				input.Shape = append(input.Shape, DimUnspecified)
				continue
			}
			input.Shape = append(input.Shape, b.intValue(dim, node.Pos))
		}
		return input
	}
	input.Size = b.intValue(node.Size, node.Pos)
	return input
}

func (b *Builder) buildLayer(node *spec.LayerNode) *Layer {
	layer := &Layer{
		Kind: LayerDense,
		Pos:  node.Pos,
	}
	if node.Attrs == nil {
		layer.Units = b.intValue(node.Units, node.Pos)
		layer.Activation = ActivationKind(node.Activation)
		return layer
	}
	for _, attr := range node.Attrs {
		switch attr.Key {
		case "type":
			layer.Kind = LayerKind(attr.Value.Text)
		case "units":
			layer.Units = b.intValue(attr.Value.Text, attr.Value.Pos)
		case "filters":
			layer.Filters = b.intValue(attr.Value.Text, attr.Value.Pos)
		case "kernel_size":
			layer.KernelSize = b.intValue(attr.Value.Text, attr.Value.Pos)
		case "rate":
			layer.Rate = b.floatValue(attr.Value.Text, attr.Value.Pos)
		case "activation":
			layer.Activation = ActivationKind(attr.Value.Text)
		default:
			if layer.Extra == nil {
				layer.Extra = map[string]string{}
			}
			layer.Extra[attr.Key] = rawValueText(attr.Value)
		}
	}
	return layer
}

func (b *Builder) buildTrainConfig(node *spec.TrainNode) *TrainConfig {
	tc := &TrainConfig{
		Pos: node.Pos,
	}
	for _, attr := range node.Attrs {
		switch attr.Key {
		case "epochs":
			tc.Epochs = b.intValue(attr.Value.Text, attr.Value.Pos)
		case "batch_size":
			tc.BatchSize = b.intValue(attr.Value.Text, attr.Value.Pos)
		case "optimizer":
			tc.Optimizer = b.buildOptimizer(attr.Value)
		case "loss":
			tc.Loss = &Loss{
				Kind: LossKind(attr.Value.Text),
				Pos:  attr.Value.Pos,
			}
		case "metrics":
			tc.Metrics = attr.Value.Elems
		case "callback":
			tc.Callbacks = append(tc.Callbacks, b.buildCallback(attr.Value))
		case "dataset":
			tc.Dataset = attr.Value.Text
		default:
			if tc.Extra == nil {
				tc.Extra = map[string]string{}
			}
			tc.Extra[attr.Key] = rawValueText(attr.Value)
		}
	}
	return tc
}

func (b *Builder) buildOptimizer(v *spec.ValueNode) *Optimizer {
	if v.Kind != spec.ValueKindCall {
		return &Optimizer{
			Kind: OptimizerKind(v.Text),
			Pos:  v.Pos,
		}
	}
	opt := &Optimizer{
		Kind: OptimizerKind(v.Call.Name),
		Pos:  v.Pos,
	}
	for _, arg := range v.Call.Args {
		if arg.Key == "learning_rate" {
			opt.LearningRate = b.floatValue(arg.Value, arg.Pos)
			continue
		}
		if opt.Params == nil {
			opt.Params = map[string]string{}
		}
		opt.Params[arg.Key] = arg.Value
	}
	return opt
}

func (b *Builder) buildCallback(v *spec.ValueNode) *Callback {
	if v.Kind != spec.ValueKindCall {
		return &Callback{
			Kind: CallbackKind(v.Text),
			Pos:  v.Pos,
		}
	}
	cb := &Callback{
		Kind: CallbackKind(v.Call.Name),
		Pos:  v.Pos,
	}
	for _, arg := range v.Call.Args {
		if cb.Params == nil {
			cb.Params = map[string]string{}
		}
		cb.Params[arg.Key] = arg.Value
	}
	return cb
}

func (b *Builder) intValue(text string, pos spec.Position) int {
	n, err := strconv.Atoi(text)
	if err != nil {
		b.errs = append(b.errs, &verr.SpecError{
			Cause:  buildErrInvalidInt,
			Detail: text,
			Row:    pos.Row,
			Col:    pos.Col,
		})
		return 0
	}
	return n
}

func (b *Builder) floatValue(text string, pos spec.Position) float64 {
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		b.errs = append(b.errs, &verr.SpecError{
			Cause:  buildErrInvalidFloat,
			Detail: text,
			Row:    pos.Row,
			Col:    pos.Col,
		})
		return 0
	}
	return f
}

func rawValueText(v *spec.ValueNode) string {
	switch v.Kind {
	case spec.ValueKindList:
		return strings.Join(v.Elems, ",")
	case spec.ValueKindCall:
		return v.Call.Name
	default:
		return v.Text
	}
}
