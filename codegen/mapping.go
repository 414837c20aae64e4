package codegen

import (
	"github.com/ailang-dev/ailang/ir"
)

// Table maps symbolic IR names to one target's vocabulary.
//
// Lookup policies, uniform across targets:
//   - an unmapped activation degrades to "no activation applied"
//   - an unmapped layer or callback kind is a hard emission error (both name
//     target constructors; the emitter cannot guess one)
//   - an unmapped optimizer or loss kind passes the symbolic name through as
//     a literal string token
type Table struct {
	Layers      map[ir.LayerKind]string
	Activations map[ir.ActivationKind]string
	Optimizers  map[ir.OptimizerKind]string
	Losses      map[ir.LossKind]string
	Callbacks   map[ir.CallbackKind]string
}

func (t *Table) Layer(k ir.LayerKind) (string, bool) {
	name, ok := t.Layers[k]
	return name, ok
}

// Activation returns the target token for k, or the empty string when k has
// no mapping (linear passthrough).
func (t *Table) Activation(k ir.ActivationKind) string {
	return t.Activations[k]
}

func (t *Table) Optimizer(k ir.OptimizerKind) (string, bool) {
	name, ok := t.Optimizers[k]
	return name, ok
}

func (t *Table) Loss(k ir.LossKind) (string, bool) {
	name, ok := t.Losses[k]
	return name, ok
}

func (t *Table) Callback(k ir.CallbackKind) (string, bool) {
	name, ok := t.Callbacks[k]
	return name, ok
}

func pythonTable() *Table {
	return &Table{
		Layers: map[ir.LayerKind]string{
			ir.LayerDense:     "Dense",
			ir.LayerConv2D:    "Conv2D",
			ir.LayerMaxPool2D: "MaxPooling2D",
			ir.LayerFlatten:   "Flatten",
			ir.LayerDropout:   "Dropout",
			ir.LayerBatchNorm: "BatchNormalization",
			ir.LayerLSTM:      "LSTM",
			ir.LayerGRU:       "GRU",
			ir.LayerEmbedding: "Embedding",
			ir.LayerSimpleRNN: "SimpleRNN",
		},
		Activations: map[ir.ActivationKind]string{
			ir.ActivationReLU:        "relu",
			ir.ActivationSigmoid:     "sigmoid",
			ir.ActivationTanh:        "tanh",
			ir.ActivationSoftmax:     "softmax",
			ir.ActivationLinear:      "linear",
			ir.ActivationSoftplus:    "softplus",
			ir.ActivationSoftsign:    "softsign",
			ir.ActivationSELU:        "selu",
			ir.ActivationELU:         "elu",
			ir.ActivationExponential: "exponential",
		},
		Optimizers: map[ir.OptimizerKind]string{
			ir.OptimizerAdam:    "Adam",
			ir.OptimizerSGD:     "SGD",
			ir.OptimizerRMSprop: "RMSprop",
		},
		Losses: map[ir.LossKind]string{
			ir.LossCategoricalCrossentropy:       "categorical_crossentropy",
			ir.LossSparseCategoricalCrossentropy: "sparse_categorical_crossentropy",
			ir.LossBinaryCrossentropy:            "binary_crossentropy",
			ir.LossMSE:                           "mse",
			ir.LossMAE:                           "mae",
		},
		Callbacks: map[ir.CallbackKind]string{
			ir.CallbackEarlyStopping:   "EarlyStopping",
			ir.CallbackModelCheckpoint: "ModelCheckpoint",
			ir.CallbackReduceLR:        "ReduceLROnPlateau",
			ir.CallbackCSVLogger:       "CSVLogger",
			ir.CallbackTensorBoard:     "TensorBoard",
		},
	}
}

// cppTable covers only what the imperative-builder preamble defines. The
// target emits no compile or train step, so optimizer, loss, and callback
// vocabularies stay empty.
func cppTable() *Table {
	return &Table{
		Layers: map[ir.LayerKind]string{
			ir.LayerDense: "Dense",
		},
		Activations: map[ir.ActivationKind]string{
			ir.ActivationReLU:    "relu",
			ir.ActivationSigmoid: "sigmoid",
			ir.ActivationTanh:    "tanh",
			ir.ActivationSoftmax: "softmax",
		},
	}
}

func jsTable() *Table {
	return &Table{
		Layers: map[ir.LayerKind]string{
			ir.LayerDense:     "dense",
			ir.LayerConv2D:    "conv2d",
			ir.LayerMaxPool2D: "maxPooling2d",
			ir.LayerFlatten:   "flatten",
			ir.LayerDropout:   "dropout",
			ir.LayerBatchNorm: "batchNormalization",
			ir.LayerLSTM:      "lstm",
			ir.LayerGRU:       "gru",
			ir.LayerEmbedding: "embedding",
			ir.LayerSimpleRNN: "simpleRNN",
		},
		Activations: map[ir.ActivationKind]string{
			ir.ActivationReLU:    "relu",
			ir.ActivationSigmoid: "sigmoid",
			ir.ActivationTanh:    "tanh",
			ir.ActivationSoftmax: "softmax",
		},
	}
}
