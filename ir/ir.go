// Package ir defines the intermediate representation shared by all code
// generation targets. A Model is constructed once by the Builder from a parse
// tree and is never mutated afterward.
package ir

import (
	"github.com/ailang-dev/ailang/spec"
)

type LayerKind string

const (
	LayerDense     = LayerKind("dense")
	LayerConv2D    = LayerKind("conv2d")
	LayerMaxPool2D = LayerKind("maxpool2d")
	LayerFlatten   = LayerKind("flatten")
	LayerDropout   = LayerKind("dropout")
	LayerBatchNorm = LayerKind("batchnorm")
	LayerLSTM      = LayerKind("lstm")
	LayerGRU       = LayerKind("gru")
	LayerEmbedding = LayerKind("embedding")
	LayerSimpleRNN = LayerKind("simplernn")
)

type ActivationKind string

const (
	ActivationNone        = ActivationKind("")
	ActivationReLU        = ActivationKind("relu")
	ActivationSigmoid     = ActivationKind("sigmoid")
	ActivationTanh        = ActivationKind("tanh")
	ActivationSoftmax     = ActivationKind("softmax")
	ActivationLinear      = ActivationKind("linear")
	ActivationSoftplus    = ActivationKind("softplus")
	ActivationSoftsign    = ActivationKind("softsign")
	ActivationSELU        = ActivationKind("selu")
	ActivationELU         = ActivationKind("elu")
	ActivationExponential = ActivationKind("exponential")
)

type OptimizerKind string

const (
	OptimizerAdam    = OptimizerKind("adam")
	OptimizerSGD     = OptimizerKind("sgd")
	OptimizerRMSprop = OptimizerKind("rmsprop")
)

type LossKind string

const (
	LossCategoricalCrossentropy       = LossKind("categorical_crossentropy")
	LossSparseCategoricalCrossentropy = LossKind("sparse_categorical_crossentropy")
	LossBinaryCrossentropy            = LossKind("binary_crossentropy")
	LossMSE                           = LossKind("mse")
	LossMAE                           = LossKind("mae")
)

type CallbackKind string

const (
	CallbackEarlyStopping   = CallbackKind("early_stopping")
	CallbackModelCheckpoint = CallbackKind("model_checkpoint")
	CallbackReduceLR        = CallbackKind("reduce_lr")
	CallbackCSVLogger       = CallbackKind("csv_logger")
	CallbackTensorBoard     = CallbackKind("tensorboard")
)

// DimUnspecified marks a shape axis the source left open (the "_"
// placeholder, typically the batch axis).
const DimUnspecified = 0

// Input describes a model's feature dimensionality. Either Size is set (the
// bare form) or Shape is set (the configuration form); never both.
type Input struct {
	Size  int   `json:"size,omitempty"`
	Shape []int `json:"shape,omitempty"`

	Pos spec.Position `json:"-"`
}

type Layer struct {
	Kind       LayerKind      `json:"type"`
	Units      int            `json:"units,omitempty"`
	Activation ActivationKind `json:"activation,omitempty"`
	Filters    int            `json:"filters,omitempty"`
	KernelSize int            `json:"kernel_size,omitempty"`
	Rate       float64        `json:"rate,omitempty"`

	// Extra holds keyed-form attributes the builder has no typed field for.
	// The builder performs no validation, so unknown keys survive here for
	// the analyzer to inspect.
	Extra map[string]string `json:"extra,omitempty"`

	Pos spec.Position `json:"-"`
}

type Optimizer struct {
	Kind         OptimizerKind     `json:"kind"`
	LearningRate float64           `json:"learning_rate,omitempty"`
	Params       map[string]string `json:"params,omitempty"`

	Pos spec.Position `json:"-"`
}

type Loss struct {
	Kind LossKind `json:"kind"`

	Pos spec.Position `json:"-"`
}

type Callback struct {
	Kind   CallbackKind      `json:"kind"`
	Params map[string]string `json:"params,omitempty"`

	Pos spec.Position `json:"-"`
}

type TrainConfig struct {
	Epochs    int         `json:"epochs"`
	BatchSize int         `json:"batch_size"`
	Optimizer *Optimizer  `json:"optimizer,omitempty"`
	Loss      *Loss       `json:"loss,omitempty"`
	Metrics   []string    `json:"metrics,omitempty"`
	Callbacks []*Callback `json:"callbacks,omitempty"`
	Dataset   string      `json:"dataset,omitempty"`

	// Extra holds train attributes the builder has no typed field for.
	Extra map[string]string `json:"extra,omitempty"`

	Pos spec.Position `json:"-"`
}

type Model struct {
	Name        string       `json:"name"`
	Input       *Input       `json:"input"`
	Layers      []*Layer     `json:"layers"`
	TrainConfig *TrainConfig `json:"train_config,omitempty"`

	Pos spec.Position `json:"-"`
}
