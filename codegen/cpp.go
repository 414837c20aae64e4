package codegen

import (
	"fmt"

	"github.com/ailang-dev/ailang/ir"
)

const cppPreamble = `#include <Eigen/Dense>
#include <vector>
#include <string>
#include <cmath>
#include <memory>

using namespace Eigen;

// Activation functions
float relu(float x) {
    return std::max(0.0f, x);
}

float sigmoid(float x) {
    return 1.0f / (1.0f + std::exp(-x));
}

float tanh_activation(float x) {
    return std::tanh(x);
}

VectorXf softmax(const VectorXf& x) {
    VectorXf exp_x = (x.array() - x.maxCoeff()).exp();
    return exp_x / exp_x.sum();
}

// Base class for all layers
class Layer {
public:
    virtual ~Layer() = default;
    virtual VectorXf forward(const VectorXf& input) = 0;
    virtual std::string getName() const = 0;
};

// Dense (fully connected) layer
class Dense : public Layer {
public:
    Dense(int input_size, int output_size, const std::string& activation = "")
        : weights_(MatrixXf::Random(output_size, input_size) * 0.1f),
          bias_(VectorXf::Zero(output_size)),
          activation_(activation) {}

    VectorXf forward(const VectorXf& input) override {
        VectorXf output = weights_ * input + bias_;

        if (activation_ == "relu") {
            return output.unaryExpr(&relu);
        } else if (activation_ == "sigmoid") {
            return output.unaryExpr(&sigmoid);
        } else if (activation_ == "tanh") {
            return output.unaryExpr(&tanh_activation);
        } else if (activation_ == "softmax") {
            return softmax(output);
        }

        return output;
    }

    std::string getName() const override {
        return "Dense";
    }

private:
    MatrixXf weights_;
    VectorXf bias_;
    std::string activation_;
};

// Neural Network Model
class Model {
public:
    void addLayer(std::unique_ptr<Layer> layer) {
        layers_.push_back(std::move(layer));
    }

    VectorXf predict(const VectorXf& input) {
        VectorXf output = input;
        for (const auto& layer : layers_) {
            output = layer->forward(output);
        }
        return output;
    }

private:
    std::vector<std::unique_ptr<Layer>> layers_;
};
`

const cppMainStub = `
int main() {
    // Initialize model
    Model model;
    setupModel(model);

    // Example usage:
    // VectorXf input = VectorXf::Random(input_size);
    // VectorXf output = model.predict(input);

    return 0;
}
`

// EmitCPP renders the imperative-builder target: a fixed preamble of
// activation functions and layer classes, then a setup function constructing
// one layer instance per IR layer. The input width of layer i is always the
// previous layer's unit count, with the model's input size seeding layer 0;
// the rule is purely positional over the layer sequence.
func EmitCPP(m *ir.Model, t *Table) (string, error) {
	g := newGenerator("    ")
	g.emitRaw(cppPreamble)
	g.emitLine("")
	g.emitLinef("// Model: %s", m.Name)
	g.emitLine("void setupModel(Model& model) {")
	g.indent++
	inputSize := m.Input.Size
	if inputSize == 0 && len(m.Input.Shape) > 0 {
		inputSize = flattenShape(m.Input.Shape)
	}
	for i, l := range m.Layers {
		cls, ok := t.Layer(l.Kind)
		if !ok {
			return "", &UnmappedConstructError{
				Target:    TargetCPP,
				Construct: "layer kind",
				Name:      string(l.Kind),
			}
		}
		inWidth := inputSize
		if i > 0 {
			inWidth = m.Layers[i-1].Units
		}
		actArg := ""
		if act := t.Activation(l.Activation); act != "" {
			actArg = fmt.Sprintf(", %q", act)
		}
		g.emitLinef("model.addLayer(std::make_unique<%s>(/* input_size */ %d, /* output_size */ %d%s));",
			cls, inWidth, l.Units, actArg)
	}
	g.indent--
	g.emitLine("}")
	g.emitRaw(cppMainStub)
	return g.String(), nil
}

// flattenShape collapses an explicit shape to a feature count, skipping
// unspecified axes.
func flattenShape(shape []int) int {
	n := 1
	for _, d := range shape {
		if d == ir.DimUnspecified {
			continue
		}
		n *= d
	}
	return n
}
