package analyzer

import (
	"fmt"
	"sort"

	"github.com/ailang-dev/ailang/ir"
)

// performanceAnalyzer flags architectures that parse and build fine but are
// likely to train poorly or waste resources.
type performanceAnalyzer struct {
	file   string
	issues []Issue
}

func (a *performanceAnalyzer) analyze(m *ir.Model) []Issue {
	denseCount := 0
	reluCount := 0
	hasBatchNorm := false
	hasDropout := false
	totalParams := 0
	prevWidth := m.Input.Size
	layerCounts := map[ir.LayerKind]int{}

	for i, l := range m.Layers {
		layerCounts[l.Kind]++
		switch l.Kind {
		case ir.LayerDense:
			denseCount++
			if l.Units > 4096 {
				a.report(Issue{
					Code:       "P1001",
					Message:    fmt.Sprintf("Large dense layer with %v units may be inefficient", l.Units),
					Line:       l.Pos.Row,
					Col:        l.Pos.Col,
					Suggestion: "Consider fewer units or a different architecture",
				})
			}
			// weights + biases, chaining the previous layer's width
			totalParams += prevWidth*l.Units + l.Units
		case ir.LayerConv2D:
			if l.KernelSize > 5 {
				a.report(Issue{
					Code:       "P1002",
					Message:    fmt.Sprintf("Large kernel size %v may be inefficient", l.KernelSize),
					Line:       l.Pos.Row,
					Col:        l.Pos.Col,
					Suggestion: "Consider smaller kernels (3 or 5) with more layers",
				})
			}
		case ir.LayerBatchNorm:
			hasBatchNorm = true
			if i > 0 && m.Layers[i-1].Activation != ir.ActivationNone {
				a.report(Issue{
					Code:       "P1003",
					Message:    "BatchNorm should typically come before activation functions",
					Line:       l.Pos.Row,
					Col:        l.Pos.Col,
					Suggestion: "Place batchnorm before the activated layer",
				})
			}
		case ir.LayerDropout:
			hasDropout = true
			if l.Rate > 0.5 {
				a.report(Issue{
					Code:       "P1004",
					Message:    fmt.Sprintf("High dropout rate (%v) may lead to underfitting", l.Rate),
					Line:       l.Pos.Row,
					Col:        l.Pos.Col,
					Suggestion: "Consider a rate between 0.2 and 0.5",
				})
			}
		}
		if l.Units > 0 {
			prevWidth = l.Units
		}
		if l.Activation == ir.ActivationReLU {
			reluCount++
		}
	}

	if !hasBatchNorm && denseCount > 1 {
		a.report(Issue{
			Code:       "P1100",
			Message:    "Consider adding batch normalization for better training stability",
			Suggestion: "Insert a batchnorm layer between dense layers",
		})
	}
	if !hasDropout && totalParams > 1_000_000 {
		a.report(Issue{
			Code:       "P1101",
			Message:    "Consider adding dropout to prevent overfitting in large models",
			Suggestion: "Insert a dropout layer after wide dense layers",
		})
	}
	if reluCount > 5 {
		a.report(Issue{
			Code:       "P1102",
			Message:    fmt.Sprintf("Multiple (%v) relu activations may lead to dying ReLU problem", reluCount),
			Suggestion: "Consider elu or selu to avoid dead neurons",
		})
	}
	if totalParams > 100_000_000 {
		a.report(Issue{
			Code:       "P1103",
			Message:    fmt.Sprintf("Large model with %v estimated parameters may be difficult to train", totalParams),
			Suggestion: "Consider model pruning or a smaller architecture",
		})
	}
	a.checkLayerBalance(layerCounts)

	return a.issues
}

// checkLayerBalance flags one layer kind dominating an otherwise varied
// architecture. Kinds are visited in sorted order so the reported kind is
// deterministic.
func (a *performanceAnalyzer) checkLayerBalance(layerCounts map[ir.LayerKind]int) {
	if len(layerCounts) <= 3 {
		return
	}
	total := 0
	kinds := make([]ir.LayerKind, 0, len(layerCounts))
	for kind, count := range layerCounts {
		total += count
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool {
		return kinds[i] < kinds[j]
	})
	mean := float64(total) / float64(len(layerCounts))
	for _, kind := range kinds {
		count := layerCounts[kind]
		if count > 5 && float64(count) > 2*mean {
			a.report(Issue{
				Code:       "P1104",
				Message:    fmt.Sprintf("Potential imbalance: %v %v layers detected", count, kind),
				Suggestion: "Consider a more balanced architecture with different layer types",
			})
			return
		}
	}
}

func (a *performanceAnalyzer) report(issue Issue) {
	issue.Type = IssuePerformance
	issue.File = a.file
	a.issues = append(a.issues, issue)
}
