package analyzer

import (
	"fmt"
	"regexp"

	"github.com/ailang-dev/ailang/ir"
)

var rePascalCase = regexp.MustCompile(`^[A-Z][a-zA-Z0-9]*$`)

// semanticAnalyzer checks structural rules the IR builder deliberately
// leaves alone: naming conventions, required parameters, value ranges, and
// deprecated constructs.
type semanticAnalyzer struct {
	file   string
	issues []Issue
}

func (a *semanticAnalyzer) analyze(m *ir.Model) []Issue {
	a.checkModelName(m)
	for _, l := range m.Layers {
		a.checkLayer(l)
	}
	if m.TrainConfig != nil {
		a.checkTrainConfig(m.TrainConfig)
	}
	return a.issues
}

func (a *semanticAnalyzer) checkModelName(m *ir.Model) {
	if rePascalCase.MatchString(m.Name) {
		return
	}
	a.report(Issue{
		Type:       IssueError,
		Code:       "E2001",
		Message:    fmt.Sprintf("Model name %q should be in PascalCase", m.Name),
		Line:       m.Pos.Row,
		Col:        m.Pos.Col,
		Suggestion: "Rename the model to " + pascalCase(m.Name),
	})
}

func (a *semanticAnalyzer) checkLayer(l *ir.Layer) {
	if l.Kind == ir.LayerConv2D && l.Filters == 0 {
		a.report(Issue{
			Type:    IssueError,
			Code:    "E2002",
			Message: "Missing required parameter 'filters' for conv2d layer",
			Line:    l.Pos.Row,
			Col:     l.Pos.Col,
		})
	}
	if l.Kind == ir.LayerDropout && (l.Rate <= 0 || l.Rate >= 1) {
		a.report(Issue{
			Type:       IssueError,
			Code:       "E2004",
			Message:    fmt.Sprintf("Dropout rate %v is outside (0, 1)", l.Rate),
			Line:       l.Pos.Row,
			Col:        l.Pos.Col,
			Suggestion: "Use a rate between 0.2 and 0.5",
		})
	}
	if l.Kind == ir.LayerSimpleRNN {
		a.report(Issue{
			Type:       IssueWarning,
			Code:       "W2002",
			Message:    "Deprecated layer type: simplernn",
			Line:       l.Pos.Row,
			Col:        l.Pos.Col,
			Suggestion: "Consider using lstm or gru instead",
		})
	}
}

func (a *semanticAnalyzer) checkTrainConfig(tc *ir.TrainConfig) {
	if tc.Epochs <= 0 {
		a.report(Issue{
			Type:    IssueError,
			Code:    "E2003",
			Message: fmt.Sprintf("epochs must be a positive integer, got %v", tc.Epochs),
			Line:    tc.Pos.Row,
			Col:     tc.Pos.Col,
		})
	}
	if tc.BatchSize <= 0 {
		a.report(Issue{
			Type:    IssueError,
			Code:    "E2003",
			Message: fmt.Sprintf("batch_size must be a positive integer, got %v", tc.BatchSize),
			Line:    tc.Pos.Row,
			Col:     tc.Pos.Col,
		})
	}
	if tc.Optimizer == nil {
		return
	}
	if tc.Optimizer.LearningRate > 0.01 {
		a.report(Issue{
			Type:       IssueWarning,
			Code:       "W2003",
			Message:    fmt.Sprintf("High learning rate: %v", tc.Optimizer.LearningRate),
			Line:       tc.Optimizer.Pos.Row,
			Col:        tc.Optimizer.Pos.Col,
			Suggestion: "Consider a lower learning rate with scheduling",
		})
	}
	if tc.Optimizer.Kind == ir.OptimizerSGD {
		a.report(Issue{
			Type:       IssueWarning,
			Code:       "W2004",
			Message:    "Suboptimal optimizer: sgd",
			Line:       tc.Optimizer.Pos.Row,
			Col:        tc.Optimizer.Pos.Col,
			Suggestion: "Consider adam or rmsprop",
		})
	}
}

func (a *semanticAnalyzer) report(issue Issue) {
	issue.File = a.file
	a.issues = append(a.issues, issue)
}

func pascalCase(name string) string {
	if name == "" {
		return name
	}
	out := []rune(name)
	if out[0] >= 'a' && out[0] <= 'z' {
		out[0] = out[0] - 'a' + 'A'
	}
	return string(out)
}
