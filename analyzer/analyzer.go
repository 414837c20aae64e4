package analyzer

import (
	"github.com/ailang-dev/ailang/ir"
)

// Analyze runs the semantic and performance passes over a built model and
// returns their issues in pass order. file is attached to every issue for
// reporting and may be empty.
func Analyze(m *ir.Model, file string) []Issue {
	sem := &semanticAnalyzer{file: file}
	perf := &performanceAnalyzer{file: file}
	issues := sem.analyze(m)
	return append(issues, perf.analyze(m)...)
}
