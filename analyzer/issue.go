// Package analyzer lints a built Model for semantic and performance
// problems. It never fails a compilation by itself; callers decide what to
// do with error-typed issues.
package analyzer

type IssueType string

const (
	IssueError       = IssueType("error")
	IssueWarning     = IssueType("warning")
	IssuePerformance = IssueType("performance")
)

type Issue struct {
	Type       IssueType `json:"type"`
	Code       string    `json:"code"`
	Message    string    `json:"message"`
	File       string    `json:"file"`
	Line       int       `json:"line"`
	Col        int       `json:"col"`
	Suggestion string    `json:"suggestion,omitempty"`
}

// HasErrors reports whether any issue is error-typed.
func HasErrors(issues []Issue) bool {
	for _, issue := range issues {
		if issue.Type == IssueError {
			return true
		}
	}
	return false
}
