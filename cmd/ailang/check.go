package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ailang-dev/ailang/analyzer"
	verr "github.com/ailang-dev/ailang/error"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var checkFlags = struct {
	json *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "check <model file path>...",
		Short:   "Lint AILang files for semantic and performance problems",
		Example: `  ailang check model.ail`,
		Args:    cobra.MinimumNArgs(1),
		RunE:    runCheck,
	}
	checkFlags.json = cmd.Flags().Bool("json", false, "output issues in JSON format")
	rootCmd.AddCommand(cmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	var all []analyzer.Issue
	for _, path := range args {
		src, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("cannot read the model file %v: %w", path, err)
		}
		model, err := parseAndBuild(src)
		if err != nil {
			// A file that doesn't parse or build still gets reported as
			// issues, so a batch run covers every file.
			all = append(all, specErrIssues(err, path)...)
			continue
		}
		all = append(all, analyzer.Analyze(model, path)...)
	}

	if *checkFlags.json {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(all); err != nil {
			return err
		}
	} else {
		printIssues(os.Stdout, all)
	}

	if analyzer.HasErrors(all) {
		return errors.New("validation failed")
	}
	return nil
}

// specErrIssues converts parse and build errors into issue records.
func specErrIssues(err error, path string) []analyzer.Issue {
	var specErrs verr.SpecErrors
	var specErr *verr.SpecError
	switch {
	case errors.As(err, &specErrs):
	case errors.As(err, &specErr):
		specErrs = verr.SpecErrors{specErr}
	default:
		return []analyzer.Issue{{
			Type:    analyzer.IssueError,
			Code:    "E1000",
			Message: err.Error(),
			File:    path,
		}}
	}
	issues := make([]analyzer.Issue, 0, len(specErrs))
	for _, e := range specErrs {
		issues = append(issues, analyzer.Issue{
			Type:    analyzer.IssueError,
			Code:    "E1001",
			Message: e.Cause.Error(),
			File:    path,
			Line:    e.Row,
			Col:     e.Col,
		})
	}
	return issues
}

func printIssues(w io.Writer, issues []analyzer.Issue) {
	for _, issue := range issues {
		var label string
		switch issue.Type {
		case analyzer.IssueError:
			label = pterm.Red("ERROR")
		case analyzer.IssueWarning:
			label = pterm.Yellow("WARNING")
		default:
			label = pterm.Cyan("PERF")
		}
		fmt.Fprintf(w, "%v:%v:%v: %v [%v] %v\n", issue.File, issue.Line, issue.Col, label, issue.Code, issue.Message)
		if issue.Suggestion != "" {
			fmt.Fprintf(w, "    %v %v\n", pterm.Gray("suggestion:"), issue.Suggestion)
		}
	}
}
