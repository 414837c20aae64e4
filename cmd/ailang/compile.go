package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/ailang-dev/ailang/analyzer"
	"github.com/ailang-dev/ailang/build"
	"github.com/ailang-dev/ailang/codegen"
	verr "github.com/ailang-dev/ailang/error"
	"github.com/ailang-dev/ailang/ir"
	"github.com/ailang-dev/ailang/spec"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var compileFlags = struct {
	target *string
	output *string
	clean  *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "compile <model file path>",
		Short:   "Compile an AILang file into target source code",
		Example: `  ailang compile model.ail -t python`,
		Args:    cobra.ExactArgs(1),
		RunE:    runCompile,
	}
	compileFlags.target = cmd.Flags().StringP("target", "t", "", "target language (python, cpp, javascript; default from config)")
	compileFlags.output = cmd.Flags().StringP("output", "o", "", "output file path (default build/obj/<target>/<input>.<ext>)")
	compileFlags.clean = cmd.Flags().BoolP("clean", "c", false, "clean previous build artifacts for this target first")
	rootCmd.AddCommand(cmd)
}

func runCompile(cmd *cobra.Command, args []string) error {
	path := args[0]
	target := resolveTarget(*compileFlags.target)
	outPath, err := compileFile(path, target, *compileFlags.output, *compileFlags.clean)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "compiled %v to %v\n", path, target)
	fmt.Fprintf(os.Stdout, "  output: %v\n", outPath)
	return nil
}

// resolveTarget falls back to the configured default when no -t flag was
// given. Config defaults are registered in the root command's init, which may
// run after flag registration, so the lookup happens at run time.
func resolveTarget(flag string) codegen.Target {
	if flag != "" {
		return codegen.Target(flag)
	}
	return codegen.Target(viper.GetString("target"))
}

// compileFile runs the whole pipeline for one source file and one target and
// returns the path the generated code was written to.
func compileFile(path string, target codegen.Target, output string, clean bool) (string, error) {
	if !strings.HasSuffix(path, ".ail") {
		return "", fmt.Errorf("the input file must have a .ail extension: %v", path)
	}

	// An unknown target is a configuration error; report it before any
	// parsing work.
	registry := codegen.DefaultRegistry()
	entry, ok := registry.Entry(target)
	if !ok {
		var available []codegen.Target
		for _, e := range registry.Targets() {
			available = append(available, e.Target)
		}
		return "", &codegen.ConfigurationError{
			Target:    string(target),
			Available: available,
		}
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("cannot read the model file %v: %w", path, err)
	}

	model, err := parseAndBuild(src)
	if err != nil {
		return "", annotateSpecErr(err, path)
	}

	issues := analyzer.Analyze(model, path)
	printIssues(os.Stderr, issues)
	if analyzer.HasErrors(issues) {
		return "", fmt.Errorf("%v has semantic errors", path)
	}

	result, err := registry.Emit(model, src, target)
	if err != nil {
		return "", err
	}

	if output != "" {
		if err := os.WriteFile(output, []byte(result.Text), 0644); err != nil {
			return "", err
		}
		return output, nil
	}

	mgr, err := build.Open(viper.GetString("build_dir"), newLogger())
	if err != nil {
		return "", err
	}
	defer mgr.Close()

	if clean {
		if err := mgr.Clean(string(target)); err != nil {
			return "", err
		}
	}

	artifact, err := mgr.WriteArtifact(path, string(target), entry.Ext, result.Text, result.SourceSize)
	if err != nil {
		return "", err
	}
	return artifact.Path, nil
}

func parseAndBuild(src []byte) (*ir.Model, error) {
	ast, err := spec.Parse(bytes.NewReader(src))
	if err != nil {
		return nil, err
	}
	b := &ir.Builder{
		AST: ast,
	}
	return b.Build()
}

// annotateSpecErr attaches the source file path to positional errors so they
// render with the offending line.
func annotateSpecErr(err error, path string) error {
	if specErr, ok := err.(*verr.SpecError); ok {
		specErr.FilePath = path
		specErr.SourceName = path
		return specErr
	}
	if specErrs, ok := err.(verr.SpecErrors); ok {
		for _, specErr := range specErrs {
			specErr.FilePath = path
			specErr.SourceName = path
		}
		return specErrs
	}
	return err
}
