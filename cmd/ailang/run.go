package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/ailang-dev/ailang/codegen"
	"github.com/spf13/cobra"
)

var runFlags = struct {
	target *string
	clean  *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "run <model file path> [-- args...]",
		Short:   "Compile an AILang file and execute the generated program",
		Example: `  ailang run model.ail -t javascript`,
		Args:    cobra.MinimumNArgs(1),
		RunE:    runRun,
	}
	runFlags.target = cmd.Flags().StringP("target", "t", "", "target language (python, javascript; default from config)")
	runFlags.clean = cmd.Flags().BoolP("clean", "c", false, "clean previous build artifacts for this target first")
	rootCmd.AddCommand(cmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	target := resolveTarget(*runFlags.target)
	// The cpp target's runner is a compiler, not an interpreter; running it
	// on the artifact needs a separate link step this command doesn't do.
	if target == codegen.TargetCPP {
		return fmt.Errorf("the cpp target cannot be run directly; compile it and build the output with g++")
	}

	entry, ok := codegen.DefaultRegistry().Entry(target)
	if !ok {
		return fmt.Errorf("unsupported target: %v", target)
	}

	outPath, err := compileFile(args[0], target, "", *runFlags.clean)
	if err != nil {
		return err
	}

	runArgs := append([]string{outPath}, args[1:]...)
	proc := exec.Command(entry.Runner, runArgs...)
	proc.Stdin = os.Stdin
	proc.Stdout = os.Stdout
	proc.Stderr = os.Stderr
	if err := proc.Run(); err != nil {
		return fmt.Errorf("cannot run %v: %w", outPath, err)
	}
	return nil
}
