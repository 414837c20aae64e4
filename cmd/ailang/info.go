package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ailang-dev/ailang/build"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var infoFlags = struct {
	target *string
	json   *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show recorded build artifacts",
		Args:  cobra.NoArgs,
		RunE:  runInfo,
	}
	infoFlags.target = cmd.Flags().StringP("target", "t", "", "filter by target")
	infoFlags.json = cmd.Flags().Bool("json", false, "output in JSON format")
	rootCmd.AddCommand(cmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	mgr, err := build.Open(viper.GetString("build_dir"), newLogger())
	if err != nil {
		return err
	}
	defer mgr.Close()

	artifacts, err := mgr.Artifacts(*infoFlags.target)
	if err != nil {
		return err
	}

	if *infoFlags.json {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(artifacts)
	}

	if len(artifacts) == 0 {
		fmt.Fprintln(os.Stdout, "no build artifacts found")
		return nil
	}
	fmt.Fprintf(os.Stdout, "build artifacts (%v):\n", len(artifacts))
	for i, a := range artifacts {
		fmt.Fprintf(os.Stdout, "%v. %v\n", i+1, a.Path)
		fmt.Fprintf(os.Stdout, "   source: %v (%v bytes)\n", a.Source, a.SourceSize)
		fmt.Fprintf(os.Stdout, "   target: %v (%v bytes)\n", a.Target, a.OutputSize)
		fmt.Fprintf(os.Stdout, "   built:  %v\n", a.CreatedAt.Local())
	}
	return nil
}
