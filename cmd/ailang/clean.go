package main

import (
	"fmt"
	"os"

	"github.com/ailang-dev/ailang/build"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cleanFlags = struct {
	target *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove compiled files and build artifacts",
		Args:  cobra.NoArgs,
		RunE:  runClean,
	}
	cleanFlags.target = cmd.Flags().StringP("target", "t", "", "clean just one target's artifacts (default all)")
	rootCmd.AddCommand(cmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	mgr, err := build.Open(viper.GetString("build_dir"), newLogger())
	if err != nil {
		return err
	}
	defer mgr.Close()

	if err := mgr.Clean(*cleanFlags.target); err != nil {
		return err
	}
	if *cleanFlags.target != "" {
		fmt.Fprintf(os.Stdout, "cleaned build artifacts for %v\n", *cleanFlags.target)
	} else {
		fmt.Fprintln(os.Stdout, "cleaned all build artifacts")
	}
	return nil
}
