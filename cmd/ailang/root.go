package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var rootFlags = struct {
	verbose *bool
}{}

var rootCmd = &cobra.Command{
	Use:   "ailang",
	Short: "Compile AILang model definitions into target source code",
	Long: `ailang compiles .ail model definitions into equivalent model code for
three targets: Python (Keras), C++ (Eigen), and JavaScript (TensorFlow.js).
It can also lint model definitions for structural and performance problems.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootFlags.verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose logging")

	viper.SetConfigName(".ailang")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.SetDefault("build_dir", "build")
	viper.SetDefault("target", "python")
	// A missing config file just leaves the defaults in place.
	_ = viper.ReadInConfig()
}

func Execute() error {
	return rootCmd.Execute()
}

func newLogger() *zap.Logger {
	if *rootFlags.verbose {
		log, err := zap.NewDevelopment()
		if err == nil {
			return log
		}
	}
	return zap.NewNop()
}
