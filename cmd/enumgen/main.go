// Package main provides the enumgen binary entry point.
// Enumgen generates sealed Go enumeration sets from YAML declaration
// files.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "enumgen"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "enumgen [patterns...]",
		Short: "Generate Go enumeration sets from YAML declarations",
		Long: `Enumgen generates sealed enumeration sets from YAML declaration
files. Each *.enum.yaml file becomes one Go source file declaring its
sets as package-level variables backed by the enumset engine.

Patterns given as arguments override the patterns in enumgen.yaml;
without either, **/*.enum.yaml under the working directory is used.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.patterns = args
			opts.strictSet = cmd.Flags().Changed("strict")
			return runGenerate(opts)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Config file path (default: nearest enumgen.yaml)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Output directory for generated files")
	cmd.Flags().StringVarP(&opts.pkg, "package", "p", "", "Package name for generated files")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Treat duplicate member declarations as errors")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "Watch declarations and regenerate on change")

	cmd.AddCommand(validateCmd(opts))
	cmd.AddCommand(initCmd(opts))

	// Version command
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}

func validateCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [patterns...]",
		Short: "Validate declaration files without generating code",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.patterns = args
			opts.strictSet = cmd.Flags().Changed("strict")
			return runValidate(opts)
		},
	}
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Treat duplicate member declarations as errors")
	return cmd
}

func initCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create a default enumgen.yaml in the working directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(opts)
		},
	}
}
