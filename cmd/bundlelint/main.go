// Package main provides the bundlelint CLI tool for checking message
// bundle directories.
//
// Usage:
//
//	bundlelint check --bundles ./messages --strict
//
// The tool reads messages.yaml and its per-locale overrides and reports
// error keys with incomplete code/title/detail triples, unknown key
// prefixes, and locale keys missing from the default bundle.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hakantaylan/problem-handler/internal/bundlelint"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "bundlelint",
		Short:   "Check message bundles for consistency",
		Long:    `bundlelint verifies that message bundles define complete code/title/detail triples for every error key.`,
		Version: version,
	}

	rootCmd.AddCommand(newCheckCmd())

	return rootCmd
}

func newCheckCmd() *cobra.Command {
	cfg := bundlelint.Config{}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check a message bundle directory",
		Long: `Check a message bundle directory.

This command reads messages.yaml plus any messages_<locale>.yaml overrides
and reports incomplete code/title/detail triples, keys with unknown
prefixes, and locale keys that have no counterpart in the default bundle.

Example:
  bundlelint check --bundles ./messages --strict`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cfg)
		},
	}

	cmd.Flags().StringVarP(&cfg.BundleDir, "bundles", "b", "", "Directory containing message bundles (required)")
	cmd.Flags().BoolVarP(&cfg.Strict, "strict", "s", false, "Treat incomplete triples as errors")
	cmd.Flags().BoolVarP(&cfg.Verbose, "verbose", "v", false, "Enable verbose output")

	_ = cmd.MarkFlagRequired("bundles")

	return cmd
}

func runCheck(cfg bundlelint.Config) error {
	linter, err := bundlelint.New(cfg)
	if err != nil {
		return err
	}

	report, err := linter.Run()
	if err != nil {
		return err
	}

	if cfg.Verbose {
		for _, bundle := range report.Bundles {
			fmt.Printf("checked %s\n", bundle)
		}
	}

	for _, issue := range report.Issues {
		fmt.Println(issue)
	}

	if report.HasErrors() {
		return fmt.Errorf("found %d issues", len(report.Issues))
	}

	fmt.Printf("checked %d bundles, %d issues\n", len(report.Bundles), len(report.Issues))
	return nil
}
