// Command knnloo estimates the accuracy of a weighted K-nearest-neighbor
// classifier on a labeled biomarker dataset using leave-one-out
// cross-validation.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/YuminosukeSato/knnloo/pkg/errors"
	"github.com/spf13/cobra"
)

const (
	exitFailure    = 1
	exitConfig     = 2
	exitLoad       = 3
	exitEvaluation = 4
)

type rootCmdConfig struct {
	verbose    bool
	configFile string
	logLevel   string
}

// exitError carries the process exit code for a failed stage.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func (e *exitError) Unwrap() error { return e.err }

// withExitCode tags err with code. Configuration errors always exit with
// exitConfig, whichever stage detects them.
func withExitCode(code int, err error) error {
	var cfgErr *errors.ConfigurationError
	if errors.As(err, &cfgErr) {
		code = exitConfig
	}
	return &exitError{code: code, err: err}
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func execute(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := cliParser()
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(stderr, err)
		var ee *exitError
		if errors.As(err, &ee) {
			return ee.code
		}
		return exitFailure
	}
	return 0
}

func cliParser() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "knnloo",
		Short:         "knnloo evaluates a weighted KNN classifier with leave-one-out cross-validation",
		Long:          `A tool to estimate how well a distance-weighted K-nearest-neighbor classifier separates P and H samples of a biomarker dataset`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	config := &rootCmdConfig{}
	rootCmd.PersistentFlags().BoolVarP(&(config.verbose), "verbose", "v", false, "log at debug level")
	rootCmd.PersistentFlags().StringVarP(&(config.configFile), "config", "c", "", "path to a YAML file with the run configuration")
	rootCmd.PersistentFlags().StringVar(&(config.logLevel), "log-level", "", "log level: debug, info, warn or error (overrides the config file)")
	rootCmd.AddCommand(versionCmd(), evaluateCmd(config))
	return rootCmd
}
