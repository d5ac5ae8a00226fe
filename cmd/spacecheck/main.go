package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/spacecheck-ci/spacecheck/internal/log"
	"github.com/spacecheck-ci/spacecheck/internal/version"
)

var (
	// Version information (set via ldflags during build)
	Version = version.Version
)

// ExitError carries a process exit code through cobra's error path
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "spacecheck",
		Short: "spacecheck - source code metrics as GitHub check runs",
		Long: `spacecheck runs an external code metrics tool over a repository and
publishes the results as a GitHub check run with inline annotations.`,
		Version: Version,
	}

	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(renderCmd())
	rootCmd.AddCommand(initCmd())
	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()
	_ = log.Sync()
	if err != nil {
		// Handle custom exit codes from the report command
		if exitErr, ok := err.(*ExitError); ok {
			if exitErr.Message != "" {
				fmt.Fprintf(os.Stderr, "Error: %s\n", exitErr.Message)
			}
			os.Exit(exitErr.Code)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			verbose, _ := cmd.Flags().GetBool("verbose")
			if verbose {
				fmt.Println(version.GetFullVersion())
			} else {
				fmt.Printf("spacecheck version %s\n", version.GetVersion())
			}
		},
	}

	cmd.Flags().BoolP("verbose", "v", false, "Show detailed version information")
	return cmd
}
