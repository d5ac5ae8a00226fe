package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/spacecheck-ci/spacecheck/app"
	"github.com/spacecheck-ci/spacecheck/domain"
	"github.com/spacecheck-ci/spacecheck/internal/config"
	"github.com/spacecheck-ci/spacecheck/service"
)

var (
	renderConfigPath string
	renderInput      string
)

func renderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [path]",
		Short: "Render the metrics report to stdout",
		Long: `Run the configured metrics tool (or read previously captured tool
output) and print the rendered report without publishing anything.

Examples:
  # Analyze the current directory and print the report
  spacecheck render

  # Render previously captured tool output
  spacecheck render --input metrics.ndjson

  # Render tool output piped on stdin
  rust-code-analysis-cli --metrics --output-format json . | spacecheck render --input -`,
		RunE:          runRender,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().StringVarP(&renderConfigPath, "config", "c", "",
		"Path to config file")
	cmd.Flags().StringVarP(&renderInput, "input", "i", "",
		"Read tool output from this file instead of running the tool (- for stdin)")

	return cmd
}

func runRender(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	cfg, err := config.LoadConfigWithTarget(renderConfigPath, dir)
	if err != nil {
		return &ExitError{Code: 2, Message: fmt.Sprintf("failed to load configuration: %v", err)}
	}

	ctx := context.Background()
	versionLabel := cfg.Checks.Name

	var source domain.RecordSource
	switch renderInput {
	case "":
		runner := service.NewToolRunner(cfg.Tool.Path, cfg.Tool.Args)
		if v, err := runner.Version(ctx); err == nil {
			versionLabel = v
		}
		source = runner.RunnerFor(dir)
	case "-":
		source = &service.ReaderSource{Reader: os.Stdin}
	default:
		f, err := os.Open(renderInput)
		if err != nil {
			return &ExitError{Code: 2, Message: fmt.Sprintf("failed to open input: %v", err)}
		}
		defer f.Close()
		source = &service.ReaderSource{Reader: f}
	}

	uc := app.NewRenderUseCase(source, service.NewRecordParser(), service.NewReportRenderer())
	err = uc.Execute(ctx, domain.ReportRequest{
		VersionLabel:    versionLabel,
		ExcludePatterns: cfg.Analysis.ExcludePatterns,
	}, os.Stdout)
	if err != nil {
		return &ExitError{Code: 2, Message: err.Error()}
	}
	return nil
}
