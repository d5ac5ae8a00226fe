package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/spacecheck-ci/spacecheck/app"
	"github.com/spacecheck-ci/spacecheck/domain"
	"github.com/spacecheck-ci/spacecheck/internal/config"
	"github.com/spacecheck-ci/spacecheck/internal/log"
	"github.com/spacecheck-ci/spacecheck/service"
)

var (
	reportConfigPath string
	reportName       string
	reportEnvFile    string
	reportNoProgress bool
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report [path]",
		Short: "Analyze a repository and publish a GitHub check run",
		Long: `Run the configured metrics tool over a repository and publish the
results as a GitHub check run with per-function annotations.

Repository, commit and credentials are taken from the standard GitHub
Actions environment (GITHUB_REPOSITORY, GITHUB_SHA, GITHUB_TOKEN).
For pull requests from forked repositories, where the workflow token
cannot create check runs, the parsed results are printed to stdout
instead.

Exit codes:
  0 - Check run published
  1 - Publishing failed
  2 - Tool or configuration error

Examples:
  # Analyze the current directory
  spacecheck report

  # Analyze a subdirectory with a custom check name
  spacecheck report --name "code metrics" src/`,
		RunE:          runReport,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().StringVarP(&reportConfigPath, "config", "c", "",
		"Path to config file")
	cmd.Flags().StringVar(&reportName, "name", "",
		"Check run name (overrides config)")
	cmd.Flags().StringVar(&reportEnvFile, "env-file", "",
		"Load environment variables from this file before resolving credentials")
	cmd.Flags().BoolVar(&reportNoProgress, "no-progress", false,
		"Disable progress output")

	return cmd
}

func runReport(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	if reportEnvFile != "" {
		if err := godotenv.Load(reportEnvFile); err != nil {
			return &ExitError{Code: 2, Message: fmt.Sprintf("failed to load env file: %v", err)}
		}
	} else {
		// A local .env is optional
		_ = godotenv.Load()
	}

	cfg, err := config.LoadConfigWithTarget(reportConfigPath, dir)
	if err != nil {
		return &ExitError{Code: 2, Message: fmt.Sprintf("failed to load configuration: %v", err)}
	}
	if reportName != "" {
		cfg.Checks.Name = reportName
	}

	gh, err := config.GitHubContextFromEnvironment()
	if err != nil {
		return &ExitError{Code: 2, Message: fmt.Sprintf("failed to resolve GitHub context: %v", err)}
	}

	pm := service.NewProgressManager(!reportNoProgress)
	defer pm.Close()

	ctx := context.Background()
	runner := service.NewToolRunner(cfg.Tool.Path, cfg.Tool.Args)

	versionLabel := cfg.Checks.Name
	if v, err := runner.Version(ctx); err == nil {
		versionLabel = v
	} else {
		log.Logger().Debugw("tool version query failed", "error", err)
	}

	publisher := service.NewCheckRunService(
		service.NewGitHubCheckClient(gh.Token),
		service.CheckRunConfig{
			Owner:           gh.Owner,
			Repo:            gh.Repo,
			Name:            cfg.Checks.Name,
			HeadSHA:         gh.HeadSHA,
			ForkPullRequest: gh.ForkPullRequest,
			BatchSize:       cfg.Checks.AnnotationBatchSize,
		},
	)

	uc := app.NewReportUseCase(
		runner.RunnerFor(dir),
		service.NewRecordParser(),
		service.NewReportRenderer(),
		service.NewAnnotationExtractor(),
		publisher,
		pm,
	)

	start := time.Now()
	resp, err := uc.Execute(ctx, domain.ReportRequest{
		VersionLabel:    versionLabel,
		ExcludePatterns: cfg.Analysis.ExcludePatterns,
	})
	if err != nil {
		return reportExitError(err)
	}

	fmt.Printf("Published check run %q: %d files, %d annotations (%s)\n",
		cfg.Checks.Name, resp.FileCount, resp.AnnotationCount,
		time.Since(start).Round(time.Millisecond))
	return nil
}

// reportExitError maps pipeline failures to process exit codes.
func reportExitError(err error) error {
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		switch domainErr.Code {
		case domain.ErrCodeToolError, domain.ErrCodeConfigError:
			return &ExitError{Code: 2, Message: err.Error()}
		}
	}
	return &ExitError{Code: 1, Message: err.Error()}
}
