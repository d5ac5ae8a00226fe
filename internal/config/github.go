package config

import (
	"fmt"
	"os"
	"strings"
)

// GitHubContext carries the repository coordinates and credentials resolved
// from the GitHub Actions environment.
type GitHubContext struct {
	// Owner and Repo are split from GITHUB_REPOSITORY ("owner/repo")
	Owner string
	Repo  string

	// HeadSHA is the commit the check run attaches to
	HeadSHA string

	// Token authenticates against the Checks API
	Token string

	// EventName is the triggering workflow event (push, pull_request, ...)
	EventName string

	// ForkPullRequest is set for pull requests coming from a forked
	// repository, where the workflow token cannot create check runs
	ForkPullRequest bool
}

// GitHubContextFromEnvironment resolves the check-run coordinates from the
// standard GitHub Actions variables.
func GitHubContextFromEnvironment() (*GitHubContext, error) {
	repository := os.Getenv("GITHUB_REPOSITORY")
	if repository == "" {
		return nil, fmt.Errorf("GITHUB_REPOSITORY is not set")
	}

	owner, repo, ok := strings.Cut(repository, "/")
	if !ok || owner == "" || repo == "" {
		return nil, fmt.Errorf("GITHUB_REPOSITORY %q is not in owner/repo form", repository)
	}

	sha := os.Getenv("GITHUB_SHA")
	if sha == "" {
		return nil, fmt.Errorf("GITHUB_SHA is not set")
	}

	token := os.Getenv("GITHUB_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("GITHUB_TOKEN is not set")
	}

	return &GitHubContext{
		Owner:           owner,
		Repo:            repo,
		HeadSHA:         sha,
		Token:           token,
		EventName:       os.Getenv("GITHUB_EVENT_NAME"),
		ForkPullRequest: os.Getenv("GITHUB_HEAD_REF") != "" && os.Getenv("GITHUB_EVENT_NAME") == "pull_request",
	}, nil
}
