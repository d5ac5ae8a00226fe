package service

import (
	"context"
	"fmt"

	"github.com/google/go-github/v66/github"

	"github.com/spacecheck-ci/spacecheck/domain"
)

// GitHubCheckClient implements domain.CheckClient against the GitHub
// Checks API.
type GitHubCheckClient struct {
	client *github.Client
}

// NewGitHubCheckClient creates an authenticated Checks API client.
func NewGitHubCheckClient(token string) *GitHubCheckClient {
	return &GitHubCheckClient{
		client: github.NewClient(nil).WithAuthToken(token),
	}
}

// CreateRun creates the remote check run and returns its identifier.
func (c *GitHubCheckClient) CreateRun(ctx context.Context, req domain.CreateRunRequest) (int64, error) {
	run, _, err := c.client.Checks.CreateCheckRun(ctx, req.Owner, req.Repo, github.CreateCheckRunOptions{
		Name:      req.Name,
		HeadSHA:   req.HeadSHA,
		Status:    github.String(string(req.Status)),
		StartedAt: &github.Timestamp{Time: req.StartedAt},
	})
	if err != nil {
		return 0, fmt.Errorf("create check run %q: %w", req.Name, err)
	}
	return run.GetID(), nil
}

// UpdateRun updates a previously created check run.
func (c *GitHubCheckClient) UpdateRun(ctx context.Context, req domain.UpdateRunRequest) error {
	opts := github.UpdateCheckRunOptions{
		Name:   req.Name,
		Status: github.String(string(req.Status)),
	}
	if req.Conclusion != "" {
		opts.Conclusion = github.String(string(req.Conclusion))
	}
	if !req.CompletedAt.IsZero() {
		opts.CompletedAt = &github.Timestamp{Time: req.CompletedAt}
	}
	if req.Output != nil {
		opts.Output = &github.CheckRunOutput{
			Title:       github.String(req.Output.Title),
			Summary:     github.String(req.Output.Summary),
			Text:        github.String(req.Output.Text),
			Annotations: toGitHubAnnotations(req.Output.Annotations),
		}
	}

	_, _, err := c.client.Checks.UpdateCheckRun(ctx, req.Owner, req.Repo, req.RunID, opts)
	if err != nil {
		return fmt.Errorf("update check run %d: %w", req.RunID, err)
	}
	return nil
}

func toGitHubAnnotations(anns []domain.Annotation) []*github.CheckRunAnnotation {
	if len(anns) == 0 {
		return nil
	}

	out := make([]*github.CheckRunAnnotation, 0, len(anns))
	for _, a := range anns {
		out = append(out, &github.CheckRunAnnotation{
			Path:            github.String(a.Path),
			StartLine:       github.Int(a.StartLine),
			EndLine:         github.Int(a.EndLine),
			AnnotationLevel: github.String(string(a.Level)),
			Title:           github.String(a.Title),
			Message:         github.String(a.Message),
		})
	}
	return out
}
