package github

import (
	"context"

	gh "github.com/google/go-github/v45/github"
	"github.com/pkg/errors"
	"github.com/rucio/ruciobot/server/events/models"
)

// ActionExecutor applies the four mutations the checks can emit. All four
// are fire-and-forget from the caller's perspective: the bot never
// re-verifies a mutation within the same run.
type ActionExecutor struct {
	Client *gh.Client
}

func (e *ActionExecutor) PostComment(ctx context.Context, repo models.Repo, pullNum int, body string) error {
	_, _, err := e.Client.Issues.CreateComment(ctx, repo.Owner, repo.Name, pullNum, &gh.IssueComment{
		Body: gh.String(body),
	})
	return errors.Wrap(err, "creating comment")
}

func (e *ActionExecutor) AddLabel(ctx context.Context, repo models.Repo, pullNum int, label string) error {
	_, _, err := e.Client.Issues.AddLabelsToIssue(ctx, repo.Owner, repo.Name, pullNum, []string{label})
	return errors.Wrapf(err, "adding label %q", label)
}

func (e *ActionExecutor) RemoveLabel(ctx context.Context, repo models.Repo, pullNum int, label string) error {
	_, err := e.Client.Issues.RemoveLabelForIssue(ctx, repo.Owner, repo.Name, pullNum, label)
	return errors.Wrapf(err, "removing label %q", label)
}

func (e *ActionExecutor) ClosePull(ctx context.Context, repo models.Repo, pullNum int) error {
	_, _, err := e.Client.PullRequests.Edit(ctx, repo.Owner, repo.Name, pullNum, &gh.PullRequest{
		State: gh.String("closed"),
	})
	return errors.Wrap(err, "closing pull request")
}
