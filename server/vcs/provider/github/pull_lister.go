package github

import (
	"context"

	gh "github.com/google/go-github/v45/github"
	"github.com/rucio/ruciobot/server/events/models"
)

// PullLister lists a repository's open pull requests sorted by last update
// ascending, so the longest-inactive PRs are visited first.
type PullLister struct {
	Client *gh.Client
}

func (l *PullLister) ListOpenPulls(ctx context.Context, repo models.Repo) ([]*gh.PullRequest, error) {
	run := func(ctx context.Context, nextPage int) ([]*gh.PullRequest, *gh.Response, error) {
		listOptions := gh.PullRequestListOptions{
			State:     "open",
			Sort:      "updated",
			Direction: "asc",
			ListOptions: gh.ListOptions{
				PerPage: 100,
			},
		}
		listOptions.Page = nextPage
		return l.Client.PullRequests.List(ctx, repo.Owner, repo.Name, &listOptions)
	}

	return Iterate(ctx, run, func(pulls []*gh.PullRequest) []*gh.PullRequest {
		return pulls
	})
}
