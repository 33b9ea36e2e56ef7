package github

import (
	"context"

	gh "github.com/google/go-github/v45/github"
	"github.com/rucio/ruciobot/server/events/models"
)

// CheckRunsFetcher lists the conclusions of all check runs on a commit.
type CheckRunsFetcher struct {
	Client *gh.Client
}

func (f *CheckRunsFetcher) ListConclusions(ctx context.Context, repo models.Repo, ref string) ([]string, error) {
	run := func(ctx context.Context, nextPage int) ([]*gh.CheckRun, *gh.Response, error) {
		listOptions := gh.ListCheckRunsOptions{
			ListOptions: gh.ListOptions{
				PerPage: 100,
			},
		}
		listOptions.Page = nextPage
		results, resp, err := f.Client.Checks.ListCheckRunsForRef(ctx, repo.Owner, repo.Name, ref, &listOptions)
		if results == nil {
			return nil, resp, err
		}
		return results.CheckRuns, resp, err
	}

	return Iterate(ctx, run, func(checkRuns []*gh.CheckRun) []string {
		var conclusions []string
		for _, checkRun := range checkRuns {
			conclusions = append(conclusions, checkRun.GetConclusion())
		}
		return conclusions
	})
}
