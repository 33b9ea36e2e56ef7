package github

import (
	"context"
	"fmt"
	"net/http"

	gh "github.com/google/go-github/v45/github"
	"github.com/pkg/errors"
	"github.com/rucio/ruciobot/server/events/models"
)

const approvalState = "APPROVED"

// SnapshotBuilder turns a listed pull request into the immutable snapshot
// the checks decide on. The list endpoint omits mergeability, so each PR is
// hydrated with an extra Get, and the approved flag comes from the reviews
// listing.
type SnapshotBuilder struct {
	Client *gh.Client
}

func (b *SnapshotBuilder) Build(ctx context.Context, repo models.Repo, pull *gh.PullRequest) (models.PullRequest, error) {
	num := pull.GetNumber()

	hydrated, resp, err := b.Client.PullRequests.Get(ctx, repo.Owner, repo.Name, num)
	if err != nil {
		return models.PullRequest{}, errors.Wrapf(err, "fetching pull request #%d", num)
	}
	if resp.StatusCode != http.StatusOK {
		return models.PullRequest{}, fmt.Errorf("not ok status fetching pull request #%d: %s", num, resp.Status)
	}

	approved, err := b.hasApprovedReview(ctx, repo, num)
	if err != nil {
		return models.PullRequest{}, errors.Wrapf(err, "listing reviews for pull request #%d", num)
	}

	return models.PullRequest{
		Num:                  num,
		HeadSHA:              hydrated.GetHead().GetSHA(),
		Labels:               labelNames(hydrated.Labels),
		UpdatedAt:            hydrated.GetUpdatedAt().UTC(),
		PendingReviewers:     len(hydrated.RequestedReviewers),
		PendingTeamReviewers: len(hydrated.RequestedTeams),
		Approved:             approved,
		Mergeable:            mergeableState(hydrated),
	}, nil
}

func (b *SnapshotBuilder) hasApprovedReview(ctx context.Context, repo models.Repo, num int) (bool, error) {
	run := func(ctx context.Context, nextPage int) ([]*gh.PullRequestReview, *gh.Response, error) {
		listOptions := gh.ListOptions{
			PerPage: 100,
		}
		listOptions.Page = nextPage
		return b.Client.PullRequests.ListReviews(ctx, repo.Owner, repo.Name, num, &listOptions)
	}
	approvals, err := Iterate(ctx, run, func(reviews []*gh.PullRequestReview) []string {
		var approvers []string
		for _, review := range reviews {
			if review.GetState() == approvalState {
				approvers = append(approvers, review.GetUser().GetLogin())
			}
		}
		return approvers
	})
	if err != nil {
		return false, err
	}
	return len(approvals) > 0, nil
}

func labelNames(labels []*gh.Label) []string {
	var names []string
	for _, l := range labels {
		names = append(names, l.GetName())
	}
	return names
}

// mergeableState maps GitHub's nullable mergeable flag onto the tri-state:
// nil means GitHub hasn't finished computing it yet.
func mergeableState(pull *gh.PullRequest) models.MergeableState {
	if pull.Mergeable == nil {
		return models.MergeableStateUnknown
	}
	if *pull.Mergeable {
		return models.MergeableStateMergeable
	}
	return models.MergeableStateConflicting
}
