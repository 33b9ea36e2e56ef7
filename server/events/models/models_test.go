package models_test

import (
	"testing"

	"github.com/rucio/ruciobot/server/events/models"
	"github.com/stretchr/testify/assert"
)

func TestNewRepo(t *testing.T) {
	repo, err := models.NewRepo("rucio/rucio")
	assert.NoError(t, err)
	assert.Equal(t, models.Repo{Owner: "rucio", Name: "rucio"}, repo)
	assert.Equal(t, "rucio/rucio", repo.FullName())

	for _, invalid := range []string{"", "rucio", "rucio/", "/rucio", "a/b/c"} {
		_, err := models.NewRepo(invalid)
		assert.Error(t, err, "expected %q to be rejected", invalid)
	}
}

func TestPullRequest_HasLabel(t *testing.T) {
	pull := models.PullRequest{Labels: []string{"stale", "needs-rebase"}}
	assert.True(t, pull.HasLabel("stale"))
	assert.False(t, pull.HasLabel("no-bot"))
	assert.False(t, models.PullRequest{}.HasLabel("stale"))
}

func TestPullRequest_AwaitingReview(t *testing.T) {
	assert.False(t, models.PullRequest{}.AwaitingReview())
	assert.True(t, models.PullRequest{PendingReviewers: 1}.AwaitingReview())
	assert.True(t, models.PullRequest{PendingTeamReviewers: 1}.AwaitingReview())
}

func TestMergeableState_String(t *testing.T) {
	assert.Equal(t, "unknown", models.MergeableStateUnknown.String())
	assert.Equal(t, "mergeable", models.MergeableStateMergeable.String())
	assert.Equal(t, "conflicting", models.MergeableStateConflicting.String())
}
