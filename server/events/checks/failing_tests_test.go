package checks

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/rucio/ruciobot/server/events/models"
	"github.com/rucio/ruciobot/server/logging"
	"github.com/stretchr/testify/assert"
)

type fakeCheckRunsFetcher struct {
	conclusions []string
	err         error
	isCalled    bool
}

func (f *fakeCheckRunsFetcher) ListConclusions(_ context.Context, _ models.Repo, _ string) ([]string, error) {
	f.isCalled = true
	return f.conclusions, f.err
}

func newFailingTestsCheck(t *testing.T, fetcher *fakeCheckRunsFetcher) *FailingTestsCheck {
	return NewFailingTestsCheck(FailingTestsConfig{}, fetcher, logging.NewNoopCtxLogger(t))
}

func TestFailingTestsCheck_WarnsOnFailure(t *testing.T) {
	fetcher := &fakeCheckRunsFetcher{conclusions: []string{"success", "failure"}}
	check := newFailingTestsCheck(t, fetcher)
	pull := models.PullRequest{
		Num:       1,
		HeadSHA:   "abc123",
		UpdatedAt: updatedDaysAgo(2),
	}

	actions, err := check.Evaluate(context.Background(), testRepo, pull, testNow())
	assert.NoError(t, err)
	assert.True(t, fetcher.isCalled)
	assert.Len(t, actions, 2)
	assert.Equal(t, ActionPostComment, actions[0].Kind)
	assert.Contains(t, actions[0].Body, "failing CI checks")
	assert.Equal(t, AddLabel(FailingTestsLabel), actions[1])
}

func TestFailingTestsCheck_ClosesFlaggedPull(t *testing.T) {
	fetcher := &fakeCheckRunsFetcher{}
	check := newFailingTestsCheck(t, fetcher)
	pull := models.PullRequest{
		Num:       2,
		Labels:    []string{FailingTestsLabel},
		UpdatedAt: updatedDaysAgo(3),
	}

	actions, err := check.Evaluate(context.Background(), testRepo, pull, testNow())
	assert.NoError(t, err)
	// No check-run lookup is needed to close.
	assert.False(t, fetcher.isCalled)
	assert.Len(t, actions, 2)
	assert.Equal(t, ActionPostComment, actions[0].Kind)
	assert.Equal(t, ClosePull(), actions[1])
}

// A flagged PR whose tests turn green keeps its label: only a human
// closes or revives it.
func TestFailingTestsCheck_LabelNotClearedByGreenTests(t *testing.T) {
	fetcher := &fakeCheckRunsFetcher{conclusions: []string{"success", "success"}}
	check := newFailingTestsCheck(t, fetcher)
	pull := models.PullRequest{
		Num:       3,
		Labels:    []string{FailingTestsLabel},
		UpdatedAt: updatedDaysAgo(2),
	}

	actions, err := check.Evaluate(context.Background(), testRepo, pull, testNow())
	assert.NoError(t, err)
	assert.Empty(t, actions)
}

func TestFailingTestsCheck_RecentActivityNotWarned(t *testing.T) {
	fetcher := &fakeCheckRunsFetcher{conclusions: []string{"failure"}}
	check := newFailingTestsCheck(t, fetcher)
	pull := models.PullRequest{
		Num:       4,
		UpdatedAt: updatedDaysAgo(0.5),
	}

	actions, err := check.Evaluate(context.Background(), testRepo, pull, testNow())
	assert.NoError(t, err)
	assert.Empty(t, actions)
}

func TestFailingTestsCheck_NoFailingRuns(t *testing.T) {
	fetcher := &fakeCheckRunsFetcher{conclusions: []string{"success", "neutral"}}
	check := newFailingTestsCheck(t, fetcher)
	pull := models.PullRequest{
		Num:       5,
		UpdatedAt: updatedDaysAgo(2),
	}

	actions, err := check.Evaluate(context.Background(), testRepo, pull, testNow())
	assert.NoError(t, err)
	assert.True(t, fetcher.isCalled)
	assert.Empty(t, actions)
}

// A failed check-run lookup means no evidence of failure, not an error.
func TestFailingTestsCheck_FetchErrorFailsOpen(t *testing.T) {
	fetcher := &fakeCheckRunsFetcher{err: errors.New("boom")}
	check := newFailingTestsCheck(t, fetcher)
	pull := models.PullRequest{
		Num:       6,
		UpdatedAt: updatedDaysAgo(2),
	}

	actions, err := check.Evaluate(context.Background(), testRepo, pull, testNow())
	assert.NoError(t, err)
	assert.Empty(t, actions)
}

func TestFailingTestsCheck_ExclusionDominates(t *testing.T) {
	fetcher := &fakeCheckRunsFetcher{conclusions: []string{"failure"}}
	check := newFailingTestsCheck(t, fetcher)
	pull := models.PullRequest{
		Num:       7,
		Labels:    []string{NoBotLabel, FailingTestsLabel},
		UpdatedAt: updatedDaysAgo(100),
	}

	actions, err := check.Evaluate(context.Background(), testRepo, pull, testNow())
	assert.NoError(t, err)
	assert.False(t, fetcher.isCalled)
	assert.Empty(t, actions)
}

func TestFailingTestsCheck_MissingTimestamp(t *testing.T) {
	check := newFailingTestsCheck(t, &fakeCheckRunsFetcher{})
	pull := models.PullRequest{Num: 8}

	_, err := check.Evaluate(context.Background(), testRepo, pull, testNow())
	assert.Error(t, err)
}

func TestFailingTestsCheck_InactiveDaysFloor(t *testing.T) {
	fetcher := &fakeCheckRunsFetcher{conclusions: []string{"failure"}}
	check := newFailingTestsCheck(t, fetcher)
	// 23 hours of inactivity floors to 0 days, under the 1 day threshold.
	pull := models.PullRequest{
		Num:       9,
		UpdatedAt: testNow().Add(-23 * time.Hour),
	}

	actions, err := check.Evaluate(context.Background(), testRepo, pull, testNow())
	assert.NoError(t, err)
	assert.Empty(t, actions)
}
