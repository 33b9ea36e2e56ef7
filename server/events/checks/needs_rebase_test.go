package checks

import (
	"context"
	"testing"

	"github.com/rucio/ruciobot/server/events/models"
	"github.com/stretchr/testify/assert"
)

func TestNeedsRebaseCheck_FlagsConflictingPull(t *testing.T) {
	check := NewNeedsRebaseCheck(NeedsRebaseConfig{})
	pull := models.PullRequest{
		Num:       1,
		Mergeable: models.MergeableStateConflicting,
	}

	actions, err := check.Evaluate(context.Background(), testRepo, pull, testNow())
	assert.NoError(t, err)
	assert.Len(t, actions, 2)
	assert.Equal(t, ActionPostComment, actions[0].Kind)
	assert.Contains(t, actions[0].Body, "merge conflicts")
	assert.Equal(t, AddLabel(NeedsRebaseLabel), actions[1])
}

func TestNeedsRebaseCheck_NoDuplicateFlag(t *testing.T) {
	check := NewNeedsRebaseCheck(NeedsRebaseConfig{})
	pull := models.PullRequest{
		Num:       2,
		Labels:    []string{NeedsRebaseLabel},
		Mergeable: models.MergeableStateConflicting,
	}

	actions, err := check.Evaluate(context.Background(), testRepo, pull, testNow())
	assert.NoError(t, err)
	assert.Empty(t, actions)
}

func TestNeedsRebaseCheck_ClearsResolvedConflicts(t *testing.T) {
	check := NewNeedsRebaseCheck(NeedsRebaseConfig{})
	pull := models.PullRequest{
		Num:       3,
		Labels:    []string{NeedsRebaseLabel},
		Mergeable: models.MergeableStateMergeable,
	}

	actions, err := check.Evaluate(context.Background(), testRepo, pull, testNow())
	assert.NoError(t, err)
	assert.Equal(t, []Action{RemoveLabel(NeedsRebaseLabel)}, actions)
}

func TestNeedsRebaseCheck_MergeableUnlabeled(t *testing.T) {
	check := NewNeedsRebaseCheck(NeedsRebaseConfig{})
	pull := models.PullRequest{
		Num:       4,
		Mergeable: models.MergeableStateMergeable,
	}

	actions, err := check.Evaluate(context.Background(), testRepo, pull, testNow())
	assert.NoError(t, err)
	assert.Empty(t, actions)
}

func TestNeedsRebaseCheck_UnknownMergeabilitySkipped(t *testing.T) {
	check := NewNeedsRebaseCheck(NeedsRebaseConfig{})
	cases := []struct {
		description string
		pull        models.PullRequest
	}{
		{
			description: "unlabeled",
			pull: models.PullRequest{
				Num:       5,
				Mergeable: models.MergeableStateUnknown,
			},
		},
		{
			description: "labeled",
			pull: models.PullRequest{
				Num:       5,
				Labels:    []string{NeedsRebaseLabel},
				Mergeable: models.MergeableStateUnknown,
			},
		},
	}
	for _, c := range cases {
		t.Run(c.description, func(t *testing.T) {
			actions, err := check.Evaluate(context.Background(), testRepo, c.pull, testNow())
			assert.NoError(t, err)
			assert.Empty(t, actions)
		})
	}
}

// Toggling mergeability across consecutive evaluations toggles the label.
func TestNeedsRebaseCheck_Bidirectional(t *testing.T) {
	check := NewNeedsRebaseCheck(NeedsRebaseConfig{})
	pull := models.PullRequest{
		Num:       6,
		Mergeable: models.MergeableStateConflicting,
	}

	actions, err := check.Evaluate(context.Background(), testRepo, pull, testNow())
	assert.NoError(t, err)
	assert.Equal(t, AddLabel(NeedsRebaseLabel), actions[1])

	// The label landed, conflicts then got resolved.
	pull.Labels = []string{NeedsRebaseLabel}
	pull.Mergeable = models.MergeableStateMergeable
	actions, err = check.Evaluate(context.Background(), testRepo, pull, testNow())
	assert.NoError(t, err)
	assert.Equal(t, []Action{RemoveLabel(NeedsRebaseLabel)}, actions)
}

func TestNeedsRebaseCheck_ExclusionDominates(t *testing.T) {
	check := NewNeedsRebaseCheck(NeedsRebaseConfig{})
	pull := models.PullRequest{
		Num:       7,
		Labels:    []string{NoBotLabel},
		Mergeable: models.MergeableStateConflicting,
	}

	actions, err := check.Evaluate(context.Background(), testRepo, pull, testNow())
	assert.NoError(t, err)
	assert.Empty(t, actions)
}
