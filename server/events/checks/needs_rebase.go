package checks

import (
	"context"
	"time"

	"github.com/rucio/ruciobot/server/events/models"
)

const NeedsRebaseLabel = "needs-rebase"

const rebaseComment = "This PR currently has merge conflicts with the target branch. " +
	"Please rebase it on top of the latest `master` (or target branch) so it can be merged. " +
	"If you need help with rebasing, visit the " +
	"[Rucio contributing guide](https://rucio.github.io/documentation/contributing/)."

// NeedsRebaseConfig holds the label names for the needs-rebase check. There
// is no time dimension here.
type NeedsRebaseConfig struct {
	Label        string
	ExcludeLabel string
}

// NeedsRebaseCheck comments on and labels PRs with merge conflicts, and is
// the only fully bidirectional check: once conflicts are resolved the label
// is removed again.
type NeedsRebaseCheck struct {
	cfg NeedsRebaseConfig
}

func NewNeedsRebaseCheck(cfg NeedsRebaseConfig) *NeedsRebaseCheck {
	if cfg.Label == "" {
		cfg.Label = NeedsRebaseLabel
	}
	if cfg.ExcludeLabel == "" {
		cfg.ExcludeLabel = NoBotLabel
	}
	return &NeedsRebaseCheck{cfg: cfg}
}

func (c *NeedsRebaseCheck) Name() string {
	return "needs-rebase"
}

func (c *NeedsRebaseCheck) Evaluate(ctx context.Context, repo models.Repo, pull models.PullRequest, now time.Time) ([]Action, error) {
	if isExcluded(pull, c.cfg.ExcludeLabel) {
		return nil, nil
	}

	switch pull.Mergeable {
	case models.MergeableStateUnknown:
		// GitHub hasn't finished the merge-conflict computation.
		// The next run will catch it.
		return nil, nil
	case models.MergeableStateConflicting:
		if !pull.HasLabel(c.cfg.Label) {
			return []Action{PostComment(rebaseComment), AddLabel(c.cfg.Label)}, nil
		}
		return nil, nil
	case models.MergeableStateMergeable:
		if pull.HasLabel(c.cfg.Label) {
			return []Action{RemoveLabel(c.cfg.Label)}, nil
		}
		return nil, nil
	}
	return nil, nil
}
