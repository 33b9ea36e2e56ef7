package checks

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/rucio/ruciobot/server/events/models"
)

const (
	StaleLabel     = "stale"
	StaleWarnDays  = 14
	StaleCloseDays = 7
)

const staleCloseComment = "Closing this PR due to prolonged inactivity. " +
	"Feel free to reopen it if you would like to continue working on it. " +
	"If you believe this action was a mistake, please reach out to a member of the " +
	"[Rucio review team](https://rucio.github.io/documentation/component_leads) " +
	"with an explanation."

// StaleConfig holds the thresholds and label names for the stale check.
// Values are injected at construction so tests can use arbitrary thresholds.
type StaleConfig struct {
	Label        string
	ExcludeLabel string
	WarnDays     int
	CloseDays    int
}

// StaleCheck marks inactive PRs as stale and closes them if they remain
// inactive. A stale PR that gains a pending review request or an approval
// has its warning reversed instead.
type StaleCheck struct {
	cfg StaleConfig
}

func NewStaleCheck(cfg StaleConfig) *StaleCheck {
	if cfg.Label == "" {
		cfg.Label = StaleLabel
	}
	if cfg.ExcludeLabel == "" {
		cfg.ExcludeLabel = NoBotLabel
	}
	if cfg.WarnDays == 0 {
		cfg.WarnDays = StaleWarnDays
	}
	if cfg.CloseDays == 0 {
		cfg.CloseDays = StaleCloseDays
	}
	return &StaleCheck{cfg: cfg}
}

func (c *StaleCheck) Name() string {
	return "stale"
}

func (c *StaleCheck) Evaluate(ctx context.Context, repo models.Repo, pull models.PullRequest, now time.Time) ([]Action, error) {
	if isExcluded(pull, c.cfg.ExcludeLabel) {
		return nil, nil
	}
	if pull.UpdatedAt.IsZero() {
		return nil, errors.Errorf("pull request #%d has no updated timestamp", pull.Num)
	}
	inactive := now.UTC().Sub(pull.UpdatedAt.UTC())

	if pull.HasLabel(c.cfg.Label) {
		// Already warned. Any interaction refreshes UpdatedAt, so the
		// close countdown restarts from the later of the warning and
		// the last activity.
		if inactive > days(c.cfg.CloseDays) {
			return []Action{PostComment(staleCloseComment), ClosePull()}, nil
		}
		if pull.AwaitingReview() || pull.Approved {
			return []Action{RemoveLabel(c.cfg.Label)}, nil
		}
		return nil, nil
	}

	if inactive > days(c.cfg.WarnDays) {
		// A PR waiting on an assigned reviewer, or one already approved,
		// is not penalized for the reviewer's inactivity.
		if pull.AwaitingReview() || pull.Approved {
			return nil, nil
		}
		return []Action{PostComment(c.warnComment()), AddLabel(c.cfg.Label)}, nil
	}
	return nil, nil
}

func (c *StaleCheck) warnComment() string {
	return fmt.Sprintf(
		"This PR has had no activity for %d days and has no pending review requests. "+
			"It has been marked as **stale** and will be closed in %d days unless "+
			"there is new activity or a reviewer is assigned.",
		c.cfg.WarnDays, c.cfg.CloseDays)
}
