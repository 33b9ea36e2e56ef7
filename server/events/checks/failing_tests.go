package checks

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/rucio/ruciobot/server/events/models"
	"github.com/rucio/ruciobot/server/logging"
)

const (
	FailingTestsLabel     = "failing-tests"
	FailingTestsWarnDays  = 1
	FailingTestsCloseDays = 3

	failureConclusion = "failure"
)

type checkRunsFetcher interface {
	ListConclusions(ctx context.Context, repo models.Repo, ref string) ([]string, error)
}

// FailingTestsConfig holds the thresholds and label names for the
// failing-tests check. The windows are much shorter than the stale ones:
// CI breakage is cheap to confirm and costly to leave unaddressed.
type FailingTestsConfig struct {
	Label        string
	ExcludeLabel string
	WarnDays     int
	CloseDays    int
}

// FailingTestsCheck warns on PRs whose head commit has a failed check run
// and that have gone inactive, and closes them if they stay inactive after
// the warning. The label is never auto-cleared by tests turning green; once
// flagged, a human closes or revives the PR.
type FailingTestsCheck struct {
	cfg       FailingTestsConfig
	checkRuns checkRunsFetcher
	logger    logging.Logger
}

func NewFailingTestsCheck(cfg FailingTestsConfig, checkRuns checkRunsFetcher, logger logging.Logger) *FailingTestsCheck {
	if cfg.Label == "" {
		cfg.Label = FailingTestsLabel
	}
	if cfg.ExcludeLabel == "" {
		cfg.ExcludeLabel = NoBotLabel
	}
	if cfg.WarnDays == 0 {
		cfg.WarnDays = FailingTestsWarnDays
	}
	if cfg.CloseDays == 0 {
		cfg.CloseDays = FailingTestsCloseDays
	}
	return &FailingTestsCheck{
		cfg:       cfg,
		checkRuns: checkRuns,
		logger:    logger,
	}
}

func (c *FailingTestsCheck) Name() string {
	return "failing-tests"
}

func (c *FailingTestsCheck) Evaluate(ctx context.Context, repo models.Repo, pull models.PullRequest, now time.Time) ([]Action, error) {
	if isExcluded(pull, c.cfg.ExcludeLabel) {
		return nil, nil
	}
	if pull.UpdatedAt.IsZero() {
		return nil, errors.Errorf("pull request #%d has no updated timestamp", pull.Num)
	}
	inactiveDays := int(now.UTC().Sub(pull.UpdatedAt.UTC()).Hours() / 24)

	if pull.HasLabel(c.cfg.Label) {
		if inactiveDays >= c.cfg.CloseDays {
			return []Action{PostComment(c.closeComment()), ClosePull()}, nil
		}
		return nil, nil
	}

	if inactiveDays >= c.cfg.WarnDays && c.hasFailingRun(ctx, repo, pull) {
		return []Action{PostComment(c.warnComment()), AddLabel(c.cfg.Label)}, nil
	}
	return nil, nil
}

// hasFailingRun is fail-open: if the check-run lookup errors, we treat it as
// no evidence of failure and leave the PR alone this run.
func (c *FailingTestsCheck) hasFailingRun(ctx context.Context, repo models.Repo, pull models.PullRequest) bool {
	conclusions, err := c.checkRuns.ListConclusions(ctx, repo, pull.HeadSHA)
	if err != nil {
		c.logger.WarnContext(ctx, "could not fetch check runs", map[string]interface{}{
			"err": err.Error(),
		})
		return false
	}
	for _, conclusion := range conclusions {
		if conclusion == failureConclusion {
			return true
		}
	}
	return false
}

func (c *FailingTestsCheck) warnComment() string {
	return fmt.Sprintf(
		"This PR has failing CI checks and has been inactive for %d day(s). "+
			"It will be automatically closed in %d days if the tests are not fixed "+
			"or there is no further activity.",
		c.cfg.WarnDays, c.cfg.CloseDays)
}

func (c *FailingTestsCheck) closeComment() string {
	return fmt.Sprintf(
		"Closing this PR because it has had failing CI checks and has been "+
			"inactive for more than %d days. "+
			"Feel free to reopen once the tests are fixed.",
		c.cfg.CloseDays)
}
