package checks

import (
	"context"
	"time"

	"github.com/rucio/ruciobot/server/events/models"
)

// NoBotLabel is the universal opt-out: a PR carrying it is skipped by every
// check. Renaming it resets the bot's memory of prior exclusions.
const NoBotLabel = "no-bot"

// Check is the decision function for one maintenance concern. Evaluate is a
// pure function of the snapshot and the clock: it emits the ordered list of
// actions to apply and never mutates anything itself. Running it twice on
// the same snapshot yields the same actions both times.
type Check interface {
	Name() string
	Evaluate(ctx context.Context, repo models.Repo, pull models.PullRequest, now time.Time) ([]Action, error)
}

// isExcluded implements the shared opt-out. It is evaluated before any
// concern-specific rule and short-circuits the whole decision.
func isExcluded(pull models.PullRequest, excludeLabel string) bool {
	return pull.HasLabel(excludeLabel)
}

func days(n int) time.Duration {
	return time.Duration(n) * 24 * time.Hour
}
