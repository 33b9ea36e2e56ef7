package checks

import (
	"github.com/pkg/errors"
	"github.com/rucio/ruciobot/server/logging"
)

// Deps holds the collaborators a check may need. Only the failing-tests
// check performs side lookups; the others are pure.
type Deps struct {
	CheckRuns checkRunsFetcher
	Logger    logging.Logger

	// StaleWarnDays overrides the stale warning threshold when non-zero.
	StaleWarnDays int
}

// NewCheck builds the named check. When adding a new check, add an entry
// here and to Names.
func NewCheck(name string, deps Deps) (Check, error) {
	switch name {
	case "stale":
		return NewStaleCheck(StaleConfig{WarnDays: deps.StaleWarnDays}), nil
	case "failing-tests":
		return NewFailingTestsCheck(FailingTestsConfig{}, deps.CheckRuns, deps.Logger), nil
	case "needs-rebase":
		return NewNeedsRebaseCheck(NeedsRebaseConfig{}), nil
	}
	return nil, errors.Errorf("unknown check %q", name)
}

// Names lists the registered check names.
func Names() []string {
	return []string{"failing-tests", "needs-rebase", "stale"}
}
