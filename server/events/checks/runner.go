package checks

import (
	"context"
	"strings"
	"time"

	gh "github.com/google/go-github/v45/github"
	"github.com/pkg/errors"
	internalContext "github.com/rucio/ruciobot/server/context"
	"github.com/rucio/ruciobot/server/events/models"
	"github.com/rucio/ruciobot/server/logging"
	tally "github.com/uber-go/tally/v4"
)

type pullLister interface {
	ListOpenPulls(ctx context.Context, repo models.Repo) ([]*gh.PullRequest, error)
}

type snapshotBuilder interface {
	Build(ctx context.Context, repo models.Repo, pull *gh.PullRequest) (models.PullRequest, error)
}

type actionExecutor interface {
	PostComment(ctx context.Context, repo models.Repo, pullNum int, body string) error
	AddLabel(ctx context.Context, repo models.Repo, pullNum int, label string) error
	RemoveLabel(ctx context.Context, repo models.Repo, pullNum int, label string) error
	ClosePull(ctx context.Context, repo models.Repo, pullNum int) error
}

// Runner performs one check x one repository pass: it lists the open PRs
// oldest-inactive-first, snapshots each one, asks the check for its actions
// and executes them in order. A failure on one PR never aborts the rest of
// the batch; only a failure listing the PRs is fatal for the run.
type Runner struct {
	lister   pullLister
	builder  snapshotBuilder
	executor actionExecutor
	check    Check
	logger   logging.Logger
	scope    tally.Scope
	now      func() time.Time
}

func NewRunner(
	lister pullLister,
	builder snapshotBuilder,
	executor actionExecutor,
	check Check,
	logger logging.Logger,
	scope tally.Scope,
) *Runner {
	return &Runner{
		lister:   lister,
		builder:  builder,
		executor: executor,
		check:    check,
		logger:   logger,
		scope:    scope.Tagged(map[string]string{"check": check.Name()}),
		now:      time.Now,
	}
}

func (r *Runner) Run(ctx context.Context, repo models.Repo) error {
	ctx = internalContext.WithFields(ctx, map[string]interface{}{
		"repo":  repo.FullName(),
		"check": r.check.Name(),
	})

	pulls, err := r.lister.ListOpenPulls(ctx, repo)
	if err != nil {
		return errors.Wrapf(err, "listing open pull requests for %s", repo.FullName())
	}
	r.logger.InfoContext(ctx, "checking repository", map[string]interface{}{
		"open_pulls": len(pulls),
	})

	for _, pull := range pulls {
		r.processPull(ctx, repo, pull)
	}
	return nil
}

// processPull evaluates and dispatches a single PR. Errors are logged with
// the PR identifier and swallowed so the remaining PRs still get processed.
func (r *Runner) processPull(ctx context.Context, repo models.Repo, ghPull *gh.PullRequest) {
	ctx = internalContext.WithFields(ctx, map[string]interface{}{
		"pull": ghPull.GetNumber(),
	})

	pull, err := r.builder.Build(ctx, repo, ghPull)
	if err != nil {
		r.scope.Counter("snapshot_errors").Inc(1)
		r.logger.ErrorContext(ctx, "building snapshot", map[string]interface{}{
			"err": err.Error(),
		})
		return
	}

	actions, err := r.check.Evaluate(ctx, repo, pull, r.now())
	if err != nil {
		r.scope.Counter("evaluate_errors").Inc(1)
		r.logger.ErrorContext(ctx, "evaluating check", map[string]interface{}{
			"err": err.Error(),
		})
		return
	}
	if len(actions) == 0 {
		r.scope.Counter("noops").Inc(1)
		r.logger.DebugContext(ctx, "no action")
		return
	}

	// Execute in the order the check produced: comments land before the
	// label or close they explain. A failed action aborts the rest of
	// this PR's actions but not the batch.
	for _, action := range actions {
		if err := r.execute(ctx, repo, pull.Num, action); err != nil {
			r.scope.Counter("dispatch_errors").Inc(1)
			r.logger.ErrorContext(ctx, "dispatching action", map[string]interface{}{
				"action": action.Kind.String(),
				"err":    err.Error(),
			})
			return
		}
		r.scope.Counter(counterName(action.Kind)).Inc(1)
	}
	r.logger.InfoContext(ctx, "applied actions", map[string]interface{}{
		"actions": summarize(actions),
	})
}

func (r *Runner) execute(ctx context.Context, repo models.Repo, pullNum int, action Action) error {
	switch action.Kind {
	case ActionPostComment:
		return r.executor.PostComment(ctx, repo, pullNum, action.Body)
	case ActionAddLabel:
		return r.executor.AddLabel(ctx, repo, pullNum, action.Label)
	case ActionRemoveLabel:
		return r.executor.RemoveLabel(ctx, repo, pullNum, action.Label)
	case ActionClosePull:
		return r.executor.ClosePull(ctx, repo, pullNum)
	}
	return errors.Errorf("unknown action kind %d", action.Kind)
}

func counterName(kind ActionKind) string {
	switch kind {
	case ActionPostComment:
		return "comments_posted"
	case ActionAddLabel:
		return "labels_added"
	case ActionRemoveLabel:
		return "labels_removed"
	case ActionClosePull:
		return "pulls_closed"
	}
	return "unknown_actions"
}

func summarize(actions []Action) string {
	kinds := make([]string, 0, len(actions))
	for _, a := range actions {
		kinds = append(kinds, a.Kind.String())
	}
	return strings.Join(kinds, ",")
}
