package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/rucio/ruciobot/server/events/checks"
	"github.com/rucio/ruciobot/server/events/models"
	"github.com/rucio/ruciobot/server/logging"
	"github.com/rucio/ruciobot/server/metrics"
	githubprovider "github.com/rucio/ruciobot/server/vcs/provider/github"
)

const metricsNamespace = "ruciobot"

type RunCmd struct {
	Check      string           `name:"check" required:"" enum:"${check_names}" help:"${help_check}"`
	Repo       string           `name:"repo" required:"" help:"${help_repo}"`
	AppID      int64            `name:"app-id" env:"RUCIO_BOT_APP_ID" help:"${help_app_id}"`
	PrivateKey string           `name:"private-key" env:"RUCIO_BOT_PRIVATE_KEY" help:"${help_private_key}"`
	Token      string           `name:"token" env:"GITHUB_TOKEN" help:"${help_token}"`
	StaleDays  int              `name:"stale-days" default:"14" help:"${help_stale_days}"`
	StatsdAddr string           `name:"statsd-addr" help:"${help_statsd_addr}"`
	LogLevel   logging.LogLevel `name:"log-level" default:"info" help:"${help_log_level}"`
}

func (cmd *RunCmd) Run(cliCtx *Context) error {
	logger, err := logging.NewLoggerFromLevel(cmd.LogLevel)
	if err != nil {
		return errors.Wrap(err, "initializing logger")
	}
	defer logger.Close() //nolint:errcheck

	repo, err := models.NewRepo(cmd.Repo)
	if err != nil {
		return err
	}

	privateKey, err := resolvePrivateKey(cmd.PrivateKey)
	if err != nil {
		return err
	}

	ctx := context.Background()
	client, err := githubprovider.NewClient(ctx, githubprovider.Credentials{
		AppID:      cmd.AppID,
		PrivateKey: privateKey,
		Token:      cmd.Token,
		UserAgent:  fmt.Sprintf("ruciobot/%s", cliCtx.Version),
	}, repo, logger)
	if err != nil {
		return errors.Wrap(err, "authenticating with github")
	}

	scope, closer, err := metrics.NewScope(metricsNamespace, cmd.StatsdAddr)
	if err != nil {
		return errors.Wrap(err, "initializing metrics")
	}
	defer closer.Close() //nolint:errcheck

	check, err := checks.NewCheck(cmd.Check, checks.Deps{
		CheckRuns:     &githubprovider.CheckRunsFetcher{Client: client},
		Logger:        logger,
		StaleWarnDays: cmd.StaleDays,
	})
	if err != nil {
		return err
	}

	runner := checks.NewRunner(
		&githubprovider.PullLister{Client: client},
		&githubprovider.SnapshotBuilder{Client: client},
		&githubprovider.ActionExecutor{Client: client},
		check,
		logger,
		scope,
	)
	return runner.Run(ctx, repo)
}

// resolvePrivateKey accepts either the key material itself or a path to a
// file holding it.
func resolvePrivateKey(key string) (string, error) {
	if key == "" {
		return "", nil
	}
	if info, err := os.Stat(key); err == nil && !info.IsDir() {
		contents, err := os.ReadFile(key)
		if err != nil {
			return "", errors.Wrapf(err, "reading private key file %s", key)
		}
		return string(contents), nil
	}
	return key, nil
}
