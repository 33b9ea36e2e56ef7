package cmd

import (
	"fmt"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/rucio/ruciobot/server/events/checks"
)

type Context struct {
	Version string
}

type VersionCmd struct{}

func (cmd *VersionCmd) Run(ctx *Context) error {
	fmt.Printf("ruciobot %s\n", ctx.Version)
	return nil
}

var CLI struct {
	Version VersionCmd `cmd:"version" help:"Print the current ruciobot version"`
	Run     RunCmd     `cmd:"run" help:"Run one maintenance check against one repository"`
	Server  ServerCmd  `cmd:"server" help:"Start the webhook stub server"`
}

var FlagsVars = kong.Vars{
	"check_names": strings.Join(checks.Names(), ","),
	"help_check":  "Which maintenance check to run.",
	"help_repo":   "Target repository in owner/name form (e.g. rucio/rucio).",
	"help_app_id": "GitHub App ID. Used together with the private key; the installation " +
		"for the target repository is discovered automatically.",
	"help_private_key": "GitHub App private key, either the literal PEM content or a path to a file.",
	"help_token": "Personal access token or Actions token. Used when App credentials are " +
		"absent or fail to authenticate.",
	"help_stale_days": "Days of inactivity before a PR is marked stale.",
	"help_statsd_addr": "host:port of a statsd endpoint to report metrics to. " +
		"Metrics are dropped when unset.",
	"help_log_level":      "Log level. Either debug, info, warn, or error.",
	"help_port":           "Port for the webhook stub server to listen on.",
	"help_webhook_secret": "Secret used to validate GitHub webhook signatures. Validation is skipped when unset.",
}
