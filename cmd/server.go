package cmd

import (
	"github.com/pkg/errors"
	"github.com/rucio/ruciobot/server/controllers/webhook"
	"github.com/rucio/ruciobot/server/logging"
)

type ServerCmd struct {
	Port          int              `name:"port" default:"3000" help:"${help_port}"`
	WebhookSecret string           `name:"webhook-secret" env:"RUCIO_BOT_WEBHOOK_SECRET" help:"${help_webhook_secret}"`
	LogLevel      logging.LogLevel `name:"log-level" default:"info" help:"${help_log_level}"`
}

func (cmd *ServerCmd) Run(_ *Context) error {
	logger, err := logging.NewLoggerFromLevel(cmd.LogLevel)
	if err != nil {
		return errors.Wrap(err, "initializing logger")
	}
	defer logger.Close() //nolint:errcheck

	server := webhook.NewServer(logger, cmd.Port, []byte(cmd.WebhookSecret))
	return server.ListenAndServe()
}
