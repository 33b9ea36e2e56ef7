package github

import (
	"context"

	gh "github.com/google/go-github/v45/github"
	"github.com/palantir/go-githubapp/githubapp"
	"github.com/pkg/errors"
	"github.com/rucio/ruciobot/server/events/models"
	"github.com/rucio/ruciobot/server/logging"
)

const (
	v3APIURL = "https://api.github.com/"
	v4APIURL = "https://api.github.com/graphql"
)

// Credentials is the material the bot can authenticate with: a GitHub App
// key pair, a personal access token, or both. App auth is preferred; the
// token is the fallback.
type Credentials struct {
	AppID      int64
	PrivateKey string
	Token      string
	UserAgent  string
}

// NewClient returns a client authenticated for the target repository. With
// App credentials the installation for the repo is auto-discovered; if that
// fails or no App credentials exist, the token path is tried.
func NewClient(ctx context.Context, creds Credentials, repo models.Repo, logger logging.Logger) (*gh.Client, error) {
	var cfg githubapp.Config
	cfg.V3APIURL = v3APIURL
	cfg.V4APIURL = v4APIURL
	cfg.App.IntegrationID = creds.AppID
	cfg.App.PrivateKey = creds.PrivateKey

	creator, err := githubapp.NewDefaultCachingClientCreator(
		cfg,
		githubapp.WithClientUserAgent(creds.UserAgent),
	)
	if err != nil {
		return nil, errors.Wrap(err, "initializing client creator")
	}

	if creds.AppID != 0 && creds.PrivateKey != "" {
		client, err := newInstallationClient(ctx, creator, repo)
		if err == nil {
			return client, nil
		}
		logger.WarnContext(ctx, "app authentication failed, falling back to token auth", map[string]interface{}{
			"err": err.Error(),
		})
	}

	if creds.Token != "" {
		client, err := creator.NewTokenClient(creds.Token)
		return client, errors.Wrap(err, "initializing token client")
	}

	return nil, errors.New("no valid credentials found: provide an app ID and private key, or a token")
}

func newInstallationClient(ctx context.Context, creator githubapp.ClientCreator, repo models.Repo) (*gh.Client, error) {
	appClient, err := creator.NewAppClient()
	if err != nil {
		return nil, errors.Wrap(err, "initializing app client")
	}
	installation, _, err := appClient.Apps.FindRepositoryInstallation(ctx, repo.Owner, repo.Name)
	if err != nil {
		return nil, errors.Wrapf(err, "finding installation for %s", repo.FullName())
	}
	client, err := creator.NewInstallationClient(installation.GetID())
	return client, errors.Wrap(err, "initializing installation client")
}
