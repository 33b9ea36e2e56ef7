package checks

import (
	"testing"

	"github.com/rucio/ruciobot/server/logging"
	"github.com/stretchr/testify/assert"
)

func TestNewCheck(t *testing.T) {
	deps := Deps{
		CheckRuns: &fakeCheckRunsFetcher{},
		Logger:    logging.NewNoopCtxLogger(t),
	}
	for _, name := range Names() {
		check, err := NewCheck(name, deps)
		assert.NoError(t, err)
		assert.Equal(t, name, check.Name())
	}

	_, err := NewCheck("nonexistent", deps)
	assert.Error(t, err)
}

func TestNewCheck_StaleDaysOverride(t *testing.T) {
	check, err := NewCheck("stale", Deps{StaleWarnDays: 30})
	assert.NoError(t, err)
	assert.Equal(t, 30, check.(*StaleCheck).cfg.WarnDays)
}
