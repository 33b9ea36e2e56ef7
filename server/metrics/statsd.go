// Package metrics builds the tally scope used to count bot activity.
package metrics

import (
	"io"
	"strings"
	"time"

	"github.com/cactus/go-statsd-client/statsd"
	"github.com/pkg/errors"
	tally "github.com/uber-go/tally/v4"
	tallystatsd "github.com/uber-go/tally/v4/statsd"
)

const (
	flushInterval = 1 * time.Second
	flushBytes    = 512
	tagSeparator  = ","
)

// NewScope returns a root scope reporting to statsd when addr is set, or a
// noop scope otherwise. The returned closer flushes buffered stats and must
// be closed at the end of the run.
func NewScope(namespace string, addr string) (tally.Scope, io.Closer, error) {
	if addr == "" {
		return tally.NoopScope, io.NopCloser(nil), nil
	}

	client, err := statsd.NewBufferedClient(addr, namespace, flushInterval, flushBytes)
	if err != nil {
		return nil, nil, errors.Wrap(err, "initializing statsd client")
	}

	scope, closer := tally.NewRootScope(tally.ScopeOptions{
		Reporter: &tagReporter{
			StatsReporter: tallystatsd.NewReporter(client, tallystatsd.Options{}),
		},
	}, flushInterval)
	return scope, closer, nil
}

// tagReporter folds scope tags into the metric name, since plain statsd has
// no native tag support.
// https://github.com/influxdata/telegraf/blob/master/plugins/inputs/statsd/README.md#influx-statsd
type tagReporter struct {
	tally.StatsReporter
}

func (r *tagReporter) taggedName(name string, tags map[string]string) string {
	var b strings.Builder
	b.WriteString(name)
	for k, v := range tags {
		b.WriteString(tagSeparator)
		b.WriteString(sanitize(k))
		b.WriteByte('=')
		b.WriteString(sanitize(v))
	}
	return b.String()
}

func (r *tagReporter) ReportCounter(name string, tags map[string]string, value int64) {
	r.StatsReporter.ReportCounter(r.taggedName(name, tags), nil, value)
}

func (r *tagReporter) ReportGauge(name string, tags map[string]string, value float64) {
	r.StatsReporter.ReportGauge(r.taggedName(name, tags), nil, value)
}

func (r *tagReporter) ReportTimer(name string, tags map[string]string, interval time.Duration) {
	r.StatsReporter.ReportTimer(r.taggedName(name, tags), nil, interval)
}

// Replace characters that carry meaning in the statsd line protocol.
func sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '.', ':', '|', '-', '=':
			b.WriteByte('_')
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
