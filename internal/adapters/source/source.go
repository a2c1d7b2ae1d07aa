// Package source implements core.MemberSource backends. Every call goes back
// to the backing store; nothing is cached between requests.
package source

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dkeye/webring/internal/config"
	"github.com/dkeye/webring/internal/core"
)

const (
	KindStatic = "static"
	KindFile   = "file"
	KindRemote = "remote"
)

var ErrUnknownKind = errors.New("unknown member source kind")

var fetchSeconds = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: "webring",
		Name:      "source_fetch_seconds",
		Help:      "Time spent loading the member list",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"kind"},
)

func init() {
	prometheus.MustRegister(fetchSeconds)
}

func observe(kind string, start time.Time) {
	fetchSeconds.WithLabelValues(kind).Observe(time.Since(start).Seconds())
}

// New builds the source selected by cfg.Source.Kind.
func New(cfg *config.Config) (core.MemberSource, error) {
	switch cfg.Source.Kind {
	case KindStatic, "":
		return NewStatic(cfg.Members), nil
	case KindFile:
		if cfg.Source.File == "" {
			return nil, fmt.Errorf("source.file is required for %q source", KindFile)
		}
		return NewFile(cfg.Source.File), nil
	case KindRemote:
		if cfg.Source.URL == "" {
			return nil, fmt.Errorf("source.url is required for %q source", KindRemote)
		}
		client := &http.Client{Timeout: cfg.Source.Timeout}
		return NewRemote(cfg.Source.URL, cfg.Source.Path, client), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, cfg.Source.Kind)
	}
}
