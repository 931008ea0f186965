package report

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/de-tools/ledger-atlas/pkg/models/domain"
)

var ErrSuperseded = errors.New("report superseded by a newer request")

type inflight struct {
	id     uint64
	cancel context.CancelFunc
}

// Coordinator keeps at most one live build per session key: a newer request for the same key
// cancels the older one, and the older caller gets ErrSuperseded instead of a stale report.
type Coordinator struct {
	builder Builder

	mu       sync.Mutex
	seq      uint64
	sessions map[string]inflight
}

func NewCoordinator(builder Builder) *Coordinator {
	return &Coordinator{
		builder:  builder,
		sessions: make(map[string]inflight),
	}
}

// Run builds a report for key. An empty key is not coordinated.
func (c *Coordinator) Run(ctx context.Context, key string, rng domain.DateRange) (*domain.FinancialReport, error) {
	if key == "" {
		return c.builder.Build(ctx, rng)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	c.mu.Lock()
	c.seq++
	id := c.seq
	if prev, ok := c.sessions[key]; ok {
		prev.cancel()
	}
	c.sessions[key] = inflight{id: id, cancel: cancel}
	c.mu.Unlock()

	report, err := c.builder.Build(ctx, rng)

	c.mu.Lock()
	latest := c.sessions[key].id == id
	if latest {
		delete(c.sessions, key)
	}
	c.mu.Unlock()

	if !latest {
		zerolog.Ctx(ctx).Debug().Str("session", key).Msg("discarding superseded report")
		return nil, ErrSuperseded
	}
	return report, err
}
