package dashboard

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/onelinechat/onelinechat/server/internal/board"
	"github.com/onelinechat/onelinechat/server/internal/metrics"
)

// DefaultInterval is the tick period used when none is configured.
const DefaultInterval = 125 * time.Millisecond

// Renderer periodically ages the board and draws it to an io.Writer.
type Renderer struct {
	board    *board.Board
	out      io.Writer
	interval time.Duration
	metrics  *metrics.Metrics
}

// New creates a Renderer drawing b to out every interval.
// A non-positive interval means DefaultInterval. m may be nil.
func New(b *board.Board, out io.Writer, interval time.Duration, m *metrics.Metrics) *Renderer {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Renderer{board: b, out: out, interval: interval, metrics: m}
}

// Run ticks until ctx is cancelled.
func (r *Renderer) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.Tick()
		}
	}
}

// Tick performs one Snapshot, Advance, Render cycle.
func (r *Renderer) Tick() {
	snap := r.board.Snapshot()
	r.board.Advance()
	if err := Render(r.out, snap); err != nil {
		slog.Error("dashboard: render failed", "err", err)
		return
	}
	r.metrics.FrameRendered()
}
