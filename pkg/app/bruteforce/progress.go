package bruteforce

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/deploymenttheory/go-pckbrute/pkg/app"
)

// DefaultProgressInterval is how often the reporter samples the search counters
const DefaultProgressInterval = 500 * time.Millisecond

// ProgressSource exposes the counters a reporter polls
type ProgressSource interface {
	Iterations() uint64
	Found() bool
}

// ProgressReporter polls a running search and forwards snapshots to the context's
// progress callback
type ProgressReporter struct {
	ctx      *app.Context
	source   ProgressSource
	total    uint64
	interval time.Duration
	started  time.Time
}

// NewProgressReporter creates a reporter for a search over total offsets
func NewProgressReporter(ctx *app.Context, source ProgressSource, total int, interval time.Duration) *ProgressReporter {
	if interval <= 0 {
		interval = DefaultProgressInterval
	}
	return &ProgressReporter{
		ctx:      ctx,
		source:   source,
		total:    uint64(total),
		interval: interval,
		started:  time.Now(),
	}
}

// Snapshot returns the current progress
func (p *ProgressReporter) Snapshot() app.ProgressUpdate {
	return app.ProgressUpdate{
		Message:     "searching",
		Completed:   p.source.Iterations(),
		Total:       p.total,
		StartedAt:   p.started,
		ElapsedTime: time.Since(p.started),
	}
}

// Run reports progress every interval until ctx is done or a key has been found
func (p *ProgressReporter) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if p.source.Found() {
				return
			}
			p.ctx.Progress(p.Snapshot())
		}
	}
}

// FormatProgress renders a progress update as a single human-readable line
func FormatProgress(update app.ProgressUpdate) string {
	line := fmt.Sprintf("Searched %s of %s offsets (%.2f%%)",
		humanize.Comma(int64(update.Completed)),
		humanize.Comma(int64(update.Total)),
		update.Percent())

	if rate := update.Rate(); rate > 0 {
		line += fmt.Sprintf(" at %s", humanize.SIWithDigits(rate, 1, "keys/s"))
		if eta := update.ETA(); eta > 0 {
			line += fmt.Sprintf(", ETA %s", eta.Round(time.Second))
		}
	}
	return line
}
