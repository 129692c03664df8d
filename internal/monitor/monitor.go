// Package monitor drives the download-monitoring loop: one seeding load
// from the log tail, then repeated incremental ticks producing reports.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/steam-tools/steamwatch/internal/contentlog"
	"github.com/steam-tools/steamwatch/internal/logreader"
	"github.com/steam-tools/steamwatch/internal/offset"
	"github.com/steam-tools/steamwatch/internal/report"
)

// ErrLogNotFound reports that the content log did not exist when the
// monitor started. This is fatal for the run: without a log there is
// nothing to seed state from, so no tick happens. A log that vanishes
// later is just the no-new-data steady state.
var ErrLogNotFound = errors.New("content log not found")

// Options tune the monitoring loop.
type Options struct {
	// SeedTailBytes bounds the initial tail read that seeds state.
	SeedTailBytes int64
	// TickTailBytes bounds the per-tick tail re-scan. Steam does not log
	// a rate line every cycle, so each tick re-reads a recent window to
	// keep the rate fresh even when no new bytes arrived.
	TickTailBytes int64
	// Interval is the delay between reports.
	Interval time.Duration
	// ReportCount is the number of reports to produce before stopping.
	ReportCount int
}

// Monitor owns the running download state, the read cursor and the current
// rate reading. It is not safe for concurrent use; ticks are sequential by
// design.
type Monitor struct {
	reader  *logreader.Reader
	offsets offset.Store
	builder *report.Builder
	opts    Options

	state  *contentlog.State
	rate   contentlog.RateReading
	loaded bool
}

// New creates a monitor over the given reader. The offset store carries the
// cursor between ticks.
func New(reader *logreader.Reader, offsets offset.Store, builder *report.Builder, opts Options) *Monitor {
	return &Monitor{
		reader:  reader,
		offsets: offsets,
		builder: builder,
		opts:    opts,
		state:   contentlog.NewState(),
	}
}

// Load performs the one-time seeding read: a bounded tail to populate state
// and rate, with the cursor set to the current file size so the first tick
// resumes from "now" instead of re-processing the seeded window.
func (m *Monitor) Load(ctx context.Context) error {
	st, err := os.Stat(m.reader.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrLogNotFound, m.reader.Path())
		}
		return fmt.Errorf("stat content log: %w", err)
	}

	text, err := m.reader.ReadTail(m.opts.SeedTailBytes)
	if err != nil {
		return fmt.Errorf("seed read: %w", err)
	}
	m.absorb(text)

	if err := m.offsets.Set(ctx, m.reader.Path(), st.Size()); err != nil {
		return fmt.Errorf("store cursor: %w", err)
	}
	m.loaded = true

	log.Info().
		Str("log", m.reader.Path()).
		Int64("cursor", st.Size()).
		Int("apps", m.state.Len()).
		Msg("Seeded state from log tail")
	return nil
}

// Tick performs one monitoring cycle: read new lines from the cursor, merge,
// re-scan a bounded tail window, merge again, then render the report.
// Read failures degrade to an empty chunk; they never abort a run that has
// already loaded.
func (m *Monitor) Tick(ctx context.Context) (time.Time, string, error) {
	if !m.loaded {
		return time.Time{}, "", errors.New("monitor not loaded")
	}

	cursor, err := m.offsets.Get(ctx, m.reader.Path())
	if err != nil {
		return time.Time{}, "", fmt.Errorf("load cursor: %w", err)
	}

	text, newCursor, err := m.reader.ReadFrom(cursor)
	if err != nil {
		log.Warn().Err(err).Msg("Incremental read failed, treating as empty")
	} else if text != "" {
		m.absorb(text)
	}
	if newCursor > cursor {
		if err := m.offsets.Set(ctx, m.reader.Path(), newCursor); err != nil {
			return time.Time{}, "", fmt.Errorf("store cursor: %w", err)
		}
	}

	tail, err := m.reader.ReadTail(m.opts.TickTailBytes)
	if err != nil {
		log.Warn().Err(err).Msg("Tail re-scan failed, treating as empty")
	} else if tail != "" {
		m.absorb(tail)
	}

	now := time.Now()
	body := m.builder.Build(m.state.Apps(), m.rate)

	log.Debug().
		Int64("cursor", newCursor).
		Int("apps", m.state.Len()).
		Float64("rate_mbps", m.rate.Mbps).
		Msg("Tick complete")
	return now, body, nil
}

// absorb parses one chunk and folds it into running state. The rate is
// overwritten wholesale whenever the chunk produced any reading.
func (m *Monitor) absorb(text string) {
	snap, rate := contentlog.ParseChunk(text)
	m.state.Merge(snap)
	if rate.OK {
		m.rate = rate
	}
}

// Run executes the full monitoring loop: load once, then ReportCount ticks.
// The first report is immediate, the rest follow at Interval. The context
// cancels the inter-tick wait.
func (m *Monitor) Run(ctx context.Context, sink report.Sink) error {
	runID := uuid.NewString()
	log.Info().
		Str("run_id", runID).
		Int("reports", m.opts.ReportCount).
		Dur("interval", m.opts.Interval).
		Msg("Monitor starting")

	if err := m.Load(ctx); err != nil {
		return err
	}

	for i := 1; i <= m.opts.ReportCount; i++ {
		if i > 1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(m.opts.Interval):
			}
		}

		now, body, err := m.Tick(ctx)
		if err != nil {
			return fmt.Errorf("tick %d: %w", i, err)
		}

		header := fmt.Sprintf("--- Report %d/%d | %s ---", i, m.opts.ReportCount, now.Format("15:04:05"))
		if err := sink.Write(header, body); err != nil {
			return fmt.Errorf("write report %d: %w", i, err)
		}
	}

	log.Info().Str("run_id", runID).Msg("Monitor finished")
	return nil
}
