package contentlog

import "strings"

// Delta is a sparse per-app field update produced by one parse pass.
// The Has* flags record which field group a chunk actually touched; a field
// group that was never touched must not overwrite running state on merge.
type Delta struct {
	HasProgress bool
	Transferred uint64
	Total       uint64

	HasStatus bool
	Active    bool
	Paused    bool
}

// Snapshot maps AppID to its pending field updates for one chunk.
// An entry with both Has* flags false still records that the app was
// mentioned, which is enough to create it in running state.
type Snapshot map[uint32]Delta

// RateReading is the transfer rate extracted from a chunk. OK is false when
// the chunk contained no rate line at all.
type RateReading struct {
	Mbps float64
	OK   bool
}

// ParseChunk scans a block of log text in file order (oldest line first) and
// folds classified events into a snapshot. Within one chunk, later lines win:
// the scan simply overwrites earlier contributions for the same app.
//
// The returned rate prefers the last nonzero value seen in the chunk; a
// trailing zero-rate line (Steam logs one when a download pauses or drains)
// does not mask an earlier live reading.
func ParseChunk(text string) (Snapshot, RateReading) {
	snap := make(Snapshot)

	var lastRate, lastNonzero RateReading

	for _, line := range strings.Split(text, "\n") {
		ev, ok := Classify(line)
		if !ok {
			continue
		}

		switch ev.Kind {
		case KindRate:
			lastRate = RateReading{Mbps: ev.Mbps, OK: true}
			if ev.Mbps > 0 {
				lastNonzero = lastRate
			}

		case KindCompletion:
			d := snap[ev.AppID]
			d.HasStatus = true
			d.Active = false
			d.Paused = false
			snap[ev.AppID] = d

		case KindProgress:
			d := snap[ev.AppID]
			d.HasProgress = true
			d.Transferred = ev.Transferred
			d.Total = ev.Total
			snap[ev.AppID] = d

		case KindState:
			d := snap[ev.AppID]
			applyStateText(&d, ev.StateText)
			snap[ev.AppID] = d
		}
	}

	if lastNonzero.OK {
		return snap, lastNonzero
	}
	return snap, lastRate
}

// applyStateText folds the verbatim text of a state-change line into a delta.
// Precedence, checked against this line only:
//
//	"Downloading" (exact casing) without "suspended"  -> active, not paused
//	"suspended" (any casing)                          -> paused, not active
//	"Fully Installed" (exact casing)                  -> neither
//	anything else                                     -> no status change
//
// Steam capitalizes the Downloading and Fully Installed status words
// consistently, but "suspended" shows up in mixed case.
func applyStateText(d *Delta, text string) {
	suspended := strings.Contains(strings.ToLower(text), "suspended")

	switch {
	case strings.Contains(text, "Downloading") && !suspended:
		d.HasStatus = true
		d.Active = true
		d.Paused = false
	case suspended:
		d.HasStatus = true
		d.Active = false
		d.Paused = true
	case strings.Contains(text, "Fully Installed"):
		d.HasStatus = true
		d.Active = false
		d.Paused = false
	}
}
