// Package report renders the per-tick download status report.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/steam-tools/steamwatch/internal/contentlog"
)

// NoActiveTransfers is the report body for an empty (or all-paused) state.
const NoActiveTransfers = "no active transfers."

// Labeler resolves an AppID to a display name.
type Labeler interface {
	AppName(id uint32) string
}

// Builder renders running download state into a plain text report block.
type Builder struct {
	labels Labeler
}

// NewBuilder creates a report builder using the given label resolver.
func NewBuilder(labels Labeler) *Builder {
	return &Builder{labels: labels}
}

// Build renders the report. Only apps that are transferring or paused are
// listed, sorted by AppID. Completed apps stay in the state map but never
// appear here. When nothing is transferring, the no-active-transfers notice
// leads the block; when nothing is even paused, it is the whole block.
func (b *Builder) Build(apps map[uint32]contentlog.TransferState, rate contentlog.RateReading) string {
	ids := make([]uint32, 0, len(apps))
	transferring := false
	for id, st := range apps {
		active := st.Active && !st.Paused
		if !active && !st.Paused {
			continue
		}
		ids = append(ids, id)
		if active {
			transferring = true
		}
	}

	if len(ids) == 0 {
		return NoActiveTransfers + "\n"
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var lines []string
	if !transferring {
		lines = append(lines, NoActiveTransfers)
	}

	rateStr := "—"
	if rate.OK && rate.Mbps > 0 {
		rateStr = fmt.Sprintf("%.2f Mbps", rate.Mbps)
	}

	for _, id := range ids {
		st := apps[id]
		status, lineRate := "transferring", rateStr
		if st.Paused {
			status, lineRate = "paused", "—"
		}
		lines = append(lines, fmt.Sprintf("  * %s", b.labels.AppName(id)))
		lines = append(lines, fmt.Sprintf("    status: %s | rate: %s", status, lineRate))
	}

	return strings.Join(lines, "\n") + "\n"
}
