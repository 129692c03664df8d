// Package contentlog parses Steam's content_log.txt into download state.
package contentlog

import (
	"regexp"
	"strconv"
	"strings"
)

// EventKind identifies the variant of a classified log line.
type EventKind int

const (
	// KindRate is a "Current download rate" line.
	KindRate EventKind = iota
	// KindCompletion marks a download as fully installed or finished.
	KindCompletion
	// KindProgress carries downloaded/total byte counters.
	KindProgress
	// KindState carries a free-form state transition string.
	KindState
)

// Event is one classified log line. Only the fields relevant to its Kind
// are populated.
type Event struct {
	Kind EventKind

	AppID uint32

	// KindRate
	Mbps float64

	// KindProgress
	Transferred uint64
	Total       uint64

	// KindState: the text after "state changed:" kept verbatim for
	// keyword inspection during folding.
	StateText string
}

var (
	reTimestamp = regexp.MustCompile(`^\[(\d{4}-\d{2}-\d{2}\s+\d{2}:\d{2}:\d{2})\]\s*(.*)$`)

	reCurrentRate = regexp.MustCompile(`(?i)Current download rate:\s*([\d.]+)\s*Mbps`)

	reFullyInstalled = regexp.MustCompile(`(?i)AppID\s+(\d+)\s+.*Fully Installed`)
	reFinishedUpdate = regexp.MustCompile(`(?i)AppID\s+(\d+)\s+finished update`)

	reDownloadStart   = regexp.MustCompile(`(?i)Starting update AppID\s+(\d+)\s*:\s*download\s+(\d+)\s*/\s*(\d+)`)
	reDownloadStarted = regexp.MustCompile(`(?i)AppID\s+(\d+)\s+update started\s*:\s*download\s+(\d+)\s*/\s*(\d+)`)

	reStateChanged    = regexp.MustCompile(`(?i)AppID\s+(\d+)\s+state changed\s*:\s*(.+)`)
	reAppUpdateChange = regexp.MustCompile(`(?i)AppID\s+(\d+)\s+App update changed\s*:\s*(.+)`)
)

// classifiers are tried in fixed priority order; the first match wins.
// Order matters: a rate line must never be mistaken for a state line.
var classifiers = []func(rest string) (Event, bool){
	classifyRate,
	classifyCompletion,
	classifyProgress,
	classifyState,
}

// Classify turns one log line into a typed event. Lines without the leading
// timestamp prefix, and timestamped lines matching no known pattern, return
// ok=false. That is the normal case for most of the log's traffic.
func Classify(line string) (Event, bool) {
	m := reTimestamp.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return Event{}, false
	}
	rest := m[2]

	for _, classify := range classifiers {
		if ev, ok := classify(rest); ok {
			return ev, true
		}
	}
	return Event{}, false
}

func classifyRate(rest string) (Event, bool) {
	m := reCurrentRate.FindStringSubmatch(rest)
	if m == nil {
		return Event{}, false
	}
	mbps, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Event{}, false
	}
	return Event{Kind: KindRate, Mbps: mbps}, true
}

func classifyCompletion(rest string) (Event, bool) {
	m := reFullyInstalled.FindStringSubmatch(rest)
	if m == nil {
		m = reFinishedUpdate.FindStringSubmatch(rest)
	}
	if m == nil {
		return Event{}, false
	}
	id, err := parseAppID(m[1])
	if err != nil {
		return Event{}, false
	}
	return Event{Kind: KindCompletion, AppID: id}, true
}

func classifyProgress(rest string) (Event, bool) {
	m := reDownloadStart.FindStringSubmatch(rest)
	if m == nil {
		m = reDownloadStarted.FindStringSubmatch(rest)
	}
	if m == nil {
		return Event{}, false
	}
	id, err := parseAppID(m[1])
	if err != nil {
		return Event{}, false
	}
	transferred, err1 := strconv.ParseUint(m[2], 10, 64)
	total, err2 := strconv.ParseUint(m[3], 10, 64)
	if err1 != nil || err2 != nil {
		return Event{}, false
	}
	return Event{
		Kind:        KindProgress,
		AppID:       id,
		Transferred: transferred,
		Total:       total,
	}, true
}

func classifyState(rest string) (Event, bool) {
	m := reStateChanged.FindStringSubmatch(rest)
	if m == nil {
		m = reAppUpdateChange.FindStringSubmatch(rest)
	}
	if m == nil {
		return Event{}, false
	}
	id, err := parseAppID(m[1])
	if err != nil {
		return Event{}, false
	}
	return Event{Kind: KindState, AppID: id, StateText: m[2]}, true
}

func parseAppID(s string) (uint32, error) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(id), nil
}
