package report

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/steam-tools/steamwatch/internal/contentlog"
)

// placeholderLabels resolves every ID to its placeholder form, like the real
// resolver does when no manifest is found.
type placeholderLabels struct{}

func (placeholderLabels) AppName(id uint32) string { return fmt.Sprintf("App %d", id) }

func TestBuild(t *testing.T) {
	liveRate := contentlog.RateReading{Mbps: 12.5, OK: true}

	tests := []struct {
		name string
		apps map[uint32]contentlog.TransferState
		rate contentlog.RateReading
		want string
	}{
		{
			name: "empty state",
			apps: map[uint32]contentlog.TransferState{},
			rate: liveRate,
			want: "no active transfers.\n",
		},
		{
			name: "completed app excluded",
			apps: map[uint32]contentlog.TransferState{
				100: {Transferred: 5000, Total: 5000, Active: false, Paused: false},
			},
			rate: liveRate,
			want: "no active transfers.\n",
		},
		{
			name: "one transferring app",
			apps: map[uint32]contentlog.TransferState{
				100: {Active: true},
			},
			rate: liveRate,
			want: "  * App 100\n    status: transferring | rate: 12.50 Mbps\n",
		},
		{
			name: "transferring without a rate reading",
			apps: map[uint32]contentlog.TransferState{
				100: {Active: true},
			},
			rate: contentlog.RateReading{},
			want: "  * App 100\n    status: transferring | rate: —\n",
		},
		{
			name: "zero rate renders as absent",
			apps: map[uint32]contentlog.TransferState{
				100: {Active: true},
			},
			rate: contentlog.RateReading{Mbps: 0, OK: true},
			want: "  * App 100\n    status: transferring | rate: —\n",
		},
		{
			name: "all paused gets leading notice",
			apps: map[uint32]contentlog.TransferState{
				100: {Paused: true},
			},
			rate: liveRate,
			want: "no active transfers.\n  * App 100\n    status: paused | rate: —\n",
		},
		{
			name: "paused flag wins over active",
			apps: map[uint32]contentlog.TransferState{
				100: {Active: true, Paused: true},
			},
			rate: liveRate,
			want: "no active transfers.\n  * App 100\n    status: paused | rate: —\n",
		},
		{
			name: "sorted by id ascending",
			apps: map[uint32]contentlog.TransferState{
				730: {Active: true},
				570: {Paused: true},
				240: {Active: true},
			},
			rate: liveRate,
			want: "  * App 240\n    status: transferring | rate: 12.50 Mbps\n" +
				"  * App 570\n    status: paused | rate: —\n" +
				"  * App 730\n    status: transferring | rate: 12.50 Mbps\n",
		},
	}

	b := NewBuilder(placeholderLabels{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := b.Build(tt.apps, tt.rate)
			if got != tt.want {
				t.Errorf("Build() =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

func TestWriterSink(t *testing.T) {
	var buf bytes.Buffer
	s := NewWriterSink(&buf)

	if err := s.Write("--- Report 1/5 | 10:00:00 ---", "no active transfers.\n"); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "--- Report 1/5 | 10:00:00 ---\n") {
		t.Errorf("output missing header: %q", out)
	}
	if !strings.HasSuffix(out, "no active transfers.\n\n") {
		t.Errorf("output missing body and trailing blank line: %q", out)
	}
}
