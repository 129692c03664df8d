package logreader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeLog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "content_log.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func appendLog(t *testing.T, path, content string) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := f.WriteString(content); err != nil {
		t.Fatal(err)
	}
}

func TestReadTail(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		maxBytes int64
		want     string
	}{
		{
			name:     "whole file when smaller than limit",
			content:  "line one\nline two\n",
			maxBytes: 1024,
			want:     "line one\nline two\n",
		},
		{
			name:     "boundary line discarded",
			content:  "line one\nline two\nline three\n",
			maxBytes: 16, // lands inside "line two"
			want:     "line three\n",
		},
		{
			name:     "limit equal to size keeps first line",
			content:  "alpha\nbeta\n",
			maxBytes: 11,
			want:     "alpha\nbeta\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(writeLog(t, tt.content))
			got, err := r.ReadTail(tt.maxBytes)
			if err != nil {
				t.Fatalf("ReadTail() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ReadTail() = %q, want %q", got, tt.want)
			}
		})
	}
}

// The first returned line must always be complete when the read did not
// start at the beginning of the file.
func TestReadTail_NeverReturnsFragmentFirst(t *testing.T) {
	content := "aaaaaaaaaa\nbbbbbbbbbb\ncccccccccc\ndddddddddd\n"
	r := New(writeLog(t, content))

	for maxBytes := int64(1); maxBytes < int64(len(content)); maxBytes++ {
		got, err := r.ReadTail(maxBytes)
		if err != nil {
			t.Fatalf("ReadTail(%d) error = %v", maxBytes, err)
		}
		if got == "" {
			continue
		}
		first := strings.SplitN(got, "\n", 2)[0]
		if len(first) != 10 {
			t.Errorf("ReadTail(%d) first line %q is a fragment", maxBytes, first)
		}
	}
}

func TestReadTail_MissingFile(t *testing.T) {
	r := New(filepath.Join(t.TempDir(), "nope.txt"))
	got, err := r.ReadTail(1024)
	if err != nil {
		t.Fatalf("ReadTail() error = %v", err)
	}
	if got != "" {
		t.Errorf("ReadTail() = %q, want empty", got)
	}
}

func TestReadFrom(t *testing.T) {
	path := writeLog(t, "first\nsecond\n")
	r := New(path)

	text, cursor, err := r.ReadFrom(0)
	if err != nil {
		t.Fatalf("ReadFrom(0) error = %v", err)
	}
	if text != "first\nsecond\n" {
		t.Errorf("text = %q", text)
	}
	if cursor != 13 {
		t.Errorf("cursor = %d, want 13", cursor)
	}

	// No new data: same cursor back, empty text.
	text, cursor2, err := r.ReadFrom(cursor)
	if err != nil {
		t.Fatalf("ReadFrom(at size) error = %v", err)
	}
	if text != "" || cursor2 != cursor {
		t.Errorf("ReadFrom(at size) = (%q, %d), want (\"\", %d)", text, cursor2, cursor)
	}

	// Appended data picked up from the cursor. A byte offset is never
	// assumed to be a line boundary, so the re-sync rule costs the first
	// appended line even when the cursor happened to sit exactly on one.
	appendLog(t, path, "third\nfourth\n")
	text, cursor3, err := r.ReadFrom(cursor)
	if err != nil {
		t.Fatalf("ReadFrom(after append) error = %v", err)
	}
	if text != "fourth\n" {
		t.Errorf("text = %q, want %q", text, "fourth\n")
	}
	if cursor3 < cursor {
		t.Errorf("cursor went backwards: %d -> %d", cursor, cursor3)
	}
}

func TestReadFrom_MidLineCursorResyncs(t *testing.T) {
	path := writeLog(t, "first\nsecond\nthird\n")
	r := New(path)

	// Cursor inside "second": its remainder is dropped, read resumes at
	// the next full line.
	text, _, err := r.ReadFrom(8)
	if err != nil {
		t.Fatalf("ReadFrom(8) error = %v", err)
	}
	if text != "third\n" {
		t.Errorf("text = %q, want %q", text, "third\n")
	}
}

func TestReadFrom_MissingFile(t *testing.T) {
	r := New(filepath.Join(t.TempDir(), "nope.txt"))
	text, cursor, err := r.ReadFrom(42)
	if err != nil {
		t.Fatalf("ReadFrom() error = %v", err)
	}
	if text != "" || cursor != 42 {
		t.Errorf("ReadFrom() = (%q, %d), want (\"\", 42)", text, cursor)
	}
}

func TestReadFrom_CursorMonotone(t *testing.T) {
	path := writeLog(t, "one\n")
	r := New(path)

	cursor := int64(0)
	for i := 0; i < 5; i++ {
		_, next, err := r.ReadFrom(cursor)
		if err != nil {
			t.Fatal(err)
		}
		if next < cursor {
			t.Fatalf("cursor regressed: %d -> %d", cursor, next)
		}
		st, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if next > st.Size() {
			t.Fatalf("cursor %d past file size %d", next, st.Size())
		}
		cursor = next
		appendLog(t, path, "more data\n")
	}
}

func TestReadTail_ReplacesInvalidUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content_log.txt")
	if err := os.WriteFile(path, []byte("ok\n\xff\xfe bad bytes\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := New(path).ReadTail(1024)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "�") {
		t.Errorf("ReadTail() = %q, want replacement characters for invalid bytes", got)
	}
	if strings.Contains(got, "\xff") {
		t.Errorf("ReadTail() = %q, raw invalid byte leaked through", got)
	}
}
