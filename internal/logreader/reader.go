// Package logreader reads a growing, line-oriented log file written by an
// uncoordinated external process. Every read is a best-effort snapshot: the
// writer is never locked out, so a read may land mid-line and the trailing
// line may be torn. Both read modes re-synchronize to the next full line
// whenever they start at a nonzero offset.
package logreader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
)

// Reader provides two read modes against one log file: a bounded tail read
// and a resumable read from a byte offset. It holds no open file handle
// between calls, so the file vanishing and reappearing between reads needs
// no special recovery.
type Reader struct {
	path string
}

// New returns a reader for the log file at path.
func New(path string) *Reader {
	return &Reader{path: path}
}

// Path returns the log file path this reader targets.
func (r *Reader) Path() string {
	return r.path
}

// ReadTail reads at most maxBytes from the end of the file. When the read
// does not start at the beginning of the file, the first (possibly partial)
// line at the boundary is discarded. A missing file yields empty text.
func (r *Reader) ReadTail(maxBytes int64) (string, error) {
	f, size, err := r.open()
	if err != nil {
		return "", err
	}
	if f == nil {
		return "", nil
	}
	defer f.Close()

	start := size - maxBytes
	if start < 0 {
		start = 0
	}

	text, err := readLinesFrom(f, start)
	if err != nil {
		return "", fmt.Errorf("tail %s: %w", r.path, err)
	}
	return text, nil
}

// ReadFrom reads from cursor to end of file and returns the text plus the
// new cursor. A cursor at or past the current size means no new data: empty
// text, cursor unchanged. The returned cursor is the file size observed
// before reading, so it never moves backwards while the file only grows.
// A missing file also yields empty text with the cursor unchanged.
func (r *Reader) ReadFrom(cursor int64) (string, int64, error) {
	f, size, err := r.open()
	if err != nil {
		return "", cursor, err
	}
	if f == nil {
		return "", cursor, nil
	}
	defer f.Close()

	if cursor >= size {
		return "", cursor, nil
	}

	text, err := readLinesFrom(f, cursor)
	if err != nil {
		return "", cursor, fmt.Errorf("read %s from %d: %w", r.path, cursor, err)
	}
	return text, size, nil
}

// open opens the log file and stats it. A file that does not exist is the
// no-new-data steady state, not an error: both return values are nil/zero.
func (r *Reader) open() (*os.File, int64, error) {
	f, err := os.Open(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debug().Str("path", r.path).Msg("Log file not present, treating as empty")
			return nil, 0, nil
		}
		return nil, 0, fmt.Errorf("open %s: %w", r.path, err)
	}

	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, fmt.Errorf("stat %s: %w", r.path, err)
	}
	return f, st.Size(), nil
}

// readLinesFrom seeks to start and reads to end of file. A nonzero start is
// never assumed to be a line boundary: the remainder of the line it lands in
// is discarded first.
func readLinesFrom(f *os.File, start int64) (string, error) {
	if _, err := f.Seek(start, io.SeekStart); err != nil {
		return "", fmt.Errorf("seek: %w", err)
	}

	br := bufio.NewReader(f)
	if start > 0 {
		if _, err := br.ReadString('\n'); err != nil {
			if err == io.EOF {
				return "", nil
			}
			return "", fmt.Errorf("skip partial line: %w", err)
		}
	}

	data, err := io.ReadAll(br)
	if err != nil {
		return "", fmt.Errorf("read: %w", err)
	}
	return strings.ToValidUTF8(string(data), "�"), nil
}
