package report

import (
	"fmt"
	"io"
)

// Sink receives rendered report blocks, one per tick.
type Sink interface {
	Write(header, body string) error
}

// WriterSink writes report blocks to an io.Writer, header first, with a
// blank line after each block.
type WriterSink struct {
	w io.Writer
}

// NewWriterSink creates a sink backed by w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// Write outputs one report block.
func (s *WriterSink) Write(header, body string) error {
	if _, err := fmt.Fprintln(s.w, header); err != nil {
		return err
	}
	if _, err := io.WriteString(s.w, body); err != nil {
		return err
	}
	_, err := fmt.Fprintln(s.w)
	return err
}
