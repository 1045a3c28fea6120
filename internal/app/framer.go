package app

import (
	"bytes"
	"fmt"

	"github.com/bft-labs/probemon/internal/domain"
)

// Delimiter terminates every logical line in the probe stream.
var Delimiter = []byte("\r\n")

// Framer turns an unbounded byte stream into CRLF-delimited lines.
//
// The first logical line after the stream starts is always discarded: the
// source may have been opened mid-transmission, so it can be a truncated
// artifact. Empty lines after it carry no reading and are dropped. Chunk
// boundaries never affect the produced lines.
type Framer struct {
	buf     []byte
	heads   bool
	maxLine int
}

// NewFramer creates a Framer. maxLineBytes caps the bytes buffered without a
// delimiter; zero leaves the buffer unbounded.
func NewFramer(maxLineBytes int) *Framer {
	return &Framer{heads: true, maxLine: maxLineBytes}
}

// Feed appends chunk to the line buffer and returns every line completed by
// it, in stream order. Bytes after the last delimiter stay buffered for the
// next call. Returns ErrFramingOverrun if the retained bytes exceed the cap.
func (f *Framer) Feed(chunk []byte) ([]string, error) {
	f.buf = append(f.buf, chunk...)

	// Only the rightmost split point matters: everything before it drains at once.
	split := bytes.LastIndex(f.buf, Delimiter)
	if split < 0 {
		return nil, f.checkOverrun()
	}

	parts := bytes.Split(f.buf[:split], Delimiter)
	if f.heads {
		parts = parts[1:]
		f.heads = false
	}

	var lines []string
	for _, p := range parts {
		if len(p) == 0 {
			continue
		}
		lines = append(lines, string(p))
	}

	f.buf = append(f.buf[:0], f.buf[split+len(Delimiter):]...)
	return lines, f.checkOverrun()
}

func (f *Framer) checkOverrun() error {
	if f.maxLine > 0 && len(f.buf) > f.maxLine {
		return fmt.Errorf("%w: %d bytes buffered without delimiter (cap %d)",
			domain.ErrFramingOverrun, len(f.buf), f.maxLine)
	}
	return nil
}

// Buffered returns the number of bytes waiting for a delimiter.
func (f *Framer) Buffered() int {
	return len(f.buf)
}

// Primed reports whether the leading partial line has been discarded yet.
func (f *Framer) Primed() bool {
	return !f.heads
}
