package ports

import "io"

// ByteSource is the probe byte stream.
//
// Read blocks until at least one byte is available, the stream ends (io.EOF),
// or the source is closed. Chunks carry no framing guarantee: a single Read may
// split or merge logical lines.
//
// Close releases the underlying device handle. It must be safe to call while a
// Read is blocked in another goroutine, and it should make that Read return.
type ByteSource interface {
	io.Reader
	io.Closer
}
