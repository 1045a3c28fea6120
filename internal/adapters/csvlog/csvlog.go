// Package csvlog implements the durable sink as an append-only CSV file.
package csvlog

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/bft-labs/probemon/internal/domain"
	"github.com/bft-labs/probemon/internal/ports"
)

// Header is the first line of every session log.
const Header = "Time,Temperature\n"

const (
	timeLayout       = "15:04:05"
	timeLayoutMillis = "15:04:05.000"
)

// Options controls row formatting.
type Options struct {
	// Millis appends milliseconds to the time column (HH:MM:SS.mmm).
	Millis bool

	// Location converts timestamps before formatting. Defaults to time.Local.
	Location *time.Location
}

// Sink appends one row per reading to a CSV file.
// Every Record is a single write on an O_APPEND descriptor; nothing is
// buffered between readings.
type Sink struct {
	mu     sync.Mutex
	path   string
	file   *os.File
	layout string
	loc    *time.Location
}

// Create creates a new session log at path and writes the header.
// It fails if the file already exists; session logs are never overwritten.
func Create(path string, opts Options) (*Sink, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, &domain.WriteError{Path: path, Err: err}
		}
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, &domain.WriteError{Path: path, Err: err}
	}

	if _, err := f.WriteString(Header); err != nil {
		f.Close()
		return nil, &domain.WriteError{Path: path, Err: err}
	}

	layout := timeLayout
	if opts.Millis {
		layout = timeLayoutMillis
	}
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}

	return &Sink{path: path, file: f, layout: layout, loc: loc}, nil
}

// Record appends reading as "<time>,<value>\n".
func (s *Sink) Record(reading domain.Reading) error {
	row := s.Row(reading)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return &domain.WriteError{Path: s.path, Err: os.ErrClosed}
	}
	if _, err := s.file.Write([]byte(row)); err != nil {
		return &domain.WriteError{Path: s.path, Err: err}
	}
	return nil
}

// Row formats reading as a CSV row including the trailing newline.
func (s *Sink) Row(reading domain.Reading) string {
	return reading.Timestamp.In(s.loc).Format(s.layout) + "," + FormatValue(reading.Value) + "\n"
}

// Close closes the log file. Subsequent Records fail.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}

// Path returns the log file path.
func (s *Sink) Path() string {
	return s.path
}

// FormatValue renders v in the shortest decimal form that round-trips through
// float32, always keeping a fractional part ("65" becomes "65.0").
func FormatValue(v float32) string {
	if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	}
	s := strconv.FormatFloat(float64(v), 'f', -1, 32)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

// SessionPath builds "<dir>/<prefix>_YYYY_MM_DD_HH_MM_SS.csv" for a session
// started at start.
func SessionPath(dir, prefix string, start time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("%s_%s.csv", prefix, start.Format("2006_01_02_15_04_05")))
}

var _ ports.DurableSink = (*Sink)(nil)
