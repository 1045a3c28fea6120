package app

import (
	"strconv"
	"time"

	"github.com/bft-labs/probemon/internal/domain"
)

// ParseReading interprets the whole of line as a locale-invariant signed
// decimal float and stamps it with ts.
//
// The line is parsed exactly as framed. Surrounding whitespace is not
// trimmed, so " 65.2" is a parse failure rather than a silently repaired
// sample. Values outside the float32 range are rejected.
func ParseReading(line string, ts time.Time) (domain.Reading, error) {
	v, err := strconv.ParseFloat(line, 32)
	if err != nil {
		return domain.Reading{}, &domain.ParseError{Line: line, Err: err}
	}
	return domain.NewReading(float32(v), ts), nil
}
