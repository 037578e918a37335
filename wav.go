package wavloop

import (
	"errors"
	"math"
	"time"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Error kinds. Every error returned by this package wraps at least one of them
// and can be matched with errors.Is.
var (
	// ErrFormat indicates the input is not a RIFF/WAVE container or uses an
	// encoding other than integer PCM.
	ErrFormat = errors.New("unsupported or invalid format")
	// ErrCorruptData indicates declared lengths that disagree with the actual
	// buffer size.
	ErrCorruptData = errors.New("corrupt data")
	// ErrValidation indicates invalid loop bounds or an out of range blend window.
	ErrValidation = errors.New("validation failed")
	// ErrSerializationLimit indicates a chunk too large for a 32-bit length field.
	ErrSerializationLimit = errors.New("serialization limit exceeded")
)

// MinAudibleFrequency is the lowest frequency, in Hz, assumed to be audible.
// The default blend window spans one period of it.
const MinAudibleFrequency = 50

// nullTermStr decodes a zero terminated RIFF text field. Text that is not
// valid UTF-8 is read as Windows-1252, the usual encoding of INFO and adtl text.
func nullTermStr(b []byte) string {
	b = b[:clen(b)]
	if utf8.Valid(b) {
		return string(b)
	}

	out, err := charmap.Windows1252.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}

	return string(out)
}

func clen(num []byte) int {
	for i := range num {
		if num[i] == 0 {
			return i
		}
	}

	return len(num)
}

func samplesNumFromDuration(dur time.Duration, sampleRate int) int {
	if sampleRate <= 0 {
		return 0
	}

	return int(math.Round(dur.Seconds() * float64(sampleRate)))
}

func framesDuration(frames, sampleRate int) time.Duration {
	if sampleRate <= 0 {
		return 0
	}

	return time.Duration(frames) * time.Second / time.Duration(sampleRate)
}
