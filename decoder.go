package wavloop

import (
	"fmt"

	"github.com/go-audio/riff"
)

var (
	// ErrFmtChunkNotFound indicates a container without a fmt chunk.
	ErrFmtChunkNotFound = fmt.Errorf("%w: fmt chunk not found", ErrFormat)
	// ErrPCMChunkNotFound indicates a container without a data chunk.
	ErrPCMChunkNotFound = fmt.Errorf("%w: PCM data chunk not found", ErrFormat)

	errNilFile = fmt.Errorf("%w: nil file", ErrValidation)
)

// Decode parses a whole WAV file held in memory. The returned File owns a copy
// of b.
func Decode(b []byte) (*File, error) {
	c, err := Parse(b)
	if err != nil {
		return nil, err
	}

	return FromContainer(c)
}

// FromContainer interprets the fmt and data chunks of a parsed container. The
// sample buffer aliases the data chunk payload.
func FromContainer(c *Container) (*File, error) {
	fmtChnk := c.Find(riff.FmtID)
	if fmtChnk == nil {
		return nil, ErrFmtChunkNotFound
	}

	format, err := DecodeFmtChunk(fmtChnk.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode fmt chunk: %w", err)
	}

	dataChnk := c.Find(riff.DataFormatID)
	if dataChnk == nil {
		return nil, ErrPCMChunkNotFound
	}

	samples, err := NewSampleBuffer(dataChnk.Data, int(format.BitsPerSample), int(format.NumChannels))
	if err != nil {
		return nil, fmt.Errorf("failed to read PCM data: %w", err)
	}

	return &File{
		container: c,
		format:    format,
		samples:   samples,
	}, nil
}
