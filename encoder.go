package wavloop

import (
	"fmt"

	"github.com/go-audio/riff"
)

// NewFile creates a silent PCM file with a fmt and a data chunk.
func NewFile(sampleRate, bitDepth, numChans, numFrames int) (*File, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate %d", ErrFormat, sampleRate)
	}

	if numFrames < 0 {
		return nil, fmt.Errorf("%w: %d frames", ErrValidation, numFrames)
	}

	blockAlign := numChans * bytesPerSample(bitDepth)

	format := &FmtChunk{
		FormatTag:      wavFormatPCM,
		NumChannels:    uint16(numChans),
		SampleRate:     uint32(sampleRate),
		AvgBytesPerSec: uint32(sampleRate * blockAlign),
		BlockAlign:     uint16(blockAlign),
		BitsPerSample:  uint16(bitDepth),
	}

	err := format.validate()
	if err != nil {
		return nil, err
	}

	data := make([]byte, numFrames*blockAlign)

	// 8-bit silence is the unsigned midpoint
	if bitDepth == 8 {
		for i := range data {
			data[i] = pcm8Bias
		}
	}

	c := &Container{
		Form: riff.WavFormatID,
		Chunks: []*Chunk{
			{ID: riff.FmtID, Data: encodeFmtChunk(format)},
			{ID: riff.DataFormatID, Data: data},
		},
	}

	return FromContainer(c)
}

// Encode serializes the file, including any changes made through SetLoop,
// RemoveLoop, Blend or the sample buffer.
func (f *File) Encode() ([]byte, error) {
	if f == nil {
		return nil, errNilFile
	}

	out, err := Serialize(f.container)
	if err != nil {
		return nil, fmt.Errorf("failed to encode: %w", err)
	}

	return out, nil
}
