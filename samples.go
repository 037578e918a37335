package wavloop

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-audio/audio"
)

// pcm8Bias re-centres unsigned 8-bit samples around zero.
const pcm8Bias = 128

// SampleBuffer is a frame/channel view over interleaved PCM bytes. It does not
// copy: writes go straight into the underlying data chunk payload.
type SampleBuffer struct {
	data     []byte
	bitDepth int
	numChans int
	stride   int
}

// NewSampleBuffer wraps the payload of a data chunk. The payload length must be
// a whole number of frames.
func NewSampleBuffer(data []byte, bitDepth, numChans int) (*SampleBuffer, error) {
	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d bits per sample", ErrFormat, bitDepth)
	}

	if numChans < 1 {
		return nil, fmt.Errorf("%w: %d channels", ErrFormat, numChans)
	}

	stride := bytesPerSample(bitDepth) * numChans
	if len(data)%stride != 0 {
		return nil, fmt.Errorf("%w: data chunk of %d bytes is not a multiple of the %d byte frame size",
			ErrCorruptData, len(data), stride)
	}

	return &SampleBuffer{
		data:     data,
		bitDepth: bitDepth,
		numChans: numChans,
		stride:   stride,
	}, nil
}

// NumFrames returns the number of frames in the buffer.
func (b *SampleBuffer) NumFrames() int {
	if b == nil {
		return 0
	}

	return len(b.data) / b.stride
}

// NumChannels returns the number of interleaved channels.
func (b *SampleBuffer) NumChannels() int {
	return b.numChans
}

// BitDepth returns the bits per sample.
func (b *SampleBuffer) BitDepth() int {
	return b.bitDepth
}

// Bytes returns the raw interleaved PCM bytes.
func (b *SampleBuffer) Bytes() []byte {
	return b.data
}

// Sample returns the signed value of one channel of one frame. 8-bit samples
// are returned centred on zero.
func (b *SampleBuffer) Sample(frame, ch int) int {
	off := b.offset(frame, ch)

	switch b.bitDepth {
	case 8:
		return int(b.data[off]) - pcm8Bias
	case 16:
		return int(int16(binary.LittleEndian.Uint16(b.data[off:])))
	case 24:
		return int(audio.Int24LETo32(b.data[off : off+3]))
	default:
		return int(int32(binary.LittleEndian.Uint32(b.data[off:])))
	}
}

// SetSample stores v, saturating it to the range of the bit depth.
func (b *SampleBuffer) SetSample(frame, ch, v int) {
	off := b.offset(frame, ch)
	v = saturate(v, b.bitDepth)

	switch b.bitDepth {
	case 8:
		b.data[off] = byte(v + pcm8Bias)
	case 16:
		binary.LittleEndian.PutUint16(b.data[off:], uint16(int16(v)))
	case 24:
		copy(b.data[off:off+3], audio.Int32toInt24LEBytes(int32(v)))
	default:
		binary.LittleEndian.PutUint32(b.data[off:], uint32(int32(v)))
	}
}

// IntBuffer copies the samples into a go-audio buffer. 8-bit values are
// centred on zero like Sample.
func (b *SampleBuffer) IntBuffer(sampleRate int) *audio.IntBuffer {
	out := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: b.numChans, SampleRate: sampleRate},
		SourceBitDepth: b.bitDepth,
		Data:           make([]int, b.NumFrames()*b.numChans),
	}

	for i := range out.Data {
		out.Data[i] = b.Sample(i/b.numChans, i%b.numChans)
	}

	return out
}

// Float32Buffer copies the samples into a go-audio buffer normalized to [-1, 1).
func (b *SampleBuffer) Float32Buffer(sampleRate int) *audio.Float32Buffer {
	out := &audio.Float32Buffer{
		Format:         &audio.Format{NumChannels: b.numChans, SampleRate: sampleRate},
		SourceBitDepth: b.bitDepth,
		Data:           make([]float32, b.NumFrames()*b.numChans),
	}

	scale := float64(audio.IntMaxSignedValue(b.bitDepth)) + 1
	for i := range out.Data {
		out.Data[i] = float32(float64(b.Sample(i/b.numChans, i%b.numChans)) / scale)
	}

	return out
}

func (b *SampleBuffer) offset(frame, ch int) int {
	return frame*b.stride + ch*bytesPerSample(b.bitDepth)
}

// quantize rounds half away from zero and saturates to the bit depth.
func quantize(v float64, bitDepth int) int {
	r := math.Round(v)
	maxVal := float64(audio.IntMaxSignedValue(bitDepth))

	if r > maxVal {
		return int(maxVal)
	}

	if r < -maxVal-1 {
		return int(-maxVal - 1)
	}

	return int(r)
}

func saturate(v, bitDepth int) int {
	maxVal := audio.IntMaxSignedValue(bitDepth)

	if v > maxVal {
		return maxVal
	}

	if v < -maxVal-1 {
		return -maxVal - 1
	}

	return v
}
