package wavloop

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/go-audio/audio"
)

const (
	wavFormatPCM        = 1
	wavFormatExtensible = 0xFFFE

	fmtChunkMinSize   = 16
	fmtExtensibleSize = 22

	ksSubFormatGUIDTail0  = 0x00
	ksSubFormatGUIDTail1  = 0x00
	ksSubFormatGUIDTail2  = 0x10
	ksSubFormatGUIDTail3  = 0x00
	ksSubFormatGUIDTail4  = 0x80
	ksSubFormatGUIDTail5  = 0x00
	ksSubFormatGUIDTail6  = 0x00
	ksSubFormatGUIDTail7  = 0xAA
	ksSubFormatGUIDTail8  = 0x00
	ksSubFormatGUIDTail9  = 0x38
	ksSubFormatGUIDTail10 = 0x9B
	ksSubFormatGUIDTail11 = 0x71
)

// FmtChunk stores the parsed WAV fmt chunk, including extensible metadata.
type FmtChunk struct {
	FormatTag      uint16
	NumChannels    uint16
	SampleRate     uint32
	AvgBytesPerSec uint32
	BlockAlign     uint16
	BitsPerSample  uint16
	ExtraData      []byte
	Extensible     *FmtExtensible
}

// FmtExtensible stores WAVE_FORMAT_EXTENSIBLE extra fields.
type FmtExtensible struct {
	ValidBitsPerSample uint16
	ChannelMask        uint32
	SubFormat          [16]byte
	ExtraData          []byte
}

func (f *FmtChunk) Clone() *FmtChunk {
	if f == nil {
		return nil
	}

	out := *f

	out.ExtraData = append([]byte(nil), f.ExtraData...)
	if f.Extensible != nil {
		ext := *f.Extensible
		ext.ExtraData = append([]byte(nil), f.Extensible.ExtraData...)
		out.Extensible = &ext
	}

	return &out
}

// EffectiveFormatTag resolves WAVE_FORMAT_EXTENSIBLE to its sub-format tag.
func (f *FmtChunk) EffectiveFormatTag() uint16 {
	if f == nil {
		return 0
	}

	if f.FormatTag == wavFormatExtensible && f.Extensible != nil {
		return binary.LittleEndian.Uint16(f.Extensible.SubFormat[:2])
	}

	return f.FormatTag
}

// BytesPerSample is the storage size of one sample of one channel.
func (f *FmtChunk) BytesPerSample() int {
	return bytesPerSample(int(f.BitsPerSample))
}

// AudioFormat returns the go-audio description of the stream.
func (f *FmtChunk) AudioFormat() *audio.Format {
	return &audio.Format{
		NumChannels: int(f.NumChannels),
		SampleRate:  int(f.SampleRate),
	}
}

// validate enforces integer PCM at 8, 16, 24 or 32 bits.
func (f *FmtChunk) validate() error {
	tag := f.EffectiveFormatTag()
	if tag != wavFormatPCM {
		return fmt.Errorf("%w: format tag 0x%04X is not integer PCM", ErrFormat, tag)
	}

	if f.FormatTag == wavFormatExtensible {
		want := makeSubFormatGUID(wavFormatPCM)
		if !bytes.Equal(f.Extensible.SubFormat[2:], want[2:]) {
			return fmt.Errorf("%w: unknown extensible sub-format GUID", ErrFormat)
		}
	}

	switch f.BitsPerSample {
	case 8, 16, 24, 32:
	default:
		return fmt.Errorf("%w: %d bits per sample", ErrFormat, f.BitsPerSample)
	}

	if f.NumChannels == 0 {
		return fmt.Errorf("%w: zero channels", ErrFormat)
	}

	if want := int(f.NumChannels) * f.BytesPerSample(); int(f.BlockAlign) != want {
		return fmt.Errorf("%w: block align %d, expected %d", ErrFormat, f.BlockAlign, want)
	}

	return nil
}

// DecodeFmtChunk parses the payload of a fmt chunk and rejects anything but
// integer PCM.
func DecodeFmtChunk(data []byte) (*FmtChunk, error) {
	if len(data) < fmtChunkMinSize {
		return nil, fmt.Errorf("%w: fmt chunk is %d bytes, need %d", ErrCorruptData, len(data), fmtChunkMinSize)
	}

	fmtChunk := &FmtChunk{
		FormatTag:      binary.LittleEndian.Uint16(data[0:2]),
		NumChannels:    binary.LittleEndian.Uint16(data[2:4]),
		SampleRate:     binary.LittleEndian.Uint32(data[4:8]),
		AvgBytesPerSec: binary.LittleEndian.Uint32(data[8:12]),
		BlockAlign:     binary.LittleEndian.Uint16(data[12:14]),
		BitsPerSample:  binary.LittleEndian.Uint16(data[14:16]),
	}

	if len(data) >= fmtChunkMinSize+2 {
		extraSize := int(binary.LittleEndian.Uint16(data[16:18]))
		if fmtChunkMinSize+2+extraSize > len(data) {
			return nil, fmt.Errorf("%w: fmt extension declares %d bytes", ErrCorruptData, extraSize)
		}

		fmtChunk.ExtraData = append([]byte(nil), data[18:18+extraSize]...)
	}

	if fmtChunk.FormatTag == wavFormatExtensible {
		if len(fmtChunk.ExtraData) < fmtExtensibleSize {
			return nil, fmt.Errorf("%w: extensible fmt chunk without sub-format", ErrFormat)
		}

		ext := &FmtExtensible{
			ValidBitsPerSample: binary.LittleEndian.Uint16(fmtChunk.ExtraData[0:2]),
			ChannelMask:        binary.LittleEndian.Uint32(fmtChunk.ExtraData[2:6]),
		}
		copy(ext.SubFormat[:], fmtChunk.ExtraData[6:22])

		if len(fmtChunk.ExtraData) > fmtExtensibleSize {
			ext.ExtraData = append(ext.ExtraData, fmtChunk.ExtraData[fmtExtensibleSize:]...)
		}

		fmtChunk.Extensible = ext
	}

	err := fmtChunk.validate()
	if err != nil {
		return nil, err
	}

	return fmtChunk, nil
}

// encodeFmtChunk writes a canonical PCM fmt payload.
func encodeFmtChunk(f *FmtChunk) []byte {
	buf := make([]byte, fmtChunkMinSize)
	binary.LittleEndian.PutUint16(buf[0:2], f.FormatTag)
	binary.LittleEndian.PutUint16(buf[2:4], f.NumChannels)
	binary.LittleEndian.PutUint32(buf[4:8], f.SampleRate)
	binary.LittleEndian.PutUint32(buf[8:12], f.AvgBytesPerSec)
	binary.LittleEndian.PutUint16(buf[12:14], f.BlockAlign)
	binary.LittleEndian.PutUint16(buf[14:16], f.BitsPerSample)

	return buf
}

func makeSubFormatGUID(formatTag uint16) [16]byte {
	var guid [16]byte
	binary.LittleEndian.PutUint32(guid[:4], uint32(formatTag))
	guid[4] = ksSubFormatGUIDTail0
	guid[5] = ksSubFormatGUIDTail1
	guid[6] = ksSubFormatGUIDTail2
	guid[7] = ksSubFormatGUIDTail3
	guid[8] = ksSubFormatGUIDTail4
	guid[9] = ksSubFormatGUIDTail5
	guid[10] = ksSubFormatGUIDTail6
	guid[11] = ksSubFormatGUIDTail7
	guid[12] = ksSubFormatGUIDTail8
	guid[13] = ksSubFormatGUIDTail9
	guid[14] = ksSubFormatGUIDTail10
	guid[15] = ksSubFormatGUIDTail11

	return guid
}

func bytesPerSample(bitDepth int) int {
	return (bitDepth-1)/8 + 1
}
