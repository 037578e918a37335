package wavloop

import (
	"encoding/binary"
	"fmt"
)

// smpl chunk is documented here:
// https://sites.google.com/site/musicgapi/technical-documents/wav-file-format#smpl
//
// The chunk is only decoded for display. Loops set by this package live in the
// cue and adtl chunks; a smpl chunk is carried through unchanged.

const (
	smplHeaderSize = 36
	smplLoopSize   = 24
)

// SamplerInfo is extra metadata pertinent to a sampler type usage.
type SamplerInfo struct {
	Manufacturer      [4]byte
	Product           [4]byte
	SamplePeriod      uint32
	MIDIUnityNote     uint32
	MIDIPitchFraction uint32
	SMPTEFormat       uint32
	SMPTEOffset       uint32
	NumSampleLoops    uint32
	SamplerDataSize   uint32
	Loops             []SampleLoop
}

// SampleLoop indicates a loop and its properties within the audio file.
type SampleLoop struct {
	CuePointID uint32
	// Type is 0 forward, 1 ping pong, 2 backward.
	Type      uint32
	Start     uint32
	End       uint32
	Fraction  uint32
	PlayCount uint32
}

// DecodeSamplerChunk parses the payload of a smpl chunk.
func DecodeSamplerChunk(data []byte) (*SamplerInfo, error) {
	if len(data) < smplHeaderSize {
		return nil, fmt.Errorf("%w: smpl chunk of %d bytes", ErrCorruptData, len(data))
	}

	info := &SamplerInfo{
		SamplePeriod:      binary.LittleEndian.Uint32(data[8:12]),
		MIDIUnityNote:     binary.LittleEndian.Uint32(data[12:16]),
		MIDIPitchFraction: binary.LittleEndian.Uint32(data[16:20]),
		SMPTEFormat:       binary.LittleEndian.Uint32(data[20:24]),
		SMPTEOffset:       binary.LittleEndian.Uint32(data[24:28]),
		NumSampleLoops:    binary.LittleEndian.Uint32(data[28:32]),
		SamplerDataSize:   binary.LittleEndian.Uint32(data[32:36]),
	}
	copy(info.Manufacturer[:], data[0:4])
	copy(info.Product[:], data[4:8])

	if smplHeaderSize+uint64(info.NumSampleLoops)*smplLoopSize > uint64(len(data)) {
		return nil, fmt.Errorf("%w: smpl chunk declares %d loops in %d bytes",
			ErrCorruptData, info.NumSampleLoops, len(data))
	}

	for i := range int(info.NumSampleLoops) {
		entry := data[smplHeaderSize+i*smplLoopSize:]

		info.Loops = append(info.Loops, SampleLoop{
			CuePointID: binary.LittleEndian.Uint32(entry[0:4]),
			Type:       binary.LittleEndian.Uint32(entry[4:8]),
			Start:      binary.LittleEndian.Uint32(entry[8:12]),
			End:        binary.LittleEndian.Uint32(entry[12:16]),
			Fraction:   binary.LittleEndian.Uint32(entry[16:20]),
			PlayCount:  binary.LittleEndian.Uint32(entry[20:24]),
		})
	}

	return info, nil
}
