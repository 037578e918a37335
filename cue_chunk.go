package wavloop

import (
	"encoding/binary"
	"fmt"

	"github.com/go-audio/riff"
)

// cue chunk layout:
// https://www.recordingblogs.com/wiki/cue-chunk-of-a-wave-file

const cuePointSize = 24

// CuePoint is one entry of a cue chunk.
type CuePoint struct {
	// ID is referenced by the associated data list (ltxt, labl, note).
	ID uint32
	// Position is the sample position in the play order; equal to SampleOffset
	// for files without a playlist.
	Position    uint32
	DataChunkID [4]byte
	ChunkStart  uint32
	BlockStart  uint32
	// SampleOffset is the frame the cue points at.
	SampleOffset uint32
}

// newCuePoint returns a cue point into the data chunk at frame.
func newCuePoint(id, frame uint32) CuePoint {
	return CuePoint{
		ID:           id,
		Position:     frame,
		DataChunkID:  riff.DataFormatID,
		SampleOffset: frame,
	}
}

// DecodeCueChunk parses the payload of a cue chunk.
func DecodeCueChunk(data []byte) ([]CuePoint, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("%w: cue chunk of %d bytes has no count", ErrCorruptData, len(data))
	}

	count := uint64(binary.LittleEndian.Uint32(data[0:4]))
	if 4+count*cuePointSize > uint64(len(data)) {
		return nil, fmt.Errorf("%w: cue chunk declares %d points in %d bytes", ErrCorruptData, count, len(data))
	}

	points := make([]CuePoint, 0, count)

	for i := range int(count) {
		entry := data[4+i*cuePointSize : 4+(i+1)*cuePointSize]

		pt := CuePoint{
			ID:           binary.LittleEndian.Uint32(entry[0:4]),
			Position:     binary.LittleEndian.Uint32(entry[4:8]),
			ChunkStart:   binary.LittleEndian.Uint32(entry[12:16]),
			BlockStart:   binary.LittleEndian.Uint32(entry[16:20]),
			SampleOffset: binary.LittleEndian.Uint32(entry[20:24]),
		}
		copy(pt.DataChunkID[:], entry[8:12])

		points = append(points, pt)
	}

	return points, nil
}

func encodeCueChunk(points []CuePoint) []byte {
	buf := make([]byte, 4+len(points)*cuePointSize)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(len(points)))

	for i, pt := range points {
		entry := buf[4+i*cuePointSize : 4+(i+1)*cuePointSize]
		binary.LittleEndian.PutUint32(entry[0:4], pt.ID)
		binary.LittleEndian.PutUint32(entry[4:8], pt.Position)
		copy(entry[8:12], pt.DataChunkID[:])
		binary.LittleEndian.PutUint32(entry[12:16], pt.ChunkStart)
		binary.LittleEndian.PutUint32(entry[16:20], pt.BlockStart)
		binary.LittleEndian.PutUint32(entry[20:24], pt.SampleOffset)
	}

	return buf
}
