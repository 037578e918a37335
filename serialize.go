package wavloop

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-audio/riff"
)

// maxChunkSize is the largest payload a 32-bit RIFF length field can describe.
// It is a variable so tests can exercise the limit without allocating 4 GiB.
var maxChunkSize uint64 = math.MaxUint32

// Serialize re-emits the container: header, every chunk in order with its pad
// byte when the payload length is odd, then the trailer. The RIFF size is
// computed from what was written.
func Serialize(c *Container) ([]byte, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: nil container", ErrFormat)
	}

	total := uint64(4)

	for _, chnk := range c.Chunks {
		size := uint64(len(chnk.Data))
		if size > maxChunkSize {
			return nil, fmt.Errorf("%w: chunk %q holds %d bytes", ErrSerializationLimit, chnk.ID[:], size)
		}

		total += chunkHeaderSize + size + size%2
	}

	if total > maxChunkSize {
		return nil, fmt.Errorf("%w: RIFF payload of %d bytes", ErrSerializationLimit, total)
	}

	buf := bytes.NewBuffer(make([]byte, 0, int(total)+8+len(c.Trailer)))

	form := c.Form
	if form == ([4]byte{}) {
		form = riff.WavFormatID
	}

	buf.Write(riff.RiffID[:])

	err := binary.Write(buf, binary.LittleEndian, uint32(total))
	if err != nil {
		return nil, fmt.Errorf("failed to write the RIFF size: %w", err)
	}

	buf.Write(form[:])

	for _, chnk := range c.Chunks {
		err := writeChunk(buf, chnk)
		if err != nil {
			return nil, err
		}
	}

	buf.Write(c.Trailer)

	return buf.Bytes(), nil
}

func writeChunk(buf *bytes.Buffer, chnk *Chunk) error {
	size := uint32(len(chnk.Data))

	buf.Write(chnk.ID[:])

	err := binary.Write(buf, binary.LittleEndian, size)
	if err != nil {
		return fmt.Errorf("failed to write chunk size %q: %w", chnk.ID[:], err)
	}

	buf.Write(chnk.Data)

	if size%2 == 1 {
		buf.WriteByte(chnk.Pad)
	}

	return nil
}
