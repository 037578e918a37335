package wavloop

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"testing"
)

type testChunk struct {
	id   string
	size uint32
	data []byte
}

var (
	errFileTooSmall         = errors.New("file too small")
	errInvalidRiffWaveHdr   = errors.New("invalid riff/wave header")
	errChunkExceedsFileSize = errors.New("chunk exceeds file size")
)

// parseWavChunks is an independent chunk walker used to check encoder output.
func parseWavChunks(data []byte) ([]testChunk, error) {
	if len(data) < 12 {
		return nil, errFileTooSmall
	}

	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, errInvalidRiffWaveHdr
	}

	end := 8 + int(binary.LittleEndian.Uint32(data[4:8]))
	if end > len(data) {
		return nil, fmt.Errorf("%w: RIFF", errChunkExceedsFileSize)
	}

	chunks := make([]testChunk, 0)

	offset := 12
	for offset+8 <= end {
		id := string(data[offset : offset+4])
		size := binary.LittleEndian.Uint32(data[offset+4 : offset+8])
		offset += 8

		chunkEnd := offset + int(size)
		if chunkEnd > end {
			return nil, fmt.Errorf("%w: %q", errChunkExceedsFileSize, id)
		}

		payload := append([]byte(nil), data[offset:chunkEnd]...)
		chunks = append(chunks, testChunk{id: id, size: size, data: payload})

		offset = chunkEnd
		if size%2 == 1 {
			offset++
		}
	}

	return chunks, nil
}

func findChunk(chunks []testChunk, id string) (*testChunk, int) {
	for i := range chunks {
		if chunks[i].id == id {
			return &chunks[i], i
		}
	}

	return nil, -1
}

func chunkIDs(chunks []testChunk) []string {
	out := make([]string, 0, len(chunks))
	for _, ch := range chunks {
		out = append(out, ch.id)
	}

	return out
}

func writeTestChunk(t *testing.T, b *bytes.Buffer, id string, payload []byte) {
	t.Helper()

	if len(id) != 4 {
		t.Fatalf("chunk id must be 4 bytes, got %q", id)
	}

	b.WriteString(id)

	err := binary.Write(b, binary.LittleEndian, uint32(len(payload)))
	if err != nil {
		t.Fatalf("write chunk size for %q: %v", id, err)
	}

	if _, err := b.Write(payload); err != nil {
		t.Fatalf("write chunk payload for %q: %v", id, err)
	}

	if len(payload)%2 == 1 {
		err := b.WriteByte(0)
		if err != nil {
			t.Fatalf("write chunk pad for %q: %v", id, err)
		}
	}
}

// makeTestWav wraps already encoded chunks in a RIFF/WAVE header.
func makeTestWav(t *testing.T, write func(b *bytes.Buffer)) []byte {
	t.Helper()

	var b bytes.Buffer
	b.WriteString("RIFF")

	err := binary.Write(&b, binary.LittleEndian, uint32(0))
	if err != nil {
		t.Fatalf("write riff size placeholder: %v", err)
	}

	b.WriteString("WAVE")
	write(&b)

	out := b.Bytes()
	binary.LittleEndian.PutUint32(out[4:8], uint32(len(out)-8))

	return out
}

func pcmFmtPayload(sampleRate, bitDepth, numChans int) []byte {
	blockAlign := numChans * ((bitDepth + 7) / 8)

	payload := make([]byte, 16)
	binary.LittleEndian.PutUint16(payload[0:2], wavFormatPCM)
	binary.LittleEndian.PutUint16(payload[2:4], uint16(numChans))
	binary.LittleEndian.PutUint32(payload[4:8], uint32(sampleRate))
	binary.LittleEndian.PutUint32(payload[8:12], uint32(sampleRate*blockAlign))
	binary.LittleEndian.PutUint16(payload[12:14], uint16(blockAlign))
	binary.LittleEndian.PutUint16(payload[14:16], uint16(bitDepth))

	return payload
}

// makeMono8Wav builds the 8-bit mono 8000 Hz file used across the loop tests:
// fmt, a JUNK chunk, an odd-sized custom chunk, then data.
func makeMono8Wav(t *testing.T, numFrames int) []byte {
	t.Helper()

	data := make([]byte, numFrames)
	for i := range data {
		data[i] = byte(i % 256)
	}

	return makeTestWav(t, func(b *bytes.Buffer) {
		writeTestChunk(t, b, "fmt ", pcmFmtPayload(8000, 8, 1))
		writeTestChunk(t, b, "JUNK", []byte{0x01, 0x02, 0x03, 0x04})
		writeTestChunk(t, b, "xtra", []byte{0x09, 0x08, 0x07})
		writeTestChunk(t, b, "data", data)
	})
}

func cuePayload(points ...CuePoint) []byte {
	return encodeCueChunk(points)
}

func ltxtPayload(cueID, length uint32) []byte {
	return newLoopLengthEntry(cueID, length).Data
}

func adtlPayload(t *testing.T, entries ...testChunk) []byte {
	t.Helper()

	var b bytes.Buffer
	b.WriteString("adtl")

	for _, e := range entries {
		writeTestChunk(t, &b, e.id, e.data)
	}

	return b.Bytes()
}

func decodeTestFile(t *testing.T, raw []byte) *File {
	t.Helper()

	f, err := Decode(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	return f
}

func encodeTestFile(t *testing.T, f *File) []byte {
	t.Helper()

	out, err := f.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	return out
}
