package wavloop

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

func TestParseSerializeRoundTripIsByteIdentical(t *testing.T) {
	input := makeMono8Wav(t, 1600)

	c, err := Parse(input)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if got := len(c.Chunks); got != 4 {
		t.Fatalf("expected 4 chunks, got %d", got)
	}

	out, err := Serialize(c)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}

	if !bytes.Equal(out, input) {
		t.Fatalf("round trip changed the file: %d bytes in, %d bytes out", len(input), len(out))
	}
}

func TestParseKeepsPadByteValue(t *testing.T) {
	input := makeTestWav(t, func(b *bytes.Buffer) {
		writeTestChunk(t, b, "fmt ", pcmFmtPayload(8000, 8, 1))
		writeTestChunk(t, b, "odd1", []byte{0xAA})
		writeTestChunk(t, b, "data", []byte{0x80, 0x80})
	})

	// corrupt the pad byte after odd1 with a non-zero value
	padOffset := 12 + 8 + 16 + 8 + 1
	input[padOffset] = 0x5A

	c, err := Parse(input)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	chnk := c.Find([4]byte{'o', 'd', 'd', '1'})
	if chnk == nil {
		t.Fatal("odd1 chunk not found")
	}

	if chnk.Pad != 0x5A {
		t.Fatalf("pad byte=%#x, want 0x5a", chnk.Pad)
	}

	out, err := Serialize(c)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}

	if !bytes.Equal(out, input) {
		t.Fatal("pad byte value was not preserved")
	}
}

func TestParsePreservesTrailer(t *testing.T) {
	input := makeMono8Wav(t, 16)
	input = append(input, []byte("garbage after riff")...)

	c, err := Parse(input)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if string(c.Trailer) != "garbage after riff" {
		t.Fatalf("trailer=%q", c.Trailer)
	}

	out, err := Serialize(c)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}

	if !bytes.Equal(out, input) {
		t.Fatal("trailer was not written back")
	}
}

func TestParseToleratesMissingFinalPad(t *testing.T) {
	input := makeTestWav(t, func(b *bytes.Buffer) {
		writeTestChunk(t, b, "fmt ", pcmFmtPayload(8000, 8, 1))
		writeTestChunk(t, b, "data", []byte{0x80, 0x81, 0x82})
	})

	// drop the pad byte and fix up the RIFF size
	input = input[:len(input)-1]
	binary.LittleEndian.PutUint32(input[4:8], uint32(len(input)-8))

	c, err := Parse(input)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	out, err := Serialize(c)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}

	if len(out) != len(input)+1 {
		t.Fatalf("expected the pad byte to be restored: %d -> %d bytes", len(input), len(out))
	}

	chunks, err := parseWavChunks(out)
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}

	data, _ := findChunk(chunks, "data")
	if data == nil || data.size != 3 {
		t.Fatalf("unexpected data chunk: %+v", data)
	}
}

func TestParseDoesNotAliasInput(t *testing.T) {
	input := makeMono8Wav(t, 16)

	c, err := Parse(input)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	c.Find([4]byte{'d', 'a', 't', 'a'}).Data[0] = 0xFF

	if input[len(input)-16] == 0xFF {
		t.Fatal("mutating the container changed the input buffer")
	}
}

func TestParseErrors(t *testing.T) {
	valid := makeMono8Wav(t, 16)

	tests := []struct {
		name    string
		input   func() []byte
		wantErr []error
	}{
		{
			name:    "too small",
			input:   func() []byte { return []byte("RIFF") },
			wantErr: []error{ErrFormat},
		},
		{
			name: "not riff",
			input: func() []byte {
				b := bytes.Clone(valid)
				copy(b[0:4], "RIFX")

				return b
			},
			wantErr: []error{ErrFormat},
		},
		{
			name: "not wave",
			input: func() []byte {
				b := bytes.Clone(valid)
				copy(b[8:12], "AVI ")

				return b
			},
			wantErr: []error{ErrFormat},
		},
		{
			name: "riff size beyond buffer",
			input: func() []byte {
				b := bytes.Clone(valid)
				binary.LittleEndian.PutUint32(b[4:8], uint32(len(b)))

				return b
			},
			wantErr: []error{ErrCorruptData},
		},
		{
			name: "truncated chunk header",
			input: func() []byte {
				b := append(bytes.Clone(valid), 'J', 'U', 'N')
				binary.LittleEndian.PutUint32(b[4:8], uint32(len(b)-8))

				return b
			},
			wantErr: []error{ErrCorruptData},
		},
		{
			name: "chunk overruns riff",
			input: func() []byte {
				b := bytes.Clone(valid)
				// fmt chunk size field
				binary.LittleEndian.PutUint32(b[16:20], 1<<20)

				return b
			},
			wantErr: []error{ErrFormat, ErrCorruptData},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input())
			if err == nil {
				t.Fatal("expected error")
			}

			for _, want := range tt.wantErr {
				if !errors.Is(err, want) {
					t.Fatalf("error %v does not wrap %v", err, want)
				}
			}
		})
	}
}

func TestChunkKind(t *testing.T) {
	tests := []struct {
		chunk *Chunk
		want  ChunkKind
	}{
		{&Chunk{ID: [4]byte{'f', 'm', 't', ' '}}, KindFormat},
		{&Chunk{ID: [4]byte{'d', 'a', 't', 'a'}}, KindData},
		{&Chunk{ID: CIDCue}, KindCue},
		{&Chunk{ID: CIDList, Data: []byte("adtl")}, KindAssocList},
		{&Chunk{ID: CIDList, Data: []byte("INFO")}, KindOpaque},
		{&Chunk{ID: CIDList}, KindOpaque},
		{&Chunk{ID: CIDSmpl}, KindOpaque},
	}

	for _, tt := range tests {
		if got := tt.chunk.Kind(); got != tt.want {
			t.Fatalf("%q kind=%s, want %s", tt.chunk.ID[:], got, tt.want)
		}
	}
}

func TestUpsertMatchesListByType(t *testing.T) {
	c := &Container{
		Chunks: []*Chunk{
			{ID: CIDList, Data: []byte("INFOxxxx")},
			{ID: [4]byte{'d', 'a', 't', 'a'}, Data: []byte{1, 2}},
		},
	}

	c.Upsert(CIDList, []byte("adtl"))

	if len(c.Chunks) != 3 {
		t.Fatalf("expected the adtl list to be appended, got %d chunks", len(c.Chunks))
	}

	if string(c.Chunks[0].Data) != "INFOxxxx" {
		t.Fatal("INFO list was overwritten")
	}

	c.Upsert(CIDList, []byte("adtlmore"))

	if len(c.Chunks) != 3 || string(c.Chunks[2].Data) != "adtlmore" {
		t.Fatalf("expected the adtl list to be replaced in place, got %d chunks", len(c.Chunks))
	}

	if !c.RemoveList(ListTypeAdtl) || c.FindList(ListTypeAdtl) != nil {
		t.Fatal("adtl list was not removed")
	}

	if c.FindList(ListTypeInfo) == nil {
		t.Fatal("INFO list was removed")
	}
}

func TestUpsertKeepsPosition(t *testing.T) {
	c := &Container{
		Chunks: []*Chunk{
			{ID: CIDCue, Data: []byte{0, 0, 0, 0}, Pad: 1},
			{ID: [4]byte{'d', 'a', 't', 'a'}},
		},
	}

	c.Upsert(CIDCue, []byte{1, 0, 0, 0})

	if c.Chunks[0].ID != CIDCue || c.Chunks[0].Data[0] != 1 {
		t.Fatal("cue chunk not updated in place")
	}

	if c.Chunks[0].Pad != 0 {
		t.Fatal("pad byte should reset on new payload")
	}
}
