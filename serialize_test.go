package wavloop

import (
	"errors"
	"testing"
)

func TestSerializeWritesHeaderAndPads(t *testing.T) {
	c := &Container{
		Chunks: []*Chunk{
			{ID: [4]byte{'a', 'b', 'c', 'd'}, Data: []byte{1, 2, 3}},
			{ID: [4]byte{'e', 'f', 'g', 'h'}, Data: []byte{4, 5}},
		},
	}

	out, err := Serialize(c)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}

	// header + (8+3+1) + (8+2)
	if len(out) != 12+12+10 {
		t.Fatalf("unexpected length %d", len(out))
	}

	if string(out[8:12]) != "WAVE" {
		t.Fatalf("default form=%q, want WAVE", out[8:12])
	}

	chunks, err := parseWavChunks(out)
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}

	if len(chunks) != 2 || chunks[0].size != 3 || chunks[1].size != 2 {
		t.Fatalf("unexpected chunks %+v", chunks)
	}
}

func TestSerializeLimit(t *testing.T) {
	saved := maxChunkSize
	maxChunkSize = 64

	t.Cleanup(func() { maxChunkSize = saved })

	tests := []struct {
		name   string
		chunks []*Chunk
	}{
		{
			name:   "single chunk",
			chunks: []*Chunk{{ID: [4]byte{'d', 'a', 't', 'a'}, Data: make([]byte, 65)}},
		},
		{
			name: "total",
			chunks: []*Chunk{
				{ID: [4]byte{'a', 'a', 'a', 'a'}, Data: make([]byte, 30)},
				{ID: [4]byte{'b', 'b', 'b', 'b'}, Data: make([]byte, 30)},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Serialize(&Container{Chunks: tt.chunks})
			if !errors.Is(err, ErrSerializationLimit) {
				t.Fatalf("expected ErrSerializationLimit, got %v", err)
			}
		})
	}
}

func TestSerializeNilContainer(t *testing.T) {
	_, err := Serialize(nil)
	if !errors.Is(err, ErrFormat) {
		t.Fatalf("expected ErrFormat, got %v", err)
	}
}
