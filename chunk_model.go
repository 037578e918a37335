package wavloop

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/go-audio/riff"
)

var (
	// CIDList is the chunk ID for a LIST chunk.
	CIDList = [4]byte{'L', 'I', 'S', 'T'}
	// CIDCue is the chunk ID for the cue chunk.
	CIDCue = [4]byte{'c', 'u', 'e', 0x20}
	// CIDSmpl is the chunk ID for a smpl chunk.
	CIDSmpl = [4]byte{'s', 'm', 'p', 'l'}
	// ListTypeAdtl is the LIST type of the associated data list.
	ListTypeAdtl = [4]byte{'a', 'd', 't', 'l'}
	// ListTypeInfo is the LIST type of the INFO tag list.
	ListTypeInfo = [4]byte{'I', 'N', 'F', 'O'}
)

const (
	riffHeaderSize  = 12
	chunkHeaderSize = 8
)

// ChunkKind classifies a chunk. Only the format, data, cue and associated data
// list chunks are interpreted; everything else is carried opaquely.
type ChunkKind int

const (
	KindOpaque ChunkKind = iota
	KindFormat
	KindData
	KindCue
	KindAssocList
)

func (k ChunkKind) String() string {
	switch k {
	case KindFormat:
		return "format"
	case KindData:
		return "data"
	case KindCue:
		return "cue"
	case KindAssocList:
		return "adtl"
	default:
		return "opaque"
	}
}

// Chunk is one RIFF chunk. The declared length is len(Data).
type Chunk struct {
	ID   [4]byte
	Data []byte
	// Pad is the word alignment byte that followed an odd-length payload in the
	// source file. It is written back as-is.
	Pad byte
}

// Kind reports how the chunk is interpreted.
func (c *Chunk) Kind() ChunkKind {
	switch c.ID {
	case riff.FmtID:
		return KindFormat
	case riff.DataFormatID:
		return KindData
	case CIDCue:
		return KindCue
	case CIDList:
		if c.ListType() == ListTypeAdtl {
			return KindAssocList
		}
	}

	return KindOpaque
}

// ListType returns the form type of a LIST chunk, or the zero value for any
// other chunk.
func (c *Chunk) ListType() [4]byte {
	var listType [4]byte

	if c == nil || c.ID != CIDList || len(c.Data) < 4 {
		return listType
	}

	copy(listType[:], c.Data[:4])

	return listType
}

func (c *Chunk) Clone() *Chunk {
	out := *c
	out.Data = append([]byte(nil), c.Data...)

	return &out
}

// Container is a parsed RIFF/WAVE file: the ordered chunk list plus any bytes
// found after the declared RIFF region.
type Container struct {
	Form    [4]byte
	Chunks  []*Chunk
	Trailer []byte
}

// Parse decodes a RIFF/WAVE byte stream. The input is copied, so later
// mutations of the container never touch b.
func Parse(b []byte) (*Container, error) {
	if len(b) < riffHeaderSize {
		return nil, fmt.Errorf("%w: %d bytes is too small for a RIFF header", ErrFormat, len(b))
	}

	buf := bytes.Clone(b)

	var id [4]byte

	copy(id[:], buf[0:4])
	if id != riff.RiffID {
		return nil, fmt.Errorf("%w: %q: %w", ErrFormat, id[:], riff.ErrFmtNotSupported)
	}

	c := &Container{}
	copy(c.Form[:], buf[8:12])

	if c.Form != riff.WavFormatID {
		return nil, fmt.Errorf("%w: form type %q is not WAVE", ErrFormat, c.Form[:])
	}

	declared := uint64(binary.LittleEndian.Uint32(buf[4:8]))
	if declared < 4 {
		return nil, fmt.Errorf("%w: RIFF size %d is smaller than the form type", ErrCorruptData, declared)
	}

	end := declared + 8
	if end > uint64(len(buf)) {
		return nil, fmt.Errorf("%w: RIFF size %d exceeds the %d byte buffer", ErrCorruptData, declared, len(buf))
	}

	offset := uint64(riffHeaderSize)
	for offset < end {
		if end-offset < chunkHeaderSize {
			return nil, fmt.Errorf("%w: truncated chunk header at offset %d", ErrCorruptData, offset)
		}

		var chnk Chunk

		copy(chnk.ID[:], buf[offset:offset+4])
		size := uint64(binary.LittleEndian.Uint32(buf[offset+4 : offset+8]))
		offset += chunkHeaderSize

		if offset+size > end {
			return nil, fmt.Errorf("%w: %w: chunk %q declares %d bytes, only %d remain",
				ErrFormat, ErrCorruptData, chnk.ID[:], size, end-offset)
		}

		chnk.Data = buf[offset : offset+size : offset+size]
		offset += size

		// the pad byte of the last chunk is sometimes missing
		if size%2 == 1 && offset < end {
			chnk.Pad = buf[offset]
			offset++
		}

		c.Chunks = append(c.Chunks, &chnk)
	}

	if end < uint64(len(buf)) {
		c.Trailer = buf[end:]
	}

	return c, nil
}

// Find returns the first chunk with the given ID, or nil.
func (c *Container) Find(id [4]byte) *Chunk {
	idx := c.index(id, nil)
	if idx < 0 {
		return nil
	}

	return c.Chunks[idx]
}

// FindList returns the first LIST chunk of the given list type, or nil.
func (c *Container) FindList(listType [4]byte) *Chunk {
	idx := c.index(CIDList, &listType)
	if idx < 0 {
		return nil
	}

	return c.Chunks[idx]
}

// Upsert replaces the payload of the first chunk with the given ID, keeping its
// position, or appends a new chunk. For LIST chunks the match also requires the
// same list type as the first four bytes of data, so an INFO list never gets
// overwritten by an adtl list.
func (c *Container) Upsert(id [4]byte, data []byte) {
	var listType *[4]byte

	if id == CIDList && len(data) >= 4 {
		var lt [4]byte

		copy(lt[:], data[:4])
		listType = &lt
	}

	idx := c.index(id, listType)
	if idx >= 0 {
		c.Chunks[idx].Data = data
		c.Chunks[idx].Pad = 0

		return
	}

	c.Chunks = append(c.Chunks, &Chunk{ID: id, Data: data})
}

// Remove deletes the first chunk with the given ID. It reports whether a chunk
// was removed.
func (c *Container) Remove(id [4]byte) bool {
	return c.removeAt(c.index(id, nil))
}

// RemoveList deletes the first LIST chunk of the given list type.
func (c *Container) RemoveList(listType [4]byte) bool {
	return c.removeAt(c.index(CIDList, &listType))
}

func (c *Container) removeAt(idx int) bool {
	if idx < 0 {
		return false
	}

	c.Chunks = append(c.Chunks[:idx], c.Chunks[idx+1:]...)

	return true
}

func (c *Container) index(id [4]byte, listType *[4]byte) int {
	if c == nil {
		return -1
	}

	for i, chnk := range c.Chunks {
		if chnk.ID != id {
			continue
		}

		if listType != nil && chnk.ListType() != *listType {
			continue
		}

		return i
	}

	return -1
}
