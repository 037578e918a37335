package wavloop

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Associated data list sub-chunks. All of them start with the ID of the cue
// point they describe.
var (
	CIDLabeledText = [4]byte{'l', 't', 'x', 't'}
	CIDLabel       = [4]byte{'l', 'a', 'b', 'l'}
	CIDNote        = [4]byte{'n', 'o', 't', 'e'}

	// PurposeMark is the ltxt purpose written for loop regions.
	PurposeMark = [4]byte{'m', 'a', 'r', 'k'}
)

const labeledTextMinSize = 20

// AssocEntry is one sub-chunk of an adtl list, kept as raw bytes so entries
// this package does not interpret are written back unchanged.
type AssocEntry struct {
	ID   [4]byte
	Data []byte
}

// CueID returns the cue point the entry refers to.
func (e AssocEntry) CueID() (uint32, bool) {
	if len(e.Data) < 4 {
		return 0, false
	}

	return binary.LittleEndian.Uint32(e.Data[0:4]), true
}

// LabeledText decodes an ltxt entry.
func (e AssocEntry) LabeledText() (LabeledText, bool) {
	if e.ID != CIDLabeledText || len(e.Data) < labeledTextMinSize {
		return LabeledText{}, false
	}

	lt := LabeledText{
		CueID:        binary.LittleEndian.Uint32(e.Data[0:4]),
		SampleLength: binary.LittleEndian.Uint32(e.Data[4:8]),
		Country:      binary.LittleEndian.Uint16(e.Data[12:14]),
		Language:     binary.LittleEndian.Uint16(e.Data[14:16]),
		Dialect:      binary.LittleEndian.Uint16(e.Data[16:18]),
		CodePage:     binary.LittleEndian.Uint16(e.Data[18:20]),
		Text:         nullTermStr(e.Data[20:]),
	}
	copy(lt.Purpose[:], e.Data[8:12])

	return lt, true
}

// Label returns the text of a labl or note entry.
func (e AssocEntry) Label() (string, bool) {
	if (e.ID != CIDLabel && e.ID != CIDNote) || len(e.Data) < 4 {
		return "", false
	}

	return nullTermStr(e.Data[4:]), true
}

// LabeledText is the ltxt entry that carries a region length for a cue point.
type LabeledText struct {
	CueID        uint32
	SampleLength uint32
	Purpose      [4]byte
	Country      uint16
	Language     uint16
	Dialect      uint16
	CodePage     uint16
	Text         string
}

// withSampleLength returns a copy of an ltxt entry with a new length, keeping
// every other byte.
func (e AssocEntry) withSampleLength(length uint32) AssocEntry {
	out := AssocEntry{ID: e.ID, Data: bytes.Clone(e.Data)}
	binary.LittleEndian.PutUint32(out.Data[4:8], length)

	return out
}

func newLoopLengthEntry(cueID, length uint32) AssocEntry {
	data := make([]byte, labeledTextMinSize)
	binary.LittleEndian.PutUint32(data[0:4], cueID)
	binary.LittleEndian.PutUint32(data[4:8], length)
	copy(data[8:12], PurposeMark[:])

	return AssocEntry{ID: CIDLabeledText, Data: data}
}

// AssocList is a decoded LIST/adtl chunk.
type AssocList struct {
	Entries []AssocEntry
}

// DecodeAssocList parses the payload of a LIST chunk of type adtl.
func DecodeAssocList(data []byte) (*AssocList, error) {
	if len(data) < 4 || !bytes.Equal(data[:4], ListTypeAdtl[:]) {
		return nil, fmt.Errorf("%w: LIST payload is not an adtl list", ErrFormat)
	}

	list := &AssocList{}

	offset := 4
	for len(data)-offset >= chunkHeaderSize {
		var entry AssocEntry

		copy(entry.ID[:], data[offset:offset+4])
		size := int(binary.LittleEndian.Uint32(data[offset+4 : offset+8]))
		offset += chunkHeaderSize

		if size < 0 || size > len(data)-offset {
			return nil, fmt.Errorf("%w: adtl entry %q declares %d bytes, only %d remain",
				ErrCorruptData, entry.ID[:], size, len(data)-offset)
		}

		entry.Data = bytes.Clone(data[offset : offset+size])
		offset += size + size%2

		list.Entries = append(list.Entries, entry)
	}

	// a lone pad byte may trail the last entry
	if len(data)-offset > 1 {
		return nil, fmt.Errorf("%w: %d stray bytes at the end of the adtl list", ErrCorruptData, len(data)-offset)
	}

	return list, nil
}

// Bytes encodes the list, including the adtl type.
func (l *AssocList) Bytes() []byte {
	buf := bytes.NewBuffer(nil)
	buf.Write(ListTypeAdtl[:])

	for _, entry := range l.Entries {
		buf.Write(entry.ID[:])
		binary.Write(buf, binary.LittleEndian, uint32(len(entry.Data)))
		buf.Write(entry.Data)

		if len(entry.Data)%2 == 1 {
			buf.WriteByte(0)
		}
	}

	return buf.Bytes()
}

// labeledTextFor returns the index of the first ltxt entry for cueID.
func (l *AssocList) labeledTextFor(cueID uint32) int {
	if l == nil {
		return -1
	}

	for i, entry := range l.Entries {
		if _, ok := entry.LabeledText(); !ok {
			continue
		}

		if id, _ := entry.CueID(); id == cueID {
			return i
		}
	}

	return -1
}

// removeCue drops every entry that refers to cueID.
func (l *AssocList) removeCue(cueID uint32) {
	kept := l.Entries[:0]

	for _, entry := range l.Entries {
		if id, ok := entry.CueID(); ok && id == cueID {
			continue
		}

		kept = append(kept, entry)
	}

	l.Entries = kept
}
