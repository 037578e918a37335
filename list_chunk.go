package wavloop

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

var (
	// See http://bwfmetaedit.sourceforge.net/listinfo.html
	markerIART    = [4]byte{'I', 'A', 'R', 'T'}
	markerISFT    = [4]byte{'I', 'S', 'F', 'T'}
	markerICRD    = [4]byte{'I', 'C', 'R', 'D'}
	markerICOP    = [4]byte{'I', 'C', 'O', 'P'}
	markerIARL    = [4]byte{'I', 'A', 'R', 'L'}
	markerINAM    = [4]byte{'I', 'N', 'A', 'M'}
	markerIENG    = [4]byte{'I', 'E', 'N', 'G'}
	markerIGNR    = [4]byte{'I', 'G', 'N', 'R'}
	markerIPRD    = [4]byte{'I', 'P', 'R', 'D'}
	markerISRC    = [4]byte{'I', 'S', 'R', 'C'}
	markerISBJ    = [4]byte{'I', 'S', 'B', 'J'}
	markerICMT    = [4]byte{'I', 'C', 'M', 'T'}
	markerITRK    = [4]byte{'I', 'T', 'R', 'K'}
	markerITRKBug = [4]byte{'i', 't', 'r', 'k'}
	markerITCH    = [4]byte{'I', 'T', 'C', 'H'}
	markerIKEY    = [4]byte{'I', 'K', 'E', 'Y'}
	markerIMED    = [4]byte{'I', 'M', 'E', 'D'}
)

// Tags holds the text fields of a LIST/INFO chunk. The chunk itself is never
// rewritten; Tags is for display only.
type Tags struct {
	Artist       string
	Comments     string
	Copyright    string
	CreationDate string
	Engineer     string
	Technician   string
	Genre        string
	Keywords     string
	Medium       string
	Title        string
	Product      string
	Subject      string
	Software     string
	Source       string
	Location     string
	TrackNbr     string
}

// DecodeInfoList parses the payload of a LIST chunk of type INFO.
func DecodeInfoList(data []byte) (*Tags, error) {
	if len(data) < 4 || !bytes.Equal(data[:4], ListTypeInfo[:]) {
		return nil, fmt.Errorf("%w: LIST payload is not an INFO list", ErrFormat)
	}

	tags := &Tags{}

	// This stops early if just a word alignment byte remains.
	for rem := data[4:]; len(rem) > 1; {
		if len(rem) < chunkHeaderSize {
			return nil, fmt.Errorf("%w: truncated INFO entry header", ErrCorruptData)
		}

		var id [4]byte

		copy(id[:], rem[0:4])
		size := int(binary.LittleEndian.Uint32(rem[4:8]))
		rem = rem[chunkHeaderSize:]

		if size < 0 || size > len(rem) {
			return nil, fmt.Errorf("%w: INFO entry %q declares %d bytes, only %d remain",
				ErrCorruptData, id[:], size, len(rem))
		}

		value := nullTermStr(rem[:size])
		rem = rem[min(size+size%2, len(rem)):]

		switch id {
		case markerIARL:
			tags.Location = value
		case markerIART:
			tags.Artist = value
		case markerISFT:
			tags.Software = value
		case markerICRD:
			tags.CreationDate = value
		case markerICOP:
			tags.Copyright = value
		case markerINAM:
			tags.Title = value
		case markerIENG:
			tags.Engineer = value
		case markerIGNR:
			tags.Genre = value
		case markerIPRD:
			tags.Product = value
		case markerISRC:
			tags.Source = value
		case markerISBJ:
			tags.Subject = value
		case markerICMT:
			tags.Comments = value
		case markerITRK, markerITRKBug:
			tags.TrackNbr = value
		case markerITCH:
			tags.Technician = value
		case markerIKEY:
			tags.Keywords = value
		case markerIMED:
			tags.Medium = value
		}
	}

	return tags, nil
}

// Fields lists the non-empty tags in a stable order for display.
func (t *Tags) Fields() []TagField {
	if t == nil {
		return nil
	}

	// Table-driven approach to reduce cyclomatic complexity
	all := []TagField{
		{"Title", t.Title},
		{"Artist", t.Artist},
		{"Product", t.Product},
		{"TrackNbr", t.TrackNbr},
		{"Genre", t.Genre},
		{"Comments", t.Comments},
		{"Copyright", t.Copyright},
		{"CreationDate", t.CreationDate},
		{"Engineer", t.Engineer},
		{"Technician", t.Technician},
		{"Keywords", t.Keywords},
		{"Medium", t.Medium},
		{"Subject", t.Subject},
		{"Software", t.Software},
		{"Source", t.Source},
		{"Location", t.Location},
	}

	out := all[:0]

	for _, field := range all {
		if field.Value != "" {
			out = append(out, field)
		}
	}

	return out
}

// TagField is one named INFO value.
type TagField struct {
	Name  string
	Value string
}
