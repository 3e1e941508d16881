// Package chunk reads and replaces top level chunks of RIFF (WAV) and
// IFF (AIFF) containers.
package chunk

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Kind is the container layout of a file.
type Kind int

const (
	Unknown Kind = iota
	RIFF
	AIFF
)

func (k Kind) String() string {
	switch k {
	case RIFF:
		return "RIFF"
	case AIFF:
		return "AIFF"
	default:
		return "unknown"
	}
}

// ErrMalformed is returned when a chunk runs past the end of the data.
var ErrMalformed = errors.New("malformed chunk container")

const headerSize = 12

// Sniff returns the container layout of data from its 12 byte header.
func Sniff(data []byte) Kind {
	if len(data) < headerSize {
		return Unknown
	}
	magic, form := string(data[0:4]), string(data[8:12])
	switch {
	case magic == "RIFF" && form == "WAVE":
		return RIFF
	case magic == "FORM" && (form == "AIFF" || form == "AIFC"):
		return AIFF
	default:
		return Unknown
	}
}

func (k Kind) order() binary.ByteOrder {
	if k == AIFF {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// chunk is a top level chunk located in a container.
type chunk struct {
	id    string
	start int // offset of the chunk header
	end   int // offset past the payload and its pad byte
	data  []byte
}

func walk(data []byte) (Kind, []chunk, error) {
	kind := Sniff(data)
	if kind == Unknown {
		return kind, nil, fmt.Errorf("%w: not a RIFF or AIFF file", ErrMalformed)
	}
	order := kind.order()

	var chunks []chunk
	offset := headerSize
	for offset+8 <= len(data) {
		id := string(data[offset : offset+4])
		size := int(order.Uint32(data[offset+4 : offset+8]))
		payload := offset + 8
		if size > len(data)-payload {
			return kind, nil, fmt.Errorf("%w: chunk %q at %d overruns file", ErrMalformed, id, offset)
		}
		end := payload + size
		if size%2 != 0 && end < len(data) {
			end++
		}
		chunks = append(chunks, chunk{id: id, start: offset, end: end, data: data[payload : payload+size]})
		offset = end
	}
	return kind, chunks, nil
}

// Find returns the payload of the first top level chunk whose id is one of ids.
func Find(data []byte, ids ...string) ([]byte, bool, error) {
	_, chunks, err := walk(data)
	if err != nil {
		return nil, false, err
	}
	for _, c := range chunks {
		if matches(c.id, ids) {
			return c.data, true, nil
		}
	}
	return nil, false, nil
}

// Replace removes every top level chunk whose id is one of drop and, when
// payload is not empty, appends a chunk id holding payload. The container
// size is rewritten to match.
func Replace(data []byte, id string, payload []byte, drop ...string) ([]byte, error) {
	if len(id) != 4 {
		return nil, fmt.Errorf("chunk id %q must be 4 bytes", id)
	}
	kind, chunks, err := walk(data)
	if err != nil {
		return nil, err
	}
	order := kind.order()

	out := make([]byte, 0, len(data)+len(payload)+9)
	out = append(out, data[:headerSize]...)
	for _, c := range chunks {
		if matches(c.id, drop) || c.id == id {
			continue
		}
		out = append(out, data[c.start:c.end]...)
		if (c.end-c.start)%2 != 0 {
			// last chunk of the source had no pad byte
			out = append(out, 0)
		}
	}
	if len(payload) > 0 {
		var hdr [8]byte
		copy(hdr[:4], id)
		order.PutUint32(hdr[4:], uint32(len(payload)))
		out = append(out, hdr[:]...)
		out = append(out, payload...)
		if len(payload)%2 != 0 {
			out = append(out, 0)
		}
	}
	order.PutUint32(out[4:8], uint32(len(out)-8))
	return out, nil
}

func matches(id string, ids []string) bool {
	for _, want := range ids {
		if id == want {
			return true
		}
	}
	return false
}
