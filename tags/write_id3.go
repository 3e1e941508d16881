package tags

import (
	"bytes"
	"fmt"
	"os"

	"github.com/llehouerou/multitag/internal/chunk"
)

const id3Magic = "ID3"

// write stores the tag as ID3v2.4. WAV and AIFF files get it as an ID3 chunk,
// anything else gets it prepended in place of an existing ID3v2 tag.
func (s *id3Store) write(path string) error {
	s.tag.SetVersion(4)
	var buf bytes.Buffer
	if _, err := s.tag.WriteTo(&buf); err != nil {
		return fmt.Errorf("encode tag: %w", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	var out []byte
	switch kind := chunk.Sniff(data); kind {
	case chunk.RIFF:
		out, err = chunk.Replace(data, "id3 ", buf.Bytes(), id3ChunkIDs...)
	case chunk.AIFF:
		out, err = chunk.Replace(data, "ID3 ", buf.Bytes(), id3ChunkIDs...)
	default:
		var audio []byte
		audio, err = stripID3v2Tag(data)
		out = append(buf.Bytes(), audio...)
	}
	if err != nil {
		return err
	}

	logger().Debug("writing ID3 tag", "path", path, "tag_bytes", buf.Len())
	if err := os.WriteFile(path, out, info.Mode().Perm()); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// id3v2Size returns the full size of the ID3v2 tag data starts with, or 0
// when there is none.
func id3v2Size(data []byte) int {
	if len(data) < 10 || string(data[:3]) != id3Magic {
		return 0
	}

	// Parse tag size from bytes 6-9 (synchsafe integer: each byte uses only 7 bits)
	size := int(data[6]&0x7f)<<21 | int(data[7]&0x7f)<<14 | int(data[8]&0x7f)<<7 | int(data[9]&0x7f)
	tagSize := size + 10

	// Footer flag, ID3v2.4 only
	if data[5]&0x10 != 0 {
		tagSize += 10
	}
	return tagSize
}

// stripID3v2Tag returns data without its leading ID3v2 tag, whatever the tag
// version.
func stripID3v2Tag(data []byte) ([]byte, error) {
	tagSize := id3v2Size(data)
	if tagSize == 0 {
		return data, nil
	}
	if tagSize > len(data) {
		return nil, fmt.Errorf("ID3v2 tag size (%d) exceeds file size (%d)", tagSize, len(data))
	}
	return data[tagSize:], nil
}
