package tags

import (
	"bytes"
	"errors"
	"os"

	"github.com/bogem/id3v2/v2"

	"github.com/llehouerou/multitag/internal/chunk"
)

// RIFF writers disagree on the case of the ID3 chunk id.
var id3ChunkIDs = []string{"id3 ", "ID3 "}

// readID3 reads the ID3v2 tag of an mp3 file, or the ID3 chunk of a WAV or
// AIFF file. A file without a tag yields an empty one.
func readID3(path string) (*Tag, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, readError(FormatID3, err)
	}

	payload := data
	if kind := chunk.Sniff(data); kind != chunk.Unknown {
		p, found, err := chunk.Find(data, id3ChunkIDs...)
		if err != nil {
			return nil, readError(FormatID3, err)
		}
		if !found {
			logger().Debug("no ID3 chunk, using empty tag", "path", path, "container", kind)
			return NewEmptyID3(), nil
		}
		payload = p
	}

	tag, err := id3v2.ParseReader(bytes.NewReader(payload), id3v2.Options{Parse: true})
	if errors.Is(err, id3v2.ErrUnsupportedVersion) {
		logger().Debug("ignoring unsupported ID3v2 version", "path", path)
		return NewEmptyID3(), nil
	}
	if err != nil {
		return nil, readError(FormatID3, err)
	}
	if !tag.HasFrames() {
		logger().Debug("no ID3 tag, using empty tag", "path", path)
	}
	return &Tag{format: FormatID3, store: newID3Store(tag)}, nil
}
