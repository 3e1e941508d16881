package tags

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/go-flac/flacpicture"
	"github.com/go-flac/flacvorbis"
	"github.com/go-flac/go-flac"
)

// readFLAC reads the Vorbis comments and front cover of a FLAC file. A FLAC
// file without a comment block yields an empty tag; anything that is not a
// FLAC stream is an error.
func readFLAC(path string) (*Tag, error) {
	f, err := parseFLACWithID3Support(path)
	if err != nil {
		return nil, readError(FormatFLAC, err)
	}

	var (
		cmt   *flacvorbis.MetaDataBlockVorbisComment
		cover *flacpicture.MetadataBlockPicture
	)
	for _, meta := range f.Meta {
		switch meta.Type {
		case flac.VorbisComment:
			if cmt != nil {
				continue
			}
			cmt, err = flacvorbis.ParseFromMetaDataBlock(*meta)
			if err != nil {
				return nil, readError(FormatFLAC, fmt.Errorf("parse vorbis comment: %w", err))
			}
		case flac.Picture:
			if cover != nil {
				continue
			}
			pic, err := flacpicture.ParseFromMetaDataBlock(*meta)
			if err != nil {
				return nil, readError(FormatFLAC, fmt.Errorf("parse picture: %w", err))
			}
			if pic.PictureType == flacpicture.PictureTypeFrontCover {
				cover = pic
			}
		}
	}
	if cmt == nil {
		logger().Debug("no vorbis comment block", "path", path)
	}
	return &Tag{format: FormatFLAC, store: newFLACStore(cmt, cover)}, nil
}

// parseFLACWithID3Support parses a FLAC file, skipping an ID3v2 tag some
// encoders put in front of the stream marker.
func parseFLACWithID3Support(path string) (*flac.File, error) {
	// First try normal parsing
	f, err := flac.ParseFile(path)
	if err == nil {
		return f, nil
	}

	data, readErr := os.ReadFile(path)
	if readErr != nil {
		return nil, readErr
	}
	id3Size := id3v2Size(data)
	if id3Size == 0 {
		return nil, err // Not an ID3v2 header, return original error
	}
	if id3Size+4 > len(data) || !bytes.Equal(data[id3Size:id3Size+4], []byte("fLaC")) {
		return nil, errors.New("no fLaC marker found after ID3v2 header")
	}
	logger().Debug("skipping ID3v2 header in FLAC file", "path", path, "bytes", id3Size)
	return flac.ParseBytes(bytes.NewReader(data[id3Size:]))
}
