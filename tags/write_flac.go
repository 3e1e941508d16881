package tags

import (
	"fmt"

	"github.com/go-flac/flacpicture"
	"github.com/go-flac/go-flac"
)

// write replaces the comment block and the front cover of the FLAC file at
// path. Other metadata blocks are kept, and a leading ID3v2 header is dropped.
func (s *flacStore) write(path string) error {
	f, err := parseFLACWithID3Support(path)
	if err != nil {
		return fmt.Errorf("parse file: %w", err)
	}

	cmtBlock := s.vorbisComment().Marshal()

	meta := make([]*flac.MetaDataBlock, 0, len(f.Meta)+2)
	cmtDone := false
	for _, block := range f.Meta {
		switch block.Type {
		case flac.VorbisComment:
			// Keep the position of the first comment block, drop duplicates
			if !cmtDone {
				meta = append(meta, &cmtBlock)
				cmtDone = true
			}
			continue
		case flac.Picture:
			pic, err := flacpicture.ParseFromMetaDataBlock(*block)
			if err == nil && pic.PictureType == flacpicture.PictureTypeFrontCover {
				continue
			}
		}
		meta = append(meta, block)
	}
	if !cmtDone {
		meta = append(meta, &cmtBlock)
	}
	if s.coverPic != nil {
		picBlock := s.coverPic.Marshal()
		meta = append(meta, &picBlock)
	}
	f.Meta = meta

	logger().Debug("writing FLAC metadata", "path", path, "comments", len(*s.list))
	if err := f.Save(path); err != nil {
		return fmt.Errorf("save file: %w", err)
	}
	return nil
}
