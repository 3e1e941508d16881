package tags

import (
	"github.com/go-flac/flacpicture"
	"github.com/go-flac/flacvorbis"
)

// flacStore holds the VORBIS_COMMENT block and the front cover PICTURE block
// of a FLAC file.
type flacStore struct {
	commentStore
	vendor   string
	list     *commentList
	coverPic *flacpicture.MetadataBlockPicture
}

func newFLACStore(cmt *flacvorbis.MetaDataBlockVorbisComment, cover *flacpicture.MetadataBlockPicture) *flacStore {
	if cmt == nil {
		cmt = flacvorbis.New()
	}
	list := commentList(append([]string(nil), cmt.Comments...))
	return &flacStore{
		commentStore: commentStore{keys: vorbisKeys, c: &list},
		vendor:       cmt.Vendor,
		list:         &list,
		coverPic:     cover,
	}
}

func (s *flacStore) cover() *Picture {
	if s.coverPic == nil {
		return nil
	}
	return pictureFromFLAC(s.coverPic)
}

func (s *flacStore) setCover(p Picture) error {
	s.coverPic = flacPicture(p)
	return nil
}

func (s *flacStore) removeCover() {
	s.coverPic = nil
}

// vorbisComment rebuilds the comment block from the current entries.
func (s *flacStore) vorbisComment() *flacvorbis.MetaDataBlockVorbisComment {
	cmt := flacvorbis.New()
	if s.vendor != "" {
		cmt.Vendor = s.vendor
	}
	cmt.Comments = append([]string(nil), (*s.list)...)
	return cmt
}
