package tags

import (
	"github.com/bogem/id3v2/v2"
)

var id3Frames = map[field]string{
	fieldTitle:       "TIT2",
	fieldArtist:      "TPE1",
	fieldAlbum:       "TALB",
	fieldAlbumArtist: "TPE2",
}

const (
	id3DateFrame    = "TDRL" // release time
	id3PictureFrame = "APIC"
)

type id3Store struct {
	tag *id3v2.Tag
}

func newID3Store(tag *id3v2.Tag) *id3Store {
	if tag == nil {
		tag = id3v2.NewEmptyTag()
	}
	tag.SetVersion(4)
	tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	return &id3Store{tag: tag}
}

func (s *id3Store) textFrame(id string) (string, bool) {
	if len(s.tag.GetFrames(id)) == 0 {
		return "", false
	}
	text := s.tag.GetTextFrame(id).Text
	return text, text != ""
}

func (s *id3Store) text(f field) (string, bool) {
	return s.textFrame(id3Frames[f])
}

func (s *id3Store) setText(f field, v string) {
	s.tag.AddTextFrame(id3Frames[f], id3v2.EncodingUTF8, v)
}

func (s *id3Store) removeText(f field) {
	s.tag.DeleteFrames(id3Frames[f])
}

// frontCovers splits the attached pictures into front covers and the rest.
func (s *id3Store) frontCovers() (covers []id3v2.PictureFrame, others []id3v2.Framer) {
	for _, fr := range s.tag.GetFrames(id3PictureFrame) {
		pf, ok := fr.(id3v2.PictureFrame)
		if ok && pf.PictureType == id3v2.PTFrontCover {
			covers = append(covers, pf)
			continue
		}
		others = append(others, fr)
	}
	return covers, others
}

func (s *id3Store) cover() *Picture {
	covers, _ := s.frontCovers()
	if len(covers) == 0 {
		return nil
	}
	return pictureFromID3(covers[0])
}

func (s *id3Store) setCover(p Picture) error {
	s.removeCover()
	s.tag.AddAttachedPicture(id3Picture(p))
	return nil
}

func (s *id3Store) removeCover() {
	_, others := s.frontCovers()
	s.tag.DeleteFrames(id3PictureFrame)
	for _, fr := range others {
		s.tag.AddFrame(id3PictureFrame, fr)
	}
}

func (s *id3Store) date() (Timestamp, bool) {
	text, ok := s.textFrame(id3DateFrame)
	if !ok {
		return Timestamp{}, false
	}
	return parseDateText(text)
}

func (s *id3Store) setDate(ts Timestamp) {
	s.tag.AddTextFrame(id3DateFrame, id3v2.EncodingUTF8, ts.String())
}

func (s *id3Store) removeDate() {
	s.tag.DeleteFrames(id3DateFrame)
}
