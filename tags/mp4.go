package tags

import (
	mp4tag "github.com/Sorrow446/go-mp4tag"
)

// mp4Store holds the ilst atoms of an MP4 file as decoded by mp4tag.
type mp4Store struct {
	tags *mp4tag.MP4Tags
}

func newMP4Store(tags *mp4tag.MP4Tags) *mp4Store {
	if tags == nil {
		tags = &mp4tag.MP4Tags{}
	}
	return &mp4Store{tags: tags}
}

// atom returns the MP4Tags field backing f.
func (s *mp4Store) atom(f field) *string {
	switch f {
	case fieldTitle:
		return &s.tags.Title // ©nam
	case fieldArtist:
		return &s.tags.Artist // ©ART
	case fieldAlbum:
		return &s.tags.Album // ©alb
	case fieldAlbumArtist:
		return &s.tags.AlbumArtist // aART
	default:
		panic("tags: unknown field " + f.String())
	}
}

func (s *mp4Store) text(f field) (string, bool) {
	v := *s.atom(f)
	return v, v != ""
}

func (s *mp4Store) setText(f field, v string) {
	*s.atom(f) = v
}

func (s *mp4Store) removeText(f field) {
	*s.atom(f) = ""
}

func (s *mp4Store) cover() *Picture {
	for _, pic := range s.tags.Pictures {
		if pic != nil {
			return pictureFromMP4(pic)
		}
	}
	return nil
}

func (s *mp4Store) setCover(p Picture) error {
	pic, err := mp4Picture(p)
	if err != nil {
		return err
	}
	s.tags.Pictures = []*mp4tag.MP4Picture{pic}
	return nil
}

func (s *mp4Store) removeCover() {
	s.tags.Pictures = nil
}

func (s *mp4Store) date() (Timestamp, bool) {
	return parseDateText(s.tags.Date)
}

func (s *mp4Store) setDate(ts Timestamp) {
	s.tags.Date = ts.DateString()
}

func (s *mp4Store) removeDate() {
	s.tags.Date = ""
}
