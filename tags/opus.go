package tags

import "bytes"

// opusFrontCover is the picture type TagLib reports for front covers.
const opusFrontCover = "Front Cover"

// opusStore holds the comments of an Opus file as TagLib properties and its
// front cover as raw image bytes with the stored MIME type.
type opusStore struct {
	commentStore
	props commentMap
	front *Picture
}

func newOpusStore(props map[string][]string, cover *Picture) *opusStore {
	m := make(commentMap, len(props))
	for k, v := range props {
		m.set(k, v...)
	}
	var front *Picture
	if cover != nil && len(cover.Data) > 0 {
		front = &Picture{MIMEType: cover.MIMEType, Data: bytes.Clone(cover.Data)}
	}
	return &opusStore{
		commentStore: commentStore{keys: opusKeys, c: m},
		props:        m,
		front:        front,
	}
}

func (s *opusStore) cover() *Picture {
	if s.front == nil {
		return nil
	}
	return newPicture(s.front.MIMEType, s.front.Data)
}

// setCover keeps the MIME type as given, Opus stores it as free text.
func (s *opusStore) setCover(p Picture) error {
	s.front = &Picture{MIMEType: p.MIMEType, Data: bytes.Clone(p.Data)}
	return nil
}

func (s *opusStore) removeCover() {
	s.front = nil
}
