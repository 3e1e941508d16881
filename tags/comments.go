package tags

import "strings"

const artistSeparator = "; "

// comments is a multi-valued key/value store with case-insensitive keys, as
// used by Vorbis comments and Opus comments.
type comments interface {
	values(key string) []string
	set(key string, values ...string)
	del(key string)
}

// commentKeys is the key table of one comment based format. Reading consults
// a single key per field; writing and removal may touch several spellings.
type commentKeys struct {
	read   map[field]string
	write  map[field][]string
	remove map[field][]string
}

var vorbisKeys = commentKeys{
	read: map[field]string{
		fieldTitle:       "TITLE",
		fieldArtist:      "ARTIST",
		fieldAlbum:       "ALBUM",
		fieldAlbumArtist: "ALBUM_ARTIST",
	},
	write: map[field][]string{
		fieldAlbumArtist: {"ALBUMARTIST", "ALBUM ARTIST", "ALBUM_ARTIST"},
	},
	remove: map[field][]string{
		fieldAlbumArtist: {"ALBUMARTIST", "ALBUM ARTIST", "ALBUM_ARTIST"},
	},
}

var opusKeys = commentKeys{
	read: map[field]string{
		fieldTitle:       "TITLE",
		fieldArtist:      "ARTIST",
		fieldAlbum:       "ALBUM",
		fieldAlbumArtist: "ALBUMARTIST",
	},
	remove: map[field][]string{
		fieldAlbumArtist: {"ALBUMARTIST", "ALBUM_ARTIST"},
	},
}

func (k commentKeys) writeKeys(f field) []string {
	if keys, ok := k.write[f]; ok {
		return keys
	}
	return []string{k.read[f]}
}

func (k commentKeys) removeKeys(f field) []string {
	if keys, ok := k.remove[f]; ok {
		return keys
	}
	return []string{k.read[f]}
}

const dateKey = "DATE"

// commentStore implements the text and date fields over comments. Covers are
// left to the embedding store.
type commentStore struct {
	keys commentKeys
	c    comments
}

func (s *commentStore) text(f field) (string, bool) {
	vals := s.c.values(s.keys.read[f])
	if len(vals) == 0 {
		return "", false
	}
	var v string
	if f == fieldArtist {
		v = strings.Join(vals, artistSeparator)
	} else {
		v = vals[0]
	}
	return v, v != ""
}

func (s *commentStore) setText(f field, v string) {
	vals := []string{v}
	if f == fieldArtist {
		vals = strings.Split(v, artistSeparator)
	}
	for _, key := range s.keys.writeKeys(f) {
		s.c.set(key, vals...)
	}
}

func (s *commentStore) removeText(f field) {
	for _, key := range s.keys.removeKeys(f) {
		s.c.del(key)
	}
}

func (s *commentStore) date() (Timestamp, bool) {
	vals := s.c.values(dateKey)
	if len(vals) == 0 {
		return Timestamp{}, false
	}
	return parseDateText(vals[0])
}

func (s *commentStore) setDate(ts Timestamp) {
	s.c.set(dateKey, ts.DateString())
}

func (s *commentStore) removeDate() {
	s.c.del(dateKey)
}

// commentList keeps comments as ordered KEY=value entries, the layout of a
// FLAC VORBIS_COMMENT block.
type commentList []string

func splitComment(entry string) (key, value string, ok bool) {
	key, value, ok = strings.Cut(entry, "=")
	return key, value, ok && key != ""
}

func (l *commentList) values(key string) []string {
	var vals []string
	for _, entry := range *l {
		k, v, ok := splitComment(entry)
		if ok && strings.EqualFold(k, key) {
			vals = append(vals, v)
		}
	}
	return vals
}

func (l *commentList) set(key string, values ...string) {
	l.del(key)
	for _, v := range values {
		*l = append(*l, key+"="+v)
	}
}

func (l *commentList) del(key string) {
	kept := (*l)[:0]
	for _, entry := range *l {
		k, _, ok := splitComment(entry)
		if ok && strings.EqualFold(k, key) {
			continue
		}
		kept = append(kept, entry)
	}
	*l = kept
}

// commentMap keeps comments keyed by their uppercase name, the layout TagLib
// exchanges properties in.
type commentMap map[string][]string

func (m commentMap) values(key string) []string {
	return m[strings.ToUpper(key)]
}

func (m commentMap) set(key string, values ...string) {
	m[strings.ToUpper(key)] = append([]string(nil), values...)
}

func (m commentMap) del(key string) {
	delete(m, strings.ToUpper(key))
}
