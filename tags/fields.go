package tags

import (
	"errors"
	"fmt"
)

// field is a logical text field shared by every format.
type field int

const (
	fieldTitle field = iota
	fieldArtist
	fieldAlbum
	fieldAlbumArtist
)

func (f field) String() string {
	switch f {
	case fieldTitle:
		return "title"
	case fieldArtist:
		return "artist"
	case fieldAlbum:
		return "album"
	case fieldAlbumArtist:
		return "album artist"
	default:
		return "unknown"
	}
}

// fieldStore maps the logical fields onto one native tag object.
type fieldStore interface {
	text(f field) (string, bool)
	setText(f field, v string)
	removeText(f field)

	cover() *Picture
	setCover(p Picture) error
	removeCover()

	date() (Timestamp, bool)
	setDate(ts Timestamp)
	removeDate()

	write(path string) error
}

func (t *Tag) Title() (string, bool) {
	return t.store.text(fieldTitle)
}

func (t *Tag) SetTitle(title string) {
	t.store.setText(fieldTitle, title)
}

func (t *Tag) RemoveTitle() {
	t.store.removeText(fieldTitle)
}

// Artist returns the track artist. Formats storing several artist values
// return them joined with "; ".
func (t *Tag) Artist() (string, bool) {
	return t.store.text(fieldArtist)
}

// SetArtist replaces the track artist. Formats storing several artist values
// split artist on "; ".
func (t *Tag) SetArtist(artist string) {
	t.store.setText(fieldArtist, artist)
}

func (t *Tag) RemoveArtist() {
	t.store.removeText(fieldArtist)
}

// Date returns the release date.
func (t *Tag) Date() (Timestamp, bool) {
	return t.store.date()
}

// SetDate replaces the release date. Formats storing dates as plain text keep
// only the YYYY-MM-DD part.
func (t *Tag) SetDate(ts Timestamp) {
	t.store.setDate(ts)
}

func (t *Tag) RemoveDate() {
	t.store.removeDate()
}

// AlbumInfo returns the album title, album artist and front cover.
func (t *Tag) AlbumInfo() Album {
	var a Album
	if title, ok := t.store.text(fieldAlbum); ok {
		a.Title = title
	}
	if artist, ok := t.store.text(fieldAlbumArtist); ok {
		a.Artist = artist
	}
	a.Cover = t.store.cover()
	return a
}

// SetAlbumInfo sets the present fields of a and leaves the others untouched.
// Title and artist are applied before the cover, so an ErrInvalidImageFormat
// returned for the cover leaves them set.
func (t *Tag) SetAlbumInfo(a Album) error {
	if a.Title != "" {
		t.store.setText(fieldAlbum, a.Title)
	}
	if a.Artist != "" {
		t.store.setText(fieldAlbumArtist, a.Artist)
	}
	if a.Cover != nil {
		if err := t.store.setCover(*a.Cover); err != nil {
			return err
		}
	}
	return nil
}

// RemoveAllAlbumInfo removes the album title, album artist and front cover.
func (t *Tag) RemoveAllAlbumInfo() {
	t.store.removeText(fieldAlbum)
	t.store.removeText(fieldAlbumArtist)
	t.store.removeCover()
}

// CopyTo applies the fields present in t to dst through dst's setters.
// dst may have any format. A cover dst cannot store does not prevent the
// other fields from being copied; its error is returned once they are.
func (t *Tag) CopyTo(dst *Tag) error {
	if dst == nil {
		return errors.New("copy tags: nil destination")
	}
	albumErr := dst.SetAlbumInfo(t.AlbumInfo())
	if title, ok := t.Title(); ok {
		dst.SetTitle(title)
	}
	if artist, ok := t.Artist(); ok {
		dst.SetArtist(artist)
	}
	if ts, ok := t.Date(); ok {
		dst.SetDate(ts)
	}
	if albumErr != nil {
		return fmt.Errorf("copy album info: %w", albumErr)
	}
	return nil
}
