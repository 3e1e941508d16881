package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/llehouerou/multitag/internal/errmsg"
	"github.com/llehouerou/multitag/tags"
)

// edits holds the field values given on the command line. Nil fields are left
// untouched.
type edits struct {
	title       *string
	artist      *string
	album       *string
	albumArtist *string
	date        *tags.Timestamp
	cover       *tags.Picture
}

func (e edits) empty() bool {
	return e.title == nil && e.artist == nil && e.album == nil &&
		e.albumArtist == nil && e.date == nil && e.cover == nil
}

// apply writes the edits into t. Album fields go through SetAlbumInfo, so an
// empty album or album artist leaves the stored value in place.
func (e edits) apply(t *tags.Tag) error {
	if e.title != nil {
		t.SetTitle(*e.title)
	}
	if e.artist != nil {
		t.SetArtist(*e.artist)
	}
	if e.date != nil {
		t.SetDate(*e.date)
	}

	var album tags.Album
	if e.album != nil {
		album.Title = *e.album
	}
	if e.albumArtist != nil {
		album.Artist = *e.albumArtist
	}
	album.Cover = e.cover
	return t.SetAlbumInfo(album)
}

func (a *app) set(_ context.Context, args []string) error {
	fs := a.newFlagSet("set")
	fs.String("title", "", "Track title")
	fs.String("artist", "", `Track artist, several artists separated by "; "`)
	fs.String("album", "", "Album title")
	fs.String("album-artist", "", "Album artist")
	fs.String("date", "", "Release date: YYYY, YYYY-MM, YYYY-MM-DD or YYYY-MM-DDTHH:MM:SS")
	fs.String("cover", "", "Front cover image file")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return usageErrorf("expected one file, got %d", fs.NArg())
	}
	path := fs.Arg(0)

	e, err := editsFromFlags(fs)
	if err != nil {
		return err
	}
	if e.empty() {
		return usageErrorf("no field to set")
	}

	t, err := tags.Read(path)
	if err != nil {
		return errors.New(errmsg.FormatWith(errmsg.OpReadTags, path, err))
	}
	if err := e.apply(t); err != nil {
		return errors.New(errmsg.FormatWith(errmsg.OpLoadCover, path, err))
	}
	if err := t.Write(path); err != nil {
		return errors.New(errmsg.FormatWith(errmsg.OpWriteTags, path, err))
	}

	a.log.Info("tags written", "path", path, "format", t.Format())
	fmt.Fprintln(a.stdout, a.styles.Success.Render("Updated "+path))
	return nil
}

// editsFromFlags collects the flags explicitly given on the command line.
func editsFromFlags(fs *flag.FlagSet) (edits, error) {
	var (
		e   edits
		err error
	)
	fs.Visit(func(f *flag.Flag) {
		if err != nil {
			return
		}
		v := f.Value.String()
		switch f.Name {
		case "title":
			e.title = &v
		case "artist":
			e.artist = &v
		case "album":
			e.album = &v
		case "album-artist":
			e.albumArtist = &v
		case "date":
			var ts tags.Timestamp
			if ts, err = tags.ParseTimestamp(strings.TrimSpace(v)); err != nil {
				err = errors.New(errmsg.FormatWith(errmsg.OpParseDate, v, err))
				return
			}
			e.date = &ts
		case "cover":
			e.cover, err = loadCover(v)
		}
	})
	return e, err
}

// loadCover reads an image file, detecting its MIME type from the content.
func loadCover(path string) (*tags.Picture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(errmsg.FormatWith(errmsg.OpLoadCover, path, err))
	}
	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, errors.New(errmsg.FormatWith(errmsg.OpLoadCover, path,
			fmt.Errorf("%w: %s", tags.ErrInvalidImageFormat, mimeType)))
	}
	return &tags.Picture{MIMEType: mimeType, Data: data}, nil
}
