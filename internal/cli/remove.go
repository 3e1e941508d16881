package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/llehouerou/multitag/internal/errmsg"
	"github.com/llehouerou/multitag/tags"
)

type removals struct {
	title  bool
	artist bool
	date   bool
	album  bool
}

func (r removals) empty() bool {
	return !r.title && !r.artist && !r.date && !r.album
}

func (r removals) apply(t *tags.Tag) {
	if r.title {
		t.RemoveTitle()
	}
	if r.artist {
		t.RemoveArtist()
	}
	if r.date {
		t.RemoveDate()
	}
	if r.album {
		t.RemoveAllAlbumInfo()
	}
}

func (a *app) remove(_ context.Context, args []string) error {
	var r removals
	fs := a.newFlagSet("remove")
	fs.BoolVar(&r.title, "title", false, "Remove the track title")
	fs.BoolVar(&r.artist, "artist", false, "Remove the track artist")
	fs.BoolVar(&r.date, "date", false, "Remove the release date")
	fs.BoolVar(&r.album, "album", false, "Remove the album title, album artist and front cover")
	all := fs.Bool("all", false, "Remove every field above")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return usageErrorf("expected one file, got %d", fs.NArg())
	}
	if *all {
		r = removals{title: true, artist: true, date: true, album: true}
	}
	if r.empty() {
		return usageErrorf("no field to remove")
	}
	path := fs.Arg(0)

	t, err := tags.Read(path)
	if err != nil {
		return errors.New(errmsg.FormatWith(errmsg.OpReadTags, path, err))
	}
	r.apply(t)
	if err := t.Write(path); err != nil {
		return errors.New(errmsg.FormatWith(errmsg.OpRemoveTags, path, err))
	}

	a.log.Info("tags written", "path", path, "format", t.Format())
	fmt.Fprintln(a.stdout, a.styles.Success.Render("Updated "+path))
	return nil
}
