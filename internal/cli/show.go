package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/llehouerou/multitag/internal/errmsg"
	"github.com/llehouerou/multitag/internal/style"
	"github.com/llehouerou/multitag/tags"
)

// maxConcurrentReads bounds the files read in parallel by show.
const maxConcurrentReads = 4

func (a *app) show(ctx context.Context, args []string) error {
	fs := a.newFlagSet("show")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	paths := fs.Args()
	if len(paths) == 0 {
		return usageErrorf("no file given")
	}

	results := make([]*tags.Tag, len(paths))
	errs := make([]error, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentReads)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i], errs[i] = tags.Read(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	failed := 0
	for i, path := range paths {
		if errs[i] != nil {
			failed++
			fmt.Fprintln(a.stderr, a.styles.Error.Render(errmsg.FormatWith(errmsg.OpReadTags, path, errs[i])))
			continue
		}
		fmt.Fprintln(a.stdout, renderTag(a.styles, path, results[i]))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files could not be read", failed, len(paths))
	}
	return nil
}

const labelWidth = 13

// renderTag formats every field of t, marking the absent ones.
func renderTag(s *style.Styles, path string, t *tags.Tag) string {
	missing := s.Missing.Render("-")
	text := func(v string, ok bool) string {
		if !ok {
			return missing
		}
		return s.Value.Render(v)
	}

	album := t.AlbumInfo()
	orMissing := func(v string) string {
		if v == "" {
			return missing
		}
		return s.Value.Render(v)
	}

	date := missing
	if ts, ok := t.Date(); ok {
		date = s.Value.Render(ts.String())
	}

	cover := missing
	if album.Cover != nil {
		cover = s.Value.Render(describeCover(album.Cover))
	}

	rows := []struct {
		label string
		value string
	}{
		{"Format", s.Value.Render(t.Format().String())},
		{"Title", text(t.Title())},
		{"Artist", text(t.Artist())},
		{"Album", orMissing(album.Title)},
		{"Album artist", orMissing(album.Artist)},
		{"Date", date},
		{"Cover", cover},
	}

	var b strings.Builder
	b.WriteString(s.Header(filepath.Base(path)))
	for _, r := range rows {
		b.WriteString("\n")
		b.WriteString(s.Label.Render(fmt.Sprintf("%-*s", labelWidth, r.label)))
		b.WriteString(r.value)
	}
	return s.Panel.Render(b.String())
}

func describeCover(p *tags.Picture) string {
	return fmt.Sprintf("%s, %s", p.MIMEType, humanize.IBytes(uint64(len(p.Data))))
}
