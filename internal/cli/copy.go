package cli

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/llehouerou/multitag/internal/errmsg"
	"github.com/llehouerou/multitag/tags"
)

func (a *app) copy(ctx context.Context, args []string) error {
	fs := a.newFlagSet("copy")
	skipCover := fs.Bool("skip-cover", a.cfg.Copy.SkipCover, "Leave the destination cover untouched")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return usageErrorf("expected a source and a destination, got %d files", fs.NArg())
	}
	srcPath, dstPath := fs.Arg(0), fs.Arg(1)

	var src, dst *tags.Tag
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if src, err = tags.Read(srcPath); err != nil {
			return errors.New(errmsg.FormatWith(errmsg.OpReadTags, srcPath, err))
		}
		return ctx.Err()
	})
	g.Go(func() error {
		var err error
		if dst, err = tags.Read(dstPath); err != nil {
			return errors.New(errmsg.FormatWith(errmsg.OpReadTags, dstPath, err))
		}
		return ctx.Err()
	})
	if err := g.Wait(); err != nil {
		return err
	}

	a.log.Debug("copying tags", "from", src.Format(), "to", dst.Format(), "skip_cover", *skipCover)
	if err := copyTags(src, dst, *skipCover); err != nil {
		// The cover is the only field that can fail; the others are copied.
		fmt.Fprintln(a.stderr, a.styles.Warning.Render(errmsg.FormatWith(errmsg.OpCopyTags, srcPath, err)))
	}
	if err := dst.Write(dstPath); err != nil {
		return errors.New(errmsg.FormatWith(errmsg.OpWriteTags, dstPath, err))
	}

	fmt.Fprintln(a.stdout, a.styles.Success.Render(fmt.Sprintf("Copied tags from %s to %s", srcPath, dstPath)))
	return nil
}

// copyTags copies src into dst. With skipCover the destination cover is left
// as it was before the copy.
func copyTags(src, dst *tags.Tag, skipCover bool) error {
	if !skipCover {
		return src.CopyTo(dst)
	}

	kept := dst.AlbumInfo().Cover
	// A source cover dst cannot store is dropped anyway.
	_ = src.CopyTo(dst)

	album := dst.AlbumInfo()
	dst.RemoveAllAlbumInfo()
	album.Cover = kept
	return dst.SetAlbumInfo(album)
}
