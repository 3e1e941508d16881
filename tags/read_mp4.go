package tags

import (
	"errors"
	"fmt"
	"os"

	mp4tag "github.com/Sorrow446/go-mp4tag"
	gomp4 "github.com/abema/go-mp4"
)

var errNoMoov = errors.New("no moov box")

// readMP4 reads the iTunes metadata of an MP4 file. A file without an ilst
// box yields an empty tag.
func readMP4(path string) (*Tag, error) {
	hasTags, err := probeMP4Tags(path)
	if err != nil {
		return nil, readError(FormatMP4, err)
	}
	if !hasTags {
		logger().Debug("no ilst box, using empty tag", "path", path)
		return NewEmptyMP4(), nil
	}

	mp4, err := mp4tag.Open(path)
	if err != nil {
		return nil, readError(FormatMP4, fmt.Errorf("open: %w", err))
	}
	defer mp4.Close()

	tags, err := mp4.Read()
	if err != nil {
		return nil, readError(FormatMP4, fmt.Errorf("read: %w", err))
	}
	return &Tag{format: FormatMP4, store: newMP4Store(tags)}, nil
}

// probeMP4Tags reports whether the file has a moov/udta/meta/ilst box.
func probeMP4Tags(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	moov, err := gomp4.ExtractBox(f, nil, gomp4.BoxPath{gomp4.BoxTypeMoov()})
	if err != nil {
		return false, err
	}
	if len(moov) == 0 {
		return false, errNoMoov
	}

	ilst, err := gomp4.ExtractBox(f, nil, gomp4.BoxPath{
		gomp4.BoxTypeMoov(),
		gomp4.BoxTypeUdta(),
		gomp4.BoxTypeMeta(),
		gomp4.BoxTypeIlst(),
	})
	if err != nil {
		return false, err
	}
	return len(ilst) > 0, nil
}
