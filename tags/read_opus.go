package tags

import (
	"fmt"

	"go.senan.xyz/taglib"
)

// readOpus reads the comments and front cover of an Opus file through TagLib.
func readOpus(path string) (*Tag, error) {
	props, err := taglib.ReadTags(path)
	if err != nil {
		return nil, readError(FormatOpus, fmt.Errorf("read tags: %w", err))
	}
	cover, err := readOpusCover(path)
	if err != nil {
		return nil, readError(FormatOpus, err)
	}
	return &Tag{format: FormatOpus, store: newOpusStore(props, cover)}, nil
}

// opusFrontCoverIndex returns the embedded picture descriptions of the file
// and the index of the first one typed as front cover, -1 when there is none.
func opusFrontCoverIndex(path string) (int, []taglib.ImageDesc, error) {
	info, err := taglib.ReadProperties(path)
	if err != nil {
		return -1, nil, fmt.Errorf("read properties: %w", err)
	}
	for i, img := range info.Images {
		if img.Type == opusFrontCover {
			return i, info.Images, nil
		}
	}
	return -1, info.Images, nil
}

// readOpusCover returns the picture typed as front cover, ignoring the others.
func readOpusCover(path string) (*Picture, error) {
	idx, images, err := opusFrontCoverIndex(path)
	if err != nil {
		return nil, err
	}
	if idx < 0 {
		return nil, nil
	}
	data, err := taglib.ReadImageOptions(path, idx)
	if err != nil {
		return nil, fmt.Errorf("read cover: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	return &Picture{MIMEType: images[idx].MIMEType, Data: data}, nil
}
