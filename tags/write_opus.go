package tags

import (
	"fmt"

	"go.senan.xyz/taglib"
)

// write replaces every comment of the Opus file with the tag's, then its
// front cover. Pictures of other types are left in place.
func (s *opusStore) write(path string) error {
	// Clear removes any existing tags not in our map
	if err := taglib.WriteTags(path, s.props, taglib.Clear); err != nil {
		return fmt.Errorf("write tags: %w", err)
	}

	idx, images, err := opusFrontCoverIndex(path)
	if err != nil {
		return err
	}
	switch {
	case s.front != nil && len(s.front.Data) > 0:
		if idx < 0 {
			idx = len(images)
		}
		err = taglib.WriteImageOptions(path, s.front.Data, idx, opusFrontCover, "", s.front.MIMEType)
	case idx >= 0:
		err = taglib.WriteImageOptions(path, nil, idx, opusFrontCover, "", "")
	}
	if err != nil {
		return fmt.Errorf("write cover art: %w", err)
	}

	logger().Debug("wrote Opus tags", "path", path, "keys", len(s.props), "cover_index", idx)
	return nil
}
