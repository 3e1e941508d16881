package tags

import (
	"fmt"

	mp4tag "github.com/Sorrow446/go-mp4tag"
)

// Atoms cleared before the tag is written, named the way mp4tag expects them.
var mp4ManagedAtoms = []string{"title", "artist", "album", "albumartist", "date", "allpictures"}

// write clears the atoms the tag manages, then writes the non-empty fields.
// mp4tag merges new values into the atoms already in the file.
func (s *mp4Store) write(path string) error {
	if err := writeMP4(path, &mp4tag.MP4Tags{}, mp4ManagedAtoms); err != nil {
		return fmt.Errorf("clear atoms: %w", err)
	}
	logger().Debug("writing MP4 tags", "path", path, "pictures", len(s.tags.Pictures))
	return writeMP4(path, s.tags, nil)
}

func writeMP4(path string, tags *mp4tag.MP4Tags, del []string) error {
	mp4, err := mp4tag.Open(path)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer mp4.Close()

	if err := mp4.Write(tags, del); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}
