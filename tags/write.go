package tags

import (
	"fmt"
	"os"
)

// Write writes t to the audio file at path, which must already exist. The
// file is modified in place. ID3 tags are always written as ID3v2.4.
func (t *Tag) Write(path string) error {
	// Check file exists
	if _, err := os.Stat(path); err != nil {
		return writeError(t.format, fmt.Errorf("file not found: %w", err))
	}
	logger().Trace("writing tag", "path", path, "format", t.format)

	if err := t.store.write(path); err != nil {
		return writeError(t.format, err)
	}
	return nil
}
