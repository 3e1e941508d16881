// Package tags reads and writes the common metadata of audio files behind one
// API, whatever the underlying tag format: ID3v2 (mp3, wav, aiff), Vorbis
// comments (flac), MP4 atoms (m4a and friends) and Opus comments.
package tags

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"
)

// Format identifies the native tag format a Tag is backed by.
type Format int

const (
	FormatID3 Format = iota + 1
	FormatFLAC
	FormatMP4
	FormatOpus
)

func (f Format) String() string {
	switch f {
	case FormatID3:
		return "ID3"
	case FormatFLAC:
		return "FLAC"
	case FormatMP4:
		return "MP4"
	case FormatOpus:
		return "Opus"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Extensions returns the lowercase file extensions (without dot) handled by f.
func (f Format) Extensions() []string {
	var exts []string
	for ext, format := range extensions {
		if format == f {
			exts = append(exts, ext)
		}
	}
	sort.Strings(exts)
	return exts
}

var extensions = map[string]Format{
	"mp3":  FormatID3,
	"wav":  FormatID3,
	"aiff": FormatID3,
	"flac": FormatFLAC,
	"mp4":  FormatMP4,
	"m4a":  FormatMP4,
	"m4p":  FormatMP4,
	"m4b":  FormatMP4,
	"m4r":  FormatMP4,
	"m4v":  FormatMP4,
	"opus": FormatOpus,
}

// FormatForExtension returns the tag format used for files with the given
// extension. The leading dot is optional and case is ignored.
func FormatForExtension(ext string) (Format, error) {
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		return 0, ErrNoFileExtension
	}
	if !utf8.ValidString(ext) {
		return 0, ErrInvalidFileExtension
	}
	f, ok := extensions[strings.ToLower(ext)]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedAudioFormat, ext)
	}
	return f, nil
}

// fileExtension returns the extension of the last path element. A name whose
// only dot is its first character, like ".mp3", has none, while "song." has
// an empty one.
func fileExtension(path string) (string, bool) {
	name := filepath.Base(path)
	if name == ".." {
		return "", false
	}
	i := strings.LastIndexByte(name, '.')
	if i <= 0 {
		return "", false
	}
	return name[i+1:], true
}

func formatForPath(path string) (Format, error) {
	ext, ok := fileExtension(path)
	if !ok {
		return 0, ErrNoFileExtension
	}
	if ext == "" {
		return 0, fmt.Errorf("%w: empty extension", ErrUnsupportedAudioFormat)
	}
	return FormatForExtension(ext)
}

// IsSupported returns true if the path has an extension handled by the package.
func IsSupported(path string) bool {
	_, err := formatForPath(path)
	return err == nil
}

// Album groups the album level fields of a tag. An empty string means the
// field is absent and a nil Cover means there is no front cover.
type Album struct {
	Title  string
	Artist string
	Cover  *Picture
}

// Tag is the metadata of one audio file. Its format is fixed when it is
// created by Read or one of the NewEmpty constructors.
type Tag struct {
	format Format
	store  fieldStore
}

// NewEmpty returns a tag of format f with no fields set.
func NewEmpty(f Format) (*Tag, error) {
	switch f {
	case FormatID3:
		return NewEmptyID3(), nil
	case FormatFLAC:
		return NewEmptyFLAC(), nil
	case FormatMP4:
		return NewEmptyMP4(), nil
	case FormatOpus:
		return NewEmptyOpus(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedAudioFormat, f)
	}
}

func NewEmptyID3() *Tag {
	return &Tag{format: FormatID3, store: newID3Store(nil)}
}

func NewEmptyFLAC() *Tag {
	return &Tag{format: FormatFLAC, store: newFLACStore(nil, nil)}
}

func NewEmptyMP4() *Tag {
	return &Tag{format: FormatMP4, store: newMP4Store(nil)}
}

func NewEmptyOpus() *Tag {
	return &Tag{format: FormatOpus, store: newOpusStore(nil, nil)}
}

// Format returns the native tag format backing t.
func (t *Tag) Format() Format {
	return t.format
}
