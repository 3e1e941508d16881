package tags

import (
	"errors"
	"fmt"
)

// Errors returned while dispatching a path to a format, or while converting
// field values between formats.
var (
	ErrNoFileExtension        = errors.New("file has no extension")
	ErrInvalidFileExtension   = errors.New("file extension must be valid UTF-8")
	ErrUnsupportedAudioFormat = errors.New("unsupported audio format")
	ErrTimestampParse         = errors.New("unable to parse timestamp")
	ErrInvalidImageFormat     = errors.New("cover image is not of a valid type (bmp, jpeg, png)")
)

// FormatError wraps an error reported by the codec of one format.
// The codec's own error is kept as is and is reachable with errors.As/Unwrap.
type FormatError struct {
	Format Format
	Op     string // "read" or "write"
	Err    error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Format, e.Op, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// IsFormatError reports whether err was produced by the codec of format f.
func IsFormatError(err error, f Format) bool {
	var fe *FormatError
	return errors.As(err, &fe) && fe.Format == f
}

func readError(f Format, err error) error {
	return &FormatError{Format: f, Op: "read", Err: err}
}

func writeError(f Format, err error) error {
	return &FormatError{Format: f, Op: "write", Err: err}
}
