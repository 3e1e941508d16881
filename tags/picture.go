package tags

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // register decoder for cover dimensions
	_ "image/png"  // register decoder for cover dimensions
	"net/http"
	"strings"

	mp4tag "github.com/Sorrow446/go-mp4tag"
	"github.com/bogem/id3v2/v2"
	"github.com/go-flac/flacpicture"
	_ "golang.org/x/image/bmp" // register decoder for cover dimensions
)

const (
	mimeBMP  = "image/bmp"
	mimeJPEG = "image/jpeg"
	mimePNG  = "image/png"
)

// mp4tag only names the JPEG and PNG codes.
const mp4ImageTypeBMP mp4tag.ImageType = 27

// Picture is an embedded image with its MIME type.
type Picture struct {
	MIMEType string
	Data     []byte
}

func (p Picture) String() string {
	return fmt.Sprintf("Picture data (%s, %d bytes)", p.MIMEType, len(p.Data))
}

func newPicture(mimeType string, data []byte) *Picture {
	if mimeType == "" {
		mimeType = detectMimeType(data)
	}
	return &Picture{MIMEType: mimeType, Data: bytes.Clone(data)}
}

// detectMimeType detects the MIME type of image data.
func detectMimeType(data []byte) string {
	if len(data) == 0 {
		return mimeJPEG
	}
	contentType := http.DetectContentType(data)
	if strings.HasPrefix(contentType, "image/") {
		return contentType
	}
	// Default to JPEG for unknown types
	return mimeJPEG
}

func pictureFromID3(pf id3v2.PictureFrame) *Picture {
	return newPicture(pf.MimeType, pf.Picture)
}

func id3Picture(p Picture) id3v2.PictureFrame {
	return id3v2.PictureFrame{
		Encoding:    id3v2.EncodingUTF8,
		MimeType:    p.MIMEType,
		PictureType: id3v2.PTFrontCover,
		Picture:     bytes.Clone(p.Data),
	}
}

func pictureFromFLAC(pic *flacpicture.MetadataBlockPicture) *Picture {
	return newPicture(pic.MIME, pic.ImageData)
}

// flacPicture builds a front cover block. Dimensions are decoded from the
// image header when the data is a BMP, JPEG or PNG and left at zero otherwise.
func flacPicture(p Picture) *flacpicture.MetadataBlockPicture {
	pic := &flacpicture.MetadataBlockPicture{
		PictureType: flacpicture.PictureTypeFrontCover,
		MIME:        p.MIMEType,
		ImageData:   bytes.Clone(p.Data),
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(p.Data))
	if err != nil {
		return pic
	}
	pic.Width = uint32(cfg.Width)
	pic.Height = uint32(cfg.Height)
	pic.ColorDepth, pic.IndexedColorCount = colorDepth(cfg.ColorModel)
	return pic
}

func colorDepth(m color.Model) (depth, paletteSize uint32) {
	if pal, ok := m.(color.Palette); ok {
		return 8, uint32(len(pal))
	}
	switch m {
	case color.GrayModel:
		return 8, 0
	case color.Gray16Model:
		return 16, 0
	case color.NRGBAModel:
		return 32, 0
	case color.RGBA64Model:
		return 48, 0
	case color.NRGBA64Model:
		return 64, 0
	default:
		return 24, 0
	}
}

// pictureFromMP4 trusts the image signature over the atom's type code, since
// mp4tag stores every code but PNG as JPEG.
func pictureFromMP4(pic *mp4tag.MP4Picture) *Picture {
	mimeType := imageSignatureMIME(pic.Data)
	if mimeType == "" {
		switch pic.Format {
		case mp4tag.ImageTypeJPEG:
			mimeType = mimeJPEG
		case mp4tag.ImageTypePNG:
			mimeType = mimePNG
		case mp4ImageTypeBMP:
			mimeType = mimeBMP
		}
	}
	return newPicture(mimeType, pic.Data)
}

// imageSignatureMIME returns the MIME type of BMP, JPEG and PNG data, or ""
// for anything else.
func imageSignatureMIME(data []byte) string {
	switch {
	case bytes.HasPrefix(data, []byte("BM")):
		return mimeBMP
	case bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")):
		return mimePNG
	case bytes.HasPrefix(data, []byte("\xff\xd8\xff")):
		return mimeJPEG
	default:
		return ""
	}
}

// mp4Picture converts p to an artwork atom. MP4 only knows BMP, JPEG and PNG
// and the MIME type must name one of them exactly.
func mp4Picture(p Picture) (*mp4tag.MP4Picture, error) {
	var format mp4tag.ImageType
	switch p.MIMEType {
	case mimeJPEG:
		format = mp4tag.ImageTypeJPEG
	case mimePNG:
		format = mp4tag.ImageTypePNG
	case mimeBMP:
		format = mp4ImageTypeBMP
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidImageFormat, p.MIMEType)
	}
	return &mp4tag.MP4Picture{Format: format, Data: bytes.Clone(p.Data)}, nil
}
