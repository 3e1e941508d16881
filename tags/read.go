package tags

// Read reads the tag of the audio file at path. The format is chosen from
// the file extension. ID3 and MP4 files that carry no tag yield an empty one.
func Read(path string) (*Tag, error) {
	format, err := formatForPath(path)
	if err != nil {
		return nil, err
	}
	logger().Trace("reading tag", "path", path, "format", format)

	switch format {
	case FormatID3:
		return readID3(path)
	case FormatFLAC:
		return readFLAC(path)
	case FormatMP4:
		return readMP4(path)
	default:
		return readOpus(path)
	}
}
