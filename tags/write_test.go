package tags

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2/v2"
	"github.com/go-flac/flacvorbis"
	"github.com/go-flac/go-flac"
	"go.senan.xyz/taglib"

	"github.com/llehouerou/multitag/internal/chunk"
)

// id3v22Header returns an ID3v2.2 tag, which the id3v2 library doesn't support.
func id3v22Header() []byte {
	return []byte{
		'I', 'D', '3', // Magic
		0x02, 0x00, // Version 2.0
		0x00,                   // Flags
		0x00, 0x00, 0x00, 0x0A, // Size (syncsafe: 10 bytes)
		// Minimal tag data (10 bytes padding)
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	}
}

// Tests for ID3 tag writing edge cases

func TestWriteMP3_ID3v22Handling(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.mp3")
	if err := os.WriteFile(path, append(id3v22Header(), mp3Frame()...), 0o600); err != nil {
		t.Fatalf("create file: %v", err)
	}

	tg, err := Read(path)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	tg.SetTitle("Test Title")
	if err := tg.Write(path); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	assertEqual(t, "ID3 version", data[3], byte(4))
	if !bytes.HasSuffix(data, mp3Frame()) {
		t.Error("audio data was not preserved")
	}
	if bytes.Count(data, []byte(id3Magic)) != 1 {
		t.Error("old ID3v2.2 tag was not stripped")
	}

	result, err := Read(path)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	assertPresent(t, "Title", result.Title, "Test Title")
}

func TestWriteMP3_ReplacesExistingTag(t *testing.T) {
	dir := t.TempDir()
	old := NewEmptyID3()
	old.SetTitle("Old Title")
	old.SetArtist("Old Artist")
	path := createTestMP3(t, dir, old)

	fresh := NewEmptyID3()
	fresh.SetTitle("New Title")
	if err := fresh.Write(path); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	result, err := Read(path)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	assertPresent(t, "Title", result.Title, "New Title")
	if _, ok := result.Artist(); ok {
		t.Error("Artist should be gone with the old tag")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasSuffix(data, mp3Frame()) || bytes.Count(data, []byte(id3Magic)) != 1 {
		t.Error("file should hold exactly one tag followed by the audio")
	}
}

func TestWriteMP3_KeepsUnmanagedFrames(t *testing.T) {
	dir := t.TempDir()
	src := NewEmptyID3()
	src.store.(*id3Store).tag.AddTextFrame("TCON", id3v2.EncodingUTF8, "Jazz")
	path := createTestMP3(t, dir, src)

	tg, err := Read(path)
	if err != nil {
		t.Fatal(err)
	}
	tg.SetTitle("Title")
	if err := tg.Write(path); err != nil {
		t.Fatal(err)
	}

	raw, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatal(err)
	}
	defer raw.Close()
	assertEqual(t, "TCON", raw.GetTextFrame("TCON").Text, "Jazz")
	assertEqual(t, "TIT2", raw.GetTextFrame("TIT2").Text, "Title")
	assertEqual(t, "version", raw.Version(), byte(4))
}

func TestWriteMP3_RemovedTagLeavesAudioOnly(t *testing.T) {
	dir := t.TempDir()
	tg := NewEmptyID3()
	tg.SetTitle("Title")
	path := createTestMP3(t, dir, tg)

	tg.RemoveTitle()
	if err := tg.Write(path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, mp3Frame()) {
		t.Errorf("file has %d bytes, want only the %d audio bytes", len(data), len(mp3Frame()))
	}
}

func TestWriteWAV_UsesID3Chunk(t *testing.T) {
	dir := t.TempDir()
	path := createTestWAV(t, dir, nil)
	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	for _, title := range []string{"First", "Second"} {
		tg := NewEmptyID3()
		tg.SetTitle(title)
		if err := tg.Write(path); err != nil {
			t.Fatalf("Write() error: %v", err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	assertEqual(t, "container", chunk.Sniff(data), chunk.RIFF)
	assertEqual(t, "RIFF size", int(binary.LittleEndian.Uint32(data[4:8])), len(data)-8)
	if !bytes.HasPrefix(data[12:], before[12:]) {
		t.Error("existing chunks were not preserved in place")
	}
	assertEqual(t, "id3 chunks", bytes.Count(data, []byte("id3 ")), 1)

	result, err := Read(path)
	if err != nil {
		t.Fatal(err)
	}
	assertPresent(t, "Title", result.Title, "Second")
}

func TestWriteAIFF_UsesID3Chunk(t *testing.T) {
	dir := t.TempDir()
	tg := NewEmptyID3()
	tg.SetArtist("Artist")
	path := createTestAIFF(t, dir, tg)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	assertEqual(t, "container", chunk.Sniff(data), chunk.AIFF)
	assertEqual(t, "FORM size", int(binary.BigEndian.Uint32(data[4:8])), len(data)-8)
	payload, found, err := chunk.Find(data, "ID3 ")
	if err != nil || !found {
		t.Fatalf("ID3 chunk not found: %v", err)
	}
	if !bytes.HasPrefix(payload, []byte(id3Magic)) {
		t.Error("chunk does not hold an ID3v2 tag")
	}
}

func TestWrite_ID3TagMovesBetweenContainers(t *testing.T) {
	dir := t.TempDir()
	src := NewEmptyID3()
	src.SetTitle("Shared")
	mp3 := createTestMP3(t, dir, src)
	wav := createTestWAV(t, dir, nil)

	tg, err := Read(mp3)
	if err != nil {
		t.Fatal(err)
	}
	if err := tg.Write(wav); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	result, err := Read(wav)
	if err != nil {
		t.Fatal(err)
	}
	assertPresent(t, "Title", result.Title, "Shared")
}

func TestWrite_NonexistentFile(t *testing.T) {
	for _, tg := range []*Tag{NewEmptyID3(), NewEmptyFLAC(), NewEmptyMP4(), NewEmptyOpus()} {
		t.Run(tg.Format().String(), func(t *testing.T) {
			err := tg.Write(filepath.Join(t.TempDir(), "missing"))
			if !errors.Is(err, os.ErrNotExist) {
				t.Errorf("Write() error = %v, want os.ErrNotExist", err)
			}
			if !IsFormatError(err, tg.Format()) {
				t.Errorf("Write() error = %v, want a %s FormatError", err, tg.Format())
			}
		})
	}
}

func TestWrite_PreservesPermissions(t *testing.T) {
	path := createTestMP3(t, t.TempDir(), nil)
	if err := os.Chmod(path, 0o640); err != nil {
		t.Fatal(err)
	}
	tg := NewEmptyID3()
	tg.SetTitle("Title")
	if err := tg.Write(path); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	assertEqual(t, "mode", info.Mode().Perm(), os.FileMode(0o640))
}

func TestStripID3v2Tag(t *testing.T) {
	audio := mp3Frame()

	got, err := stripID3v2Tag(append(id3v22Header(), audio...))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, audio) {
		t.Error("ID3v2.2 tag not stripped")
	}

	got, err = stripID3v2Tag(audio)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, audio) {
		t.Error("untagged data should be unchanged")
	}

	// footer flag adds 10 bytes
	withFooter := append([]byte{'I', 'D', '3', 4, 0, 0x10, 0, 0, 0, 0}, make([]byte, 10)...)
	got, err = stripID3v2Tag(append(withFooter, audio...))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, audio) {
		t.Error("tag with footer not stripped")
	}

	truncated := []byte{'I', 'D', '3', 3, 0, 0, 0, 0, 0x7f, 0x7f}
	if _, err := stripID3v2Tag(truncated); err == nil {
		t.Error("oversized tag should fail")
	}
}

// Tests for FLAC tag writing edge cases

func TestWriteFLAC_ID3v2HeaderStripping(t *testing.T) {
	dir := t.TempDir()
	path := createTestFLAC(t, dir, nil)

	flacData, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read FLAC: %v", err)
	}
	id3 := NewEmptyID3()
	id3.SetTitle("ID3 Title")
	var buf bytes.Buffer
	if _, err := id3.store.(*id3Store).tag.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, append(buf.Bytes(), flacData...), 0o600); err != nil {
		t.Fatal(err)
	}

	tg, err := Read(path)
	if err != nil {
		t.Fatalf("Read() with ID3v2 header error: %v", err)
	}
	tg.SetTitle("FLAC Title")
	if err := tg.Write(path); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("fLaC")) {
		t.Error("ID3v2 header should be stripped")
	}

	result, err := Read(path)
	if err != nil {
		t.Fatal(err)
	}
	assertPresent(t, "Title", result.Title, "FLAC Title")
}

func TestWriteFLAC_KeepsOtherComments(t *testing.T) {
	path := createTestFLAC(t, t.TempDir(), nil)

	f, err := flac.ParseFile(path)
	if err != nil {
		t.Fatal(err)
	}
	cmt := flacvorbis.New()
	if err := cmt.Add("GENRE", "Jazz"); err != nil {
		t.Fatal(err)
	}
	if err := cmt.Add("TITLE", "Old"); err != nil {
		t.Fatal(err)
	}
	block := cmt.Marshal()
	meta := f.Meta[:0]
	for _, m := range f.Meta {
		if m.Type != flac.VorbisComment {
			meta = append(meta, m)
		}
	}
	f.Meta = append(meta, &block)
	if err := f.Save(path); err != nil {
		t.Fatal(err)
	}

	tg, err := Read(path)
	if err != nil {
		t.Fatal(err)
	}
	tg.SetTitle("New")
	if err := tg.Write(path); err != nil {
		t.Fatal(err)
	}

	tl, err := taglib.ReadTags(path)
	if err != nil {
		t.Fatal(err)
	}
	assertTaglibTag(t, tl, "GENRE", "Jazz")
	assertTaglibTag(t, tl, taglib.Title, "New")
	assertEqual(t, "TITLE values", len(tl[taglib.Title]), 1)

	parsed, err := flac.ParseFile(path)
	if err != nil {
		t.Fatal(err)
	}
	n := 0
	for _, m := range parsed.Meta {
		if m.Type == flac.VorbisComment {
			n++
		}
	}
	assertEqual(t, "comment blocks", n, 1)
}

func TestWriteFLAC_RemoveCover(t *testing.T) {
	path := createTestFLAC(t, t.TempDir(), fullTestTags(t, FormatFLAC))

	tg, err := Read(path)
	if err != nil {
		t.Fatal(err)
	}
	tg.RemoveAllAlbumInfo()
	if err := tg.Write(path); err != nil {
		t.Fatal(err)
	}

	result, err := Read(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := result.AlbumInfo(); got != (Album{}) {
		t.Errorf("AlbumInfo() = %+v, want zero", got)
	}
	tl, err := taglib.ReadTags(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"ALBUMARTIST", "ALBUM ARTIST", "ALBUM_ARTIST"} {
		if _, ok := tl[key]; ok {
			t.Errorf("%s still present", key)
		}
	}
}

// Tests for MP4 tag writing edge cases

func TestWriteMP4_RemovalPersists(t *testing.T) {
	path := createTestM4A(t, t.TempDir(), fullTestTags(t, FormatMP4))

	tg, err := Read(path)
	if err != nil {
		t.Fatal(err)
	}
	tg.RemoveTitle()
	tg.RemoveDate()
	tg.RemoveAllAlbumInfo()
	if err := tg.Write(path); err != nil {
		t.Fatal(err)
	}

	result, err := Read(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := result.Title(); ok {
		t.Error("Title() still present")
	}
	if _, ok := result.Date(); ok {
		t.Error("Date() still present")
	}
	if got := result.AlbumInfo(); got != (Album{}) {
		t.Errorf("AlbumInfo() = %+v, want zero", got)
	}
	assertPresent(t, "Artist", result.Artist, "Test Artist")
}

func TestWriteMP4_ReplacesCover(t *testing.T) {
	path := createTestM4A(t, t.TempDir(), fullTestTags(t, FormatMP4))

	tg, err := Read(path)
	if err != nil {
		t.Fatal(err)
	}
	jpg := jpegData(t)
	if err := tg.SetAlbumInfo(Album{Cover: &Picture{MIMEType: mimeJPEG, Data: jpg}}); err != nil {
		t.Fatal(err)
	}
	if err := tg.Write(path); err != nil {
		t.Fatal(err)
	}

	result, err := Read(path)
	if err != nil {
		t.Fatal(err)
	}
	assertEqual(t, "pictures", len(result.store.(*mp4Store).tags.Pictures), 1)
	cover := result.AlbumInfo().Cover
	if cover == nil || cover.MIMEType != mimeJPEG || !bytes.Equal(cover.Data, jpg) {
		t.Errorf("cover = %v, want the JPEG", cover)
	}
}

// Tests for Opus tag writing edge cases

func TestWriteOpus_RemovesAlbumArtistSpellings(t *testing.T) {
	path := createTestOpus(t, t.TempDir(), nil)
	err := taglib.WriteTags(path, map[string][]string{
		"ALBUMARTIST":  {"A"},
		"ALBUM_ARTIST": {"B"},
		"GENRE":        {"Jazz"},
	}, 0)
	if err != nil {
		t.Fatal(err)
	}

	tg, err := Read(path)
	if err != nil {
		t.Fatal(err)
	}
	tg.RemoveAllAlbumInfo()
	if err := tg.Write(path); err != nil {
		t.Fatal(err)
	}

	tl, err := taglib.ReadTags(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"ALBUMARTIST", "ALBUM_ARTIST"} {
		if _, ok := tl[key]; ok {
			t.Errorf("%s still present", key)
		}
	}
	assertTaglibTag(t, tl, "GENRE", "Jazz")
}

func TestWriteOpus_ClearsCover(t *testing.T) {
	path := createTestOpus(t, t.TempDir(), fullTestTags(t, FormatOpus))

	tg, err := Read(path)
	if err != nil {
		t.Fatal(err)
	}
	tg.RemoveAllAlbumInfo()
	if err := tg.Write(path); err != nil {
		t.Fatal(err)
	}

	img, err := taglib.ReadImage(path)
	if err != nil {
		t.Fatal(err)
	}
	assertEqual(t, "image bytes", len(img), 0)
}

func TestWriteOpus_CoverMIMEPassesThrough(t *testing.T) {
	path := createTestOpus(t, t.TempDir(), nil)
	data := jpegData(t)

	tg, err := Read(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := tg.SetAlbumInfo(Album{Cover: &Picture{MIMEType: "image/jpg", Data: data}}); err != nil {
		t.Fatal(err)
	}
	if err := tg.Write(path); err != nil {
		t.Fatal(err)
	}

	result, err := Read(path)
	if err != nil {
		t.Fatal(err)
	}
	cover := result.AlbumInfo().Cover
	if cover == nil {
		t.Fatal("cover should be present")
	}
	assertEqual(t, "MIMEType", cover.MIMEType, "image/jpg")
	if !bytes.Equal(cover.Data, data) {
		t.Error("cover data differs")
	}
}

// opusWithBackCoverFirst returns an Opus file whose first picture is a back
// cover and whose second one is the front cover.
func opusWithBackCoverFirst(t *testing.T, back, front []byte) string {
	t.Helper()
	path := createTestOpus(t, t.TempDir(), nil)
	if err := taglib.WriteImageOptions(path, back, 0, "Back Cover", "", mimeJPEG); err != nil {
		t.Fatal(err)
	}
	if err := taglib.WriteImageOptions(path, front, 1, opusFrontCover, "", mimePNG); err != nil {
		t.Fatal(err)
	}
	props, err := taglib.ReadProperties(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(props.Images) != 2 {
		t.Skipf("TagLib stored %d pictures, want 2", len(props.Images))
	}
	return path
}

func TestReadOpus_FrontCoverIsNotFirstPicture(t *testing.T) {
	back, front := jpegData(t), pngData(t)
	path := opusWithBackCoverFirst(t, back, front)

	tg, err := Read(path)
	if err != nil {
		t.Fatal(err)
	}
	cover := tg.AlbumInfo().Cover
	if cover == nil {
		t.Fatal("front cover should be found")
	}
	assertEqual(t, "MIMEType", cover.MIMEType, mimePNG)
	if !bytes.Equal(cover.Data, front) {
		t.Error("read the back cover instead of the front cover")
	}
}

func TestWriteOpus_KeepsOtherPictures(t *testing.T) {
	back, front := jpegData(t), pngData(t)
	path := opusWithBackCoverFirst(t, back, front)

	tg, err := Read(path)
	if err != nil {
		t.Fatal(err)
	}
	tg.RemoveAllAlbumInfo()
	if err := tg.Write(path); err != nil {
		t.Fatal(err)
	}

	props, err := taglib.ReadProperties(path)
	if err != nil {
		t.Fatal(err)
	}
	assertEqual(t, "pictures", len(props.Images), 1)
	assertEqual(t, "remaining type", props.Images[0].Type, "Back Cover")
	img, err := taglib.ReadImageOptions(path, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(img, back) {
		t.Error("back cover changed")
	}

	// Setting a cover again adds a front cover next to the back cover
	if err := tg.SetAlbumInfo(Album{Cover: &Picture{MIMEType: mimePNG, Data: front}}); err != nil {
		t.Fatal(err)
	}
	if err := tg.Write(path); err != nil {
		t.Fatal(err)
	}
	props, err = taglib.ReadProperties(path)
	if err != nil {
		t.Fatal(err)
	}
	assertEqual(t, "pictures", len(props.Images), 2)
	result, err := Read(path)
	if err != nil {
		t.Fatal(err)
	}
	if cover := result.AlbumInfo().Cover; cover == nil || !bytes.Equal(cover.Data, front) {
		t.Errorf("cover = %v, want the front cover", cover)
	}
}

func TestWriteMP4_CoverTypesRoundTrip(t *testing.T) {
	tests := []struct {
		mime string
		data []byte
	}{
		{mimeBMP, bmpData(t)},
		{mimeJPEG, jpegData(t)},
		{mimePNG, pngData(t)},
	}

	for _, tt := range tests {
		t.Run(tt.mime, func(t *testing.T) {
			path := createTestM4A(t, t.TempDir(), nil)

			tg, err := Read(path)
			if err != nil {
				t.Fatal(err)
			}
			if err := tg.SetAlbumInfo(Album{Cover: &Picture{MIMEType: tt.mime, Data: tt.data}}); err != nil {
				t.Fatal(err)
			}
			if err := tg.Write(path); err != nil {
				t.Fatal(err)
			}

			result, err := Read(path)
			if err != nil {
				t.Fatal(err)
			}
			cover := result.AlbumInfo().Cover
			if cover == nil {
				t.Fatal("cover should be present")
			}
			assertEqual(t, "MIMEType", cover.MIMEType, tt.mime)
			if !bytes.Equal(cover.Data, tt.data) {
				t.Error("cover data differs")
			}
		})
	}
}
