package tags

import (
	"os"

	"github.com/dhowden/tag"
	"go.senan.xyz/taglib"
)

// Read reads tag metadata and duration from a music file.
// It returns nil for files with no readable metadata; a track without
// metadata still plays, it just never scrobbles.
func Read(path string) *Metadata {
	m := readTags(path)
	if m == nil {
		return nil
	}
	if props, err := taglib.ReadProperties(path); err == nil {
		m.Duration = props.Length
	}
	return m
}

// readTags reads the tag fields via dhowden/tag, falling back to TagLib
// for files dhowden/tag cannot parse (some UTF-16 ID3 tags, ffmpeg-created
// M4A containers).
func readTags(path string) *Metadata {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return readTagsWithTaglib(path)
	}

	md := &Metadata{
		Title:       m.Title(),
		Artist:      m.Artist(),
		Album:       m.Album(),
		AlbumArtist: m.AlbumArtist(),
	}
	if md.Title == "" && md.Artist == "" && md.Album == "" {
		return nil
	}
	return md
}

func readTagsWithTaglib(path string) *Metadata {
	raw, err := taglib.ReadTags(path)
	if err != nil {
		return nil
	}

	get := func(key string) string {
		if values, ok := raw[key]; ok && len(values) > 0 {
			return values[0]
		}
		return ""
	}

	md := &Metadata{
		Title:       get(taglib.Title),
		Artist:      get(taglib.Artist),
		Album:       get(taglib.Album),
		AlbumArtist: get(taglib.AlbumArtist),
	}
	if md.Title == "" && md.Artist == "" && md.Album == "" {
		return nil
	}
	return md
}
