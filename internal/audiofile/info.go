package audiofile

import (
	"os"
	"path/filepath"

	"github.com/dhowden/tag"
)

// Info holds display metadata for a loaded file.
type Info struct {
	Path   string
	Title  string
	Artist string
	Album  string
}

// ReadInfo reads tag metadata from an audio file. Files without tags
// (typical for the WAV captures this tool targets) fall back to the
// file name as title.
func ReadInfo(path string) Info {
	info := Info{
		Path:  path,
		Title: filepath.Base(path),
	}

	f, err := os.Open(path)
	if err != nil {
		return info
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return info
	}
	if t := m.Title(); t != "" {
		info.Title = t
	}
	info.Artist = m.Artist()
	info.Album = m.Album()
	return info
}
