package apply

import (
	"os"
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestNaturalLess(t *testing.T) {
	c := qt.New(t)

	c.Assert(naturalLess("track2.mp3", "track10.mp3"), qt.IsTrue)
	c.Assert(naturalLess("track10.mp3", "track2.mp3"), qt.IsFalse)
	c.Assert(naturalLess("a.mp3", "b.mp3"), qt.IsTrue)
	c.Assert(naturalLess("Track1.mp3", "track2.mp3"), qt.IsTrue) // case-insensitive
	c.Assert(naturalLess("01 intro.mp3", "2 verse.mp3"), qt.IsTrue)
	c.Assert(naturalLess("disc1track9.mp3", "disc1track10.mp3"), qt.IsTrue)
	c.Assert(naturalLess("same.mp3", "same.mp3"), qt.IsFalse)
	c.Assert(naturalLess("short", "shorter"), qt.IsTrue)
}

func TestIsMediaFile(t *testing.T) {
	c := qt.New(t)

	c.Assert(IsMediaFile("x.mp3"), qt.IsTrue)
	c.Assert(IsMediaFile("x.FLAC"), qt.IsTrue)
	c.Assert(IsMediaFile("x.Opus"), qt.IsTrue)
	c.Assert(IsMediaFile("x.jpg"), qt.IsFalse)
	c.Assert(IsMediaFile("x.json"), qt.IsFalse)
	c.Assert(IsMediaFile("noext"), qt.IsFalse)
}

func TestMediaFiles(t *testing.T) {
	c := qt.New(t)

	dir := t.TempDir()
	for _, name := range []string{
		"track10.mp3", "track2.mp3", "track1.mp3",
		"cover.jpg", "notes.txt", "b.flac",
	} {
		err := os.WriteFile(filepath.Join(dir, name), nil, 0o644)
		c.Assert(err, qt.IsNil)
	}
	c.Assert(os.Mkdir(filepath.Join(dir, "sub.mp3"), 0o755), qt.IsNil) // dirs excluded

	files, err := MediaFiles(dir)
	c.Assert(err, qt.IsNil)

	names := make([]string, len(files))
	for i, f := range files {
		names[i] = filepath.Base(f)
	}
	c.Assert(names, qt.DeepEquals, []string{
		"b.flac", "track1.mp3", "track2.mp3", "track10.mp3",
	})
}
