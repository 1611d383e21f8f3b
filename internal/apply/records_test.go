// Copyright 2025 The applymeta authors
// SPDX-License-Identifier: MIT

package apply

import (
	"os"
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	err := os.WriteFile(path, []byte(content), 0o644)
	if err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadRecords(t *testing.T) {
	c := qt.New(t)

	path := writeFile(t, "meta.json", `[
		{"title": "One", "artist": "A"},
		{"title": "Two", "track": 2}
	]`)

	recs, err := LoadRecords(path)
	c.Assert(err, qt.IsNil)
	c.Assert(recs, qt.HasLen, 2)
	c.Assert(recs[0]["title"], qt.Equals, "One")
	c.Assert(recs[1]["track"], qt.Equals, float64(2))
}

func TestLoadRecordsRejectsNonArrayRoot(t *testing.T) {
	c := qt.New(t)

	path := writeFile(t, "meta.json", `{"title": "One"}`)
	_, err := LoadRecords(path)
	c.Assert(err, qt.ErrorMatches, "metadata root must be a JSON array.*")
}

func TestLoadRecordsRejectsNonObjectEntry(t *testing.T) {
	c := qt.New(t)

	path := writeFile(t, "meta.json", `[{"title": "One"}, "just a string"]`)
	_, err := LoadRecords(path)
	c.Assert(err, qt.ErrorMatches, "metadata entry 1 is not an object.*")
}

func TestRecordFields(t *testing.T) {
	c := qt.New(t)

	rec := Record{
		"title":     "Song",
		"artist":    "Someone",
		"track":     float64(7),
		"year":      float64(2024),
		"rating":    4.5,
		"image":     "cover.png",      // always skipped
		"comment":   nil,              // null skipped
		"empty":     "   ",            // blank after trim skipped
		"nested":    map[string]any{}, // structured skipped
		"listfield": []any{"a"},       // structured skipped
		"padded":    "  keep me  ",    // trimmed, kept
	}

	c.Assert(rec.Fields(), qt.DeepEquals, []string{
		"artist=Someone",
		"padded=keep me",
		"rating=4.5",
		"title=Song",
		"track=7",
		"year=2024",
	})
}

func TestRecordImage(t *testing.T) {
	c := qt.New(t)

	_, ok := Record{}.Image()
	c.Assert(ok, qt.IsFalse)

	_, ok = Record{"image": nil}.Image()
	c.Assert(ok, qt.IsFalse)

	_, ok = Record{"image": "   "}.Image()
	c.Assert(ok, qt.IsFalse)

	img, ok := Record{"image": "art/cover.jpg"}.Image()
	c.Assert(ok, qt.IsTrue)
	c.Assert(img, qt.Equals, "art/cover.jpg")
}
