package snapshot

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 100, G: 150, B: 200, A: 255})
		}
	}
	return img
}

func TestDirRecorderWritesStages(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "debug")
	rec := NewDirRecorder(dir)
	rec.Save("pre", testImage())
	rec.Save("bands", testImage())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
		// One shared run timestamp prefixes every file.
		assert.True(t, strings.HasPrefix(e.Name(), rec.TS+"_"), e.Name())
		assert.True(t, strings.HasSuffix(e.Name(), ".jpg"), e.Name())
	}
	assert.Contains(t, strings.Join(names, " "), "_pre.jpg")
	assert.Contains(t, strings.Join(names, " "), "_bands.jpg")
}

func TestDirRecorderSwallowsFailures(t *testing.T) {
	// An unwritable directory path must not panic or error out the caller.
	file := filepath.Join(t.TempDir(), "occupied")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	rec := NewDirRecorder(filepath.Join(file, "sub"))
	rec.Save("pre", testImage())
}

func TestDiscard(t *testing.T) {
	Discard{}.Save("anything", testImage())
}
