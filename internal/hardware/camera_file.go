package hardware

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"sort"
)

// FileCamera serves images from disk instead of a sensor, for bench runs
// against gathered test pictures. Capture returns the files in order and
// io.EOF once exhausted.
type FileCamera struct {
	paths []string
	next  int
}

// NewFileCamera creates a camera over explicit image paths.
func NewFileCamera(paths ...string) *FileCamera {
	return &FileCamera{paths: paths}
}

// OpenImageDir creates a camera over every .jpg/.jpeg/.png in dir, in
// lexical order.
func OpenImageDir(dir string) (*FileCamera, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("open image dir: %w", err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch filepath.Ext(e.Name()) {
		case ".jpg", ".jpeg", ".png":
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no images in %s", dir)
	}
	sort.Strings(paths)
	return &FileCamera{paths: paths}, nil
}

// Capture decodes the next image.
func (c *FileCamera) Capture(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c.next >= len(c.paths) {
		return nil, io.EOF
	}
	path := c.paths[c.next]
	c.next++

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// Close is a no-op.
func (c *FileCamera) Close() error { return nil }
