// Package snapshot emits per-stage debug images. Snapshots are purely
// observational: the pipeline never reads them back, and a failed write
// must never fail a run.
package snapshot

import (
	"fmt"
	"image"
	"image/jpeg"
	"log"
	"os"
	"path/filepath"
	"time"
)

// Recorder receives one image per pipeline stage, keyed by stage name.
type Recorder interface {
	Save(stage string, img image.Image)
}

// Discard drops every snapshot. Used for normal (non-debug) runs.
type Discard struct{}

// Save does nothing.
func (Discard) Save(string, image.Image) {}

// DirRecorder writes snapshots as JPEGs named <timestamp>_<stage>.jpg.
// All snapshots from one run share the recorder's timestamp so they sort
// together in the debug directory.
type DirRecorder struct {
	Dir string
	TS  string
}

// NewDirRecorder creates a recorder for one pipeline run.
func NewDirRecorder(dir string) *DirRecorder {
	now := time.Now()
	return &DirRecorder{
		Dir: dir,
		TS:  fmt.Sprintf("%s%06d", now.Format("20060102_150405"), now.Nanosecond()/1000),
	}
}

// Save writes the stage image. Failures are logged and swallowed.
func (r *DirRecorder) Save(stage string, img image.Image) {
	if err := os.MkdirAll(r.Dir, 0o755); err != nil {
		log.Printf("snapshot %s: %v", stage, err)
		return
	}
	path := filepath.Join(r.Dir, r.TS+"_"+stage+".jpg")
	f, err := os.Create(path)
	if err != nil {
		log.Printf("snapshot %s: %v", stage, err)
		return
	}
	defer f.Close()
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: 90}); err != nil {
		log.Printf("snapshot %s: %v", stage, err)
	}
}
