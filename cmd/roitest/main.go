// Command roitest runs the segmentation stages on a single photograph and
// reports what the resistor locator found. Useful when tuning foreground
// thresholds or the lead removal distance.
package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/ericboehlke/Resistor-Reader/internal/preprocess"
	"github.com/ericboehlke/Resistor-Reader/internal/roi"
	"github.com/ericboehlke/Resistor-Reader/internal/snapshot"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	imageFile := flag.String("f", "", "photograph to analyze")
	hueDelta := flag.Float64("hue-delta", roi.DefaultForegroundOptions().HueDelta, "hue distance from the background, 0-90")
	leadDistance := flag.Float64("lead-distance", roi.DefaultExtractOptions().LeadDistance, "distance transform threshold for lead removal")
	debugDir := flag.String("debug", "", "write stage snapshots to this directory")
	flag.Parse()

	if *imageFile == "" {
		fmt.Println("Usage: roitest -f <image> [-hue-delta N] [-lead-distance N] [-debug dir]")
		os.Exit(1)
	}

	img, err := loadImage(*imageFile)
	if err != nil {
		log.Fatalf("failed to load image: %v", err)
	}

	var rec snapshot.Recorder = snapshot.Discard{}
	if *debugDir != "" {
		rec = snapshot.NewDirRecorder(*debugDir)
	}

	fmt.Println("=== Preprocessing ===")
	art := preprocess.Preprocess(img)
	b := art.Balanced.Bounds()
	fmt.Printf("Input: %s (%dx%d)\n", *imageFile, b.Dx(), b.Dy())
	rec.Save("balanced", art.Balanced)

	fmt.Println("\n=== Foreground Mask ===")
	fgOpts := roi.DefaultForegroundOptions()
	fgOpts.HueDelta = *hueDelta
	mask, err := roi.ForegroundMask(art.HSV, fgOpts)
	if err != nil {
		log.Fatalf("foreground segmentation failed: %v", err)
	}
	total := b.Dx() * b.Dy()
	fmt.Printf("Foreground pixels: %d / %d (%.1f%%)\n",
		mask.Count(), total, 100*float64(mask.Count())/float64(total))
	rec.Save("mask", mask.ToImage())

	fmt.Println("\n=== Body Extraction ===")
	exOpts := roi.DefaultExtractOptions()
	exOpts.LeadDistance = *leadDistance
	res, err := roi.Extract(art.Balanced, mask, exOpts)
	if err != nil {
		log.Fatalf("body extraction failed: %v", err)
	}
	cb := res.Crop.Bounds()
	fmt.Printf("Crop size: %dx%d\n", cb.Dx(), cb.Dy())
	fmt.Printf("Rotation angle: %.2f degrees\n", res.Angle)
	fmt.Println("Oriented box corners:")
	for i, c := range res.Box.Corners() {
		fmt.Printf("  %d: (%.1f, %.1f)\n", i, c.X, c.Y)
	}
	rec.Save("crop", res.Crop)
	rec.Save("crop_mask", res.Mask.ToImage())
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	return img, err
}
