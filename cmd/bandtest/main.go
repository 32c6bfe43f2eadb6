// Command bandtest runs the full decode pipeline on a single photograph
// and reports the detected bands and resistance.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/ericboehlke/Resistor-Reader/internal/bands"
	"github.com/ericboehlke/Resistor-Reader/internal/config"
	"github.com/ericboehlke/Resistor-Reader/internal/preprocess"
	"github.com/ericboehlke/Resistor-Reader/internal/resolve"
	"github.com/ericboehlke/Resistor-Reader/internal/roi"
	"github.com/ericboehlke/Resistor-Reader/internal/snapshot"
)

// report is the machine readable result for -json output.
type report struct {
	Image    string          `json:"image"`
	Colors   []string        `json:"colors"`
	Segments []bands.Segment `json:"segments"`
	Flipped  bool            `json:"flipped"`
	Ohms     float64         `json:"ohms"`
	Display  string          `json:"display"`
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	imageFile := flag.String("f", "", "photograph to decode")
	configFile := flag.String("config", "", "optional pipeline config file")
	jsonOut := flag.Bool("json", false, "print the result as JSON")
	debugDir := flag.String("debug", "", "write stage snapshots to this directory")
	flag.Parse()

	if *imageFile == "" {
		fmt.Println("Usage: bandtest -f <image> [-config file] [-json] [-debug dir]")
		os.Exit(1)
	}

	cfg := config.Default()
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
	}

	var rec snapshot.Recorder = snapshot.Discard{}
	if *debugDir != "" {
		rec = snapshot.NewDirRecorder(*debugDir)
	}

	img, err := loadImage(*imageFile)
	if err != nil {
		log.Fatalf("failed to load image: %v", err)
	}

	art := preprocess.Preprocess(img)
	mask, err := roi.ForegroundMask(art.HSV, cfg.Foreground)
	if err != nil {
		log.Fatalf("foreground segmentation failed: %v", err)
	}
	res, err := roi.Extract(art.Balanced, mask, cfg.ROI)
	if err != nil {
		log.Fatalf("body extraction failed: %v", err)
	}
	rec.Save("crop", res.Crop)

	colors, segments, flipped, err := bands.SegmentAndClassify(res.Crop, cfg.Bands)
	if err != nil {
		log.Fatalf("band detection failed: %v", err)
	}
	rec.Save("bands", bands.RenderOverlay(res.Crop, segments, colors, flipped))

	names := make([]string, len(colors))
	for i, c := range colors {
		names[i] = string(c)
	}
	ohms, err := resolve.Resolve(names)
	if err != nil {
		log.Fatalf("failed to resolve color code: %v", err)
	}

	if *jsonOut {
		out, err := json.MarshalIndent(report{
			Image:    *imageFile,
			Colors:   names,
			Segments: segments,
			Flipped:  flipped,
			Ohms:     ohms,
			Display:  resolve.FormatOhms(ohms),
		}, "", "  ")
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(string(out))
		return
	}

	fmt.Println("=== Band Detection ===")
	for i, seg := range segments {
		fmt.Printf("Band %d: columns [%d, %d) %s\n", i+1, seg.Start, seg.End, colors[i])
	}
	fmt.Printf("Reading direction flipped: %v\n", flipped)

	fmt.Println("\n=== Resistance ===")
	fmt.Printf("%g ohms (%s)\n", ohms, resolve.FormatOhms(ohms))
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
