// Package main provides the resistor reader appliance entry point. It
// wires the camera, trigger and display collaborators around the reading
// pipeline and runs one of three modes: read resistors, gather labeled
// test pictures, or plain camera captures.
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"
	"syscall"

	"github.com/ericboehlke/Resistor-Reader/internal/config"
	"github.com/ericboehlke/Resistor-Reader/internal/hardware"
	"github.com/ericboehlke/Resistor-Reader/internal/pipeline"
	"github.com/ericboehlke/Resistor-Reader/internal/resolve"
	"github.com/ericboehlke/Resistor-Reader/internal/snapshot"
	"github.com/ericboehlke/Resistor-Reader/internal/version"
)

const usage = `Usage: rreader <mode> [flags]

Modes:
  read     decode resistors and show their value
  gather   collect labeled test pictures into a CSV
  camera   take plain pictures
  version  print build information

Run "rreader <mode> -h" for mode flags.`

// commonFlags are shared by every mode.
type commonFlags struct {
	device     int
	images     string
	resolution string
}

func addCommonFlags(fs *flag.FlagSet) *commonFlags {
	c := &commonFlags{}
	fs.IntVar(&c.device, "device", 0, "camera device index")
	fs.StringVar(&c.images, "images", "", "serve captures from this image directory instead of a camera")
	fs.StringVar(&c.resolution, "resolution", "640x480", "camera resolution, e.g. 640x480")
	return c
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var err error
	switch os.Args[1] {
	case "read":
		err = runRead(ctx, os.Args[2:])
	case "gather":
		err = runGather(ctx, os.Args[2:])
	case "camera":
		err = runCamera(ctx, os.Args[2:])
	case "version":
		fmt.Printf("rreader %s (commit %s, built %s)\n",
			version.Version, version.GitCommit, version.BuildTime)
	case "-h", "--help", "help":
		fmt.Println(usage)
	default:
		fmt.Fprintf(os.Stderr, "unknown mode %q\n%s\n", os.Args[1], usage)
		os.Exit(1)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
}

// runRead decodes resistors in a loop: wait for the trigger, capture,
// run the pipeline, show the formatted value. Pipeline errors show Err on
// the display and the loop continues with the next capture.
func runRead(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("read", flag.ExitOnError)
	common := addCommonFlags(fs)
	configFile := fs.String("config", "config.yaml", "pipeline config file")
	fs.Parse(args)

	var current atomic.Pointer[config.Config]
	cfg := loadConfig(*configFile)
	current.Store(&cfg)

	if _, err := os.Stat(*configFile); err == nil {
		stop, err := config.Watch(*configFile, func(next config.Config) {
			log.Printf("config reloaded from %s", *configFile)
			current.Store(&next)
		})
		if err != nil {
			log.Printf("config watch disabled: %v", err)
		} else {
			defer stop()
		}
	}

	cam, trigger, err := openCapture(common)
	if err != nil {
		return err
	}
	defer cam.Close()

	display := hardware.ConsoleDisplay{}
	display.Print("LOAD")

	for {
		display.Print("PUSH")
		if err := trigger.WaitForPress(ctx); err != nil {
			return finished(err)
		}

		display.Print("READ")
		trigger.SetLamp(true)
		img, err := cam.Capture(ctx)
		trigger.SetLamp(false)
		if err != nil {
			return finished(err)
		}

		cfg := *current.Load()
		var rec snapshot.Recorder = snapshot.Discard{}
		if cfg.Debug.Any() {
			rec = snapshot.NewDirRecorder(cfg.Debug.Dir)
		}

		ohms, err := pipeline.Decode(img, cfg, rec)
		if err != nil {
			log.Printf("error reading resistor: %v", err)
			display.Print("Err")
			continue
		}
		log.Printf("detected resistance: %g ohms", ohms)
		display.Print(resolve.FormatOhms(ohms))
	}
}

// runGather collects labeled training pictures: prompt for the known
// resistance, capture, save the image and append number,resistance to the
// CSV.
func runGather(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("gather", flag.ExitOnError)
	common := addCommonFlags(fs)
	saveDir := fs.String("save-dir", "resistor_pictures", "directory for images and CSV")
	csvPath := fs.String("csv-path", "", "CSV file (default <save-dir>/resistors.csv)")
	startNumber := fs.Int("start-number", 0, "starting image number")
	fs.Parse(args)

	if *csvPath == "" {
		*csvPath = filepath.Join(*saveDir, "resistors.csv")
	}
	if err := os.MkdirAll(*saveDir, 0o755); err != nil {
		return err
	}

	cam, trigger, err := openCapture(common)
	if err != nil {
		return err
	}
	defer cam.Close()

	display := hardware.ConsoleDisplay{}
	display.Print("GATH")
	in := newLinePrompt()

	for number := *startNumber; ; number++ {
		value, err := in.ask(ctx, "resistance: ")
		if err != nil {
			return finished(err)
		}
		ohms, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			fmt.Println("Invalid resistance value, please enter a number.")
			number--
			continue
		}
		display.Print(resolve.FormatOhms(ohms))

		trigger.SetLamp(true)
		img, err := cam.Capture(ctx)
		trigger.SetLamp(false)
		if err != nil {
			return finished(err)
		}

		filename := filepath.Join(*saveDir, fmt.Sprintf("%04d.jpg", number))
		if err := saveJPEG(filename, img); err != nil {
			return err
		}
		if err := appendCSV(*csvPath, number, strings.TrimSpace(value)); err != nil {
			return err
		}
		log.Printf("saved image %s with resistance %s", filename, strings.TrimSpace(value))
	}
}

// runCamera takes plain pictures with incrementing filenames.
func runCamera(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("camera", flag.ExitOnError)
	common := addCommonFlags(fs)
	startNumber := fs.Int("start-number", 0, "starting image number")
	fs.Parse(args)

	cam, trigger, err := openCapture(common)
	if err != nil {
		return err
	}
	defer cam.Close()

	display := hardware.ConsoleDisplay{}
	number := *startNumber

	for {
		outfile := fmt.Sprintf("camera_capture_%d.jpg", number)
		for fileExists(outfile) {
			number++
			outfile = fmt.Sprintf("camera_capture_%d.jpg", number)
		}

		display.Print("PUSH")
		if err := trigger.WaitForPress(ctx); err != nil {
			return finished(err)
		}

		display.Print("SNAP")
		trigger.SetLamp(true)
		img, err := cam.Capture(ctx)
		trigger.SetLamp(false)
		if err != nil {
			return finished(err)
		}

		if err := saveJPEG(outfile, img); err != nil {
			return err
		}
		display.Print("DONE")
		log.Printf("saved to %s", outfile)
	}
}

// openCapture builds the camera and trigger for the requested source:
// an image directory runs unattended, a real webcam waits on the console.
func openCapture(c *commonFlags) (hardware.Camera, hardware.Trigger, error) {
	if c.images != "" {
		cam, err := hardware.OpenImageDir(c.images)
		if err != nil {
			return nil, nil, err
		}
		return cam, hardware.AutoTrigger{}, nil
	}

	w, h, err := parseResolution(c.resolution)
	if err != nil {
		return nil, nil, err
	}
	cam, err := hardware.OpenWebcam(c.device, w, h)
	if err != nil {
		return nil, nil, err
	}
	return cam, hardware.NewStdinTrigger(), nil
}

// loadConfig reads the config file, or falls back to defaults when the
// file does not exist.
func loadConfig(path string) config.Config {
	cfg, err := config.Load(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("using default config: %v", err)
		}
		return config.Default()
	}
	return cfg
}

func parseResolution(s string) (w, h int, err error) {
	parts := strings.SplitN(strings.ToLower(s), "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("resolution must be WxH, e.g. 640x480, got %q", s)
	}
	w, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("bad resolution width %q", parts[0])
	}
	h, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("bad resolution height %q", parts[1])
	}
	return w, h, nil
}

func saveJPEG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return jpeg.Encode(f, img, &jpeg.Options{Quality: 95})
}

// appendCSV appends one number,resistance row, writing the header first if
// the file is new.
func appendCSV(path string, number int, resistance string) error {
	_, statErr := os.Stat(path)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if errors.Is(statErr, os.ErrNotExist) {
		if err := w.Write([]string{"number", "resistance"}); err != nil {
			return err
		}
	}
	if err := w.Write([]string{strconv.Itoa(number), resistance}); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// finished maps end-of-input conditions to a clean exit.
func finished(err error) error {
	if errors.Is(err, io.EOF) {
		log.Println("input exhausted, exiting")
		return nil
	}
	return err
}

// linePrompt reads console answers without racing the signal context.
type linePrompt struct {
	lines chan string
	errs  chan error
}

func newLinePrompt() *linePrompt {
	p := &linePrompt{lines: make(chan string), errs: make(chan error, 1)}
	go func() {
		var s string
		for {
			if _, err := fmt.Scanln(&s); err != nil {
				p.errs <- err
				return
			}
			p.lines <- s
		}
	}()
	return p
}

func (p *linePrompt) ask(ctx context.Context, prompt string) (string, error) {
	fmt.Print(prompt)
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case err := <-p.errs:
		return "", err
	case line := <-p.lines:
		return line, nil
	}
}
