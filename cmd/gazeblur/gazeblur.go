package main

import(
	"context"
	"flag"
	"fmt"
	"image"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/abworrall/gazeblur/pkg/gazeblur"
)

var(
	fVerbosity int
	fOutputFilename string
	fStage string
	fBoundary string
	fGaze string
	fGuarded bool
	fWorkers int
	fPixelPitch float64
	fPupil float64
	fE1 float64
	fE2 float64
	fVisualAngleScale float64
	fPreviewWidth int
	fGamma bool
	fDumpDebug bool
	fDebugPixel string
	fSynthetic string
	fWatch bool
	fCompare string
)

func init() {
	flag.IntVar(&fVerbosity, "v", 0, "how verbose to get")
	flag.StringVar(&fOutputFilename, "o", "out.png", "name of output image file (.png, .exr or .hdr)")
	flag.StringVar(&fStage, "stage", "dof", "which filter to run: "+gazeblur.ListStages())
	flag.StringVar(&fBoundary, "boundary", "clamp", "what to read past the image edge: clamp, wrap or mirror")
	flag.StringVar(&fGaze, "gaze", "", "gaze point in window pixels, as x,y")
	flag.BoolVar(&fGuarded, "guarded", false, "clamp divisors near zero, instead of letting NaN/Inf through")
	flag.IntVar(&fWorkers, "workers", 0, "goroutines for the filter pass (0 means one per CPU)")
	flag.Float64Var(&fPixelPitch, "pitch", 0, "display pixel pitch in mm (0 means use the config, or EXIF)")
	flag.Float64Var(&fPupil, "pupil", 4, "pupil diameter in mm")
	flag.Float64Var(&fE1, "e1", 5, "foveal/middle eccentricity boundary, degrees")
	flag.Float64Var(&fE2, "e2", 10, "middle/outer eccentricity boundary, degrees")
	flag.Float64Var(&fVisualAngleScale, "scale", 0.02, "degrees of visual angle per pixel")
	flag.IntVar(&fPreviewWidth, "preview", 0, "also write a PNG preview this many pixels wide")
	flag.BoolVar(&fGamma, "gamma", false, "apply sRGB gamma expansion to LDR output")
	flag.BoolVar(&fDumpDebug, "debug", false, "write the region map and intermediate grids as PNGs")
	flag.StringVar(&fDebugPixel, "debugpixel", "", "log the workings for the pixel at x,y")
	flag.StringVar(&fSynthetic, "synthetic", "", "ignore the args, and filter a generated WxH test frame")
	flag.BoolVar(&fWatch, "watch", false, "keep running, and refilter whenever an input changes")
	flag.StringVar(&fCompare, "compare", "", "reference image to compare the output against")
	flag.Parse()

	log.Printf("gazeblur starting\n")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if fVerbosity > 0 {
		level := slog.LevelInfo
		if fVerbosity > 1 { level = slog.LevelDebug }
		gazeblur.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	}

	if err := run(ctx); err != nil {
		log.Fatal(err)
	}

	if fWatch && fSynthetic == "" {
		if err := watch(ctx); err != nil {
			log.Fatal(err)
		}
	}
}

// run loads everything, filters it, and writes the results
func run(ctx context.Context) error {
	f, err := load()
	if err != nil {
		return err
	}
	applyFlags(&f)

	if f.Verbosity > 0 {
		log.Printf("Final configuration:-\n\n%s\n", f.Config.AsYaml())
	}

	if err := f.Filter(ctx); err != nil {
		return err
	}
	log.Printf("%s\n", f.Stats())

	if err := f.WriteOutput(f.OutputFilename); err != nil {
		return err
	}
	log.Printf("wrote %s\n", f.OutputFilename)

	prefix := strings.TrimSuffix(f.OutputFilename, filepath.Ext(f.OutputFilename)) + "-"
	if f.DumpDebug {
		if err := f.DumpDebugImages(prefix); err != nil {
			return err
		}
	}

	if fCompare != "" {
		ref, err := gazeblur.LoadColorImage(fCompare)
		if err != nil {
			return err
		}
		metric, diff, err := gazeblur.ImgDiff(f.Output, ref)
		if err != nil {
			return err
		}
		log.Printf("compared with %s: mean gray diff %.6f, %s\n", fCompare, metric, diff.Stats())
		if f.DumpDebug {
			if err := diff.SaveImg(fmt.Sprintf("diff vs %s", filepath.Base(fCompare)), prefix+"diff.png"); err != nil {
				return err
			}
		}
	}
	return nil
}

func load() (gazeblur.Frame, error) {
	if fSynthetic != "" {
		var w, h int
		if _, err := fmt.Sscanf(fSynthetic, "%dx%d", &w, &h); err != nil {
			return gazeblur.Frame{}, fmt.Errorf("-synthetic %q: want WxH: %v", fSynthetic, err)
		}
		return gazeblur.NewSyntheticFrame(w, h, 16, 150, 3000), nil
	}

	f := gazeblur.NewFrame()
	if err := f.LoadFilesAndDirs(flag.Args()...); err != nil {
		return f, err
	}
	return f, nil
}

// applyFlags overrides the config file with command line args, but only
// the ones that were actually given.
func applyFlags(f *gazeblur.Frame) {
	flag.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "v":          f.Verbosity = fVerbosity
		case "o":          f.OutputFilename = fOutputFilename
		case "stage":      f.Stage = fStage
		case "boundary":   f.Boundary = fBoundary
		case "guarded":    f.Guarded = fGuarded
		case "workers":    f.Workers = fWorkers
		case "pitch":      f.Optics.PixelPitch = fPixelPitch
		case "pupil":      f.Optics.PupilDiameter = fPupil
		case "e1":         f.Foveation.E1 = fE1
		case "e2":         f.Foveation.E2 = fE2
		case "scale":      f.Foveation.VisualAngleScale = fVisualAngleScale
		case "preview":    f.PreviewWidth = fPreviewWidth
		case "gamma":      f.Gamma = fGamma
		case "debug":      f.DumpDebug = fDumpDebug
		case "gaze":
			if g, err := gazeblur.ParseGaze(fGaze); err != nil {
				log.Printf("ignoring -gaze: %v\n", err)
			} else {
				f.Gaze = g
			}
		}
	})
	if fDebugPixel != "" {
		if g, err := gazeblur.ParseGaze(fDebugPixel); err != nil {
			log.Printf("ignoring -debugpixel: %v\n", err)
		} else {
			f.DebugPixels = append(f.DebugPixels, image.Point{int(g.X), int(g.Y)})
		}
	}
	if f.OutputFilename == "" {
		f.OutputFilename = fOutputFilename
	}
}

// watch reruns the whole thing whenever one of the inputs is written to.
// Our own output files live alongside the inputs, so events for those
// are skipped.
func watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %v", err)
	}
	defer watcher.Close()

	for _, arg := range flag.Args() {
		if err := watcher.Add(arg); err != nil {
			return fmt.Errorf("watching %s: %v", arg, err)
		}
	}
	log.Printf("watching %v for changes\n", flag.Args())

	outPrefix := strings.TrimSuffix(filepath.Base(fOutputFilename), filepath.Ext(fOutputFilename))

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if strings.HasPrefix(filepath.Base(event.Name), outPrefix) {
				continue
			}
			log.Printf("%s changed, refiltering\n", event.Name)
			if err := run(ctx); err != nil {
				log.Printf("refilter failed: %v\n", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("watcher error: %v\n", err)
		}
	}
}
