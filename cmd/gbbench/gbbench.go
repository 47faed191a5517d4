package main

import(
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/codahale/hdrhistogram"

	"github.com/abworrall/gazeblur/pkg/gazeblur"
)

var(
	fWidth int
	fHeight int
	fIterations int
	fWorkers int
	fStages string
	fGuarded bool
)

func init() {
	flag.IntVar(&fWidth, "w", 1280, "frame width")
	flag.IntVar(&fHeight, "h", 720, "frame height")
	flag.IntVar(&fIterations, "n", 20, "passes per stage")
	flag.IntVar(&fWorkers, "workers", 0, "goroutines per pass (0 means one per CPU)")
	flag.StringVar(&fStages, "stages", "dof,foveate,anaglyph", "comma separated stages to time, from "+gazeblur.ListStages())
	flag.BoolVar(&fGuarded, "guarded", false, "run in guarded mode")
	flag.Parse()
}

func main() {
	if flag.NArg() > 0 {
		log.Printf("gbbench: %v, %d passes per stage\n", flag.Args(), fIterations)
	} else {
		log.Printf("gbbench: synthetic %dx%d, %d passes per stage\n", fWidth, fHeight, fIterations)
	}

	for _, stage := range strings.Split(fStages, ",") {
		h, err := bench(strings.TrimSpace(stage))
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("%-12s n=%-4d mean=%8.2fms p50=%6dms p90=%6dms p99=%6dms max=%6dms\n", stage,
			h.TotalCount(), h.Mean()/1000, h.ValueAtQuantile(50)/1000, h.ValueAtQuantile(90)/1000,
			h.ValueAtQuantile(99)/1000, h.Max()/1000)
	}
}

// bench times whole-frame passes, in microseconds
func bench(stage string) (*hdrhistogram.Histogram, error) {
	h := hdrhistogram.New(1, int64(time.Minute/time.Microsecond), 3)

	f := gazeblur.NewSyntheticFrame(fWidth, fHeight, 16, 150, 3000)
	if flag.NArg() > 0 {
		f = gazeblur.NewFrame()
		if err := f.LoadFilesAndDirs(flag.Args()...); err != nil {
			return nil, err
		}
	}
	f.Stage = stage
	f.Workers = fWorkers
	f.Guarded = fGuarded

	for i:=0; i<fIterations; i++ {
		start := time.Now()
		if err := f.Filter(context.Background()); err != nil {
			return nil, fmt.Errorf("stage %s: %v", stage, err)
		}
		if err := h.RecordValue(time.Since(start).Microseconds()); err != nil {
			return nil, err
		}
	}

	// A single worker must give exactly the same pixels
	parallel := f.Output
	f.Workers = 1
	if err := f.Filter(context.Background()); err != nil {
		return nil, fmt.Errorf("stage %s: %v", stage, err)
	}
	if metric, diff, err := gazeblur.ImgDiff(parallel, f.Output); err != nil {
		return nil, err
	} else if metric != 0 {
		log.Printf("stage %s: output depends on worker count! diff %g, %s\n", stage, metric, diff.Stats())
	}

	return h, nil
}
