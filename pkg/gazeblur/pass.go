package gazeblur

import(
	"context"
	"fmt"
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/skypies/util/histogram"
)

// Filter runs the configured stage over every pixel, and puts the result
// in f.Output. Rows are handed out to a pool of workers; every pixel is
// computed only from the (read-only) inputs and written to a freshly
// allocated image, so the result does not depend on the worker count or
// on the order pixels get done in. The source image is never written to.
//
// The context is checked between rows.
func (f *Frame)Filter(ctx context.Context) error {
	if err := f.Prepare(); err != nil {
		return err
	}

	start := time.Now()
	w, h := f.Color.Width, f.Color.Height
	out := NewColorImage(w, h)

	workers := f.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > h {
		workers = h
	}

	rows := make(chan int)
	counts := make([][NumRegions]int, workers)
	var wg sync.WaitGroup

	for i:=0; i<workers; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for y := range rows {
				f.filterRow(y, out, &counts[worker])
			}
		}(i)
	}

	var err error
feed:
	for y:=0; y<h; y++ {
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		case rows <- y:
		}
	}
	close(rows)
	wg.Wait()

	if err != nil {
		return fmt.Errorf("filter %s: %w", f.Stage, err)
	}

	f.RegionCounts = [NumRegions]int{}
	for _, c := range counts {
		for r:=0; r<NumRegions; r++ {
			f.RegionCounts[r] += c[r]
		}
	}
	f.Output = out

	Logger().Info("frame filtered", "stage", f.Stage, "size", fmt.Sprintf("%dx%d", w, h),
		"workers", workers, "elapsed", time.Since(start))

	for _, pt := range f.DebugPixels {
		if pt.X < 0 || pt.Y < 0 || pt.X >= w || pt.Y >= h { continue }
		p := f.FilterPixel(pt.X, pt.Y)
		Logger().Debug("debug pixel", "pixel", p.String())
	}

	return nil
}

// FilterPixel runs the stage for a single pixel. Prepare must have been
// called.
func (f *Frame)FilterPixel(x, y int) Pixel {
	p := newPixel(f, x, y)
	f.stage(f, &p)
	return p
}

func (f *Frame)filterRow(y int, out *ColorImage, counts *[NumRegions]int) {
	recordGrids := f.LinearDepthGrid.Dx() == f.Color.Width && stagesNeedingDepth[f.Stage]

	for x:=0; x<f.Color.Width; x++ {
		p := f.FilterPixel(x, y)
		out.SetRGBA(x, y, p.Out)

		if p.Region >= 0 {
			counts[p.Region]++
		}
		if recordGrids {
			f.LinearDepthGrid.Set(x, y, p.LinearDepth)
			f.ConfusionGrid.Set(x, y, p.ConfusionRadius)
		}
	}
}

// Stats summarizes the last pass, for logging
func (f *Frame)Stats() string {
	if f.Output == nil {
		return "no output yet"
	}
	str := fmt.Sprintf("%s: %d degenerate pixels", f.Output, f.Output.CountDegenerate())
	if f.RegionCounts != [NumRegions]int{} {
		str += fmt.Sprintf(", regions foveal=%d middle=%d outer=%d",
			f.RegionCounts[RegionFoveal], f.RegionCounts[RegionMiddle], f.RegionCounts[RegionOuter])
	}
	if f.ConfusionGrid.Dx() > 0 {
		h := f.ConfusionHistogram()
		str += fmt.Sprintf(", focus %.2f, confusion %s\nconfusion radius (tenths of a pixel):\n%v",
			f.focusDistance, f.ConfusionGrid.Stats(), &h)
	}
	return str
}

// ConfusionHistogram buckets the confusion radii of the last DoF pass, in
// tenths of a pixel, up to the edge of the search window.
func (f *Frame)ConfusionHistogram() histogram.Histogram {
	h := histogram.Histogram{NumBuckets:DefocusSearchRadius*10 + 1, ValMin:0, ValMax:DefocusSearchRadius*10 + 1}
	for _, v := range f.ConfusionGrid.Values() {
		if math.IsNaN(v) || math.IsInf(v, 0) { continue }
		tenths := int(v * 10)
		if tenths > DefocusSearchRadius*10 { tenths = DefocusSearchRadius*10 }
		if tenths < 0 { tenths = 0 }
		h.Add(histogram.ScalarVal(tenths))
	}
	return h
}
