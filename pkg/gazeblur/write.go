package gazeblur

import(
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/mdouchement/hdr/codec/rgbe"
	"github.com/mdouchement/hdr/tmo"
	"github.com/mrjoshuak/go-openexr/exr"
	"golang.org/x/image/draw"
)

// WriteOutput writes f.Output, picking the format from the extension:
// .exr and .hdr keep the float values, anything else is a PNG. If a
// preview width is configured, a downscaled PNG is written alongside.
func (f *Frame)WriteOutput(filename string) error {
	if f.Output == nil {
		return fmt.Errorf("write %s: %w: no output, run Filter first", filename, ErrMissingInput)
	}
	if err := WriteColorImage(f.Output, filename, f.Gamma); err != nil {
		return err
	}
	Logger().Info("wrote output", "file", filename)

	if f.PreviewWidth > 0 {
		previewFilename := strings.TrimSuffix(filename, filepath.Ext(filename)) + "-preview.png"
		if err := WritePNG(Preview(f.Output.ToNRGBA64(f.Gamma), f.PreviewWidth), previewFilename); err != nil {
			return err
		}
		Logger().Info("wrote preview", "file", previewFilename, "width", f.PreviewWidth)
	}

	return nil
}

// WriteColorImage writes ci to filename, picking the format from the
// extension. Values above 1.0 can't go in a PNG as they are, so if there
// are any, the image is linearly tonemapped down first.
func WriteColorImage(ci *ColorImage, filename string, gamma bool) error {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".exr":
		if err := exr.EncodeFile(filename, ci.ToEXR()); err != nil {
			return fmt.Errorf("exr encode '%s': %w", filename, err)
		}
		return nil

	case ".hdr":
		writer, err := os.Create(filename)
		if err != nil {
			return fmt.Errorf("open+w '%s': %w", filename, err)
		}
		defer writer.Close()
		if err := rgbe.Encode(writer, ci); err != nil {
			return fmt.Errorf("rgbe encode '%s': %w", filename, err)
		}
		return nil
	}

	var img image.Image = ci.ToNRGBA64(gamma)
	if brightest := ci.MaxValue(); brightest > 1.0 {
		Logger().Debug("tonemapping for LDR output", "max", brightest)
		img = tmo.NewLinear(ci).Perform()
	}
	return WritePNG(img, filename)
}

func WritePNG(img image.Image, filename string) error {
	if writer, err := os.Create(filename); err != nil {
		return fmt.Errorf("open+w '%s': %w", filename, err)
	} else {
		defer writer.Close()
		return png.Encode(writer, img)
	}
}

// Preview scales img down to the given width, keeping the aspect ratio
func Preview(img image.Image, width int) image.Image {
	b := img.Bounds()
	if width <= 0 || b.Dx() == 0 {
		return img
	}
	height := b.Dy() * width / b.Dx()
	if height < 1 { height = 1 }

	dst := image.NewNRGBA64(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// WriteDepthEXR writes a depth buffer as a single float Z channel, which
// LoadDepthEXR will read back.
func WriteDepthEXR(di *DepthImage, filename string) error {
	h := exr.NewScanlineHeader(di.Width, di.Height)
	h.SetCompression(exr.CompressionZIP)

	channels := exr.NewChannelList()
	channels.Add(exr.Channel{Name: "Z", Type: exr.PixelTypeFloat, XSampling: 1, YSampling: 1})
	h.SetChannels(channels)

	fb := exr.NewFrameBuffer()
	fb.Set("Z", exr.NewSliceFromFloat32(di.Pix, di.Width, di.Height))

	writer, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("open+w '%s': %w", filename, err)
	}
	defer writer.Close()

	sw, err := exr.NewScanlineWriter(writer, h)
	if err != nil {
		return fmt.Errorf("exr writer '%s': %w", filename, err)
	}
	sw.SetFrameBuffer(fb)

	yMin := int(h.DataWindow().Min.Y)
	yMax := int(h.DataWindow().Max.Y)
	if err := sw.WritePixels(yMin, yMax); err != nil {
		return fmt.Errorf("exr write '%s': %w", filename, err)
	}
	return sw.Close()
}
