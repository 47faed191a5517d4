package gazeblur

import(
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mdouchement/hdr/codec/rgbe"
	"github.com/mrjoshuak/go-openexr/exr"
	"github.com/mrjoshuak/go-openexr/exrutil"
	"github.com/rwcarlsen/goexif/exif"
	"golang.org/x/image/tiff"
)

// LoadFilesAndDirs loads everything it is pointed at into the frame,
// recursing into dirs. Image files whose name contains "depth" are loaded
// as the depth buffer, and ones containing "right" as the right eye;
// everything else is the color image. Config files (.yaml, .toml) replace
// the frame's config, and a .gaze file holds the gaze point as "x y".
// Unrecognized files are skipped.
func (f *Frame)LoadFilesAndDirs(args ...string) error {
	for _, arg := range args {
		item, err := os.Stat(arg)

		switch {

		case err != nil:
			return fmt.Errorf("load %s: %w", arg, err)

		case item.IsDir():
			contents, err := os.ReadDir(arg)
			if err != nil {
				return fmt.Errorf("readdir %s: %w", arg, err)
			}
			for _, content := range contents {
				if err := f.LoadFilesAndDirs(filepath.Join(arg, content.Name())); err != nil {
					return err
				}
			}

		default:
			if err := f.loadFile(arg); err != nil {
				return fmt.Errorf("loadfile %s: %w", arg, err)
			}
		}
	}

	return nil
}

// Role is what a loaded image is used for, based on its filename
type Role int
const(
	RoleColor Role = iota
	RoleDepth
	RoleRight
)

func RoleFromFilename(filename string) Role {
	base := strings.ToLower(filepath.Base(filename))
	switch {
	case strings.Contains(base, "depth"): return RoleDepth
	case strings.Contains(base, "right"): return RoleRight
	}
	return RoleColor
}

func (f *Frame)loadFile(filename string) error {
	ext := strings.ToLower(filepath.Ext(filename))
	role := RoleFromFilename(filename)

	switch ext {

	case ".yaml", ".yml", ".toml":
		cfg, err := LoadConfig(filename)
		if err != nil {
			return err
		}
		f.Config = cfg
		Logger().Info("loaded configuration", "file", filename)

	case ".gaze":
		g, err := loadGaze(filename)
		if err != nil {
			return err
		}
		f.Gaze = g
		Logger().Info("loaded gaze", "file", filename, "gaze", g.Vec().String())

	case ".exr":
		if role == RoleDepth {
			d, err := LoadDepthEXR(filename)
			if err != nil {
				return err
			}
			f.Depth = d
			break
		}
		img, err := exr.DecodeFile(filename)
		if err != nil {
			return fmt.Errorf("exr decode: %w", err)
		}
		f.setColor(role, NewColorImageFromEXR(img))
		// A Z channel alongside the color is the depth buffer
		if role == RoleColor && f.Depth == nil {
			if d, err := loadEXRChannel(filename, "Z"); err == nil {
				f.Depth = d
			}
		}

	case ".hdr":
		reader, err := os.Open(filename)
		if err != nil {
			return fmt.Errorf("open+r '%s': %w", filename, err)
		}
		defer reader.Close()
		img, err := rgbe.Decode(reader)
		if err != nil {
			return fmt.Errorf("rgbe decoding: %w", err)
		}
		f.setColor(role, NewColorImageFrom(img))

	case ".tif", ".tiff", ".png", ".jpg", ".jpeg":
		img, err := loadLDR(filename, ext)
		if err != nil {
			return err
		}
		if role == RoleDepth {
			f.Depth = NewDepthImageFrom(img)
			break
		}
		f.setColor(role, NewColorImageFrom(img))
		if role == RoleColor && ext != ".png" {
			if pitch, err := LoadPixelPitch(filename); err == nil {
				f.DetectedPixelPitch = pitch
				Logger().Info("pixel pitch from exif", "file", filename, "pitch_mm", pitch)
			} else {
				Logger().Debug("no pixel pitch in exif", "file", filename, "err", err)
			}
		}
	}

	return nil
}

// LoadColorImage loads a single color image in any of the formats
// LoadFilesAndDirs understands.
func LoadColorImage(filename string) (*ColorImage, error) {
	var f Frame
	if err := f.loadFile(filename); err != nil {
		return nil, fmt.Errorf("loadfile %s: %w", filename, err)
	}
	switch {
	case f.Color != nil: return f.Color, nil
	case f.Right != nil: return f.Right, nil
	}
	return nil, fmt.Errorf("%s: %w: not a color image", filename, ErrMissingInput)
}

func (f *Frame)setColor(role Role, ci *ColorImage) {
	if role == RoleRight {
		f.Right = ci
	} else {
		f.Color = ci
	}
}

// LoadConfig reads a YAML or TOML config, depending on the extension
func LoadConfig(filename string) (Config, error) {
	contents, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("config read %s: %w", filename, err)
	}

	if strings.ToLower(filepath.Ext(filename)) == ".toml" {
		return newConfigFromToml(contents)
	}
	return newConfigFromYaml(contents)
}

func loadGaze(filename string) (GazePoint, error) {
	contents, err := os.ReadFile(filename)
	if err != nil {
		return GazePoint{}, fmt.Errorf("gaze read %s: %w", filename, err)
	}
	return ParseGaze(string(contents))
}

// ParseGaze parses "x y" (or "x,y") in window pixels
func ParseGaze(s string) (GazePoint, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r' })
	if len(fields) != 2 {
		return GazePoint{}, fmt.Errorf("gaze %q: want two numbers", s)
	}
	x, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return GazePoint{}, fmt.Errorf("gaze x %q: %w", fields[0], err)
	}
	y, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return GazePoint{}, fmt.Errorf("gaze y %q: %w", fields[1], err)
	}
	return GazePoint{X: x, Y: y}, nil
}

func loadLDR(filename, ext string) (image.Image, error) {
	reader, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open+r img '%s': %w", filename, err)
	}
	defer reader.Close()

	var img image.Image
	switch ext {
	case ".tif", ".tiff": img, err = tiff.Decode(reader)
	case ".png":          img, err = png.Decode(reader)
	default:              img, err = jpeg.Decode(reader)
	}
	if err != nil {
		return nil, fmt.Errorf("%s decoding '%s': %w", ext, filename, err)
	}
	return img, nil
}

// LoadDepthEXR reads the depth buffer from the Z channel of an EXR file.
// Depth-only files that store it in R are accepted too.
func LoadDepthEXR(filename string) (*DepthImage, error) {
	return loadEXRChannel(filename, "Z", "R")
}

// loadEXRChannel reads the first of the named channels that the file has
func loadEXRChannel(filename string, names ...string) (*DepthImage, error) {
	f, err := exr.OpenFile(filename)
	if err != nil {
		return nil, fmt.Errorf("exr open: %w", err)
	}
	defer f.Close()

	h := f.Header(0)
	var vals []float32
	for _, ch := range names {
		if vals, err = exrutil.ExtractChannel(f, ch); err == nil {
			break
		}
	}
	if err != nil {
		return nil, fmt.Errorf("exr depth channel: %w", err)
	}

	return &DepthImage{Pix: vals, Width: h.Width(), Height: h.Height()}, nil
}

// LoadPixelPitch works out the size of a pixel on the display, in mm,
// from the EXIF XResolution and ResolutionUnit tags.
func LoadPixelPitch(filename string) (float64, error) {
	reader, err := os.Open(filename)
	if err != nil {
		return 0, fmt.Errorf("open+r exif '%s': %w", filename, err)
	}
	defer reader.Close()

	ex, err := exif.Decode(reader)
	if err != nil {
		return 0, fmt.Errorf("exif parsing '%s': %w", filename, err)
	}

	var num, denom int64
	if tag, err := ex.Get(exif.XResolution); err != nil {
		return 0, fmt.Errorf("exif XResolution '%s': %w", filename, err)
	} else if num, denom, err = tag.Rat2(0); err != nil {
		return 0, fmt.Errorf("exif XResolution '%s': %w", filename, err)
	}
	if num <= 0 || denom <= 0 {
		return 0, fmt.Errorf("exif XResolution '%s': bad value %d/%d", filename, num, denom)
	}
	perUnit := float64(num) / float64(denom)

	unit := 2 // inches, if unspecified
	if tag, err := ex.Get(exif.ResolutionUnit); err == nil {
		if u, err := tag.Int(0); err == nil {
			unit = u
		}
	}

	pitch, err := PixelPitchFromResolution(perUnit, unit)
	if err != nil {
		return 0, fmt.Errorf("exif '%s': %w", filename, err)
	}
	return pitch, nil
}

// PixelPitchFromResolution converts a TIFF/EXIF resolution (pixels per
// unit, where unit 2 is inches and 3 is centimeters) to mm per pixel.
func PixelPitchFromResolution(perUnit float64, unit int) (float64, error) {
	if !(perUnit > 0) {
		return 0, fmt.Errorf("resolution %v is not positive", perUnit)
	}
	switch unit {
	case 2: return 25.4 / perUnit, nil
	case 3: return 10.0 / perUnit, nil
	}
	return 0, fmt.Errorf("resolution unit %d has no physical size", unit)
}
