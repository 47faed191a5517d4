package gazeblur

import(
	"fmt"
	"log"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v2"

	"github.com/abworrall/gazeblur/pkg/emath"
)

/* Example config file ...

stage: dof
boundary: clamp
gaze: {x: 640, y: 360}
projection:
  fovy: 45
  aspect: 1.7778
  near: 100
  far: 10000
optics:
  pupildiameter: 4
  pixelpitch: 0.25
foveation:
  e1: 5
  e2: 10
  visualanglescale: 0.02

*/

// GazePoint is the tracked point of regard, in window pixels
type GazePoint struct {
	X float64 `yaml:"x" toml:"x"`
	Y float64 `yaml:"y" toml:"y"`
}

func (g GazePoint)Vec() emath.Vec2 { return emath.Vec2{g.X, g.Y} }

// ProjectionConfig gives the projection either directly as the two matrix
// entries, or as the perspective the renderer was set up with. A non-zero
// FovY selects the perspective form.
type ProjectionConfig struct {
	A      float64 `yaml:"a"      toml:"a"`
	B      float64 `yaml:"b"      toml:"b"`
	FovY   float64 `yaml:"fovy"   toml:"fovy"` // degrees
	Aspect float64 `yaml:"aspect" toml:"aspect"`
	Near   float64 `yaml:"near"   toml:"near"`
	Far    float64 `yaml:"far"    toml:"far"`
}

func (pc ProjectionConfig)Params() ProjectionParameters {
	if pc.FovY != 0 {
		return PerspectiveProjection(pc.FovY, pc.Aspect, pc.Near, pc.Far)
	}
	return ProjectionParameters{A: pc.A, B: pc.B}
}

type Config struct {
	Verbosity      int              `yaml:"verbosity"      toml:"verbosity"`

	Stage          string           `yaml:"stage"          toml:"stage"`    // which filter to run, see Stages
	Boundary       string           `yaml:"boundary"       toml:"boundary"` // clamp, wrap or mirror
	Guarded        bool             `yaml:"guarded"        toml:"guarded"`  // clamp divisors instead of emitting NaN
	Workers        int              `yaml:"workers"        toml:"workers"`  // 0 means GOMAXPROCS

	Gaze           GazePoint        `yaml:"gaze"           toml:"gaze"`
	Projection     ProjectionConfig `yaml:"projection"     toml:"projection"`
	Optics         OpticsModel      `yaml:"optics"         toml:"optics"`
	Foveation      Eccentricity     `yaml:"foveation"      toml:"foveation"`
	MiddleWeights  BlurKernel1D     `yaml:"middleweights"  toml:"middleweights"`
	OuterWeights   BlurKernel1D     `yaml:"outerweights"   toml:"outerweights"`

	OutputFilename string           `yaml:"outputfilename" toml:"outputfilename"`
	PreviewWidth   int              `yaml:"previewwidth"   toml:"previewwidth"` // also write a downscaled PNG, if >0
	Gamma          bool             `yaml:"gamma"          toml:"gamma"`        // sRGB gamma expand LDR output
	DumpDebug      bool             `yaml:"dumpdebug"      toml:"dumpdebug"`    // write the intermediate grids as PNGs

	// Values we figure out elsewhere, and put here for access by rest of app
	BoundaryPolicy BoundaryPolicy   `yaml:"-" toml:"-"`
}

func NewConfig() Config {
	return Config{
		Stage:          "dof",
		Boundary:       "clamp",
		Optics:         OpticsModel{PupilDiameter: 4.0, EyeFocalLength: DefaultEyeFocalLength},
		Foveation:      Eccentricity{E1: 5.0, E2: 10.0, VisualAngleScale: 0.02},
		MiddleWeights:  append(BlurKernel1D{}, DefaultMiddleWeights...),
		OuterWeights:   append(BlurKernel1D{}, DefaultOuterWeights...),
		OutputFilename: "out.png",
	}
}

func newConfigFromYaml(b []byte) (Config, error) {
	c := NewConfig()
	err := yaml.Unmarshal(b, &c)
	return c, err
}

func newConfigFromToml(b []byte) (Config, error) {
	c := NewConfig()
	err := toml.Unmarshal(b, &c)
	return c, err
}

func (c Config)AsYaml() string {
	b, err := yaml.Marshal(c)
	if err != nil {
		log.Printf("Can't marshal config yaml: %v\n", err)
		return ""
	}
	return string(b)
}

// Finalize does sanity checks and fills in the derived values. It fails
// fast on anything that would make every pixel wrong (bad kernels, bad
// thresholds, unknown names); numeric trouble at single pixels is left to
// the filters.
func (c *Config)Finalize() error {
	c.Stage = strings.ToLower(c.Stage)
	if _, err := c.GetStage(); err != nil {
		return err
	}

	bp, err := ParseBoundaryPolicy(c.Boundary)
	if err != nil {
		return err
	}
	c.BoundaryPolicy = bp

	if c.Optics.EyeFocalLength == 0 {
		c.Optics.EyeFocalLength = DefaultEyeFocalLength
	}
	if c.Optics.EyeFocalLength < 0 || c.Optics.PupilDiameter < 0 || c.Optics.PixelPitch < 0 {
		return fmt.Errorf("%w: %s", ErrBadOptics, c.Optics)
	}

	if err := c.Foveation.Validate(); err != nil {
		return err
	}
	if err := c.MiddleWeights.Validate(MiddleKernelRadius); err != nil {
		return fmt.Errorf("middleweights: %w", err)
	}
	if err := c.OuterWeights.Validate(OuterKernelRadius); err != nil {
		return fmt.Errorf("outerweights: %w", err)
	}

	if c.Workers < 0 {
		c.Workers = 0
	}

	return nil
}

// GetStage returns the PixelFunc for the configured stage
func (c Config)GetStage() (PixelFunc, error) {
	if f, exists := Stages[c.Stage]; exists {
		return f, nil
	}
	return nil, fmt.Errorf("%w: %q, wanted one of %s", ErrUnknownStage, c.Stage, ListStages())
}
