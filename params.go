package vhacd

import (
	"fmt"

	v3 "github.com/deadsy/vhacd/vec/v3"
)

// Mode selects which primitive set the pipeline rasterizes into.
type Mode int

// The closed set of pipeline variants.
const (
	ModeVoxel Mode = iota
	ModeTetrahedron
)

// Logger receives progress and diagnostic lines from Compute, the same
// explicit-sink-argument shape the teacher uses throughout (e.g.
// render.MarchingCubesUniform's progress reporting) rather than a global
// logger.
type Logger interface {
	Logf(format string, args ...interface{})
}

// Callback receives decomposition progress as a percentage in [0, 100],
// driven by the seven-stage schedule in Compute.
type Callback interface {
	OnProgress(stage string, percent float64)
}

type nopLogger struct{}

func (nopLogger) Logf(string, ...interface{}) {}

type nopCallback struct{}

func (nopCallback) OnProgress(string, float64) {}

// Params holds every tunable of the decomposition pipeline. Unlike a
// functional-options API, fields are set directly or via the chainable
// With* setters below — the teacher's own constructors (e.g.
// render.NewMarchingCubesUniform) take explicit arguments rather than an
// options slice, and Params follows that same direct-struct idiom.
type Params struct {
	MaxConvexHulls          int
	Resolution              int
	MinVolumePerHull        float64
	Concavity               float64
	PlaneDownsampling       int
	ConvexHullDownsampling  int
	Alpha                   float64
	Beta                    float64
	Gamma                   float64
	PCA                     bool
	Mode                    Mode
	MaxVerticesPerHull      int
	ConvexHullApproximation bool
	MaxPlaneCountPerSide    int
	Depth                   int

	Logger      Logger
	Callback    Callback
	Accelerator Accelerator
}

// DefaultParams returns the reference implementation's documented defaults.
func DefaultParams() Params {
	return Params{
		MaxConvexHulls:          64,
		Resolution:              100000,
		MinVolumePerHull:        0.0001,
		Concavity:               0.0025,
		PlaneDownsampling:       4,
		ConvexHullDownsampling:  4,
		Alpha:                   0.05,
		Beta:                    0.05,
		Gamma:                   0.00125,
		PCA:                     false,
		Mode:                    ModeVoxel,
		MaxVerticesPerHull:      64,
		ConvexHullApproximation: true,
		MaxPlaneCountPerSide:    16,
		Depth:                  32,
		Logger:                  nopLogger{},
		Callback:                nopCallback{},
		Accelerator:             cpuAccelerator{},
	}
}

// WithMaxConvexHulls sets the final hull-count budget.
func (p Params) WithMaxConvexHulls(n int) Params { p.MaxConvexHulls = n; return p }

// WithResolution sets the target total voxel count.
func (p Params) WithResolution(n int) Params { p.Resolution = n; return p }

// WithConcavity sets the split-stopping concavity threshold.
func (p Params) WithConcavity(c float64) Params { p.Concavity = c; return p }

// WithGamma sets the merge concavity threshold.
func (p Params) WithGamma(g float64) Params { p.Gamma = g; return p }

// WithPCA aligns the primitive set to its principal axes once, before
// decomposition starts, and maps the output hulls back to the input frame.
// The decomposer's alignment before each split runs whether or not this is set.
func (p Params) WithPCA(on bool) Params { p.PCA = on; return p }

// WithMode selects the voxel or tetrahedron pipeline variant.
func (p Params) WithMode(m Mode) Params { p.Mode = m; return p }

// WithLogger installs a progress/diagnostic sink.
func (p Params) WithLogger(l Logger) Params { p.Logger = l; return p }

// WithCallback installs a progress-percentage sink.
func (p Params) WithCallback(c Callback) Params { p.Callback = c; return p }

// clamp normalizes out-of-range fields (logging each correction), per the
// "clamp and continue" row of the error-handling table.
func (p Params) clamp() Params {
	logIfClamped := func(name string, was, now interface{}) {
		if was != now {
			p.Logger.Logf("vhacd: clamped %s from %v to %v", name, was, now)
		}
	}
	if p.MaxConvexHulls < 1 {
		logIfClamped("MaxConvexHulls", p.MaxConvexHulls, 1)
		p.MaxConvexHulls = 1
	}
	if p.Resolution < 1000 {
		logIfClamped("Resolution", p.Resolution, 1000)
		p.Resolution = 1000
	}
	if p.Concavity <= 0 {
		logIfClamped("Concavity", p.Concavity, 0.0025)
		p.Concavity = 0.0025
	}
	if p.PlaneDownsampling < 1 {
		logIfClamped("PlaneDownsampling", p.PlaneDownsampling, 1)
		p.PlaneDownsampling = 1
	}
	if p.ConvexHullDownsampling < 1 {
		logIfClamped("ConvexHullDownsampling", p.ConvexHullDownsampling, 1)
		p.ConvexHullDownsampling = 1
	}
	if p.MaxVerticesPerHull < 4 {
		logIfClamped("MaxVerticesPerHull", p.MaxVerticesPerHull, 4)
		p.MaxVerticesPerHull = 4
	}
	if p.Depth < 1 {
		logIfClamped("Depth", p.Depth, 32)
		p.Depth = 32
	}
	if p.Logger == nil {
		p.Logger = nopLogger{}
	}
	if p.Callback == nil {
		p.Callback = nopCallback{}
	}
	if p.Accelerator == nil {
		p.Accelerator = cpuAccelerator{}
	}
	return p
}

// FromInterleaved reinterprets a flat, stride-packed vertex buffer (the
// ingestion shape the original C ABI exposes) as a []v3.Vec.
func FromInterleaved(buf []float64, stride int) ([]v3.Vec, error) {
	if stride < 3 {
		return nil, fmt.Errorf("vhacd: stride must be >= 3, got %d", stride)
	}
	if len(buf)%stride != 0 {
		return nil, fmt.Errorf("vhacd: buffer length %d not a multiple of stride %d", len(buf), stride)
	}
	n := len(buf) / stride
	out := make([]v3.Vec, n)
	for i := 0; i < n; i++ {
		base := i * stride
		out[i] = v3.Vec{X: buf[base], Y: buf[base+1], Z: buf[base+2]}
	}
	return out, nil
}

// FromFloat32 is FromInterleaved for single-precision input.
func FromFloat32(buf []float32, stride int) ([]v3.Vec, error) {
	widened := make([]float64, len(buf))
	for i, v := range buf {
		widened[i] = float64(v)
	}
	return FromInterleaved(widened, stride)
}
