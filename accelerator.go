package vhacd

// Accelerator abstracts the one inner reduction the reference
// implementation optionally offloads to OpenCL (the parallel candidate-
// plane search's concavity/balance/symmetry evaluation). No real GPU
// binding is implemented here — that is explicitly out of scope — but the
// interface gives a future implementation a seam to plug into without
// touching Compute's call sites, per the "GPU extension surface" redesign.
type Accelerator interface {
	// Available reports whether this accelerator can run at all (a real
	// implementation would check for a usable OpenCL device here).
	Available() bool
}

// cpuAccelerator is the default no-op, which reports itself unavailable:
// the decomposer's search always runs on the host worker pool regardless of
// what this reports, so its only observable effect is Available() returning false.
type cpuAccelerator struct{}

func (cpuAccelerator) Available() bool { return false }
