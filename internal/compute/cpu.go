package compute

import (
	"runtime"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

const defaultMinParallel = 16

// CPU evaluates forces on the host. With more than one worker and at
// least MinBodies bodies the pair loop is split across goroutines; each
// worker accumulates into its own buffer and buffers are summed in worker
// order, so results are reproducible for a fixed worker count.
type CPU struct {
	Workers   int
	MinBodies int

	local [][]mgl64.Vec3
}

func NewCPU(workers int) *CPU {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &CPU{Workers: workers, MinBodies: defaultMinParallel}
}

// NewSerial returns a single-threaded backend.
func NewSerial() *CPU {
	return &CPU{Workers: 1}
}

func (c *CPU) Name() string {
	if c.Workers > 1 {
		return "cpu-parallel"
	}
	return "cpu"
}

func (c *CPU) Forces(pos []mgl64.Vec3, mass []float64, g, floor float64, out []mgl64.Vec3) {
	for i := range out {
		out[i] = mgl64.Vec3{}
	}

	if c.Workers <= 1 || len(mass) < 2 || len(mass) < c.MinBodies {
		forcesSerial(pos, mass, g, floor, out)
		return
	}
	c.forcesParallel(pos, mass, g, floor, out)
}

func forcesSerial(pos []mgl64.Vec3, mass []float64, g, floor float64, out []mgl64.Vec3) {
	n := len(mass)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			f, ok := pairForce(pos[i], pos[j], mass[i], mass[j], g, floor)
			if !ok {
				continue
			}
			out[i] = out[i].Add(f)
			out[j] = out[j].Sub(f)
		}
	}
}

func (c *CPU) forcesParallel(pos []mgl64.Vec3, mass []float64, g, floor float64, out []mgl64.Vec3) {
	n := len(mass)
	workers := c.Workers
	if workers > n {
		workers = n
	}

	if len(c.local) != workers || len(c.local[0]) != n {
		c.local = make([][]mgl64.Vec3, workers)
		for w := range c.local {
			c.local[w] = make([]mgl64.Vec3, n)
		}
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()

			acc := c.local[worker]
			for i := range acc {
				acc[i] = mgl64.Vec3{}
			}

			// Rows are dealt round-robin so the triangular pair loop
			// spreads evenly.
			for i := worker; i < n; i += workers {
				for j := i + 1; j < n; j++ {
					f, ok := pairForce(pos[i], pos[j], mass[i], mass[j], g, floor)
					if !ok {
						continue
					}
					acc[i] = acc[i].Add(f)
					acc[j] = acc[j].Sub(f)
				}
			}
		}(w)
	}
	wg.Wait()

	for w := 0; w < workers; w++ {
		for i := 0; i < n; i++ {
			out[i] = out[i].Add(c.local[w][i])
		}
	}
}
