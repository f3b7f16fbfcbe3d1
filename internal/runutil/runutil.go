// internal/runutil/runutil.go
package runutil

import "runtime"

// Threads resolves the worker count: 0 means all CPUs.
func Threads(n int) int {
	if n <= 0 {
		return runtime.NumCPU()
	}
	return n
}

// BatchSize resolves the probes-per-job batch. Zero picks a size that
// gives each worker several jobs without drowning the channel in tiny ones.
func BatchSize(n, probes, workers int) int {
	if n > 0 {
		return n
	}
	if workers < 1 {
		workers = 1
	}
	b := probes / (workers * 8)
	if b < 64 {
		b = 64
	}
	if b > 4096 {
		b = 4096
	}
	return b
}
