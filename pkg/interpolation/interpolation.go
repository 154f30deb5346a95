// Package interpolation fills gaps between two runs of samples.
package interpolation

type Interpolator interface {
	// Interpolate returns gapLen samples to be placed between
	// the last sample of before and the first sample of after.
	Interpolate(before, after []float64, gapLen int) []float64
}
