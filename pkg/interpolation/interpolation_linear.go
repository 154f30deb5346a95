package interpolation

import (
	"github.com/xaionaro-go/lookuptable/pkg/lookuptable"
)

type linear struct{}

// NewLinear returns an Interpolator that draws a straight line from the last
// sample of before (at position 0) to the first sample of after (at position
// gapLen+1).
func NewLinear() Interpolator {
	return &linear{}
}

func (l *linear) Interpolate(before, after []float64, gapLen int) []float64 {
	if gapLen <= 0 {
		return []float64{}
	}
	result := make([]float64, gapLen)
	if len(before) == 0 || len(after) == 0 {
		return result
	}
	line := lookuptable.New(
		[]float64{0, float64(gapLen + 1)},
		[]float64{before[len(before)-1], after[0]},
	)
	for i := range gapLen {
		result[i] = line.Get(float64(i + 1))
	}
	return result
}
