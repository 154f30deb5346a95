package pcm

import (
	"math"
)

// Float64 decodes one sample from the beginning of p as a value in [-1, 1].
// Integer samples are scaled by 2^(bits-1); U8 is offset by 128.
func Float64(f Format, p []byte) float64 {
	l := f.mustLayout()
	bits := l.load(p)
	width := l.size * 8
	switch l.kind {
	case kindFloat:
		if l.size == 4 {
			return float64(math.Float32frombits(uint32(bits)))
		}
		return math.Float64frombits(bits)
	case kindOffset:
		return math.Ldexp(float64(bits), 1-width) - 1
	default:
		shift := uint(64 - width)
		return math.Ldexp(float64(int64(bits<<shift)>>shift), 1-width)
	}
}

// PutFloat64 encodes v to the beginning of p. Integer formats saturate
// instead of wrapping around.
func PutFloat64(f Format, p []byte, v float64) {
	l := f.mustLayout()
	width := l.size * 8
	switch l.kind {
	case kindFloat:
		if l.size == 4 {
			l.store(p, uint64(math.Float32bits(float32(v))))
			return
		}
		l.store(p, math.Float64bits(v))
	case kindOffset:
		l.store(p, uint64(saturate(math.Ldexp(v, width-1), width))+1<<(width-1))
	default:
		l.store(p, uint64(saturate(math.Ldexp(v, width-1), width)))
	}
}

func (l layout) load(p []byte) uint64 {
	var v uint64
	for i := 0; i < l.size; i++ {
		if l.bigEndian {
			v = v<<8 | uint64(p[i])
		} else {
			v |= uint64(p[i]) << (8 * i)
		}
	}
	return v
}

// store writes the lowest l.size bytes of v.
func (l layout) store(p []byte, v uint64) {
	for i := 0; i < l.size; i++ {
		shift := 8 * i
		if l.bigEndian {
			shift = 8 * (l.size - 1 - i)
		}
		p[i] = byte(v >> shift)
	}
}

// saturate rounds v and clamps it to the range of a signed integer
// of the given width. The bounds are compared in float64 since
// float64(math.MaxInt64) rounds up to 2^63.
func saturate(v float64, width int) int64 {
	v = math.Round(v)
	limit := math.Ldexp(1, width-1)
	switch {
	case v >= limit:
		return int64(1)<<(width-1) - 1
	case v < -limit:
		return -int64(1) << (width - 1)
	default:
		return int64(v)
	}
}
