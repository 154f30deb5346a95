package pcm

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

type Format uint

const (
	FormatUndefined = Format(iota)
	FormatU8
	FormatS16LE
	FormatS16BE
	FormatS24LE
	FormatS24BE
	FormatS32LE
	FormatS32BE
	FormatS64LE
	FormatS64BE
	FormatFloat32LE
	FormatFloat32BE
	FormatFloat64LE
	FormatFloat64BE
	endOfFormat
)

var _ pflag.Value = (*Format)(nil)

type sampleKind uint8

const (
	kindOffset = sampleKind(iota)
	kindSigned
	kindFloat
)

type layout struct {
	size      int
	bigEndian bool
	kind      sampleKind
}

func (f Format) layout() (layout, bool) {
	switch f {
	case FormatU8:
		return layout{size: 1, kind: kindOffset}, true
	case FormatS16LE, FormatS16BE:
		return layout{size: 2, bigEndian: f == FormatS16BE, kind: kindSigned}, true
	case FormatS24LE, FormatS24BE:
		return layout{size: 3, bigEndian: f == FormatS24BE, kind: kindSigned}, true
	case FormatS32LE, FormatS32BE:
		return layout{size: 4, bigEndian: f == FormatS32BE, kind: kindSigned}, true
	case FormatS64LE, FormatS64BE:
		return layout{size: 8, bigEndian: f == FormatS64BE, kind: kindSigned}, true
	case FormatFloat32LE, FormatFloat32BE:
		return layout{size: 4, bigEndian: f == FormatFloat32BE, kind: kindFloat}, true
	case FormatFloat64LE, FormatFloat64BE:
		return layout{size: 8, bigEndian: f == FormatFloat64BE, kind: kindFloat}, true
	default:
		return layout{}, false
	}
}

func (f Format) mustLayout() layout {
	l, ok := f.layout()
	if !ok {
		panic(fmt.Sprintf("unknown format: %v", f))
	}
	return l
}

// Size returns the size of one sample in bytes, or zero for
// an unknown format.
func (f Format) Size() uint {
	l, _ := f.layout()
	return uint(l.size)
}

func (f Format) String() string {
	switch f {
	case FormatUndefined:
		return "undefined"
	case FormatU8:
		return "u8"
	case FormatS16LE:
		return "s16le"
	case FormatS16BE:
		return "s16be"
	case FormatS24LE:
		return "s24le"
	case FormatS24BE:
		return "s24be"
	case FormatS32LE:
		return "s32le"
	case FormatS32BE:
		return "s32be"
	case FormatS64LE:
		return "s64le"
	case FormatS64BE:
		return "s64be"
	case FormatFloat32LE:
		return "f32le"
	case FormatFloat32BE:
		return "f32be"
	case FormatFloat64LE:
		return "f64le"
	case FormatFloat64BE:
		return "f64be"
	default:
		return fmt.Sprintf("unknown_format_%d", uint(f))
	}
}

// Set implements pflag.Value.
func (f *Format) Set(s string) error {
	s = strings.ToLower(strings.TrimSpace(s))
	for candidate := FormatU8; candidate < endOfFormat; candidate++ {
		if candidate.String() == s {
			*f = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown PCM format '%s'", s)
}

// Type implements pflag.Value.
func (f *Format) Type() string {
	return "pcm-format"
}
