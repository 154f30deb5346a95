// Package shaper applies a transfer curve to a PCM stream: every sample
// value v read from the backend is replaced with curve.Get(v).
package shaper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/xaionaro-go/lookuptable/pkg/lookuptable"
	"github.com/xaionaro-go/lookuptable/pkg/pcm"
)

type Shaper struct {
	backend    io.Reader
	format     pcm.Format
	curve      *lookuptable.Table[float64]
	sampleSize int
	locker     sync.Mutex

	// pending keeps the bytes of an incomplete sample between reads
	pending []byte
}

var _ io.Reader = (*Shaper)(nil)

func New(
	ctx context.Context,
	backend io.Reader,
	format pcm.Format,
	curve *lookuptable.Table[float64],
) (*Shaper, error) {
	if curve == nil {
		return nil, fmt.Errorf("the transfer curve is mandatory")
	}
	if err := curve.Validate(); err != nil {
		return nil, fmt.Errorf("invalid transfer curve: %w", err)
	}
	sampleSize := int(format.Size())
	if sampleSize == 0 {
		return nil, fmt.Errorf("unsupported PCM format: %v", format)
	}
	logger.Debugf(ctx, "initialized a %v shaper with a %d-point transfer curve", format, curve.Len())
	return &Shaper{
		backend:    backend,
		format:     format,
		curve:      curve,
		sampleSize: sampleSize,
		pending:    make([]byte, 0, sampleSize),
	}, nil
}

func (s *Shaper) Format() pcm.Format {
	return s.format
}

func (s *Shaper) Read(p []byte) (int, error) {
	s.locker.Lock()
	defer s.locker.Unlock()

	if len(p) < s.sampleSize {
		return 0, fmt.Errorf("the provided output buffer is too short: %d < %d", len(p), s.sampleSize)
	}
	requestLength := (len(p) / s.sampleSize) * s.sampleSize

	total := copy(p[:requestLength], s.pending)
	s.pending = s.pending[:0]

	n, err := io.ReadAtLeast(s.backend, p[total:requestLength], s.sampleSize-total)
	total += n

	complete := (total / s.sampleSize) * s.sampleSize
	s.pending = append(s.pending, p[complete:total]...)

	for idx := 0; idx < complete; idx += s.sampleSize {
		sample := p[idx : idx+s.sampleSize]
		pcm.PutFloat64(s.format, sample, s.curve.Get(pcm.Float64(s.format, sample)))
	}

	switch {
	case err == nil:
		return complete, nil
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		if len(s.pending) != 0 {
			trailing := len(s.pending)
			s.pending = s.pending[:0]
			return complete, fmt.Errorf("%w: %d trailing bytes do not form a complete %v sample", io.ErrUnexpectedEOF, trailing, s.format)
		}
		return complete, io.EOF
	default:
		return complete, fmt.Errorf("unable to read from the backend: %w", err)
	}
}
