package shaper

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/lookuptable/pkg/lookuptable"
	"github.com/xaionaro-go/lookuptable/pkg/pcm"
)

func s16le(values ...int16) []byte {
	b := make([]byte, len(values)*2)
	for i, v := range values {
		binary.LittleEndian.PutUint16(b[i*2:], uint16(v))
	}
	return b
}

func TestShaper(t *testing.T) {
	ctx := context.Background()
	invert := lookuptable.New([]float64{-1, 1}, []float64{1, -1})

	t.Run("Invert_S16LE", func(t *testing.T) {
		s, err := New(ctx, bytes.NewReader(s16le(0, 16384, -16384)), pcm.FormatS16LE, invert)
		require.NoError(t, err)

		out, err := io.ReadAll(s)
		require.NoError(t, err)
		assert.Equal(t, s16le(0, -16384, 16384), out)
	})

	t.Run("HardClip_Float32LE", func(t *testing.T) {
		clip := lookuptable.New([]float64{-0.5, 0.5}, []float64{-0.5, 0.5})
		in := make([]byte, 4*4)
		for i, v := range []float32{-0.9, -0.25, 0.25, 0.9} {
			binary.LittleEndian.PutUint32(in[i*4:], math.Float32bits(v))
		}
		s, err := New(ctx, bytes.NewReader(in), pcm.FormatFloat32LE, clip)
		require.NoError(t, err)

		out, err := io.ReadAll(s)
		require.NoError(t, err)
		require.Len(t, out, len(in))
		var got []float64
		for i := 0; i < len(out); i += 4 {
			got = append(got, float64(math.Float32frombits(binary.LittleEndian.Uint32(out[i:]))))
		}
		assert.InDeltaSlice(t, []float64{-0.5, -0.25, 0.25, 0.5}, got, 1e-6)
	})

	t.Run("OneByteReads", func(t *testing.T) {
		s, err := New(ctx, iotest.OneByteReader(bytes.NewReader(s16le(100, -200, 300))), pcm.FormatS16LE, invert)
		require.NoError(t, err)

		out, err := io.ReadAll(s)
		require.NoError(t, err)
		assert.Equal(t, s16le(-100, 200, -300), out)
	})

	t.Run("HalfSampleReads", func(t *testing.T) {
		s, err := New(ctx, iotest.HalfReader(bytes.NewReader(s16le(1, 2, 3, 4, 5))), pcm.FormatS16LE, invert)
		require.NoError(t, err)

		buf := make([]byte, 5)
		var out []byte
		for {
			n, err := s.Read(buf)
			require.Zero(t, n%2)
			out = append(out, buf[:n]...)
			if errors.Is(err, io.EOF) {
				break
			}
			require.NoError(t, err)
		}
		assert.Equal(t, s16le(-1, -2, -3, -4, -5), out)
	})

	t.Run("TrailingPartialSample", func(t *testing.T) {
		in := append(s16le(7), 0x01)
		s, err := New(ctx, bytes.NewReader(in), pcm.FormatS16LE, invert)
		require.NoError(t, err)

		out, err := io.ReadAll(s)
		require.Error(t, err)
		assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
		assert.Equal(t, s16le(-7), out)
	})

	t.Run("TrailingPartialSample_OneByteReads", func(t *testing.T) {
		in := append(s16le(7), 0x01)
		s, err := New(ctx, iotest.OneByteReader(bytes.NewReader(in)), pcm.FormatS16LE, invert)
		require.NoError(t, err)

		n, err := s.Read(make([]byte, 4))
		require.NoError(t, err)
		require.Equal(t, 2, n)

		n, err = s.Read(make([]byte, 4))
		require.Zero(t, n)
		assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
		assert.Contains(t, err.Error(), "1 trailing bytes")

		n, err = s.Read(make([]byte, 4))
		require.Zero(t, n)
		assert.Equal(t, io.EOF, err)
	})

	t.Run("BackendError", func(t *testing.T) {
		s, err := New(ctx, iotest.ErrReader(errors.New("boom")), pcm.FormatS16LE, invert)
		require.NoError(t, err)

		_, err = s.Read(make([]byte, 4))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "boom")
	})

	t.Run("ShortBuffer", func(t *testing.T) {
		s, err := New(ctx, bytes.NewReader(nil), pcm.FormatFloat64LE, invert)
		require.NoError(t, err)
		_, err = s.Read(make([]byte, 7))
		require.Error(t, err)
	})
}

func TestNewInvalid(t *testing.T) {
	ctx := context.Background()
	_, err := New(ctx, bytes.NewReader(nil), pcm.FormatS16LE, nil)
	require.Error(t, err)

	_, err = New(ctx, bytes.NewReader(nil), pcm.FormatS16LE, lookuptable.New([]float64{1, 0}, []float64{0, 1}))
	require.Error(t, err)
	assert.True(t, errors.Is(err, lookuptable.ErrNotSorted))

	_, err = New(ctx, bytes.NewReader(nil), pcm.FormatS16LE, lookuptable.New([]float64{-1, math.NaN(), 1}, []float64{-1, 0, 1}))
	require.Error(t, err)
	assert.True(t, errors.Is(err, lookuptable.ErrNaN))

	_, err = New(ctx, bytes.NewReader(nil), pcm.FormatUndefined, lookuptable.New([]float64{0}, []float64{0}))
	require.Error(t, err)
}
