package binio_test

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stenella/binfield/binio"
)

func TestFloat32Layout(t *testing.T) {
	// The wire layout of a float is the wire layout of its bit pattern as an integer.
	var b binio.Buffer
	binio.WriteFloat32(&b, binary.BigEndian, 1.0)
	require.Equal(t, []byte{0x3f, 0x80, 0x00, 0x00}, b.Bytes())

	b.Reset()
	binio.WriteFloat32(&b, binary.LittleEndian, 1.0)
	require.Equal(t, []byte{0x00, 0x00, 0x80, 0x3f}, b.Bytes())
}

func TestFloatRoundTrip(t *testing.T) {
	values := []float64{0, 1, -1, 0.5, -0.5, 3.1415926535, math.MaxFloat32, math.SmallestNonzeroFloat32, math.Inf(1), math.Inf(-1)}

	for _, o := range orders {
		for _, v := range values {
			t.Run(fmt.Sprintf("%v/%v", o.name, v), func(t *testing.T) {
				var b binio.Buffer

				binio.WriteFloat64(&b, o.order, v)
				got64, err := binio.ReadFloat64(&b, o.order)
				require.NoError(t, err)
				require.Equal(t, v, got64)

				binio.WriteFloat32(&b, o.order, float32(v))
				got32, err := binio.ReadFloat32(&b, o.order)
				require.NoError(t, err)
				require.Equal(t, float32(v), got32)
			})
		}
	}
}

func TestFloatNaN(t *testing.T) {
	var b binio.Buffer
	binio.WriteFloat64(&b, binary.BigEndian, math.NaN())

	got, err := binio.ReadFloat64(&b, binary.BigEndian)
	require.NoError(t, err)
	require.True(t, math.IsNaN(got))
}

func TestFloatInsufficient(t *testing.T) {
	b := binio.NewBuffer([]byte{1, 2})

	_, err := binio.ReadFloat32(b, binary.BigEndian)
	require.True(t, errors.Is(err, binio.ErrInsufficientData))
	require.Equal(t, 0, b.Offset())
}
