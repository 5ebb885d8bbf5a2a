package unsafecast

import (
	"math"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSliceAliasesMemory(t *testing.T) {
	src := []uint64{1, 2, 3}
	out := Slice[uint64, byte](src)

	require.Len(t, out, 24)
	assert.Equal(t, unsafe.Pointer(unsafe.SliceData(src)), unsafe.Pointer(unsafe.SliceData(out)))

	// Mutating the source must be visible through the view.
	src[0] = 0xFF
	assert.Equal(t, byte(0xFF), out[0])
}

func TestSliceScalesLength(t *testing.T) {
	b := make([]byte, 32)
	assert.Len(t, Slice[byte, uint64](b), 4)
	assert.Len(t, Slice[byte, uint32](b), 8)
	assert.Len(t, Slice[uint32, uint64](Slice[byte, uint32](b)), 4)
}

func TestSliceEmpty(t *testing.T) {
	assert.Nil(t, Slice[byte, uint64](nil))
	assert.Nil(t, Slice[byte, uint64]([]byte{}))
}

func TestFloatBitsRoundTrip(t *testing.T) {
	src := []float64{1.5, math.Copysign(0, -1), math.NaN()}
	bits := Slice[float64, uint64](src)

	require.Len(t, bits, 3)
	assert.Equal(t, math.Float64bits(1.5), bits[0])
	assert.Equal(t, uint64(1)<<63, bits[1])
	assert.Equal(t, math.Float64bits(src[2]), bits[2])
}

func TestBytesFromBytes(t *testing.T) {
	vals := []uint32{7, 8}
	raw := Bytes(vals)
	require.Len(t, raw, 8)

	back := FromBytes[uint32](raw)
	assert.Equal(t, vals, back)
	assert.Equal(t, unsafe.Pointer(unsafe.SliceData(vals)), unsafe.Pointer(unsafe.SliceData(back)))
}
