package riv

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVaruintRoundTrip(t *testing.T) {
	cases := []uint64{0, 1, 0x7F, 0x80, 0x3FFF, 0x4000, 0xFFFFFFFF, 1 << 40}
	for _, v := range cases {
		w := NewWriter()
		w.WriteVaruint(v)
		r := NewReader(w.Bytes())
		got, err := r.ReadVaruint()
		require.NoError(t, err)
		require.Equal(t, v, got)
		require.Equal(t, 0, r.Remaining())
	}
}

func TestVaruintSingleByteBoundary(t *testing.T) {
	w := NewWriter()
	w.WriteVaruint(0x7F)
	require.Len(t, w.Bytes(), 1)

	w2 := NewWriter()
	w2.WriteVaruint(0x80)
	require.Len(t, w2.Bytes(), 2)
}

func TestVaruintTruncated(t *testing.T) {
	r := NewReader([]byte{0x80})
	_, err := r.ReadVaruint()
	require.Error(t, err)
}

func TestVaruintNeverTerminates(t *testing.T) {
	data := make([]byte, 11)
	for i := range data {
		data[i] = 0x80
	}
	r := NewReader(data)
	_, err := r.ReadVaruint()
	require.Error(t, err)
}

func TestFloatRoundTrip(t *testing.T) {
	for _, v := range []float32{0, 1, -1, 3.14159, 1e30, -1e-30} {
		w := NewWriter()
		w.WriteFloat(v)
		r := NewReader(w.Bytes())
		got, err := r.ReadFloat()
		require.NoError(t, err)
		require.Equal(t, v, got)
	}
}

func TestStringRoundTrip(t *testing.T) {
	for _, v := range []string{"", "hello", "unicode: éè中文"} {
		w := NewWriter()
		w.WriteString(v)
		r := NewReader(w.Bytes())
		got, err := r.ReadString()
		require.NoError(t, err)
		require.Equal(t, v, got)
	}
}

func TestStringInvalidUTF8(t *testing.T) {
	w := NewWriter()
	w.WriteVaruint(2)
	w.WriteRaw([]byte{0xff, 0xfe})
	r := NewReader(w.Bytes())
	_, err := r.ReadString()
	require.Error(t, err)
}

func TestColorRoundTrip(t *testing.T) {
	w := NewWriter()
	w.WriteColor(0xFF112233)
	r := NewReader(w.Bytes())
	got, err := r.ReadColor()
	require.NoError(t, err)
	require.Equal(t, uint32(0xFF112233), got)
}

func TestRawBoolIsExactlyOneByte(t *testing.T) {
	w := NewWriter()
	w.WriteRawBool(true)
	require.Len(t, w.Bytes(), 1)
	require.Equal(t, byte(1), w.Bytes()[0])

	w2 := NewWriter()
	w2.WriteRawBool(false)
	require.Equal(t, byte(0), w2.Bytes()[0])

	r := NewReader(w.Bytes())
	v, err := r.ReadRawBool()
	require.NoError(t, err)
	require.True(t, v)
}
