package bmp

import (
	"encoding/binary"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleHeaders() (BitmapFileHeader, BitmapInfoHeader) {
	fh := BitmapFileHeader{
		Type:      [2]byte{'B', 'M'},
		Size:      0x01020304,
		Reserved1: 0x0a0b,
		Reserved2: 0x0c0d,
		OffBits:   54,
	}
	ih := BitmapInfoHeader{
		Size:            40,
		Width:           -7,
		Height:          -480,
		Planes:          1,
		BitCount:        24,
		Compression:     0,
		SizeImage:       123456,
		XPixelsPerM:     2835,
		YPixelsPerM:     -2835,
		ColorsUsed:      5,
		ColorsImportant: 6,
	}
	return fh, ih
}

func TestHeaderOffsets(t *testing.T) {
	fh, ih := sampleHeaders()

	fb, err := fh.MarshalBinary()
	require.NoError(t, err)
	ib, err := ih.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, fb, FileHeaderSize)
	require.Len(t, ib, InfoHeaderSize)

	b := append(fb, ib...)
	le := binary.LittleEndian

	assert.Equal(t, "BM", string(b[0:2]))
	assert.Equal(t, uint32(0x01020304), le.Uint32(b[2:6]))
	assert.Equal(t, uint16(0x0a0b), le.Uint16(b[6:8]))
	assert.Equal(t, uint16(0x0c0d), le.Uint16(b[8:10]))
	assert.Equal(t, uint32(54), le.Uint32(b[10:14]))
	assert.Equal(t, uint32(40), le.Uint32(b[14:18]))
	assert.Equal(t, int32(-7), int32(le.Uint32(b[18:22])))
	assert.Equal(t, int32(-480), int32(le.Uint32(b[22:26])))
	assert.Equal(t, uint16(1), le.Uint16(b[26:28]))
	assert.Equal(t, uint16(24), le.Uint16(b[28:30]))
	assert.Equal(t, uint32(0), le.Uint32(b[30:34]))
	assert.Equal(t, uint32(123456), le.Uint32(b[34:38]))
	assert.Equal(t, int32(2835), int32(le.Uint32(b[38:42])))
	assert.Equal(t, int32(-2835), int32(le.Uint32(b[42:46])))
	assert.Equal(t, uint32(5), le.Uint32(b[46:50]))
	assert.Equal(t, uint32(6), le.Uint32(b[50:54]))
}

func TestHeaderUnmarshalInverse(t *testing.T) {
	fh, ih := sampleHeaders()
	fb, _ := fh.MarshalBinary()
	ib, _ := ih.MarshalBinary()

	var gotFH BitmapFileHeader
	var gotIH BitmapInfoHeader
	require.NoError(t, gotFH.UnmarshalBinary(fb))
	require.NoError(t, gotIH.UnmarshalBinary(ib))

	if diff := cmp.Diff(fh, gotFH); diff != "" {
		t.Errorf("file header mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(ih, gotIH); diff != "" {
		t.Errorf("info header mismatch (-want +got):\n%s", diff)
	}
}

func TestHeaderUnmarshalShort(t *testing.T) {
	var fh BitmapFileHeader
	var ih BitmapInfoHeader
	assert.Error(t, fh.UnmarshalBinary(make([]byte, FileHeaderSize-1)))
	assert.Error(t, ih.UnmarshalBinary(make([]byte, InfoHeaderSize-1)))
}
