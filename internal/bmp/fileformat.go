// BMP-specific structs and their on-disk layout
package bmp

import (
	"encoding/binary"
	"io"
)

const (
	FileHeaderSize = 14 // Bytes in a BITMAPFILEHEADER
	InfoHeaderSize = 40 // Bytes in a BITMAPINFOHEADER
	HeadersSize    = FileHeaderSize + InfoHeaderSize
)

// The BitmapFileHeader structure contains information about the type, size,
// and layout of a file that contains a DIB [device-independent bitmap].
// https://learn.microsoft.com/en-us/windows/win32/api/wingdi/ns-wingdi-bitmapfileheader

type BitmapFileHeader struct {
	Type      [2]byte // The file type: expected 0x4d42 (ASCII string "BM"), not enforced.
	Size      uint32  // The size, in bytes, of the bitmap file.
	Reserved1 uint16  // Reserved; passed through.
	Reserved2 uint16  // Reserved; passed through.
	OffBits   uint32  // Bitmap File Offset (In bytes) to Pixel Arrays
}

// The BitmapInfoHeader structure contains information about the
// dimensions and color format of DIB [device-independent bitmap].

type BitmapInfoHeader struct {
	Size            uint32 // The number of bytes required by the structure.
	Width           int32  // The width of the bitmap, in pixels.
	Height          int32  // The height of the bitmap, in pixels (sign is not interpreted)
	Planes          uint16 // The number of planes for the target device.
	BitCount        uint16 // The number of bits-per-pixel.
	Compression     uint32 // The type of compression
	SizeImage       uint32 // The size of the image (in bytes).
	XPixelsPerM     int32  // The horizontal resolution, in pixels-per-meter.
	YPixelsPerM     int32  // The vertical resolution, in pixels-per-meter.
	ColorsUsed      uint32 // Number of color indexes that are actually used by bitmap.
	ColorsImportant uint32 // Number of color indexes required for displaying the bitmap.
}

// MarshalBinary lays the file header out at its fixed offsets (little-endian).
func (h *BitmapFileHeader) MarshalBinary() ([]byte, error) {
	b := make([]byte, FileHeaderSize)
	b[0], b[1] = h.Type[0], h.Type[1]
	binary.LittleEndian.PutUint32(b[2:6], h.Size)
	binary.LittleEndian.PutUint16(b[6:8], h.Reserved1)
	binary.LittleEndian.PutUint16(b[8:10], h.Reserved2)
	binary.LittleEndian.PutUint32(b[10:14], h.OffBits)
	return b, nil
}

// UnmarshalBinary reads the first 14 bytes of b into h.
func (h *BitmapFileHeader) UnmarshalBinary(b []byte) error {
	if len(b) < FileHeaderSize {
		return io.ErrUnexpectedEOF
	}
	h.Type = [2]byte{b[0], b[1]}
	h.Size = binary.LittleEndian.Uint32(b[2:6])
	h.Reserved1 = binary.LittleEndian.Uint16(b[6:8])
	h.Reserved2 = binary.LittleEndian.Uint16(b[8:10])
	h.OffBits = binary.LittleEndian.Uint32(b[10:14])
	return nil
}

// MarshalBinary lays the info header out at its fixed offsets (little-endian).
// Offsets are relative to the start of the info header, i.e. file offset - 14.
func (h *BitmapInfoHeader) MarshalBinary() ([]byte, error) {
	b := make([]byte, InfoHeaderSize)
	binary.LittleEndian.PutUint32(b[0:4], h.Size)
	binary.LittleEndian.PutUint32(b[4:8], uint32(h.Width))
	binary.LittleEndian.PutUint32(b[8:12], uint32(h.Height))
	binary.LittleEndian.PutUint16(b[12:14], h.Planes)
	binary.LittleEndian.PutUint16(b[14:16], h.BitCount)
	binary.LittleEndian.PutUint32(b[16:20], h.Compression)
	binary.LittleEndian.PutUint32(b[20:24], h.SizeImage)
	binary.LittleEndian.PutUint32(b[24:28], uint32(h.XPixelsPerM))
	binary.LittleEndian.PutUint32(b[28:32], uint32(h.YPixelsPerM))
	binary.LittleEndian.PutUint32(b[32:36], h.ColorsUsed)
	binary.LittleEndian.PutUint32(b[36:40], h.ColorsImportant)
	return b, nil
}

// UnmarshalBinary reads the first 40 bytes of b into h.
func (h *BitmapInfoHeader) UnmarshalBinary(b []byte) error {
	if len(b) < InfoHeaderSize {
		return io.ErrUnexpectedEOF
	}
	h.Size = binary.LittleEndian.Uint32(b[0:4])
	h.Width = int32(binary.LittleEndian.Uint32(b[4:8]))
	h.Height = int32(binary.LittleEndian.Uint32(b[8:12]))
	h.Planes = binary.LittleEndian.Uint16(b[12:14])
	h.BitCount = binary.LittleEndian.Uint16(b[14:16])
	h.Compression = binary.LittleEndian.Uint32(b[16:20])
	h.SizeImage = binary.LittleEndian.Uint32(b[20:24])
	h.XPixelsPerM = int32(binary.LittleEndian.Uint32(b[24:28]))
	h.YPixelsPerM = int32(binary.LittleEndian.Uint32(b[28:32]))
	h.ColorsUsed = binary.LittleEndian.Uint32(b[32:36])
	h.ColorsImportant = binary.LittleEndian.Uint32(b[36:40])
	return nil
}
