// bmp package implements a reader and writer for uncompressed 24-bit bitmaps.
//
// The codec is permissive: it reads the two fixed headers and the
// pixel payload exactly as declared and never rejects a file for its magic,
// bit depth or compression. Pixels are kept as one flat byte slice addressed
// as (row*width + col)*channels + channel, with no row padding.
package bmp

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/anas-shakeel/bmp-smooth/internal/utils"
)

type BitmapImage struct {
	Filename string // Source path, if the image was read from disk
	BFHeader BitmapFileHeader
	BIHeader BitmapInfoHeader
	Pixels   []byte
}

// Number of bytes per pixel (bits-per-pixel / 8)
func (b *BitmapImage) Channels() int {
	return int(b.BIHeader.BitCount / 8)
}

// Supported reports whether the headers describe the one layout this package
// is meant for (BM, 1 plane, 24-bit, uncompressed). Nothing rejects an image
// that isn't; callers may use this to warn.
func (b *BitmapImage) Supported() bool {
	return b.BFHeader.Type == [2]byte{'B', 'M'} &&
		b.BIHeader.Planes == 1 &&
		b.BIHeader.BitCount == 24 &&
		b.BIHeader.Compression == 0
}

// Creates the canonical 640x480 gradient test image
func CreateGradient() *BitmapImage {
	b, _ := NewGradient(640, 480)
	return b
}

// Creates a 24 bit uncompressed gradient image held entirely in memory.
// Byte 0 of each pixel is 255*x/width, byte 1 is 255*y/height and byte 2 is 128.
// The gradient calls these red, green and blue; in the B, G, R order a
// standard reader uses, the x ramp shows up as blue.
func NewGradient(width, height int) (*BitmapImage, error) {
	if width <= 0 {
		return nil, errors.New("width must be greater than 0")
	} else if height <= 0 {
		return nil, errors.New("height must be greater than 0")
	}

	const channels = 3
	sizeImage := uint32(width * height * channels)

	bfh := BitmapFileHeader{Type: [2]byte{'B', 'M'}, Size: HeadersSize + sizeImage, OffBits: HeadersSize}
	bih := BitmapInfoHeader{
		Size:      InfoHeaderSize,
		Width:     int32(width),
		Height:    int32(height),
		Planes:    1,
		BitCount:  24,
		SizeImage: sizeImage,
	}

	pixels := make([]byte, sizeImage)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := (y*width + x) * channels
			pixels[i+0] = byte(255 * x / width)
			pixels[i+1] = byte(255 * y / height)
			pixels[i+2] = 128
		}
	}

	return &BitmapImage{BFHeader: bfh, BIHeader: bih, Pixels: pixels}, nil
}

// Decodes a bitmap from r.
//
// Nothing about the content is an error: a source shorter than the 54 header
// bytes leaves the missing header fields zero, and a pixel payload shorter than
// SizeImage leaves the tail zero. Only a failing read or seek is an IOError.
func Decode(r io.ReadSeeker) (*BitmapImage, error) {
	bfh, bih, err := DecodeHeaders(r)
	if err != nil {
		return nil, err
	}
	b := BitmapImage{BFHeader: bfh, BIHeader: bih}

	// Seek to Pixel Array (OffBits)
	if _, err := r.Seek(int64(bfh.OffBits), io.SeekStart); err != nil {
		return nil, &IOError{Op: "seek", Err: err}
	}

	// Grow with what is actually there before padding out to the declared size
	n := int64(bih.SizeImage)
	pixels, err := io.ReadAll(io.LimitReader(r, n))
	if err != nil {
		return nil, &IOError{Op: "read", Err: err}
	}
	if int64(len(pixels)) < n {
		pixels = append(pixels, make([]byte, n-int64(len(pixels)))...)
	}
	b.Pixels = pixels

	return &b, nil
}

// Decodes only the file and info headers from r, zero-filling any that the
// source is too short to hold. Nothing is allocated for the pixel payload.
func DecodeHeaders(r io.Reader) (BitmapFileHeader, BitmapInfoHeader, error) {
	var (
		head [HeadersSize]byte
		bfh  BitmapFileHeader
		bih  BitmapInfoHeader
	)
	_, err := io.ReadFull(r, head[:])
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return bfh, bih, &IOError{Op: "read", Err: err}
	}

	// Both only fail on short input, and head is always full length
	_ = bfh.UnmarshalBinary(head[:FileHeaderSize])
	_ = bih.UnmarshalBinary(head[FileHeaderSize:])
	return bfh, bih, nil
}

// Reads a Bitmap file
func ReadBitmap(filename string) (*BitmapImage, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, &IOError{Op: "open", Path: filename, Err: err}
	}
	defer file.Close()

	b, err := Decode(file)
	if err != nil {
		var ioErr *IOError
		if errors.As(err, &ioErr) {
			ioErr.Path = filename
		}
		return nil, err
	}
	b.Filename = filename

	return b, nil
}

// Reads only the headers of a Bitmap file. The returned image has no pixels.
func ReadHeaders(filename string) (*BitmapImage, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, &IOError{Op: "open", Path: filename, Err: err}
	}
	defer file.Close()

	bfh, bih, err := DecodeHeaders(file)
	if err != nil {
		var ioErr *IOError
		if errors.As(err, &ioErr) {
			ioErr.Path = filename
		}
		return nil, err
	}

	return &BitmapImage{Filename: filename, BFHeader: bfh, BIHeader: bih}, nil
}

// Encodes the headers and exactly SizeImage pixel bytes to w. Header fields
// are written as stored; nothing is recomputed.
func (b *BitmapImage) Encode(w io.Writer) error {
	fh, _ := b.BFHeader.MarshalBinary()
	ih, _ := b.BIHeader.MarshalBinary()

	for _, chunk := range [][]byte{fh, ih, b.payload()} {
		if _, err := w.Write(chunk); err != nil {
			return &IOError{Op: "write", Err: err}
		}
	}
	return nil
}

// Pixel bytes sized to the declared SizeImage (truncated or zero-extended)
func (b *BitmapImage) payload() []byte {
	n := int(b.BIHeader.SizeImage)
	if len(b.Pixels) >= n {
		return b.Pixels[:n]
	}
	p := make([]byte, n)
	copy(p, b.Pixels)
	return p
}

// Saves the bitmap image onto local disk
func (b *BitmapImage) Save(filename string) (err error) {
	file, err := os.Create(filename)
	if err != nil {
		return &IOError{Op: "create", Path: filename, Err: err}
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = &IOError{Op: "write", Path: filename, Err: cerr}
		}
	}()

	// Create a buffer (to reduce syscalls)
	w := bufio.NewWriter(file)

	if err := b.Encode(w); err != nil {
		var ioErr *IOError
		if errors.As(err, &ioErr) {
			ioErr.Path = filename
		}
		return err
	}

	if err := w.Flush(); err != nil {
		return &IOError{Op: "write", Path: filename, Err: err}
	}
	return nil
}

// Returns a deep copy of the bitmap image
func (b *BitmapImage) Copy() *BitmapImage {
	newBitmap := *b
	newBitmap.Pixels = make([]byte, len(b.Pixels))
	copy(newBitmap.Pixels, b.Pixels)
	return &newBitmap
}

// Returns an image containing a single channel of the source image.
// channel can be one of (`red`, `green`, and `blue`), in B, G, R byte order.
// Images with fewer than three channels are copied unchanged.
func (b *BitmapImage) GetChannel(channel string) (*BitmapImage, error) {
	var keep int
	switch channel {
	case "red":
		keep = 2
	case "green":
		keep = 1
	case "blue":
		keep = 0
	default:
		return nil, errors.New("invalid color channel: only red, green, and blue are supported")
	}

	newBitmap := b.Copy()
	channels := b.Channels()
	if channels < 3 {
		return newBitmap, nil
	}

	// Turn the channels to zero except requested one!
	for i := 0; i+channels <= len(newBitmap.Pixels); i += channels {
		for c := 0; c < 3; c++ {
			if c != keep {
				newBitmap.Pixels[i+c] = 0
			}
		}
	}

	return newBitmap, nil
}

// Print the bitmap in terminal, top row first. Use for small images only
func (b *BitmapImage) PrintBitmap(w io.Writer) {
	r := b.Bounds()
	if r.Empty() || b.Channels() == 0 {
		return
	}

	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c := b.RGBAAt(x, y)
			fmt.Fprint(w, utils.ColoredBlock("  ", int(c.R), int(c.G), int(c.B)))
		}
		fmt.Fprintln(w)
	}
}

// Print the Metadata bitmap in terminal. (in human-readable format)
func (b *BitmapImage) PrintMetadata(w io.Writer) {
	fmt.Fprintf(w, "Filename: \t%v\n", b.Filename)
	fmt.Fprintf(w, "Signature: \t%q\n", string(b.BFHeader.Type[:]))
	fmt.Fprintf(w, "Filesize: \t%v bytes\n", b.BFHeader.Size)
	fmt.Fprintf(w, "Width: \t\t%v px\n", b.BIHeader.Width)
	fmt.Fprintf(w, "Height: \t%v px\n", b.BIHeader.Height)
	fmt.Fprintf(w, "BitCount: \t%vbits\n", b.BIHeader.BitCount)
	fmt.Fprintf(w, "Compression: \t%v\n", b.BIHeader.Compression)
	fmt.Fprintf(w, "PixelOffset: \t%v bytes\n", b.BFHeader.OffBits)
	fmt.Fprintf(w, "ImageSize: \t%v bytes\n", b.BIHeader.SizeImage)
	fmt.Fprintf(w, "PixelCount: \t%v pixels\n", int64(b.BIHeader.Width)*int64(b.BIHeader.Height))
	fmt.Fprintf(w, "Supported: \t%v\n", b.Supported())
}
