// Filters perform color manipulation and per-pixel operations
package filters

import (
	"github.com/anas-shakeel/bmp-smooth/internal/bmp"
	"github.com/anas-shakeel/bmp-smooth/internal/utils"
)

// 3x3 smoothing kernel, in sixteenths
var smoothKernel = [3][3]int{
	{1, 2, 1},
	{2, 4, 2},
	{1, 2, 1},
}

const smoothKernelSum = 16

// Smooth replaces the pixels of b with a 3x3 weighted-average (Gaussian-like)
// blur of themselves. Border pixels are left as they are.
func Smooth(b *bmp.BitmapImage) {
	b.Pixels = SmoothPixels(b.Pixels, int(b.BIHeader.Width), int(b.BIHeader.Height), b.Channels())
}

// SmoothPixels returns a smoothed copy of src, a row-major buffer of
// width*height pixels with the given number of channels.
//
// Only interior pixels (1 <= x <= width-2, 1 <= y <= height-2) are written;
// each channel gets the kernel-weighted sum of its 3x3 neighbourhood truncated
// to a byte. Rows that src is too short to hold are treated as absent, so a
// buffer smaller than the declared geometry is never read past its end.
func SmoothPixels(src []byte, width, height, channels int) []byte {
	dst := make([]byte, len(src))
	copy(dst, src)

	if width < 3 || height < 3 || channels <= 0 {
		return dst
	}

	stride := width * channels
	if rows := len(src) / stride; rows < height {
		height = rows
	}

	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			for c := 0; c < channels; c++ {
				sum := 0
				for ky := 0; ky < 3; ky++ {
					row := (y + ky - 1) * stride
					for kx := 0; kx < 3; kx++ {
						sum += smoothKernel[ky][kx] * int(src[row+(x+kx-1)*channels+c])
					}
				}
				// Weights are sixteenths, so integer division is exactly
				// the truncating cast of the fractional sum
				dst[y*stride+x*channels+c] = byte(sum / smoothKernelSum)
			}
		}
	}

	return dst
}

// Inverts (negates) the bitmap image
func Invert(b *bmp.BitmapImage) {
	for i, v := range b.Pixels {
		b.Pixels[i] = 255 - v
	}
}

// Converts a bitmap to Black-and-White (average of the first three channels)
func Grayscale(b *bmp.BitmapImage) {
	channels := b.Channels()
	if channels < 3 {
		return
	}

	for i := 0; i+channels <= len(b.Pixels); i += channels {
		avg := utils.Average(b.Pixels[i], b.Pixels[i+1], b.Pixels[i+2])
		b.Pixels[i] = avg
		b.Pixels[i+1] = avg
		b.Pixels[i+2] = avg
	}
}

// Converts a bitmap to Black-and-White (with ITU-R 601-2 Luma Transform).
// Pixels are read in B, G, R byte order.
func GrayscaleLuma(b *bmp.BitmapImage) {
	channels := b.Channels()
	if channels < 3 {
		return
	}

	for i := 0; i+channels <= len(b.Pixels); i += channels {
		p := b.Pixels[i : i+3]
		L := int(p[2])*299/1000 + int(p[1])*587/1000 + int(p[0])*114/1000

		p[0], p[1], p[2] = byte(L), byte(L), byte(L)
	}
}
