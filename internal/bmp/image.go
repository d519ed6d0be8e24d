package bmp

import (
	"image"
	"image/color"
)

var _ image.Image = (*BitmapImage)(nil)

// ColorModel implements image.Image.
func (b *BitmapImage) ColorModel() color.Model {
	return color.RGBAModel
}

// Bounds is (0,0)-(|Width|,|Height|); empty for a negative width.
func (b *BitmapImage) Bounds() image.Rectangle {
	w, h := int(b.BIHeader.Width), int(b.BIHeader.Height)
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = -h
	}
	return image.Rect(0, 0, w, h)
}

// At implements image.Image.
func (b *BitmapImage) At(x, y int) color.Color {
	return b.RGBAAt(x, y)
}

// RGBAAt reads the pixel at (x, y) the way a standard BMP reader would:
// rows run bottom-up unless Height is negative, and bytes are stored B, G, R.
// Pixels outside the bounds or past the end of the buffer are transparent
// black; one or two channel images read as gray.
func (b *BitmapImage) RGBAAt(x, y int) color.RGBA {
	r := b.Bounds()
	channels := b.Channels()
	if !(image.Point{x, y}.In(r)) || channels == 0 {
		return color.RGBA{}
	}

	row := y
	if b.BIHeader.Height > 0 {
		row = r.Dy() - 1 - y
	}
	i := (row*r.Dx() + x) * channels
	if i+channels > len(b.Pixels) {
		return color.RGBA{}
	}

	px := b.Pixels[i : i+channels]
	if channels < 3 {
		return color.RGBA{px[0], px[0], px[0], 0xff}
	}
	return color.RGBA{R: px[2], G: px[1], B: px[0], A: 0xff}
}
