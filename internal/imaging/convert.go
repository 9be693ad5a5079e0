package imaging

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/image-transform/internal/transform"
)

// FromImage converts a decoded image into a sample buffer in the given domain.
//
// Images with a greyscale color model become 1-channel buffers; every other
// image becomes a 3-channel (R, G, B) buffer. Alpha is discarded. Samples are
// read at 8-bit precision: Domain8Bit keeps them in 0..255, DomainUnit divides
// them by 255.
func FromImage(img image.Image, domain transform.Domain) (*transform.Buffer, error) {
	m, err := domain.Max()
	if err != nil {
		return nil, err
	}
	scale := m / 255.0

	bounds := img.Bounds()
	height, width := bounds.Dy(), bounds.Dx()

	if isGreyModel(img.ColorModel()) {
		buf, err := transform.NewBuffer(height, width, 1, domain)
		if err != nil {
			return nil, err
		}
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				g := color.GrayModel.Convert(img.At(x+bounds.Min.X, y+bounds.Min.Y)).(color.Gray)
				buf.Pix[y*width+x] = float64(g.Y) * scale
			}
		}
		return buf, nil
	}

	buf, err := transform.NewBuffer(height, width, 3, domain)
	if err != nil {
		return nil, err
	}

	// Clone normalizes any source (YCbCr, paletted, 16-bit) to non-premultiplied
	// 8-bit RGBA starting at (0,0).
	src := imaging.Clone(img)
	for y := 0; y < height; y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+width*4]
		for x := 0; x < width; x++ {
			i := (y*width + x) * 3
			buf.Pix[i] = float64(row[x*4]) * scale
			buf.Pix[i+1] = float64(row[x*4+1]) * scale
			buf.Pix[i+2] = float64(row[x*4+2]) * scale
		}
	}
	return buf, nil
}

// Colormap is a display hint for single-channel buffers.
type Colormap int

const (
	// ColormapNone renders single-channel buffers as plain greyscale.
	ColormapNone Colormap = iota
	// ColormapGray renders single-channel buffers through a black-to-white ramp
	// spanning the data range, so out-of-range samples remain distinguishable.
	ColormapGray
)

// RenderOptions controls how a buffer is mapped to 8-bit pixels.
type RenderOptions struct {
	// Colormap is ignored for 3-channel buffers.
	Colormap Colormap

	// JPEGQuality is used by Save for .jpg/.jpeg outputs. Zero means 95.
	JPEGQuality int
}

// ToImage renders a buffer as an *image.Gray (1 channel) or *image.NRGBA
// (3 channels).
//
// Samples are divided by the domain maximum, or, under ColormapGray, mapped
// linearly from the buffer's min..max onto 0..1. The result is clamped to [0,1]
// and quantized to 8 bits.
func ToImage(buf *transform.Buffer, opts RenderOptions) (image.Image, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}
	m, err := buf.Domain.Max()
	if err != nil {
		return nil, err
	}

	lo, span := 0.0, m
	if opts.Colormap == ColormapGray && buf.Channels == 1 {
		var hi float64
		lo, hi = buf.Bounds()
		span = hi - lo
	}
	norm := func(v float64) float64 {
		if span == 0 {
			return 0
		}
		return (v - lo) / span
	}

	rect := image.Rect(0, 0, buf.Width, buf.Height)

	switch buf.Channels {
	case 1:
		out := image.NewGray(rect)
		for y := 0; y < buf.Height; y++ {
			for x := 0; x < buf.Width; x++ {
				v := norm(buf.Pix[y*buf.Width+x])
				g, _, _ := colorful.Color{R: v, G: v, B: v}.Clamped().RGB255()
				out.Pix[y*out.Stride+x] = g
			}
		}
		return out, nil
	case 3:
		out := image.NewNRGBA(rect)
		for y := 0; y < buf.Height; y++ {
			for x := 0; x < buf.Width; x++ {
				i := (y*buf.Width + x) * 3
				c := colorful.Color{R: norm(buf.Pix[i]), G: norm(buf.Pix[i+1]), B: norm(buf.Pix[i+2])}
				r, g, b := c.Clamped().RGB255()
				j := y*out.Stride + x*4
				out.Pix[j], out.Pix[j+1], out.Pix[j+2], out.Pix[j+3] = r, g, b, 0xff
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %d channels", transform.ErrInvalidInput, buf.Channels)
	}
}
