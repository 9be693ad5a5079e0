package transform

import (
	"github.com/anthonynsimon/bild/parallel"
)

// Invert returns the negative of a greyscale or color buffer: every sample v
// becomes M - v, where M is the maximum of the buffer's domain.
//
// Applying Invert twice returns the original samples. This is exact for
// integer-valued 8-bit samples. In the unit domain it is exact for samples in
// [0.5, 1] and for any dyadic fraction; other values may differ from the
// original in the last bit.
func Invert(im *Buffer) (*Buffer, error) {
	if err := im.Validate(); err != nil {
		return nil, err
	}
	m, err := im.Domain.Max()
	if err != nil {
		return nil, err
	}

	out, err := NewBuffer(im.Height, im.Width, im.Channels, im.Domain)
	if err != nil {
		return nil, err
	}

	stride := im.Width * im.Channels
	parallel.Line(im.Height, func(start, end int) {
		for i := start * stride; i < end*stride; i++ {
			out.Pix[i] = m - im.Pix[i]
		}
	})

	return out, nil
}
