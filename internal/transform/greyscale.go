package transform

import (
	"fmt"

	"github.com/anthonynsimon/bild/parallel"
)

// Weights are the per-channel coefficients of a greyscale conversion.
type Weights struct {
	R float64
	G float64
	B float64
}

var (
	// LiteralWeights are the default coefficients, kept as written. They sum to
	// 1.6092, so outputs can exceed the input domain's maximum.
	LiteralWeights = Weights{R: 0.212, G: 0.7152, B: 0.722}

	// Rec709Weights are the ITU-R BT.709 luminance coefficients. They sum to 1.
	Rec709Weights = Weights{R: 0.2126, G: 0.7152, B: 0.0722}
)

// Sum returns R + G + B: the factor applied to a grey pixel.
func (w Weights) Sum() float64 {
	return w.R + w.G + w.B
}

// ParseWeights selects a named weight set: "literal" or "rec709".
func ParseWeights(name string) (Weights, error) {
	switch name {
	case "literal":
		return LiteralWeights, nil
	case "rec709":
		return Rec709Weights, nil
	default:
		return Weights{}, fmt.Errorf("unknown greyscale weights %q (want literal or rec709)", name)
	}
}

// ToGreyscale converts an H x W x 3 buffer to H x W using LiteralWeights.
func ToGreyscale(im *Buffer) (*Buffer, error) {
	return ToGreyscaleWith(im, LiteralWeights)
}

// ToGreyscaleWith converts an H x W x 3 buffer to H x W, computing each output
// sample as w.R*R + w.G*G + w.B*B at the same position. The output keeps the
// input's domain and is not clipped.
func ToGreyscaleWith(im *Buffer, w Weights) (*Buffer, error) {
	if err := im.Validate(); err != nil {
		return nil, err
	}
	if im.Channels != 3 {
		return nil, fmt.Errorf("%w: greyscale conversion needs a 3-channel buffer, got %d channel(s)",
			ErrInvalidInput, im.Channels)
	}

	out, err := NewBuffer(im.Height, im.Width, 1, im.Domain)
	if err != nil {
		return nil, err
	}

	width := im.Width
	parallel.Line(im.Height, func(start, end int) {
		for r := start; r < end; r++ {
			src := im.Pix[r*width*3 : (r+1)*width*3]
			dst := out.Pix[r*width : (r+1)*width]
			for c := range dst {
				px := src[c*3 : c*3+3]
				dst[c] = w.R*px[0] + w.G*px[1] + w.B*px[2]
			}
		}
	})

	return out, nil
}
