package transform

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is returned when a buffer has the wrong rank, inconsistent
// dimensions, or an undeclared sample domain.
var ErrInvalidInput = errors.New("invalid input")

// Domain identifies the numeric range used to represent pixel intensity.
type Domain int

const (
	// DomainUnknown is the zero value. Buffers in this domain cannot be inverted.
	DomainUnknown Domain = iota
	// DomainUnit holds normalized samples in [0,1].
	DomainUnit
	// Domain8Bit holds integer-valued samples in [0,255].
	Domain8Bit
)

// Max returns the maximum representable sample value M for the domain.
func (d Domain) Max() (float64, error) {
	switch d {
	case DomainUnit:
		return 1.0, nil
	case Domain8Bit:
		return 255.0, nil
	default:
		return 0, fmt.Errorf("%w: unknown sample domain %d", ErrInvalidInput, int(d))
	}
}

// String returns the name used for the domain in flags and config files.
func (d Domain) String() string {
	switch d {
	case DomainUnit:
		return "unit"
	case Domain8Bit:
		return "8bit"
	default:
		return "unknown"
	}
}

// ParseDomain maps "unit" or "8bit" to a Domain.
func ParseDomain(name string) (Domain, error) {
	switch name {
	case "unit":
		return DomainUnit, nil
	case "8bit":
		return Domain8Bit, nil
	default:
		return DomainUnknown, fmt.Errorf("unknown sample domain %q (want unit or 8bit)", name)
	}
}

// Buffer is a dense row-major pixel grid with interleaved channels.
//
// The sample at row r, column c, channel k lives at Pix[(r*Width+c)*Channels+k].
type Buffer struct {
	Height   int
	Width    int
	Channels int
	Domain   Domain
	Pix      []float64
}

// NewBuffer allocates a zeroed buffer of the given shape.
func NewBuffer(height, width, channels int, domain Domain) (*Buffer, error) {
	if height < 0 || width < 0 {
		return nil, fmt.Errorf("%w: negative dimensions %dx%d", ErrInvalidInput, height, width)
	}
	if channels != 1 && channels != 3 {
		return nil, fmt.Errorf("%w: %d channels (want 1 or 3)", ErrInvalidInput, channels)
	}
	return &Buffer{
		Height:   height,
		Width:    width,
		Channels: channels,
		Domain:   domain,
		Pix:      make([]float64, height*width*channels),
	}, nil
}

// NewGrey builds a greyscale buffer from rows of samples. All rows must have the
// same length.
func NewGrey(rows [][]float64, domain Domain) (*Buffer, error) {
	width := 0
	if len(rows) > 0 {
		width = len(rows[0])
	}
	b, err := NewBuffer(len(rows), width, 1, domain)
	if err != nil {
		return nil, err
	}
	for r, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d samples, want %d", ErrInvalidInput, r, len(row), width)
		}
		copy(b.Pix[r*width:], row)
	}
	return b, nil
}

// NewColor builds a color buffer from rows of (R, G, B) triples.
func NewColor(rows [][][3]float64, domain Domain) (*Buffer, error) {
	width := 0
	if len(rows) > 0 {
		width = len(rows[0])
	}
	b, err := NewBuffer(len(rows), width, 3, domain)
	if err != nil {
		return nil, err
	}
	for r, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d pixels, want %d", ErrInvalidInput, r, len(row), width)
		}
		for c, px := range row {
			copy(b.Pix[(r*width+c)*3:], px[:])
		}
	}
	return b, nil
}

// Validate reports whether the buffer is a well-formed 2D (1 channel) or 3D
// (3 channel) grid.
func (b *Buffer) Validate() error {
	if b == nil {
		return fmt.Errorf("%w: nil buffer", ErrInvalidInput)
	}
	if b.Height < 0 || b.Width < 0 {
		return fmt.Errorf("%w: negative dimensions %dx%d", ErrInvalidInput, b.Height, b.Width)
	}
	if b.Channels != 1 && b.Channels != 3 {
		return fmt.Errorf("%w: %d channels (want 1 or 3)", ErrInvalidInput, b.Channels)
	}
	if want := b.Height * b.Width * b.Channels; len(b.Pix) != want {
		return fmt.Errorf("%w: %d samples for %dx%dx%d buffer, want %d",
			ErrInvalidInput, len(b.Pix), b.Height, b.Width, b.Channels, want)
	}
	return nil
}

// At returns the sample at (row, col, channel).
func (b *Buffer) At(row, col, channel int) float64 {
	return b.Pix[(row*b.Width+col)*b.Channels+channel]
}

// Set stores a sample at (row, col, channel).
func (b *Buffer) Set(row, col, channel int, v float64) {
	b.Pix[(row*b.Width+col)*b.Channels+channel] = v
}

// Shape returns the dimensions in (height, width, channels) order.
func (b *Buffer) Shape() (height, width, channels int) {
	return b.Height, b.Width, b.Channels
}

// Bounds returns the smallest and largest sample values. Both are zero for an
// empty buffer.
func (b *Buffer) Bounds() (lo, hi float64) {
	if len(b.Pix) == 0 {
		return 0, 0
	}
	lo, hi = b.Pix[0], b.Pix[0]
	for _, v := range b.Pix[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// Clone returns a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	out := *b
	out.Pix = append([]float64(nil), b.Pix...)
	return &out
}
