// Package transform implements pixel-wise colorspace transforms over in-memory
// sample buffers.
//
// A Buffer is a dense Height x Width x Channels grid of float64 samples stored in
// row-major order with channels interleaved. Two shapes are valid:
//   - Channels == 3: a color image with channel order (R, G, B)
//   - Channels == 1: a greyscale image
//
// Every Buffer declares its sample Domain, which fixes the maximum representable
// sample value M used by Invert:
//   - DomainUnit: normalized samples in [0,1], M = 1.0
//   - Domain8Bit: integer-valued samples in [0,255], M = 255
//
// # Purity
//
// ToGreyscale and Invert never modify their input and always return a freshly
// allocated Buffer. Rows are processed in parallel; because no output sample
// depends on another pixel, the result is identical to a serial pass.
//
// # Greyscale Weights
//
// ToGreyscale uses LiteralWeights (0.212, 0.7152, 0.722). These do not sum to 1,
// so a grey input of value v maps to 1.6092*v and outputs may exceed M. Callers
// that want standard luminance pass Rec709Weights to ToGreyscaleWith. Neither
// function clips.
//
// # Errors
//
// Shape or domain problems are reported as errors wrapping ErrInvalidInput.
package transform
