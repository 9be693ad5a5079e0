// Package imaging moves pixels between image files and transform.Buffer values.
//
// It is the I/O side of the greyscale pipeline:
//   - ImageCache decodes files (PNG, JPEG, GIF, BMP, TIFF, WebP) and keeps them
//     keyed by path
//   - FromImage turns a decoded image into a 1- or 3-channel sample buffer
//   - ToImage renders a buffer back to 8-bit pixels, clamping out-of-range samples
//   - Save and WriteImage encode by file extension and replace the destination
//     atomically
//
// # Coordinate System
//
// Buffers are indexed (row, col) with (0,0) at the top-left corner. Decoded
// images whose bounds do not start at the origin are shifted so that their
// top-left pixel becomes (0,0).
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. The conversion functions are stateless.
//
// # Error Handling
//
// Load failures wrap ErrFileNotFound or ErrDecode together with the underlying
// error, so callers can test for either with errors.Is. Encoding failures wrap
// ErrEncode. Shape problems in buffers surface as transform.ErrInvalidInput.
package imaging
