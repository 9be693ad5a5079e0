// Package server implements an MCP (Model Context Protocol) server that exposes
// the greyscale and invert transforms as tools.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - image_load: Load image and get metadata
//   - image_greyscale: Weighted greyscale conversion, optionally inverted
//   - image_invert: Negative of a color or greyscale image
//
// Transform results are returned inline as base64 PNG and can also be written
// to disk via output_path.
//
// # Image Caching
//
// Decoded images are cached by path for the lifetime of the process.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with code
// -32000 and the Go error string in data. Lines that are not valid JSON get a
// -32700 parse error with a null id.
package server
