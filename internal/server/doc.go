// Package server implements the MCP (Model Context Protocol) server for image editing tools.
//
// This package provides a JSON-RPC 2.0 server that exposes the editor's
// operations through the MCP protocol, so MCP-compatible clients can resize,
// crop and otherwise transform image files.
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
// Source Information:
//   - image_load: Open an image and report its path, size and format
//
// Geometry:
//   - image_resize: Resize with auto, inverse, none, width, height, remove, top_remove or fill
//   - image_crop: Crop a region placed by offsets
//   - image_rotate: Rotate clockwise by any angle
//   - image_flip: Mirror horizontally or vertically
//
// Effects:
//   - image_sharpen: Sharpen with a 3x3 kernel
//   - image_reflection: Append a graded mirror reflection
//   - image_watermark: Draw another image on top
//   - image_background: Flatten onto a solid color
//
// Output:
//   - image_render: Re-encode without editing
//   - image_edit: Run an ordered pipeline of operations
//
// Every tool except image_load opens the source, applies its operation, then
// either saves to "output" (the format follows the extension) or returns the
// encoded image as base64 together with its mime type. Source files are never
// modified unless "output" names them.
//
// # Offsets
//
// Crop and watermark offsets accept null or "center" (centered), true or
// "far" (flush with the right or bottom edge), or an integer. Negative
// integers count inward from the far edge.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
//	backend, err := imaging.NewBackend()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	srv := server.New(backend, version)
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
