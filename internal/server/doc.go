// Package server implements the MCP (Model Context Protocol) server for image editing tools.
//
// This package provides a JSON-RPC 2.0 server that exposes the imaging store
// through the MCP protocol. Clients load images under names, derive new named
// images from them with editing operations, and read results back as files or
// base64 PNG.
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
// The notifications/initialized notification gets no response.
//
// # Available Tools
//
// Store Management:
//   - image_load: Read a file and store it under a name
//   - image_save: Write a stored image to a file
//   - image_export: Return a stored image as base64 PNG
//   - image_list: List stored image names
//   - image_info: Get width, height and max value
//   - image_history: List applied edits
//
// Edit Operations (each reads "name" and writes "dest"):
//   - image_transform: Greyscale components or sepia
//   - image_filter: Blur or sharpen
//   - image_brightness: Add a constant to every channel
//   - image_flip: Horizontal or vertical mirror
//   - image_mosaic: Seeded region averaging
//
// Analysis:
//   - image_histogram: Grey level counts
//   - image_sample_color: Color at a pixel
//   - image_dominant_colors: Most frequent exact colors
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string, which starts with the imaging sentinel
//     ("image not found", "invalid argument", ...)
//
// A failed edit never changes the store.
//
// # Usage
//
//	srv := server.New(server.WithLogger(logger))
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
