// Package server implements the MCP (Model Context Protocol) server for
// vanishing point analysis of photographs.
//
// This package provides a JSON-RPC 2.0 server that exposes the detection and
// estimation pipeline through the MCP protocol, so MCP-compatible clients can
// analyze perspective structure in images.
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
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//
// Edge and Segment Detection:
//   - image_edge_detect: Canny edge map as base64 PNG
//   - image_detect_segments: Hough line segment detection
//
// Vanishing Point Estimation:
//   - image_find_vanishing_points: Full clustering pipeline over detected segments
//   - image_find_horizon: Horizon line derived from the estimated points
//
// Rendering:
//   - image_render_clusters: Annotated overlay of clusters, points, and horizon
//
// # Image Caching
//
// The server maintains an in-memory cache of loaded images. Images are cached
// by path and reused across multiple tool calls, avoiding redundant disk I/O.
// The cache persists for the lifetime of the server process.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// An image without enough linear structure is an error for
// image_find_vanishing_points, but image_find_horizon and
// image_render_clusters degrade gracefully: the horizon falls back to a flat
// line through the image center, and the render shows all detected segments
// as outliers.
//
// # Usage
//
// The server is typically started by an MCP client:
//
//	srv := server.New()
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
