// Package server implements the MCP (Model Context Protocol) server for
// flowchart recognition.
//
// This package provides a JSON-RPC 2.0 server that exposes the recognition
// pipeline through the MCP protocol, so MCP-compatible clients can turn a
// flowchart image into classified blocks.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - notifications/initialized: Client acknowledgment (no response)
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - flowchart_classify: Classify the blocks of a flowchart, optionally with
//     the text inside each block
//   - flowchart_annotate: Classify and return an annotated PNG plus counts
//   - flowchart_regions: Raw extracted regions, before classification
//
// Optional arguments fall back to the defaults the server was created with,
// which normally come from the environment (see package config).
//
// # Image Caching
//
// Images are loaded through the recognizer's cache. They are cached by path
// and reused across tool calls for the lifetime of the server process.
//
// # Error Handling
//
// Errors are returned as JSON-RPC error responses with:
//   - code: -32601 unknown method, -32602 unknown tool or bad arguments,
//     -32000 tool execution failure, -32700 unparsable request line
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
// The server is typically started by an MCP client through "pic2block serve":
//
//	srv := server.New(recognizer, recognition.DefaultOptions(), server.WithLogger(logger))
//	if err := srv.Serve(ctx, os.Stdin, os.Stdout); err != nil {
//	    log.Fatal(err)
//	}
package server
