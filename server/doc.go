// Package server exposes Kaggle over the Model Context Protocol: seven
// tools for competitions, datasets, models and downloads, plus six
// read-only markdown resources.
//
// The server speaks MCP on stdio, which is why nothing in this process
// may write to stdout except the protocol itself. All tool handlers go
// through a shared invoker that caches results, collapses duplicate
// in-flight calls and converts failures to sanitized envelopes.
package server
