// Package observe provides observability primitives for operation invocations.
//
// It is a pure instrumentation library: no remote calls, no transport, no I/O
// beyond exporter setup. The invoker wires the observer around every
// cache-backed Kaggle operation; the structured logger writes to stderr so
// stdout stays free for the MCP stdio transport.
package observe
