// Package invoke runs Kaggle API operations through a shared pipeline:
// cache lookup, request collapsing, bounded retry, error classification
// and instrumentation.
//
// Every tool handler funnels through Invoker.Invoke, so the caching and
// failure semantics are identical across operations. Results are cached
// as serialized JSON under a deterministic key; errors are never cached.
// Concurrent invocations that share a cache key are collapsed into a
// single remote call.
package invoke
