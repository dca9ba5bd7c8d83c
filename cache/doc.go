// Package cache provides deterministic result caching for Kaggle API
// operations.
//
// It provides a Cache interface with an in-memory implementation,
// SHA-256-based key derivation from operation name and arguments, and a
// TTL policy keyed by resource family. Downloads are never cached; a
// zero TTL always means "do not store".
package cache
