// Package fault classifies failures into a small taxonomy and wraps them
// in sanitized envelopes safe to return to clients.
//
// Raw errors from the Kaggle API or the network frequently carry details
// that must not leak outward: credential material in auth failures, stack
// traces, absolute file-system paths. The Classifier maps each raw error
// to a Kind with a fixed, human-readable message and a correlation ID,
// and logs the underlying cause exactly once on the server side.
package fault
