// Package kaggle is a thin read-only client for the Kaggle public API v1.
//
// It covers competitions, datasets, and models (list/detail/files) plus file
// downloads, authenticating with HTTP basic auth. The client reports failures
// as *StatusError or sentinel errors; classification into the fault taxonomy
// happens one layer up, at the invoker boundary.
package kaggle
