// Package health runs startup checks for the server: credentials are
// present, the download directory is writable, and the Kaggle API
// answers. Failures are reported to the log rather than aborting
// startup, since a read-only subset of tools can still work.
package health
