// Package validate checks and sanitizes caller-supplied input before it
// reaches the Kaggle API or the file system.
//
// Every rejection is returned as a fault validation envelope with a
// message that names the offending argument, so tool callers can fix
// their input without a round trip to the logs.
package validate
