// Package types defines the repticare domain model: reptile profiles, dated
// care entries, the Store interface that persists them as keyed JSON blobs,
// backend configuration, and the standard error values shared by every
// package in the module.
package types
