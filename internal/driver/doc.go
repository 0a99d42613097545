// Package driver runs the privacy pass over a set of snapshot files.
//
// Units are independent: each gets its own diagnostic bag and timer and
// is checked on its own goroutine, bounded by Options.Jobs.
package driver
