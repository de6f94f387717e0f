// Package watch re-runs work when a file changes on disk.
package watch
