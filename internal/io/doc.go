// Package ioutils provides the file system helpers used when writing
// diagrams, rendered songs and metrics.
//
//	// Write a diagram, creating the directory if needed
//	path := ioutils.OutputPath(dir, chord.String(), ".png")
//	err := ioutils.WriteFile(ctx, path, png)
//
//	// Keep a copy of an MP3 before retagging it
//	backup, err := ioutils.BackupFile(ctx, "track.mp3")
//
// SanitizeFileName turns chord names such as "Bb/D" into valid file names.
package ioutils
