// Package filehandler provides a rotating log file destination.
//
// Files are managed by lumberjack: rotation by size, retention by count and
// age, optional gzip compression of rotated files. On top of that a File
// can rotate on a fixed interval, checked on every write.
//
// A File is an io.WriteCloser and is handed to the pipeline as its sink.
package filehandler
