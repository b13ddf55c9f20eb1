// Package sloghandler adapts a pipeline to log/slog.Handler, so code
// written against the standard library's slog logs through the same
// filter, formatter and sink as everything else.
//
// Every slog record is emitted under one fixed target. Attributes become
// fields rendered as key=value; groups prefix their keys with "group.".
package sloghandler
