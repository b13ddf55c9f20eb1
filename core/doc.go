// Package core defines the shared types used across the pipelog pipeline.
//
// It provides the Level type for severity filtering, the Record type that
// represents a single log call, the Field type for key-value pairs, and
// EntryBuf, the bounded buffer every log call renders into.
//
// An EntryBuf holds at most MaxEntrySize bytes. The last byte is reserved for
// the terminating newline, so a rendered entry is always newline-terminated
// and never longer than MaxEntrySize, no matter how large the message. When
// text does not fit, EntryBuf keeps the longest prefix that ends on a UTF-8
// boundary and reports ErrTruncated; callers treat that as an accepted
// degradation, not a failure.
//
// An EntryBuf is in the Writing phase until Terminate is called, which
// appends the newline and returns the read-only Entry view. Records and
// EntryBufs are pooled via sync.Pool so that the hot path does not allocate;
// callers get them with GetRecord / GetEntryBuf and must return them with
// PutRecord / PutEntryBuf once the call is done with them.
package core
