// Package handler delivers rendered log entries to a destination sink.
//
// The Exchange starts in synchronous mode: Deliver writes each entry to the
// sink before returning, under a lock, so the order of lines in the output
// is the order in which callers acquired that lock.
//
// EnableAsync switches to asynchronous mode. Deliver then appends the entry
// to a shared byte buffer of AsyncBufSize bytes and returns; a single
// background consumer swaps the buffer out and writes its contents to the
// sink in one call, so several entries may be coalesced into one write but
// no entry is ever split across writes. When the buffer is full, producers
// block until the consumer has taken it (backpressure); nothing is dropped.
//
// DisableAsync returns to synchronous mode and waits for the consumer to
// write everything queued before the call. Flush waits, without a mode
// change, until the buffer is empty and the consumer's last write finished.
//
// Sink failures never reach callers. Write errors and panics raised by the
// sink are counted in Stats and otherwise ignored.
//
// Emitter is the contract the slog and zap front-ends in the subpackages
// use to feed records into a Logger.
package handler
