package handler

import (
	"io"
	"os"
	"sync"
)

// AsyncBufSize is the soft capacity in bytes of the async buffer. A producer
// whose entry would push the buffer past it waits for the consumer.
const AsyncBufSize = 1 << 20

// Exchange hands rendered entries to a destination sink, either directly or
// through a double-buffered background consumer.
type Exchange struct {
	w     io.Writer
	stats *Stats

	// mu guards buf, spare, active, writing and done.
	mu            sync.Mutex
	consumerReady *sync.Cond
	producerRoom  *sync.Cond
	buf           []byte
	spare         []byte
	active        bool
	writing       bool
	done          chan struct{}

	// writeMu serializes every write to w.
	writeMu sync.Mutex

	// scopeMu serializes EnableAsync and DisableAsync.
	scopeMu sync.Mutex

	closeOnce sync.Once
}

// NewExchange creates an Exchange in synchronous mode writing to w
// (default: os.Stderr).
func NewExchange(w io.Writer) *Exchange {
	if w == nil {
		w = os.Stderr
	}
	x := &Exchange{
		w:     w,
		stats: NewStats(),
	}
	x.consumerReady = sync.NewCond(&x.mu)
	x.producerRoom = sync.NewCond(&x.mu)
	return x
}

// Writer returns the destination sink.
func (x *Exchange) Writer() io.Writer {
	return x.w
}

// Deliver hands one complete entry to the sink. In synchronous mode it is
// written before Deliver returns, after whatever the consumer still has to
// drain. In async mode it is copied into the shared buffer, blocking while
// the buffer has no room. msg may be reused as soon as Deliver returns.
func (x *Exchange) Deliver(msg []byte) {
	x.mu.Lock()
	blocked := false
	for {
		if x.active {
			if x.fits(msg) {
				x.enqueue(msg)
				return
			}
			if !blocked {
				x.stats.IncrementBlocked()
				blocked = true
			}
			x.producerRoom.Wait()
			continue
		}
		// Entries queued before async mode ended are written first.
		if len(x.buf) == 0 && !x.writing {
			break
		}
		x.producerRoom.Wait()
	}
	x.writeSink(msg)
	x.mu.Unlock()
	x.stats.IncrementDelivered(len(msg))
}

// fits reports whether msg can be appended now. An entry larger than the
// whole buffer is accepted once the buffer is empty. Callers hold mu.
func (x *Exchange) fits(msg []byte) bool {
	return len(x.buf) == 0 || len(x.buf)+len(msg) <= AsyncBufSize
}

// enqueue appends msg, wakes the consumer and releases mu.
func (x *Exchange) enqueue(msg []byte) {
	x.buf = append(x.buf, msg...)
	x.consumerReady.Signal()
	x.mu.Unlock()
	x.stats.IncrementDelivered(len(msg))
}

// EnableAsync switches to async mode and starts the consumer. Enabling an
// Exchange that is already async is a programming error and panics.
func (x *Exchange) EnableAsync() {
	x.scopeMu.Lock()
	defer x.scopeMu.Unlock()

	x.mu.Lock()
	defer x.mu.Unlock()
	if x.active {
		panic("handler: async mode enabled twice")
	}
	if x.buf == nil {
		x.buf = make([]byte, 0, AsyncBufSize)
		x.spare = make([]byte, 0, AsyncBufSize)
	}
	x.active = true
	x.done = make(chan struct{})
	go x.consume(x.done)
}

// DisableAsync switches back to synchronous mode and returns once the
// consumer has written everything queued before the call. It is a no-op in
// synchronous mode.
func (x *Exchange) DisableAsync() {
	x.scopeMu.Lock()
	defer x.scopeMu.Unlock()

	x.mu.Lock()
	if !x.active {
		x.mu.Unlock()
		return
	}
	x.active = false
	done := x.done
	x.consumerReady.Signal()
	// Blocked producers re-check the mode and fall back to direct writes.
	x.producerRoom.Broadcast()
	x.mu.Unlock()

	<-done
}

// Async reports whether the Exchange is in async mode.
func (x *Exchange) Async() bool {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.active
}

// Flush blocks until the async buffer is observed empty and the consumer
// finished its current write. It returns at once in synchronous mode. An
// entry delivered after Flush returns is not covered.
func (x *Exchange) Flush() {
	x.mu.Lock()
	for x.active && (len(x.buf) > 0 || x.writing) {
		x.producerRoom.Wait()
	}
	x.mu.Unlock()
}

// consume is the consumer loop. It runs on its own goroutine for the
// lifetime of one async scope and closes done after its final pass.
func (x *Exchange) consume(done chan struct{}) {
	defer close(done)

	for {
		x.mu.Lock()
		for len(x.buf) == 0 && x.active {
			x.consumerReady.Wait()
		}
		active := x.active
		var local []byte
		if len(x.buf) > 0 {
			local, x.buf, x.spare = x.buf, x.spare[:0], nil
			x.writing = true
		}
		x.producerRoom.Broadcast()
		x.mu.Unlock()

		if len(local) > 0 {
			x.writeSink(local)
			x.stats.IncrementBatches()

			x.mu.Lock()
			x.spare = local[:0]
			x.writing = false
			x.producerRoom.Broadcast()
			x.mu.Unlock()
		}

		if !active {
			return
		}
	}
}

// writeSink writes p under writeMu, swallowing errors and panics. Sync
// writes are issued with mu held, which ties their order to mu acquisition.
func (x *Exchange) writeSink(p []byte) {
	x.writeMu.Lock()
	defer x.writeMu.Unlock()
	defer func() {
		if r := recover(); r != nil {
			x.stats.IncrementWriteFailures()
		}
	}()

	if _, err := x.w.Write(p); err != nil {
		x.stats.IncrementWriteFailures()
	}
}

// Stats returns a snapshot of the current statistics
func (x *Exchange) Stats() Snapshot {
	return x.stats.GetSnapshot()
}

// Close ends async mode, draining the buffer, and closes the sink when it
// implements io.Closer and is neither os.Stdout nor os.Stderr. Subsequent
// calls return nil.
func (x *Exchange) Close() error {
	var err error
	x.closeOnce.Do(func() {
		x.DisableAsync()
		if c, ok := x.w.(io.Closer); ok && x.w != os.Stdout && x.w != os.Stderr {
			x.writeMu.Lock()
			err = c.Close()
			x.writeMu.Unlock()
		}
	})
	return err
}
