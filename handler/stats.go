package handler

import (
	"sync/atomic"
)

// Stats tracks exchange statistics
type Stats struct {
	// EntriesTotal counts entries accepted by Deliver
	EntriesTotal uint64
	// BytesTotal counts bytes accepted by Deliver
	BytesTotal uint64
	// BatchesTotal counts coalesced writes issued by the async consumer
	BatchesTotal uint64
	// BlockedTotal counts times a producer waited for buffer room
	BlockedTotal uint64
	// WriteFailures counts sink writes that returned an error or panicked
	WriteFailures uint64
}

// NewStats creates a new Stats instance
func NewStats() *Stats {
	return &Stats{}
}

// IncrementDelivered records one accepted entry of n bytes
func (s *Stats) IncrementDelivered(n int) {
	atomic.AddUint64(&s.EntriesTotal, 1)
	atomic.AddUint64(&s.BytesTotal, uint64(n))
}

// IncrementBatches atomically increments the batch counter
func (s *Stats) IncrementBatches() {
	atomic.AddUint64(&s.BatchesTotal, 1)
}

// IncrementBlocked atomically increments the blocked counter
func (s *Stats) IncrementBlocked() {
	atomic.AddUint64(&s.BlockedTotal, 1)
}

// IncrementWriteFailures atomically increments the write failure counter
func (s *Stats) IncrementWriteFailures() {
	atomic.AddUint64(&s.WriteFailures, 1)
}

// Reset resets all counters to zero
func (s *Stats) Reset() {
	atomic.StoreUint64(&s.EntriesTotal, 0)
	atomic.StoreUint64(&s.BytesTotal, 0)
	atomic.StoreUint64(&s.BatchesTotal, 0)
	atomic.StoreUint64(&s.BlockedTotal, 0)
	atomic.StoreUint64(&s.WriteFailures, 0)
}

// Snapshot is a point-in-time copy of Stats
type Snapshot struct {
	EntriesTotal  uint64
	BytesTotal    uint64
	BatchesTotal  uint64
	BlockedTotal  uint64
	WriteFailures uint64
}

// GetSnapshot returns a snapshot of current statistics
func (s *Stats) GetSnapshot() Snapshot {
	return Snapshot{
		EntriesTotal:  atomic.LoadUint64(&s.EntriesTotal),
		BytesTotal:    atomic.LoadUint64(&s.BytesTotal),
		BatchesTotal:  atomic.LoadUint64(&s.BatchesTotal),
		BlockedTotal:  atomic.LoadUint64(&s.BlockedTotal),
		WriteFailures: atomic.LoadUint64(&s.WriteFailures),
	}
}
