package benchmark

import (
	"sync/atomic"
)

// countingSink discards writes while counting them, so benchmarks can check
// that nothing was lost.
type countingSink struct {
	writes atomic.Uint64
	bytes  atomic.Uint64
}

func (s *countingSink) Write(p []byte) (int, error) {
	s.writes.Add(1)
	s.bytes.Add(uint64(len(p)))
	return len(p), nil
}

func (s *countingSink) Bytes() uint64 {
	return s.bytes.Load()
}

func (s *countingSink) Writes() uint64 {
	return s.writes.Load()
}
