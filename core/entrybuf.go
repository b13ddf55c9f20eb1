package core

import (
	"errors"
	"sync"
	"unicode/utf8"
)

// MaxEntrySize is the capacity of an EntryBuf, newline included.
const MaxEntrySize = 1 << 16

// ErrTruncated reports that not all of the appended text fit in an EntryBuf.
var ErrTruncated = errors.New("log entry truncated")

// EntryBuf is a fixed-capacity buffer for rendering exactly one log entry.
//
// It starts in the Writing phase: appends accumulate until MaxEntrySize-1
// bytes are used, the final byte being reserved for the newline written by
// Terminate. Terminate moves the buffer to the Reading phase and returns the
// Entry view; the EntryBuf accepts no more text after that.
//
// The zero value is an empty buffer in the Writing phase. An EntryBuf must
// not be copied after first use and must not be shared between goroutines.
type EntryBuf struct {
	n          int
	terminated bool
	truncated  bool
	buf        [MaxEntrySize]byte
}

// Entry is the Reading phase of an EntryBuf: a finished, newline-terminated
// log entry. It aliases the EntryBuf's storage and is only valid until the
// EntryBuf is reset or returned to the pool.
type Entry struct {
	b []byte
}

var entryBufPool = sync.Pool{
	New: func() interface{} {
		return new(EntryBuf)
	},
}

// GetEntryBuf retrieves an empty EntryBuf from the pool.
func GetEntryBuf() *EntryBuf {
	b := entryBufPool.Get().(*EntryBuf)
	b.Reset()
	return b
}

// PutEntryBuf returns an EntryBuf to the pool. Any Entry obtained from it
// must no longer be used.
func PutEntryBuf(b *EntryBuf) {
	if b == nil {
		return
	}
	entryBufPool.Put(b)
}

// Reset empties the buffer and puts it back in the Writing phase.
func (b *EntryBuf) Reset() {
	b.n = 0
	b.terminated = false
	b.truncated = false
}

// Len returns the number of bytes written so far.
func (b *EntryBuf) Len() int {
	return b.n
}

// Available returns how many more bytes of text fit before truncation.
func (b *EntryBuf) Available() int {
	if b.terminated {
		return 0
	}
	return MaxEntrySize - 1 - b.n
}

// Truncated reports whether any append so far came up short.
func (b *EntryBuf) Truncated() bool {
	return b.truncated
}

// Err returns ErrTruncated if any append so far came up short, nil
// otherwise. Formatters can append unconditionally and return Err at the end.
func (b *EntryBuf) Err() error {
	if b.truncated {
		return ErrTruncated
	}
	return nil
}

// Append appends as much of s as fits without splitting a UTF-8 sequence.
// It returns ErrTruncated unless all of s was appended.
func (b *EntryBuf) Append(s string) error {
	_, err := appendText(b, s)
	return err
}

// WriteString implements io.StringWriter with the semantics of Append.
func (b *EntryBuf) WriteString(s string) (int, error) {
	return appendText(b, s)
}

// Write implements io.Writer with the semantics of Append, so an EntryBuf
// can be the destination of fmt.Fprintf. A short write reports ErrTruncated.
func (b *EntryBuf) Write(p []byte) (int, error) {
	return appendText(b, p)
}

// WriteByte appends a single byte. A byte that is not ASCII cannot stand on
// its own as text and is written as U+FFFD.
func (b *EntryBuf) WriteByte(c byte) error {
	if c >= utf8.RuneSelf {
		p := [1]byte{c}
		_, err := appendText(b, p[:])
		return err
	}
	if b.terminated || b.n >= MaxEntrySize-1 {
		b.truncated = true
		return ErrTruncated
	}
	b.buf[b.n] = c
	b.n++
	return nil
}

// appendText copies whole runes of s while they fit. Invalid UTF-8 is
// replaced by U+FFFD so the buffer always holds valid text. The count
// returned is the number of bytes of s consumed.
func appendText[T string | []byte](b *EntryBuf, s T) (int, error) {
	if b.terminated {
		return 0, ErrTruncated
	}
	room := MaxEntrySize - 1 - b.n
	i := 0
	for i < len(s) {
		if s[i] < utf8.RuneSelf {
			if room == 0 {
				break
			}
			j := i + 1
			for j < len(s) && j-i < room && s[j] < utf8.RuneSelf {
				j++
			}
			b.n += copy(b.buf[b.n:], s[i:j])
			room -= j - i
			i = j
			continue
		}

		var p [utf8.UTFMax]byte
		r, size := utf8.DecodeRune(p[:copy(p[:], s[i:])])
		if r == utf8.RuneError && size == 1 {
			if room < len(replacement) {
				break
			}
			b.n += copy(b.buf[b.n:], replacement)
			room -= len(replacement)
			i++
			continue
		}
		if size > room {
			break
		}
		b.n += copy(b.buf[b.n:], p[:size])
		room -= size
		i += size
	}
	if i < len(s) {
		b.truncated = true
		return i, ErrTruncated
	}
	return i, nil
}

const replacement = string(utf8.RuneError)

// Terminate appends the newline into the reserved last byte and returns the
// finished Entry. Terminating a buffer twice is a programming error and
// panics.
func (b *EntryBuf) Terminate() Entry {
	if b.terminated {
		panic("core: EntryBuf terminated twice")
	}
	b.buf[b.n] = '\n'
	b.n++
	b.terminated = true
	return Entry{b: b.buf[:b.n:b.n]}
}

// Bytes returns the entry including its trailing newline.
func (e Entry) Bytes() []byte {
	return e.b
}

// String returns a copy of the entry as a string.
func (e Entry) String() string {
	return string(e.b)
}

// Len returns the entry length in bytes, newline included.
func (e Entry) Len() int {
	return len(e.b)
}
