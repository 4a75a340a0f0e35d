// Package scratch is an allocation-free text builder for per-frame HUD
// strings. A Buffer is reset once per frame and appended to with typed
// methods; View returns a zero-copy string valid until the next append
// or Reset.
package scratch

import (
	"strconv"
	"unicode/utf8"
	"unsafe"
)

type Buffer struct {
	b []byte
}

// NewBuffer preallocates capacity bytes. Exceeding it reallocates; size
// for the worst frame at load time.
func NewBuffer(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = 1024
	}
	return &Buffer{b: make([]byte, 0, capacity)}
}

// Reset clears the length without freeing memory. Call once per frame.
func (s *Buffer) Reset() { s.b = s.b[:0] }

func (s *Buffer) Len() int { return len(s.b) }
func (s *Buffer) Cap() int { return cap(s.b) }

// Mark bookmarks the current position; ViewFrom slices from it.
func (s *Buffer) Mark() int { return len(s.b) }

// ViewFrom is a zero-copy string of everything appended since mark.
// It is invalidated by the next append or Reset.
func (s *Buffer) ViewFrom(mark int) string {
	b := s.b[mark:]
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(&b[0], len(b))
}

// View is a zero-copy string of the whole buffer.
func (s *Buffer) View() string { return s.ViewFrom(0) }

// String is a safe copy of the whole buffer.
func (s *Buffer) String() string { return string(s.b) }

// --- chainable typed appends ---

func (s *Buffer) S(v string) *Buffer {
	s.b = append(s.b, v...)
	return s
}

func (s *Buffer) C(c byte) *Buffer {
	s.b = append(s.b, c)
	return s
}

func (s *Buffer) R(r rune) *Buffer {
	s.b = utf8.AppendRune(s.b, r)
	return s
}

func (s *Buffer) I(v int) *Buffer {
	s.b = strconv.AppendInt(s.b, int64(v), 10)
	return s
}

func (s *Buffer) U(v uint64) *Buffer {
	s.b = strconv.AppendUint(s.b, v, 10)
	return s
}

// F appends a float with prec digits after the decimal point.
func (s *Buffer) F(v float64, prec int) *Buffer {
	s.b = strconv.AppendFloat(s.b, v, 'f', prec, 64)
	return s
}

func (s *Buffer) Bool(v bool) *Buffer {
	s.b = strconv.AppendBool(s.b, v)
	return s
}

// Pad appends n copies of c.
func (s *Buffer) Pad(n int, c byte) *Buffer {
	for i := 0; i < n; i++ {
		s.b = append(s.b, c)
	}
	return s
}
