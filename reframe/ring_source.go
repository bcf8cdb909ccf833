package reframe

import (
	"io"

	"github.com/vbuslog/blf/ringbuf"
)

// RingSource adapts a ringbuf.Buffer's pull-based Read(size) into the
// Peek/Discard shape Reframer expects, so the same framing state machine
// that runs over a single decompressed container also runs over the
// concatenated stream the streaming pipeline drains from the ring buffer.
type RingSource struct {
	buf      *ringbuf.Buffer
	leftover []byte
}

// NewRingSource wraps buf as a Source.
func NewRingSource(buf *ringbuf.Buffer) *RingSource {
	return &RingSource{buf: buf}
}

// Peek returns up to n bytes without consuming them, pulling more from
// the ring buffer as needed. It blocks until n bytes are available or the
// buffer is closed and drained, in which case it returns whatever
// leftover bytes remain (possibly none) alongside io.EOF.
func (s *RingSource) Peek(n int) ([]byte, error) {
	for len(s.leftover) < n {
		chunk, err := s.buf.Read(n - len(s.leftover))
		s.leftover = append(s.leftover, chunk...)
		if err != nil {
			if len(s.leftover) == 0 {
				return nil, io.EOF
			}

			return s.leftover, io.EOF
		}
	}

	return s.leftover[:n], nil
}

// Discard advances past n bytes, which must already have been returned
// by a prior Peek.
func (s *RingSource) Discard(n int) error {
	s.leftover = s.leftover[n:]
	return nil
}
