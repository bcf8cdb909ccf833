package source

import (
	"errors"
	"io"
)

// initialPeekBuf is the starting capacity of Stream's internal lookahead
// buffer. It grows on demand to whatever a single Peek call requires, so a
// large container payload (well over 128KiB is common) never gets clipped
// the way bufio.Reader.Peek would clip it against a fixed buffer size.
const initialPeekBuf = 4 * 1024

// Stream is a SequentialSource backed by an io.Reader. Unlike
// bufio.Reader.Peek, which returns at most its fixed internal buffer size
// and ErrBufferFull beyond that, Stream.Peek always reads as many bytes as
// requested (short only at a genuine EOF), matching how the original
// reader pulls an object's declared size directly off the file.
type Stream struct {
	r      io.Reader
	closer io.Closer
	buf    []byte // unconsumed, already-read bytes; buf[0] is the cursor
}

// NewStream wraps r as a SequentialSource. If r also implements
// io.Closer, Close forwards to it.
func NewStream(r io.Reader) *Stream {
	closer, _ := r.(io.Closer)

	return &Stream{
		r:      r,
		closer: closer,
		buf:    make([]byte, 0, initialPeekBuf),
	}
}

// Peek returns up to n bytes without consuming them, reading more from the
// underlying io.Reader as needed regardless of how large n is. It returns
// fewer than n bytes together with io.EOF if the stream ends first; a
// zero-length, non-nil-error result means the stream is exhausted.
func (s *Stream) Peek(n int) ([]byte, error) {
	if len(s.buf) >= n {
		return s.buf[:n], nil
	}

	if cap(s.buf) < n {
		grown := make([]byte, len(s.buf), n)
		copy(grown, s.buf)
		s.buf = grown
	}

	have := len(s.buf)
	s.buf = s.buf[:n]
	read, err := io.ReadFull(s.r, s.buf[have:])
	s.buf = s.buf[:have+read]

	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return s.buf, io.EOF
		}

		return s.buf, err
	}

	return s.buf, nil
}

// Discard advances the stream by exactly n bytes, which must already have
// been returned by a prior Peek.
func (s *Stream) Discard(n int) error {
	s.buf = s.buf[:copy(s.buf, s.buf[n:])]
	return nil
}

// Close closes the underlying reader if it implements io.Closer.
func (s *Stream) Close() error {
	if s.closer == nil {
		return nil
	}

	return s.closer.Close()
}
