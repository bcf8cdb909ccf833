package reframe

// Source is the minimal byte-lookahead interface a Reframer reads
// through: peek without consuming, then discard. source.Source already
// satisfies this; Reframer is written against this narrower interface so
// it can also run over adapters that have nothing to do with package
// source, such as the ring-buffer-backed streaming adapter RingSource in
// this package.
type Source interface {
	Peek(n int) ([]byte, error)
	Discard(n int) error
}

// SliceSource is a Source over a single in-memory byte slice: the
// decompressed payload of one log container. It is the byte source for
// the non-streaming decode path, where containers are decompressed and
// reframed one at a time; an inner object whose bytes run past the end of
// one container has its unconsumed tail (see Tail) prepended to the next
// container's payload by the caller, so straddling objects still decode
// correctly.
type SliceSource struct {
	data []byte
	pos  int
}

// NewSliceSource wraps data, a single container's decompressed payload,
// as a Source.
func NewSliceSource(data []byte) *SliceSource {
	return &SliceSource{data: data}
}

// Peek returns up to n bytes starting at the cursor and never returns an
// error. A short result (len(data) < n) means the container's payload ends
// first: the reframer reports io.EOF when it is empty between objects and
// errs.ErrTruncated when an object runs past the end, and the caller then
// carries Tail into the next container.
func (s *SliceSource) Peek(n int) ([]byte, error) {
	end := s.pos + n
	if end > len(s.data) {
		end = len(s.data)
	}

	return s.data[s.pos:end], nil
}

// Discard advances the cursor by n bytes.
func (s *SliceSource) Discard(n int) error {
	s.pos += n
	return nil
}

// Remaining reports how many unconsumed bytes are left in the container.
func (s *SliceSource) Remaining() int {
	return len(s.data) - s.pos
}

// Tail returns the unconsumed suffix of data. A caller that fails to read
// a complete inner object out of this container uses Tail to carry those
// bytes forward into the next container's SliceSource.
func (s *SliceSource) Tail() []byte {
	return s.data[s.pos:]
}
