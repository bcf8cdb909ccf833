package source

import (
	"io"

	"golang.org/x/exp/mmap"
)

// Mmap is a RandomAccessSource backed by a memory-mapped file, following
// the same mmap.ReaderAt + manual cursor pattern go-car's CARv2 reader
// uses for its section reads.
type Mmap struct {
	r      *mmap.ReaderAt
	offset int64
	buf    []byte
}

// OpenMmap memory-maps the file at path for random-access reading.
func OpenMmap(path string) (*Mmap, error) {
	r, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}

	return &Mmap{r: r}, nil
}

// Peek returns up to n bytes starting at the current offset, without
// advancing it. It returns fewer than n bytes together with io.EOF if the
// file ends first.
func (m *Mmap) Peek(n int) ([]byte, error) {
	if cap(m.buf) < n {
		m.buf = make([]byte, n)
	}
	buf := m.buf[:n]

	read, err := m.r.ReadAt(buf, m.offset)
	if err != nil && err != io.EOF {
		return buf[:read], err
	}
	if read < n {
		return buf[:read], io.EOF
	}

	return buf, nil
}

// Discard advances the offset by n bytes, which must already have been
// returned by a prior Peek.
func (m *Mmap) Discard(n int) error {
	m.offset += int64(n)
	return nil
}

// SeekTo repositions the cursor to an absolute file offset.
func (m *Mmap) SeekTo(offset int64) error {
	if offset < 0 || offset > int64(m.r.Len()) {
		return io.ErrUnexpectedEOF
	}

	m.offset = offset

	return nil
}

// Size returns the total size of the mapped file.
func (m *Mmap) Size() int64 {
	return int64(m.r.Len())
}

// Close unmaps the file.
func (m *Mmap) Close() error {
	return m.r.Close()
}
