// Package source provides the byte-source abstraction the container
// iterator and reframer read through: a sequential stream over an
// io.Reader with its own growable lookahead buffer for the pipeline path, and a random-access, mmap-backed source for the
// in-process path (spec.md §2 "Byte source", SPEC_FULL.md §4.2).
package source

// Source is the minimal read interface the container iterator and the
// reframer need: look ahead without consuming (Peek), then consume
// (Discard). Both SequentialSource and RandomAccessSource satisfy it, so
// the same framing code in package container and package reframe runs
// over either.
type Source interface {
	// Peek returns the next n bytes without advancing the source. It
	// returns fewer than n bytes (with a non-nil error) if the source is
	// exhausted first; callers must check len(data) before using data,
	// since a short peek can still return a partial, usable prefix right
	// at EOF.
	Peek(n int) ([]byte, error)
	// Discard advances the source by n bytes, which must already have
	// been returned by a prior Peek of at least that length.
	Discard(n int) error
	// Close releases any resources the source holds open.
	Close() error
}

// SequentialSource is a forward-only Source, backed by a buffered
// io.Reader. It is the byte source for the streaming pipeline, where the
// producer goroutine(s) read containers off disk (or any io.Reader) once,
// in order.
type SequentialSource interface {
	Source
}

// RandomAccessSource is a Source that can additionally seek to an
// arbitrary absolute file offset. It is the byte source for the
// in-process, non-streaming decode path (blf.OpenRandomAccess), backed by
// golang.org/x/exp/mmap so the whole file need not be read into memory
// up front.
type RandomAccessSource interface {
	Source
	// SeekTo repositions the source so the next Peek/Discard pair reads
	// starting at the given absolute file offset.
	SeekTo(offset int64) error
	// Size returns the total size of the underlying file, in bytes.
	Size() int64
}
