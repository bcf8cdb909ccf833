// Package ringbuf implements the bounded, wrap-around byte queue that
// connects the container producer(s) to the reframer consumer (spec.md
// §4.5/§4.6/§5).
//
// Buffer is safe for concurrent use by any number of producer goroutines
// and exactly one consumer goroutine. Producers commit their payloads in
// strictly ascending sequence-number order, regardless of how many
// producers there are or how their decompression work overlaps in time;
// this lets the pipeline driver decompress containers in parallel while
// still handing the reframer a byte stream in file order.
package ringbuf

import (
	"fmt"
	"io"
	"sync"

	"github.com/vbuslog/blf/errs"
	"github.com/vbuslog/blf/internal/pool"
)

// Buffer is a fixed-capacity circular byte queue gated by a monotonic
// producer sequence number.
type Buffer struct {
	mu       sync.Mutex
	notEmpty *sync.Cond
	notFull  *sync.Cond

	data []byte // backing array, len(data) == capacity
	p    int    // read cursor
	q    int    // write cursor
	size int    // unread byte count, in [0, capacity]

	nextSeq uint64 // idx_p: sequence number the next committing writer must present
	closed  bool
}

// New creates a Buffer with the given fixed capacity. Per spec.md §5, a
// typical capacity is ~10MiB; capacity must be at least as large as the
// largest single payload any producer will ever Write.
func New(capacity int) *Buffer {
	buf := pool.NewByteBuffer(capacity)
	buf.ExtendOrGrow(capacity)

	b := &Buffer{data: buf.Bytes()}
	b.notEmpty = sync.NewCond(&b.mu)
	b.notFull = sync.NewCond(&b.mu)

	return b
}

// Cap returns the buffer's fixed capacity.
func (b *Buffer) Cap() int { return len(b.data) }

// Write enqueues payload under sequence number seq. Writers across any
// number of goroutines commit in ascending seq order: a call with seq
// blocks until every seq' < seq has already committed, then copies
// payload into the ring (blocking further if free space is insufficient,
// splitting the copy across the wrap point as needed), then commits —
// only at that point does the buffer accept the next seq, so commits are
// never interleaved even though producers may decompress concurrently
// before calling Write.
//
// Write must not be called after Close.
func (b *Buffer) Write(seq uint64, payload []byte) error {
	if len(payload) > len(b.data) {
		return fmt.Errorf("%w: %d > %d", errs.ErrPayloadTooLarge, len(payload), len(b.data))
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for b.nextSeq != seq {
		if b.closed {
			return errs.ErrRingBufferClosed
		}
		b.notFull.Wait()
	}
	if b.closed {
		return errs.ErrRingBufferClosed
	}

	for b.Cap()-b.size < len(payload) {
		b.notFull.Wait()
		if b.closed {
			return errs.ErrRingBufferClosed
		}
	}

	b.copyIn(payload)
	b.size += len(payload)
	b.nextSeq = seq + 1

	b.notEmpty.Broadcast()
	b.notFull.Broadcast() // wake the next seq's writer, now waiting on nextSeq

	return nil
}

// copyIn writes payload starting at the write cursor, splitting across the
// buffer's wrap point if necessary, and advances q.
func (b *Buffer) copyIn(payload []byte) {
	n := copy(b.data[b.q:], payload)
	if n < len(payload) {
		copy(b.data, payload[n:])
	}
	b.q = (b.q + len(payload)) % len(b.data)
}

// Read returns a view of size unread bytes, blocking until that much data
// is available or the buffer is closed. Once the buffer is closed with
// fewer than size (but more than zero) bytes unread, Read returns those
// remaining bytes and a nil error.
//
// When the unread region does not straddle the wrap point, the returned
// slice aliases the buffer directly; it remains valid only until the next
// Read call, which may advance the read cursor past it and let a producer
// overwrite it (spec.md §3 invariant 6). When the region does straddle the
// wrap point, Read returns a freshly materialized copy so callers can
// treat the result as a flat, contiguous slice either way.
//
// Read returns io.EOF once the unread region is empty and the buffer has
// been closed.
func (b *Buffer) Read(size int) ([]byte, error) {
	if size == 0 {
		return nil, nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for b.size < size {
		if b.closed {
			if b.size == 0 {
				return nil, io.EOF
			}
			// Not enough bytes to satisfy size and no more will ever
			// arrive: surface whatever truncation detail the caller wants
			// via a short read.
			size = b.size
			break
		}
		b.notEmpty.Wait()
	}

	out := b.viewOut(size)
	b.p = (b.p + size) % len(b.data)
	b.size -= size

	b.notFull.Broadcast()

	return out, nil
}

// viewOut returns size bytes starting at the read cursor, as a zero-copy
// slice when contiguous or a materialized copy when the region wraps.
func (b *Buffer) viewOut(size int) []byte {
	end := b.p + size
	if end <= len(b.data) {
		return b.data[b.p:end]
	}

	out := make([]byte, size)
	n := copy(out, b.data[b.p:])
	copy(out[n:], b.data[:end-len(b.data)])

	return out
}

// Close marks the buffer closed and wakes every waiter. A reader that
// subsequently observes an empty buffer returns io.EOF; a writer that
// observes Close mid-wait returns errs.ErrRingBufferClosed.
func (b *Buffer) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true
	b.notEmpty.Broadcast()
	b.notFull.Broadcast()
}
