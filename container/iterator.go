// Package container implements the outer log-container framing loop:
// read a base object header, validate it names a LOG_CONTAINER, read its
// compression sub-header, read and decompress its payload, and skip the
// 4-byte outer alignment pad (spec.md §4.2).
package container

import (
	"fmt"
	"io"

	"github.com/vbuslog/blf/compress"
	"github.com/vbuslog/blf/endian"
	"github.com/vbuslog/blf/errs"
	"github.com/vbuslog/blf/format"
	"github.com/vbuslog/blf/internal/pool"
	"github.com/vbuslog/blf/section"
	"github.com/vbuslog/blf/source"
)

// RawContainer is one log container's still-compressed payload, along
// with enough of its sub-header to decompress it later. Separating the
// (necessarily sequential) read of raw bytes off the byte source from
// the (parallelizable) decompression step is what lets a pipeline with
// multiple producers decompress several containers concurrently while
// still reading the single underlying source in order (SPEC_FULL.md
// §4.6).
type RawContainer struct {
	CompressionMethod format.CompressionMethod
	SizeHint          uint32
	Payload           []byte
}

// Iterator walks the sequence of log containers in a BLF file, yielding
// each one's decompressed payload (a contiguous run of inner objects).
type Iterator struct {
	src    source.Source
	engine endian.EndianEngine

	// ringCapacity bounds how large a single decompressed container may
	// be; zero means unbounded (the non-streaming path). The streaming
	// pipeline sets this to the ring buffer's capacity, per spec.md §7
	// class 3b (ErrContainerTooLarge).
	ringCapacity int
}

// New creates an Iterator reading containers from src.
func New(src source.Source) *Iterator {
	return &Iterator{src: src, engine: endian.GetLittleEndianEngine()}
}

// WithRingCapacity bounds the decompressed size an Iterator will accept,
// matching the ring buffer a pipeline drains it into.
func (it *Iterator) WithRingCapacity(capacity int) *Iterator {
	it.ringCapacity = capacity
	return it
}

// Next reads and decompresses the next log container. It returns io.EOF
// once the source is cleanly exhausted between containers (a zero-byte
// read where a base object header was expected).
func (it *Iterator) Next() ([]byte, error) {
	raw, err := it.NextRaw()
	if err != nil {
		return nil, err
	}

	// Next's result is aliased by the caller's reframer for the rest of
	// that container's lifetime (the non-streaming decode path), so the
	// buffer can't be handed back to the pool here; only the streaming
	// pipeline, which copies the bytes into its ring buffer immediately,
	// calls Decompress directly and recycles via the release func.
	payload, _, err := Decompress(raw, it.ringCapacity)
	return payload, err
}

// NextRaw reads one log container's base header and sub-header, copies
// out its still-compressed payload, and skips the outer alignment pad —
// everything that must happen in source order — without decompressing.
// Call Decompress on the result, which may happen concurrently with the
// next call to NextRaw.
func (it *Iterator) NextRaw() (RawContainer, error) {
	header, err := it.readBaseHeader()
	if err != nil {
		return RawContainer{}, err
	}
	if header.ObjType != format.LogContainer {
		return RawContainer{}, fmt.Errorf("%w: %s", errs.ErrUnexpectedObjectType, header.ObjType)
	}

	sub, err := it.readSubHeader()
	if err != nil {
		return RawContainer{}, err
	}

	payloadSize := int(header.ObjSize) - section.BaseHeaderSize - section.ContainerHeaderSize
	if payloadSize < 0 {
		return RawContainer{}, fmt.Errorf("%w: obj_size %d", errs.ErrContainerTooSmall, header.ObjSize)
	}

	peeked, err := it.src.Peek(payloadSize)
	if err != nil || len(peeked) < payloadSize {
		return RawContainer{}, fmt.Errorf("%w: container payload", errs.ErrTruncated)
	}
	// Copy out: the peeked bytes alias the source's internal buffer and
	// must survive past the next read, which Decompress may not see until
	// another producer has already advanced the source.
	payload := make([]byte, payloadSize)
	copy(payload, peeked)

	if err := it.src.Discard(payloadSize); err != nil {
		return RawContainer{}, err
	}

	if pad := section.AlignPad(header.ObjSize); pad > 0 {
		if err := it.skip(int(pad)); err != nil {
			return RawContainer{}, err
		}
	}

	return RawContainer{
		CompressionMethod: sub.CompressionMethod,
		SizeHint:          sub.UncompressedSizeHint,
		Payload:           payload,
	}, nil
}

// Decompress inflates a RawContainer's payload per its declared
// compression method. ringCapacity, when nonzero, rejects a container
// whose declared uncompressed size hint exceeds it (spec.md §7 class 3b);
// pass 0 for the non-streaming, unbounded path.
//
// The returned release func returns any pooled buffer backing the result
// to the container buffer pool; call it once the caller is done with (or
// has copied out of) the decompressed bytes. It is always safe to call,
// even after an error, and is a no-op for a codec that doesn't pool (e.g.
// NoOpCodec, whose result aliases the already-owned RawContainer.Payload).
func Decompress(raw RawContainer, ringCapacity int) ([]byte, func(), error) {
	noop := func() {}

	if ringCapacity > 0 && int(raw.SizeHint) > ringCapacity {
		return nil, noop, fmt.Errorf("%w: %d > %d", errs.ErrContainerTooLarge, raw.SizeHint, ringCapacity)
	}

	codec, err := compress.CreateCodec(raw.CompressionMethod)
	if err != nil {
		return nil, noop, err
	}

	if pooled, ok := codec.(compress.PooledDecompressor); ok {
		bb, err := pooled.DecompressPooled(raw.Payload, int(raw.SizeHint))
		if err != nil {
			return nil, noop, fmt.Errorf("%w: %v", errs.ErrDecompression, err)
		}

		return bb.Bytes(), func() { pool.PutContainerBuffer(bb) }, nil
	}

	out, err := codec.Decompress(raw.Payload, int(raw.SizeHint))
	if err != nil {
		return nil, noop, fmt.Errorf("%w: %v", errs.ErrDecompression, err)
	}

	return out, noop, nil
}

// readBaseHeader peeks and discards the base object header, treating a
// clean zero-byte read as io.EOF (end of file between containers).
func (it *Iterator) readBaseHeader() (section.BaseObjectHeader, error) {
	data, err := it.src.Peek(section.BaseHeaderSize)
	if err != nil {
		if len(data) == 0 {
			return section.BaseObjectHeader{}, io.EOF
		}

		return section.BaseObjectHeader{}, fmt.Errorf("%w: base object header", errs.ErrTruncated)
	}

	header, err := section.ParseBaseObjectHeader(data, it.engine)
	if err != nil {
		return section.BaseObjectHeader{}, err
	}

	if err := it.src.Discard(section.BaseHeaderSize); err != nil {
		return section.BaseObjectHeader{}, err
	}

	return header, nil
}

func (it *Iterator) readSubHeader() (section.ContainerHeader, error) {
	data, err := it.src.Peek(section.ContainerHeaderSize)
	if err != nil || len(data) < section.ContainerHeaderSize {
		return section.ContainerHeader{}, fmt.Errorf("%w: container sub-header", errs.ErrTruncated)
	}

	sub, err := section.ParseContainerHeader(data, it.engine)
	if err != nil {
		return section.ContainerHeader{}, err
	}

	if err := it.src.Discard(section.ContainerHeaderSize); err != nil {
		return section.ContainerHeader{}, err
	}

	return sub, nil
}

func (it *Iterator) skip(n int) error {
	data, err := it.src.Peek(n)
	if err != nil || len(data) < n {
		return fmt.Errorf("%w: outer alignment pad", errs.ErrTruncated)
	}

	return it.src.Discard(n)
}
