// Package blf provides a reader for Vector BLF binary vehicle-bus log
// files: file/container/object framing, streaming decompression and
// reframing, and CAN/CAN-FD/Ethernet frame decoding.
//
// For a single-producer, in-process decode, use Open (over a sequential
// source, such as a plain file) or OpenRandomAccess (over an
// mmap-backed source). For a concurrent, ring-buffer-backed decode with
// multiple producers decompressing containers in parallel, use
// NewPipeline.
//
//	f, _ := os.Open("trace.blf")
//	meta, frames, _ := blf.Open(source.NewStream(f))
//	for {
//	    env, err := frames.Next()
//	    if errors.Is(err, io.EOF) {
//	        break
//	    }
//	    handle(env)
//	}
package blf

import (
	"errors"
	"fmt"
	"io"

	"github.com/vbuslog/blf/container"
	"github.com/vbuslog/blf/endian"
	"github.com/vbuslog/blf/errs"
	"github.com/vbuslog/blf/frame"
	"github.com/vbuslog/blf/pipeline"
	"github.com/vbuslog/blf/reframe"
	"github.com/vbuslog/blf/section"
	"github.com/vbuslog/blf/source"
)

// FileMeta is a BLF file's header metadata, read once up front.
type FileMeta struct {
	ObjectCount uint32
	StartNs     int64
	StopNs      int64
}

// FrameIterator yields one frame.Envelope per inner object, across every
// log container in the file, in file order. It fills Envelope.StartNs
// and Envelope.StopNs from the file header on every envelope it returns,
// so callers never need to hold onto FileMeta separately.
type FrameIterator struct {
	containers *container.Iterator
	meta       FileMeta
	cur        *reframe.Reframer
	curSrc     *reframe.SliceSource
	ethOpts    []frame.Option
}

// Next decodes the next inner object. It returns io.EOF once every
// container in the file has been read and reframed.
//
// An inner object whose bytes run past the end of its container's payload
// is not truncated at that boundary: the unconsumed tail of the current
// container is carried forward and prepended to the next container's
// payload before reframing resumes, so a straddling object decodes
// identically to one that lies wholly inside a single container (spec.md
// §3 invariant 5, SPEC_FULL.md §8).
func (fi *FrameIterator) Next() (frame.Envelope, error) {
	for {
		if fi.cur != nil {
			env, err := fi.cur.Next()
			if err == nil {
				env.StartNs = fi.meta.StartNs
				env.StopNs = fi.meta.StopNs

				return env, nil
			}
			if errors.Is(err, io.EOF) {
				fi.cur = nil
			} else {
				tail := append([]byte(nil), fi.curSrc.Tail()...)
				fi.cur = nil

				payload, cerr := fi.containers.Next()
				if cerr != nil {
					if errors.Is(cerr, io.EOF) {
						// No more containers to complete the straddling
						// object with: the original short-read error is
						// the accurate one to surface.
						return frame.Envelope{}, err
					}

					return frame.Envelope{}, cerr
				}

				fi.openReframer(append(tail, payload...))

				continue
			}
		}

		payload, err := fi.containers.Next()
		if err != nil {
			return frame.Envelope{}, err
		}

		fi.openReframer(payload)
	}
}

func (fi *FrameIterator) openReframer(payload []byte) {
	fi.curSrc = reframe.NewSliceSource(payload)
	fi.cur = reframe.New(fi.curSrc, fi.ethOpts...)
}

// Open reads a BLF file header from src and returns its metadata together
// with a FrameIterator over every inner object, without a ring buffer:
// containers are decompressed and reframed one at a time as the caller
// pulls frames. This is the right choice when there is exactly one
// producer and no concurrency is wanted.
func Open(src source.SequentialSource, ethOpts ...frame.Option) (FileMeta, *FrameIterator, error) {
	meta, tail, err := readFileHeader(src)
	if err != nil {
		return FileMeta{}, nil, err
	}

	return meta, &FrameIterator{
		containers: container.New(tail),
		meta:       meta,
		ethOpts:    ethOpts,
	}, nil
}

// OpenRandomAccess is Open over an mmap-backed RandomAccessSource.
func OpenRandomAccess(src source.RandomAccessSource, ethOpts ...frame.Option) (FileMeta, *FrameIterator, error) {
	return Open(src, ethOpts...)
}

// NewPipeline reads the BLF file header from src and returns a
// pipeline.Pipeline over the log containers that follow it. Envelopes
// passed to sink have StartNs and StopNs left zero.
func NewPipeline(src source.SequentialSource, sink func(frame.Envelope) error, opts ...pipeline.Option) (*pipeline.Pipeline, error) {
	if _, _, err := readFileHeader(src); err != nil {
		return nil, err
	}

	return pipeline.New(src, sink, opts...)
}

// readFileHeader parses the file header from src and discards it (plus
// any reserved tail up to its declared HeaderSize), leaving src
// positioned at the first outer object.
func readFileHeader(src source.Source) (FileMeta, source.Source, error) {
	engine := endian.GetLittleEndianEngine()

	data, err := src.Peek(section.FileHeaderFixedSize)
	if err != nil || len(data) < section.FileHeaderFixedSize {
		return FileMeta{}, nil, fmt.Errorf("%w: file header", errs.ErrTruncated)
	}

	header, err := section.ParseFileHeader(data, engine)
	if err != nil {
		return FileMeta{}, nil, err
	}

	skip := int(header.HeaderSize)
	if skip < section.FileHeaderFixedSize {
		skip = section.FileHeaderFixedSize
	}
	if skip > section.FileHeaderFixedSize {
		full, err := src.Peek(skip)
		if err != nil || len(full) < skip {
			return FileMeta{}, nil, fmt.Errorf("%w: file header", errs.ErrTruncated)
		}
	}
	if err := src.Discard(skip); err != nil {
		return FileMeta{}, nil, err
	}

	meta := FileMeta{
		ObjectCount: header.ObjectCount,
		StartNs:     header.StartNs(),
		StopNs:      header.StopNs(),
	}

	return meta, src, nil
}
