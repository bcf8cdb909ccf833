// Package errs collects the sentinel errors returned by the BLF parsing and
// decode pipeline, so callers can distinguish failure classes with
// errors.Is regardless of the offset/diagnostic context wrapped around them.
package errs

import "errors"

// File and object framing errors (spec.md §7, classes 1-6).
var (
	// ErrBadFileMagic is returned when a file does not start with "LOGG".
	ErrBadFileMagic = errors.New("blf: bad file header magic")
	// ErrBadObjectMagic is returned when a base object header does not
	// start with "LOBJ".
	ErrBadObjectMagic = errors.New("blf: bad object header magic")
	// ErrTruncated is returned when fewer bytes were available than a
	// header or payload declared.
	ErrTruncated = errors.New("blf: truncated read")
	// ErrUnexpectedObjectType is returned when an outer object's obj_type
	// is not LOG_CONTAINER.
	ErrUnexpectedObjectType = errors.New("blf: unexpected outer object type")
	// ErrUnsupportedCompression is returned when a container's compression
	// method is neither NO_COMPRESSION nor ZLIB_DEFLATE.
	ErrUnsupportedCompression = errors.New("blf: unsupported compression method")
	// ErrUnknownHeaderVersion is returned when an inner object's header
	// version is neither 1 nor 2.
	ErrUnknownHeaderVersion = errors.New("blf: unknown inner header version")
	// ErrContainerTooSmall is returned when a container's declared obj_size
	// is smaller than its fixed headers.
	ErrContainerTooSmall = errors.New("blf: container obj_size smaller than its headers")
	// ErrContainerTooLarge is returned when a container's uncompressed size
	// hint exceeds the ring buffer capacity (pipeline mode only).
	ErrContainerTooLarge = errors.New("blf: container exceeds ring buffer capacity")
	// ErrMalformedInnerObject is returned by a frame decoder that finds its
	// payload internally inconsistent (e.g. Ethernet-Ex frame_length <= 14).
	ErrMalformedInnerObject = errors.New("blf: malformed inner object")
	// ErrDecompression is returned when the DEFLATE layer fails to inflate
	// a container's payload.
	ErrDecompression = errors.New("blf: decompression failed")
)

// Ring buffer / pipeline errors.
var (
	// ErrPayloadTooLarge is returned by ringbuf.Buffer.Write when a payload
	// is larger than the buffer's total capacity.
	ErrPayloadTooLarge = errors.New("blf: payload larger than ring buffer capacity")
	// ErrRingBufferClosed is returned by ringbuf.Buffer.Write when called
	// after Close.
	ErrRingBufferClosed = errors.New("blf: write to closed ring buffer")
	// ErrAborted is returned when a pipeline's context is canceled or its
	// Abort method is called before completion.
	ErrAborted = errors.New("blf: pipeline aborted")
)
