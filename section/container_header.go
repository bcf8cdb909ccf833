package section

import (
	"fmt"

	"github.com/vbuslog/blf/endian"
	"github.com/vbuslog/blf/errs"
	"github.com/vbuslog/blf/format"
)

// ContainerHeader is the sub-header following a LOG_CONTAINER object's base
// header: the compression method and an upper-bound hint on the
// decompressed payload size (spec.md §3/§6).
type ContainerHeader struct {
	CompressionMethod    format.CompressionMethod
	UncompressedSizeHint uint32
}

// ParseContainerHeader parses a ContainerHeader from the first
// ContainerHeaderSize bytes of data.
func ParseContainerHeader(data []byte, engine endian.EndianEngine) (ContainerHeader, error) {
	if len(data) < ContainerHeaderSize {
		return ContainerHeader{}, fmt.Errorf("%w: container header", errs.ErrTruncated)
	}

	return ContainerHeader{
		CompressionMethod:    format.CompressionMethod(engine.Uint32(data[0:4])),
		UncompressedSizeHint: engine.Uint32(data[4:8]),
	}, nil
}

// Bytes serializes h into ContainerHeaderSize bytes. Used by tests to
// build synthetic container fixtures; never exercised by the decode-only
// core.
func (h ContainerHeader) Bytes(engine endian.EndianEngine) []byte {
	b := make([]byte, ContainerHeaderSize)
	engine.PutUint32(b[0:4], uint32(h.CompressionMethod))
	engine.PutUint32(b[4:8], h.UncompressedSizeHint)

	return b
}
