package section

import (
	"fmt"

	"github.com/vbuslog/blf/endian"
	"github.com/vbuslog/blf/errs"
	"github.com/vbuslog/blf/format"
)

// BaseObjectHeader is the 16-byte header shared by every object in a BLF
// file, both outer (container) and inner (frame) objects (spec.md §3).
type BaseObjectHeader struct {
	// HeaderSize is the size, in bytes, of this base header plus whatever
	// extended header follows it (ContainerHeaderSize for an outer object,
	// ExtHeaderV1Size/ExtHeaderV2Size for an inner object).
	HeaderSize uint16
	// HeaderVersion selects the inner-object extended header layout (1 or
	// 2); outer (LOG_CONTAINER) objects are header-version-agnostic.
	HeaderVersion uint16
	// ObjSize is the total object size in bytes, including this base
	// header.
	ObjSize uint32
	// ObjType identifies the object's payload kind.
	ObjType format.ObjectType
}

// ParseBaseObjectHeader parses a BaseObjectHeader from the first
// BaseHeaderSize bytes of data.
func ParseBaseObjectHeader(data []byte, engine endian.EndianEngine) (BaseObjectHeader, error) {
	if len(data) < BaseHeaderSize {
		return BaseObjectHeader{}, fmt.Errorf("%w: base object header", errs.ErrTruncated)
	}
	if data[0] != ObjectMagic[0] || data[1] != ObjectMagic[1] || data[2] != ObjectMagic[2] || data[3] != ObjectMagic[3] {
		return BaseObjectHeader{}, errs.ErrBadObjectMagic
	}

	h := BaseObjectHeader{
		HeaderSize:    engine.Uint16(data[4:6]),
		HeaderVersion: engine.Uint16(data[6:8]),
		ObjSize:       engine.Uint32(data[8:12]),
		ObjType:       format.ObjectType(engine.Uint32(data[12:16])),
	}

	return h, nil
}

// Bytes serializes h into BaseHeaderSize bytes. Used by tests to build
// synthetic object fixtures; never exercised by the decode-only core.
func (h BaseObjectHeader) Bytes(engine endian.EndianEngine) []byte {
	b := make([]byte, BaseHeaderSize)
	copy(b[0:4], ObjectMagic[:])
	engine.PutUint16(b[4:6], h.HeaderSize)
	engine.PutUint16(b[6:8], h.HeaderVersion)
	engine.PutUint32(b[8:12], h.ObjSize)
	engine.PutUint32(b[12:16], uint32(h.ObjType))

	return b
}
