package section

import (
	"fmt"

	"github.com/vbuslog/blf/endian"
	"github.com/vbuslog/blf/errs"
	"github.com/vbuslog/blf/format"
)

// ExtHeader is the per-version inner-object extended header that follows
// the base object header (spec.md §3/§6). Both v1 and v2 layouts carry a
// flags word and a 64-bit timestamp; v2 additionally carries an original
// timestamp and reserved tail, neither of which this decoder interprets.
type ExtHeader struct {
	Version   uint16
	Flags     uint32
	Timestamp uint64
}

// Size returns the on-wire size of the extended header for h.Version.
func (h ExtHeader) Size() int {
	if h.Version == 2 {
		return ExtHeaderV2Size
	}

	return ExtHeaderV1Size
}

// TimeNs converts h.Timestamp to nanoseconds per the TIME_TEN_MICS rule
// (spec.md §3).
func (h ExtHeader) TimeNs() int64 {
	return format.TimeNs(h.Flags, h.Timestamp)
}

// ParseExtHeader parses the extended header following a base object
// header whose HeaderVersion is version. Only versions 1 and 2 are
// defined; any other value is fatal (spec.md §4.3, §7 class 4).
func ParseExtHeader(data []byte, version uint16, engine endian.EndianEngine) (ExtHeader, error) {
	switch version {
	case 1:
		if len(data) < ExtHeaderV1Size {
			return ExtHeader{}, fmt.Errorf("%w: v1 extended header", errs.ErrTruncated)
		}

		return ExtHeader{
			Version:   1,
			Flags:     engine.Uint32(data[0:4]),
			Timestamp: engine.Uint64(data[8:16]),
		}, nil
	case 2:
		if len(data) < ExtHeaderV2Size {
			return ExtHeader{}, fmt.Errorf("%w: v2 extended header", errs.ErrTruncated)
		}

		return ExtHeader{
			Version:   2,
			Flags:     engine.Uint32(data[0:4]),
			Timestamp: engine.Uint64(data[8:16]),
		}, nil
	default:
		return ExtHeader{}, fmt.Errorf("%w: version %d", errs.ErrUnknownHeaderVersion, version)
	}
}

// Bytes serializes h into its on-wire size (ExtHeaderV1Size or
// ExtHeaderV2Size, per h.Version). Used by tests to build synthetic inner
// object fixtures; never exercised by the decode-only core.
func (h ExtHeader) Bytes(engine endian.EndianEngine) []byte {
	b := make([]byte, h.Size())
	engine.PutUint32(b[0:4], h.Flags)
	engine.PutUint64(b[8:16], h.Timestamp)

	return b
}
