package section

import (
	"fmt"

	"github.com/vbuslog/blf/endian"
	"github.com/vbuslog/blf/errs"
)

// FileHeader is the fixed-size record (spec.md §3) at offset 0 of a BLF
// file: magic, header size, administrative metadata, total object count,
// and the capture start/stop calendar timestamps.
type FileHeader struct {
	// HeaderSize is the file header's declared total size, including any
	// reserved tail bytes past FileHeaderFixedSize.
	HeaderSize uint32
	// AppID/AppVersion/ApiVersion are administrative metadata; not
	// otherwise interpreted by this decoder.
	AppID      uint32
	AppVersion uint32
	ApiVersion uint32
	// FileSize/UncompressedSize are administrative byte counters recorded
	// by the writer; not validated against the actual file contents.
	FileSize         uint64
	UncompressedSize uint64
	// ObjectCount is the total number of outer objects recorded in the
	// file.
	ObjectCount uint32
	// ObjectsRead is an administrative counter; not otherwise interpreted.
	ObjectsRead uint32
	// StartTime/StopTime are the capture's wall-clock bounds.
	StartTime SystemTime
	StopTime  SystemTime
}

// StartNs returns FileHeader.StartTime converted to epoch nanoseconds (0
// for an invalid tuple).
func (h FileHeader) StartNs() int64 { return h.StartTime.EpochNs() }

// StopNs returns FileHeader.StopTime converted to epoch nanoseconds (0 for
// an invalid tuple).
func (h FileHeader) StopNs() int64 { return h.StopTime.EpochNs() }

// ParseFileHeader parses the fixed portion of a file header from data,
// which must contain at least FileHeaderFixedSize bytes. The caller is
// responsible for then skipping HeaderSize-FileHeaderFixedSize additional
// reserved bytes before reading the first outer object (spec.md §4.1).
func ParseFileHeader(data []byte, engine endian.EndianEngine) (FileHeader, error) {
	if len(data) < 4 {
		return FileHeader{}, fmt.Errorf("%w: file header", errs.ErrTruncated)
	}
	if data[0] != FileMagic[0] || data[1] != FileMagic[1] || data[2] != FileMagic[2] || data[3] != FileMagic[3] {
		return FileHeader{}, errs.ErrBadFileMagic
	}
	if len(data) < FileHeaderFixedSize {
		return FileHeader{}, fmt.Errorf("%w: file header", errs.ErrTruncated)
	}

	h := FileHeader{
		HeaderSize:       engine.Uint32(data[4:8]),
		AppID:            engine.Uint32(data[8:12]),
		AppVersion:       engine.Uint32(data[12:16]),
		ApiVersion:       engine.Uint32(data[16:20]),
		FileSize:         engine.Uint64(data[20:28]),
		UncompressedSize: engine.Uint64(data[28:36]),
		ObjectCount:      engine.Uint32(data[36:40]),
		ObjectsRead:      engine.Uint32(data[40:44]),
		StartTime:        parseSystemTime(data[44:60]),
		StopTime:         parseSystemTime(data[60:76]),
	}

	return h, nil
}

// Bytes serializes h back into FileHeaderFixedSize bytes, with no reserved
// tail (HeaderSize is written as FileHeaderFixedSize). Used by tests to
// build synthetic file fixtures; never exercised by the decode-only core.
func (h FileHeader) Bytes(engine endian.EndianEngine) []byte {
	b := make([]byte, FileHeaderFixedSize)
	copy(b[0:4], FileMagic[:])
	engine.PutUint32(b[4:8], FileHeaderFixedSize)
	engine.PutUint32(b[8:12], h.AppID)
	engine.PutUint32(b[12:16], h.AppVersion)
	engine.PutUint32(b[16:20], h.ApiVersion)
	engine.PutUint64(b[20:28], h.FileSize)
	engine.PutUint64(b[28:36], h.UncompressedSize)
	engine.PutUint32(b[36:40], h.ObjectCount)
	engine.PutUint32(b[40:44], h.ObjectsRead)
	putSystemTime(b[44:60], h.StartTime, engine)
	putSystemTime(b[60:76], h.StopTime, engine)

	return b
}
