// Package format defines the wire-level enums used throughout a BLF file:
// outer object types, container compression methods, and the timestamp
// resolution flag carried by every inner object's extended header.
package format

// ObjectType identifies the payload carried by a base object header, for
// both outer (container) and inner (frame) objects.
type ObjectType uint32

// Outer and inner object types defined by the BLF wire format. Only the
// types decoded by this module are named explicitly; anything else is
// surfaced to callers as ObjectType but never decoded (frame.Envelope.CAN
// and frame.Envelope.Ethernet are both nil for it).
const (
	UnknownObject ObjectType = 0

	// LogContainer is the only valid outer object type.
	LogContainer ObjectType = 10

	CANMessage    ObjectType = 1
	CANMessage2   ObjectType = 86
	CANFDMessage  ObjectType = 101
	CANFDMessage64 ObjectType = 117

	EthernetFrame   ObjectType = 71
	EthernetFrameEx ObjectType = 123
)

// String returns the BLF wire name of the type (e.g. "CAN_FD_MESSAGE_64");
// "UNKNOWN" for anything else, including UnknownObject.
func (t ObjectType) String() string {
	switch t {
	case LogContainer:
		return "LOG_CONTAINER"
	case CANMessage:
		return "CAN_MESSAGE"
	case CANMessage2:
		return "CAN_MESSAGE2"
	case CANFDMessage:
		return "CAN_FD_MESSAGE"
	case CANFDMessage64:
		return "CAN_FD_MESSAGE_64"
	case EthernetFrame:
		return "ETHERNET_FRAME"
	case EthernetFrameEx:
		return "ETHERNET_FRAME_EX"
	default:
		return "UNKNOWN"
	}
}

// NoAlignPadding reports whether inner objects of this type advance by
// exactly obj_size instead of obj_size rounded up to a 4-byte boundary.
func (t ObjectType) NoAlignPadding() bool {
	return t == CANFDMessage64 || t == EthernetFrameEx
}

// CompressionMethod identifies the compression used by a log container's
// payload.
type CompressionMethod uint32

const (
	NoCompression CompressionMethod = 0
	ZlibDeflate   CompressionMethod = 2
)

// String returns a short human-readable name; "UNKNOWN" for anything
// else.
func (c CompressionMethod) String() string {
	switch c {
	case NoCompression:
		return "NO_COMPRESSION"
	case ZlibDeflate:
		return "ZLIB_DEFLATE"
	default:
		return "UNKNOWN"
	}
}

// TimeFlag identifies the resolution of an inner object's extended-header
// timestamp field.
type TimeFlag uint32

const (
	// TimeOneNans: the timestamp field is already nanoseconds.
	TimeOneNans TimeFlag = 0x01
	// TimeTenMics: the timestamp field is tens of microseconds, requiring a
	// x10_000 scale-up to nanoseconds.
	TimeTenMics TimeFlag = 0x02
)

// TimeNs converts a raw extended-header timestamp to nanoseconds, applying
// the TimeTenMics scale rule; any other flag value (including TimeOneNans
// and unspecified) is treated as already-nanoseconds.
func TimeNs(flags uint32, timestamp uint64) int64 {
	if TimeFlag(flags) == TimeTenMics {
		return int64(timestamp) * 10_000
	}

	return int64(timestamp)
}
