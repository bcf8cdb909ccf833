// Package frame decodes BLF inner-object payloads into typed CAN and
// Ethernet frame records (spec.md §3/§4.4).
package frame

import "github.com/vbuslog/blf/format"

// CAN is a decoded CAN classic, CAN-FD, or CAN-FD-64 frame.
//
// Data aliases the decompressed container buffer (or ring-buffer region)
// it was decoded from; per spec.md §3 invariant 6, it remains valid only
// for the lifetime of that owning buffer. Consumers that retain a frame
// past the next read must copy Data.
type CAN struct {
	Channel uint16
	Dir     uint8
	CanID   uint32
	Dlc     uint8
	Rtr     bool
	Fdf     bool
	Brs     bool
	Esi     bool
	Data    []byte
}

// Ethernet is a decoded Ethernet or Ethernet-Ex frame.
//
// Data aliases the decompressed container buffer (or ring-buffer region)
// it was decoded from; see CAN.Data for the same lifetime caveat.
type Ethernet struct {
	Channel   uint16
	HwChannel int32 // -1 if invalid (ETHERNET_FRAME never sets it)
	Dir       uint16
	MacDa     [6]byte
	MacSa     [6]byte
	VlanTpid  int32 // -1 if untagged
	VlanPri   int32 // -1 if untagged
	VlanID    int32 // -1 if untagged
	EthType   uint16
	Data      []byte
}

// Envelope is the base-object record yielded by the reframer for every
// inner object (spec.md §3). CAN is set for the CAN and CAN-FD object
// types and Ethernet for the two Ethernet types; both are nil for any
// other ObjType, whose bytes are available only as Payload.
type Envelope struct {
	ObjectCount uint32
	StartNs     int64
	StopNs      int64
	TimeNs      int64
	ObjType     format.ObjectType
	Payload     []byte
	CAN         *CAN
	Ethernet    *Ethernet
}
