package frame

import (
	"encoding/binary"
	"fmt"

	"github.com/vbuslog/blf/errs"
	"github.com/vbuslog/blf/format"
)

// Fixed struct sizes preceding the variable-length data region, for each
// CAN inner-object type (spec.md §4.4).
const (
	canStructSize = 8 // channel(2) + flags(1) + dlc(1) + can_id(4)

	// canFDStructSize is the CAN_FD_MESSAGE fixed struct: channel(2) +
	// flags(1) + dlc(1) + can_id(4) + frame_length(4) + arb_bit_count(1)
	// + fd_flags(1) + valid_data_bytes(1) + reserved1(1) + reserved2(4).
	// fd_flags and valid_data_bytes are each a single byte, not a
	// 4-byte field: reading them 4 bytes wide shifts every byte after
	// can_id and mis-decodes both.
	canFDStructSize = 20

	canFD64StructSize = 20 // channel(2) + dlc(1) + valid_data_bytes(1) + can_id(4) + flags(4) + crc(4) + dir(2) + reserved(2)
)

// DecodeCAN decodes a CAN_MESSAGE or CAN_MESSAGE2 payload. Data is always
// exactly 8 bytes (spec.md §8: "for all CAN classic frames, len(data) <= 8"),
// taken verbatim regardless of the dlc field.
func DecodeCAN(payload []byte) (CAN, error) {
	if len(payload) < canStructSize+8 {
		return CAN{}, fmt.Errorf("%w: CAN payload", errs.ErrTruncated)
	}

	flags := payload[2]
	c := CAN{
		Channel: binary.LittleEndian.Uint16(payload[0:2]),
		Dir:     flags & format.CANDirMask,
		Rtr:     flags&format.CANRtrMask != 0,
		Dlc:     payload[3],
		CanID:   binary.LittleEndian.Uint32(payload[4:8]),
		Data:    payload[canStructSize : canStructSize+8],
	}

	return c, nil
}

// DecodeCANFD decodes a CAN_FD_MESSAGE payload. Data is valid_data_bytes
// long, taken from immediately after the fixed struct.
func DecodeCANFD(payload []byte) (CAN, error) {
	if len(payload) < canFDStructSize {
		return CAN{}, fmt.Errorf("%w: CAN-FD payload", errs.ErrTruncated)
	}

	// payload[8:12] is frame_length, payload[12] is arb_bit_count: neither
	// is exposed on CAN today, so both are skipped rather than named.
	fdFlags := uint32(payload[13])
	validDataBytes := int(payload[14])
	if len(payload) < canFDStructSize+validDataBytes {
		return CAN{}, fmt.Errorf("%w: CAN-FD data", errs.ErrTruncated)
	}

	c := CAN{
		Channel: binary.LittleEndian.Uint16(payload[0:2]),
		Dir:     payload[2] & format.CANDirMask,
		Dlc:     payload[3],
		CanID:   binary.LittleEndian.Uint32(payload[4:8]),
		Fdf:     fdFlags&format.CANFDFdfMask != 0,
		Brs:     fdFlags&format.CANFDBrsMask != 0,
		Esi:     fdFlags&format.CANFDEsiMask != 0,
		Data:    payload[canFDStructSize : canFDStructSize+validDataBytes],
	}

	return c, nil
}

// DecodeCANFD64 decodes a CAN_FD_MESSAGE_64 payload. dir is an explicit
// field rather than derived from flags; the crc field is not read.
func DecodeCANFD64(payload []byte) (CAN, error) {
	if len(payload) < canFD64StructSize {
		return CAN{}, fmt.Errorf("%w: CAN-FD-64 payload", errs.ErrTruncated)
	}

	validDataBytes := int(payload[3])
	flags := binary.LittleEndian.Uint32(payload[8:12])
	if len(payload) < canFD64StructSize+validDataBytes {
		return CAN{}, fmt.Errorf("%w: CAN-FD-64 data", errs.ErrTruncated)
	}

	c := CAN{
		Channel: binary.LittleEndian.Uint16(payload[0:2]),
		Dlc:     payload[2],
		CanID:   binary.LittleEndian.Uint32(payload[4:8]),
		Fdf:     flags&format.CANFD64FdfMask != 0,
		Brs:     flags&format.CANFD64BrsMask != 0,
		Esi:     flags&format.CANFD64EsiMask != 0,
		Rtr:     flags&format.CANFD64RtrMask != 0,
		Dir:     uint8(binary.LittleEndian.Uint16(payload[16:18])),
		Data:    payload[canFD64StructSize : canFD64StructSize+validDataBytes],
	}

	return c, nil
}
