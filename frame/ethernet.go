package frame

import (
	"encoding/binary"
	"fmt"

	"github.com/vbuslog/blf/errs"
	"github.com/vbuslog/blf/format"
)

// Fixed struct sizes preceding the variable-length data region.
const (
	ethStructSize   = 24 // mac_sa(6) + channel(2) + mac_da(6) + dir(2) + eth_type(2) + vlan_tpid(2) + vlan_tci(2) + frame_length(2)
	ethExStructSize = 18 // flags(4) + channel(2) + hw_channel(2) + checksum(2) + dir(2) + frame_length(2) + frame_handle(4)

	// legacyVlanIDMask is the Ethernet-classic decoder's original 6-bit
	// vlan_id mask (spec.md §9 Open Question: almost certainly a
	// source-level bug, preserved as an explicit opt-in).
	legacyVlanIDMask = 0x3F
	// vlanIDMask is the correct 12-bit vlan_id mask, used by default in
	// both decoders.
	vlanIDMask = 0xFFF
)

// decodeConfig carries options shared by the Ethernet decoders.
type decodeConfig struct {
	vlanIDMask uint16
}

// Option configures an Ethernet frame decode.
type Option func(*decodeConfig)

// WithLegacyVlanMask reproduces the original 6-bit vlan_id mask instead of
// the corrected 12-bit mask. See spec.md §9 Open Questions: the deviation
// is preserved on purpose, never applied silently.
func WithLegacyVlanMask() Option {
	return func(c *decodeConfig) { c.vlanIDMask = legacyVlanIDMask }
}

func newDecodeConfig(opts []Option) decodeConfig {
	c := decodeConfig{vlanIDMask: vlanIDMask}
	for _, opt := range opts {
		opt(&c)
	}

	return c
}

// DecodeEthernet decodes an ETHERNET_FRAME payload. hw_channel is always
// -1 (only ETHERNET_FRAME_EX carries it).
func DecodeEthernet(payload []byte, opts ...Option) (Ethernet, error) {
	if len(payload) < ethStructSize {
		return Ethernet{}, fmt.Errorf("%w: Ethernet payload", errs.ErrTruncated)
	}
	cfg := newDecodeConfig(opts)

	frameLength := int(binary.LittleEndian.Uint16(payload[22:24]))
	if len(payload) < ethStructSize+frameLength {
		return Ethernet{}, fmt.Errorf("%w: Ethernet data", errs.ErrTruncated)
	}

	vlanTci := binary.LittleEndian.Uint16(payload[20:22])
	e := Ethernet{
		Channel:   binary.LittleEndian.Uint16(payload[6:8]),
		HwChannel: -1,
		Dir:       binary.LittleEndian.Uint16(payload[14:16]),
		EthType:   binary.LittleEndian.Uint16(payload[16:18]),
		VlanTpid:  int32(binary.LittleEndian.Uint16(payload[18:20])),
		VlanPri:   int32((vlanTci >> 12) & 0x03),
		VlanID:    int32(vlanTci & cfg.vlanIDMask),
		Data:      payload[ethStructSize : ethStructSize+frameLength],
	}
	copy(e.MacSa[:], payload[0:6])
	copy(e.MacDa[:], payload[8:14])

	return e, nil
}

// DecodeEthernetEx decodes an ETHERNET_FRAME_EX payload. A frame_length of
// 14 or less is malformed (too short to even hold an untagged Ethernet
// header) and is fatal, per spec.md §4.4.
func DecodeEthernetEx(payload []byte, opts ...Option) (Ethernet, error) {
	if len(payload) < ethExStructSize {
		return Ethernet{}, fmt.Errorf("%w: Ethernet-Ex payload", errs.ErrTruncated)
	}
	cfg := newDecodeConfig(opts)

	flags := binary.LittleEndian.Uint32(payload[0:4])
	frameLength := int(binary.LittleEndian.Uint16(payload[12:14]))
	if frameLength <= 14 {
		return Ethernet{}, fmt.Errorf("%w: Ethernet-Ex frame_length %d", errs.ErrMalformedInnerObject, frameLength)
	}
	if len(payload) < ethExStructSize+frameLength {
		return Ethernet{}, fmt.Errorf("%w: Ethernet-Ex data", errs.ErrTruncated)
	}
	data := payload[ethExStructSize : ethExStructSize+frameLength]

	e := Ethernet{
		Channel: binary.LittleEndian.Uint16(payload[4:6]),
		Dir:     binary.LittleEndian.Uint16(payload[10:12]),
	}
	if flags&format.ValidHwChannelMask != 0 {
		e.HwChannel = int32(binary.LittleEndian.Uint16(payload[6:8]))
	} else {
		e.HwChannel = -1
	}
	copy(e.MacDa[:], data[0:6])
	copy(e.MacSa[:], data[6:12])

	vlanTpid := binary.LittleEndian.Uint16(data[12:14])
	if frameLength > 18 && format.IsVlanTpid(vlanTpid) {
		vlanTci := binary.LittleEndian.Uint16(data[14:16])
		e.VlanTpid = int32(vlanTpid)
		e.EthType = binary.LittleEndian.Uint16(data[16:18])
		e.VlanPri = int32((vlanTci >> 12) & 0x03)
		e.VlanID = int32(vlanTci & cfg.vlanIDMask)
		e.Data = data[18:]
	} else {
		e.EthType = vlanTpid
		e.VlanTpid = -1
		e.VlanPri = -1
		e.VlanID = -1
		e.Data = data[14:]
	}

	return e, nil
}
