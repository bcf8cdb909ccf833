// Package reframe implements the inner-object framing loop: given a byte
// source positioned at the start of a run of inner objects (one log
// container's decompressed payload, or the concatenated stream drained
// from the ring buffer), it yields one frame.Envelope per object,
// decoding CAN and Ethernet payloads along the way (spec.md §4.3/§4.4).
package reframe

import (
	"errors"
	"fmt"
	"io"

	"github.com/vbuslog/blf/endian"
	"github.com/vbuslog/blf/errs"
	"github.com/vbuslog/blf/format"
	"github.com/vbuslog/blf/frame"
	"github.com/vbuslog/blf/section"
)

var defaultEngine = endian.GetLittleEndianEngine()

// Reframer walks the inner objects in a byte Source, one at a time.
type Reframer struct {
	src     Source
	ethOpts []frame.Option
	seen    uint32
}

// New creates a Reframer over src. ethOpts, if given, configure every
// Ethernet/Ethernet-Ex decode (e.g. frame.WithLegacyVlanMask).
func New(src Source, ethOpts ...frame.Option) *Reframer {
	return &Reframer{src: src, ethOpts: ethOpts}
}

// Next reads and decodes the next inner object. It returns io.EOF once
// the source is cleanly exhausted between objects (a zero-byte peek where
// a base object header was expected).
//
// Envelope.ObjectCount is a 1-based sequential count of objects this
// Reframer has yielded, not a wire field. Envelope.StartNs/StopNs are left
// zero; callers that want the file's capture bounds on every envelope
// (blf.FrameIterator does) fill them in from the file header.
func (r *Reframer) Next() (frame.Envelope, error) {
	base, err := r.readBaseHeader()
	if err != nil {
		return frame.Envelope{}, err
	}

	ext, err := r.readExtHeader(base.HeaderVersion)
	if err != nil {
		return frame.Envelope{}, err
	}

	headerSize := section.BaseHeaderSize + ext.Size()
	payloadSize := int(base.ObjSize) - headerSize
	if payloadSize < 0 {
		return frame.Envelope{}, fmt.Errorf("%w: inner object obj_size %d", errs.ErrContainerTooSmall, base.ObjSize)
	}

	payload, err := r.src.Peek(payloadSize)
	if err != nil || len(payload) < payloadSize {
		return frame.Envelope{}, fmt.Errorf("%w: inner object payload", errs.ErrTruncated)
	}
	if err := r.src.Discard(payloadSize); err != nil {
		return frame.Envelope{}, err
	}

	if !base.ObjType.NoAlignPadding() {
		if pad := int(section.AlignPad(base.ObjSize)); pad > 0 {
			if err := r.skip(pad); err != nil {
				return frame.Envelope{}, err
			}
		}
	}

	r.seen++
	env := frame.Envelope{
		ObjectCount: r.seen,
		TimeNs:      ext.TimeNs(),
		ObjType:     base.ObjType,
		Payload:     payload,
	}

	if err := r.decodeKnownTypes(base.ObjType, payload, &env); err != nil {
		return frame.Envelope{}, err
	}

	return env, nil
}

func (r *Reframer) decodeKnownTypes(objType format.ObjectType, payload []byte, env *frame.Envelope) error {
	var (
		can frame.CAN
		eth frame.Ethernet
		err error
	)

	switch objType {
	case format.CANMessage, format.CANMessage2:
		can, err = frame.DecodeCAN(payload)
	case format.CANFDMessage:
		can, err = frame.DecodeCANFD(payload)
	case format.CANFDMessage64:
		can, err = frame.DecodeCANFD64(payload)
	case format.EthernetFrame:
		eth, err = frame.DecodeEthernet(payload, r.ethOpts...)
	case format.EthernetFrameEx:
		eth, err = frame.DecodeEthernetEx(payload, r.ethOpts...)
	default:
		return nil
	}
	if err != nil {
		return err
	}

	switch objType {
	case format.CANMessage, format.CANMessage2, format.CANFDMessage, format.CANFDMessage64:
		env.CAN = &can
	case format.EthernetFrame, format.EthernetFrameEx:
		env.Ethernet = &eth
	}

	return nil
}

func (r *Reframer) readBaseHeader() (section.BaseObjectHeader, error) {
	data, err := r.src.Peek(section.BaseHeaderSize)
	if err != nil && !errors.Is(err, io.EOF) {
		return section.BaseObjectHeader{}, err
	}
	if len(data) == 0 {
		return section.BaseObjectHeader{}, io.EOF
	}
	if len(data) < section.BaseHeaderSize {
		return section.BaseObjectHeader{}, fmt.Errorf("%w: inner object header", errs.ErrTruncated)
	}

	base, err := section.ParseBaseObjectHeader(data, defaultEngine)
	if err != nil {
		return section.BaseObjectHeader{}, err
	}

	// Nothing is consumed until the whole object, alignment pad included,
	// is available, so a short read leaves the object intact in the source.
	need := int(base.ObjSize)
	if !base.ObjType.NoAlignPadding() {
		need += int(section.AlignPad(base.ObjSize))
	}
	if need > section.BaseHeaderSize {
		if obj, err := r.src.Peek(need); err != nil || len(obj) < need {
			return section.BaseObjectHeader{}, fmt.Errorf("%w: inner object", errs.ErrTruncated)
		}
	}

	if err := r.src.Discard(section.BaseHeaderSize); err != nil {
		return section.BaseObjectHeader{}, err
	}

	return base, nil
}

func (r *Reframer) readExtHeader(version uint16) (section.ExtHeader, error) {
	size := section.ExtHeaderV1Size
	if version == 2 {
		size = section.ExtHeaderV2Size
	}

	data, err := r.src.Peek(size)
	if err != nil || len(data) < size {
		return section.ExtHeader{}, fmt.Errorf("%w: extended header", errs.ErrTruncated)
	}

	ext, err := section.ParseExtHeader(data, version, defaultEngine)
	if err != nil {
		return section.ExtHeader{}, err
	}

	if err := r.src.Discard(size); err != nil {
		return section.ExtHeader{}, err
	}

	return ext, nil
}

func (r *Reframer) skip(n int) error {
	data, err := r.src.Peek(n)
	if err != nil || len(data) < n {
		return fmt.Errorf("%w: inner alignment pad", errs.ErrTruncated)
	}

	return r.src.Discard(n)
}
