//go:build linux

// Package socketcan encodes and decodes Linux SocketCAN `struct can_frame` (16 bytes). Reading and writing of sockets
// is left to the caller.
package socketcan

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/go-can-types/cantypes"
	"golang.org/x/sys/unix"
)

// FrameSize is size of `struct can_frame` in bytes
const FrameSize = 16

var (
	// ErrRemoteFrame is returned when decoded frame is remote transmission request
	ErrRemoteFrame = errors.New("read CAN remote transmission request frame")
	// ErrErrorFrame is returned when decoded frame is error message frame
	ErrErrorFrame = errors.New("read CAN error message frame")
)

// Frame is classic CAN frame as SocketCAN sees it.
type Frame struct {
	// ID is 11bit or 29bit identifier without EFF/RTR/ERR flags
	ID       uint32
	Extended bool
	Length   uint8 // 0-8
	Data     cantypes.Data
}

// FromMessage creates extended frame from J1939 message. Only first `length` bytes of payload are sent.
func FromMessage(m cantypes.Message[cantypes.Data], length uint8) Frame {
	return Frame{
		ID:       m.ID().IntoBits(),
		Extended: true,
		Length:   length,
		Data:     m.PDU(),
	}
}

// J1939 returns frame as J1939 message. Frame must be extended frame.
func (f Frame) J1939() (cantypes.Message[cantypes.Data], error) {
	if !f.Extended {
		return cantypes.Message[cantypes.Data]{}, errors.New("J1939 message can only be created from extended frame")
	}
	return cantypes.TryMessageFromBits[cantypes.Data](f.ID, f.Data.IntoBits())
}

// CAN2A returns identifier of standard frame.
func (f Frame) CAN2A() (cantypes.CAN2AID, error) {
	if f.Extended {
		return 0, errors.New("CAN2.0A identifier can only be created from standard frame")
	}
	if f.ID&^unix.CAN_SFF_MASK != 0 {
		return 0, fmt.Errorf("standard frame id 0x%X does not fit into 11 bits: %w", f.ID, cantypes.ErrOutOfRange)
	}
	return cantypes.CAN2A.TryFromBits(uint16(f.ID))
}

// Marshal encodes frame into `struct can_frame` bytes.
func Marshal(f Frame) ([]byte, error) {
	if f.Length > 8 {
		return nil, fmt.Errorf("frame data length can be up to 8 bytes, got %v", f.Length)
	}
	// Can frame structure: https://github.com/linux-can/can-utils/blob/affdc1b79973c7497bb8607603c24734e11a91aa/include/linux/can.h#L107
	canFrame := make([]byte, FrameSize)

	// bits 0-28 is CAN ID
	// bit 29 is ERR error message flag (0 = data frame, 1 = error message)
	// bit 30 is RTR remote transmission request (1 = rtr frame)
	// bit 31 is EFF extended frame format / IDE identifier extension flag (0 = standard 11 bit, 1 = extended 29 bit)
	canID := f.ID
	if f.Extended {
		if canID&^unix.CAN_EFF_MASK != 0 {
			return nil, fmt.Errorf("extended frame id 0x%X does not fit into 29 bits: %w", canID, cantypes.ErrOutOfRange)
		}
		canID |= unix.CAN_EFF_FLAG
	} else if canID&^unix.CAN_SFF_MASK != 0 {
		return nil, fmt.Errorf("standard frame id 0x%X does not fit into 11 bits: %w", canID, cantypes.ErrOutOfRange)
	}
	binary.LittleEndian.PutUint32(canFrame[0:4], canID) // FIXME: for big-endian arch (mips64, ppc64) we should use big-endian

	// bits 32-40 data length
	canFrame[4] = f.Length
	b := f.Data.Bytes()
	copy(canFrame[8:], b[:f.Length])

	return canFrame, nil
}

// Unmarshal decodes `struct can_frame` bytes. Remote transmission request and error frames are returned as errors.
func Unmarshal(canFrame []byte) (Frame, error) {
	if len(canFrame) < FrameSize {
		return Frame{}, fmt.Errorf("can frame must be %v bytes, got %v", FrameSize, len(canFrame))
	}
	canID := binary.LittleEndian.Uint32(canFrame[0:4])
	if canID&unix.CAN_RTR_FLAG != 0 {
		return Frame{}, ErrRemoteFrame
	} else if canID&unix.CAN_ERR_FLAG != 0 {
		return Frame{}, ErrErrorFrame
	}
	length := canFrame[4]
	if length > 8 {
		return Frame{}, fmt.Errorf("can frame data length can be up to 8 bytes, got %v", length)
	}

	f := Frame{
		Extended: canID&unix.CAN_EFF_FLAG != 0,
		Length:   length,
	}
	if f.Extended {
		f.ID = canID & unix.CAN_EFF_MASK
	} else {
		f.ID = canID & unix.CAN_SFF_MASK
	}
	data, err := cantypes.DataFromBytes(canFrame[8 : 8+length])
	if err != nil {
		return Frame{}, err
	}
	f.Data = data

	return f, nil
}
