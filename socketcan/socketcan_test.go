//go:build linux

package socketcan

import (
	"errors"
	"testing"

	"github.com/go-can-types/cantypes"
	test_test "github.com/go-can-types/cantypes/test"
	"github.com/stretchr/testify/assert"
)

func TestMarshal(t *testing.T) {
	var testCases = []struct {
		name        string
		when        Frame
		expect      []byte
		expectError string
	}{
		{
			name: "ok, extended frame 18FEF200",
			when: Frame{
				ID:       0x18FEF200,
				Extended: true,
				Length:   8,
				Data:     0x0102030405060708,
			},
			expect: []byte{
				0x00, 0xF2, 0xFE, 0x98, // id + EFF flag, little-endian
				0x08, 0x00, 0x00, 0x00, // length + padding
				0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08,
			},
		},
		{
			name: "ok, standard frame with 3 bytes",
			when: Frame{
				ID:     0x7DF,
				Length: 3,
				Data:   0x02010D0000000000,
			},
			expect: []byte{
				0xDF, 0x07, 0x00, 0x00,
				0x03, 0x00, 0x00, 0x00,
				0x02, 0x01, 0x0D, 0x00, 0x00, 0x00, 0x00, 0x00,
			},
		},
		{
			name: "nok, standard frame id does not fit 11 bits",
			when: Frame{
				ID:     0x800,
				Length: 0,
			},
			expectError: "standard frame id 0x800 does not fit into 11 bits: value out of range",
		},
		{
			name: "nok, extended frame id does not fit 29 bits",
			when: Frame{
				ID:       0x20000000,
				Extended: true,
			},
			expectError: "extended frame id 0x20000000 does not fit into 29 bits: value out of range",
		},
		{
			name: "nok, too long",
			when: Frame{
				ID:     0x1,
				Length: 9,
			},
			expectError: "frame data length can be up to 8 bytes, got 9",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := Marshal(tc.when)

			assert.Equal(t, tc.expect, result)
			if tc.expectError != "" {
				assert.EqualError(t, err, tc.expectError)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUnmarshal(t *testing.T) {
	var testCases = []struct {
		name        string
		given       []byte
		expect      Frame
		expectError string
	}{
		{
			name: "ok, extended frame",
			given: []byte{
				0x0B, 0x29, 0x00, 0x8C,
				0x08, 0x00, 0x00, 0x00,
				0xFF, 0xFF, 0x82, 0xDF, 0x1A, 0xFF, 0xFF, 0xFF,
			},
			expect: Frame{
				ID:       0x0C00290B,
				Extended: true,
				Length:   8,
				Data:     0xFFFF82DF1AFFFFFF,
			},
		},
		{
			name: "ok, standard frame with 2 bytes, garbage after length is ignored",
			given: []byte{
				0x0F, 0x00, 0x00, 0x00,
				0x02, 0x00, 0x00, 0x00,
				0xAA, 0xBB, 0xCC, 0xDD, 0x00, 0x00, 0x00, 0x00,
			},
			expect: Frame{
				ID:     0x00F,
				Length: 2,
				Data:   0xAABB000000000000,
			},
		},
		{
			name: "nok, remote transmission request",
			given: []byte{
				0x0F, 0x00, 0x00, 0x40,
				0x00, 0x00, 0x00, 0x00,
				0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
			},
			expectError: "read CAN remote transmission request frame",
		},
		{
			name: "nok, error frame",
			given: []byte{
				0x0F, 0x00, 0x00, 0x20,
				0x00, 0x00, 0x00, 0x00,
				0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
			},
			expectError: "read CAN error message frame",
		},
		{
			name:        "nok, too short",
			given:       []byte{0x0F, 0x00, 0x00},
			expectError: "can frame must be 16 bytes, got 3",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := Unmarshal(tc.given)

			assert.Equal(t, tc.expect, result)
			if tc.expectError != "" {
				assert.EqualError(t, err, tc.expectError)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFrame_J1939(t *testing.T) {
	msg := cantypes.MessageFromHex[cantypes.Data]("18FEF200", "0102030405060708")

	b, err := Marshal(FromMessage(msg, 8))
	assert.NoError(t, err)

	frame, err := Unmarshal(b)
	assert.NoError(t, err)

	result, err := frame.J1939()
	assert.NoError(t, err)
	test_test.AssertMessage(t, msg, result)
	test_test.AssertHeader(t, cantypes.Header{PGN: 65266, Priority: 6, Source: 0, Destination: cantypes.AddressGlobal}, result)
}

func TestFrame_J1939_standardFrame(t *testing.T) {
	_, err := Frame{ID: 0x0F}.J1939()
	assert.EqualError(t, err, "J1939 message can only be created from extended frame")
}

func TestFrame_CAN2A(t *testing.T) {
	id, err := Frame{ID: 0x7FF}.CAN2A()
	assert.NoError(t, err)
	assert.Equal(t, cantypes.CAN2AID(0x7FF), id)

	_, err = Frame{ID: 0x1, Extended: true}.CAN2A()
	assert.Error(t, err)
}

func TestFrame_CAN2A_idOutOfRange(t *testing.T) {
	_, err := Frame{ID: 0x10005}.CAN2A()

	assert.EqualError(t, err, "standard frame id 0x10005 does not fit into 11 bits: value out of range")
	assert.True(t, errors.Is(err, cantypes.ErrOutOfRange))
}

func TestUnmarshal_RemoteFrameIsSentinel(t *testing.T) {
	_, err := Unmarshal([]byte{0, 0, 0, 0x40, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0})
	assert.True(t, errors.Is(err, ErrRemoteFrame))
}
