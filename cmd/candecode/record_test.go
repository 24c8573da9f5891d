package main

import (
	"encoding/json"
	"testing"

	"github.com/fatih/color"
	"github.com/go-can-types/cantypes"
	test_test "github.com/go-can-types/cantypes/test"
	"github.com/stretchr/testify/assert"
)

func TestDecodeIDHex(t *testing.T) {
	color.NoColor = true

	var testCases = []struct {
		name        string
		given       string
		expect      string
		expectError string
	}{
		{
			name:   "ok, broadcast",
			given:  "18FEF200",
			expect: `18FEF200 J1939 prio=6 pgn=65266 PDU2/Broadcast/SAE ge=242 src=0 "Primary Engine Controller | (CPC, ECM)"`,
		},
		{
			name:   "ok, point-to-point",
			given:  "0x0C00290B",
			expect: `0C00290B J1939 prio=3 pgn=41 PDU1/P2P/SAE dst=41 "Retarder, Exhaust, Engine #1" src=11 "Brakes | System Controller (ABS)"`,
		},
		{
			name:   "ok, proprietary",
			given:  "10ff2121",
			expect: `10FF2121 J1939 prio=4 pgn=65313 PDU2/Broadcast/Manufacturer ge=33 src=33 "Body Controller | (SSAM, SAM-CAB, BHM)"`,
		},
		{
			name:   "ok, 11bit",
			given:  "7ff",
			expect: `7FF CAN2.0A prio=7 reserved=true dp=true pf=63`,
		},
		{
			name:   "ok, 11bit widened by leading zero",
			given:  "00F",
			expect: `00F CAN2.0A prio=0 reserved=false dp=false pf=15`,
		},
		{
			name:        "nok, 29bit out of range",
			given:       "20000000",
			expectError: "extended identifier hex out of range, valid range is 0x0..0x1FFFFFFF, got 0x20000000: value out of range",
		},
		{
			name:        "nok, not hex",
			given:       "XYZ",
			expectError: "CAN2.0A identifier hex `XYZ` could not be parsed: invalid hexadecimal value",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec, err := decodeIDHex(tc.given)

			if tc.expectError != "" {
				assert.EqualError(t, err, tc.expectError)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expect, rec.text())
			assert.Equal(t, rec.ID, rec.hex())
		})
	}
}

func TestDecodeFrame_JSON(t *testing.T) {
	ts := test_test.UTCTime(1620000000)
	rec, err := decodeFrame(frame{
		time:     &ts,
		iface:    "can0",
		extended: true,
		id:       0x0C00290B,
		length:   2,
		data:     0x0102000000000000,
	})
	assert.NoError(t, err)

	b, err := json.Marshal(rec)
	assert.NoError(t, err)
	assert.JSONEq(t, `{
		"time": "2021-05-03T00:00:00Z",
		"interface": "can0",
		"id": "0C00290B",
		"protocol": "J1939",
		"extended": {"priority": 3, "reserved": false, "data_page": false, "pdu_format": 0, "pdu_specific": 41, "source_address": 11},
		"header": {"pgn": 0, "priority": 3, "source": 11, "destination": 41},
		"pgn": {
			"value": 41,
			"hex": "00000029",
			"format": "PDU1",
			"mode": "P2P",
			"assignment": "SAE",
			"destination_address": 41,
			"destination": "Retarder, Exhaust, Engine #1"
		},
		"source": "Brakes | System Controller (ABS)",
		"length": 2,
		"data": "0102"
	}`, string(b))
	assert.Equal(t, "0C00290B#0102", rec.hex())
}

func TestDecodeFrame_addressClaim(t *testing.T) {
	color.NoColor = true

	rec, err := decodeFrame(frame{
		extended: true,
		id:       0x18EEFF1C,
		length:   8,
		data:     0x87D63222198246C2,
	})
	assert.NoError(t, err)

	if assert.NotNil(t, rec.Name) {
		assert.Equal(t, "C24682192232D687", rec.Name.Hex)
		assert.Equal(t, uint16(273), rec.Name.ManufacturerCode)
		assert.Equal(t, uint32(1234567), rec.Name.IdentityNumber)
	}
	assert.Equal(t, uint32(cantypes.PGNISOAddressClaim), rec.Header.PGN)
	assert.Equal(t,
		`18EEFF1C J1939 prio=6 pgn=61183 PDU1/P2P/Unknown dst=255 "Source Address Request 1" src=28 "Compass" [8] 87 D6 32 22 19 82 46 C2 name=C24682192232D687`,
		rec.text(),
	)
}

func TestDecodeFrame_standard(t *testing.T) {
	color.NoColor = true

	rec, err := decodeFrame(frame{id: 0x7FF})
	assert.NoError(t, err)
	assert.Equal(t, "7FF CAN2.0A prio=7 reserved=true dp=true pf=63 [0]", rec.text())
	assert.Equal(t, "7FF#", rec.hex())

	_, err = decodeFrame(frame{id: 0x800})
	assert.EqualError(t, err, "standard frame id 0x800 does not fit into 11 bits: value out of range")
}
