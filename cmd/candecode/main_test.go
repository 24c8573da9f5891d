package main

import (
	"bytes"
	"testing"

	test_test "github.com/go-can-types/cantypes/test"
	"github.com/stretchr/testify/assert"
)

func executeCmd(stdin []byte, args ...string) (string, error) {
	cmd := newRootCmd(envConfig{Device: "-", Baud: 115200, InputFormat: "candump", OutputFormat: "text"})
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(bytes.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestDumpCmd_hex(t *testing.T) {
	out, err := executeCmd(test_test.LoadBytes(t, "candump.log"), "dump", "--output-format", "hex")

	assert.NoError(t, err)
	expect := "18FEF200#FFFF82DF1AFFFFFF\n" +
		"0C00290B#0102\n" +
		"7FF#\n" +
		"# New or changed node: NAME: C24682192232D687, source: 28 (Compass)\n" +
		"18EEFF1C#87D63222198246C2\n" +
		"# Error invalid input `(1620000001.500000) can0 XYZ#00`: CAN2.0A identifier hex `XYZ` could not be parsed: invalid hexadecimal value\n" +
		"# Error invalid input `(1620000002.000000) can0 123#R`: remote transmission request frames are not supported\n" +
		"10FF2121#010203\n" +
		"# Finishing, number of processed frames: 5, errors: 2\n" +
		"# Known nodes: 1\n" +
		"# node: NAME: C24682192232D687, source: 28\n"
	assert.Equal(t, expect, out)
}

func TestDumpCmd_nodeLosesAddressOnLostClaim(t *testing.T) {
	input := "18EEFF1C#0100000000000000\n" +
		"18EEFF1E#FFFFFFFFFFFFFFFF\n" +
		"18EEFF1C#FFFFFFFFFFFFFFFF\n"

	out, err := executeCmd([]byte(input), "dump", "-o", "hex")

	assert.NoError(t, err)
	expect := "# New or changed node: NAME: 0000000000000001, source: 28 (Compass)\n" +
		"18EEFF1C#0100000000000000\n" +
		"# New or changed node: NAME: FFFFFFFFFFFFFFFF, source: 30 (Unknown(30))\n" +
		"18EEFF1E#FFFFFFFFFFFFFFFF\n" +
		"# Node lost its address, NAME: FFFFFFFFFFFFFFFF\n" +
		"18EEFF1C#FFFFFFFFFFFFFFFF\n" +
		"# Finishing, number of processed frames: 3, errors: 0\n" +
		"# Known nodes: 2\n" +
		"# node: NAME: 0000000000000001, source: 28\n" +
		"# node: NAME: FFFFFFFFFFFFFFFF, no address\n"
	assert.Equal(t, expect, out)
}

func TestDumpCmd_text(t *testing.T) {
	out, err := executeCmd(
		[]byte("(1620000000.500000) can0 0C00290B#0102\n"),
		"dump", "--no-color",
	)

	assert.NoError(t, err)
	assert.Equal(t,
		`(1620000000.500000) can0 0C00290B J1939 prio=3 pgn=41 PDU1/P2P/SAE dst=41 "Retarder, Exhaust, Engine #1" src=11 "Brakes | System Controller (ABS)" [2] 01 02`+"\n"+
			"# Finishing, number of processed frames: 1, errors: 0\n",
		out,
	)
}

func TestDumpCmd_yaml(t *testing.T) {
	out, err := executeCmd([]byte("7FF#01\n"), "dump", "-o", "yaml")

	assert.NoError(t, err)
	assert.Contains(t, out, "---\n")
	assert.Contains(t, out, "id: 7FF\n")
	assert.Contains(t, out, "pdu_format: 63\n")
	assert.Contains(t, out, "length: 1\n")
}

func TestDumpCmd_unknownInputFormat(t *testing.T) {
	_, err := executeCmd(nil, "dump", "--input-format", "ngt")

	assert.EqualError(t, err, "unknown input format type given: ngt")
}

func TestIDCmd(t *testing.T) {
	out, err := executeCmd(nil, "id", "-o", "hex", "18FEF200", "0x7ff", "20000000")

	assert.EqualError(t, err, "1 of 3 identifiers could not be decoded")
	assert.Equal(t,
		"18FEF200\n"+
			"7FF\n"+
			"# Error extended identifier hex out of range, valid range is 0x0..0x1FFFFFFF, got 0x20000000: value out of range\n",
		out,
	)
}

func TestIDCmd_json(t *testing.T) {
	out, err := executeCmd(nil, "id", "-o", "json", "1CFE9201")

	assert.NoError(t, err)
	assert.JSONEq(t, `{
		"id": "1CFE9201",
		"protocol": "J1939",
		"extended": {"priority": 7, "reserved": false, "data_page": false, "pdu_format": 254, "pdu_specific": 146, "source_address": 1},
		"header": {"pgn": 65170, "priority": 7, "source": 1, "destination": 255},
		"pgn": {"value": 65170, "hex": "0000FE92", "format": "PDU2", "mode": "Broadcast", "assignment": "SAE", "group_extension": 146},
		"source": "Secondary Engine Controller | (MCM, ECM #2)"
	}`, out)
}

func TestRootCmd_unknownOutputFormat(t *testing.T) {
	_, err := executeCmd(nil, "id", "-o", "canboat", "18FEF200")

	assert.EqualError(t, err, "unknown output format type given: canboat")
}

func TestRequestCmd(t *testing.T) {
	var testCases = []struct {
		name        string
		whenArgs    []string
		expect      string
		expectError string
	}{
		{
			name:     "ok, address claim from everyone",
			whenArgs: []string{"request", "60928", "-o", "hex"},
			expect:   "18EAFFFE#00EE00\n",
		},
		{
			name:     "ok, product info from single node",
			whenArgs: []string{"request", "126996", "--destination", "35", "-o", "hex"},
			expect:   "18EA23FE#14F001\n",
		},
		{
			name:        "nok, pgn is not a number",
			whenArgs:    []string{"request", "0xEE00"},
			expectError: "invalid pgn given: strconv.ParseUint: parsing \"0xEE00\": invalid syntax",
		},
		{
			name:        "nok, pgn out of range",
			whenArgs:    []string{"request", "262144"},
			expectError: "requested pgn 262144 does not fit into 18 bits: value out of range",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := executeCmd(nil, tc.whenArgs...)

			assert.Equal(t, tc.expect, out)
			if tc.expectError != "" {
				assert.EqualError(t, err, tc.expectError)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
