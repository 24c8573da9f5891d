package cantypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddr_String(t *testing.T) {
	var testCases = []struct {
		name   string
		given  uint8
		expect string
	}{
		{name: "ok, 41", given: 41, expect: "Retarder, Exhaust, Engine #1"},
		{name: "ok, 0", given: 0, expect: "Primary Engine Controller | (CPC, ECM)"},
		{name: "ok, 249", given: 249, expect: "Service Tool"},
		{name: "ok, 255", given: 255, expect: "Source Address Request 1"},
		{name: "ok, unknown", given: 2, expect: "Unknown(2)"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, Addr(tc.given).String())
		})
	}
}

func TestLookupAddr(t *testing.T) {
	a, ok := LookupAddr(41)
	assert.True(t, ok)
	assert.Equal(t, AddrRetarderExhaustEngine1, a)
	assert.Equal(t, uint8(41), uint8(a))

	a, ok = LookupAddr(2)
	assert.False(t, ok)
	assert.Equal(t, Addr(2), a)
	assert.Equal(t, "", a.Label())
}

func TestParseAddr(t *testing.T) {
	a, ok := ParseAddr("Retarder, Exhaust, Engine #1")
	assert.True(t, ok)
	assert.Equal(t, uint8(41), uint8(a))

	a, ok = ParseAddr("service tool")
	assert.True(t, ok)
	assert.Equal(t, AddrServiceTool, a)

	a, ok = ParseAddr("Unknown(2)")
	assert.True(t, ok)
	assert.Equal(t, Addr(2), a)

	_, ok = ParseAddr("Flux Capacitor")
	assert.False(t, ok)
}

func TestParseAddr_unknownMustMatchWholeLabel(t *testing.T) {
	var testCases = []struct {
		name  string
		given string
	}{
		{name: "nok, trailing junk", given: "Unknown(5)xyz"},
		{name: "nok, missing closing paren", given: "Unknown(5"},
		{name: "nok, over 255", given: "Unknown(256)"},
		{name: "nok, negative", given: "Unknown(-1)"},
		{name: "nok, not a number", given: "Unknown(x)"},
		{name: "nok, empty number", given: "Unknown()"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := ParseAddr(tc.given)
			assert.False(t, ok)
		})
	}
}

func TestAddr_roundTripAllKnown(t *testing.T) {
	known := 0
	for i := 0; i <= 255; i++ {
		a := Addr(i)
		if !a.Known() {
			continue
		}
		known++
		parsed, ok := ParseAddr(a.String())
		assert.True(t, ok)
		assert.Equal(t, a, parsed)
	}
	assert.Equal(t, 58, known)
}
