package test_test

import (
	"testing"

	"github.com/go-can-types/cantypes"
	"github.com/stretchr/testify/assert"
)

// AssertMessage compares messages by their hex representation so that failures are readable.
func AssertMessage(t *testing.T, expect cantypes.Message[cantypes.Data], actual cantypes.Message[cantypes.Data]) {
	assert.Equal(t, expect.ID().IntoHex(), actual.ID().IntoHex(), "message identifier differs")
	assert.Equal(t, expect.PDU().IntoHex(), actual.PDU().IntoHex(), "message payload differs")
}

// AssertHeader compares header decoded from message identifier with expected header.
func AssertHeader(t *testing.T, expect cantypes.Header, actual cantypes.Message[cantypes.Data]) {
	assert.Equal(t, expect, actual.ID().Header())
}
