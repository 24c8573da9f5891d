//go:build linux

package socketcan

import (
	"errors"
	"fmt"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsContinuableSocketErr(t *testing.T) {
	var testCases = []struct {
		name   string
		when   error
		expect bool
	}{
		{name: "ok, EWOULDBLOCK", when: syscall.EWOULDBLOCK, expect: true},
		{name: "ok, wrapped EINTR", when: fmt.Errorf("read: %w", syscall.EINTR), expect: true},
		{name: "nok, EBADF", when: syscall.EBADF, expect: false},
		{name: "nok, other error", when: errors.New("x"), expect: false},
		{name: "nok, nil", when: nil, expect: false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, isContinuableSocketErr(tc.when))
		})
	}
}

func TestNewConnection_unknownInterface(t *testing.T) {
	conn, err := NewConnection("nosuchcan99")

	assert.Nil(t, conn)
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "bad ifName")
	}
}

func TestConnection_Read_bufferTooSmall(t *testing.T) {
	c := &Connection{socketFD: -1}

	n, err := c.Read(make([]byte, 8))

	assert.Equal(t, 0, n)
	assert.EqualError(t, err, "read buffer must be at least 16 bytes, got 8")
}
