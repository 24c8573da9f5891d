//go:build !linux

package main

import (
	"errors"
	"io"

	"github.com/go-can-types/cantypes"
)

var errSocketCANNotSupported = errors.New("socketcan is only supported on linux")

func newSocketCANReader(_ io.Reader) (frameReader, error) {
	return nil, errSocketCANNotSupported
}

func openSocketCANInterface(_ string) (io.ReadCloser, error) {
	return nil, errSocketCANNotSupported
}

func sendSocketCAN(_ string, _ cantypes.Message[cantypes.Data], _ uint8) error {
	return errSocketCANNotSupported
}
