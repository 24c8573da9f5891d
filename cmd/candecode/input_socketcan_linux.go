//go:build linux

package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-can-types/cantypes"
	"github.com/go-can-types/cantypes/socketcan"
)

// socketReadTimeout limits how long single socket read blocks so that reading loop can notice cancelled context.
const socketReadTimeout = 50 * time.Millisecond

// socketcanReader reads raw `struct can_frame` records, for example file written from CAN_RAW socket.
type socketcanReader struct {
	r   io.Reader
	buf []byte
}

func newSocketCANReader(r io.Reader) (frameReader, error) {
	return &socketcanReader{r: r, buf: make([]byte, socketcan.FrameSize)}, nil
}

func (s *socketcanReader) ReadFrame() (frame, error) {
	n, err := io.ReadFull(s.r, s.buf)
	if errors.Is(err, socketcan.ErrReadTimeout) {
		return frame{}, errNoFrame
	}
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return frame{}, fmt.Errorf("input ended with incomplete can frame of %v bytes", n)
	}
	if err != nil {
		return frame{}, err
	}
	f, err := socketcan.Unmarshal(s.buf)
	if err != nil {
		return frame{}, &inputError{raw: fmt.Sprintf("%X", s.buf), err: err}
	}
	return frame{
		extended: f.Extended,
		id:       f.ID,
		length:   f.Length,
		data:     f.Data,
	}, nil
}

func openSocketCANInterface(ifName string) (io.ReadCloser, error) {
	conn, err := socketcan.NewConnection(ifName)
	if err != nil {
		return nil, fmt.Errorf("failed to open socketcan interface %q: %w", ifName, err)
	}
	if err := conn.SetReadTimeout(socketReadTimeout); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to set read timeout for socketcan interface %q: %w", ifName, err)
	}
	return conn, nil
}

func sendSocketCAN(ifName string, msg cantypes.Message[cantypes.Data], length uint8) error {
	conn, err := socketcan.NewConnection(ifName)
	if err != nil {
		return err
	}
	defer conn.Close()
	if err := conn.SetSendTimeout(time.Second); err != nil {
		return err
	}
	return conn.WriteFrame(socketcan.FromMessage(msg, length))
}
