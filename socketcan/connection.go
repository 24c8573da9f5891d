//go:build linux

package socketcan

import (
	"errors"
	"fmt"
	"net"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

var (
	// ErrReadTimeout is returned when read timeout (SetReadTimeout) elapses before frame is received
	ErrReadTimeout = errors.New("read timeout")
	// ErrWriteTimeout is returned when send timeout (SetSendTimeout) elapses before frame could be sent
	ErrWriteTimeout = errors.New("write timeout")
)

// Connection is CAN_RAW socket bound to single CAN interface (can0, vcan0 etc).
type Connection struct {
	socketFD int
}

func NewConnection(ifName string) (*Connection, error) {
	ifi, err := net.InterfaceByName(ifName)
	if err != nil {
		return nil, fmt.Errorf("bad ifName: %w", err)
	}

	fd, err := unix.Socket(unix.AF_CAN, unix.SOCK_RAW, unix.CAN_RAW)
	if err != nil {
		return nil, fmt.Errorf("could not create CAN socket: %w", err)
	}

	addr := &unix.SockaddrCAN{Ifindex: ifi.Index}
	if err = unix.Bind(fd, addr); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("could not bind CAN socket: %w", err)
	}
	return &Connection{socketFD: fd}, nil
}

func isContinuableSocketErr(err error) bool {
	// EWOULDBLOCK is returned when SO_RCVTIMEO/SO_SNDTIMEO elapses, EINTR when signal interrupts blocking call
	return errors.Is(err, syscall.EWOULDBLOCK) || errors.Is(err, syscall.EINTR)
}

func (c *Connection) SetReadTimeout(timeout time.Duration) error {
	return c.setSocketTimeout(unix.SO_RCVTIMEO, timeout)
}

func (c *Connection) SetSendTimeout(timeout time.Duration) error {
	return c.setSocketTimeout(unix.SO_SNDTIMEO, timeout)
}

func (c *Connection) setSocketTimeout(opt int, timeout time.Duration) error {
	tv := unix.NsecToTimeval(timeout.Nanoseconds())
	return unix.SetsockoptTimeval(c.socketFD, unix.SOL_SOCKET, opt, &tv)
}

func (c *Connection) Close() error {
	return unix.Close(c.socketFD)
}

// Read reads single `struct can_frame` from socket. Buffer must fit whole frame (FrameSize bytes) as socket returns
// one frame per read.
func (c *Connection) Read(p []byte) (int, error) {
	if len(p) < FrameSize {
		return 0, fmt.Errorf("read buffer must be at least %v bytes, got %v", FrameSize, len(p))
	}
	n, err := unix.Read(c.socketFD, p[:FrameSize])
	if err != nil {
		if isContinuableSocketErr(err) {
			return 0, ErrReadTimeout
		}
		return 0, err
	}
	return n, nil
}

// ReadFrame reads and decodes next frame from socket.
func (c *Connection) ReadFrame() (Frame, error) {
	canFrame := make([]byte, FrameSize)
	if _, err := c.Read(canFrame); err != nil {
		return Frame{}, err
	}
	return Unmarshal(canFrame)
}

// WriteFrame encodes and sends frame to socket.
func (c *Connection) WriteFrame(f Frame) error {
	canFrame, err := Marshal(f)
	if err != nil {
		return err
	}
	_, err = unix.Write(c.socketFD, canFrame)
	if isContinuableSocketErr(err) {
		return ErrWriteTimeout
	}
	return err
}
