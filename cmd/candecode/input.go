package main

import (
	"bufio"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/go-can-types/cantypes"
	"github.com/go-can-types/cantypes/internal/utils"
)

var errRemoteFrame = errors.New("remote transmission request frames are not supported")

// errNoFrame is returned by reader when no frame arrived within read timeout. Reading can be retried.
var errNoFrame = errors.New("no frame received within read timeout")

// frame is classic CAN frame read from input.
type frame struct {
	time     *time.Time
	iface    string
	extended bool
	id       uint32
	length   uint8
	data     cantypes.Data
}

type frameReader interface {
	// ReadFrame returns next frame from input or io.EOF when input has ended. Malformed input is returned as
	// *inputError and reading can continue after it.
	ReadFrame() (frame, error)
}

type inputError struct {
	raw string
	err error
}

func (e *inputError) Error() string {
	return fmt.Sprintf("invalid input `%v`: %v", e.raw, e.err)
}

func (e *inputError) Unwrap() error {
	return e.err
}

type lineReader struct {
	scanner *bufio.Scanner
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{scanner: bufio.NewScanner(r)}
}

func (r *lineReader) ReadFrame() (frame, error) {
	for r.scanner.Scan() {
		line := strings.TrimSpace(r.scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		f, err := parseLine(line)
		if err != nil {
			return frame{}, &inputError{raw: utils.FormatSpaces([]byte(line)), err: err}
		}
		return f, nil
	}
	if err := r.scanner.Err(); err != nil {
		return frame{}, err
	}
	return frame{}, io.EOF
}

func parseLine(line string) (frame, error) {
	// candump -L format is
	// (timestamp) interface id#data
	// (1620000000.123456) can0 18FEF200#FFFF82DF1AFFFFFF
	// cansend format is only `id#data`. Standard frame ids have 3 hex digits, extended 8.
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return frame{}, errors.New("empty line")
	}
	f := frame{}
	if strings.HasPrefix(fields[0], "(") {
		ts, err := parseTimestamp(fields[0])
		if err != nil {
			return frame{}, err
		}
		f.time = &ts
		fields = fields[1:]
	}
	if len(fields) == 2 {
		f.iface = fields[0]
		fields = fields[1:]
	}
	if len(fields) != 1 {
		return frame{}, errors.New("invalid input format")
	}

	idRaw, dataRaw, ok := strings.Cut(fields[0], "#")
	if !ok {
		return frame{}, errors.New("missing `#` between identifier and data")
	}
	switch len(idRaw) {
	case cantypes.CAN2A.Digits():
		id, err := cantypes.CAN2A.TryFromHex(idRaw)
		if err != nil {
			return frame{}, err
		}
		f.id = uint32(id.IntoBits())
	case cantypes.CAN2B.Digits():
		id, err := cantypes.CAN2B.TryFromHex(idRaw)
		if err != nil {
			return frame{}, err
		}
		f.id = id.IntoBits()
		f.extended = true
	default:
		return frame{}, fmt.Errorf("identifier must have 3 or 8 hex digits, got %v", len(idRaw))
	}

	if strings.HasPrefix(dataRaw, "R") || strings.HasPrefix(dataRaw, "r") {
		return frame{}, errRemoteFrame
	}
	if strings.HasPrefix(dataRaw, "#") {
		return frame{}, errors.New("CAN FD frames are not supported")
	}
	data, err := hex.DecodeString(utils.NormalizeHex(dataRaw))
	if err != nil {
		return frame{}, fmt.Errorf("failed to decode hex data: %w", err)
	}
	f.data, err = cantypes.DataFromBytes(data)
	if err != nil {
		return frame{}, err
	}
	f.length = uint8(len(data))

	return f, nil
}

func parseTimestamp(raw string) (time.Time, error) {
	if !strings.HasPrefix(raw, "(") || !strings.HasSuffix(raw, ")") {
		return time.Time{}, fmt.Errorf("invalid timestamp `%v`", raw)
	}
	secRaw, fracRaw, _ := strings.Cut(raw[1:len(raw)-1], ".")
	sec, err := strconv.ParseInt(secRaw, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp seconds, err: %w", err)
	}
	nsec := int64(0)
	if fracRaw != "" {
		if len(fracRaw) > 9 {
			fracRaw = fracRaw[:9]
		}
		nsec, err = strconv.ParseInt(fracRaw+strings.Repeat("0", 9-len(fracRaw)), 10, 64)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid timestamp fraction, err: %w", err)
		}
	}
	return time.Unix(sec, nsec).UTC(), nil
}
