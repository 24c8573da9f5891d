package main

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

// idleReader is reader of quiet bus: every read times out until reader is told to stop
type idleReader struct {
	reads    int
	cancelAt int
	cancel   context.CancelFunc
}

func (r *idleReader) ReadFrame() (frame, error) {
	r.reads++
	if r.reads == r.cancelAt {
		r.cancel()
	}
	return frame{}, errNoFrame
}

func TestDump_stopsOnCancelWhileBusIsQuiet(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	reader := &idleReader{cancelAt: 3, cancel: cancel}
	out := &bytes.Buffer{}

	err := dump(ctx, reader, newPrinter(out, "hex"), nil)

	assert.NoError(t, err)
	assert.Equal(t, 3, reader.reads)
	assert.Equal(t, "# Finishing, number of processed frames: 0, errors: 0\n", out.String())
}

type countingCloser struct {
	io.Reader
	closes int
}

func (c *countingCloser) Close() error {
	c.closes++
	return nil
}

func TestOnceCloser_Close(t *testing.T) {
	rc := &countingCloser{Reader: &bytes.Buffer{}}
	c := &onceCloser{ReadCloser: rc}

	assert.NoError(t, c.Close())
	assert.NoError(t, c.Close())

	assert.Equal(t, 1, rc.closes)
}
