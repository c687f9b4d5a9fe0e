// Package mclimbo serves Minecraft: Java Edition clients a waiting world with
// nothing in it, behind a proxy that forwards their identity.
package mclimbo

import (
	"bufio"
	"bytes"
	"compress/zlib"
	"errors"
	"io"

	"github.com/gstoney/mclimbo/packet"
)

var ErrPacketTooBig = errors.New("packet too big")

type TransportConfig struct {
	MaxPacketLen       int32
	MaxDecompressedLen int32
}

type byteReader interface {
	io.Reader
	io.ByteReader
}

type byteWriter interface {
	io.Writer
	io.ByteWriter
}

// Transport frames packet payloads on a stream and compresses them once a
// threshold is set. It does not know about packet ids or states.
type Transport struct {
	reader byteReader
	writer byteWriter

	fReader FrameReader
	zReader io.ReadCloser

	zBuffer bytes.Buffer
	zWriter *zlib.Writer

	// CompressionThreshold is the smallest payload sent compressed. A
	// negative threshold disables the compressed frame format entirely.
	CompressionThreshold int

	cfg TransportConfig
}

// NewTransport creates a Transport. A reader or writer that does not
// implement io.ByteReader or io.ByteWriter is wrapped with bufio, and a
// bufio.Writer is flushed after every Send.
func NewTransport(r io.Reader, w io.Writer, cfg TransportConfig) *Transport {
	var (
		br byteReader
		bw byteWriter
	)

	if b, ok := r.(byteReader); ok {
		br = b
	} else if r != nil {
		br = bufio.NewReader(r)
	}

	if b, ok := w.(byteWriter); ok {
		bw = b
	} else if w != nil {
		bw = bufio.NewWriter(w)
	}

	return &Transport{
		reader:               br,
		writer:               bw,
		fReader:              FrameReader{src: br},
		CompressionThreshold: -1,
		cfg:                  cfg,
	}
}

// Recv starts reading the next frame. The returned reader must be
// exhausted (or discarded) before Recv is called again.
func (t *Transport) Recv() (PayloadReader, error) {
	frameLength, err := t.fReader.Next()
	if err != nil {
		return nil, err
	}
	if frameLength > t.cfg.MaxPacketLen {
		return nil, ErrPacketTooBig
	}

	if t.CompressionThreshold < 0 {
		return plainPayload{&t.fReader}, nil
	}

	dataLen, err := packet.ReadVarInt(&t.fReader)
	if err != nil {
		return nil, err
	}
	switch {
	case dataLen < 0:
		return nil, ErrInvalidDataLength
	case dataLen == 0:
		return plainPayload{&t.fReader}, nil
	case dataLen > t.cfg.MaxDecompressedLen:
		return nil, ErrPacketTooBig
	}

	if t.zReader == nil {
		t.zReader, err = zlib.NewReader(&t.fReader)
	} else {
		err = t.zReader.(zlib.Resetter).Reset(&t.fReader, nil)
	}
	if err != nil {
		return nil, err
	}
	return &compressedPayload{t.zReader, &t.fReader, dataLen}, nil
}

// ReadPayload reads one whole packet payload and validates its frame. A
// payload that fails validation is discarded so the stream stays aligned.
func (t *Transport) ReadPayload() ([]byte, error) {
	pr, err := t.Recv()
	if err != nil {
		return nil, err
	}

	payload := make([]byte, pr.Remaining())
	if _, err = io.ReadFull(pr, payload); err != nil {
		pr.Discard()
		return nil, err
	}
	if err = pr.Close(); err != nil {
		pr.Discard()
		return nil, err
	}
	return payload, nil
}

// Send writes b as one frame and flushes.
func (t *Transport) Send(b []byte) (err error) {
	switch {
	case t.CompressionThreshold < 0:
		err = t.sendFrame(nil, b)
	case len(b) < t.CompressionThreshold:
		err = t.sendFrame([]byte{0}, b)
	default:
		err = t.sendCompressed(b)
	}
	if err != nil {
		return
	}

	if bw, ok := t.writer.(*bufio.Writer); ok {
		err = bw.Flush()
	}
	return
}

func (t *Transport) sendFrame(prefix, b []byte) (err error) {
	if err = packet.WriteVarInt(t.writer, int32(len(prefix)+len(b))); err != nil {
		return
	}
	if _, err = t.writer.Write(prefix); err != nil {
		return
	}
	_, err = t.writer.Write(b)
	return
}

func (t *Transport) sendCompressed(b []byte) (err error) {
	t.zBuffer.Reset()
	if t.zWriter == nil {
		t.zWriter = zlib.NewWriter(&t.zBuffer)
	} else {
		t.zWriter.Reset(&t.zBuffer)
	}

	if _, err = t.zWriter.Write(b); err != nil {
		return
	}
	if err = t.zWriter.Close(); err != nil {
		return
	}

	var dataLen [5]byte
	n := packet.PutVarInt(dataLen[:], int32(len(b)))
	return t.sendFrame(dataLen[:n], t.zBuffer.Bytes())
}
