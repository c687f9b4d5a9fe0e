package mclimbo

import (
	"errors"
	"io"

	"github.com/gstoney/mclimbo/packet"
)

var (
	ErrNotExhausted        = errors.New("not exhausted")
	ErrInvalidFrameLength  = errors.New("invalid frame length")
	ErrInvalidDataLength   = errors.New("invalid data length")
	ErrZlibPayloadOverrun  = errors.New("zlib stream exceeds declared payload length")
	ErrZlibPayloadUnderrun = errors.New("zlib stream shorter than declared payload length")
	ErrZlibTrailingData    = errors.New("trailing data in frame after zlib stream ends")
)

// FrameReader gives bounded access to one length prefixed frame at a time,
// so a packet can never read into the next one.
type FrameReader struct {
	src       byteReader
	remaining int32
}

func (f *FrameReader) Read(p []byte) (n int, err error) {
	if f.remaining <= 0 {
		return 0, io.EOF
	}
	if int32(len(p)) > f.remaining {
		p = p[:f.remaining]
	}
	n, err = f.src.Read(p)
	f.remaining -= int32(n)

	if err == io.EOF && f.remaining > 0 {
		err = io.ErrUnexpectedEOF
	}
	return
}

func (f *FrameReader) ReadByte() (byte, error) {
	if f.remaining <= 0 {
		return 0, io.EOF
	}
	v, err := f.src.ReadByte()
	if err == nil {
		f.remaining--
	} else if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return v, err
}

// Next reads the length prefix of the next frame. The previous frame must
// be consumed first.
func (f *FrameReader) Next() (length int32, err error) {
	if f.remaining > 0 {
		return f.remaining, ErrNotExhausted
	}

	if length, err = packet.ReadVarInt(f.src); err != nil {
		return
	}
	if length <= 0 {
		return length, ErrInvalidFrameLength
	}
	f.remaining = length
	return
}

func (f *FrameReader) Skip() (n int32, err error) {
	n64, err := io.CopyN(io.Discard, f, int64(f.remaining))
	return int32(n64), err
}

func (f *FrameReader) Remaining() int32 {
	return f.remaining
}

// PayloadReader reads the payload of one packet, after decompression.
//
// Skip discards the unread payload so Close can validate the frame. Close
// reports ErrNotExhausted for unread payload and the zlib errors for
// malformed compressed frames; it does not realign on error. Discard drops
// the rest of the frame and realigns to the next one.
type PayloadReader interface {
	io.ReadCloser
	Skip() (n int32, err error)
	Discard() (n int32, err error)
	Remaining() int32
}

type plainPayload struct {
	*FrameReader
}

func (p plainPayload) Close() error {
	if p.remaining > 0 {
		return ErrNotExhausted
	}
	return nil
}

func (p plainPayload) Discard() (int32, error) {
	return p.Skip()
}

type compressedPayload struct {
	zr        io.ReadCloser
	fr        *FrameReader
	remaining int32
}

func (p *compressedPayload) Read(b []byte) (n int, err error) {
	if p.remaining <= 0 {
		return 0, io.EOF
	}
	if int32(len(b)) > p.remaining {
		b = b[:p.remaining]
	}
	n, err = p.zr.Read(b)
	p.remaining -= int32(n)

	if err == io.EOF && p.remaining > 0 {
		err = ErrZlibPayloadUnderrun
	}
	return
}

func (p *compressedPayload) Skip() (n int32, err error) {
	n64, err := io.CopyN(io.Discard, p, int64(p.remaining))
	return int32(n64), err
}

func (p *compressedPayload) Discard() (int32, error) {
	p.remaining = 0
	return p.fr.Skip()
}

func (p *compressedPayload) Close() error {
	if p.remaining > 0 {
		return ErrNotExhausted
	}

	var one [1]byte
	n, err := p.zr.Read(one[:])
	switch {
	case err == nil || n > 0:
		return ErrZlibPayloadOverrun
	case err != io.EOF:
		return err
	case p.fr.remaining > 0:
		return ErrZlibTrailingData
	}
	return p.zr.Close()
}

func (p *compressedPayload) Remaining() int32 {
	return p.remaining
}
