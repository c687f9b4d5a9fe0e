package packet

import (
	"errors"
	"io"
)

var ErrUnreadByte = errors.New("UnreadByte: previous operation was not a read")

// Buffer is a growable byte slice with a read offset. Writes append at the
// end, reads consume from the offset. A Buffer is owned by one encode or
// decode call and is not safe for concurrent use.
type Buffer struct {
	buf      []byte
	off      int
	lastRead int
}

// NewBuffer returns a Buffer reading from buf. The Buffer takes ownership of
// buf; further writes append to it.
func NewBuffer(buf []byte) *Buffer {
	return &Buffer{
		buf:      buf,
		lastRead: -1,
	}
}

// Bytes returns the unread portion of the buffer.
func (b *Buffer) Bytes() []byte {
	return b.buf[b.off:]
}

// Len returns the number of unread bytes. It mirrors Remaining for callers
// used to bytes.Buffer.
func (b *Buffer) Len() int {
	return len(b.buf) - b.off
}

func (b *Buffer) Remaining() int {
	return len(b.buf) - b.off
}

func (b *Buffer) Reset() {
	b.buf = b.buf[:0]
	b.off = 0
	b.lastRead = -1
}

func (b *Buffer) Write(p []byte) (int, error) {
	b.buf = append(b.buf, p...)
	b.lastRead = -1
	return len(p), nil
}

func (b *Buffer) WriteByte(c byte) error {
	b.buf = append(b.buf, c)
	b.lastRead = -1
	return nil
}

// ReadByte returns io.ErrUnexpectedEOF once the written bytes are consumed:
// a packet field never legitimately ends early.
func (b *Buffer) ReadByte() (byte, error) {
	if b.off >= len(b.buf) {
		return 0, io.ErrUnexpectedEOF
	}
	c := b.buf[b.off]
	b.lastRead = b.off
	b.off++
	return c, nil
}

func (b *Buffer) UnreadByte() error {
	if b.lastRead < 0 || b.lastRead != b.off-1 {
		return ErrUnreadByte
	}
	b.off--
	b.lastRead = -1
	return nil
}

// Read implements io.Reader for decoders that stream (e.g. NBT). It returns
// io.EOF when nothing is left.
func (b *Buffer) Read(p []byte) (int, error) {
	if b.off >= len(b.buf) {
		if len(p) == 0 {
			return 0, nil
		}
		return 0, io.EOF
	}
	n := copy(p, b.buf[b.off:])
	b.off += n
	b.lastRead = -1
	return n, nil
}

// Next consumes exactly n bytes. The returned slice aliases the buffer.
func (b *Buffer) Next(n int) ([]byte, error) {
	if n < 0 || n > len(b.buf)-b.off {
		return nil, io.ErrUnexpectedEOF
	}
	p := b.buf[b.off : b.off+n]
	b.off += n
	b.lastRead = -1
	return p, nil
}
