package packet

import (
	"encoding/binary"
	"errors"
	"io"
	"math"

	"github.com/google/uuid"
)

// Reader is what field decoders consume. *Buffer implements it.
type Reader interface {
	io.ByteReader
	Next(n int) ([]byte, error)
	Remaining() int
}

type WriteFn[T any] func(io.Writer, T) error
type ReadFn[T any] func(Reader) (T, error)

var (
	ErrInvalidBoolean = errors.New("invalid byte for Boolean field")
	ErrVarIntTooLong  = errors.New("VarInt is too long")
	ErrNegativeLength = errors.New("negative length")
	ErrStringTooLong  = errors.New("string exceeds maximum length")
)

// MaxStringLength bounds String fields in bytes. The protocol limit is 32767
// UTF-16 code units, which is at most 4 bytes each in UTF-8.
const MaxStringLength = 32767 * 4

func WriteBoolean(w io.Writer, v bool) (err error) {
	b := byte(0)
	if v {
		b = 1
	}

	_, err = w.Write([]byte{b})
	return
}

func ReadBoolean(r Reader) (v bool, err error) {
	b, err := r.ReadByte()
	if err != nil {
		return
	}

	switch b {
	case 0:
		v = false
	case 1:
		v = true
	default:
		err = ErrInvalidBoolean
	}
	return
}

func WriteByte(w io.Writer, v byte) (err error) {
	_, err = w.Write([]byte{v})
	return
}

func ReadByte(r Reader) (v byte, err error) {
	return r.ReadByte()
}

func WriteSignedByte(w io.Writer, v int8) error {
	return WriteByte(w, byte(v))
}

func ReadSignedByte(r Reader) (v int8, err error) {
	b, err := r.ReadByte()
	return int8(b), err
}

func WriteUnsignedShort(w io.Writer, v uint16) (err error) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	_, err = w.Write(b[:])
	return
}

func ReadUnsignedShort(r Reader) (v uint16, err error) {
	b, err := r.Next(2)
	if err != nil {
		return
	}

	v = binary.BigEndian.Uint16(b)
	return
}

func WriteShort(w io.Writer, v int16) error {
	return WriteUnsignedShort(w, uint16(v))
}

func ReadShort(r Reader) (v int16, err error) {
	u, err := ReadUnsignedShort(r)
	return int16(u), err
}

func WriteInt(w io.Writer, v int32) (err error) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(v))
	_, err = w.Write(b[:])
	return
}

func ReadInt(r Reader) (v int32, err error) {
	b, err := r.Next(4)
	if err != nil {
		return
	}

	v = int32(binary.BigEndian.Uint32(b))
	return
}

func WriteLong(w io.Writer, v int64) (err error) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(v))
	_, err = w.Write(b[:])
	return
}

func ReadLong(r Reader) (v int64, err error) {
	b, err := r.Next(8)
	if err != nil {
		return
	}

	v = int64(binary.BigEndian.Uint64(b))
	return
}

func WriteFloat(w io.Writer, v float32) error {
	return WriteInt(w, int32(math.Float32bits(v)))
}

func ReadFloat(r Reader) (v float32, err error) {
	i, err := ReadInt(r)
	return math.Float32frombits(uint32(i)), err
}

func WriteDouble(w io.Writer, v float64) error {
	return WriteLong(w, int64(math.Float64bits(v)))
}

func ReadDouble(r Reader) (v float64, err error) {
	l, err := ReadLong(r)
	return math.Float64frombits(uint64(l)), err
}

func WriteVarInt(w io.Writer, v int32) error {
	var b [5]byte
	n := PutVarInt(b[:], v)
	_, err := w.Write(b[:n])
	return err
}

// PutVarInt encodes v into b, which must hold at least 5 bytes, and returns
// the number of bytes written.
func PutVarInt(b []byte, v int32) int {
	uv := uint32(v)
	for i := 0; ; i++ {
		c := byte(uv & 0x7F)
		uv >>= 7

		if uv != 0 {
			c |= 0x80
		}
		b[i] = c

		if uv == 0 {
			return i + 1
		}
	}
}

// VarIntSize returns the encoded width of v.
func VarIntSize(v int32) int {
	var b [5]byte
	return PutVarInt(b[:], v)
}

func ReadVarInt(r io.ByteReader) (int32, error) {
	var v int32
	var shift uint

	for n := 0; n < 5; n++ {
		b, err := r.ReadByte()
		if err != nil {
			if err == io.EOF && n > 0 {
				err = io.ErrUnexpectedEOF
			}
			return v, err
		}

		v |= int32(b&0x7F) << shift
		shift += 7

		if (b & 0x80) == 0 {
			return v, nil
		}
	}
	return v, ErrVarIntTooLong
}

// readLength reads a VarInt length prefix and checks it against what is left
// to read, so a hostile prefix cannot force a large allocation.
func readLength(r Reader) (int, error) {
	length, err := ReadVarInt(r)
	if err != nil {
		return 0, err
	}
	if length < 0 {
		return 0, ErrNegativeLength
	}
	if int(length) > r.Remaining() {
		return 0, io.ErrUnexpectedEOF
	}
	return int(length), nil
}

func WriteString(w io.Writer, v string) (err error) {
	if len(v) > MaxStringLength {
		return ErrStringTooLong
	}
	if err = WriteVarInt(w, int32(len(v))); err != nil {
		return
	}
	_, err = io.WriteString(w, v)
	return
}

func ReadString(r Reader) (v string, err error) {
	length, err := readLength(r)
	if err != nil {
		return
	}
	if length > MaxStringLength {
		err = ErrStringTooLong
		return
	}

	buf, err := r.Next(length)
	return string(buf), err
}

// Position's serialized form is composed of X, Z which are 26 bits each, and 12 bits of Y.
// Thus, unintended content can be written when the values are out of range.
// The bit order changed in 1.14, see WritePosition in versioned.go.
type Position struct {
	X int32
	Y int16
	Z int32
}

func WriteUUID(w io.Writer, v uuid.UUID) (err error) {
	_, err = w.Write(v[:])
	return
}

func ReadUUID(r Reader) (v uuid.UUID, err error) {
	b, err := r.Next(16)
	if err != nil {
		return
	}

	copy(v[:], b)
	return
}

func WritePrefixedBytes(w io.Writer, v []byte) (err error) {
	if err = WriteVarInt(w, int32(len(v))); err != nil {
		return
	}
	_, err = w.Write(v)
	return
}

func ReadPrefixedBytes(r Reader) (v []byte, err error) {
	length, err := readLength(r)
	if err != nil {
		return
	}

	b, err := r.Next(length)
	if err != nil {
		return
	}
	v = make([]byte, length)
	copy(v, b)
	return
}

// WriteRemainingBytes writes v with no length prefix. It must be the last
// field of a packet.
func WriteRemainingBytes(w io.Writer, v []byte) (err error) {
	_, err = w.Write(v)
	return
}

func ReadRemainingBytes(r Reader) (v []byte, err error) {
	b, err := r.Next(r.Remaining())
	if err != nil {
		return
	}
	v = make([]byte, len(b))
	copy(v, b)
	return
}

func WritePrefixedArray[T any](w io.Writer, v []T, write WriteFn[T]) (err error) {
	err = WriteVarInt(w, int32(len(v)))
	if err != nil {
		return
	}

	for _, item := range v {
		err = write(w, item)
		if err != nil {
			return
		}
	}
	return
}

// ReadPrefixedArray assumes every element takes at least one byte on the
// wire when validating the length prefix.
func ReadPrefixedArray[T any](r Reader, read ReadFn[T]) (v []T, err error) {
	length, err := readLength(r)
	if err != nil {
		return
	}

	v = make([]T, length)
	for i := 0; i < length; i++ {
		var item T
		if item, err = read(r); err != nil {
			return nil, err
		}
		v[i] = item
	}

	return
}

// Optional[T] represents Optional field in a packet
//
// Serialized Optional[T] is prefixed with Boolean of whether the value exists.
// If so, the value T is followed.
type Optional[T any] struct {
	Exists bool
	Item   T
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Exists: true, Item: v}
}

func WriteOptional[T any](w io.Writer, v Optional[T], write WriteFn[T]) (err error) {
	err = WriteBoolean(w, v.Exists)
	if err != nil {
		return
	}

	if v.Exists {
		err = write(w, v.Item)
	}
	return
}

func ReadOptional[T any](r Reader, read ReadFn[T]) (v Optional[T], err error) {
	if v.Exists, err = ReadBoolean(r); err != nil {
		return
	}

	if v.Exists {
		v.Item, err = read(r)
	}
	return
}
