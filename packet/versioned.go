package packet

import (
	"errors"
	"io"
	"strings"

	"github.com/Tnze/go-mc/nbt"
	"github.com/google/uuid"

	"github.com/gstoney/mclimbo/version"
)

// Every field whose wire form depends on the protocol version is read and
// written here, so packet codecs only decide which fields exist.

var (
	// NetworkNBT is the first version whose compound tags omit the root name.
	NetworkNBT = version.V1_20_2
	// TextNBT is the first version sending chat components as NBT instead of JSON.
	TextNBT = version.V1_20_3
)

var ErrLegacyDataTooLong = errors.New("data exceeds 1.7 short length prefix")

// WriteCompoundTag writes v as a root tag: named (with an empty name) before
// NetworkNBT, nameless from NetworkNBT on. v may be any value go-mc's nbt
// encoder accepts, including nbt.RawMessage.
func WriteCompoundTag(w io.Writer, v any, ver *version.Version) error {
	enc := nbt.NewEncoder(w)
	enc.NetworkFormat(ver.MoreOrEqual(NetworkNBT))
	return enc.Encode(v, "")
}

// ReadCompoundTag decodes a root tag into v. b is read directly so the
// decoder never consumes bytes past the tag.
func ReadCompoundTag(b *Buffer, v any, ver *version.Version) error {
	dec := nbt.NewDecoder(b)
	dec.NetworkFormat(ver.MoreOrEqual(NetworkNBT))
	_, err := dec.Decode(v)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

// WriteProfileUUID writes a player UUID the way login success expects it:
// undashed string before 1.7.6, dashed string before 1.16, binary after.
func WriteProfileUUID(w io.Writer, id uuid.UUID, ver *version.Version) error {
	switch {
	case ver.MoreOrEqual(version.V1_16):
		return WriteUUID(w, id)
	case ver.MoreOrEqual(version.V1_7_6):
		return WriteString(w, id.String())
	default:
		return WriteString(w, strings.ReplaceAll(id.String(), "-", ""))
	}
}

func ReadProfileUUID(r Reader, ver *version.Version) (id uuid.UUID, err error) {
	if ver.MoreOrEqual(version.V1_16) {
		return ReadUUID(r)
	}

	s, err := ReadString(r)
	if err != nil {
		return
	}
	return uuid.Parse(s)
}

// WriteKeepAliveID writes an Int before 1.8, a VarInt before 1.12.2 and a
// Long afterwards. Older clients only see the low 32 bits.
func WriteKeepAliveID(w io.Writer, id int64, ver *version.Version) error {
	switch {
	case ver.MoreOrEqual(version.V1_12_2):
		return WriteLong(w, id)
	case ver.MoreOrEqual(version.V1_8):
		return WriteVarInt(w, int32(id))
	default:
		return WriteInt(w, int32(id))
	}
}

func ReadKeepAliveID(r Reader, ver *version.Version) (int64, error) {
	switch {
	case ver.MoreOrEqual(version.V1_12_2):
		return ReadLong(r)
	case ver.MoreOrEqual(version.V1_8):
		id, err := ReadVarInt(r)
		return int64(id), err
	default:
		id, err := ReadInt(r)
		return int64(id), err
	}
}

// WriteTrailingBytes writes opaque data closing a packet: Short length
// prefixed on 1.7, unprefixed rest-of-packet afterwards.
func WriteTrailingBytes(w io.Writer, data []byte, ver *version.Version) error {
	if ver.Less(version.V1_8) {
		if len(data) > 0x7FFF {
			return ErrLegacyDataTooLong
		}
		if err := WriteShort(w, int16(len(data))); err != nil {
			return err
		}
	}
	return WriteRemainingBytes(w, data)
}

func ReadTrailingBytes(r Reader, ver *version.Version) ([]byte, error) {
	if ver.MoreOrEqual(version.V1_8) {
		return ReadRemainingBytes(r)
	}

	length, err := ReadShort(r)
	if err != nil {
		return nil, err
	}
	if length < 0 {
		return nil, ErrNegativeLength
	}
	b, err := r.Next(int(length))
	if err != nil {
		return nil, err
	}
	data := make([]byte, len(b))
	copy(data, b)
	return data, nil
}

// WritePosition packs X(26) Z(26) Y(12) from 1.14 on, X(26) Y(12) Z(26) before.
func WritePosition(w io.Writer, p Position, ver *version.Version) error {
	x := uint64(p.X) & 0x3FFFFFF
	y := uint64(p.Y) & 0xFFF
	z := uint64(p.Z) & 0x3FFFFFF

	var packed uint64
	if ver.MoreOrEqual(version.V1_14) {
		packed = x<<38 | z<<12 | y
	} else {
		packed = x<<38 | y<<26 | z
	}
	return WriteLong(w, int64(packed))
}

func ReadPosition(r Reader, ver *version.Version) (p Position, err error) {
	l, err := ReadLong(r)
	if err != nil {
		return
	}

	// Shifting the signed value sign-extends each component.
	p.X = int32(l >> 38)
	if ver.MoreOrEqual(version.V1_14) {
		p.Z = int32(l << 26 >> 38)
		p.Y = int16(l << 52 >> 52)
	} else {
		p.Y = int16(l << 26 >> 52)
		p.Z = int32(l << 38 >> 38)
	}
	return
}
