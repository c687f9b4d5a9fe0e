package packet

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/Tnze/go-mc/nbt"
	"github.com/google/uuid"

	"github.com/gstoney/mclimbo/version"
)

type nbtSample struct {
	A int32 `nbt:"a"`
}

func TestCompoundTag_RootName(t *testing.T) {
	body := []byte{0x03, 0x00, 0x01, 'a', 0x00, 0x00, 0x00, 0x01, 0x00}

	tests := []struct {
		desc string
		v    *version.Version
		ser  []byte
	}{
		{
			desc: "Named root on 1.7.2",
			v:    version.V1_7_2,
			ser:  append([]byte{0x0A, 0x00, 0x00}, body...),
		},
		{
			desc: "Named root on 1.20.1",
			v:    version.V1_20,
			ser:  append([]byte{0x0A, 0x00, 0x00}, body...),
		},
		{
			desc: "Nameless root on 1.20.2",
			v:    version.V1_20_2,
			ser:  append([]byte{0x0A}, body...),
		},
		{
			desc: "Nameless root on 1.21.4",
			v:    version.V1_21_4,
			ser:  append([]byte{0x0A}, body...),
		},
	}

	for _, tc := range tests {
		t.Run(tc.desc, func(t *testing.T) {
			buf := NewBuffer(nil)
			if err := WriteCompoundTag(buf, nbtSample{A: 1}, tc.v); err != nil {
				t.Fatalf("WriteCompoundTag: %v", err)
			}
			if !bytes.Equal(buf.Bytes(), tc.ser) {
				t.Fatalf("got % X, want % X", buf.Bytes(), tc.ser)
			}

			var got nbtSample
			if err := ReadCompoundTag(buf, &got, tc.v); err != nil {
				t.Fatalf("ReadCompoundTag: %v", err)
			}
			if got.A != 1 {
				t.Errorf("got %d, want 1", got.A)
			}
			if buf.Remaining() != 0 {
				t.Errorf("%d bytes left after tag", buf.Remaining())
			}
		})
	}
}

func TestCompoundTag_RawMessage(t *testing.T) {
	raw := nbt.RawMessage{Type: nbt.TagCompound, Data: []byte{0x03, 0x00, 0x01, 'a', 0x00, 0x00, 0x00, 0x05, 0x00}}

	for _, v := range []*version.Version{version.V1_16_2, version.V1_20_2} {
		buf := NewBuffer(nil)
		if err := WriteCompoundTag(buf, raw, v); err != nil {
			t.Fatalf("%s: WriteCompoundTag: %v", v, err)
		}

		var got nbtSample
		if err := ReadCompoundTag(buf, &got, v); err != nil {
			t.Fatalf("%s: ReadCompoundTag: %v", v, err)
		}
		if got.A != 5 {
			t.Errorf("%s: got %d, want 5", v, got.A)
		}
	}
}

func TestCompoundTag_Truncated(t *testing.T) {
	buf := NewBuffer(nil)
	if err := WriteCompoundTag(buf, nbtSample{A: 1}, version.V1_21_4); err != nil {
		t.Fatal(err)
	}
	ser := buf.Bytes()

	for n := 0; n < len(ser); n++ {
		var got nbtSample
		err := ReadCompoundTag(NewBuffer(ser[:n]), &got, version.V1_21_4)
		if err == nil {
			t.Errorf("decoding %d of %d bytes: expected error", n, len(ser))
		}
	}
}

func TestProfileUUID(t *testing.T) {
	id := uuid.MustParse("069a79f4-44e9-4726-a5be-fca90e38aaf5")

	tests := []struct {
		desc string
		v    *version.Version
		ser  []byte
	}{
		{
			desc: "Undashed string on 1.7.2",
			v:    version.V1_7_2,
			ser:  append([]byte{32}, "069a79f444e94726a5befca90e38aaf5"...),
		},
		{
			desc: "Dashed string on 1.8",
			v:    version.V1_8,
			ser:  append([]byte{36}, "069a79f4-44e9-4726-a5be-fca90e38aaf5"...),
		},
		{
			desc: "Binary on 1.16",
			v:    version.V1_16,
			ser:  id[:],
		},
	}

	for _, tc := range tests {
		t.Run(tc.desc, func(t *testing.T) {
			buf := NewBuffer(nil)
			if err := WriteProfileUUID(buf, id, tc.v); err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(buf.Bytes(), tc.ser) {
				t.Fatalf("got % X, want % X", buf.Bytes(), tc.ser)
			}

			got, err := ReadProfileUUID(buf, tc.v)
			if err != nil {
				t.Fatal(err)
			}
			if got != id {
				t.Errorf("got %s, want %s", got, id)
			}
		})
	}
}

func TestKeepAliveID(t *testing.T) {
	tests := []struct {
		desc string
		v    *version.Version
		ser  []byte
	}{
		{
			desc: "Int on 1.7.6",
			v:    version.V1_7_6,
			ser:  []byte{0x00, 0x00, 0x01, 0x2C},
		},
		{
			desc: "VarInt on 1.12.1",
			v:    version.V1_12_1,
			ser:  []byte{0xAC, 0x02},
		},
		{
			desc: "Long on 1.12.2",
			v:    version.V1_12_2,
			ser:  []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01, 0x2C},
		},
	}

	for _, tc := range tests {
		t.Run(tc.desc, func(t *testing.T) {
			buf := NewBuffer(nil)
			if err := WriteKeepAliveID(buf, 300, tc.v); err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(buf.Bytes(), tc.ser) {
				t.Fatalf("got % X, want % X", buf.Bytes(), tc.ser)
			}

			got, err := ReadKeepAliveID(buf, tc.v)
			if err != nil {
				t.Fatal(err)
			}
			if got != 300 {
				t.Errorf("got %d, want 300", got)
			}
		})
	}
}

func TestTrailingBytes(t *testing.T) {
	data := []byte("mclimbo")

	buf := NewBuffer(nil)
	if err := WriteTrailingBytes(buf, data, version.V1_7_6); err != nil {
		t.Fatal(err)
	}
	want := append([]byte{0x00, 0x07}, data...)
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("got % X, want % X", buf.Bytes(), want)
	}
	got, err := ReadTrailingBytes(buf, version.V1_7_6)
	if err != nil || !bytes.Equal(got, data) {
		t.Fatalf("ReadTrailingBytes = %q, %v", got, err)
	}

	buf = NewBuffer(nil)
	if err := WriteTrailingBytes(buf, data, version.V1_8); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(buf.Bytes(), data) {
		t.Fatalf("got % X, want % X", buf.Bytes(), data)
	}

	err = WriteTrailingBytes(NewBuffer(nil), make([]byte, 0x8000), version.V1_7_2)
	if !errors.Is(err, ErrLegacyDataTooLong) {
		t.Errorf("expected ErrLegacyDataTooLong, got %v", err)
	}

	_, err = ReadTrailingBytes(NewBuffer([]byte{0x00, 0x05, 0x01}), version.V1_7_2)
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("expected io.ErrUnexpectedEOF, got %v", err)
	}
}

func TestPosition(t *testing.T) {
	positions := []Position{
		{X: 0, Y: 0, Z: 0},
		{X: 100, Y: 64, Z: -200},
		{X: -33554432, Y: -2048, Z: 33554431},
		{X: 33554431, Y: 2047, Z: -1},
	}

	for _, v := range []*version.Version{version.V1_8, version.V1_13_2, version.V1_14, version.V1_21_4} {
		for _, p := range positions {
			buf := NewBuffer(nil)
			if err := WritePosition(buf, p, v); err != nil {
				t.Fatal(err)
			}
			got, err := ReadPosition(buf, v)
			if err != nil {
				t.Fatal(err)
			}
			if got != p {
				t.Errorf("%s: got %+v, want %+v", v, got, p)
			}
		}
	}
}

func TestPosition_Layout(t *testing.T) {
	p := Position{X: 1, Y: 2, Z: 3}

	buf := NewBuffer(nil)
	if err := WritePosition(buf, p, version.V1_13_2); err != nil {
		t.Fatal(err)
	}
	old, _ := ReadLong(buf)
	if want := int64(1)<<38 | int64(2)<<26 | 3; old != want {
		t.Errorf("1.13.2 layout: got %#x, want %#x", old, want)
	}

	buf = NewBuffer(nil)
	if err := WritePosition(buf, p, version.V1_14); err != nil {
		t.Fatal(err)
	}
	cur, _ := ReadLong(buf)
	if want := int64(1)<<38 | int64(3)<<12 | 2; cur != want {
		t.Errorf("1.14 layout: got %#x, want %#x", cur, want)
	}
}
