package packet

import (
	"reflect"
	"testing"

	"github.com/Tnze/go-mc/chat"

	"github.com/gstoney/mclimbo/version"
)

func TestParseText(t *testing.T) {
	tests := []struct {
		desc string
		in   string
		want chat.Message
	}{
		{
			desc: "Plain text",
			in:   "Welcome to limbo",
			want: chat.Text("Welcome to limbo"),
		},
		{
			desc: "Empty",
			in:   "   ",
			want: chat.Text(""),
		},
		{
			desc: "JSON component",
			in:   `{"text":"Hold on","color":"gold"}`,
			want: chat.Message{Text: "Hold on", Color: "gold"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.desc, func(t *testing.T) {
			got, err := ParseText(tc.in)
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("got %#v, want %#v", got, tc.want)
			}
		})
	}

	if _, err := ParseText(`{"text":`); err == nil {
		t.Error("expected error for broken JSON")
	}
}

func TestText_Representation(t *testing.T) {
	msg := chat.Text("limbo")

	buf := NewBuffer(nil)
	if err := WriteText(buf, msg, version.V1_20_2); err != nil {
		t.Fatal(err)
	}
	s, err := ReadString(buf)
	if err != nil {
		t.Fatalf("1.20.2 text is not a JSON string: %v", err)
	}
	if s != `{"text":"limbo"}` {
		t.Errorf("got %s", s)
	}

	buf = NewBuffer(nil)
	if err := WriteText(buf, msg, version.V1_20_3); err != nil {
		t.Fatal(err)
	}
	if tag, _ := buf.ReadByte(); tag != 0x0A {
		t.Errorf("1.20.3 text should start with a compound tag, got %#x", tag)
	}
}

func TestText_Roundtrip(t *testing.T) {
	messages := []chat.Message{
		chat.Text("plain"),
		{Text: "colored", Color: "red"},
		{Text: "parent", Extra: []chat.Message{{Text: "child"}, {Text: "sibling", Color: "gray"}}},
	}

	for _, v := range []*version.Version{version.V1_8, version.V1_20_2, version.V1_20_3, version.V1_21_4} {
		for _, msg := range messages {
			buf := NewBuffer(nil)
			if err := WriteText(buf, msg, v); err != nil {
				t.Fatalf("%s: %v", v, err)
			}
			got, err := ReadText(buf, v)
			if err != nil {
				t.Fatalf("%s: %v", v, err)
			}
			if !reflect.DeepEqual(got, msg) {
				t.Errorf("%s: got %#v, want %#v", v, got, msg)
			}
			if buf.Remaining() != 0 {
				t.Errorf("%s: %d bytes left", v, buf.Remaining())
			}
		}
	}
}
