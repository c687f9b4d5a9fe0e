package packet

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/Tnze/go-mc/chat"

	"github.com/gstoney/mclimbo/version"
)

// ParseText reads a user supplied message: a JSON chat component when it
// looks like one, plain text otherwise.
func ParseText(s string) (chat.Message, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return chat.Text(""), nil
	}

	switch trimmed[0] {
	case '{', '[', '"':
		var msg chat.Message
		if err := json.Unmarshal([]byte(trimmed), &msg); err != nil {
			return chat.Message{}, fmt.Errorf("parse text component: %w", err)
		}
		return msg, nil
	}
	return chat.Text(s), nil
}

// TextJSON renders msg as the JSON form used by status responses and login
// disconnects.
func TextJSON(msg chat.Message) (string, error) {
	b, err := json.Marshal(msg)
	return string(b), err
}

// WriteText writes a chat component: a JSON string before TextNBT, a
// nameless NBT tag from TextNBT on.
func WriteText(w io.Writer, msg chat.Message, ver *version.Version) error {
	raw, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	if ver.Less(TextNBT) {
		return WriteString(w, string(raw))
	}

	tree, err := textTree(raw)
	if err != nil {
		return err
	}
	return WriteCompoundTag(w, tree, ver)
}

func ReadText(b *Buffer, ver *version.Version) (msg chat.Message, err error) {
	var raw []byte
	if ver.Less(TextNBT) {
		var s string
		if s, err = ReadString(b); err != nil {
			return
		}
		raw = []byte(s)
	} else {
		var tree any
		if err = ReadCompoundTag(b, &tree, ver); err != nil {
			return
		}
		if raw, err = json.Marshal(jsonTree(tree)); err != nil {
			return
		}
	}

	err = json.Unmarshal(raw, &msg)
	return
}

// textTree turns component JSON into values go-mc encodes as the tags
// vanilla uses: compounds, lists of compounds, strings, ints, doubles and
// bytes for booleans.
func textTree(raw []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return nbtValue(v), nil
}

func nbtValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(v))
		for k, e := range v {
			m[k] = nbtValue(e)
		}
		return m
	case []any:
		strs := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				strs = append(strs, s)
			}
		}
		if len(strs) == len(v) && len(v) > 0 {
			return strs
		}

		// NBT lists are homogeneous; mixed component lists become compounds.
		list := make([]map[string]any, 0, len(v))
		for _, e := range v {
			switch e := nbtValue(e).(type) {
			case map[string]any:
				list = append(list, e)
			default:
				list = append(list, map[string]any{"text": fmt.Sprint(e)})
			}
		}
		return list
	case json.Number:
		if i, err := v.Int64(); err == nil && i >= math.MinInt32 && i <= math.MaxInt32 {
			return int32(i)
		}
		f, _ := v.Float64()
		return f
	case bool:
		if v {
			return int8(1)
		}
		return int8(0)
	default:
		return v
	}
}

// jsonTree is the inverse of textTree for values produced by go-mc's decoder.
func jsonTree(v any) any {
	switch v := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(v))
		for k, e := range v {
			m[k] = jsonTree(e)
		}
		return m
	case []any:
		list := make([]any, len(v))
		for i, e := range v {
			list[i] = jsonTree(e)
		}
		return list
	case []map[string]any:
		list := make([]any, len(v))
		for i, e := range v {
			list[i] = jsonTree(e)
		}
		return list
	case int8:
		return v != 0
	case uint8:
		return v != 0
	default:
		return v
	}
}
