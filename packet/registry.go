package packet

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/gstoney/mclimbo/version"
)

var (
	ErrUnregistered     = errors.New("packet has no id for this state, direction and version")
	ErrDecoderLeftBytes = errors.New("decoder did not read all bytes of packet")
)

// Mapping assigns a packet id from a version onwards. When To is nil the
// mapping lasts until the next mapping starts, or up to the newest version.
type Mapping struct {
	ID       int32
	From, To *version.Version
}

// m maps id from a version until the next mapping takes over.
func m(id int32, from *version.Version) Mapping {
	return Mapping{ID: id, From: from}
}

// mt maps id over the closed range [from, to].
func mt(id int32, from, to *version.Version) Mapping {
	return Mapping{ID: id, From: from, To: to}
}

type table struct {
	byID   map[int32]reflect.Type
	byType map[reflect.Type]int32
}

type registryKey struct {
	state     State
	direction Direction
	protocol  int32
}

// Registry resolves packet ids per state, direction and version. Mappings
// are expanded into one table per protocol at registration, so lookups are
// constant time. A Registry must be fully populated before it is shared;
// afterwards it is read only and safe for concurrent use.
type Registry struct {
	versions *version.Registry
	tables   map[registryKey]*table
}

func NewRegistry(versions *version.Registry) *Registry {
	return &Registry{
		versions: versions,
		tables:   make(map[registryKey]*table),
	}
}

func (r *Registry) table(s State, d Direction, v *version.Version, create bool) *table {
	key := registryKey{s, d, v.Protocol()}
	t, ok := r.tables[key]
	if !ok && create {
		t = &table{
			byID:   make(map[int32]reflect.Type),
			byType: make(map[reflect.Type]int32),
		}
		r.tables[key] = t
	}
	return t
}

// Register adds the packet kind of p under the given mappings. It panics
// when two kinds claim one id or one kind gets two ids at the same version.
func (r *Registry) Register(s State, d Direction, p Packet, mappings ...Mapping) {
	typ := reflect.TypeOf(p)
	if typ.Kind() != reflect.Pointer {
		panic(fmt.Sprintf("packet: register %s: packet must be a pointer", typ))
	}

	for i, mp := range mappings {
		to := mp.To
		if to == nil {
			to = r.versions.Max()
			if i+1 < len(mappings) {
				to = r.versions.Prev(mappings[i+1].From)
			}
		}
		if to == nil || to.Less(mp.From) {
			panic(fmt.Sprintf("packet: register %s: mapping 0x%02X starting at %s is empty", typ, mp.ID, mp.From))
		}

		for _, v := range r.versions.All() {
			if !v.FromTo(mp.From, to) {
				continue
			}

			t := r.table(s, d, v, true)
			if other, ok := t.byID[mp.ID]; ok {
				panic(fmt.Sprintf("packet: %s %s 0x%02X at %s claimed by %s and %s", s, d, mp.ID, v, other, typ))
			}
			if _, ok := t.byType[typ]; ok {
				panic(fmt.Sprintf("packet: %s has two ids at %s", typ, v))
			}
			t.byID[mp.ID] = typ
			t.byType[typ] = mp.ID
		}
	}
}

// ID returns the id of p's kind.
func (r *Registry) ID(s State, d Direction, v *version.Version, p Packet) (int32, bool) {
	t := r.table(s, d, v, false)
	if t == nil {
		return 0, false
	}
	id, ok := t.byType[reflect.TypeOf(p)]
	return id, ok
}

// New returns a zero packet of the kind registered under id, or nil.
func (r *Registry) New(s State, d Direction, v *version.Version, id int32) Packet {
	t := r.table(s, d, v, false)
	if t == nil {
		return nil
	}
	typ, ok := t.byID[id]
	if !ok {
		return nil
	}
	return reflect.New(typ.Elem()).Interface().(Packet)
}

// Encode serializes p as [VarInt id][body].
func (r *Registry) Encode(s State, d Direction, v *version.Version, p Packet) ([]byte, error) {
	id, ok := r.ID(s, d, v, p)
	if !ok {
		return nil, fmt.Errorf("%w: %T in %s %s at %s", ErrUnregistered, p, s, d, v)
	}

	b := NewBuffer(make([]byte, 0, 64))
	if err := WriteVarInt(b, id); err != nil {
		return nil, err
	}
	if err := p.Encode(b, v); err != nil {
		return nil, fmt.Errorf("encode %T: %w", p, err)
	}
	return b.Bytes(), nil
}

// Decode reads the id and body of payload. An id with no registered kind
// returns a nil packet and nil error so the caller can skip it. A packet is
// only returned when its body decoded completely.
func (r *Registry) Decode(s State, d Direction, v *version.Version, payload []byte) (int32, Packet, error) {
	b := NewBuffer(payload)

	id, err := ReadVarInt(b)
	if err != nil {
		return 0, nil, fmt.Errorf("read packet id: %w", err)
	}

	p := r.New(s, d, v, id)
	if p == nil {
		return id, nil, nil
	}
	if err = p.Decode(b, v); err != nil {
		return id, nil, fmt.Errorf("decode %T (0x%02X): %w", p, id, err)
	}
	if b.Remaining() > 0 {
		return id, nil, fmt.Errorf("decode %T (0x%02X): %w: %d left", p, id, ErrDecoderLeftBytes, b.Remaining())
	}
	return id, p, nil
}
