package packet

import (
	"io"

	"github.com/Tnze/go-mc/nbt"

	"github.com/gstoney/mclimbo/version"
)

// @gen
type FinishConfiguration struct{}

type KnownPack struct {
	Namespace string
	ID        string
	Version   string
}

func writeKnownPack(w io.Writer, v KnownPack) (err error) {
	if err = WriteString(w, v.Namespace); err != nil {
		return
	}
	if err = WriteString(w, v.ID); err != nil {
		return
	}
	err = WriteString(w, v.Version)
	return
}

func readKnownPack(r Reader) (v KnownPack, err error) {
	if v.Namespace, err = ReadString(r); err != nil {
		return
	}
	if v.ID, err = ReadString(r); err != nil {
		return
	}
	v.Version, err = ReadString(r)
	return
}

// KnownPacks is sent by both sides from 1.20.5 to agree on the data packs
// whose registry contents need not be transferred.
//
// @gen
type KnownPacks struct {
	Packs []KnownPack `field:"PrefixedArray" write:"writeKnownPack" read:"readKnownPack"`
}

// RegistryEntry is one element of a synchronized registry. Data is absent
// when the client already knows the entry through a known pack.
type RegistryEntry struct {
	ID   string
	Data Optional[nbt.RawMessage]
}

// RegistryData carries registry contents to the client. From 1.20.2 to
// 1.20.4 one packet holds the whole codec compound; from 1.20.5 each
// registry is sent on its own as RegistryID plus entries.
type RegistryData struct {
	Codec nbt.RawMessage

	RegistryID string
	Entries    []RegistryEntry
}

func (p *RegistryData) Encode(b *Buffer, v *version.Version) (err error) {
	if v.Less(version.V1_20_5) {
		return WriteCompoundTag(b, p.Codec, v)
	}

	if err = WriteString(b, p.RegistryID); err != nil {
		return
	}
	writeData := func(w io.Writer, m nbt.RawMessage) error {
		return WriteCompoundTag(w, m, v)
	}
	err = WritePrefixedArray(b, p.Entries, func(w io.Writer, e RegistryEntry) (err error) {
		if err = WriteString(w, e.ID); err != nil {
			return
		}
		return WriteOptional(w, e.Data, writeData)
	})
	return
}

func (p *RegistryData) Decode(b *Buffer, v *version.Version) (err error) {
	if v.Less(version.V1_20_5) {
		return ReadCompoundTag(b, &p.Codec, v)
	}

	if p.RegistryID, err = ReadString(b); err != nil {
		return
	}
	readData := func(Reader) (m nbt.RawMessage, err error) {
		err = ReadCompoundTag(b, &m, v)
		return
	}
	p.Entries, err = ReadPrefixedArray(b, func(r Reader) (e RegistryEntry, err error) {
		if e.ID, err = ReadString(r); err != nil {
			return
		}
		e.Data, err = ReadOptional(r, readData)
		return
	})
	return
}
