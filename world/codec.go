package world

import (
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/Tnze/go-mc/nbt"

	"github.com/gstoney/mclimbo/version"
)

const (
	DimensionTypeRegistry   = "minecraft:dimension_type"
	BiomeRegistry           = "minecraft:worldgen/biome"
	ChatTypeRegistry        = "minecraft:chat_type"
	DamageTypeRegistry      = "minecraft:damage_type"
	TrimPatternRegistry     = "minecraft:trim_pattern"
	TrimMaterialRegistry    = "minecraft:trim_material"
	BannerPatternRegistry   = "minecraft:banner_pattern"
	PaintingVariantRegistry = "minecraft:painting_variant"
	WolfVariantRegistry     = "minecraft:wolf_variant"
	EnchantmentRegistry     = "minecraft:enchantment"
	JukeboxSongRegistry     = "minecraft:jukebox_song"
)

var (
	ErrUnknownDimension = errors.New("dimension not found in registry codec")
	ErrEmptyCodec       = errors.New("registry codec holds no registries")
	ErrMissingRegistry  = errors.New("registry codec lacks a registry the version needs")
)

// RequiredRegistries lists the registries a client of version v fails
// to join without. Versions before 1.16.2 have none in this layout.
func RequiredRegistries(v *version.Version) []string {
	if v.Less(version.V1_16_2) {
		return nil
	}
	regs := []string{DimensionTypeRegistry, BiomeRegistry}
	if v.MoreOrEqual(version.V1_19) {
		regs = append(regs, ChatTypeRegistry)
	}
	if v.MoreOrEqual(version.V1_19_4) {
		regs = append(regs, DamageTypeRegistry)
	}
	if v.MoreOrEqual(version.V1_20_5) {
		regs = append(regs, TrimPatternRegistry, TrimMaterialRegistry, BannerPatternRegistry,
			PaintingVariantRegistry, WolfVariantRegistry)
	}
	if v.MoreOrEqual(version.V1_21) {
		regs = append(regs, EnchantmentRegistry, JukeboxSongRegistry)
	}
	return regs
}

// codecFile is the layout of a registry codec: one compound per registry,
// each listing its entries with their network ids.
type codecFile map[string]codecRegistry

type codecRegistry struct {
	Type  string       `nbt:"type"`
	Value []codecEntry `nbt:"value"`
}

type codecEntry struct {
	Name    string         `nbt:"name"`
	ID      int32          `nbt:"id"`
	Element nbt.RawMessage `nbt:"element"`
}

// Registry is one synchronized registry in network id order.
type Registry struct {
	ID      string
	Entries []Entry
}

type Entry struct {
	Name    string
	ID      int32
	Element nbt.RawMessage
}

// Codec is a loaded registry codec. Raw is sent whole to clients before
// 1.20.5, Registries one by one from 1.20.5.
type Codec struct {
	Raw        nbt.RawMessage
	Registries []Registry
}

// Check reports the first registry v needs that c does not hold.
func (c *Codec) Check(v *version.Version) error {
	for _, id := range RequiredRegistries(v) {
		if !c.has(id) {
			return fmt.Errorf("%w: %s needs %s", ErrMissingRegistry, v, id)
		}
	}
	return nil
}

func (c *Codec) has(id string) bool {
	for _, r := range c.Registries {
		if r.ID == id {
			return true
		}
	}
	return false
}

// Find returns the entry name of registry id.
func (c *Codec) Find(id, name string) (Entry, bool) {
	for _, r := range c.Registries {
		if r.ID != id {
			continue
		}
		for _, e := range r.Entries {
			if e.Name == name {
				return e, true
			}
		}
	}
	return Entry{}, false
}

// LoadCodec reads a binary NBT registry codec, gzip compressed or not.
func LoadCodec(path string) (*Codec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := ParseCodec(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func ParseCodec(data []byte) (*Codec, error) {
	if len(data) > 2 && data[0] == 0x1f && data[1] == 0x8b {
		zr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		if data, err = io.ReadAll(zr); err != nil {
			return nil, err
		}
	}

	var c Codec
	if _, err := nbt.NewDecoder(bytes.NewReader(data)).Decode(&c.Raw); err != nil {
		return nil, fmt.Errorf("decode codec: %w", err)
	}

	var file codecFile
	if _, err := nbt.NewDecoder(bytes.NewReader(data)).Decode(&file); err != nil {
		return nil, fmt.Errorf("decode codec registries: %w", err)
	}
	if len(file) == 0 {
		return nil, ErrEmptyCodec
	}
	c.Registries = file.registries()
	return &c, nil
}

func (f codecFile) registries() []Registry {
	ids := make([]string, 0, len(f))
	for id := range f {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	regs := make([]Registry, 0, len(ids))
	for _, id := range ids {
		src := f[id]
		entries := make([]Entry, len(src.Value))
		for i, e := range src.Value {
			entries[i] = Entry(e)
		}
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
		regs = append(regs, Registry{ID: id, Entries: entries})
	}
	return regs
}

func rawOf(v any) (nbt.RawMessage, error) {
	data, err := nbt.Marshal(v)
	if err != nil {
		return nbt.RawMessage{}, err
	}
	var raw nbt.RawMessage
	err = nbt.Unmarshal(data, &raw)
	return raw, err
}
