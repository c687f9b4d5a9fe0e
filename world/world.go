// Package world holds what a limbo sends about the world it keeps players
// in: the registry codec for each client version, the dimension and the
// spawn point.
package world

import (
	"fmt"

	"github.com/gstoney/mclimbo/packet"
	"github.com/gstoney/mclimbo/version"
)

// CodecFile serves the binary NBT codec at Path to clients from From to To,
// both inclusive. Files take precedence over the built in codecs.
type CodecFile struct {
	From, To *version.Version
	Path     string
}

type Options struct {
	Codecs    []CodecFile
	Dimension string
	Spawn     [3]float64
	GameMode  byte
}

// era is the codec served to a range of versions and the configured
// dimension resolved in it.
type era struct {
	from, to  *version.Version
	codec     *Codec
	dimension Entry
}

type World struct {
	files     []era
	builtin   []era
	dimension string
	legacyID  int32
	spawn     [3]float64
	gameMode  byte
}

// New loads every codec file, builds the built in codecs and resolves the
// dimension in each of them. A codec lacking a registry its versions need
// fails New.
func New(opts Options) (*World, error) {
	w := &World{
		dimension: opts.Dimension,
		legacyID:  legacyDimensionID(opts.Dimension),
		spawn:     opts.Spawn,
		gameMode:  opts.GameMode,
	}

	for _, f := range opts.Codecs {
		codec, err := LoadCodec(f.Path)
		if err != nil {
			return nil, err
		}
		e, err := w.era(f.From, f.To, codec)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.Path, err)
		}
		w.files = append(w.files, e)
	}

	for _, b := range builtinEras {
		codec, err := b.build()
		if err != nil {
			return nil, fmt.Errorf("built in codec %s-%s: %w", b.from, b.to, err)
		}
		e, err := w.era(b.from, b.to, codec)
		if err != nil {
			return nil, err
		}
		w.builtin = append(w.builtin, e)
	}
	return w, nil
}

func (w *World) era(from, to *version.Version, codec *Codec) (era, error) {
	if err := codec.Check(from); err != nil {
		return era{}, err
	}
	if err := codec.Check(to); err != nil {
		return era{}, err
	}
	dim, ok := codec.Find(DimensionTypeRegistry, w.dimension)
	if !ok {
		return era{}, fmt.Errorf("%w: %s", ErrUnknownDimension, w.dimension)
	}
	return era{from: from, to: to, codec: codec, dimension: dim}, nil
}

// legacyDimensionID is the numeric dimension clients before 1.16 know.
func legacyDimensionID(name string) int32 {
	switch name {
	case "minecraft:the_nether":
		return -1
	case "minecraft:the_end":
		return 1
	}
	return 0
}

func (w *World) eraOf(v *version.Version) (era, bool) {
	for _, list := range [][]era{w.files, w.builtin} {
		for _, e := range list {
			if v.FromTo(e.from, e.to) {
				return e, true
			}
		}
	}
	return era{}, false
}

// Supports reports whether the world can be sent to v. Versions before 1.16
// need no codec.
func (w *World) Supports(v *version.Version) bool {
	if !v.IsSupported() {
		return false
	}
	if v.Less(version.V1_16) {
		return true
	}
	_, ok := w.eraOf(v)
	return ok
}

// Unsupported lists the versions of reg the world cannot be sent to.
func (w *World) Unsupported(reg *version.Registry) []*version.Version {
	var out []*version.Version
	for _, v := range reg.All() {
		if !w.Supports(v) {
			out = append(out, v)
		}
	}
	return out
}

func (w *World) Dimension() string {
	return w.dimension
}

// RegistryData returns the configuration state packets carrying the codec:
// one for 1.20.2 to 1.20.4, one per registry from 1.20.5. It returns nil
// when v is not supported.
func (w *World) RegistryData(v *version.Version) []packet.Packet {
	e, ok := w.eraOf(v)
	if !ok {
		return nil
	}
	if v.Less(version.V1_20_5) {
		return []packet.Packet{&packet.RegistryData{Codec: e.codec.Raw}}
	}

	pkts := make([]packet.Packet, 0, len(e.codec.Registries))
	for _, r := range e.codec.Registries {
		p := &packet.RegistryData{RegistryID: r.ID}
		for _, entry := range r.Entries {
			p.Entries = append(p.Entries, packet.RegistryEntry{
				ID:   entry.Name,
				Data: packet.Some(entry.Element),
			})
		}
		pkts = append(pkts, p)
	}
	return pkts
}

// JoinGame builds the join packet for v. Only the fields v sends matter.
func (w *World) JoinGame(v *version.Version, entityID, maxPlayers int32) *packet.JoinGame {
	e, _ := w.eraOf(v)
	p := &packet.JoinGame{
		EntityID:            entityID,
		GameMode:            w.gameMode,
		PreviousGameMode:    -1,
		DimensionType:       w.dimension,
		Dimension:           e.dimension.Element,
		WorldNames:          []string{w.dimension},
		WorldName:           w.dimension,
		MaxPlayers:          maxPlayers,
		LevelType:           "flat",
		ViewDistance:        2,
		SimulationDistance:  2,
		EnableRespawnScreen: true,
		IsFlat:              true,
		SeaLevel:            63,
	}
	if e.codec != nil {
		p.DimensionCodec = e.codec.Raw
	}

	switch {
	case v.Less(version.V1_16):
		p.DimensionID = w.legacyID
	case v.MoreOrEqual(version.V1_20_5):
		p.DimensionID = e.dimension.ID
	}
	return p
}

// SpawnPosition is the absolute position the player is held at.
func (w *World) SpawnPosition() *packet.PlayerPositionAndLook {
	return &packet.PlayerPositionAndLook{
		TeleportID: 1,
		X:          w.spawn[0],
		Y:          w.spawn[1],
		Z:          w.spawn[2],
	}
}
