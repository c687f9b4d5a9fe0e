package packet

import (
	"math"

	"github.com/Tnze/go-mc/nbt"

	"github.com/gstoney/mclimbo/version"
)

const hardcoreBit = 0x08

// DeathLocation is where the player last died, sent from 1.19.
type DeathLocation struct {
	Dimension string
	Location  Position
}

// JoinGame moves the client into the play state. Its layout went through
// four eras:
//
//   - before 1.16 the dimension is a number and the level type a string
//   - 1.16 to 1.20.1 the dimension is an identifier (an NBT compound from
//     1.16.2 to 1.18.2) and the dimension codec travels with the packet
//   - 1.20.2 to 1.21.4 the codec moved to the configuration state and the
//     fields were reordered; 1.20.5 turns the dimension type into a registry id
//
// Fields not sent by a version are left untouched by Decode.
type JoinGame struct {
	EntityID         int32
	Hardcore         bool
	GameMode         byte
	PreviousGameMode int8

	// DimensionID is the numeric dimension before 1.16 and the dimension
	// type registry id from 1.20.5.
	DimensionID int32
	// DimensionType is the dimension type identifier for 1.16, 1.16.1 and
	// 1.19 to 1.20.4.
	DimensionType string
	// Dimension is the dimension type compound for 1.16.2 to 1.18.2.
	Dimension nbt.RawMessage
	// DimensionCodec is the registry codec for 1.16 to 1.20.1.
	DimensionCodec nbt.RawMessage

	WorldNames []string
	WorldName  string
	HashedSeed int64

	Difficulty byte
	MaxPlayers int32
	LevelType  string

	ViewDistance       int32
	SimulationDistance int32

	ReducedDebugInfo    bool
	EnableRespawnScreen bool
	DoLimitedCrafting   bool
	IsDebug             bool
	IsFlat              bool

	DeathLocation      Optional[DeathLocation]
	PortalCooldown     int32
	SeaLevel           int32
	EnforcesSecureChat bool
}

func (p *JoinGame) Encode(b *Buffer, v *version.Version) error {
	if err := WriteInt(b, p.EntityID); err != nil {
		return err
	}

	switch {
	case v.Less(version.V1_16):
		return p.encodeLegacy(b, v)
	case v.Less(version.V1_20_2):
		return p.encodeCodec(b, v)
	default:
		return p.encodeConfigured(b, v)
	}
}

func (p *JoinGame) Decode(b *Buffer, v *version.Version) (err error) {
	if p.EntityID, err = ReadInt(b); err != nil {
		return
	}

	switch {
	case v.Less(version.V1_16):
		return p.decodeLegacy(b, v)
	case v.Less(version.V1_20_2):
		return p.decodeCodec(b, v)
	default:
		return p.decodeConfigured(b, v)
	}
}

func (p *JoinGame) legacyGameMode() byte {
	gm := p.GameMode
	if p.Hardcore {
		gm |= hardcoreBit
	}
	return gm
}

func (p *JoinGame) setLegacyGameMode(gm byte) {
	p.Hardcore = gm&hardcoreBit != 0
	p.GameMode = gm &^ hardcoreBit
}

func clampByte(n int32) byte {
	if n < 0 {
		return 0
	}
	if n > math.MaxUint8 {
		return math.MaxUint8
	}
	return byte(n)
}

func (p *JoinGame) encodeLegacy(b *Buffer, v *version.Version) (err error) {
	if err = WriteByte(b, p.legacyGameMode()); err != nil {
		return
	}
	if v.MoreOrEqual(version.V1_9_1) {
		err = WriteInt(b, p.DimensionID)
	} else {
		err = WriteSignedByte(b, int8(p.DimensionID))
	}
	if err != nil {
		return
	}
	if v.MoreOrEqual(version.V1_15) {
		if err = WriteLong(b, p.HashedSeed); err != nil {
			return
		}
	}
	if v.Less(version.V1_14) {
		if err = WriteByte(b, p.Difficulty); err != nil {
			return
		}
	}
	if err = WriteByte(b, clampByte(p.MaxPlayers)); err != nil {
		return
	}
	if err = WriteString(b, p.LevelType); err != nil {
		return
	}
	if v.MoreOrEqual(version.V1_14) {
		if err = WriteVarInt(b, p.ViewDistance); err != nil {
			return
		}
	}
	if v.MoreOrEqual(version.V1_8) {
		if err = WriteBoolean(b, p.ReducedDebugInfo); err != nil {
			return
		}
	}
	if v.MoreOrEqual(version.V1_15) {
		err = WriteBoolean(b, p.EnableRespawnScreen)
	}
	return
}

func (p *JoinGame) decodeLegacy(b *Buffer, v *version.Version) (err error) {
	var gm byte
	if gm, err = ReadByte(b); err != nil {
		return
	}
	p.setLegacyGameMode(gm)

	if v.MoreOrEqual(version.V1_9_1) {
		if p.DimensionID, err = ReadInt(b); err != nil {
			return
		}
	} else {
		var dim int8
		if dim, err = ReadSignedByte(b); err != nil {
			return
		}
		p.DimensionID = int32(dim)
	}
	if v.MoreOrEqual(version.V1_15) {
		if p.HashedSeed, err = ReadLong(b); err != nil {
			return
		}
	}
	if v.Less(version.V1_14) {
		if p.Difficulty, err = ReadByte(b); err != nil {
			return
		}
	}
	var maxPlayers byte
	if maxPlayers, err = ReadByte(b); err != nil {
		return
	}
	p.MaxPlayers = int32(maxPlayers)
	if p.LevelType, err = ReadString(b); err != nil {
		return
	}
	if v.MoreOrEqual(version.V1_14) {
		if p.ViewDistance, err = ReadVarInt(b); err != nil {
			return
		}
	}
	if v.MoreOrEqual(version.V1_8) {
		if p.ReducedDebugInfo, err = ReadBoolean(b); err != nil {
			return
		}
	}
	if v.MoreOrEqual(version.V1_15) {
		p.EnableRespawnScreen, err = ReadBoolean(b)
	}
	return
}

func (p *JoinGame) encodeCodec(b *Buffer, v *version.Version) (err error) {
	if v.MoreOrEqual(version.V1_16_2) {
		if err = WriteBoolean(b, p.Hardcore); err != nil {
			return
		}
		if err = WriteByte(b, p.GameMode); err != nil {
			return
		}
	} else if err = WriteByte(b, p.legacyGameMode()); err != nil {
		return
	}
	if err = WriteSignedByte(b, p.PreviousGameMode); err != nil {
		return
	}
	if err = WritePrefixedArray(b, p.WorldNames, WriteString); err != nil {
		return
	}
	if err = WriteCompoundTag(b, p.DimensionCodec, v); err != nil {
		return
	}
	if v.FromTo(version.V1_16_2, version.V1_18_2) {
		err = WriteCompoundTag(b, p.Dimension, v)
	} else {
		err = WriteString(b, p.DimensionType)
	}
	if err != nil {
		return
	}
	if err = WriteString(b, p.WorldName); err != nil {
		return
	}
	if err = WriteLong(b, p.HashedSeed); err != nil {
		return
	}
	if v.MoreOrEqual(version.V1_16_2) {
		err = WriteVarInt(b, p.MaxPlayers)
	} else {
		err = WriteByte(b, clampByte(p.MaxPlayers))
	}
	if err != nil {
		return
	}
	if err = WriteVarInt(b, p.ViewDistance); err != nil {
		return
	}
	if v.MoreOrEqual(version.V1_18) {
		if err = WriteVarInt(b, p.SimulationDistance); err != nil {
			return
		}
	}
	for _, f := range []bool{p.ReducedDebugInfo, p.EnableRespawnScreen, p.IsDebug, p.IsFlat} {
		if err = WriteBoolean(b, f); err != nil {
			return
		}
	}
	if v.MoreOrEqual(version.V1_19) {
		if err = p.writeDeathLocation(b, v); err != nil {
			return
		}
	}
	if v.MoreOrEqual(version.V1_20) {
		err = WriteVarInt(b, p.PortalCooldown)
	}
	return
}

func (p *JoinGame) decodeCodec(b *Buffer, v *version.Version) (err error) {
	if v.MoreOrEqual(version.V1_16_2) {
		if p.Hardcore, err = ReadBoolean(b); err != nil {
			return
		}
		if p.GameMode, err = ReadByte(b); err != nil {
			return
		}
	} else {
		var gm byte
		if gm, err = ReadByte(b); err != nil {
			return
		}
		p.setLegacyGameMode(gm)
	}
	if p.PreviousGameMode, err = ReadSignedByte(b); err != nil {
		return
	}
	if p.WorldNames, err = ReadPrefixedArray(b, ReadString); err != nil {
		return
	}
	if err = ReadCompoundTag(b, &p.DimensionCodec, v); err != nil {
		return
	}
	if v.FromTo(version.V1_16_2, version.V1_18_2) {
		err = ReadCompoundTag(b, &p.Dimension, v)
	} else {
		p.DimensionType, err = ReadString(b)
	}
	if err != nil {
		return
	}
	if p.WorldName, err = ReadString(b); err != nil {
		return
	}
	if p.HashedSeed, err = ReadLong(b); err != nil {
		return
	}
	if v.MoreOrEqual(version.V1_16_2) {
		p.MaxPlayers, err = ReadVarInt(b)
	} else {
		var maxPlayers byte
		maxPlayers, err = ReadByte(b)
		p.MaxPlayers = int32(maxPlayers)
	}
	if err != nil {
		return
	}
	if p.ViewDistance, err = ReadVarInt(b); err != nil {
		return
	}
	if v.MoreOrEqual(version.V1_18) {
		if p.SimulationDistance, err = ReadVarInt(b); err != nil {
			return
		}
	}
	for _, f := range []*bool{&p.ReducedDebugInfo, &p.EnableRespawnScreen, &p.IsDebug, &p.IsFlat} {
		if *f, err = ReadBoolean(b); err != nil {
			return
		}
	}
	if v.MoreOrEqual(version.V1_19) {
		if err = p.readDeathLocation(b, v); err != nil {
			return
		}
	}
	if v.MoreOrEqual(version.V1_20) {
		p.PortalCooldown, err = ReadVarInt(b)
	}
	return
}

func (p *JoinGame) encodeConfigured(b *Buffer, v *version.Version) (err error) {
	if err = WriteBoolean(b, p.Hardcore); err != nil {
		return
	}
	if err = WritePrefixedArray(b, p.WorldNames, WriteString); err != nil {
		return
	}
	for _, n := range []int32{p.MaxPlayers, p.ViewDistance, p.SimulationDistance} {
		if err = WriteVarInt(b, n); err != nil {
			return
		}
	}
	for _, f := range []bool{p.ReducedDebugInfo, p.EnableRespawnScreen, p.DoLimitedCrafting} {
		if err = WriteBoolean(b, f); err != nil {
			return
		}
	}
	if v.MoreOrEqual(version.V1_20_5) {
		err = WriteVarInt(b, p.DimensionID)
	} else {
		err = WriteString(b, p.DimensionType)
	}
	if err != nil {
		return
	}
	if err = WriteString(b, p.WorldName); err != nil {
		return
	}
	if err = WriteLong(b, p.HashedSeed); err != nil {
		return
	}
	if err = WriteByte(b, p.GameMode); err != nil {
		return
	}
	if err = WriteSignedByte(b, p.PreviousGameMode); err != nil {
		return
	}
	if err = WriteBoolean(b, p.IsDebug); err != nil {
		return
	}
	if err = WriteBoolean(b, p.IsFlat); err != nil {
		return
	}
	if err = p.writeDeathLocation(b, v); err != nil {
		return
	}
	if err = WriteVarInt(b, p.PortalCooldown); err != nil {
		return
	}
	if v.MoreOrEqual(version.V1_21_2) {
		if err = WriteVarInt(b, p.SeaLevel); err != nil {
			return
		}
	}
	if v.MoreOrEqual(version.V1_20_5) {
		err = WriteBoolean(b, p.EnforcesSecureChat)
	}
	return
}

func (p *JoinGame) decodeConfigured(b *Buffer, v *version.Version) (err error) {
	if p.Hardcore, err = ReadBoolean(b); err != nil {
		return
	}
	if p.WorldNames, err = ReadPrefixedArray(b, ReadString); err != nil {
		return
	}
	for _, n := range []*int32{&p.MaxPlayers, &p.ViewDistance, &p.SimulationDistance} {
		if *n, err = ReadVarInt(b); err != nil {
			return
		}
	}
	for _, f := range []*bool{&p.ReducedDebugInfo, &p.EnableRespawnScreen, &p.DoLimitedCrafting} {
		if *f, err = ReadBoolean(b); err != nil {
			return
		}
	}
	if v.MoreOrEqual(version.V1_20_5) {
		p.DimensionID, err = ReadVarInt(b)
	} else {
		p.DimensionType, err = ReadString(b)
	}
	if err != nil {
		return
	}
	if p.WorldName, err = ReadString(b); err != nil {
		return
	}
	if p.HashedSeed, err = ReadLong(b); err != nil {
		return
	}
	if p.GameMode, err = ReadByte(b); err != nil {
		return
	}
	if p.PreviousGameMode, err = ReadSignedByte(b); err != nil {
		return
	}
	if p.IsDebug, err = ReadBoolean(b); err != nil {
		return
	}
	if p.IsFlat, err = ReadBoolean(b); err != nil {
		return
	}
	if err = p.readDeathLocation(b, v); err != nil {
		return
	}
	if p.PortalCooldown, err = ReadVarInt(b); err != nil {
		return
	}
	if v.MoreOrEqual(version.V1_21_2) {
		if p.SeaLevel, err = ReadVarInt(b); err != nil {
			return
		}
	}
	if v.MoreOrEqual(version.V1_20_5) {
		p.EnforcesSecureChat, err = ReadBoolean(b)
	}
	return
}

func (p *JoinGame) writeDeathLocation(b *Buffer, v *version.Version) error {
	if err := WriteBoolean(b, p.DeathLocation.Exists); err != nil || !p.DeathLocation.Exists {
		return err
	}
	if err := WriteString(b, p.DeathLocation.Item.Dimension); err != nil {
		return err
	}
	return WritePosition(b, p.DeathLocation.Item.Location, v)
}

func (p *JoinGame) readDeathLocation(b *Buffer, v *version.Version) (err error) {
	if p.DeathLocation.Exists, err = ReadBoolean(b); err != nil || !p.DeathLocation.Exists {
		return
	}
	if p.DeathLocation.Item.Dimension, err = ReadString(b); err != nil {
		return
	}
	p.DeathLocation.Item.Location, err = ReadPosition(b, v)
	return
}
