package world

import (
	"github.com/Tnze/go-mc/nbt"

	"github.com/gstoney/mclimbo/version"
)

// builtinEra is a version range sharing one built in codec layout.
type builtinEra struct {
	from, to *version.Version
	build    func() (*Codec, error)
}

// builtinEras cover every version that takes a codec up to 1.20.4. From
// 1.20.5 clients check the synchronized registries against their own data
// pack, which a limbo cannot reproduce; those versions need a codec file.
var builtinEras = []builtinEra{
	{version.V1_16, version.V1_16_1, legacyCodec},
	{version.V1_16_2, version.V1_17_1, layout{}.codec},
	{version.V1_18, version.V1_18, layout{tall: true}.codec},
	{version.V1_18_2, version.V1_18_2, layout{tall: true, tagInfiniburn: true}.codec},
	{version.V1_19, version.V1_19, layout{tall: true, tagInfiniburn: true, chat: chatTypes1_19}.codec},
	{version.V1_19_1, version.V1_19_3, layout{tall: true, tagInfiniburn: true, chat: chatTypes1_19_1}.codec},
	{version.V1_19_4, version.V1_19_4, layout{tall: true, tagInfiniburn: true, chat: chatTypes1_19_1, damage: damageTypes1_19_4, trims: true}.codec},
	{version.V1_20, version.V1_20_3, layout{tall: true, tagInfiniburn: true, chat: chatTypes1_19_1, damage: damageTypes1_20, trims: true}.codec},
}

// layout selects what differs between built in codecs. Elements always
// carry the union of the fields their era range reads; clients ignore
// fields they do not know.
type layout struct {
	// tall worlds span -64 to 320 in the overworld (1.18+).
	tall bool
	// tagInfiniburn prefixes infiniburn block tags with '#' (1.18.2+).
	tagInfiniburn bool
	chat          func() []namedElement
	damage        func() []namedElement
	// trims adds the empty armor trim registries (1.19.4+).
	trims bool
}

type namedElement struct {
	name    string
	element any
}

type dimensionType struct {
	// Name is only set inside the 1.16 list layout.
	Name                        string  `nbt:"name,omitempty"`
	PiglinSafe                  bool    `nbt:"piglin_safe"`
	Natural                     bool    `nbt:"natural"`
	AmbientLight                float32 `nbt:"ambient_light"`
	FixedTime                   int64   `nbt:"fixed_time,omitempty"`
	Infiniburn                  string  `nbt:"infiniburn"`
	RespawnAnchorWorks          bool    `nbt:"respawn_anchor_works"`
	HasSkylight                 bool    `nbt:"has_skylight"`
	BedWorks                    bool    `nbt:"bed_works"`
	Effects                     string  `nbt:"effects"`
	HasRaids                    bool    `nbt:"has_raids"`
	MinY                        int32   `nbt:"min_y"`
	Height                      int32   `nbt:"height"`
	LogicalHeight               int32   `nbt:"logical_height"`
	CoordinateScale             float64 `nbt:"coordinate_scale"`
	Ultrawarm                   bool    `nbt:"ultrawarm"`
	HasCeiling                  bool    `nbt:"has_ceiling"`
	Shrunk                      bool    `nbt:"shrunk"`
	MonsterSpawnLightLevel      int32   `nbt:"monster_spawn_light_level"`
	MonsterSpawnBlockLightLimit int32   `nbt:"monster_spawn_block_light_limit"`
}

type biomeEffects struct {
	SkyColor      int32 `nbt:"sky_color"`
	WaterFogColor int32 `nbt:"water_fog_color"`
	FogColor      int32 `nbt:"fog_color"`
	WaterColor    int32 `nbt:"water_color"`
}

type biome struct {
	HasPrecipitation bool         `nbt:"has_precipitation"`
	Precipitation    string       `nbt:"precipitation"`
	Temperature      float32      `nbt:"temperature"`
	Downfall         float32      `nbt:"downfall"`
	Depth            float32      `nbt:"depth"`
	Scale            float32      `nbt:"scale"`
	Category         string       `nbt:"category"`
	Effects          biomeEffects `nbt:"effects"`
}

var plains = biome{
	HasPrecipitation: true, Precipitation: "rain", Temperature: 0.8, Downfall: 0.4,
	Depth: 0.125, Scale: 0.05, Category: "plains",
	Effects: biomeEffects{SkyColor: 7907327, WaterFogColor: 329011, FogColor: 12638463, WaterColor: 4159204},
}

func (l layout) dimensionTypes() []namedElement {
	burn := func(name string) string {
		if l.tagInfiniburn {
			return "#minecraft:" + name
		}
		return "minecraft:" + name
	}
	overworld := dimensionType{
		Natural: true, Infiniburn: burn("infiniburn_overworld"), HasSkylight: true, BedWorks: true,
		Effects: "minecraft:overworld", HasRaids: true, Height: 256, LogicalHeight: 256,
		CoordinateScale: 1, MonsterSpawnLightLevel: 7,
	}
	if l.tall {
		overworld.MinY, overworld.Height, overworld.LogicalHeight = -64, 384, 384
	}

	return []namedElement{
		{"minecraft:overworld", overworld},
		{"minecraft:the_nether", dimensionType{
			PiglinSafe: true, AmbientLight: 0.1, FixedTime: 18000, Infiniburn: burn("infiniburn_nether"),
			RespawnAnchorWorks: true, Effects: "minecraft:the_nether", Height: 256, LogicalHeight: 128,
			CoordinateScale: 8, Ultrawarm: true, HasCeiling: true, Shrunk: true,
			MonsterSpawnLightLevel: 7, MonsterSpawnBlockLightLimit: 15,
		}},
		{"minecraft:the_end", dimensionType{
			FixedTime: 6000, Infiniburn: burn("infiniburn_end"), Effects: "minecraft:the_end",
			HasRaids: true, Height: 256, LogicalHeight: 256, CoordinateScale: 1,
			MonsterSpawnLightLevel: 7,
		}},
	}
}

// legacyCodec is the 1.16 and 1.16.1 layout: a single list of named
// dimension types under "dimension".
func legacyCodec() (*Codec, error) {
	dims := layout{}.dimensionTypes()

	root := struct {
		Dimension []dimensionType `nbt:"dimension"`
	}{}
	reg := Registry{ID: DimensionTypeRegistry}
	for i, d := range dims {
		dt := d.element.(dimensionType)
		raw, err := rawOf(dt)
		if err != nil {
			return nil, err
		}
		reg.Entries = append(reg.Entries, Entry{Name: d.name, ID: int32(i), Element: raw})

		dt.Name = d.name
		root.Dimension = append(root.Dimension, dt)
	}

	raw, err := rawOf(root)
	if err != nil {
		return nil, err
	}
	return &Codec{Raw: raw, Registries: []Registry{reg}}, nil
}

func (l layout) codec() (*Codec, error) {
	regs := map[string][]namedElement{
		DimensionTypeRegistry: l.dimensionTypes(),
		BiomeRegistry:         {{"minecraft:plains", plains}},
	}
	if l.chat != nil {
		regs[ChatTypeRegistry] = l.chat()
	}
	if l.damage != nil {
		regs[DamageTypeRegistry] = l.damage()
	}
	if l.trims {
		regs[TrimPatternRegistry] = nil
		regs[TrimMaterialRegistry] = nil
	}

	file := codecFile{}
	for id, elems := range regs {
		reg := codecRegistry{Type: id, Value: []codecEntry{}}
		for i, e := range elems {
			raw, err := rawOf(e.element)
			if err != nil {
				return nil, err
			}
			reg.Value = append(reg.Value, codecEntry{Name: e.name, ID: int32(i), Element: raw})
		}
		file[id] = reg
	}

	data, err := nbt.Marshal(file)
	if err != nil {
		return nil, err
	}
	return ParseCodec(data)
}

func decoration(key string) map[string]any {
	return map[string]any{
		"translation_key": key,
		"parameters":      []string{"sender", "content"},
		"style":           map[string]any{},
	}
}

// chatTypes1_19 lists chat, system and game_info in the ids SystemChat
// positions use on 1.19.
func chatTypes1_19() []namedElement {
	return []namedElement{
		{"minecraft:chat", map[string]any{
			"chat":      map[string]any{"decoration": decoration("chat.type.text")},
			"narration": map[string]any{"decoration": decoration("chat.type.text.narrate"), "priority": "chat"},
		}},
		{"minecraft:system", map[string]any{
			"chat":      map[string]any{},
			"narration": map[string]any{"priority": "system"},
		}},
		{"minecraft:game_info", map[string]any{
			"overlay": map[string]any{},
		}},
	}
}

func chatTypes1_19_1() []namedElement {
	return []namedElement{
		{"minecraft:chat", map[string]any{
			"chat":      decoration("chat.type.text"),
			"narration": decoration("chat.type.text.narrate"),
		}},
	}
}

type damageType struct {
	MessageID  string  `nbt:"message_id"`
	Scaling    string  `nbt:"scaling"`
	Exhaustion float32 `nbt:"exhaustion"`
}

type damageSpec struct {
	name       string
	messageID  string
	exhaustion float32
}

var damageTypes1_19_4Specs = []damageSpec{
	{"arrow", "arrow", 0.1},
	{"bad_respawn_point", "badRespawnPoint", 0.1},
	{"cactus", "cactus", 0.1},
	{"cramming", "cramming", 0},
	{"dragon_breath", "dragonBreath", 0},
	{"drown", "drown", 0},
	{"dry_out", "dryout", 0.1},
	{"explosion", "explosion", 0.1},
	{"fall", "fall", 0},
	{"falling_anvil", "anvil", 0.1},
	{"falling_block", "fallingBlock", 0.1},
	{"falling_stalactite", "fallingStalactite", 0.1},
	{"fireball", "fireball", 0.1},
	{"fireworks", "fireworks", 0.1},
	{"fly_into_wall", "flyIntoWall", 0},
	{"freeze", "freeze", 0},
	{"generic", "generic", 0},
	{"hot_floor", "hotFloor", 0.1},
	{"in_fire", "inFire", 0.1},
	{"in_wall", "inWall", 0},
	{"indirect_magic", "indirectMagic", 0},
	{"lava", "lava", 0.1},
	{"lightning_bolt", "lightningBolt", 0.1},
	{"magic", "magic", 0},
	{"mob_attack", "mob", 0.1},
	{"mob_attack_no_aggro", "mob", 0.1},
	{"mob_projectile", "mob", 0.1},
	{"on_fire", "onFire", 0},
	{"out_of_world", "outOfWorld", 0},
	{"player_attack", "player", 0.1},
	{"player_explosion", "explosion.player", 0.1},
	{"sonic_boom", "sonic_boom", 0},
	{"stalagmite", "stalagmite", 0},
	{"starve", "starve", 0},
	{"sting", "sting", 0.1},
	{"sweet_berry_bush", "sweetBerryBush", 0.1},
	{"thorns", "thorns", 0.1},
	{"thrown", "thrown", 0.1},
	{"trident", "trident", 0.1},
	{"unattributed_fireball", "onFire", 0.1},
	{"wither", "wither", 0},
	{"wither_skull", "witherSkull", 0.1},
}

func damageTypes(specs ...damageSpec) func() []namedElement {
	return func() []namedElement {
		elems := make([]namedElement, len(specs))
		for i, d := range specs {
			elems[i] = namedElement{"minecraft:" + d.name, damageType{
				MessageID:  d.messageID,
				Scaling:    "when_caused_by_living_non_player",
				Exhaustion: d.exhaustion,
			}}
		}
		return elems
	}
}

var (
	damageTypes1_19_4 = damageTypes(damageTypes1_19_4Specs...)
	damageTypes1_20   = damageTypes(append(append([]damageSpec{}, damageTypes1_19_4Specs...),
		damageSpec{"generic_kill", "genericKill", 0},
		damageSpec{"outside_border", "outsideBorder", 0},
	)...)
)
