package packet

import (
	"github.com/gstoney/mclimbo/version"
)

var defaultRegistry = newDefaultRegistry()

// Default returns the registry of every packet the server speaks, for every
// version in the default catalog.
func Default() *Registry {
	return defaultRegistry
}

func newDefaultRegistry() *Registry {
	r := NewRegistry(version.Default())

	r.Register(Handshake, ServerBound, &HandshakePacket{}, m(0x00, version.V1_7_2))

	r.Register(Status, ServerBound, &StatusRequest{}, m(0x00, version.V1_7_2))
	r.Register(Status, ServerBound, &StatusPing{}, m(0x01, version.V1_7_2))
	r.Register(Status, ClientBound, &StatusResponse{}, m(0x00, version.V1_7_2))
	r.Register(Status, ClientBound, &StatusPing{}, m(0x01, version.V1_7_2))

	r.Register(Login, ServerBound, &LoginStart{}, m(0x00, version.V1_7_2))
	r.Register(Login, ServerBound, &LoginPluginResponse{}, m(0x02, version.V1_13))
	r.Register(Login, ServerBound, &LoginAcknowledged{}, m(0x03, version.V1_20_2))
	r.Register(Login, ClientBound, &LoginDisconnect{}, m(0x00, version.V1_7_2))
	r.Register(Login, ClientBound, &LoginSuccess{}, m(0x02, version.V1_7_2))
	r.Register(Login, ClientBound, &SetCompression{}, m(0x03, version.V1_8))
	r.Register(Login, ClientBound, &LoginPluginRequest{}, m(0x04, version.V1_13))

	r.Register(Configuration, ServerBound, &PluginMessage{},
		m(0x01, version.V1_20_2),
		m(0x02, version.V1_20_5),
	)
	r.Register(Configuration, ServerBound, &FinishConfiguration{},
		m(0x02, version.V1_20_2),
		m(0x03, version.V1_20_5),
	)
	r.Register(Configuration, ServerBound, &KeepAlive{},
		m(0x03, version.V1_20_2),
		m(0x04, version.V1_20_5),
	)
	r.Register(Configuration, ServerBound, &KnownPacks{}, m(0x07, version.V1_20_5))

	r.Register(Configuration, ClientBound, &PluginMessage{},
		m(0x00, version.V1_20_2),
		m(0x01, version.V1_20_5),
	)
	r.Register(Configuration, ClientBound, &Disconnect{},
		m(0x01, version.V1_20_2),
		m(0x02, version.V1_20_5),
	)
	r.Register(Configuration, ClientBound, &FinishConfiguration{},
		m(0x02, version.V1_20_2),
		m(0x03, version.V1_20_5),
	)
	r.Register(Configuration, ClientBound, &KeepAlive{},
		m(0x03, version.V1_20_2),
		m(0x04, version.V1_20_5),
	)
	r.Register(Configuration, ClientBound, &RegistryData{},
		m(0x05, version.V1_20_2),
		m(0x07, version.V1_20_5),
	)
	r.Register(Configuration, ClientBound, &KnownPacks{}, m(0x0E, version.V1_20_5))

	r.Register(Play, ServerBound, &KeepAlive{},
		m(0x00, version.V1_7_2),
		m(0x0B, version.V1_9),
		m(0x0C, version.V1_12),
		m(0x0B, version.V1_12_1),
		m(0x0E, version.V1_13),
		m(0x0F, version.V1_14),
		m(0x10, version.V1_16),
		m(0x0F, version.V1_17),
		m(0x11, version.V1_19),
		m(0x12, version.V1_19_1),
		m(0x11, version.V1_19_3),
		m(0x12, version.V1_19_4),
		m(0x14, version.V1_20_2),
		m(0x15, version.V1_20_3),
		m(0x18, version.V1_20_5),
		m(0x1A, version.V1_21_2),
	)
	r.Register(Play, ServerBound, &PluginMessage{},
		m(0x17, version.V1_7_2),
		m(0x09, version.V1_9),
		m(0x0A, version.V1_12),
		m(0x09, version.V1_12_1),
		m(0x0A, version.V1_13),
		m(0x0B, version.V1_14),
		m(0x0A, version.V1_17),
		m(0x0C, version.V1_19),
		m(0x0D, version.V1_19_1),
		m(0x0C, version.V1_19_3),
		m(0x0D, version.V1_19_4),
		m(0x0F, version.V1_20_2),
		m(0x10, version.V1_20_3),
		m(0x12, version.V1_20_5),
		m(0x14, version.V1_21_2),
	)

	r.Register(Play, ClientBound, &KeepAlive{},
		m(0x00, version.V1_7_2),
		m(0x1F, version.V1_9),
		m(0x21, version.V1_13),
		m(0x20, version.V1_14),
		m(0x21, version.V1_15),
		m(0x20, version.V1_16),
		m(0x1F, version.V1_16_2),
		m(0x21, version.V1_17),
		m(0x1E, version.V1_19),
		m(0x20, version.V1_19_1),
		m(0x1F, version.V1_19_3),
		m(0x23, version.V1_19_4),
		m(0x24, version.V1_20_2),
		m(0x26, version.V1_20_5),
		m(0x27, version.V1_21_2),
	)
	r.Register(Play, ClientBound, &PluginMessage{},
		m(0x3F, version.V1_7_2),
		m(0x18, version.V1_9),
		m(0x19, version.V1_13),
		m(0x18, version.V1_14),
		m(0x19, version.V1_15),
		m(0x18, version.V1_16),
		m(0x17, version.V1_16_2),
		m(0x18, version.V1_17),
		m(0x15, version.V1_19),
		m(0x16, version.V1_19_1),
		m(0x15, version.V1_19_3),
		m(0x17, version.V1_19_4),
		m(0x18, version.V1_20_2),
		m(0x19, version.V1_20_5),
	)
	r.Register(Play, ClientBound, &Disconnect{},
		m(0x40, version.V1_7_2),
		m(0x1A, version.V1_9),
		m(0x1B, version.V1_13),
		m(0x1A, version.V1_14),
		m(0x1B, version.V1_15),
		m(0x1A, version.V1_16),
		m(0x19, version.V1_16_2),
		m(0x1A, version.V1_17),
		m(0x17, version.V1_19),
		m(0x19, version.V1_19_1),
		m(0x17, version.V1_19_3),
		m(0x1A, version.V1_19_4),
		m(0x1B, version.V1_20_2),
		m(0x1D, version.V1_20_5),
	)
	r.Register(Play, ClientBound, &JoinGame{},
		m(0x01, version.V1_7_2),
		m(0x23, version.V1_9),
		m(0x25, version.V1_13),
		m(0x26, version.V1_15),
		m(0x25, version.V1_16),
		m(0x24, version.V1_16_2),
		m(0x26, version.V1_17),
		m(0x23, version.V1_19),
		m(0x25, version.V1_19_1),
		m(0x24, version.V1_19_3),
		m(0x28, version.V1_19_4),
		m(0x29, version.V1_20_2),
		m(0x2B, version.V1_20_5),
		m(0x2C, version.V1_21_2),
	)
	r.Register(Play, ClientBound, &PlayerPositionAndLook{},
		m(0x08, version.V1_7_2),
		m(0x2E, version.V1_9),
		m(0x2F, version.V1_12_1),
		m(0x32, version.V1_13),
		m(0x35, version.V1_14),
		m(0x36, version.V1_15),
		m(0x35, version.V1_16),
		m(0x34, version.V1_16_2),
		m(0x38, version.V1_17),
		m(0x36, version.V1_19),
		m(0x39, version.V1_19_1),
		m(0x38, version.V1_19_3),
		m(0x3C, version.V1_19_4),
		m(0x3E, version.V1_20_2),
		m(0x40, version.V1_20_5),
		m(0x42, version.V1_21_2),
	)
	r.Register(Play, ClientBound, &SystemChat{},
		m(0x02, version.V1_7_2),
		m(0x0F, version.V1_9),
		m(0x0E, version.V1_13),
		m(0x0F, version.V1_15),
		m(0x0E, version.V1_16),
		m(0x0F, version.V1_17),
		m(0x5F, version.V1_19),
		m(0x62, version.V1_19_1),
		m(0x60, version.V1_19_3),
		m(0x64, version.V1_19_4),
		m(0x67, version.V1_20_2),
		m(0x69, version.V1_20_3),
		m(0x6C, version.V1_20_5),
		m(0x73, version.V1_21_2),
	)
	r.Register(Play, ClientBound, &Title{},
		m(0x45, version.V1_8),
		m(0x47, version.V1_12),
		m(0x48, version.V1_12_1),
		m(0x4B, version.V1_13),
		m(0x4F, version.V1_14),
		m(0x50, version.V1_15),
		mt(0x4F, version.V1_16, version.V1_16_4),
	)
	r.Register(Play, ClientBound, &TitleText{},
		m(0x59, version.V1_17),
		m(0x5A, version.V1_18),
		m(0x5D, version.V1_19_1),
		m(0x5B, version.V1_19_3),
		m(0x5F, version.V1_19_4),
		m(0x61, version.V1_20_2),
		m(0x63, version.V1_20_3),
		m(0x65, version.V1_20_5),
		m(0x6C, version.V1_21_2),
	)
	r.Register(Play, ClientBound, &TitleSubtitle{},
		m(0x57, version.V1_17),
		m(0x58, version.V1_18),
		m(0x5B, version.V1_19_1),
		m(0x59, version.V1_19_3),
		m(0x5D, version.V1_19_4),
		m(0x5F, version.V1_20_2),
		m(0x61, version.V1_20_3),
		m(0x63, version.V1_20_5),
		m(0x6A, version.V1_21_2),
	)
	r.Register(Play, ClientBound, &TitleTimes{},
		m(0x5A, version.V1_17),
		m(0x5B, version.V1_18),
		m(0x5E, version.V1_19_1),
		m(0x5C, version.V1_19_3),
		m(0x60, version.V1_19_4),
		m(0x62, version.V1_20_2),
		m(0x64, version.V1_20_3),
		m(0x66, version.V1_20_5),
		m(0x6D, version.V1_21_2),
	)
	r.Register(Play, ClientBound, &GameEvent{},
		m(0x20, version.V1_20_3),
		m(0x22, version.V1_20_5),
		m(0x23, version.V1_21_2),
	)

	return r
}
