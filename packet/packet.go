//go:generate go run ../codegen/gen_packet_codec.go -- .
package packet

import (
	"github.com/gstoney/mclimbo/version"
)

// Packet is implemented by every packet kind. Encode writes the packet body
// (without the id) and Decode reads it back; both consult v for fields that
// changed between protocol revisions. Encode must be deterministic.
type Packet interface {
	Encode(b *Buffer, v *version.Version) error
	Decode(b *Buffer, v *version.Version) error
}

// State is the connection phase a packet id is interpreted in.
type State byte

const (
	Handshake State = iota
	Status
	Login
	Configuration
	Play
)

func (s State) String() string {
	switch s {
	case Handshake:
		return "Handshake"
	case Status:
		return "Status"
	case Login:
		return "Login"
	case Configuration:
		return "Configuration"
	case Play:
		return "Play"
	}
	return "UnknownState"
}

// Direction is the direction a packet is bound to.
type Direction byte

const (
	ServerBound Direction = iota
	ClientBound
)

func (d Direction) String() string {
	switch d {
	case ServerBound:
		return "ServerBound"
	case ClientBound:
		return "ClientBound"
	}
	return "UnknownBound"
}

// Handshake intents.
const (
	IntentStatus   int32 = 1
	IntentLogin    int32 = 2
	IntentTransfer int32 = 3
)

// @gen
type HandshakePacket struct {
	ProtocolVersion int32  `field:"VarInt"`
	ServerAddr      string `field:"String"`
	ServerPort      uint16 `field:"UnsignedShort"`
	Intent          int32  `field:"VarInt"`
}
