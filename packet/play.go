package packet

import (
	"errors"

	"github.com/Tnze/go-mc/chat"
	"github.com/google/uuid"

	"github.com/gstoney/mclimbo/version"
)

// KeepAlive is sent by the server and echoed back by the client, in both the
// configuration and play states.
//
// @gen
type KeepAlive struct {
	ID int64 `field:"KeepAliveID" versioned:"true"`
}

// @gen
type PluginMessage struct {
	Channel string `field:"String"`
	Data    []byte `field:"TrailingBytes" versioned:"true"`
}

// @gen
type Disconnect struct {
	Reason chat.Message `field:"Text" versioned:"true"`
}

// @gen
type TitleText struct {
	Text chat.Message `field:"Text" versioned:"true"`
}

// @gen
type TitleSubtitle struct {
	Text chat.Message `field:"Text" versioned:"true"`
}

// TitleTimes is in ticks.
//
// @gen
type TitleTimes struct {
	FadeIn  int32 `field:"Int"`
	Stay    int32 `field:"Int"`
	FadeOut int32 `field:"Int"`
}

// Game events used by the server.
const (
	GameEventChangeGameMode     byte = 3
	GameEventStartWaitingChunks byte = 13
)

// @gen
type GameEvent struct {
	Event byte    `field:"Byte"`
	Value float32 `field:"Float"`
}

// Teleport flags marking which coordinates are relative.
const (
	RelativeX int32 = 1 << iota
	RelativeY
	RelativeZ
	RelativeYaw
	RelativePitch
)

// PlayerPositionAndLook places the player. 1.7 sends an on-ground flag,
// 1.8 relative flags, 1.9 a teleport id, 1.17 to 1.19.3 a dismount flag.
// 1.21.2 moves the teleport id first and adds a velocity.
type PlayerPositionAndLook struct {
	TeleportID int32
	X, Y, Z    float64

	VelocityX, VelocityY, VelocityZ float64

	Yaw, Pitch float32
	Flags      int32
	OnGround   bool
	Dismount   bool
}

func (p *PlayerPositionAndLook) Encode(b *Buffer, v *version.Version) (err error) {
	if v.MoreOrEqual(version.V1_21_2) {
		if err = WriteVarInt(b, p.TeleportID); err != nil {
			return
		}
	}
	for _, d := range []float64{p.X, p.Y, p.Z} {
		if err = WriteDouble(b, d); err != nil {
			return
		}
	}
	if v.MoreOrEqual(version.V1_21_2) {
		for _, d := range []float64{p.VelocityX, p.VelocityY, p.VelocityZ} {
			if err = WriteDouble(b, d); err != nil {
				return
			}
		}
	}
	if err = WriteFloat(b, p.Yaw); err != nil {
		return
	}
	if err = WriteFloat(b, p.Pitch); err != nil {
		return
	}

	switch {
	case v.MoreOrEqual(version.V1_21_2):
		return WriteInt(b, p.Flags)
	case v.Less(version.V1_8):
		return WriteBoolean(b, p.OnGround)
	}

	if err = WriteByte(b, byte(p.Flags)); err != nil {
		return
	}
	if v.MoreOrEqual(version.V1_9) {
		if err = WriteVarInt(b, p.TeleportID); err != nil {
			return
		}
	}
	if v.FromTo(version.V1_17, version.V1_19_3) {
		err = WriteBoolean(b, p.Dismount)
	}
	return
}

func (p *PlayerPositionAndLook) Decode(b *Buffer, v *version.Version) (err error) {
	if v.MoreOrEqual(version.V1_21_2) {
		if p.TeleportID, err = ReadVarInt(b); err != nil {
			return
		}
	}
	for _, d := range []*float64{&p.X, &p.Y, &p.Z} {
		if *d, err = ReadDouble(b); err != nil {
			return
		}
	}
	if v.MoreOrEqual(version.V1_21_2) {
		for _, d := range []*float64{&p.VelocityX, &p.VelocityY, &p.VelocityZ} {
			if *d, err = ReadDouble(b); err != nil {
				return
			}
		}
	}
	if p.Yaw, err = ReadFloat(b); err != nil {
		return
	}
	if p.Pitch, err = ReadFloat(b); err != nil {
		return
	}

	switch {
	case v.MoreOrEqual(version.V1_21_2):
		p.Flags, err = ReadInt(b)
		return
	case v.Less(version.V1_8):
		p.OnGround, err = ReadBoolean(b)
		return
	}

	var flags byte
	if flags, err = ReadByte(b); err != nil {
		return
	}
	p.Flags = int32(flags)
	if v.MoreOrEqual(version.V1_9) {
		if p.TeleportID, err = ReadVarInt(b); err != nil {
			return
		}
	}
	if v.FromTo(version.V1_17, version.V1_19_3) {
		p.Dismount, err = ReadBoolean(b)
	}
	return
}

// ChatPosition selects where a server message is shown.
type ChatPosition byte

const (
	ChatPositionChat ChatPosition = iota
	ChatPositionSystem
	ChatPositionActionBar
)

var ErrUnsupportedChatPosition = errors.New("chat position not supported by this version")

// SystemChat is a message from the server. Before 1.19 it is the chat
// packet with a position byte (1.8) and a sender (1.16); 1.19 sends the
// position as a VarInt and 1.19.1 reduces it to an action bar flag, so
// ChatPositionChat cannot be sent from then on.
type SystemChat struct {
	Message  chat.Message
	Position ChatPosition
	Sender   uuid.UUID
}

func (p *SystemChat) Encode(b *Buffer, v *version.Version) (err error) {
	if err = WriteText(b, p.Message, v); err != nil {
		return
	}

	switch {
	case v.MoreOrEqual(version.V1_19_1):
		if p.Position == ChatPositionChat {
			return ErrUnsupportedChatPosition
		}
		return WriteBoolean(b, p.Position == ChatPositionActionBar)
	case v.MoreOrEqual(version.V1_19):
		return WriteVarInt(b, int32(p.Position))
	case v.MoreOrEqual(version.V1_8):
		if err = WriteByte(b, byte(p.Position)); err != nil {
			return
		}
	}
	if v.FromTo(version.V1_16, version.V1_18_2) {
		err = WriteUUID(b, p.Sender)
	}
	return
}

func (p *SystemChat) Decode(b *Buffer, v *version.Version) (err error) {
	if p.Message, err = ReadText(b, v); err != nil {
		return
	}

	switch {
	case v.MoreOrEqual(version.V1_19_1):
		var overlay bool
		if overlay, err = ReadBoolean(b); err != nil {
			return
		}
		p.Position = ChatPositionSystem
		if overlay {
			p.Position = ChatPositionActionBar
		}
		return
	case v.MoreOrEqual(version.V1_19):
		var pos int32
		pos, err = ReadVarInt(b)
		p.Position = ChatPosition(pos)
		return
	case v.MoreOrEqual(version.V1_8):
		var pos byte
		if pos, err = ReadByte(b); err != nil {
			return
		}
		p.Position = ChatPosition(pos)
	}
	if v.FromTo(version.V1_16, version.V1_18_2) {
		p.Sender, err = ReadUUID(b)
	}
	return
}

var ErrUnsupportedTitleAction = errors.New("title action not supported by this version")

// TitleAction is the operation of a legacy Title packet.
type TitleAction int32

const (
	TitleSetTitle TitleAction = iota
	TitleSetSubtitle
	TitleSetActionBar
	TitleSetTimes
	TitleHide
	TitleReset
)

// wireTitleAction maps an action to its wire id. The action bar id was
// inserted in 1.11 and shifted the ids after it.
func wireTitleAction(a TitleAction, v *version.Version) (int32, error) {
	if v.MoreOrEqual(version.V1_11) {
		return int32(a), nil
	}
	switch {
	case a == TitleSetActionBar:
		return 0, ErrUnsupportedTitleAction
	case a > TitleSetActionBar:
		return int32(a) - 1, nil
	}
	return int32(a), nil
}

func titleActionOf(id int32, v *version.Version) (TitleAction, error) {
	if v.Less(version.V1_11) && id >= int32(TitleSetActionBar) {
		id++
	}
	if id < 0 || id > int32(TitleReset) {
		return 0, ErrUnsupportedTitleAction
	}
	return TitleAction(id), nil
}

// Title is the single title packet used from 1.8 to 1.16.5. Text is set
// for the title, subtitle and action bar actions; the times for
// TitleSetTimes.
type Title struct {
	Action  TitleAction
	Text    chat.Message
	FadeIn  int32
	Stay    int32
	FadeOut int32
}

func (p *Title) Encode(b *Buffer, v *version.Version) (err error) {
	id, err := wireTitleAction(p.Action, v)
	if err != nil {
		return
	}
	if err = WriteVarInt(b, id); err != nil {
		return
	}

	switch p.Action {
	case TitleSetTitle, TitleSetSubtitle, TitleSetActionBar:
		err = WriteText(b, p.Text, v)
	case TitleSetTimes:
		for _, t := range []int32{p.FadeIn, p.Stay, p.FadeOut} {
			if err = WriteInt(b, t); err != nil {
				return
			}
		}
	}
	return
}

func (p *Title) Decode(b *Buffer, v *version.Version) (err error) {
	id, err := ReadVarInt(b)
	if err != nil {
		return
	}
	if p.Action, err = titleActionOf(id, v); err != nil {
		return
	}

	switch p.Action {
	case TitleSetTitle, TitleSetSubtitle, TitleSetActionBar:
		p.Text, err = ReadText(b, v)
	case TitleSetTimes:
		for _, t := range []*int32{&p.FadeIn, &p.Stay, &p.FadeOut} {
			if *t, err = ReadInt(b); err != nil {
				return
			}
		}
	}
	return
}
