package packet

import (
	"errors"
	"io"

	"github.com/google/uuid"

	"github.com/gstoney/mclimbo/version"
)

var ErrMissingPlayerUUID = errors.New("login start requires a player uuid from 1.20.2")

// SignatureData is the chat signing key a 1.19 to 1.19.2 client may attach
// to LoginStart.
type SignatureData struct {
	Expiry    int64
	PublicKey []byte
	Signature []byte
}

func writeSignatureData(w io.Writer, v SignatureData) (err error) {
	if err = WriteLong(w, v.Expiry); err != nil {
		return
	}
	if err = WritePrefixedBytes(w, v.PublicKey); err != nil {
		return
	}
	err = WritePrefixedBytes(w, v.Signature)
	return
}

func readSignatureData(r Reader) (v SignatureData, err error) {
	if v.Expiry, err = ReadLong(r); err != nil {
		return
	}
	if v.PublicKey, err = ReadPrefixedBytes(r); err != nil {
		return
	}
	v.Signature, err = ReadPrefixedBytes(r)
	return
}

// LoginStart opens the login sequence. Before 1.19 only the name is sent;
// 1.19 adds an optional signing key, 1.19.1 an optional UUID, 1.19.3 drops
// the key and 1.20.2 makes the UUID mandatory.
type LoginStart struct {
	Name       string
	Signature  Optional[SignatureData]
	PlayerUUID Optional[uuid.UUID]
}

func (p *LoginStart) Encode(b *Buffer, v *version.Version) (err error) {
	if err = WriteString(b, p.Name); err != nil {
		return
	}
	if v.FromTo(version.V1_19, version.V1_19_1) {
		if err = WriteOptional(b, p.Signature, writeSignatureData); err != nil {
			return
		}
	}
	switch {
	case v.MoreOrEqual(version.V1_20_2):
		if !p.PlayerUUID.Exists {
			return ErrMissingPlayerUUID
		}
		err = WriteUUID(b, p.PlayerUUID.Item)
	case v.MoreOrEqual(version.V1_19_1):
		err = WriteOptional(b, p.PlayerUUID, WriteUUID)
	}
	return
}

func (p *LoginStart) Decode(b *Buffer, v *version.Version) (err error) {
	if p.Name, err = ReadString(b); err != nil {
		return
	}
	if v.FromTo(version.V1_19, version.V1_19_1) {
		if p.Signature, err = ReadOptional(b, readSignatureData); err != nil {
			return
		}
	}
	switch {
	case v.MoreOrEqual(version.V1_20_2):
		var id uuid.UUID
		if id, err = ReadUUID(b); err != nil {
			return
		}
		p.PlayerUUID = Some(id)
	case v.MoreOrEqual(version.V1_19_1):
		p.PlayerUUID, err = ReadOptional(b, ReadUUID)
	}
	return
}

// @gen
type LoginPluginRequest struct {
	MessageID int32  `field:"VarInt"`
	Channel   string `field:"String"`
	Data      []byte `field:"RemainingBytes"`
}

// LoginPluginResponse answers a LoginPluginRequest. Data is empty when the
// client did not understand the channel.
//
// @gen
type LoginPluginResponse struct {
	MessageID  int32  `field:"VarInt"`
	Successful bool   `field:"Boolean"`
	Data       []byte `field:"RemainingBytes"`
}

// @gen
type LoginAcknowledged struct{}

// LoginDisconnect always carries a JSON text component, even on versions
// that send NBT components elsewhere.
//
// @gen
type LoginDisconnect struct {
	Reason string `field:"String"`
}

// @gen
type SetCompression struct {
	Threshold int32 `field:"VarInt"`
}

// Property is a signed game profile property such as "textures".
type Property struct {
	Name      string
	Value     string
	Signature Optional[string]
}

func WriteProperty(w io.Writer, v Property) (err error) {
	if err = WriteString(w, v.Name); err != nil {
		return
	}
	if err = WriteString(w, v.Value); err != nil {
		return
	}
	err = WriteOptional(w, v.Signature, WriteString)
	return
}

func ReadProperty(r Reader) (v Property, err error) {
	if v.Name, err = ReadString(r); err != nil {
		return
	}
	if v.Value, err = ReadString(r); err != nil {
		return
	}
	v.Signature, err = ReadOptional(r, ReadString)
	return
}

// LoginSuccess ends the login state. Properties exist from 1.19 and the
// strict error handling flag only between 1.20.5 and 1.21.1.
type LoginSuccess struct {
	UUID              uuid.UUID
	Username          string
	Properties        []Property
	StrictErrHandling bool
}

func (p *LoginSuccess) Encode(b *Buffer, v *version.Version) (err error) {
	if err = WriteProfileUUID(b, p.UUID, v); err != nil {
		return
	}
	if err = WriteString(b, p.Username); err != nil {
		return
	}
	if v.MoreOrEqual(version.V1_19) {
		if err = WritePrefixedArray(b, p.Properties, WriteProperty); err != nil {
			return
		}
	}
	if v.FromTo(version.V1_20_5, version.V1_21) {
		err = WriteBoolean(b, p.StrictErrHandling)
	}
	return
}

func (p *LoginSuccess) Decode(b *Buffer, v *version.Version) (err error) {
	if p.UUID, err = ReadProfileUUID(b, v); err != nil {
		return
	}
	if p.Username, err = ReadString(b); err != nil {
		return
	}
	if v.MoreOrEqual(version.V1_19) {
		if p.Properties, err = ReadPrefixedArray(b, ReadProperty); err != nil {
			return
		}
	}
	if v.FromTo(version.V1_20_5, version.V1_21) {
		p.StrictErrHandling, err = ReadBoolean(b)
	}
	return
}
