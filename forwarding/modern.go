package forwarding

import (
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"fmt"
	"time"

	"github.com/gstoney/mclimbo/packet"
)

const (
	// ModernChannel is the login plugin channel Velocity answers on.
	ModernChannel = "velocity:player_info"
	// ModernForwardingVersion is the payload layout this server understands.
	ModernForwardingVersion = 1
)

var (
	ErrBadSignature   = errors.New("forwarding signature mismatch")
	ErrShortPayload   = errors.New("forwarding payload shorter than its signature")
	ErrStalePayload   = errors.New("forwarding payload timestamp outside the allowed window")
	ErrPayloadVersion = errors.New("unsupported forwarding version")
)

// SignModern builds a modern forwarding payload for id, signed with secret
// and stamped with at. It is what a proxy sends; the server only uses it
// in tests.
func SignModern(secret []byte, id Identity, at time.Time) ([]byte, error) {
	body := packet.NewBuffer(nil)

	if err := packet.WriteVarInt(body, ModernForwardingVersion); err != nil {
		return nil, err
	}
	if err := packet.WriteString(body, id.Address); err != nil {
		return nil, err
	}
	if err := packet.WriteUUID(body, id.UUID); err != nil {
		return nil, err
	}
	if err := packet.WriteString(body, id.Name); err != nil {
		return nil, err
	}
	if err := packet.WritePrefixedArray(body, id.Properties, packet.WriteProperty); err != nil {
		return nil, err
	}
	if err := packet.WriteLong(body, at.UnixMilli()); err != nil {
		return nil, err
	}

	mac := hmac.New(sha256.New, secret)
	mac.Write(body.Bytes())
	return append(mac.Sum(nil), body.Bytes()...), nil
}

// verifyModern checks the signature first and only then parses the body.
func verifyModern(s ModernScheme, data []byte, now time.Time) (Identity, error) {
	if len(data) < sha256.Size {
		return Identity{}, &RejectError{Reason: KeyIntegrityFailed, Err: ErrShortPayload}
	}

	sig, body := data[:sha256.Size], data[sha256.Size:]
	mac := hmac.New(sha256.New, s.secret)
	mac.Write(body)
	if !hmac.Equal(sig, mac.Sum(nil)) {
		return Identity{}, &RejectError{Reason: KeyIntegrityFailed, Err: ErrBadSignature}
	}

	id, at, err := parseModernBody(body)
	if err != nil {
		return Identity{}, &RejectError{Reason: InvalidForwardedData, Err: err}
	}

	if age := now.Sub(at); age > s.maxAge || age < -s.maxAge {
		return Identity{}, &RejectError{
			Reason: KeyIntegrityFailed,
			Err:    fmt.Errorf("%w: %s old", ErrStalePayload, age.Round(time.Millisecond)),
		}
	}
	return id, nil
}

func parseModernBody(body []byte) (id Identity, at time.Time, err error) {
	buf := packet.NewBuffer(body)

	fwd, err := packet.ReadVarInt(buf)
	if err != nil {
		return
	}
	if fwd != ModernForwardingVersion {
		err = fmt.Errorf("%w: %d", ErrPayloadVersion, fwd)
		return
	}
	if id.Address, err = packet.ReadString(buf); err != nil {
		return
	}
	if id.UUID, err = packet.ReadUUID(buf); err != nil {
		return
	}
	if id.Name, err = packet.ReadString(buf); err != nil {
		return
	}
	if id.Properties, err = packet.ReadPrefixedArray(buf, packet.ReadProperty); err != nil {
		return
	}

	ms, err := packet.ReadLong(buf)
	if err != nil {
		return
	}
	if buf.Remaining() != 0 {
		err = fmt.Errorf("%w: %d bytes after forwarding payload", packet.ErrDecoderLeftBytes, buf.Remaining())
		return
	}
	at = time.UnixMilli(ms)
	return
}
