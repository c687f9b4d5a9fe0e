package mclimbo

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync/atomic"
	"time"

	"github.com/Tnze/go-mc/chat"
	"github.com/rs/zerolog"

	"github.com/gstoney/mclimbo/forwarding"
	"github.com/gstoney/mclimbo/packet"
	"github.com/gstoney/mclimbo/version"
)

var (
	ErrUnexpectedPacket   = errors.New("unexpected packet")
	ErrUnknownIntent      = errors.New("unknown handshake intent")
	ErrUnsupportedVersion = errors.New("unsupported client version")
	ErrServerFull         = errors.New("server is full")
)

const (
	brandChannelLegacy = "MC|Brand"
	brandChannel       = "minecraft:brand"
)

// Title times in ticks.
const (
	titleFadeIn  = 10
	titleStay    = 70
	titleFadeOut = 20
)

type session struct {
	srv  *Server
	conn *Conn
	log  zerolog.Logger

	// serveCtx lives as long as the server, not the connection.
	serveCtx context.Context

	player    forwarding.Identity
	keepAlive atomic.Int64
}

func (ss *session) run(ctx context.Context) error {
	p, err := ss.conn.ReadPacket()
	if err != nil {
		return err
	}
	hs, ok := p.(*packet.HandshakePacket)
	if !ok {
		return fmt.Errorf("%w: %T before handshake", ErrUnexpectedPacket, p)
	}

	v := ss.srv.versions.Of(hs.ProtocolVersion)
	switch hs.Intent {
	case packet.IntentStatus:
		return ss.handleStatus(v)
	case packet.IntentLogin, packet.IntentTransfer:
	default:
		return fmt.Errorf("%w: %d", ErrUnknownIntent, hs.Intent)
	}

	if err = ss.login(hs, v); err != nil {
		return err
	}

	if !ss.srv.join() {
		ss.disconnectLogin("The server is full")
		return ErrServerFull
	}
	defer ss.srv.leave()

	ss.log = ss.log.With().Str("player", ss.player.Name).Logger()
	ss.log.Info().
		Str("uuid", ss.player.UUID.String()).
		Str("address", ss.player.Address).
		Str("version", v.String()).
		Msg("player joined")
	defer func() { ss.log.Info().Msg("player left") }()

	if err = ss.finishLogin(v); err != nil {
		return err
	}
	return ss.play(ctx, v)
}

// login verifies the player's identity and leaves the connection in the
// login state.
func (ss *session) login(hs *packet.HandshakePacket, v *version.Version) error {
	ss.conn.SetState(packet.Login)
	if !ss.srv.world.Supports(v) {
		if v.IsSupported() {
			ss.conn.SetVersion(v)
		} else {
			ss.conn.SetVersion(ss.srv.versions.Max())
		}
		ss.disconnectLogin("Unsupported client version")
		return fmt.Errorf("%w: protocol %d", ErrUnsupportedVersion, hs.ProtocolVersion)
	}
	ss.conn.SetVersion(v)

	remote := ss.conn.RemoteAddr().String()
	if host, _, err := net.SplitHostPort(remote); err == nil {
		remote = host
	}

	verifier := ss.srv.cfg.Verifier.NewLogin(remote)
	if err := verifier.Handshake(hs.ServerAddr); err != nil {
		return ss.reject(err)
	}

	p, err := ss.conn.ReadPacket()
	if err != nil {
		return err
	}
	start, ok := p.(*packet.LoginStart)
	if !ok {
		return fmt.Errorf("%w: %T instead of login start", ErrUnexpectedPacket, p)
	}

	step, err := verifier.Start(start.Name, v)
	if err != nil {
		return ss.reject(err)
	}
	if step.Identity != nil {
		ss.player = *step.Identity
		return nil
	}

	if err = ss.conn.WritePacket(step.Query); err != nil {
		return err
	}
	for {
		if p, err = ss.conn.ReadPacket(); err != nil {
			return err
		}
		resp, ok := p.(*packet.LoginPluginResponse)
		if !ok {
			continue
		}

		id, err := verifier.Response(resp.MessageID, resp.Successful, resp.Data)
		switch {
		case errors.Is(err, forwarding.ErrUnexpectedResponse):
			ss.log.Debug().Int32("message_id", resp.MessageID).Msg("ignoring login plugin response")
			continue
		case err != nil:
			return ss.reject(err)
		}
		ss.player = id
		return nil
	}
}

func (ss *session) reject(err error) error {
	var rej *forwarding.RejectError
	if errors.As(err, &rej) {
		ss.log.Info().Err(err).Msg("forwarding rejected")
		ss.disconnectLogin(rej.Message)
	}
	return err
}

func (ss *session) disconnectLogin(reason string) {
	msg, err := packet.ParseText(reason)
	if err != nil {
		msg = chat.Text(reason)
	}
	text, err := packet.TextJSON(msg)
	if err != nil {
		return
	}
	if err = ss.conn.WritePacket(&packet.LoginDisconnect{Reason: text}); err != nil {
		ss.log.Debug().Err(err).Msg("send login disconnect")
	}
}

// finishLogin negotiates compression, sends login success and runs the
// configuration state where the version has one.
func (ss *session) finishLogin(v *version.Version) error {
	if threshold := ss.srv.cfg.CompressionThreshold; threshold >= 0 && v.MoreOrEqual(version.V1_8) {
		if err := ss.conn.WritePacket(&packet.SetCompression{Threshold: int32(threshold)}); err != nil {
			return err
		}
		ss.conn.SetCompression(threshold)
	}

	err := ss.conn.WritePacket(&packet.LoginSuccess{
		UUID:       ss.player.UUID,
		Username:   ss.player.Name,
		Properties: ss.player.Properties,
	})
	if err != nil {
		return err
	}

	if v.Less(version.V1_20_2) {
		return nil
	}
	if err = ss.await(func(p packet.Packet) bool {
		_, ok := p.(*packet.LoginAcknowledged)
		return ok
	}); err != nil {
		return err
	}
	return ss.configure(v)
}

func (ss *session) configure(v *version.Version) error {
	ss.conn.SetState(packet.Configuration)

	if err := ss.sendBrand(v); err != nil {
		return err
	}

	if v.MoreOrEqual(version.V1_20_5) {
		names := v.Names()
		err := ss.conn.WritePacket(&packet.KnownPacks{Packs: []packet.KnownPack{{
			Namespace: "minecraft",
			ID:        "core",
			Version:   names[len(names)-1],
		}}})
		if err != nil {
			return err
		}
		if err = ss.await(func(p packet.Packet) bool {
			_, ok := p.(*packet.KnownPacks)
			return ok
		}); err != nil {
			return err
		}
	}

	if err := ss.conn.WritePackets(ss.srv.world.RegistryData(v)...); err != nil {
		return err
	}
	if err := ss.conn.WritePacket(&packet.FinishConfiguration{}); err != nil {
		return err
	}
	return ss.await(func(p packet.Packet) bool {
		_, ok := p.(*packet.FinishConfiguration)
		return ok
	})
}

// await reads until done accepts a packet, dropping everything else.
func (ss *session) await(done func(packet.Packet) bool) error {
	for {
		p, err := ss.conn.ReadPacket()
		if err != nil {
			return err
		}
		if done(p) {
			return nil
		}
	}
}

func (ss *session) sendBrand(v *version.Version) error {
	channel := brandChannel
	if v.Less(version.V1_13) {
		channel = brandChannelLegacy
	}

	data := packet.NewBuffer(nil)
	if err := packet.WriteString(data, ss.srv.cfg.Brand); err != nil {
		return fmt.Errorf("brand: %w", err)
	}
	return ss.conn.WritePacket(&packet.PluginMessage{Channel: channel, Data: data.Bytes()})
}

func (ss *session) play(ctx context.Context, v *version.Version) error {
	ss.conn.SetState(packet.Play)

	w := ss.srv.world
	join := w.JoinGame(v, ss.srv.entityIDs.Add(1), int32(ss.srv.status(v).Players.Max))
	if err := ss.conn.WritePacket(join); err != nil {
		return err
	}
	if v.Less(version.V1_20_2) {
		if err := ss.sendBrand(v); err != nil {
			return err
		}
	}
	if err := ss.conn.WritePacket(w.SpawnPosition()); err != nil {
		return err
	}
	if v.MoreOrEqual(version.V1_20_3) {
		if err := ss.conn.WritePacket(&packet.GameEvent{Event: packet.GameEventStartWaitingChunks}); err != nil {
			return err
		}
	}
	if ss.srv.cfg.JoinMessage != "" {
		if err := ss.conn.WritePacket(&packet.SystemChat{
			Message:  ss.srv.joinMessage,
			Position: packet.ChatPositionSystem,
		}); err != nil {
			return err
		}
	}
	if err := ss.conn.WritePackets(ss.titles(v)...); err != nil {
		return err
	}

	if ss.srv.waker != nil {
		go ss.wake(ss.serveCtx)
	}
	go ss.keepAliveLoop(ctx)

	for {
		p, err := ss.conn.ReadPacket()
		if err != nil {
			return err
		}
		if ka, ok := p.(*packet.KeepAlive); ok && ka.ID != ss.keepAlive.Load() {
			ss.log.Debug().Int64("id", ka.ID).Msg("keep alive answer does not match")
		}
	}
}

func (ss *session) titles(v *version.Version) []packet.Packet {
	cfg := ss.srv.cfg
	if cfg.Title == "" && cfg.Subtitle == "" {
		return nil
	}

	switch {
	case v.Less(version.V1_8):
		return nil
	case v.Less(version.V1_17):
		return []packet.Packet{
			&packet.Title{Action: packet.TitleSetTimes, FadeIn: titleFadeIn, Stay: titleStay, FadeOut: titleFadeOut},
			&packet.Title{Action: packet.TitleSetSubtitle, Text: ss.srv.subtitle},
			&packet.Title{Action: packet.TitleSetTitle, Text: ss.srv.title},
		}
	}
	return []packet.Packet{
		&packet.TitleTimes{FadeIn: titleFadeIn, Stay: titleStay, FadeOut: titleFadeOut},
		&packet.TitleSubtitle{Text: ss.srv.subtitle},
		&packet.TitleText{Text: ss.srv.title},
	}
}

func (ss *session) keepAliveLoop(ctx context.Context) {
	t := time.NewTicker(ss.srv.cfg.KeepAliveInterval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}

		id := ss.keepAlive.Add(1)
		if err := ss.conn.WritePacket(&packet.KeepAlive{ID: id}); err != nil {
			ss.log.Debug().Err(err).Msg("send keep alive")
			ss.conn.Close()
			return
		}
	}
}

func (ss *session) wake(ctx context.Context) {
	res, err := ss.srv.waker.Wake(ctx)
	if err != nil {
		ss.log.Warn().Err(err).Msg("wake backend")
		return
	}
	ss.log.Debug().Stringer("result", res).Msg("wake backend")
}
