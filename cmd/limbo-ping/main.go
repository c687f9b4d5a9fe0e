package main

import (
	"flag"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/gstoney/mclimbo"
	"github.com/gstoney/mclimbo/packet"
	"github.com/gstoney/mclimbo/version"
)

func main() {
	addr := flag.String("addr", "localhost:25565", "server address (host:port)")
	proto := flag.Int("proto", int(version.Max().Protocol()), "protocol version")
	release := flag.String("version", "", "client release, such as 1.20.4; overrides -proto")
	flag.Parse()

	protocol, err := protocolOf(*proto, *release)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err = ping(*addr, protocol); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// protocolOf picks the protocol to announce: the release's when one is
// named, proto otherwise.
func protocolOf(proto int, release string) (int32, error) {
	if release == "" {
		return int32(proto), nil
	}
	v := version.Default().ByName(release)
	if !v.IsSupported() {
		return 0, fmt.Errorf("unknown release %q", release)
	}
	return v.Protocol(), nil
}

func ping(addr string, proto int32) error {
	hostname, portstr, err := net.SplitHostPort(addr)
	if err != nil {
		return err
	}
	port, err := strconv.Atoi(portstr)
	if err != nil {
		return err
	}

	fmt.Printf("Dialing %s for status retrieval...\n", addr)

	conn, err := net.DialTimeout("tcp", addr, 5*time.Second)
	if err != nil {
		return err
	}
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(10 * time.Second))

	t := mclimbo.NewTransport(conn, conn, mclimbo.TransportConfig{
		MaxPacketLen:       32768,
		MaxDecompressedLen: 32768,
	})
	// Status packets look the same in every version.
	v := version.Default().Of(proto)
	if !v.IsSupported() {
		v = version.Max()
	}
	packets := packet.Default()

	send := func(s packet.State, p packet.Packet) error {
		payload, err := packets.Encode(s, packet.ServerBound, v, p)
		if err != nil {
			return err
		}
		return t.Send(payload)
	}
	recv := func() (packet.Packet, error) {
		payload, err := t.ReadPayload()
		if err != nil {
			return nil, err
		}
		_, p, err := packets.Decode(packet.Status, packet.ClientBound, v, payload)
		return p, err
	}

	err = send(packet.Handshake, &packet.HandshakePacket{
		ProtocolVersion: proto,
		ServerAddr:      hostname,
		ServerPort:      uint16(port),
		Intent:          packet.IntentStatus,
	})
	if err != nil {
		return err
	}
	if err = send(packet.Status, &packet.StatusRequest{}); err != nil {
		return err
	}

	p, err := recv()
	if err != nil {
		return err
	}
	resp, ok := p.(*packet.StatusResponse)
	if !ok {
		return fmt.Errorf("unexpected response %T", p)
	}
	fmt.Println(resp.Response)

	sent := time.Now()
	if err = send(packet.Status, &packet.StatusPing{Payload: sent.UnixMilli()}); err != nil {
		return err
	}
	if p, err = recv(); err != nil {
		return err
	}
	pong, ok := p.(*packet.StatusPing)
	if !ok || pong.Payload != sent.UnixMilli() {
		return fmt.Errorf("unexpected pong %+v", p)
	}
	fmt.Printf("Ping: %s\n", time.Since(sent).Round(time.Millisecond))
	return nil
}
