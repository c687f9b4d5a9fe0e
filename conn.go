package mclimbo

import (
	"net"
	"sync"
	"time"

	"github.com/gstoney/mclimbo/packet"
	"github.com/gstoney/mclimbo/version"
)

// Conn reads and writes typed packets for one client. Reads happen on the
// connection's own goroutine; writes may come from any goroutine.
type Conn struct {
	nc      net.Conn
	t       *Transport
	packets *packet.Registry
	timeout time.Duration

	wmu sync.Mutex

	state   packet.State
	version *version.Version
}

func NewConn(nc net.Conn, packets *packet.Registry, cfg TransportConfig, timeout time.Duration) *Conn {
	return &Conn{
		nc:      nc,
		t:       NewTransport(nc, nc, cfg),
		packets: packets,
		timeout: timeout,
		state:   packet.Handshake,
		version: version.Min(),
	}
}

func (c *Conn) State() packet.State {
	return c.state
}

func (c *Conn) Version() *version.Version {
	return c.version
}

// SetState switches the state packets are resolved in. Callers make sure no
// write is in flight.
func (c *Conn) SetState(s packet.State) {
	c.wmu.Lock()
	c.state = s
	c.wmu.Unlock()
}

func (c *Conn) SetVersion(v *version.Version) {
	c.wmu.Lock()
	c.version = v
	c.wmu.Unlock()
}

// SetCompression enables compressed frames for everything sent and
// received after it.
func (c *Conn) SetCompression(threshold int) {
	c.wmu.Lock()
	c.t.CompressionThreshold = threshold
	c.wmu.Unlock()
}

// ReadPacket returns the next packet known in the current state. Packets
// with unknown ids are skipped.
func (c *Conn) ReadPacket() (packet.Packet, error) {
	for {
		if c.timeout > 0 {
			if err := c.nc.SetReadDeadline(time.Now().Add(c.timeout)); err != nil {
				return nil, err
			}
		}

		payload, err := c.t.ReadPayload()
		if err != nil {
			return nil, err
		}

		_, p, err := c.packets.Decode(c.state, packet.ServerBound, c.version, payload)
		if err != nil {
			return nil, err
		}
		if p != nil {
			return p, nil
		}
	}
}

func (c *Conn) WritePacket(p packet.Packet) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()

	payload, err := c.packets.Encode(c.state, packet.ClientBound, c.version, p)
	if err != nil {
		return err
	}
	return c.t.Send(payload)
}

// WritePackets writes ps in order, stopping at the first error.
func (c *Conn) WritePackets(ps ...packet.Packet) error {
	for _, p := range ps {
		if err := c.WritePacket(p); err != nil {
			return err
		}
	}
	return nil
}

func (c *Conn) RemoteAddr() net.Addr {
	return c.nc.RemoteAddr()
}

func (c *Conn) Close() error {
	return c.nc.Close()
}
