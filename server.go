package mclimbo

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"

	"github.com/Tnze/go-mc/chat"
	"github.com/rs/zerolog"

	"github.com/gstoney/mclimbo/config"
	"github.com/gstoney/mclimbo/packet"
	"github.com/gstoney/mclimbo/version"
	"github.com/gstoney/mclimbo/waker"
	"github.com/gstoney/mclimbo/world"
)

// Waker is told whenever a player enters the limbo.
type Waker interface {
	Wake(ctx context.Context) (waker.Result, error)
}

// A Server holds players in a limbo world. Everything it shares between
// connections is read only after NewServer, except the player count.
type Server struct {
	cfg      *config.Config
	world    *world.World
	waker    Waker
	versions *version.Registry
	packets  *packet.Registry
	log      zerolog.Logger

	// newest is the newest version the world can be sent to.
	newest *version.Version

	motd        chat.Message
	joinMessage chat.Message
	title       chat.Message
	subtitle    chat.Message

	online    atomic.Int32
	entityIDs atomic.Int32
}

type Option func(*Server)

func WithLogger(log zerolog.Logger) Option {
	return func(s *Server) { s.log = log }
}

func WithWaker(w Waker) Option {
	return func(s *Server) { s.waker = w }
}

// NewServer checks the texts in cfg and returns a server ready to Serve.
func NewServer(cfg *config.Config, w *world.World, opts ...Option) (*Server, error) {
	s := &Server{
		cfg:      cfg,
		world:    w,
		versions: version.Default(),
		packets:  packet.Default(),
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.newest = s.versions.Max()
	all := s.versions.All()
	for i := len(all) - 1; i >= 0; i-- {
		if w.Supports(all[i]) {
			s.newest = all[i]
			break
		}
	}

	texts := []struct {
		key string
		src string
		dst *chat.Message
	}{
		{"motd", cfg.MOTD, &s.motd},
		{"join-message", cfg.JoinMessage, &s.joinMessage},
		{"title", cfg.Title, &s.title},
		{"subtitle", cfg.Subtitle, &s.subtitle},
	}
	for _, t := range texts {
		msg, err := packet.ParseText(t.src)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", t.key, err)
		}
		*t.dst = msg
	}
	return s, nil
}

// Online is the number of players past login.
func (s *Server) Online() int {
	return int(s.online.Load())
}

func (s *Server) transportConfig() TransportConfig {
	return TransportConfig{
		MaxPacketLen:       int32(s.cfg.Transport.MaxPacketLength),
		MaxDecompressedLen: int32(s.cfg.Transport.MaxDecompressedLength),
	}
}

// join reserves a player slot.
func (s *Server) join() bool {
	for {
		n := s.online.Load()
		if s.cfg.MaxPlayers >= 0 && int(n) >= s.cfg.MaxPlayers {
			return false
		}
		if s.online.CompareAndSwap(n, n+1) {
			return true
		}
	}
}

func (s *Server) leave() {
	s.online.Add(-1)
}

func (s *Server) ListenAndServe(ctx context.Context) error {
	l, err := net.Listen("tcp", s.cfg.Bind)
	if err != nil {
		return err
	}
	s.log.Info().Str("bind", l.Addr().String()).Str("forwarding", s.cfg.Verifier.Mode().String()).Msg("listening")
	return s.Serve(ctx, l)
}

// Serve accepts incoming connections on l, creating a new goroutine for
// each. It returns once ctx is done and every connection has ended.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		<-ctx.Done()
		l.Close()
	}()

	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		c, err := l.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if errors.Is(err, net.ErrClosed) {
				return err
			}
			s.log.Warn().Err(err).Msg("accept")
			continue
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			s.handle(ctx, c)
		}()
	}
}

// handle serves one connection until it ends or ctx is done. Work that
// outlives the connection, such as waking the backend, runs on ctx.
func (s *Server) handle(ctx context.Context, nc net.Conn) {
	connCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		<-connCtx.Done()
		nc.Close()
	}()

	ss := &session{
		srv:      s,
		conn:     NewConn(nc, s.packets, s.transportConfig(), s.cfg.ReadTimeout),
		log:      s.log.With().Str("remote", nc.RemoteAddr().String()).Logger(),
		serveCtx: ctx,
	}
	if err := ss.run(connCtx); err != nil {
		ss.log.Debug().Err(err).Msg("connection closed")
	}
}
