// Package forwarding verifies the player identity an upstream proxy hands
// to the server at login, under the BungeeCord (legacy), BungeeGuard and
// Velocity (modern) schemes.
package forwarding

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrUnknownMode    = errors.New("unknown forwarding type")
	ErrMissingSecret  = errors.New("MODERN forwarding requires a secret")
	ErrMissingTokens  = errors.New("BUNGEE_GUARD forwarding requires at least one token")
	ErrNegativeMaxAge = errors.New("forwarding max age must not be negative")
)

// DefaultMaxAge bounds the age of a modern forwarding payload.
const DefaultMaxAge = 30 * time.Second

type Mode int

const (
	None Mode = iota
	Legacy
	Modern
	BungeeGuard
)

func (m Mode) String() string {
	switch m {
	case None:
		return "NONE"
	case Legacy:
		return "LEGACY"
	case Modern:
		return "MODERN"
	case BungeeGuard:
		return "BUNGEE_GUARD"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode reads a configured forwarding type, ignoring case.
func ParseMode(s string) (Mode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "NONE":
		return None, nil
	case "LEGACY":
		return Legacy, nil
	case "MODERN":
		return Modern, nil
	case "BUNGEE_GUARD":
		return BungeeGuard, nil
	}
	return None, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Scheme is one of NoneScheme, LegacyScheme, ModernScheme or
// BungeeGuardScheme. Each carries only the data its verification needs.
type Scheme interface {
	Mode() Mode
	isScheme()
}

type NoneScheme struct{}

type LegacyScheme struct{}

type ModernScheme struct {
	secret []byte
	maxAge time.Duration
}

type BungeeGuardScheme struct {
	tokens map[string]struct{}
}

func (NoneScheme) Mode() Mode        { return None }
func (LegacyScheme) Mode() Mode      { return Legacy }
func (ModernScheme) Mode() Mode      { return Modern }
func (BungeeGuardScheme) Mode() Mode { return BungeeGuard }

func (NoneScheme) isScheme()        {}
func (LegacyScheme) isScheme()      {}
func (ModernScheme) isScheme()      {}
func (BungeeGuardScheme) isScheme() {}

func (s ModernScheme) MaxAge() time.Duration {
	return s.maxAge
}

func (s BungeeGuardScheme) HasToken(token string) bool {
	_, ok := s.tokens[token]
	return ok
}

// Messages are the disconnect texts shown for each rejection reason. They
// may be plain text or JSON text components.
type Messages struct {
	NoForwardingData     string `toml:"no-forwarding-data"`
	InvalidForwardedData string `toml:"invalid-forwarded-data"`
	VelocityRequired     string `toml:"velocity-required"`
	KeyIntegrityFailed   string `toml:"key-integrity-failed"`
}

func DefaultMessages() Messages {
	return Messages{
		NoForwardingData:     "You need to connect through the proxy",
		InvalidForwardedData: "Invalid forwarded data",
		VelocityRequired:     "You need to connect with Velocity",
		KeyIntegrityFailed:   "Can't verify forwarded player info",
	}
}

func (m Messages) withDefaults() Messages {
	def := DefaultMessages()
	if strings.TrimSpace(m.NoForwardingData) == "" {
		m.NoForwardingData = def.NoForwardingData
	}
	if strings.TrimSpace(m.InvalidForwardedData) == "" {
		m.InvalidForwardedData = def.InvalidForwardedData
	}
	if strings.TrimSpace(m.VelocityRequired) == "" {
		m.VelocityRequired = def.VelocityRequired
	}
	if strings.TrimSpace(m.KeyIntegrityFailed) == "" {
		m.KeyIntegrityFailed = def.KeyIntegrityFailed
	}
	return m
}

func (m Messages) For(r Reason) string {
	switch r {
	case NoForwardingData:
		return m.NoForwardingData
	case InvalidForwardedData:
		return m.InvalidForwardedData
	case VelocityRequired:
		return m.VelocityRequired
	case KeyIntegrityFailed:
		return m.KeyIntegrityFailed
	}
	return ""
}

// Settings is the persisted form of the forwarding configuration.
type Settings struct {
	Type     string        `toml:"type"`
	Secret   string        `toml:"secret"`
	Tokens   []string      `toml:"tokens"`
	MaxAge   time.Duration `toml:"max-age"`
	Messages Messages      `toml:"errors"`
}

// Config is the validated, immutable forwarding configuration shared by
// every connection.
type Config struct {
	scheme   Scheme
	messages Messages
}

// NewConfig validates s. Values that the selected scheme does not use are
// dropped, so a Config never holds a secret unless it is MODERN or tokens
// unless it is BUNGEE_GUARD.
func NewConfig(s Settings) (*Config, error) {
	mode, err := ParseMode(s.Type)
	if err != nil {
		return nil, err
	}

	cfg := &Config{messages: s.Messages.withDefaults()}

	switch mode {
	case None:
		cfg.scheme = NoneScheme{}
	case Legacy:
		cfg.scheme = LegacyScheme{}
	case Modern:
		if s.Secret == "" {
			return nil, ErrMissingSecret
		}
		maxAge := s.MaxAge
		switch {
		case maxAge < 0:
			return nil, ErrNegativeMaxAge
		case maxAge == 0:
			maxAge = DefaultMaxAge
		}
		cfg.scheme = ModernScheme{secret: []byte(s.Secret), maxAge: maxAge}
	case BungeeGuard:
		tokens := make(map[string]struct{}, len(s.Tokens))
		for _, t := range s.Tokens {
			if t = strings.TrimSpace(t); t != "" {
				tokens[t] = struct{}{}
			}
		}
		if len(tokens) == 0 {
			return nil, ErrMissingTokens
		}
		cfg.scheme = BungeeGuardScheme{tokens: tokens}
	}
	return cfg, nil
}

func (c *Config) Scheme() Scheme {
	return c.scheme
}

func (c *Config) Mode() Mode {
	return c.scheme.Mode()
}

func (c *Config) Messages() Messages {
	return c.messages
}

func (c *Config) reject(r Reason, err error) *RejectError {
	return &RejectError{Reason: r, Message: c.messages.For(r), Err: err}
}
