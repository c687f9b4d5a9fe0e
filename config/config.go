// Package config loads the server configuration from a TOML file, an
// optional .env file and LIMBO_* environment variables, in that order of
// increasing precedence.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/gstoney/mclimbo/forwarding"
	"github.com/gstoney/mclimbo/version"
	"github.com/gstoney/mclimbo/world"
)

//go:embed default.toml
var defaultFile []byte

var (
	ErrInvalidValue = errors.New("invalid configuration value")
)

// maxBrandLength is the protocol limit of a String field.
const maxBrandLength = 32767

const (
	EnvBind             = "LIMBO_BIND"
	EnvForwardingType   = "LIMBO_FORWARDING_TYPE"
	EnvForwardingSecret = "LIMBO_FORWARDING_SECRET"
	EnvForwardingTokens = "LIMBO_FORWARDING_TOKENS"
	EnvLogLevel         = "LIMBO_LOG_LEVEL"
)

type Config struct {
	Bind                 string        `toml:"bind"`
	MaxPlayers           int           `toml:"max-players"`
	MOTD                 string        `toml:"motd"`
	Brand                string        `toml:"brand"`
	JoinMessage          string        `toml:"join-message"`
	Title                string        `toml:"title"`
	Subtitle             string        `toml:"subtitle"`
	KeepAliveInterval    time.Duration `toml:"keep-alive-interval"`
	ReadTimeout          time.Duration `toml:"read-timeout"`
	CompressionThreshold int           `toml:"compression-threshold"`

	Transport  Transport           `toml:"transport"`
	World      World               `toml:"world"`
	Forwarding forwarding.Settings `toml:"forwarding"`
	Waker      Waker               `toml:"waker"`
	Log        Log                 `toml:"log"`

	// Verifier is built from Forwarding by Load.
	Verifier *forwarding.Config `toml:"-"`
	// Undecoded lists keys in the file that matched no setting.
	Undecoded []string `toml:"-"`
}

type Transport struct {
	MaxPacketLength       int `toml:"max-packet-length"`
	MaxDecompressedLength int `toml:"max-decompressed-length"`
}

type World struct {
	Codecs    []Codec    `toml:"codecs"`
	Dimension string     `toml:"dimension"`
	Spawn     [3]float64 `toml:"spawn"`
	GameMode  int        `toml:"game-mode"`
}

// Codec names a registry codec file and the client releases it serves.
type Codec struct {
	From string `toml:"from"`
	To   string `toml:"to"`
	Path string `toml:"path"`
}

// WorldOptions resolves the world section. It must follow a successful
// Validate.
func (c *Config) WorldOptions() world.Options {
	opts := world.Options{
		Dimension: c.World.Dimension,
		Spawn:     c.World.Spawn,
		GameMode:  byte(c.World.GameMode),
	}
	for _, cf := range c.World.Codecs {
		opts.Codecs = append(opts.Codecs, world.CodecFile{
			From: version.Default().ByName(cf.From),
			To:   version.Default().ByName(cf.To),
			Path: cf.Path,
		})
	}
	return opts
}

func (w World) validate() error {
	for i, cf := range w.Codecs {
		key := fmt.Sprintf("world.codecs[%d]", i)
		from, to := version.Default().ByName(cf.From), version.Default().ByName(cf.To)
		switch {
		case cf.Path == "":
			return invalid(key+".path", "must not be empty")
		case !from.IsSupported():
			return invalid(key+".from", fmt.Sprintf("%q is not a known release", cf.From))
		case !to.IsSupported():
			return invalid(key+".to", fmt.Sprintf("%q is not a known release", cf.To))
		case from.Less(version.V1_16_2):
			return invalid(key+".from", "codec files serve 1.16.2 and later")
		case to.Less(from):
			return invalid(key+".to", "must not be older than from")
		}
	}
	return nil
}

type Waker struct {
	Enabled    bool          `toml:"enabled"`
	Region     string        `toml:"region"`
	InstanceID string        `toml:"instance-id"`
	Cooldown   time.Duration `toml:"cooldown"`
}

type Log struct {
	Level  string `toml:"level"`
	Pretty bool   `toml:"pretty"`
}

// ZerologLevel parses Level. An empty level means info.
func (l Log) ZerologLevel() (zerolog.Level, error) {
	if l.Level == "" {
		return zerolog.InfoLevel, nil
	}
	return zerolog.ParseLevel(strings.ToLower(l.Level))
}

// Default returns the configuration of the embedded default file.
func Default() *Config {
	var c Config
	if _, err := toml.Decode(string(defaultFile), &c); err != nil {
		panic("config: embedded default: " + err.Error())
	}
	return &c
}

// DefaultFile returns the embedded default configuration file.
func DefaultFile() []byte {
	return append([]byte(nil), defaultFile...)
}

// Load reads path, creating it from the embedded default when it does not
// exist. envFiles are loaded with godotenv first; missing ones are skipped.
// Variables already set in the environment win over .env values.
func Load(path string, envFiles ...string) (*Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err = writeDefault(path); err != nil {
			return nil, err
		}
	}

	c := Default()
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	for _, key := range md.Undecoded() {
		c.Undecoded = append(c.Undecoded, key.String())
	}

	c.applyEnv(os.LookupEnv)
	if err = c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func writeDefault(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, defaultFile, 0o644); err != nil {
		return fmt.Errorf("write default config: %w", err)
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvBind); ok {
		c.Bind = v
	}
	if v, ok := lookup(EnvForwardingType); ok {
		c.Forwarding.Type = v
	}
	if v, ok := lookup(EnvForwardingSecret); ok {
		c.Forwarding.Secret = v
	}
	if v, ok := lookup(EnvForwardingTokens); ok {
		c.Forwarding.Tokens = c.Forwarding.Tokens[:0]
		for _, t := range strings.Split(v, ",") {
			if t = strings.TrimSpace(t); t != "" {
				c.Forwarding.Tokens = append(c.Forwarding.Tokens, t)
			}
		}
	}
	if v, ok := lookup(EnvLogLevel); ok {
		c.Log.Level = v
	}
}

// Validate checks every value and builds Verifier.
func (c *Config) Validate() (err error) {
	switch {
	case c.Bind == "":
		return invalid("bind", "must not be empty")
	case c.MaxPlayers < -1:
		return invalid("max-players", "must be -1 or more")
	case c.KeepAliveInterval <= 0:
		return invalid("keep-alive-interval", "must be positive")
	case c.ReadTimeout <= c.KeepAliveInterval:
		return invalid("read-timeout", "must be longer than keep-alive-interval")
	case c.CompressionThreshold < -1:
		return invalid("compression-threshold", "must be -1 or more")
	case c.Transport.MaxPacketLength <= 0:
		return invalid("transport.max-packet-length", "must be positive")
	case c.Transport.MaxDecompressedLength <= 0:
		return invalid("transport.max-decompressed-length", "must be positive")
	case c.World.GameMode < 0 || c.World.GameMode > 3:
		return invalid("world.game-mode", "must be between 0 and 3")
	case c.World.Dimension == "":
		return invalid("world.dimension", "must not be empty")
	case len(c.Brand) > maxBrandLength:
		return invalid("brand", fmt.Sprintf("must be at most %d bytes", maxBrandLength))
	case c.Waker.Enabled && c.Waker.InstanceID == "":
		return invalid("waker.instance-id", "required when the waker is enabled")
	case c.Waker.Cooldown < 0:
		return invalid("waker.cooldown", "must not be negative")
	}

	if err = c.World.validate(); err != nil {
		return err
	}
	if _, err = c.Log.ZerologLevel(); err != nil {
		return fmt.Errorf("%w: log.level: %w", ErrInvalidValue, err)
	}

	if c.Verifier, err = forwarding.NewConfig(c.Forwarding); err != nil {
		return fmt.Errorf("forwarding: %w", err)
	}
	return nil
}

func invalid(key, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrInvalidValue, key, reason)
}
