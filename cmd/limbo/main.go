package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/gstoney/mclimbo"
	"github.com/gstoney/mclimbo/config"
	"github.com/gstoney/mclimbo/version"
	"github.com/gstoney/mclimbo/waker"
	"github.com/gstoney/mclimbo/world"
)

func main() {
	configPath := flag.String("config", "limbo.toml", "config file, created with defaults if missing")
	envFile := flag.String("env", ".env", "dotenv file loaded before the environment is read")
	flag.Parse()

	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load(*configPath, *envFile)
	if err != nil {
		log.Fatal().Err(err).Str("path", *configPath).Msg("load config")
	}

	level, _ := cfg.Log.ZerologLevel()
	if cfg.Log.Pretty {
		log = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.DateTime})
	}
	log = log.Level(level)

	for _, key := range cfg.Undecoded {
		log.Warn().Str("key", key).Msg("unknown config key")
	}

	w, err := world.New(cfg.WorldOptions())
	if err != nil {
		log.Fatal().Err(err).Msg("load world")
	}
	if missing := w.Unsupported(version.Default()); len(missing) > 0 {
		names := make([]string, len(missing))
		for i, v := range missing {
			names[i] = v.String()
		}
		log.Warn().Strs("versions", names).Str("dimension", w.Dimension()).Msg("no registry codec, these clients are refused")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := []mclimbo.Option{mclimbo.WithLogger(log)}
	if cfg.Waker.Enabled {
		wk, err := waker.New(ctx, cfg.Waker.Region, cfg.Waker.InstanceID, cfg.Waker.Cooldown, log.With().Str("component", "waker").Logger())
		if err != nil {
			log.Fatal().Err(err).Msg("create waker")
		}
		opts = append(opts, mclimbo.WithWaker(wk))
	}

	srv, err := mclimbo.NewServer(cfg, w, opts...)
	if err != nil {
		log.Fatal().Err(err).Msg("create server")
	}
	if err = srv.ListenAndServe(ctx); err != nil {
		log.Fatal().Err(err).Msg("serve")
	}
	log.Info().Msg("shut down")
}
