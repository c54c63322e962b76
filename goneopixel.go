package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/blaz-r/go-neopixel/neopixel"
	"github.com/blaz-r/go-neopixel/serial"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	path := "config.yaml"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		log.Fatal().Err(err).Msg("bad config")
	}

	layout, err := neopixel.ParseMode(cfg.Mode)
	if err != nil {
		log.Fatal().Err(err).Msg("bad mode")
	}
	out, err := serial.Open(serial.Options{
		Port:      cfg.Port,
		Pin:       cfg.Pin,
		NumPixels: cfg.NumPixels,
		Channels:  layout.BytesPerPixel(),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("no output device")
	}
	strip, err := neopixel.NewStrip(cfg.NumPixels, cfg.Mode, out)
	if err != nil {
		log.Fatal().Err(err).Msg("bad strip config")
	}
	strip.SetBrightness(cfg.Brightness)
	defer func() {
		strip.Clear()
		if err := strip.Show(); err != nil {
			log.Error().Err(err).Msg("blanking the strip failed")
		}
		if err := out.Halt(); err != nil {
			log.Error().Err(err).Msg("halting the device failed")
		}
	}()

	frame, err := effect(cfg.Effect)
	if err != nil {
		log.Fatal().Err(err).Msg("bad effect")
	}

	log.Info().
		Int("pixels", cfg.NumPixels).
		Str("mode", cfg.Mode).
		Str("effect", cfg.Effect).
		Msg("starting")
	serial.NewLooper(strip, cfg.FPS, frame).Start()
}
