package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/jinjor/mono-synth/src/audio"
	"github.com/jinjor/mono-synth/src/config"
	"golang.org/x/sync/errgroup"
)

const healthInterval = time.Second

var (
	configPath  = flag.String("config", "", "path to a YAML config file")
	backend     = flag.String("backend", "", "audio backend: oto or portaudio")
	console     = flag.Bool("console", false, "read commands from an interactive console instead of IPC")
	debug       = flag.Bool("debug", false, "enable debug logging")
	patch       = flag.String("patch", "", "patch file to load at startup")
	listDevices = flag.Bool("list-devices", false, "list audio outputs and MIDI inputs, then exit")
)

// errQuit ends the daemon without reporting a failure.
var errQuit = errors.New("quit")

func main() {
	flag.Parse()
	log.SetFlags(log.Lshortfile)

	if *listDevices {
		if err := audio.ListDevices(os.Stdout); err != nil {
			log.Fatalf("error: %v\n", err)
		}
		return
	}
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("error: %v\n", err)
	}
	audio.SetDebugLogging(cfg.Log.Debug)
	log.Printf("NumCPU: %v\n", runtime.NumCPU())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, err := audio.NewAudio(audioOptions(cfg))
	if err != nil {
		log.Fatalf("error: %v\n", err)
	}
	defer a.Close()
	if cfg.Patch != "" {
		a.CommandCh <- []string{"load", cfg.Patch}
	}

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, os.Interrupt, syscall.SIGTERM)
	defer func() {
		signal.Stop(signalCh)
		cancel()
	}()
	go func() {
		select {
		case sig := <-signalCh:
			log.Printf("Caught signal %s: shutting down...\n", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.Start(ctx)
	})
	g.Go(func() error {
		return a.WatchHealth(ctx, healthInterval)
	})
	if cfg.Midi.Enabled {
		g.Go(func() error {
			return a.ListenToMidiIn(ctx, cfg.Midi.Port)
		})
	}
	if *console {
		g.Go(func() error {
			return runConsole(ctx, a)
		})
	} else {
		g.Go(func() error {
			stopDiscard := discardDisplay(ctx, a.DisplayCh)
			defer stopDiscard()
			return withIPCConnection(ctx, cfg.IPC.Socket, func(ctx context.Context, conn *ipcConn) error {
				stopDiscard()
				ig, ctx := errgroup.WithContext(ctx)
				ig.Go(func() error {
					return receiveCommands(ctx, conn, a.CommandCh)
				})
				ig.Go(func() error {
					return sendReports(ctx, conn, a, cfg.IPC.ReportInterval)
				})
				return ig.Wait()
			})
		})
	}
	if err := g.Wait(); err != nil && !errors.Is(err, errQuit) {
		log.Fatalf("error: %v\n", err)
	}
	log.Println("main() ended.")
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, err
	}
	if *backend != "" {
		cfg.Audio.Backend = *backend
	}
	if *debug {
		cfg.Log.Debug = true
	}
	if *patch != "" {
		cfg.Patch = *patch
	}
	return cfg, cfg.Validate()
}

func audioOptions(cfg *config.Config) audio.Options {
	return audio.Options{
		Backend:      cfg.Audio.Backend,
		Device:       cfg.Audio.Device,
		SampleRate:   cfg.Audio.SampleRate,
		BufferSize:   cfg.Audio.BufferSize,
		Channels:     cfg.Audio.Channels,
		LeftChannel:  cfg.Audio.LeftChannel,
		RightChannel: cfg.Audio.RightChannel,
		DeviceRetry:  cfg.Audio.DeviceRetry,
		MidiChannel:  cfg.Midi.Channel,
		Display:      true,
	}
}
