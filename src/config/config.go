// Package config loads the synth daemon's YAML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	Audio Audio  `yaml:"audio"`
	Midi  Midi   `yaml:"midi"`
	IPC   IPC    `yaml:"ipc"`
	Log   Log    `yaml:"log"`
	Patch string `yaml:"patch"`
}

type Audio struct {
	Backend      string        `yaml:"backend"`
	Device       string        `yaml:"device"`
	SampleRate   int           `yaml:"sample_rate"`
	BufferSize   int           `yaml:"buffer_size"`
	Channels     int           `yaml:"channels"`
	LeftChannel  int           `yaml:"left_channel"`
	RightChannel int           `yaml:"right_channel"`
	DeviceRetry  time.Duration `yaml:"device_retry"`
}

type Midi struct {
	Enabled bool   `yaml:"enabled"`
	Port    string `yaml:"port"`
	Channel int    `yaml:"channel"`
}

type IPC struct {
	Socket         string        `yaml:"socket"`
	ReportInterval time.Duration `yaml:"report_interval"`
}

type Log struct {
	Debug bool `yaml:"debug"`
}

func Default() *Config {
	return &Config{
		Audio: Audio{
			Backend:      "oto",
			SampleRate:   48000,
			BufferSize:   256,
			Channels:     2,
			LeftChannel:  0,
			RightChannel: 1,
			DeviceRetry:  2 * time.Second,
		},
		Midi: Midi{Enabled: true},
		IPC: IPC{
			Socket:         "/tmp/mono-synth.sock",
			ReportInterval: time.Second / 60,
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

var (
	sampleRates = []int{44100, 48000, 96000}
	bufferSizes = []int{64, 128, 256, 512, 1024}
)

func contains(list []int, v int) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

func (c *Config) Validate() error {
	a := &c.Audio
	switch a.Backend {
	case "oto", "portaudio":
	default:
		return fmt.Errorf("%w: audio.backend %q", ErrInvalid, a.Backend)
	}
	if !contains(sampleRates, a.SampleRate) {
		return fmt.Errorf("%w: audio.sample_rate %d", ErrInvalid, a.SampleRate)
	}
	if !contains(bufferSizes, a.BufferSize) {
		return fmt.Errorf("%w: audio.buffer_size %d", ErrInvalid, a.BufferSize)
	}
	if a.Channels < 1 {
		return fmt.Errorf("%w: audio.channels %d", ErrInvalid, a.Channels)
	}
	if a.LeftChannel >= a.Channels || a.RightChannel >= a.Channels {
		return fmt.Errorf("%w: output slots %d/%d with %d channels", ErrInvalid, a.LeftChannel, a.RightChannel, a.Channels)
	}
	if a.DeviceRetry <= 0 {
		return fmt.Errorf("%w: audio.device_retry %v", ErrInvalid, a.DeviceRetry)
	}
	if c.Midi.Channel < 0 || c.Midi.Channel > 16 {
		return fmt.Errorf("%w: midi.channel %d", ErrInvalid, c.Midi.Channel)
	}
	if c.IPC.Socket == "" {
		return fmt.Errorf("%w: ipc.socket is empty", ErrInvalid)
	}
	if c.IPC.ReportInterval <= 0 {
		return fmt.Errorf("%w: ipc.report_interval %v", ErrInvalid, c.IPC.ReportInterval)
	}
	return nil
}
