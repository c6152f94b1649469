package audio

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/gordonklaus/portaudio"
)

// runPortAudio opens a callback stream on the configured device and keeps
// it running until ctx is done.
func (a *Audio) runPortAudio(ctx context.Context) error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("%w: %v", ErrNoDevice, err)
	}
	defer portaudio.Terminate()

	dev, err := findOutputDevice(a.opts.Device)
	if err != nil {
		return err
	}
	if dev.MaxOutputChannels < a.opts.Channels {
		return fmt.Errorf("%w: %s has %d output channels, need %d", ErrNoDevice, dev.Name, dev.MaxOutputChannels, a.opts.Channels)
	}
	p := portaudio.HighLatencyParameters(nil, dev)
	p.Output.Channels = a.opts.Channels
	p.SampleRate = float64(a.opts.SampleRate)
	p.FramesPerBuffer = a.opts.BufferSize
	stream, err := portaudio.OpenStream(p, a.Process)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNoDevice, err)
	}
	defer func() {
		if err := stream.Close(); err != nil {
			log.Printf("error while closing stream: %v", err)
		}
	}()
	if err := stream.Start(); err != nil {
		return fmt.Errorf("%w: %v", ErrNoDevice, err)
	}
	log.Printf("portaudio: %s, %d Hz, %d channels, %d frames per buffer", dev.Name, a.opts.SampleRate, a.opts.Channels, a.opts.BufferSize)
	<-ctx.Done()
	return stream.Stop()
}

// findOutputDevice returns the default output, or the first output device
// whose name contains name.
func findOutputDevice(name string) (*portaudio.DeviceInfo, error) {
	if name == "" {
		dev, err := portaudio.DefaultOutputDevice()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNoDevice, err)
		}
		return dev, nil
	}
	devices, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoDevice, err)
	}
	for _, dev := range devices {
		if dev.MaxOutputChannels > 0 && strings.Contains(dev.Name, name) {
			return dev, nil
		}
	}
	return nil, fmt.Errorf("%w: no output device matches %q", ErrNoDevice, name)
}

func listOutputDevices(w io.Writer) error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("%w: %v", ErrNoDevice, err)
	}
	defer portaudio.Terminate()
	devices, err := portaudio.Devices()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNoDevice, err)
	}
	fmt.Fprintln(w, "audio outputs:")
	for i, dev := range devices {
		if dev.MaxOutputChannels == 0 {
			continue
		}
		fmt.Fprintf(w, "  %d: %s (%d channels, %.0f Hz)\n", i, dev.Name, dev.MaxOutputChannels, dev.DefaultSampleRate)
	}
	return nil
}
