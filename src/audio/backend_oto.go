package audio

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/hajimehoshi/oto"
)

// runOto plays through oto, which pulls 16-bit frames from Read.
func (a *Audio) runOto(ctx context.Context) error {
	if a.opts.Channels > 2 {
		return fmt.Errorf("%w: oto supports at most 2 channels, got %d", ErrNoDevice, a.opts.Channels)
	}
	bufferSizeInBytes := a.opts.BufferSize * a.opts.Channels * bitDepthInBytes
	otoContext, err := oto.NewContext(a.opts.SampleRate, a.opts.Channels, bitDepthInBytes, bufferSizeInBytes)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNoDevice, err)
	}
	defer func() {
		if err := otoContext.Close(); err != nil {
			log.Printf("error while closing oto: %v", err)
		}
	}()
	p := otoContext.NewPlayer()
	defer func() {
		if err := p.Close(); err != nil {
			log.Printf("error while closing player: %v", err)
		}
	}()
	log.Printf("oto: %d Hz, %d channels, %d frames per buffer", a.opts.SampleRate, a.opts.Channels, a.opts.BufferSize)

	// blocks until ctx is done and Read returns io.EOF
	if _, err := io.CopyBuffer(p, a, make([]byte, bufferSizeInBytes)); err != nil {
		return err
	}
	return nil
}
