//go:build portaudio

package driver

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// PortAudioStream plays the adapter output through the default PortAudio device.
// The host callback size is Config.FramesPerBuffer.
type PortAudioStream struct {
	stream *portaudio.Stream
}

func NewPortAudioStream(a *Adapter) (*PortAudioStream, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("init portaudio: %w", err)
	}
	stream, err := portaudio.OpenDefaultStream(0, 2, float64(a.config.SampleRate), a.config.FramesPerBuffer, a.Callback)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("open stream: %w", err)
	}
	return &PortAudioStream{stream: stream}, nil
}

func (s *PortAudioStream) Start() error {
	return s.stream.Start()
}

func (s *PortAudioStream) Close() error {
	err := s.stream.Close()
	portaudio.Terminate()
	return err
}
