//go:build !sdl

package sdlinput

import (
	"log"

	"github.com/soar/xrplayground/backend/internal/gamepad"
)

const available = false

// Source stands in for the SDL joystick source in builds without SDL.
type Source struct {
	logger *log.Logger
}

func New(logger *log.Logger) *Source {
	if logger == nil {
		logger = log.Default()
	}
	return &Source{logger: logger}
}

func (s *Source) Open() error {
	return ErrUnavailable
}

func (s *Source) Close() {}

func (s *Source) Poll() []gamepad.DeviceEvent {
	return nil
}
