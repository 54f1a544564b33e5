// Package sdlinput reads desktop joysticks through SDL3 and presents them as
// xr-standard controllers. The SDL binding loads libSDL3 when the program
// starts, so it is only linked into builds tagged sdl; other builds get a
// Source whose Open fails with ErrUnavailable.
package sdlinput

import "errors"

var ErrUnavailable = errors.New("sdl input not built in, rebuild with -tags sdl")

// Available reports whether this build links SDL.
func Available() bool {
	return available
}
