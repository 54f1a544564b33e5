package tray

import _ "embed"

// A 16x16 ring, 32-bit ico.
//
//go:embed icon.ico
var iconData []byte

// GetIcon returns the tray icon.
func GetIcon() []byte {
	return iconData
}
