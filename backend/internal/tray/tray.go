// Package tray shows the playground in the system tray.
package tray

import (
	"log"
	"os/exec"
	"runtime"
	"sync"
	"sync/atomic"

	"fyne.io/systray"
)

// Actions are the callbacks behind the menu items. Recenter and Shutdown are
// called from the tray goroutine.
type Actions struct {
	Recenter func()
	Shutdown func()
}

// Tray manages the system tray icon and menu
type Tray struct {
	url          string
	actions      Actions
	logger       *log.Logger
	once         sync.Once
	shuttingDown atomic.Bool
	menuOpen     *systray.MenuItem
	menuRecenter *systray.MenuItem
	menuExit     *systray.MenuItem
}

// New creates a new Tray for the debug view at url.
func New(url string, actions Actions, logger *log.Logger) *Tray {
	if logger == nil {
		logger = log.Default()
	}
	return &Tray{
		url:     url,
		actions: actions,
		logger:  logger,
	}
}

// Run initializes and runs the system tray (blocks until Quit())
func (t *Tray) Run(iconData []byte) {
	systray.Run(func() {
		t.onReady(iconData)
	}, func() {
		t.onExit()
	})
}

// Quit removes the tray icon. It is safe to call before Run returns.
func (t *Tray) Quit() {
	t.shuttingDown.Store(true)
	systray.Quit()
}

func (t *Tray) onReady(iconData []byte) {
	if iconData != nil {
		systray.SetIcon(iconData)
	}
	systray.SetTitle("XR Playground")
	systray.SetTooltip("XR Playground - " + t.url)

	t.menuOpen = systray.AddMenuItem("Open debug view", "Open the controller debug view")
	t.menuRecenter = systray.AddMenuItem("Recenter", "Move the viewer back to the origin")
	systray.AddSeparator()
	t.menuExit = systray.AddMenuItem("Exit", "Quit application")

	// Handle menu clicks in separate goroutines to prevent blocking
	go t.handleMenuClicks()

	t.logger.Println("System tray initialized")
}

// handleMenuClicks processes menu item clicks without blocking
func (t *Tray) handleMenuClicks() {
	for {
		select {
		case <-t.menuOpen.ClickedCh:
			if !t.shuttingDown.Load() {
				t.openBrowser()
			}
		case <-t.menuRecenter.ClickedCh:
			if !t.shuttingDown.Load() && t.actions.Recenter != nil {
				t.actions.Recenter()
			}
		case <-t.menuExit.ClickedCh:
			if t.shuttingDown.CompareAndSwap(false, true) {
				if t.actions.Shutdown != nil {
					t.once.Do(t.actions.Shutdown)
				}
				systray.Quit()
				return
			}
		}
	}
}

func (t *Tray) onExit() {
	t.shuttingDown.Store(true)
	t.logger.Println("System tray exiting")
}

func (t *Tray) openBrowser() {
	name, args := browserCommand(runtime.GOOS, t.url)
	if err := exec.Command(name, args...).Start(); err != nil {
		t.logger.Printf("Failed to open browser: %v", err)
	}
}

// browserCommand returns the command that opens url in the default browser.
func browserCommand(goos, url string) (string, []string) {
	switch goos {
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}
	case "darwin":
		return "open", []string{url}
	default:
		return "xdg-open", []string{url}
	}
}

// DebugURL turns a listen address into the URL of the debug view.
func DebugURL(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "http://localhost" + addr
	}
	return "http://" + addr
}
