package adapter

import (
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"

	"github.com/atotto/clipboard"
)

// Opener hands store URLs to the desktop: the system browser or the clipboard
type Opener struct {
	command string // override for the system opener, empty for OS default
	logger  *slog.Logger

	// hooks replaced in tests
	start    func(name string, args ...string) error
	copyText func(text string) error
}

// NewOpener creates an Opener. command overrides open/xdg-open when set.
func NewOpener(command string, logger *slog.Logger) *Opener {
	if logger == nil {
		logger = slog.Default()
	}
	return &Opener{
		command:  command,
		logger:   logger,
		start:    startCommand,
		copyText: clipboard.WriteAll,
	}
}

func startCommand(name string, args ...string) error {
	return exec.Command(name, args...).Start() // don't wait for the browser
}

// systemOpener returns the command and leading args that open a URL on this OS
func systemOpener(goos string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", nil
	case "windows":
		return "cmd", []string{"/c", "start", ""}
	default:
		// Linux and other Unix-like systems
		return "xdg-open", nil
	}
}

// Open opens url with the configured command or the system default handler
func (o *Opener) Open(url string) error {
	if url == "" {
		return fmt.Errorf("open: empty url")
	}

	name, args := o.command, []string(nil)
	if name == "" {
		name, args = systemOpener(runtime.GOOS)
	}
	args = append(args, url)

	o.logger.Info("opening url", "command", name, "url", url)

	if err := o.start(name, args...); err != nil {
		o.logger.Error("failed to open url", "command", name, "error", err)
		return fmt.Errorf("failed to launch %s: %w", name, err)
	}
	return nil
}

// Copy places text on the system clipboard
func (o *Opener) Copy(text string) error {
	if err := o.copyText(text); err != nil {
		o.logger.Warn("clipboard unavailable", "error", err)
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return nil
}
