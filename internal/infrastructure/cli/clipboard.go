package cli

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/doeshing/texturepro/internal/ports"
)

// Clipboard implements ports.Clipboard using platform-specific tools.
type Clipboard struct {
	lookPath func(string) (string, error)
}

// NewClipboard builds the clipboard helper.
func NewClipboard() *Clipboard {
	return &Clipboard{lookPath: exec.LookPath}
}

// Enabled reports whether a clipboard tool is available.
func (c *Clipboard) Enabled() bool {
	_, err := c.command()
	return err == nil
}

// Copy copies text to the system clipboard.
func (c *Clipboard) Copy(text string) error {
	args, err := c.command()
	if err != nil {
		return err
	}
	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stdin = strings.NewReader(text)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", args[0], err, strings.TrimSpace(string(out)))
	}
	return nil
}

// command picks the first available tool for the current platform.
func (c *Clipboard) command() ([]string, error) {
	var candidates [][]string
	switch runtime.GOOS {
	case "darwin":
		candidates = [][]string{{"pbcopy"}}
	case "windows":
		candidates = [][]string{{"clip"}}
	case "linux", "freebsd", "openbsd":
		candidates = [][]string{
			{"wl-copy"},
			{"xclip", "-selection", "clipboard"},
			{"xsel", "--clipboard", "--input"},
		}
	default:
		return nil, fmt.Errorf("clipboard not supported on %s", runtime.GOOS)
	}
	for _, candidate := range candidates {
		if _, err := c.lookPath(candidate[0]); err == nil {
			return candidate, nil
		}
	}
	return nil, errors.New("clipboard utilities not found")
}

var _ ports.Clipboard = (*Clipboard)(nil)
