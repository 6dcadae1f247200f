package cli

import (
	"errors"
	"runtime"
	"testing"
)

func TestClipboardPicksAvailableTool(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("tool order is linux specific")
	}
	available := map[string]bool{"xsel": true}
	c := &Clipboard{lookPath: func(name string) (string, error) {
		if available[name] {
			return "/usr/bin/" + name, nil
		}
		return "", errors.New("not found")
	}}

	args, err := c.command()
	if err != nil {
		t.Fatalf("command() error = %v", err)
	}
	if args[0] != "xsel" {
		t.Fatalf("picked %v, want xsel", args)
	}
	if !c.Enabled() {
		t.Fatal("expected clipboard enabled")
	}

	available = map[string]bool{}
	if c.Enabled() {
		t.Fatal("expected clipboard disabled without tools")
	}
}
