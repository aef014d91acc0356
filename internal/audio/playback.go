package audio

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
)

// CommandBackend plays audio files with a platform audio player
type CommandBackend struct {
	goos     string
	lookPath func(string) (string, error)
}

// NewCommandBackend returns a backend for the running platform
func NewCommandBackend() *CommandBackend {
	return &CommandBackend{goos: runtime.GOOS, lookPath: exec.LookPath}
}

// Play runs the player and blocks until it exits. A non-zero exit, e.g. a
// file the player cannot decode, is returned as an error.
func (b *CommandBackend) Play(ctx context.Context, path string) error {
	name, args, err := b.command(path)
	if err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, name, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s failed: %w (%s)", name, err, string(output))
	}
	return nil
}

// command picks the player binary and arguments for path
func (b *CommandBackend) command(path string) (string, []string, error) {
	switch b.goos {
	case "darwin":
		return "afplay", []string{path}, nil
	case "linux", "freebsd", "openbsd":
		// mpg123 first since it handles MP3 files best
		candidates := []struct {
			name string
			args []string
		}{
			{"mpg123", []string{"-q", path}},
			{"ffplay", []string{"-nodisp", "-autoexit", "-loglevel", "quiet", path}},
			{"play", []string{"-q", path}},
			{"paplay", []string{path}},
			{"aplay", []string{"-q", path}},
		}
		for _, c := range candidates {
			if _, err := b.lookPath(c.name); err == nil {
				return c.name, c.args, nil
			}
		}
		return "", nil, fmt.Errorf("no audio player found. Install mpg123, ffplay, sox, paplay, or aplay")
	case "windows":
		return "powershell", []string{"-NoProfile", "-Command",
			fmt.Sprintf("(New-Object Media.SoundPlayer '%s').PlaySync()", path)}, nil
	default:
		return "", nil, fmt.Errorf("unsupported platform: %s", b.goos)
	}
}
