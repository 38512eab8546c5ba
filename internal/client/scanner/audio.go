package scanner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"time"
)

// ErrNoAudioPlayer is returned on platforms without a known command-line WAV
// player.
var ErrNoAudioPlayer = errors.New("no audio player")

const playTimeout = 2 * time.Second

// CommandAudio plays tones by handing a WAV file to an external player. When
// the player fails, Fallback (if any) is used and the player error returned.
type CommandAudio struct {
	// Run defaults to SystemAudioPlayer.
	Run      func(ctx context.Context, wav []byte) error
	Fallback AudioSink
}

func (a CommandAudio) Play(pcm []byte, sampleRate int) error {
	run := a.Run
	if run == nil {
		run = SystemAudioPlayer
	}
	ctx, cancel := context.WithTimeout(context.Background(), playTimeout)
	defer cancel()

	err := run(ctx, WAV(pcm, sampleRate))
	if err != nil && a.Fallback != nil {
		if ferr := a.Fallback.Play(pcm, sampleRate); ferr != nil {
			err = errors.Join(err, ferr)
		}
	}
	return err
}

var lookPath = exec.LookPath

// audioCommand is the player binary for the current platform.
func audioCommand() string {
	switch runtime.GOOS {
	case "darwin":
		return "afplay"
	case "linux", "freebsd", "openbsd", "netbsd":
		return "aplay"
	}
	return ""
}

// SystemAudio returns a CommandAudio when the platform player is installed,
// otherwise fallback.
func SystemAudio(fallback AudioSink) AudioSink {
	name := audioCommand()
	if name == "" {
		return fallback
	}
	if _, err := lookPath(name); err != nil {
		return fallback
	}
	return CommandAudio{Fallback: fallback}
}

// SystemAudioPlayer plays wav with aplay (fed on stdin) or afplay (which only
// reads files).
func SystemAudioPlayer(ctx context.Context, wav []byte) error {
	switch audioCommand() {
	case "aplay":
		cmd := exec.CommandContext(ctx, "aplay", "-q", "-")
		cmd.Stdin = bytes.NewReader(wav)
		return cmd.Run()
	case "afplay":
		f, err := os.CreateTemp("", "birka-beep-*.wav")
		if err != nil {
			return fmt.Errorf("create tone file: %w", err)
		}
		defer os.Remove(f.Name())
		if _, err := f.Write(wav); err != nil {
			_ = f.Close()
			return fmt.Errorf("write tone file: %w", err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("write tone file: %w", err)
		}
		return exec.CommandContext(ctx, "afplay", f.Name()).Run()
	}
	return ErrNoAudioPlayer
}
