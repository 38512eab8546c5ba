package scanner

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/fatih/color"

	"github.com/birkaops/birka/internal/logging"
)

// Feedback is the class of signal given to the operator after a scan.
type Feedback int

const (
	NoFeedback Feedback = iota
	Success
	Warning
	Error
)

func (f Feedback) String() string {
	switch f {
	case Success:
		return "success"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "none"
	}
}

// Tone is a sine beep starting Offset after the pattern begins.
type Tone struct {
	Freq     float64
	Duration time.Duration
	Offset   time.Duration
}

// Pattern is what a feedback class sounds and feels like.
type Pattern struct {
	Tones     []Tone
	Vibration []time.Duration
}

// PatternFor returns the pattern of f; NoFeedback has an empty pattern.
func PatternFor(f Feedback) Pattern {
	switch f {
	case Success:
		return Pattern{
			Tones:     []Tone{{Freq: 880, Duration: 80 * time.Millisecond}},
			Vibration: []time.Duration{100 * time.Millisecond},
		}
	case Warning:
		return Pattern{
			Tones:     []Tone{{Freq: 440, Duration: 100 * time.Millisecond}},
			Vibration: []time.Duration{80 * time.Millisecond},
		}
	case Error:
		return Pattern{
			Tones: []Tone{
				{Freq: 220, Duration: 120 * time.Millisecond},
				{Freq: 180, Duration: 120 * time.Millisecond, Offset: 180 * time.Millisecond},
			},
			Vibration: []time.Duration{100 * time.Millisecond, 50 * time.Millisecond, 100 * time.Millisecond},
		}
	}
	return Pattern{}
}

const (
	DefaultSampleRate = 22050

	startGain = 0.15
	endGain   = 0.01
)

// Synthesize renders tones as 16-bit little-endian mono PCM. Each tone
// decays exponentially from startGain to endGain over its duration.
func Synthesize(tones []Tone, sampleRate int) []byte {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	var total time.Duration
	for _, t := range tones {
		total = max(total, t.Offset+t.Duration)
	}
	n := samples(total, sampleRate)
	mix := make([]float64, n)

	for _, t := range tones {
		start := samples(t.Offset, sampleRate)
		count := samples(t.Duration, sampleRate)
		for i := 0; i < count && start+i < n; i++ {
			sec := float64(i) / float64(sampleRate)
			gain := startGain * math.Pow(endGain/startGain, sec/t.Duration.Seconds())
			mix[start+i] += gain * math.Sin(2*math.Pi*t.Freq*sec)
		}
	}

	out := make([]byte, 2*n)
	for i, v := range mix {
		v = max(-1, min(1, v))
		binary.LittleEndian.PutUint16(out[2*i:], uint16(int16(v*math.MaxInt16)))
	}
	return out
}

func samples(d time.Duration, rate int) int {
	return int(math.Round(d.Seconds() * float64(rate)))
}

// WAV wraps mono 16-bit PCM in a RIFF/WAVE container.
func WAV(pcm []byte, sampleRate int) []byte {
	var b bytes.Buffer
	le := binary.LittleEndian

	b.WriteString("RIFF")
	_ = binary.Write(&b, le, uint32(36+len(pcm)))
	b.WriteString("WAVEfmt ")
	_ = binary.Write(&b, le, uint32(16))
	_ = binary.Write(&b, le, uint16(1)) // PCM
	_ = binary.Write(&b, le, uint16(1)) // mono
	_ = binary.Write(&b, le, uint32(sampleRate))
	_ = binary.Write(&b, le, uint32(sampleRate*2))
	_ = binary.Write(&b, le, uint16(2))
	_ = binary.Write(&b, le, uint16(16))
	b.WriteString("data")
	_ = binary.Write(&b, le, uint32(len(pcm)))
	b.Write(pcm)
	return b.Bytes()
}

// AudioSink plays PCM produced by Synthesize.
type AudioSink interface {
	Play(pcm []byte, sampleRate int) error
}

// Vibrator runs an on/off vibration pattern.
type Vibrator interface {
	Vibrate(pattern []time.Duration) error
}

// Player renders feedback classes. Nil sinks are skipped and sink errors are
// only logged.
type Player struct {
	Audio      AudioSink
	Vibrator   Vibrator
	SampleRate int
	Log        logging.Logger
}

func (p *Player) Play(ctx context.Context, f Feedback) {
	if p == nil || f == NoFeedback {
		return
	}
	pat := PatternFor(f)

	if p.Audio != nil {
		rate := p.SampleRate
		if rate <= 0 {
			rate = DefaultSampleRate
		}
		if err := p.Audio.Play(Synthesize(pat.Tones, rate), rate); err != nil {
			p.logf(ctx, "play feedback tone", f, err)
		}
	}
	if p.Vibrator != nil {
		if err := p.Vibrator.Vibrate(pat.Vibration); err != nil {
			p.logf(ctx, "vibrate", f, err)
		}
	}
}

func (p *Player) logf(ctx context.Context, msg string, f Feedback, err error) {
	if p.Log != nil {
		p.Log.Debug(ctx, msg, "feedback", f.String(), "error", err)
	}
}

// TerminalSink rings the terminal bell instead of playing audio and prints
// colored status lines.
type TerminalSink struct {
	Out io.Writer
}

func (t TerminalSink) Play([]byte, int) error {
	_, err := io.WriteString(t.Out, "\a")
	return err
}

var statusColors = map[Feedback]*color.Color{
	Success: color.New(color.FgGreen, color.Bold),
	Warning: color.New(color.FgYellow, color.Bold),
	Error:   color.New(color.FgRed, color.Bold),
}

// Status prints msg in the color of f.
func (t TerminalSink) Status(f Feedback, msg string) {
	c, ok := statusColors[f]
	if !ok {
		fmt.Fprintln(t.Out, msg)
		return
	}
	c.Fprintln(t.Out, msg)
}
