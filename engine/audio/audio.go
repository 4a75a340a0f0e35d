// Package audio plays short sound effects and looping music through a
// single mixed output device. Sounds are decoded fully into memory at
// load time; playback is fire-and-forget with an optional handle for
// stopping and volume changes.
package audio

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/vorbis"
	"github.com/faiface/beep/wav"
)

// mixRate is the device sample rate; decoded sounds at other rates are
// resampled at play time.
const mixRate beep.SampleRate = 44100

var (
	initOnce sync.Once
	initErr  error
)

// Init opens the output device. Safe to call more than once; later calls
// return the first result. Load and Play call it implicitly.
func Init() error {
	initOnce.Do(func() {
		initErr = speaker.Init(mixRate, mixRate.N(time.Second/20))
		if initErr != nil {
			initErr = fmt.Errorf("open audio device: %w", initErr)
		}
	})
	return initErr
}

// Sound is a fully decoded, playable audio clip.
type Sound struct {
	buf *beep.Buffer
}

// Format sniffs the container type from the data header.
type Format int

const (
	FormatUnknown Format = iota
	FormatWAV
	FormatOGG
)

func sniff(data []byte) Format {
	switch {
	case len(data) >= 12 && string(data[0:4]) == "RIFF" && string(data[8:12]) == "WAVE":
		return FormatWAV
	case len(data) >= 4 && string(data[0:4]) == "OggS":
		return FormatOGG
	default:
		return FormatUnknown
	}
}

// Decode parses WAV or Ogg Vorbis bytes into a Sound.
func Decode(data []byte) (*Sound, error) {
	if err := Init(); err != nil {
		return nil, err
	}

	rc := io.NopCloser(bytes.NewReader(data))
	var (
		stream beep.StreamSeekCloser
		format beep.Format
		err    error
	)
	switch sniff(data) {
	case FormatWAV:
		stream, format, err = wav.Decode(rc)
	case FormatOGG:
		stream, format, err = vorbis.Decode(rc)
	default:
		return nil, fmt.Errorf("decode sound: unrecognized container")
	}
	if err != nil {
		return nil, fmt.Errorf("decode sound: %w", err)
	}
	defer stream.Close()

	buf := beep.NewBuffer(format)
	buf.Append(stream)
	return &Sound{buf: buf}, nil
}

// Duration returns the clip length.
func (s *Sound) Duration() time.Duration {
	return s.buf.Format().SampleRate.D(s.buf.Len())
}

// PlayOptions tune one playback of a Sound.
type PlayOptions struct {
	Loop bool
	// Volume in [0,1]; 0 uses the default of 1 (full volume).
	Volume float64
}

// Playback is a handle to one playing instance.
type Playback struct {
	ctrl *beep.Ctrl
	vol  *effects.Volume
	done chan struct{}
}

// Play starts the sound and returns a handle. Multiple plays of the same
// Sound mix independently.
func (s *Sound) Play(opts PlayOptions) (*Playback, error) {
	if err := Init(); err != nil {
		return nil, err
	}

	var streamer beep.Streamer = s.buf.Streamer(0, s.buf.Len())
	if opts.Loop {
		streamer = beep.Loop(-1, s.buf.Streamer(0, s.buf.Len()))
	}
	if sr := s.buf.Format().SampleRate; sr != mixRate {
		streamer = beep.Resample(4, sr, mixRate, streamer)
	}

	volume := opts.Volume
	if volume <= 0 {
		volume = 1
	}
	p := &Playback{done: make(chan struct{})}
	p.vol = &effects.Volume{
		Streamer: streamer,
		Base:     2,
		Volume:   volumeToGain(volume),
		Silent:   volume == 0,
	}
	p.ctrl = &beep.Ctrl{Streamer: p.vol}

	speaker.Play(beep.Seq(p.ctrl, beep.Callback(func() { close(p.done) })))
	return p, nil
}

// volumeToGain maps a linear [0,1] volume to beep's exponential scale
// (v=1 is unity gain, v=0.5 is -1 with Base 2).
func volumeToGain(v float64) float64 {
	if v <= 0 {
		return -10
	}
	return math.Log2(v)
}

// SetPaused pauses or resumes the playback.
func (p *Playback) SetPaused(paused bool) {
	speaker.Lock()
	p.ctrl.Paused = paused
	speaker.Unlock()
}

// Stop silences and detaches the playback permanently.
func (p *Playback) Stop() {
	speaker.Lock()
	p.ctrl.Streamer = nil
	speaker.Unlock()
}

// Done reports whether the playback has finished (never true for loops).
func (p *Playback) Done() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}
