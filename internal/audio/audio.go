// Package audio turns named cues into tone sequences and hands them to a
// synthesizer. Playback is fire-and-forget: failures are logged and counted,
// never returned.
package audio

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goodtune/brightboard/internal/metrics"
	"github.com/rs/zerolog"
)

// ErrUnknownCue is returned by Notes for names with no tone.
var ErrUnknownCue = errors.New("audio: unknown cue")

// Cue names.
const (
	Success  = "success"
	Error    = "error"
	Click    = "click"
	Star     = "star"
	Complete = "complete"
	Animal   = "animal"
	Correct  = "correct"
	Wrong    = "wrong"
)

// AnimalPrefix selects an animal variant, as in "animal:cow".
const AnimalPrefix = Animal + ":"

// Waveform is an oscillator shape.
type Waveform string

const (
	Sine     Waveform = "sine"
	Square   Waveform = "square"
	Sawtooth Waveform = "sawtooth"
)

// Note is one oscillator burst, offset from the start of the cue.
type Note struct {
	Frequency float64
	Start     time.Duration
	Duration  time.Duration
	Waveform  Waveform
}

// MarshalJSON encodes offsets in milliseconds for the browser synthesizer.
func (n Note) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Frequency  float64  `json:"frequency"`
		StartMs    int64    `json:"startMs"`
		DurationMs int64    `json:"durationMs"`
		Waveform   Waveform `json:"waveform"`
	}{n.Frequency, n.Start.Milliseconds(), n.Duration.Milliseconds(), n.Waveform})
}

type tone struct {
	frequency float64
	duration  time.Duration
	waveform  Waveform
}

var tones = map[string]tone{
	Success:  {880, 150 * time.Millisecond, Sine},
	Error:    {200, 300 * time.Millisecond, Square},
	Click:    {600, 50 * time.Millisecond, Sine},
	Star:     {1200, 200 * time.Millisecond, Sine},
	Complete: {523.25, 500 * time.Millisecond, Sine},
	Animal:   {300, 400 * time.Millisecond, Sawtooth},
	Correct:  {880, 150 * time.Millisecond, Sine},
	Wrong:    {200, 300 * time.Millisecond, Square},
}

type animalCall struct {
	frequencies []float64
	step        time.Duration
	waveform    Waveform
}

const fallbackAnimal = "dog"

var animalCalls = map[string]animalCall{
	"cat":  {[]float64{400, 500, 400}, 300 * time.Millisecond, Sine},
	"dog":  {[]float64{200, 250, 200, 180}, 150 * time.Millisecond, Sawtooth},
	"cow":  {[]float64{150, 120, 100}, 500 * time.Millisecond, Sawtooth},
	"lion": {[]float64{100, 80, 60}, 600 * time.Millisecond, Sawtooth},
}

// Star arpeggio: C5, E5, G5.
var starNotes = []float64{523.25, 659.25, 783.99}

const (
	starSpacing  = 150 * time.Millisecond
	starDuration = 400 * time.Millisecond
)

// Notes returns the tone sequence for a cue name. "animal:<name>" selects an
// animal call; unknown animals use the dog call.
func Notes(name string) ([]Note, error) {
	if animal, ok := strings.CutPrefix(name, AnimalPrefix); ok {
		return AnimalNotes(animal), nil
	}
	t, ok := tones[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCue, name)
	}
	return []Note{{Frequency: t.frequency, Duration: t.duration, Waveform: t.waveform}}, nil
}

// AnimalNotes returns the call for animal.
func AnimalNotes(animal string) []Note {
	call, ok := animalCalls[animal]
	if !ok {
		call = animalCalls[fallbackAnimal]
	}
	notes := make([]Note, len(call.frequencies))
	for i, f := range call.frequencies {
		notes[i] = Note{
			Frequency: f,
			Start:     time.Duration(i) * call.step,
			Duration:  call.step,
			Waveform:  call.waveform,
		}
	}
	return notes
}

// StarNotes returns an ascending arpeggio with one note per star, up to three.
func StarNotes(count int) []Note {
	count = min(max(count, 0), len(starNotes))
	notes := make([]Note, count)
	for i := 0; i < count; i++ {
		notes[i] = Note{
			Frequency: starNotes[i],
			Start:     time.Duration(i) * starSpacing,
			Duration:  starDuration,
			Waveform:  Sine,
		}
	}
	return notes
}

// Synth renders notes on an output device.
type Synth interface {
	Play(notes []Note) error
}

// Player plays cues when sound is enabled.
type Player struct {
	synth   Synth
	enabled func() bool
	logger  zerolog.Logger
}

// NewPlayer creates a player. enabled is consulted on every cue; nil means
// always enabled.
func NewPlayer(synth Synth, enabled func() bool, logger zerolog.Logger) *Player {
	if enabled == nil {
		enabled = func() bool { return true }
	}
	return &Player{
		synth:   synth,
		enabled: enabled,
		logger:  logger.With().Str("component", "audio").Logger(),
	}
}

// Play plays cue name if enabled is true.
func (p *Player) Play(name string, enabled bool) {
	if !enabled {
		return
	}
	notes, err := Notes(name)
	if err != nil {
		p.fail(name, err)
		return
	}
	p.render(name, notes)
}

// PlayCue plays name if sound is currently enabled.
func (p *Player) PlayCue(name string) {
	p.Play(name, p.enabled())
}

// PlayStars plays the star arpeggio for count stars.
func (p *Player) PlayStars(count int) {
	if !p.enabled() {
		return
	}
	if notes := StarNotes(count); len(notes) > 0 {
		p.render(Star, notes)
	}
}

func (p *Player) render(name string, notes []Note) {
	defer func() {
		if r := recover(); r != nil {
			p.fail(name, fmt.Errorf("synth panic: %v", r))
		}
	}()
	if p.synth == nil {
		return
	}
	if err := p.synth.Play(notes); err != nil {
		p.fail(name, err)
	}
}

func (p *Player) fail(name string, err error) {
	label := name
	if strings.HasPrefix(name, AnimalPrefix) {
		label = Animal
	}
	metrics.CueFailures.WithLabelValues(label).Inc()
	p.logger.Warn().Err(err).Str("cue", name).Msg("Sound playback failed")
}

// LogSynth writes cues to a logger instead of a device. It is used on
// headless hosts where the browser does the actual synthesis.
type LogSynth struct {
	Logger zerolog.Logger
}

// Play logs the notes at debug level.
func (s LogSynth) Play(notes []Note) error {
	s.Logger.Debug().Int("notes", len(notes)).Float64("first_hz", notes[0].Frequency).Msg("Cue")
	return nil
}
