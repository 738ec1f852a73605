// Package audio plays the looping ambient sound of the tank.
package audio

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

// DefaultSampleRate is the default sample rate for audio playback.
const DefaultSampleRate = beep.SampleRate(44100)

// ErrNotInitialized is returned when playback is requested before Init.
var ErrNotInitialized = errors.New("audio not initialized")

// Manager owns the speaker and the ambient loop.
type Manager struct {
	mu sync.RWMutex

	initialized bool
	sampleRate  beep.SampleRate

	streamer beep.StreamSeekCloser
	ctrl     *beep.Ctrl
	volume   *effects.Volume
	name     string

	// 0.0 to 1.0
	level float64
	muted bool
}

// New creates an audio manager at the given volume.
func New(volume float64) *Manager {
	return &Manager{level: clamp(volume, 0, 1)}
}

// Init opens the speaker.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	m.sampleRate = DefaultSampleRate
	if err := speaker.Init(m.sampleRate, m.sampleRate.N(time.Second/30)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	m.initialized = true
	return nil
}

// Close stops playback.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stopInternal()
	m.initialized = false
}

// Volume returns the ambient volume.
func (m *Manager) Volume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.level
}

// SetVolume sets the ambient volume (0.0 to 1.0).
func (m *Manager) SetVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.level = clamp(vol, 0, 1)
	m.applyVolume()
}

// ToggleMute silences or restores the ambient loop and reports whether it
// is now muted.
func (m *Manager) ToggleMute() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted = !m.muted
	m.applyVolume()
	return m.muted
}

// Muted reports whether the loop is muted.
func (m *Manager) Muted() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.muted
}

// Playing returns the name of the current loop, or "".
func (m *Manager) Playing() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.name
}

// PlayAmbient replaces the current loop with the WAV in data.
func (m *Manager) PlayAmbient(data []byte, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return ErrNotInitialized
	}

	streamer, format, err := decode(data)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	m.stopInternal()

	var resampled beep.Streamer = streamer
	if format.SampleRate != m.sampleRate {
		resampled = beep.Resample(4, format.SampleRate, m.sampleRate, streamer)
	}

	m.ctrl = &beep.Ctrl{Streamer: &loopStreamer{streamer: streamer, resampled: resampled}}
	m.volume = &effects.Volume{Streamer: m.ctrl, Base: 2}
	m.applyVolume()
	m.streamer = streamer
	m.name = name

	speaker.Play(m.volume)
	return nil
}

// Stop ends the ambient loop.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopInternal()
}

func (m *Manager) stopInternal() {
	if m.initialized {
		speaker.Clear()
	}
	if m.streamer != nil {
		m.streamer.Close()
		m.streamer = nil
	}
	m.ctrl = nil
	m.volume = nil
	m.name = ""
}

func (m *Manager) applyVolume() {
	if m.volume == nil {
		return
	}
	speaker.Lock()
	defer speaker.Unlock()
	m.volume.Silent = m.muted || m.level <= 0
	m.volume.Volume = volumeToDb(m.level)
}

func decode(data []byte) (beep.StreamSeekCloser, beep.Format, error) {
	streamer, format, err := wav.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("decode wav: %w", err)
	}
	return streamer, format, nil
}

// volumeToDb converts a 0-1 volume to a base-2 exponent for effects.Volume.
// 1 is unchanged, 0.5 is half amplitude.
func volumeToDb(vol float64) float64 {
	if vol <= 0 {
		return -100
	}
	return math.Log2(vol)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// loopStreamer rewinds the source whenever it runs out.
type loopStreamer struct {
	streamer  beep.StreamSeeker
	resampled beep.Streamer
}

func (l *loopStreamer) Stream(samples [][2]float64) (int, bool) {
	filled := 0
	rewound := false
	for filled < len(samples) {
		n, ok := l.resampled.Stream(samples[filled:])
		filled += n
		if n > 0 {
			rewound = false
		}
		if !ok {
			// An empty source would rewind forever.
			if rewound {
				return filled, filled > 0
			}
			if err := l.streamer.Seek(0); err != nil {
				return filled, filled > 0
			}
			rewound = true
		}
	}
	return filled, true
}

func (l *loopStreamer) Err() error {
	return l.streamer.Err()
}
