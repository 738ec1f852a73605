package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"testing"
)

func TestVolumeConversion(t *testing.T) {
	tests := []struct {
		vol  float64
		want float64
	}{
		{1.0, 0},
		{0.5, -1},
		{0.25, -2},
		{0.0, -100},
		{-1, -100},
	}

	for _, tt := range tests {
		if got := volumeToDb(tt.vol); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("volumeToDb(%f) = %f, want %f", tt.vol, got, tt.want)
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, lo, hi, want float64
	}{
		{0.5, 0, 1, 0.5},
		{-1, 0, 1, 0},
		{2, 0, 1, 1},
		{0, 0, 1, 0},
		{1, 0, 1, 1},
	}

	for _, tt := range tests {
		if got := clamp(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Errorf("clamp(%f, %f, %f) = %f, want %f", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestVolumeAndMute(t *testing.T) {
	m := New(0.4)
	if m.Volume() != 0.4 {
		t.Errorf("volume = %f, want 0.4", m.Volume())
	}

	m.SetVolume(2.0)
	if m.Volume() != 1.0 {
		t.Errorf("volume = %f, want 1.0 (clamped)", m.Volume())
	}
	m.SetVolume(-1.0)
	if m.Volume() != 0.0 {
		t.Errorf("volume = %f, want 0.0 (clamped)", m.Volume())
	}

	if !m.ToggleMute() || !m.Muted() {
		t.Error("first toggle should mute")
	}
	if m.ToggleMute() {
		t.Error("second toggle should unmute")
	}
}

func TestPlayAmbientRequiresInit(t *testing.T) {
	m := New(1)
	if err := m.PlayAmbient(wavBytes(4), "tank.wav"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("expected ErrNotInitialized, got %v", err)
	}
	if m.Playing() != "" {
		t.Errorf("nothing should be playing, got %q", m.Playing())
	}
}

func TestDecode(t *testing.T) {
	s, format, err := decode(wavBytes(8))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	defer s.Close()
	if format.SampleRate != DefaultSampleRate || format.NumChannels != 2 {
		t.Errorf("format = %+v", format)
	}
	if s.Len() != 8 {
		t.Errorf("len = %d, want 8", s.Len())
	}

	if _, _, err := decode([]byte("not a wav file")); err == nil {
		t.Error("expected error for garbage")
	}
}

func TestLoopStreamerWraps(t *testing.T) {
	s, _, err := decode(wavBytes(3))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	defer s.Close()

	l := &loopStreamer{streamer: s, resampled: s}
	buf := make([][2]float64, 10)
	n, ok := l.Stream(buf)
	if n != 10 || !ok {
		t.Fatalf("Stream = %d, %v; want 10, true", n, ok)
	}
	// Samples repeat with the period of the source.
	for i := 3; i < 10; i++ {
		if buf[i] != buf[i-3] {
			t.Fatalf("sample %d = %v, want %v", i, buf[i], buf[i-3])
		}
	}
}

func TestLoopStreamerEmptySource(t *testing.T) {
	s, _, err := decode(wavBytes(0))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	defer s.Close()

	l := &loopStreamer{streamer: s, resampled: s}
	if n, ok := l.Stream(make([][2]float64, 4)); n != 0 || ok {
		t.Errorf("Stream = %d, %v; want 0, false", n, ok)
	}
}

// wavBytes builds a 16-bit stereo PCM file with n frames.
func wavBytes(n int) []byte {
	var buf bytes.Buffer
	dataSize := uint32(n * 4)
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, 36+dataSize)
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(2))
	binary.Write(&buf, binary.LittleEndian, uint32(DefaultSampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(int(DefaultSampleRate)*4))
	binary.Write(&buf, binary.LittleEndian, uint16(4))
	binary.Write(&buf, binary.LittleEndian, uint16(16))
	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, dataSize)
	for i := 0; i < n; i++ {
		v := int16((i + 1) * 1000)
		binary.Write(&buf, binary.LittleEndian, v)
		binary.Write(&buf, binary.LittleEndian, -v)
	}
	return buf.Bytes()
}
