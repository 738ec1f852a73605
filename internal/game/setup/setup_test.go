package setup

import (
	"testing"

	"github.com/Faultbox/aquarium/internal/config"
	"github.com/Faultbox/aquarium/internal/engine/water"
	"github.com/Faultbox/aquarium/internal/scene"
)

func TestResolveSeed(t *testing.T) {
	if got := ResolveSeed(42); got != 42 {
		t.Errorf("ResolveSeed(42) = %d", got)
	}
	if got := ResolveSeed(0); got == 0 {
		t.Error("zero seed should be replaced")
	}
}

func TestMotion(t *testing.T) {
	def := scene.DefaultMotion()

	m := Motion(config.MotionConfig{})
	if m != def {
		t.Errorf("empty config changed the motion: %+v", m)
	}

	m = Motion(config.MotionConfig{OrbitConstant: 500})
	if m.OrbitConstant != 500 || m.HeadOffset != def.HeadOffset {
		t.Errorf("unexpected motion %+v", m)
	}
}

func TestWave(t *testing.T) {
	if got := Wave(config.Default().Water); got != water.DefaultWave() {
		t.Errorf("default water config gives %+v, want %+v", got, water.DefaultWave())
	}
}
