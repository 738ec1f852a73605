// Package setup turns viewer configuration into scene parameters.
package setup

import (
	"time"

	"github.com/Faultbox/aquarium/internal/config"
	"github.com/Faultbox/aquarium/internal/engine/water"
	"github.com/Faultbox/aquarium/internal/scene"
)

// ResolveSeed returns seed, or a clock-derived seed when it is zero.
func ResolveSeed(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return time.Now().UnixNano()
}

// Motion applies the configured overrides to the default motion.
func Motion(cfg config.MotionConfig) scene.Motion {
	m := scene.DefaultMotion()
	if cfg.OrbitConstant > 0 {
		m.OrbitConstant = cfg.OrbitConstant
	}
	return m
}

// Wave converts the water settings.
func Wave(cfg config.WaterConfig) water.Wave {
	return water.Wave{
		Amplitude: float64(cfg.Amplitude),
		Frequency: float64(cfg.Frequency),
		Speed:     float64(cfg.Speed),
	}
}
