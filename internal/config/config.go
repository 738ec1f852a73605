// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics" toml:"graphics"`
	Scene    SceneConfig    `yaml:"scene" toml:"scene"`
	Motion   MotionConfig   `yaml:"motion" toml:"motion"`
	Water    WaterConfig    `yaml:"water" toml:"water"`
	Camera   CameraConfig   `yaml:"camera" toml:"camera"`
	Lighting LightingConfig `yaml:"lighting" toml:"lighting"`
	Audio    AudioConfig    `yaml:"audio" toml:"audio"`
	Logging  LoggingConfig  `yaml:"logging" toml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width         int    `yaml:"width" toml:"width"`
	Height        int    `yaml:"height" toml:"height"`
	Fullscreen    bool   `yaml:"fullscreen" toml:"fullscreen"`
	VSync         bool   `yaml:"vsync" toml:"vsync"`
	FPSLimit      int    `yaml:"fps_limit" toml:"fps_limit"`
	MSAA          int    `yaml:"msaa" toml:"msaa"`
	ShowFPS       bool   `yaml:"show_fps" toml:"show_fps"`
	ScreenshotDir string `yaml:"screenshot_dir" toml:"screenshot_dir"`
}

// SceneConfig selects what is placed in the tank.
type SceneConfig struct {
	Seed      int64    `yaml:"seed" toml:"seed"`             // 0 picks a seed from the clock
	Manifest  string   `yaml:"manifest" toml:"manifest"`     // empty uses the built-in manifest
	AssetDirs []string `yaml:"asset_dirs" toml:"asset_dirs"` // later entries take priority
	Watch     bool     `yaml:"watch" toml:"watch"`           // rebuild the scene when the manifest changes
}

// MotionConfig tunes the swimmer animation.
type MotionConfig struct {
	TimeScale     float64 `yaml:"time_scale" toml:"time_scale"`
	OrbitConstant float32 `yaml:"orbit_constant" toml:"orbit_constant"`
	StartPaused   bool    `yaml:"start_paused" toml:"start_paused"`
}

// WaterConfig holds the surface wave parameters.
type WaterConfig struct {
	Amplitude float32 `yaml:"amplitude" toml:"amplitude"`
	Frequency float32 `yaml:"frequency" toml:"frequency"`
	Speed     float32 `yaml:"speed" toml:"speed"`
}

// CameraConfig holds the starting view and control sensitivities.
type CameraConfig struct {
	Distance        float32 `yaml:"distance" toml:"distance"`
	Pitch           float32 `yaml:"pitch" toml:"pitch"` // radians
	FOV             float32 `yaml:"fov" toml:"fov"`     // degrees
	DragSensitivity float32 `yaml:"drag_sensitivity" toml:"drag_sensitivity"`
	ZoomSensitivity float32 `yaml:"zoom_sensitivity" toml:"zoom_sensitivity"`
	MoveSpeed       float32 `yaml:"move_speed" toml:"move_speed"`
}

// LightingConfig holds the point light.
type LightingConfig struct {
	Color      [4]float32 `yaml:"color" toml:"color"`
	Position   [3]float32 `yaml:"position" toml:"position"`
	ShowMarker bool       `yaml:"show_marker" toml:"show_marker"`
}

// AudioConfig holds the ambient tank sound.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled" toml:"enabled"`
	Ambient string  `yaml:"ambient" toml:"ambient"` // WAV resolved through the asset dirs
	Volume  float64 `yaml:"volume" toml:"volume"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	LogFile string `yaml:"log_file" toml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:         1920,
			Height:        1080,
			Fullscreen:    false,
			VSync:         true,
			FPSLimit:      0,
			MSAA:          4,
			ShowFPS:       false,
			ScreenshotDir: "screenshots",
		},
		Scene: SceneConfig{
			Seed:      0,
			Manifest:  "",
			AssetDirs: []string{"."},
		},
		Motion: MotionConfig{
			TimeScale:     1,
			OrbitConstant: 1000,
		},
		Water: WaterConfig{
			Amplitude: 100,
			Frequency: 0.5,
			Speed:     10,
		},
		Camera: CameraConfig{
			Distance:        80,
			Pitch:           0.52,
			FOV:             45,
			DragSensitivity: 0.005,
			ZoomSensitivity: 0.1,
			MoveSpeed:       0.02,
		},
		Lighting: LightingConfig{
			Color:      [4]float32{1, 1, 1, 1},
			Position:   [3]float32{0, 5, 0},
			ShowMarker: true,
		},
		Audio: AudioConfig{
			Enabled: false,
			Ambient: "Sounds/tank.wav",
			Volume:  0.5,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
