package vellum

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds renderer-wide tunables. The zero value is usable; zero fields
// are replaced by the defaults below.
type Config struct {
	// MinAnimationTime is the duration below which animations skip the frame
	// scheduler and apply their final state on the next render pass.
	MinAnimationTime time.Duration `envconfig:"MIN_ANIMATION_TIME" default:"10ms"`

	// DragDeadZone is the pointer travel in pixels before a drag starts.
	DragDeadZone float64 `envconfig:"DRAG_DEAD_ZONE" default:"4"`

	// CollisionTolerance is the hit-test slack in pixels for outlines.
	CollisionTolerance float64 `envconfig:"COLLISION_TOLERANCE" default:"2"`

	// Debug enables per-pass render statistics at debug log level.
	Debug bool `envconfig:"DEBUG" default:"false"`

	// ScreenshotDir is where Scene.Screenshot writes PNG files.
	ScreenshotDir string `envconfig:"SCREENSHOT_DIR" default:"screenshots"`
}

const (
	defaultMinAnimationTime   = 10 * time.Millisecond
	defaultDragDeadZone       = 4.0
	defaultCollisionTolerance = 2.0
	defaultScreenshotDir      = "screenshots"
)

// LoadConfig reads a Config from VELLUM_* environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("VELLUM", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) withDefaults() Config {
	if c.MinAnimationTime == 0 {
		c.MinAnimationTime = defaultMinAnimationTime
	}
	if c.DragDeadZone == 0 {
		c.DragDeadZone = defaultDragDeadZone
	}
	if c.CollisionTolerance == 0 {
		c.CollisionTolerance = defaultCollisionTolerance
	}
	if c.ScreenshotDir == "" {
		c.ScreenshotDir = defaultScreenshotDir
	}
	return c
}
