package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the service settings
type Config struct {
	Listen      string
	CORSOrigins []string
	Debug       bool

	PhysicsHz float64
	CameraHz  float64
	StreamHz  float64

	BeltSize int
	Seed     int64

	RateLimit float64 // intents per second per client
	RateBurst int

	Metrics bool
}

// SetDefaults registers every key with its default value
func SetDefaults(v *viper.Viper) {
	v.SetDefault("listen", ":8080")
	v.SetDefault("cors.origins", []string{"http://localhost:4200"})
	v.SetDefault("debug", false)
	v.SetDefault("physics.hz", 60)
	v.SetDefault("camera.hz", 60)
	v.SetDefault("stream.hz", 30)
	v.SetDefault("belt.count", 300)
	v.SetDefault("seed", 0)
	v.SetDefault("ratelimit.rps", 50)
	v.SetDefault("ratelimit.burst", 100)
	v.SetDefault("metrics.enabled", true)
}

// Load reads an optional config file, ORRERY_* environment variables and
// whatever flags were bound to v. Explicit file paths must exist.
func Load(v *viper.Viper, path string) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix("orrery")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("orrery")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := Config{
		Listen:      v.GetString("listen"),
		CORSOrigins: v.GetStringSlice("cors.origins"),
		Debug:       v.GetBool("debug"),
		PhysicsHz:   v.GetFloat64("physics.hz"),
		CameraHz:    v.GetFloat64("camera.hz"),
		StreamHz:    v.GetFloat64("stream.hz"),
		BeltSize:    v.GetInt("belt.count"),
		Seed:        v.GetInt64("seed"),
		RateLimit:   v.GetFloat64("ratelimit.rps"),
		RateBurst:   v.GetInt("ratelimit.burst"),
		Metrics:     v.GetBool("metrics.enabled"),
	}
	return cfg, cfg.Validate()
}

// Validate rejects settings the engine cannot run with
func (c Config) Validate() error {
	switch {
	case c.Listen == "":
		return errors.New("config: listen address is empty")
	case len(c.CORSOrigins) == 0:
		return errors.New("config: no cors origins")
	case c.PhysicsHz <= 0 || c.CameraHz <= 0 || c.StreamHz <= 0:
		return fmt.Errorf("config: loop rates must be positive (physics %g, camera %g, stream %g)", c.PhysicsHz, c.CameraHz, c.StreamHz)
	case c.BeltSize < 0:
		return fmt.Errorf("config: negative belt size %d", c.BeltSize)
	case c.RateLimit <= 0 || c.RateBurst <= 0:
		return fmt.Errorf("config: rate limit must be positive (rps %g, burst %d)", c.RateLimit, c.RateBurst)
	}
	return nil
}

func interval(hz float64) time.Duration {
	return time.Duration(float64(time.Second) / hz)
}

// PhysicsInterval is the physics loop period
func (c Config) PhysicsInterval() time.Duration { return interval(c.PhysicsHz) }
// CameraInterval is the camera loop period
func (c Config) CameraInterval() time.Duration  { return interval(c.CameraHz) }
// StreamInterval is the minimum gap between streamed frames
func (c Config) StreamInterval() time.Duration  { return interval(c.StreamHz) }
