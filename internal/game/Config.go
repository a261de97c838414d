package game

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	GameTickDuration   = 50 * time.Millisecond
	BaseSnakeLength    = 4
	MinSnakeLength     = 4
	PixelSize          = 10
	DefaultFieldWidth  = 400
	DefaultFieldHeight = 400
	PointsPerFood      = 1
)

const (
	SnakeColor Color = 34
	FoodColor  Color = 33
	FieldColor Color = 233
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	FieldWidth    int
	FieldHeight   int
	SegmentWidth  int
	SegmentHeight int

	BaseSnakeLength int
	// MinSnakeLength rejects shorter snakes at construction; zero disables it.
	MinSnakeLength      int
	SkipTrailingSegment bool
	ReverseWrap         WrapPolicy

	TickDuration  time.Duration
	PointsPerFood int

	SnakeColor Color
	FoodColor  Color
	FieldColor Color

	// Seed feeds food placement. Zero picks a time based seed.
	Seed int64
}

func DefaultConfig() Config {
	return Config{
		FieldWidth:          DefaultFieldWidth,
		FieldHeight:         DefaultFieldHeight,
		SegmentWidth:        PixelSize,
		SegmentHeight:       PixelSize,
		BaseSnakeLength:     BaseSnakeLength,
		MinSnakeLength:      MinSnakeLength,
		SkipTrailingSegment: true,
		ReverseWrap:         WrapFlush,
		TickDuration:        GameTickDuration,
		PointsPerFood:       PointsPerFood,
		SnakeColor:          SnakeColor,
		FoodColor:           FoodColor,
		FieldColor:          FieldColor,
	}
}

func (c Config) ChainPolicy() ChainPolicy {
	return ChainPolicy{
		MinLength:           c.MinSnakeLength,
		SkipTrailingSegment: c.SkipTrailingSegment,
		ReverseWrap:         c.ReverseWrap,
	}
}

func (c Config) Validate() error {
	switch {
	case c.SegmentWidth <= 0 || c.SegmentHeight <= 0:
		return fmt.Errorf("%w: segment size %dx%d", ErrInvalidConfig, c.SegmentWidth, c.SegmentHeight)
	case c.FieldWidth < c.SegmentWidth || c.FieldHeight < c.SegmentHeight:
		return fmt.Errorf("%w: field %dx%d smaller than one segment", ErrInvalidConfig, c.FieldWidth, c.FieldHeight)
	case c.TickDuration <= 0:
		return fmt.Errorf("%w: tick duration %s", ErrInvalidConfig, c.TickDuration)
	case c.BaseSnakeLength < 1:
		return fmt.Errorf("%w: base snake length %d", ErrInvalidConfig, c.BaseSnakeLength)
	}
	return nil
}

// LoadConfigFromEnv starts from DefaultConfig and applies any SNAKE_*
// overrides found in the environment.
func LoadConfigFromEnv() (Config, error) {
	return loadConfig(DefaultConfig(), os.LookupEnv)
}

func loadConfig(cfg Config, lookup func(string) (string, bool)) (Config, error) {
	ints := []struct {
		name   string
		target *int
	}{
		{"SNAKE_FIELD_WIDTH", &cfg.FieldWidth},
		{"SNAKE_FIELD_HEIGHT", &cfg.FieldHeight},
		{"SNAKE_SEGMENT_SIZE", &cfg.SegmentWidth},
		{"SNAKE_BASE_LENGTH", &cfg.BaseSnakeLength},
		{"SNAKE_MIN_LENGTH", &cfg.MinSnakeLength},
		{"SNAKE_POINTS_PER_FOOD", &cfg.PointsPerFood},
	}
	for _, entry := range ints {
		raw, ok := lookup(entry.name)
		if !ok || raw == "" {
			continue
		}
		value, err := strconv.Atoi(raw)
		if err != nil {
			return cfg, fmt.Errorf("%w: %s=%q: %w", ErrInvalidConfig, entry.name, raw, err)
		}
		*entry.target = value
	}
	if _, ok := lookup("SNAKE_SEGMENT_SIZE"); ok {
		cfg.SegmentHeight = cfg.SegmentWidth
	}

	if raw, ok := lookup("SNAKE_TICK_MS"); ok && raw != "" {
		ms, err := strconv.Atoi(raw)
		if err != nil {
			return cfg, fmt.Errorf("%w: SNAKE_TICK_MS=%q: %w", ErrInvalidConfig, raw, err)
		}
		cfg.TickDuration = time.Duration(ms) * time.Millisecond
	}

	if raw, ok := lookup("SNAKE_SEED"); ok && raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("%w: SNAKE_SEED=%q: %w", ErrInvalidConfig, raw, err)
		}
		cfg.Seed = seed
	}

	if raw, ok := lookup("SNAKE_SKIP_TRAILING"); ok && raw != "" {
		skip, err := strconv.ParseBool(raw)
		if err != nil {
			return cfg, fmt.Errorf("%w: SNAKE_SKIP_TRAILING=%q: %w", ErrInvalidConfig, raw, err)
		}
		cfg.SkipTrailingSegment = skip
	}

	if raw, ok := lookup("SNAKE_REVERSE_WRAP"); ok && raw != "" {
		switch raw {
		case "flush":
			cfg.ReverseWrap = WrapFlush
		case "edge":
			cfg.ReverseWrap = WrapEdge
		default:
			return cfg, fmt.Errorf("%w: SNAKE_REVERSE_WRAP=%q, want flush or edge", ErrInvalidConfig, raw)
		}
	}

	return cfg, cfg.Validate()
}
