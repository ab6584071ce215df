package jigsaw

import (
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// DefaultSnapDistance is the snap distance used when Config.SnapDistance is 0.
const DefaultSnapDistance = 20.0

const (
	defaultMinimumSnap   = 6.0
	maxSnapDistance      = 320.0
	defaultGhostOpacity  = 0.35
	defaultPeekDuration  = 2 * time.Second
	minPeekDuration      = 500 * time.Millisecond
	maxPeekDuration      = 10 * time.Second
	resizeDebounce       = 120 * time.Millisecond
	defaultScreenshotDir = "screenshots"
)

// Config configures a Board. Zero values select defaults.
type Config struct {
	// ImageURL locates the source image. It is passed verbatim to Loader.
	ImageURL string `yaml:"image"`
	// Cols and Rows set the grid shape; both must be at least 2.
	Cols int `yaml:"cols"`
	Rows int `yaml:"rows"`

	// SnapDistance is the release tolerance in surface pixels. Zero selects
	// 20. The value is clamped to [MinimumSnap, 320].
	SnapDistance float64 `yaml:"snap"`
	// MinimumSnap is the lower clamp for SnapDistance. Zero selects 6.
	MinimumSnap float64 `yaml:"minimum_snap"`
	// BackgroundOpacity is the initial ghost overlay alpha in [0, 1].
	// Nil selects 0.35; use Opacity to set an explicit value, including 0.
	BackgroundOpacity *float64 `yaml:"ghost"`

	// OnComplete fires once when every piece is placed.
	OnComplete func() `yaml:"-"`
	// OnProgress fires after each release, layout and shuffle.
	OnProgress func(placed, total int) `yaml:"-"`
	// OnError fires once if the source image cannot be used.
	OnError func(message string) `yaml:"-"`
	// OnShuffle fires after ShufflePieces and Reset.
	OnShuffle func(onlyUnplaced bool) `yaml:"-"`

	// Loader fetches the source image. Nil selects DefaultLoader.
	Loader ImageLoader `yaml:"-"`
	// Logger receives structured board logs. Nil disables logging.
	Logger *zap.Logger `yaml:"-"`
	// Rand drives scatter placement. Nil seeds a generator from the clock.
	Rand *rand.Rand `yaml:"-"`
	// Now reads the clock for elapsed-time tracking. Nil selects time.Now.
	Now func() time.Time `yaml:"-"`

	// Debug logs per-render timing at debug level.
	Debug bool `yaml:"debug"`
	// ScreenshotDir receives PNGs queued with Board.Screenshot.
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// Opacity returns a pointer to v for Config.BackgroundOpacity.
func Opacity(v float64) *float64 {
	return &v
}

// withDefaults returns a copy of c with every unset field filled in and
// every numeric field clamped into range.
func (c Config) withDefaults() Config {
	if c.MinimumSnap <= 0 {
		c.MinimumSnap = defaultMinimumSnap
	}
	if c.SnapDistance == 0 {
		c.SnapDistance = DefaultSnapDistance
	}
	c.SnapDistance = clamp(c.SnapDistance, c.MinimumSnap, maxSnapDistance)
	opacity := defaultGhostOpacity
	if c.BackgroundOpacity != nil {
		opacity = clamp01(*c.BackgroundOpacity)
	}
	c.BackgroundOpacity = &opacity
	if c.Loader == nil {
		c.Loader = DefaultLoader{}
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	if c.Rand == nil {
		c.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	if c.ScreenshotDir == "" {
		c.ScreenshotDir = defaultScreenshotDir
	}
	return c
}

// Resolved returns c as NewBoard would use it, with defaults applied and
// values clamped.
func (c Config) Resolved() Config {
	return c.withDefaults()
}

// Validate reports configuration problems that make a board unusable.
func (c Config) Validate() error {
	if c.Cols < 2 || c.Rows < 2 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidGrid, c.Cols, c.Rows)
	}
	return nil
}

// LoadPreset parses a YAML board preset. Only the data fields are read;
// callbacks and collaborators must be set in code.
//
//	image: https://example.com/cat.jpg
//	cols: 4
//	rows: 3
//	snap: 18
//	ghost: 0.35
func LoadPreset(data []byte) (Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("parse preset: %w", err)
	}
	return c, nil
}
