package fortress

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// ConfigFileName is the base name (without extension) LoadConfig looks for.
const ConfigFileName = "fortress"

// Config holds every tunable of the simulation. Zero values are not
// meaningful; start from DefaultConfig or LoadConfig.
type Config struct {
	Screen     ScreenConfig     `mapstructure:"screen"`
	Ground     GroundConfig     `mapstructure:"ground"`
	Physics    PhysicsConfig    `mapstructure:"physics"`
	Bounds     BoundsConfig     `mapstructure:"bounds"`
	Settle     SettleConfig     `mapstructure:"settle"`
	Piece      PieceConfig      `mapstructure:"piece"`
	Drop       DropConfig       `mapstructure:"drop"`
	Projectile ProjectileConfig `mapstructure:"projectile"`
	Battle     BattleConfig     `mapstructure:"battle"`
	Tip        TipConfig        `mapstructure:"tip"`
	Store      StoreConfig      `mapstructure:"store"`
	LogLevel   string           `mapstructure:"logLevel"`

	// Logger receives all engine logging. Not read from files.
	Logger zerolog.Logger `mapstructure:"-"`
}

// ScreenConfig is the playfield size in world units.
type ScreenConfig struct {
	Width  float64 `mapstructure:"width"`
	Height float64 `mapstructure:"height"`
}

// GroundConfig places the ground segment Offset units above the bottom edge.
type GroundConfig struct {
	Offset float64 `mapstructure:"offset"`
}

// PhysicsConfig tunes the rigid-body backend.
type PhysicsConfig struct {
	Gravity    float64 `mapstructure:"gravity"`
	Damping    float64 `mapstructure:"damping"`
	Step       float64 `mapstructure:"step"`
	Iterations int     `mapstructure:"iterations"`
}

// BoundsConfig is the inset from the playfield edges the clamp pass enforces.
type BoundsConfig struct {
	Margin float64 `mapstructure:"margin"`
}

// SettleConfig holds the speed under which a body is hard-stopped.
type SettleConfig struct {
	Speed float64 `mapstructure:"speed"`
}

// PieceConfig tunes pieces and the destruction metric.
type PieceConfig struct {
	Radius            float64    `mapstructure:"radius"`
	FallenOffset      float64    `mapstructure:"fallenOffset"`
	DestroyedFraction float64    `mapstructure:"destroyedFraction"`
	Limits            KindLimits `mapstructure:"limits"`
}

// KindLimits is the per-fortress placement limit for each kind.
type KindLimits struct {
	Military int `mapstructure:"military"`
	Chinese  int `mapstructure:"chinese"`
	Go       int `mapstructure:"go"`
}

// Of returns the limit for kind k.
func (l KindLimits) Of(k PieceKind) int {
	switch k {
	case KindMilitary:
		return l.Military
	case KindChinese:
		return l.Chinese
	case KindGo:
		return l.Go
	default:
		return 0
	}
}

// DropConfig tunes the placement commit.
type DropConfig struct {
	GroundStrip    float64 `mapstructure:"groundStrip"`
	SettleVelocity float64 `mapstructure:"settleVelocity"`
}

// ProjectileConfig tunes the projectile body, charging and the extra impulse
// the collision rules give to struck pieces.
type ProjectileConfig struct {
	MaxStrength    float64 `mapstructure:"maxStrength"`
	ChargeRate     float64 `mapstructure:"chargeRate"`
	Mass           float64 `mapstructure:"mass"`
	Length         float64 `mapstructure:"length"`
	Width          float64 `mapstructure:"width"`
	AnchorInset    float64 `mapstructure:"anchorInset"`
	GroundDamping  float64 `mapstructure:"groundDamping"`
	BoostThreshold float64 `mapstructure:"boostThreshold"`
	BoostFactor    float64 `mapstructure:"boostFactor"`
	BoostMax       float64 `mapstructure:"boostMax"`
	SpecialBoost   float64 `mapstructure:"specialBoost"`
}

// BattleConfig tunes the building -> battle hand-off.
type BattleConfig struct {
	RepositionGap float64 `mapstructure:"repositionGap"`
}

// TipConfig controls how long a user-facing tip stays visible.
type TipConfig struct {
	Duration time.Duration `mapstructure:"duration"`
}

// StoreConfig locates the fortress database. An empty path keeps it in memory.
type StoreConfig struct {
	Path string `mapstructure:"path"`
}

// GroundY returns the y coordinate of the ground segment.
func (c Config) GroundY() float64 {
	return c.Screen.Height - c.Ground.Offset
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// Defaults are static; decoding them cannot fail.
	_ = v.Unmarshal(&cfg)
	cfg.Logger = zerolog.Nop()
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("screen.width", 800.0)
	v.SetDefault("screen.height", 600.0)
	v.SetDefault("ground.offset", 50.0)

	v.SetDefault("physics.gravity", 50.0)
	v.SetDefault("physics.damping", 0.95)
	v.SetDefault("physics.step", 1.0/120.0)
	v.SetDefault("physics.iterations", 10)

	v.SetDefault("bounds.margin", 20.0)
	v.SetDefault("settle.speed", 5.0)

	v.SetDefault("piece.radius", 20.0)
	v.SetDefault("piece.fallenOffset", 50.0)
	v.SetDefault("piece.destroyedFraction", 0.7)
	v.SetDefault("piece.limits.military", 5)
	v.SetDefault("piece.limits.chinese", 1)
	v.SetDefault("piece.limits.go", 3)

	v.SetDefault("drop.groundStrip", 20.0)
	v.SetDefault("drop.settleVelocity", -10.0)

	v.SetDefault("projectile.maxStrength", 2000.0)
	v.SetDefault("projectile.chargeRate", 50.0)
	v.SetDefault("projectile.mass", 0.5)
	v.SetDefault("projectile.length", 30.0)
	v.SetDefault("projectile.width", 4.0)
	v.SetDefault("projectile.anchorInset", 150.0)
	v.SetDefault("projectile.groundDamping", 0.8)
	v.SetDefault("projectile.boostThreshold", 100.0)
	v.SetDefault("projectile.boostFactor", 3.0)
	v.SetDefault("projectile.boostMax", 1500.0)
	v.SetDefault("projectile.specialBoost", 1.5)

	v.SetDefault("battle.repositionGap", 40.0)
	v.SetDefault("tip.duration", "2s")
	v.SetDefault("store.path", "")
	v.SetDefault("logLevel", "info")
}

// LoadConfig reads fortress.{json,yaml,toml} from dir on top of the defaults.
// A missing file is not an error; a malformed one is.
func LoadConfig(dir string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName(ConfigFileName)
	v.AddConfigPath(dir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("error decoding config: %w", err)
	}
	cfg.Logger = zerolog.Nop()
	return cfg, nil
}
