package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	CORS   CORSConfig   `mapstructure:"cors"`
	Log    LogConfig    `mapstructure:"log"`
	Banner BannerConfig `mapstructure:"banner"`
	Avatar AvatarConfig `mapstructure:"avatar"`
	Fonts  FontConfig   `mapstructure:"fonts"`
}

type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
	MaxAge         int      `mapstructure:"max_age"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// BannerConfig fixes the output canvas and the animation parameters.
type BannerConfig struct {
	Width       int           `mapstructure:"width"`
	Height      int           `mapstructure:"height"`
	Frames      int           `mapstructure:"frames"`
	FrameDelay  time.Duration `mapstructure:"frame_delay"`
	LoopCount   int           `mapstructure:"loop_count"`
	Quality     int           `mapstructure:"quality"`
	CacheMaxAge time.Duration `mapstructure:"cache_max_age"`
}

type AvatarConfig struct {
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
	MaxBytes  int64         `mapstructure:"max_bytes"`
}

// FontConfig points at optional font files. An empty path selects the
// embedded Go fonts; the script font has no embedded fallback.
type FontConfig struct {
	BoldPath    string `mapstructure:"bold_path"`
	RegularPath string `mapstructure:"regular_path"`
	ScriptPath  string `mapstructure:"script_path"`
	// ScriptCandidates are tried in order when ScriptPath is empty.
	ScriptCandidates []string `mapstructure:"script_candidates"`
}

// DefaultScriptFonts are common install locations of fonts carrying the
// Arabic presentation forms.
var DefaultScriptFonts = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/TTF/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/freefont/FreeSerif.ttf",
	"/usr/share/fonts/truetype/noto/NotoSansArabic-Regular.ttf",
	"/usr/share/fonts/noto/NotoSansArabic-Regular.ttf",
}

const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 60*time.Second)

	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{"Content-Type"})
	v.SetDefault("cors.max_age", 600)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("banner.width", 800)
	v.SetDefault("banner.height", 400)
	v.SetDefault("banner.frames", 20)
	v.SetDefault("banner.frame_delay", 100*time.Millisecond)
	v.SetDefault("banner.loop_count", 0)
	v.SetDefault("banner.quality", 10)
	v.SetDefault("banner.cache_max_age", time.Hour)

	v.SetDefault("avatar.timeout", 10*time.Second)
	v.SetDefault("avatar.user_agent", DefaultUserAgent)
	v.SetDefault("avatar.max_bytes", int64(5<<20))

	v.SetDefault("fonts.bold_path", "")
	v.SetDefault("fonts.regular_path", "")
	v.SetDefault("fonts.script_path", "")
	v.SetDefault("fonts.script_candidates", DefaultScriptFonts)
}

// Load reads configPath when it is not empty, then applies BANNER_* environment
// overrides (banner.frames -> BANNER_BANNER_FRAMES).
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("BANNER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the configuration used when no file or environment is set.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		// defaults alone always decode
		panic(err)
	}
	return cfg
}
