package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Log     LogConfig     `mapstructure:"log"`
	Output  OutputConfig  `mapstructure:"output"`
	Convert ConvertConfig `mapstructure:"convert"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	Dir   string `mapstructure:"dir"` // 为空时输出到 stderr
}

type OutputConfig struct {
	Format string `mapstructure:"format"` // jsonl, pb
}

type ConvertConfig struct {
	Workers int      `mapstructure:"workers"`
	Names   []string `mapstructure:"names"`
}

func newViper() *viper.Viper {
	vp := viper.New()
	vp.SetDefault("log.level", "info")
	vp.SetDefault("log.dir", "")
	vp.SetDefault("output.format", "jsonl")
	vp.SetDefault("convert.workers", 1)
	vp.SetDefault("convert.names", []string{})

	vp.SetEnvPrefix("MJLOG")
	vp.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vp.AutomaticEnv()
	return vp
}

// Load reads the YAML file at path on top of the defaults. An empty path
// yields the defaults plus MJLOG_* environment overrides.
func Load(path string) (*Config, error) {
	vp := newViper()
	if path != "" {
		vp.SetConfigType("yaml")
		vp.SetConfigFile(path)
		if err := vp.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := vp.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
