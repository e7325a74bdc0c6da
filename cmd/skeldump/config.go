package main

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds everything skeldump needs for a run. Values come from flags, SKELDUMP_* environment variables, or a config file,
// in that order of priority.
type Config struct {
	Input    string `mapstructure:"input"`
	Scene    int    `mapstructure:"scene"`
	RootName string `mapstructure:"root-name"`
	Prune    bool   `mapstructure:"prune"`
	Format   string `mapstructure:"format"`
	LogLevel string `mapstructure:"log-level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("scene", -1)
	v.SetDefault("root-name", "Root")
	v.SetDefault("prune", false)
	v.SetDefault("format", formatTable)
	v.SetDefault("log-level", "warning")
}

// readConfig merges the config file (if any), the environment and the parsed flags into a Config.
func readConfig(flags *pflag.FlagSet, configFile string) (*Config, error) {

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("SKELDUMP")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", configFile, err)
		}
	}

	if err := v.BindPFlags(flags); err != nil {
		return nil, err
	}

	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	switch c.Format {
	case formatTable, formatJSON, formatTree:
	default:
		return nil, fmt.Errorf("unknown output format %q (want %s, %s or %s)", c.Format, formatTable, formatJSON, formatTree)
	}

	return c, nil

}
