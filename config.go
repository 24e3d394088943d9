package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	SaveDirectory string `mapstructure:"save_directory"`
	MagnifyScale  int    `mapstructure:"magnify_scale"`
	PreviewWidth  int    `mapstructure:"preview_width"`
	EditorWidth   int    `mapstructure:"editor_width"`
	LogFile       string `mapstructure:"log_file"`
	LogLevel      string `mapstructure:"log_level"`
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("save_directory", "")
	v.SetDefault("magnify_scale", 3)
	v.SetDefault("preview_width", 44)
	v.SetDefault("editor_width", 64)
	v.SetDefault("log_file", "")
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix("ICONMAKER")
	v.AutomaticEnv()
	return v
}

// LoadConfig reads iconmaker.yaml from the first search path that has one.
// A missing file leaves the defaults in place.
func LoadConfig(paths ...string) (*viper.Viper, error) {
	v := newViper()
	v.SetConfigName("iconmaker")
	v.SetConfigType("yaml")

	if len(paths) == 0 {
		paths = defaultConfigPaths()
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}
	return v, nil
}

func defaultConfigPaths() []string {
	var paths []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "iconmaker"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "iconmaker"))
	}
	return append(paths, ".")
}

func ParseConfig(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}

	c.SaveDirectory = expandDir(c.SaveDirectory)
	if c.MagnifyScale < 2 {
		c.MagnifyScale = 2
	}
	if c.MagnifyScale > 8 {
		c.MagnifyScale = 8
	}
	if c.PreviewWidth < 16 {
		c.PreviewWidth = 16
	}
	if c.EditorWidth < 32 {
		c.EditorWidth = 32
	}
	return &c, nil
}

func expandDir(value string) string {
	if value == "" {
		return ""
	}
	if strings.HasPrefix(value, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			value = filepath.Join(home, strings.TrimPrefix(value, "~"))
		}
	}
	if !filepath.IsAbs(value) {
		if absPath, err := filepath.Abs(value); err == nil {
			value = absPath
		}
	}
	return value
}

func (c *Config) GetSavePath(filename string) string {
	if c.SaveDirectory == "" {
		return filename
	}
	os.MkdirAll(c.SaveDirectory, 0755)
	return filepath.Join(c.SaveDirectory, filename)
}

// watchConfig reparses the file on every change and hands the result to
// onChange. Invalid edits are logged and ignored.
func watchConfig(v *viper.Viper, onChange func(*Config)) {
	if v.ConfigFileUsed() == "" {
		return
	}
	v.OnConfigChange(func(e fsnotify.Event) {
		cfg, err := ParseConfig(v)
		if err != nil {
			logrus.WithField("file", e.Name).Errorf("config reload failed: %v", err)
			return
		}
		logrus.WithFields(logrus.Fields{"file": e.Name, "op": e.Op.String()}).Info("config reloaded")
		onChange(cfg)
	})
	v.WatchConfig()
}
