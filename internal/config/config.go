package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/rating/internal/errors"
)

const (
	// ConfigFileName is the name of the JSON configuration file.
	ConfigFileName = "rating.json"

	// YAMLConfigFileName is the name of the YAML configuration file.
	YAMLConfigFileName = "rating.yaml"

	// DefaultOffset is the gap between anchor and tooltip in pixels.
	DefaultOffset = 4.0

	// DefaultStarSize is the star size category used when none is configured.
	DefaultStarSize = "s"

	// DefaultPort is the default live server port.
	DefaultPort = 3000

	// DefaultHost is the default live server host.
	DefaultHost = "localhost"

	// DefaultMetricsPath is where Prometheus metrics are served.
	DefaultMetricsPath = "/metrics"

	// DefaultFilledColor is the star paint, in the page and in PNGs.
	DefaultFilledColor = "#f5b400"

	// DefaultPlaceholderColor is the unfilled gradient stop of the page's
	// stars. Stars are always fully filled, so PNGs never show it.
	DefaultPlaceholderColor = "#d0d0d0"
)

// Config represents the complete rating configuration.
type Config struct {
	// Tooltip contains tooltip settings.
	Tooltip TooltipConfig `json:"tooltip,omitempty" yaml:"tooltip,omitempty"`

	// Star contains star icon settings.
	Star StarConfig `json:"star,omitempty" yaml:"star,omitempty"`

	// Server contains live server settings.
	Server ServerConfig `json:"server,omitempty" yaml:"server,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// TooltipConfig contains tooltip settings.
type TooltipConfig struct {
	// Offset is the distance between the anchor and the tooltip in pixels.
	// A nil Offset means the default of 4.
	Offset *float64 `json:"offset,omitempty" yaml:"offset,omitempty"`
}

// StarConfig contains star icon settings.
type StarConfig struct {
	// Size is the size category: s, m or l.
	Size string `json:"size,omitempty" yaml:"size,omitempty"`

	// Filled is the star paint. It sets --star-yellow on the page and is
	// the only color used when rasterizing.
	Filled string `json:"filled,omitempty" yaml:"filled,omitempty"`

	// Placeholder sets --star-placeholder, the unfilled stop of the page's
	// star gradient. Rasterizing ignores it.
	Placeholder string `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
}

// ServerConfig contains live server settings.
type ServerConfig struct {
	Host string `json:"host,omitempty" yaml:"host,omitempty"`
	Port int    `json:"port,omitempty" yaml:"port,omitempty"`

	// MetricsPath is the route serving Prometheus metrics. "-" disables it.
	MetricsPath string `json:"metricsPath,omitempty" yaml:"metricsPath,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads configuration from the specified directory.
// It prefers rating.json and falls back to rating.yaml. When neither file
// exists the defaults are returned.
func Load(dir string) (*Config, error) {
	for _, name := range []string{ConfigFileName, YAMLConfigFileName, "rating.yml"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return New(), nil
}

// LoadFile reads configuration from the specified file path. The format is
// chosen by extension.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("E301").Wrap(err)
	}

	cfg := &Config{}
	if isYAML(path) {
		err = yaml.Unmarshal(data, cfg)
	} else {
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, errors.New("E301").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
			WithSuggestion("Check that " + filepath.Base(path) + " is well formed")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return errors.New("E301").Wrap(err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E301").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
// It is empty when the defaults are in use.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Tooltip.Offset == nil {
		off := DefaultOffset
		c.Tooltip.Offset = &off
	}

	if c.Star.Size == "" {
		c.Star.Size = DefaultStarSize
	}
	if c.Star.Filled == "" {
		c.Star.Filled = DefaultFilledColor
	}
	if c.Star.Placeholder == "" {
		c.Star.Placeholder = DefaultPlaceholderColor
	}

	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.MetricsPath == "" {
		c.Server.MetricsPath = DefaultMetricsPath
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Tooltip.Offset != nil && *c.Tooltip.Offset < 0 {
		return errors.New("E302").
			WithDetail("tooltip.offset must not be negative")
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return errors.New("E302").
			WithDetail("server.port must be between 1 and 65535")
	}
	if c.Server.MetricsPath != "-" && !strings.HasPrefix(c.Server.MetricsPath, "/") {
		return errors.New("E302").
			WithDetail("server.metricsPath must start with / or be - to disable")
	}
	return nil
}

// TooltipOffset returns the configured offset.
func (c *Config) TooltipOffset() float64 {
	if c.Tooltip.Offset == nil {
		return DefaultOffset
	}
	return *c.Tooltip.Offset
}

// Address returns the listen address for the live server.
func (c *Config) Address() string {
	return c.Server.Host + ":" + strconv.Itoa(c.Server.Port)
}

// MetricsEnabled reports whether the metrics route should be mounted.
func (c *Config) MetricsEnabled() bool {
	return c.Server.MetricsPath != "-"
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
