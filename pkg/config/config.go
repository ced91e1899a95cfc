/*
Package config manages the TOML config for pgalyzer.

	[analysis]
	clean = false
	ngram_size = 1
	neighborhood_size = 10
	likely_limit = 5
	start_marker = "*** start of this project gutenberg ebook"
	end_marker = "*** end of this project gutenberg ebook"

	[server]
	max_limit = 64
	max_neighborhood = 50

	[cli]
	default_limit = 10
	default_neighborhood = 5
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bastiangx/pgalyzer/internal/utils"
	"github.com/bastiangx/pgalyzer/pkg/document"
	"github.com/charmbracelet/log"
)

// FileName is the config file looked up in the user config dir.
const FileName = "config.toml"

// Config holds the entire config structure
type Config struct {
	Analysis AnalysisConfig `toml:"analysis" yaml:"analysis"`
	Server   ServerConfig   `toml:"server" yaml:"server"`
	CLI      CliConfig      `toml:"cli" yaml:"cli"`
}

// AnalysisConfig holds the defaults of the one-shot subcommands and the
// clean mode markers.
type AnalysisConfig struct {
	Clean            bool   `toml:"clean" yaml:"clean"`
	NGramSize        int    `toml:"ngram_size" yaml:"ngram_size"`
	NeighborhoodSize int    `toml:"neighborhood_size" yaml:"neighborhood_size"`
	LikelyLimit      int    `toml:"likely_limit" yaml:"likely_limit"`
	StartMarker      string `toml:"start_marker" yaml:"start_marker"`
	EndMarker        string `toml:"end_marker" yaml:"end_marker"`
}

// ServerConfig has server related options.
type ServerConfig struct {
	MaxLimit        int `toml:"max_limit" yaml:"max_limit"`
	MaxNeighborhood int `toml:"max_neighborhood" yaml:"max_neighborhood"`
}

// CliConfig holds REPL options.
type CliConfig struct {
	DefaultLimit        int `toml:"default_limit" yaml:"default_limit"`
	DefaultNeighborhood int `toml:"default_neighborhood" yaml:"default_neighborhood"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			Clean:            false,
			NGramSize:        1,
			NeighborhoodSize: 10,
			LikelyLimit:      5,
			StartMarker:      document.StartMarker,
			EndMarker:        document.EndMarker,
		},
		Server: ServerConfig{
			MaxLimit:        64,
			MaxNeighborhood: 50,
		},
		CLI: CliConfig{
			DefaultLimit:        10,
			DefaultNeighborhood: 5,
		},
	}
}

// DocumentOptions turns the analysis markers into normalizer options.
// Markers are lowercased since paragraphs are matched after lowercasing.
func (c *Config) DocumentOptions() document.Options {
	opts := document.DefaultOptions()
	opts.StartMarker = strings.ToLower(c.Analysis.StartMarker)
	opts.EndMarker = strings.ToLower(c.Analysis.EndMarker)
	return opts
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/pgalyzer/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err == nil {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath
			}
			log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}

	defaultPath := utils.NewPathResolver().GetConfigPath(FileName)
	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), ""
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML file, or a YAML one when the path ends in
// .yaml or .yml. A file that fails to decode is salvaged section by
// section; values that cannot be read keep defaults.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	load, parse := utils.LoadTOMLFile, utils.ParseTOMLWithRecovery
	if utils.IsYAMLFile(configPath) {
		load, parse = utils.LoadYAMLFile, utils.ParseYAMLWithRecovery
	}

	if err := load(configPath, config); err != nil {
		return tryPartialParse(configPath, parse)
	}
	config.sanitize()
	return config, nil
}

// tryPartialParse attempts to parse a config file into a generic map
func tryPartialParse(configPath string, parse func(string) (map[string]any, error)) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := parse(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(tempConfig, "analysis"); ok {
		extractAnalysisConfig(section, &config.Analysis)
	}
	if section, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(section, &config.Server)
	}
	if section, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		extractCliConfig(section, &config.CLI)
	}
	config.sanitize()
	return config, nil
}

func extractAnalysisConfig(data map[string]any, analysis *AnalysisConfig) {
	if val, ok := utils.ExtractBool(data, "clean"); ok {
		analysis.Clean = val
	}
	if val, ok := utils.ExtractInt64(data, "ngram_size"); ok {
		analysis.NGramSize = val
	}
	if val, ok := utils.ExtractInt64(data, "neighborhood_size"); ok {
		analysis.NeighborhoodSize = val
	}
	if val, ok := utils.ExtractInt64(data, "likely_limit"); ok {
		analysis.LikelyLimit = val
	}
	if val, ok := utils.ExtractString(data, "start_marker"); ok {
		analysis.StartMarker = val
	}
	if val, ok := utils.ExtractString(data, "end_marker"); ok {
		analysis.EndMarker = val
	}
}

func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt64(data, "max_limit"); ok {
		server.MaxLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "max_neighborhood"); ok {
		server.MaxNeighborhood = val
	}
}

func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractInt64(data, "default_limit"); ok {
		cli.DefaultLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "default_neighborhood"); ok {
		cli.DefaultNeighborhood = val
	}
}

// sanitize puts out-of-range values back to their defaults.
func (c *Config) sanitize() {
	def := DefaultConfig()
	if c.Analysis.NGramSize < 1 {
		log.Warnf("ngram_size %d is below 1, using %d", c.Analysis.NGramSize, def.Analysis.NGramSize)
		c.Analysis.NGramSize = def.Analysis.NGramSize
	}
	if c.Analysis.NeighborhoodSize < 0 {
		log.Warnf("neighborhood_size %d is negative, using %d", c.Analysis.NeighborhoodSize, def.Analysis.NeighborhoodSize)
		c.Analysis.NeighborhoodSize = def.Analysis.NeighborhoodSize
	}
	if c.Analysis.LikelyLimit < 1 {
		c.Analysis.LikelyLimit = def.Analysis.LikelyLimit
	}
	if c.Server.MaxLimit < 1 {
		c.Server.MaxLimit = def.Server.MaxLimit
	}
	if c.Server.MaxNeighborhood < 0 {
		c.Server.MaxNeighborhood = def.Server.MaxNeighborhood
	}
	if c.CLI.DefaultLimit < 1 {
		c.CLI.DefaultLimit = def.CLI.DefaultLimit
	}
	if c.CLI.DefaultNeighborhood < 0 {
		c.CLI.DefaultNeighborhood = def.CLI.DefaultNeighborhood
	}
}

// SaveConfig saves into a TOML file, or YAML for .yaml and .yml paths
func SaveConfig(config *Config, configPath string) error {
	if utils.IsYAMLFile(configPath) {
		return utils.SaveYAMLFile(config, configPath)
	}
	return utils.SaveTOMLFile(config, configPath)
}

// Update changes the given values, leaving nil ones alone, and saves the
// result to configPath.
func (c *Config) Update(configPath string, maxLimit, maxNeighborhood *int, clean *bool) error {
	if maxLimit != nil {
		if *maxLimit < 1 {
			return fmt.Errorf("max_limit must be at least 1, got %d", *maxLimit)
		}
		c.Server.MaxLimit = *maxLimit
	}
	if maxNeighborhood != nil {
		if *maxNeighborhood < 0 {
			return fmt.Errorf("max_neighborhood must not be negative, got %d", *maxNeighborhood)
		}
		c.Server.MaxNeighborhood = *maxNeighborhood
	}
	if clean != nil {
		c.Analysis.Clean = *clean
	}
	return SaveConfig(c, configPath)
}
