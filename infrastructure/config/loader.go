package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	domainconfig "writecoach-backend/domain/config"
)

// FileConfig is the shape of an optional configuration file. Absent
// fields leave the current value alone, except feedback thresholds which
// fall back to their defaults key by key.
type FileConfig struct {
	LogLevel   string                          `yaml:"log_level" json:"logLevel" toml:"log_level"`
	Dictionary DictionaryFile                  `yaml:"dictionary" json:"dictionary" toml:"dictionary"`
	Redis      RedisFile                       `yaml:"redis" json:"redis" toml:"redis"`
	Analysis   AnalysisFile                    `yaml:"analysis" json:"analysis" toml:"analysis"`
	Feedback   domainconfig.FeedbackThresholds `yaml:"feedback" json:"feedback" toml:"feedback"`
}

// DictionaryFile selects the dictionary files
type DictionaryFile struct {
	Dir    string `yaml:"dir" json:"dir" toml:"dir"`
	Locale string `yaml:"locale" json:"locale" toml:"locale"`
}

// RedisFile configures the Redis repositories
type RedisFile struct {
	Addr      string `yaml:"addr" json:"addr" toml:"addr"`
	DB        *int   `yaml:"db" json:"db" toml:"db"`
	KeyPrefix string `yaml:"key_prefix" json:"keyPrefix" toml:"key_prefix"`
}

// AnalysisFile tunes the analysis pipeline
type AnalysisFile struct {
	MaxSuggestions *int  `yaml:"max_suggestions" json:"maxSuggestions" toml:"max_suggestions"`
	EnableFeedback *bool `yaml:"enable_feedback" json:"enableFeedback" toml:"enable_feedback"`
}

// FileLoader decodes one configuration file format
type FileLoader interface {
	Load(reader io.Reader, target interface{}) error
	Extensions() []string
}

// Loader reads configuration files, picking the decoder by file extension
type Loader struct {
	fileLoaders map[string]FileLoader
}

// NewLoader creates a loader for YAML, JSON and TOML files
func NewLoader() *Loader {
	l := &Loader{fileLoaders: make(map[string]FileLoader)}
	l.RegisterLoader(&YAMLLoader{})
	l.RegisterLoader(&JSONLoader{})
	l.RegisterLoader(&TOMLLoader{})
	return l
}

// RegisterLoader registers a file loader for its extensions
func (l *Loader) RegisterLoader(loader FileLoader) {
	for _, ext := range loader.Extensions() {
		l.fileLoaders[ext] = loader
	}
}

// ReadFile decodes path into a FileConfig
func (l *Loader) ReadFile(path string) (*FileConfig, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	loader, ok := l.fileLoaders[ext]
	if !ok {
		return nil, fmt.Errorf("unsupported config file format %q", filepath.Ext(path))
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	fc := FileConfig{Feedback: domainconfig.DefaultFeedbackThresholds()}
	if err := loader.Load(file, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &fc, nil
}

// LoadFile reads path and overlays it onto cfg
func (l *Loader) LoadFile(path string, cfg *Config) error {
	fc, err := l.ReadFile(path)
	if err != nil {
		return err
	}
	fc.Apply(cfg)
	cfg.LoadedFrom = append(cfg.LoadedFrom, path)
	return nil
}

// Apply overlays the fields present in the file onto cfg
func (fc *FileConfig) Apply(cfg *Config) {
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	if fc.Dictionary.Dir != "" {
		cfg.DictionaryDir = fc.Dictionary.Dir
	}
	if fc.Dictionary.Locale != "" {
		cfg.DictionaryLocale = fc.Dictionary.Locale
	}
	if fc.Redis.Addr != "" {
		cfg.RedisAddr = fc.Redis.Addr
	}
	if fc.Redis.DB != nil {
		cfg.RedisDB = *fc.Redis.DB
	}
	if fc.Redis.KeyPrefix != "" {
		cfg.RedisKeyPrefix = fc.Redis.KeyPrefix
	}
	if fc.Analysis.MaxSuggestions != nil {
		cfg.Domain.MaxSuggestions = *fc.Analysis.MaxSuggestions
	}
	if fc.Analysis.EnableFeedback != nil {
		cfg.Domain.EnableFeedback = *fc.Analysis.EnableFeedback
	}
	cfg.Domain.Feedback = fc.Feedback
}

// YAMLLoader loads configuration from YAML files
type YAMLLoader struct{}

func (y *YAMLLoader) Load(reader io.Reader, target interface{}) error {
	decoder := yaml.NewDecoder(reader)
	decoder.KnownFields(true)
	if err := decoder.Decode(target); err != nil && err != io.EOF {
		return err
	}
	return nil
}

func (y *YAMLLoader) Extensions() []string {
	return []string{"yaml", "yml"}
}

// JSONLoader loads configuration from JSON files
type JSONLoader struct{}

func (j *JSONLoader) Load(reader io.Reader, target interface{}) error {
	decoder := json.NewDecoder(reader)
	decoder.DisallowUnknownFields()
	return decoder.Decode(target)
}

func (j *JSONLoader) Extensions() []string {
	return []string{"json"}
}

// TOMLLoader loads configuration from TOML files
type TOMLLoader struct{}

func (t *TOMLLoader) Load(reader io.Reader, target interface{}) error {
	md, err := toml.NewDecoder(reader).Decode(target)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown keys: %v", undecoded)
	}
	return nil
}

func (t *TOMLLoader) Extensions() []string {
	return []string{"toml"}
}
