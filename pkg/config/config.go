package config

import (
	"unicode/utf8"

	"github.com/ajitpratap0/tabula/pkg/compression"
	"github.com/ajitpratap0/tabula/pkg/errors"
	"github.com/ajitpratap0/tabula/pkg/formats/avro"
	"github.com/ajitpratap0/tabula/pkg/logger"
)

// Config is the complete tabula configuration. The zero value is not
// usable; start from Default.
type Config struct {
	// Logging configures the zap logger
	Logging logger.Config `yaml:"logging" json:"logging"`

	// Text controls delimited text files
	Text TextConfig `yaml:"text" json:"text"`

	// Binary controls Avro container files
	Binary BinaryConfig `yaml:"binary" json:"binary"`

	// Chunking controls how saves split rows across files
	Chunking ChunkingConfig `yaml:"chunking" json:"chunking"`

	// Metrics controls Prometheus metric collection
	Metrics MetricsConfig `yaml:"metrics" json:"metrics"`
}

// TextConfig controls delimited text files
type TextConfig struct {
	// Comma is the single-character field delimiter
	Comma string `yaml:"comma" json:"comma"`
	// Compression names the stream compression applied on save when the
	// output path carries no compression extension; loads always follow
	// the extension
	Compression string `yaml:"compression" json:"compression"`
	// CompressionLevel is fastest, default, better or best
	CompressionLevel string `yaml:"compression_level" json:"compression_level"`
}

// BinaryConfig controls Avro container files
type BinaryConfig struct {
	// Codec is the block codec: null, deflate or snappy
	Codec string `yaml:"codec" json:"codec"`
}

// ChunkingConfig controls how saves split rows across files
type ChunkingConfig struct {
	// MaxRows is the default chunk size; zero saves one whole file
	MaxRows int `yaml:"max_rows" json:"max_rows"`
}

// MetricsConfig controls Prometheus metric collection
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled" json:"enabled"`
	Namespace string `yaml:"namespace" json:"namespace"`
	// File receives the text exposition when a command finishes
	File string `yaml:"file" json:"file"`
}

// Default returns a configuration with every field set to its default
func Default() *Config {
	return &Config{
		Logging: logger.DefaultConfig(),
		Text: TextConfig{
			Comma:            ",",
			Compression:      string(compression.None),
			CompressionLevel: "default",
		},
		Binary: BinaryConfig{
			Codec: string(avro.CodecNull),
		},
		Metrics: MetricsConfig{
			Namespace: "tabula",
		},
	}
}

// LoadFile reads a YAML file over the defaults and validates the result
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := Load(path, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every field holds a supported value
func (c *Config) Validate() error {
	if _, err := c.CommaRune(); err != nil {
		return err
	}
	if _, err := c.CompressionConfig(); err != nil {
		return err
	}
	if _, err := avro.ParseCodec(c.Binary.Codec); err != nil {
		return errors.Wrap(err, errors.ErrorTypeConfig, "invalid binary.codec")
	}
	if c.Chunking.MaxRows < 0 {
		return errors.New(errors.ErrorTypeConfig, "chunking.max_rows must be >= 0").
			WithDetail("max_rows", c.Chunking.MaxRows)
	}
	return nil
}

// CommaRune returns the text delimiter as a rune
func (c *Config) CommaRune() (rune, error) {
	if c.Text.Comma == "" {
		return ',', nil
	}
	r, size := utf8.DecodeRuneInString(c.Text.Comma)
	if size != len(c.Text.Comma) || r == utf8.RuneError || r == '"' || r == '\r' || r == '\n' {
		return 0, errors.New(errors.ErrorTypeConfig, "text.comma must be a single character other than a quote or line break").
			WithDetail("comma", c.Text.Comma)
	}
	return r, nil
}

// CompressionConfig returns the text stream compression settings
func (c *Config) CompressionConfig() (compression.Config, error) {
	algorithm, err := compression.Parse(c.Text.Compression)
	if err != nil {
		return compression.Config{}, errors.Wrap(err, errors.ErrorTypeConfig, "invalid text.compression")
	}
	level, err := compression.ParseLevel(c.Text.CompressionLevel)
	if err != nil {
		return compression.Config{}, errors.Wrap(err, errors.ErrorTypeConfig, "invalid text.compression_level")
	}
	return compression.Config{Algorithm: algorithm, Level: level}, nil
}

// Codec returns the Avro block codec. Call Validate first; an invalid name
// falls back to the null codec.
func (c *Config) Codec() avro.Codec {
	codec, err := avro.ParseCodec(c.Binary.Codec)
	if err != nil {
		return avro.CodecNull
	}
	return codec
}
