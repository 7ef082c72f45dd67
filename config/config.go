// Package config handles loading and managing application settings from
// YAML files and environment variable overrides.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// logoFileName is the name the company logo is stored under inside the
// data dir once uploaded.
const logoFileName = "company_logo.png"

// LabelConfig controls how single labels are rendered.
type LabelConfig struct {
	BarcodeWidth  int     `yaml:"barcode_width"`
	BarcodeHeight int     `yaml:"barcode_height"`
	QRSize        int     `yaml:"qr_size"`
	NameFontSize  float64 `yaml:"name_font_size"`
	PriceFontSize float64 `yaml:"price_font_size"`
	NameFontFile  string  `yaml:"name_font_file"`
	PriceFontFile string  `yaml:"price_font_file"`
}

// SheetConfig describes the label-sheet grid used for PDF and sheet PNG
// export. Dimensions are in PDF points.
type SheetConfig struct {
	Rows    int     `yaml:"rows"`
	Cols    int     `yaml:"cols"`
	MarginX float64 `yaml:"margin_x"`
	MarginY float64 `yaml:"margin_y"`
	PageW   float64 `yaml:"page_width"`
	PageH   float64 `yaml:"page_height"`
}

// Config holds all application settings.
type Config struct {
	Currency         string      `yaml:"currency"`
	LogoPath         string      `yaml:"logo_path"`
	DataDir          string      `yaml:"data_dir"`
	DefaultSymbology string      `yaml:"default_symbology"`
	Port             int         `yaml:"port"`
	LogLevel         string      `yaml:"log_level"`
	Label            LabelConfig `yaml:"label"`
	Sheet            SheetConfig `yaml:"sheet"`
}

// defaults returns a Config populated with sensible default values.
func defaults() *Config {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	return &Config{
		Currency:         "$",
		LogoPath:         "",
		DataDir:          filepath.Join(homeDir, ".labelforge"),
		DefaultSymbology: "qr",
		Port:             8556,
		LogLevel:         "info",
		Label: LabelConfig{
			BarcodeWidth:  280,
			BarcodeHeight: 120,
			QRSize:        256,
			NameFontSize:  24,
			PriceFontSize: 32,
		},
		Sheet: SheetConfig{
			Rows:    10,
			Cols:    3,
			MarginX: 36,
			MarginY: 36,
			PageW:   612,
			PageH:   792,
		},
	}
}

// Load reads settings from the YAML file at path, falling back to defaults
// if the file does not exist. A .env file in the working directory and
// LF_-prefixed environment variables override file and default values.
func Load(path string) (*Config, error) {
	godotenv.Load()

	cfg := defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// File doesn't exist — proceed with defaults.
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// Save writes the settings back to path as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file %s: %w", path, err)
	}
	return nil
}

// applyEnvOverrides applies LF_* environment variable overrides to cfg.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LF_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Port = p
		}
	}
	if v := os.Getenv("LF_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("LF_CURRENCY"); v != "" {
		cfg.Currency = v
	}
	if v := os.Getenv("LF_LOGO_PATH"); v != "" {
		cfg.LogoPath = v
	}
	if v := os.Getenv("LF_DEFAULT_SYMBOLOGY"); v != "" {
		cfg.DefaultSymbology = v
	}
	if v := os.Getenv("LF_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}

// EnsureDataDir creates the DataDir if it does not already exist. It holds
// the uploaded logo and the batch database.
func (c *Config) EnsureDataDir() error {
	if err := os.MkdirAll(c.DataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir %s: %w", c.DataDir, err)
	}
	return nil
}

// BatchDBPath returns the location of the batch item database.
func (c *Config) BatchDBPath() string {
	return filepath.Join(c.DataDir, "batch.db")
}

// SetLogo copies the image at src into the data dir and points LogoPath at
// the copy, so the original file can move or disappear afterwards.
func (c *Config) SetLogo(src string) error {
	if err := c.EnsureDataDir(); err != nil {
		return err
	}
	dst := filepath.Join(c.DataDir, logoFileName)

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open logo %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create logo copy %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy logo to %s: %w", dst, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close logo copy %s: %w", dst, err)
	}

	c.LogoPath = dst
	return nil
}

// RemoveLogo deletes the stored logo copy, if any, and clears LogoPath.
func (c *Config) RemoveLogo() error {
	stored := filepath.Join(c.DataDir, logoFileName)
	if err := os.Remove(stored); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove logo %s: %w", stored, err)
	}
	c.LogoPath = ""
	return nil
}
