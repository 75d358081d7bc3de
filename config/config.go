package config

import (
	"encoding/json"
	"math"
	"os"
	"strings"
)

// Config holds runtime configuration for the panel.
// Fields may be loaded from a JSON file and overridden by command-line flags.
type Config struct {
	Debug bool `json:"debug"`

	// Collaborator endpoints
	InferenceURL string `json:"inference_url"`
	PersonaURL   string `json:"persona_url"`

	// Inference parameters
	DefaultModel          string  `json:"default_model"`
	Threshold             float64 `json:"threshold"`
	TopK                  int     `json:"top_k"`
	RequestTimeoutSeconds int     `json:"request_timeout_seconds"`

	// Display
	DisplayWidth   int  `json:"display_width"`
	DisplayHeight  int  `json:"display_height"`
	OverlayVisible bool `json:"overlay_visible"`
	ToastSeconds   int  `json:"toast_seconds"`
	DarkMode       bool `json:"dark_mode"`

	// Where exported overlays are written; empty means the working directory.
	ExportDir string `json:"export_dir"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:                 false,
		InferenceURL:          "http://localhost:8000",
		PersonaURL:            "http://localhost:8000",
		DefaultModel:          "",
		Threshold:             0.5,
		TopK:                  5,
		RequestTimeoutSeconds: 60,
		DisplayWidth:          640,
		DisplayHeight:         480,
		OverlayVisible:        true,
		ToastSeconds:          4,
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	c.InferenceURL = strings.TrimSpace(c.InferenceURL)
	if c.InferenceURL == "" {
		c.InferenceURL = "http://localhost:8000"
	}
	c.PersonaURL = strings.TrimSpace(c.PersonaURL)
	if c.PersonaURL == "" {
		c.PersonaURL = c.InferenceURL
	}
	c.DefaultModel = strings.TrimSpace(c.DefaultModel)
	if c.Threshold < 0 || c.Threshold > 1 || math.IsNaN(c.Threshold) {
		c.Threshold = 0.5
	}
	if c.TopK <= 0 {
		c.TopK = 5
	}
	if c.RequestTimeoutSeconds <= 0 {
		c.RequestTimeoutSeconds = 60
	}
	if c.DisplayWidth <= 0 {
		c.DisplayWidth = 640
	}
	if c.DisplayHeight <= 0 {
		c.DisplayHeight = 480
	}
	if c.ToastSeconds <= 0 {
		c.ToastSeconds = 4
	}
	return nil
}

// Load attempts to read configuration from the given JSON file path. If the file does not
// exist it returns DefaultConfig(). On JSON error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return DefaultConfig(), err
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
