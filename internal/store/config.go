package store

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultScope       = "https://www.googleapis.com/auth/spreadsheets.readonly"
	DefaultRange       = "Sheet1!A2:B"
	DefaultModel       = "gpt-4o"
	DefaultClaudeModel = "claude-3-5-sonnet-latest"
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 600
	DefaultSystem      = "You are a market analyst expert in momentum-based trading strategies."
	DefaultLogFile     = "trading_plan.log"
)

// ErrConfigLoad marks any failure to read, parse or validate the settings file.
var ErrConfigLoad = errors.New("config load failed")

type Config struct {
	GoogleSheets struct {
		ServiceAccountFile string   `yaml:"service_account_file"`
		Scopes             []string `yaml:"scopes"`
		SpreadsheetID      string   `yaml:"spreadsheet_id"`
		Range              string   `yaml:"range"`
	} `yaml:"google_sheets"`
	LLM struct {
		Provider    string   `yaml:"provider"`
		Model       string   `yaml:"model"`
		MaxTokens   int      `yaml:"max_tokens"`
		Temperature *float64 `yaml:"temperature"` // nil until defaulted; an explicit 0 is kept
		System      string   `yaml:"system"`
		Endpoint    string   `yaml:"endpoint"`
		// APIKey is filled from the environment by the caller, never from YAML.
		APIKey string `yaml:"-"`
	} `yaml:"llm"`
	Risk struct {
		ScaleByRiskPercentage bool `yaml:"scale_by_risk_percentage"`
		AllowShort            bool `yaml:"allow_short"`
	} `yaml:"risk"`
	Trades []map[string]any `yaml:"trades"`
	Log    struct {
		File string `yaml:"file"`
	} `yaml:"log"`
}

func (c *Config) Validate() error {
	if c.GoogleSheets.ServiceAccountFile == "" {
		return errors.New("google_sheets.service_account_file is required")
	}
	if c.GoogleSheets.SpreadsheetID == "" {
		return errors.New("google_sheets.spreadsheet_id is required")
	}
	switch c.LLM.Provider {
	case "OPENAI", "CLAUDE", "NOOP":
	default:
		return fmt.Errorf("invalid llm.provider '%s': must be 'OPENAI', 'CLAUDE' or 'NOOP'", c.LLM.Provider)
	}
	if t := c.LLMTemperature(); t < 0 || t > 2 {
		return fmt.Errorf("llm.temperature must be between 0-2, got %.2f", t)
	}
	if c.LLM.MaxTokens <= 0 {
		return fmt.Errorf("llm.max_tokens must be positive, got %d", c.LLM.MaxTokens)
	}
	return nil
}

// LLMTemperature returns the configured temperature, or the default when unset.
func (c *Config) LLMTemperature() float64 {
	if c.LLM.Temperature == nil {
		return DefaultTemperature
	}
	return *c.LLM.Temperature
}

// ApplyDefaults fills every unset optional field.
func (c *Config) ApplyDefaults() {
	if len(c.GoogleSheets.Scopes) == 0 {
		c.GoogleSheets.Scopes = []string{DefaultScope}
	}
	if c.GoogleSheets.Range == "" {
		c.GoogleSheets.Range = DefaultRange
	}
	if c.LLM.Provider == "" {
		c.LLM.Provider = "OPENAI"
	}
	if c.LLM.Model == "" {
		c.LLM.Model = DefaultModel
		if c.LLM.Provider == "CLAUDE" {
			c.LLM.Model = DefaultClaudeModel
		}
	}
	if c.LLM.Temperature == nil {
		t := DefaultTemperature
		c.LLM.Temperature = &t
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = DefaultMaxTokens
	}
	if c.LLM.System == "" {
		c.LLM.System = DefaultSystem
	}
	if c.Log.File == "" {
		c.Log.File = DefaultLogFile
	}
}

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigLoad, err)
	}
	return ParseConfig(b)
}

// ParseConfig decodes YAML settings, applies defaults and validates them.
func ParseConfig(b []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigLoad, err)
	}

	c.ApplyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%w: config validation failed: %w", ErrConfigLoad, err)
	}

	return &c, nil
}
