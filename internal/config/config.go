// Package config holds the engine's YAML-backed runtime settings: the
// applicant profile, oracle tuning, fill rules, extraction cascades and the
// optional email ingest account.
package config

import (
	"os"

	"applypilot-engine/internal/extract"
	"applypilot-engine/internal/fill"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		Port    int    `yaml:"port"`
		DataDir string `yaml:"data_dir"`
	} `yaml:"app"`

	// Profile is the freeform applicant background handed to the model
	// verbatim. Anything in it is fair game for generated answers.
	Profile string `yaml:"profile"`

	Oracle struct {
		Model          string  `yaml:"model"`
		RequestsPerSec float64 `yaml:"requests_per_sec"`
	} `yaml:"oracle"`

	Fill struct {
		PaceMS int `yaml:"pace_ms"`
		// Rules are appended after the built-in classification table.
		Rules []fill.Rule `yaml:"rules"`
	} `yaml:"fill"`

	Extract struct {
		SettleMS            int  `yaml:"settle_ms"`
		PageDelayMS         int  `yaml:"page_delay_ms"`
		NavDelayMS          int  `yaml:"nav_delay_ms"`
		DefaultPageLimit    int  `yaml:"default_page_limit"`
		HydrateDescriptions bool `yaml:"hydrate_descriptions"`
		HydrateMax          int  `yaml:"hydrate_max"`

		// Selectors overrides replace the built-in cascades list-for-list;
		// usually loaded from the selectors overlay file.
		Selectors extract.Cascades `yaml:"selectors"`
	} `yaml:"extract"`

	Email struct {
		Enabled     bool   `yaml:"enabled"`
		IMAPHost    string `yaml:"imap_host"`
		IMAPPort    int    `yaml:"imap_port"`
		Username    string `yaml:"username"`
		Mailbox     string `yaml:"mailbox"`
		MaxMessages int    `yaml:"max_messages"`
		PollSeconds int    `yaml:"poll_seconds"`
	} `yaml:"email"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
