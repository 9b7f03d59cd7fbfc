// config/overlay.go
package config

import (
	"os"

	"applypilot-engine/internal/extract"

	"gopkg.in/yaml.v3"
)

type SelectorsFile struct {
	Selectors extract.Cascades `yaml:"selectors"`
}

// OverlaySelectors merges a site-specific selector file into the config.
// Boards change their markup without notice; this keeps selector refreshes
// out of the main config file.
func OverlaySelectors(cfg *Config, selectorsPath string) error {
	b, err := os.ReadFile(selectorsPath)
	if err != nil {
		// Missing selectors file should not kill startup
		return nil
	}

	var sf SelectorsFile
	if err := yaml.Unmarshal(b, &sf); err != nil {
		return err
	}

	cfg.Extract.Selectors = cfg.Extract.Selectors.Merge(sf.Selectors)
	return nil
}
