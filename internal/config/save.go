package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

func Validate(cfg Config) error {
	var errs []string

	if cfg.App.Port <= 0 || cfg.App.Port > 65535 {
		errs = append(errs, "app.port must be 1..65535")
	}
	if cfg.Oracle.RequestsPerSec < 0 {
		errs = append(errs, "oracle.requests_per_sec must be >= 0")
	}
	if cfg.Fill.PaceMS < 0 {
		errs = append(errs, "fill.pace_ms must be >= 0")
	}
	if cfg.Extract.DefaultPageLimit < 0 {
		errs = append(errs, "extract.default_page_limit must be >= 0")
	}

	for i, r := range cfg.Fill.Rules {
		if r.Kind == "" {
			errs = append(errs, fmt.Sprintf("fill.rules[%d].kind is required", i))
		}
		if len(r.All) == 0 && len(r.Any) == 0 {
			errs = append(errs, fmt.Sprintf("fill.rules[%d] must set all or any terms", i))
		}
		for j, term := range r.All {
			if term == "" {
				errs = append(errs, fmt.Sprintf("fill.rules[%d].all[%d] cannot be empty", i, j))
			}
		}
		for j, term := range r.Any {
			if term == "" {
				errs = append(errs, fmt.Sprintf("fill.rules[%d].any[%d] cannot be empty", i, j))
			}
		}
	}

	if len(errs) > 0 {
		return errors.New("config validation failed:\n- " + joinLines(errs))
	}
	return nil
}

func SaveAtomic(path string, cfg Config) error {
	if err := Validate(cfg); err != nil {
		return err
	}

	b, err := yaml.Marshal(&cfg)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp := path + ".tmp"
	bak := path + ".bak"

	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}

	_ = os.Remove(bak)
	_ = os.Rename(path, bak)

	return os.Rename(tmp, path)
}

func joinLines(lines []string) string {
	out := ""
	for i, s := range lines {
		if i > 0 {
			out += "\n-"
		}
		out += s
	}
	return out
}
