package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy plus everything an operator
// should hear about before the config goes live.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	out.Profile = strings.TrimSpace(out.Profile)
	out.Oracle.Model = strings.TrimSpace(out.Oracle.Model)

	for i := range out.Fill.Rules {
		out.Fill.Rules[i].All = trimList(out.Fill.Rules[i].All)
		out.Fill.Rules[i].Any = trimList(out.Fill.Rules[i].Any)
		out.Fill.Rules[i].None = trimList(out.Fill.Rules[i].None)
	}

	// ---- Validation rules ----

	if out.Profile == "" {
		res.addWarn("profile is empty; generated answers will be generic.")
	}

	if out.Fill.PaceMS < 0 {
		res.addErr("fill.pace_ms must be >= 0")
	}
	if out.Oracle.RequestsPerSec < 0 {
		res.addErr("oracle.requests_per_sec must be >= 0")
	} else if out.Oracle.RequestsPerSec > 5 {
		res.addWarn("oracle.requests_per_sec is high (%.1f) and may hit provider rate limits.", out.Oracle.RequestsPerSec)
	}

	if out.Extract.SettleMS < 0 {
		res.addErr("extract.settle_ms must be >= 0")
	}
	if out.Extract.PageDelayMS > 0 && out.Extract.PageDelayMS < 500 {
		res.addWarn("extract.page_delay_ms is very low (%d) and may trip bot detection.", out.Extract.PageDelayMS)
	}
	if out.Extract.DefaultPageLimit > 50 {
		res.addWarn("extract.default_page_limit is %d; long runs hold the page context for a while.", out.Extract.DefaultPageLimit)
	}

	// email required fields if enabled (password not required here; it's in keychain)
	if out.Email.Enabled {
		if strings.TrimSpace(out.Email.IMAPHost) == "" {
			res.addErr("email.imap_host is required when email.enabled=true")
		}
		if strings.TrimSpace(out.Email.Username) == "" {
			res.addErr("email.username is required when email.enabled=true")
		}
		if out.Email.PollSeconds > 0 && out.Email.PollSeconds < 60 {
			res.addWarn("email.poll_seconds is very low (%d) and may cause rate limits.", out.Email.PollSeconds)
		}
	}

	return out, res
}

func trimList(xs []string) []string {
	seen := map[string]bool{}
	var ys []string
	for _, x := range xs {
		x = strings.TrimSpace(x)
		if x == "" {
			continue
		}
		key := strings.ToLower(x)
		if seen[key] {
			continue
		}
		seen[key] = true
		ys = append(ys, x)
	}
	return ys
}
