package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string
	Warnings []string
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}

func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}

func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate trims and dedupes the vocabulary and checks every
// numeric knob the core rejects at construction time, so a bad config fails
// before any network round trip.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	seen := map[string]bool{}
	var vocab []string
	for _, term := range out.Scoring.Vocabulary {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		key := strings.ToLower(term)
		if seen[key] {
			continue
		}
		seen[key] = true
		vocab = append(vocab, term)
	}
	out.Scoring.Vocabulary = vocab

	if len(out.Scoring.Vocabulary) == 0 {
		res.addErr("scoring.vocabulary is empty; nothing could ever match")
	}
	if out.Scoring.MinMatchScore < 0 || out.Scoring.MinMatchScore > 1 {
		res.addErr("scoring.min_match_score must be within [0,1], got %v", out.Scoring.MinMatchScore)
	}

	if out.Fetch.Concurrency <= 0 {
		res.addErr("fetch.concurrency must be > 0")
	} else if out.Fetch.Concurrency > 10 {
		res.addWarn("fetch.concurrency of %d is likely to get you rate-limited", out.Fetch.Concurrency)
	}
	if out.Fetch.TimeoutMs <= 0 {
		res.addErr("fetch.timeout_ms must be > 0")
	}
	if out.Fetch.PacingMs < 0 {
		res.addErr("fetch.pacing_ms must be >= 0")
	}
	switch out.Fetch.Pacing {
	case "", "fixed", "bucket":
	default:
		res.addErr("fetch.pacing must be \"fixed\" or \"bucket\", got %q", out.Fetch.Pacing)
	}
	if out.Fetch.HostRPS <= 0 {
		out.Fetch.HostRPS = 1
	}

	if strings.TrimSpace(out.Search.Role) == "" {
		res.addErr("search.role is required")
	}
	if out.Search.MaxJobs <= 0 {
		res.addErr("search.max_jobs must be > 0")
	}

	if !out.Sources.Indeed.Enabled && !out.Sources.LinkedIn.Enabled {
		res.addErr("no sources enabled: enable indeed or linkedin")
	}

	return out, res
}
