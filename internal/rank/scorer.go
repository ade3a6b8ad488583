// Package rank turns an extracted skill set and raw description text into a
// relevance score, a visa-sponsorship signal, and a work-mode classification.
// Everything here is pure and deterministic; the same inputs always give the
// same answer, so scoring can run unsynchronized from any number of fetch
// tasks.
package rank

import (
	"math"
	"regexp"
	"strings"

	"jobradar-engine/internal/domain"
)

// Keyword groups feeding the score bonuses. Matching is case-insensitive
// substring presence; each keyword counts at most once however often it
// repeats.
var (
	cloudKeywords     = []string{"aws", "cloud", "s3", "lambda", "glue", "redshift"}
	seniorityKeywords = []string{"senior", "lead", "architect", "principal"}
	dataEngKeywords   = []string{"data engineer", "etl", "pipeline", "warehouse", "spark"}
)

// Visa phrases are whole-phrase matches; "sponsorship" alone must not trip
// the "sponsor" phrases.
var (
	visaNegative = regexp.MustCompile(`(?i)\b(no sponsorship|cannot sponsor|no visa support|us citizen|citizenship required|must be authorized)\b`)
	visaPositive = regexp.MustCompile(`(?i)\b(visa sponsor|h1b sponsor|work authorization|visa support|sponsorship available|will sponsor)\b`)
)

// Score computes a relevance score in [0,1]. With no matched skills the
// score is 0 and none of the bonuses apply. Otherwise the matched-skill
// count contributes up to 0.6, cloud and data-engineering keyword hits up to
// 0.15 each, and any seniority keyword a flat 0.10, capped at 1.0.
func Score(skills []string, description string) float64 {
	if len(skills) == 0 {
		return 0.0
	}

	text := strings.ToLower(description)

	score := math.Min(float64(len(skills))/20.0, 0.6)
	score += math.Min(float64(countHits(text, cloudKeywords))/6.0, 0.15)
	if countHits(text, seniorityKeywords) > 0 {
		score += 0.10
	}
	score += math.Min(float64(countHits(text, dataEngKeywords))/5.0, 0.15)

	return math.Min(score, 1.0)
}

// countHits counts how many distinct keywords occur in text, which is
// expected to be lowercased already.
func countHits(text string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			n++
		}
	}
	return n
}

// DetectVisaSponsorship scans for sponsorship language. Disqualifying
// phrases always win: a posting that says both "sponsorship available" and
// "no sponsorship" reads as no sponsorship.
func DetectVisaSponsorship(text string) domain.VisaSignal {
	if visaNegative.MatchString(text) {
		return domain.VisaNoSponsorship
	}
	if visaPositive.MatchString(text) {
		return domain.VisaSponsors
	}
	return domain.VisaUnknown
}

// ClassifyWorkMode picks the first matching rule: remote beats hybrid beats
// the onsite default, even when a posting mentions several.
func ClassifyWorkMode(text string) domain.WorkMode {
	t := strings.ToLower(text)
	switch {
	case strings.Contains(t, "remote") || strings.Contains(t, "work from home"):
		return domain.WorkModeRemote
	case strings.Contains(t, "hybrid"):
		return domain.WorkModeHybrid
	default:
		return domain.WorkModeOnsite
	}
}
