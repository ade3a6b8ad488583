package rank

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"jobradar-engine/internal/domain"
)

func TestScoreZeroWithoutSkills(t *testing.T) {
	// Bonuses never apply without at least one matched skill.
	texts := []string{
		"",
		"senior aws cloud data engineer etl spark warehouse",
	}
	for _, text := range texts {
		assert.Zero(t, Score(nil, text))
		assert.Zero(t, Score([]string{}, text))
	}
}

func TestScoreComponents(t *testing.T) {
	// one skill, no bonus keywords: just the 1/20 base
	assert.InDelta(t, 0.05, Score([]string{"python"}, "python shop"), 1e-9)

	// one cloud keyword: 1/6 already exceeds the 0.15 cloud cap
	assert.InDelta(t, 0.05+0.15, Score([]string{"aws"}, "uses aws"), 1e-9)

	// seniority is a flat bonus, not per keyword
	one := Score([]string{"python"}, "senior python role")
	both := Score([]string{"python"}, "senior lead python role")
	assert.InDelta(t, 0.05+0.10, one, 1e-9)
	assert.InDelta(t, one, both, 1e-9)

	// a single data-engineering hit saturates its 0.15 cap (1/5 > 0.15)
	assert.InDelta(t, 0.05+0.15, Score([]string{"python"}, "python etl work"), 1e-9)
}

func TestScoreMonotonicInSkillCount(t *testing.T) {
	skills := make([]string, 0, 25)
	prev := 0.0
	for i := 0; i < 25; i++ {
		skills = append(skills, fmt.Sprintf("skill-%d", i))
		got := Score(skills, "plain description")
		assert.GreaterOrEqual(t, got, prev, "score must not decrease with more skills")
		assert.LessOrEqual(t, got, 1.0)
		prev = got
	}
	// base contribution caps at 0.6 once 12+ skills match
	assert.InDelta(t, 0.6, prev, 1e-9)
}

func TestScoreCappedAtOne(t *testing.T) {
	skills := make([]string, 30)
	for i := range skills {
		skills[i] = fmt.Sprintf("skill-%d", i)
	}
	text := "senior aws cloud s3 lambda glue redshift data engineer etl pipeline warehouse spark"
	assert.InDelta(t, 1.0, Score(skills, text), 1e-9)
}

func TestDetectVisaSponsorship(t *testing.T) {
	tests := []struct {
		name string
		text string
		want domain.VisaSignal
	}{
		{"affirmative", "Visa sponsorship available for this role.", domain.VisaSponsors},
		{"disqualifying", "No sponsorship offered.", domain.VisaNoSponsorship},
		{"negative wins over positive", "Sponsorship available, but currently no sponsorship for H1B.", domain.VisaNoSponsorship},
		{"citizenship requirement", "US Citizen only.", domain.VisaNoSponsorship},
		{"silent posting", "Great benefits and snacks.", domain.VisaUnknown},
		{"phrase not sub-word", "H1B sponsors attend our career fair.", domain.VisaUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectVisaSponsorship(tt.text))
		})
	}
}

func TestClassifyWorkMode(t *testing.T) {
	tests := []struct {
		name string
		text string
		want domain.WorkMode
	}{
		{"remote", "Fully Remote team", domain.WorkModeRemote},
		{"work from home counts as remote", "Work from home Fridays", domain.WorkModeRemote},
		{"hybrid", "Hybrid, 3 days in office", domain.WorkModeHybrid},
		{"remote beats hybrid", "Hybrid or fully remote", domain.WorkModeRemote},
		{"default onsite", "On our beautiful campus", domain.WorkModeOnsite},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyWorkMode(tt.text))
		})
	}
}
