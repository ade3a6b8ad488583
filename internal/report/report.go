// Package report turns a finished run into its two artifacts: a JSON file of
// every record, and a human-facing summary of the matches worth reading.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"jobradar-engine/internal/domain"
)

// DefaultFilename names the JSON artifact after the moment the run ended.
func DefaultFilename(now time.Time) string {
	return fmt.Sprintf("jobs_%s.json", now.Format("20060102_150405"))
}

// WriteJSON writes records as one indented JSON array, one entry per record.
// An empty run still produces a valid empty array.
func WriteJSON(path string, records []domain.JobRecord) error {
	if records == nil {
		records = []domain.JobRecord{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("report: marshal records: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("report: write %s: %w", path, err)
	}
	return nil
}

// Summary prints run totals and the top matches at or above minScore.
// Records are assumed to already be sorted by score descending.
func Summary(w io.Writer, records []domain.JobRecord, minScore float64, topN int) {
	var filtered []domain.JobRecord
	total := 0.0
	for _, r := range records {
		total += r.MatchScore
		if r.MatchScore >= minScore {
			filtered = append(filtered, r)
		}
	}

	fmt.Fprintf(w, "jobs scraped:  %d\n", len(records))
	fmt.Fprintf(w, "good matches:  %d (score >= %.0f%%)\n", len(filtered), minScore*100)
	if len(records) > 0 {
		fmt.Fprintf(w, "average score: %.0f%%\n", total/float64(len(records))*100)
	}

	if len(filtered) > topN {
		filtered = filtered[:topN]
	}
	for i, r := range filtered {
		fmt.Fprintf(w, "%2d. [%3.0f%%] %s\n", i+1, r.MatchScore*100, r.Title)
		fmt.Fprintf(w, "    %s | %s\n", r.Company, r.Location)
		fmt.Fprintf(w, "    skills: %d | work: %s | visa: %s\n", len(r.Skills), r.WorkMode, r.VisaSponsorship)
	}
}
