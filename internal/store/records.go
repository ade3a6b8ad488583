package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"jobradar-engine/internal/domain"
)

// InsertRecordIfNew writes rec unless its dedup key is already stored, and
// reports whether a row was actually added.
func (d *DB) InsertRecordIfNew(ctx context.Context, rec domain.JobRecord) (added bool, err error) {
	skills, err := json.Marshal(rec.Skills)
	if err != nil {
		return false, fmt.Errorf("store insert: marshal skills: %w", err)
	}

	_, err = d.Pool.ExecContext(ctx, `
INSERT OR IGNORE INTO jobs
  (source_id, source, platform_id, title, company, location, posted_date, url,
   description, skills, match_score, visa, work_mode, status, fetched_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`,
		rec.DedupKey(), rec.Source, rec.PlatformID, rec.Title, rec.Company,
		rec.Location, rec.PostedDate, rec.URL, rec.Description, string(skills),
		rec.MatchScore, string(rec.VisaSponsorship), string(rec.WorkMode),
		string(rec.Status), rec.FetchedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return false, fmt.Errorf("store insert: %w", err)
	}

	// INSERT OR IGNORE does not report rows affected reliably across
	// drivers; ask sqlite directly.
	var changes int
	if err := d.Pool.QueryRowContext(ctx, `SELECT changes();`).Scan(&changes); err != nil {
		return false, fmt.Errorf("store insert: changes: %w", err)
	}
	return changes > 0, nil
}

// SeenIDs returns every stored dedup key, for seeding the registry at
// startup.
func (d *DB) SeenIDs(ctx context.Context) ([]string, error) {
	rows, err := d.Pool.QueryContext(ctx, `SELECT source_id FROM jobs;`)
	if err != nil {
		return nil, fmt.Errorf("store seen ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// TopRecords returns stored records at or above minScore, best first.
func (d *DB) TopRecords(ctx context.Context, minScore float64, limit int) ([]domain.JobRecord, error) {
	rows, err := d.Pool.QueryContext(ctx, `
SELECT source, platform_id, title, company, location, posted_date, url,
       description, skills, match_score, visa, work_mode, status, fetched_at
FROM jobs
WHERE match_score >= ?
ORDER BY match_score DESC, id ASC
LIMIT ?;`, minScore, limit)
	if err != nil {
		return nil, fmt.Errorf("store top records: %w", err)
	}
	defer rows.Close()

	var out []domain.JobRecord
	for rows.Next() {
		var rec domain.JobRecord
		var skillsJSON, visa, workMode, status, fetchedAt string
		if err := rows.Scan(&rec.Source, &rec.PlatformID, &rec.Title, &rec.Company,
			&rec.Location, &rec.PostedDate, &rec.URL, &rec.Description,
			&skillsJSON, &rec.MatchScore, &visa, &workMode, &status, &fetchedAt); err != nil {
			return nil, err
		}
		_ = json.Unmarshal([]byte(skillsJSON), &rec.Skills)
		rec.VisaSponsorship = domain.VisaSignal(visa)
		rec.WorkMode = domain.WorkMode(workMode)
		rec.Status = domain.FetchStatus(status)
		rec.FetchedAt, _ = time.Parse(time.RFC3339, fetchedAt)
		out = append(out, rec)
	}
	return out, rows.Err()
}
