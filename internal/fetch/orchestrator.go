// Package fetch drives the bounded-concurrency detail pipeline: batches of
// posting stubs go out to a description fetcher, each result is matched and
// scored, failures are contained to their own item, and the survivors come
// back as a single score-sorted collection.
package fetch

import (
	"context"
	"errors"
	"log"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"jobradar-engine/internal/domain"
	"jobradar-engine/internal/match"
	"jobradar-engine/internal/rank"
)

// Per-item failure kinds. The orchestrator treats them all the same way
// (log and drop); they exist so sources and logs can say what went wrong.
var (
	ErrNotFound           = errors.New("posting not found")
	ErrMissingDescription = errors.New("posting has no description")
)

// DescriptionFetcher is the page-layer collaborator contract. It may take as
// long as the passed context allows and fail with timeouts, not-found, or
// network errors; the orchestrator does not distinguish between them.
type DescriptionFetcher interface {
	FetchDescription(ctx context.Context, stub domain.JobStub) (string, error)
}

// Orchestrator fans stubs out in fixed-size batches of at most concurrency
// items, with a per-item timeout and a pacing pause between batches.
type Orchestrator struct {
	index       *match.SkillIndex
	fetcher     DescriptionFetcher
	concurrency int
	itemTimeout time.Duration
	pacer       Pacer
}

func New(index *match.SkillIndex, fetcher DescriptionFetcher, concurrency int, itemTimeout time.Duration, pacer Pacer) (*Orchestrator, error) {
	if index == nil {
		return nil, errors.New("fetch: nil skill index")
	}
	if fetcher == nil {
		return nil, errors.New("fetch: nil description fetcher")
	}
	if concurrency <= 0 {
		return nil, errors.New("fetch: concurrency must be positive")
	}
	if itemTimeout <= 0 {
		return nil, errors.New("fetch: item timeout must be positive")
	}
	if pacer == nil {
		pacer = NopPacer{}
	}
	return &Orchestrator{
		index:       index,
		fetcher:     fetcher,
		concurrency: concurrency,
		itemTimeout: itemTimeout,
		pacer:       pacer,
	}, nil
}

type settled struct {
	record domain.JobRecord
	err    error
}

// Run processes stubs in order and returns the successfully fetched records
// sorted by match score descending. The sort is stable, so records with equal
// scores keep their arrival order. Failed items are logged and omitted; they
// never abort siblings in the same batch or later batches. The returned error
// is non-nil only when ctx is cancelled mid-run, in which case the records
// settled so far are still returned.
func (o *Orchestrator) Run(ctx context.Context, stubs []domain.JobStub) ([]domain.JobRecord, error) {
	var records []domain.JobRecord

	batches := 0
	for start := 0; start < len(stubs); start += o.concurrency {
		end := start + o.concurrency
		if end > len(stubs) {
			end = len(stubs)
		}
		batch := stubs[start:end]
		batches++
		log.Printf("[fetch] batch %d: items %d-%d of %d", batches, start+1, end, len(stubs))

		// Each goroutine owns one slot, so no mutex is needed around the
		// results and a slow item cannot reorder its batch.
		results := make([]settled, len(batch))
		var g errgroup.Group
		for i, stub := range batch {
			i, stub := i, stub
			g.Go(func() error {
				results[i] = o.processOne(ctx, stub)
				return nil // item failures never unwind siblings
			})
		}
		_ = g.Wait()

		for i, res := range results {
			if res.err != nil {
				log.Printf("[fetch] %s dropped: %v", batch[i].DedupKey(), res.err)
				continue
			}
			records = append(records, res.record)
		}

		if err := ctx.Err(); err != nil {
			return records, err
		}
		if end < len(stubs) {
			if err := o.pacer.Pause(ctx); err != nil {
				return records, err
			}
		}
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].MatchScore > records[j].MatchScore
	})
	return records, nil
}

// processOne fetches one description under the per-item timeout and runs the
// synchronous match/score pass over it.
func (o *Orchestrator) processOne(ctx context.Context, stub domain.JobStub) settled {
	ictx, cancel := context.WithTimeout(ctx, o.itemTimeout)
	defer cancel()

	desc, err := o.fetcher.FetchDescription(ictx, stub)
	if err != nil {
		return settled{err: err}
	}
	desc = strings.TrimSpace(desc)
	if desc == "" {
		return settled{err: ErrMissingDescription}
	}

	skills := o.index.Search(desc)

	rec := domain.JobRecord{
		JobStub:         stub,
		Description:     desc,
		Skills:          skills,
		MatchScore:      rank.Score(skills, desc),
		VisaSponsorship: rank.DetectVisaSponsorship(desc),
		WorkMode:        rank.ClassifyWorkMode(desc),
		Status:          domain.StatusFetched,
		FetchedAt:       time.Now().UTC(),
	}
	return settled{record: rec}
}
