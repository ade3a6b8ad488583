// Package source holds the page-layer collaborators: things that know how to
// enumerate posting stubs for a query and fetch a posting's description text.
// The matching/scoring core only ever sees the interfaces defined here.
package source

import (
	"context"
	"fmt"
	"strings"

	"jobradar-engine/internal/domain"
)

// Query describes one listing search.
type Query struct {
	Role     string
	Location string
	MaxJobs  int
}

// Source lists postings for a query and fetches their detail text.
// ListStubs may return fewer stubs than MaxJobs; a listing error is fatal for
// the source's run. FetchDescription failures only ever cost the one item.
type Source interface {
	Name() string
	ListStubs(ctx context.Context, q Query) ([]domain.JobStub, error)
	FetchDescription(ctx context.Context, stub domain.JobStub) (string, error)
}

// Router dispatches description fetches to the source a stub came from, so
// one orchestrator run can mix stubs from several boards.
type Router struct {
	sources map[string]Source
}

func NewRouter(sources ...Source) *Router {
	r := &Router{sources: make(map[string]Source, len(sources))}
	for _, s := range sources {
		r.sources[s.Name()] = s
	}
	return r
}

func (r *Router) FetchDescription(ctx context.Context, stub domain.JobStub) (string, error) {
	s, ok := r.sources[stub.Source]
	if !ok {
		return "", fmt.Errorf("source: no fetcher registered for %q", stub.Source)
	}
	return s.FetchDescription(ctx, stub)
}

// CleanText collapses runs of whitespace (including non-breaking spaces) the
// way board HTML tends to need.
func CleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}
