package source

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobradar-engine/internal/domain"
)

type staticSource struct {
	name string
	desc string
}

func (s *staticSource) Name() string { return s.name }

func (s *staticSource) ListStubs(context.Context, Query) ([]domain.JobStub, error) {
	return nil, nil
}

func (s *staticSource) FetchDescription(context.Context, domain.JobStub) (string, error) {
	return s.desc, nil
}

func TestRouterDispatchesBySource(t *testing.T) {
	r := NewRouter(
		&staticSource{name: "indeed", desc: "from indeed"},
		&staticSource{name: "linkedin", desc: "from linkedin"},
	)

	got, err := r.FetchDescription(context.Background(), domain.JobStub{Source: "linkedin", PlatformID: "1"})
	require.NoError(t, err)
	assert.Equal(t, "from linkedin", got)

	got, err = r.FetchDescription(context.Background(), domain.JobStub{Source: "indeed", PlatformID: "2"})
	require.NoError(t, err)
	assert.Equal(t, "from indeed", got)
}

func TestRouterUnknownSource(t *testing.T) {
	r := NewRouter()
	_, err := r.FetchDescription(context.Background(), domain.JobStub{Source: "monster", PlatformID: "1"})
	assert.Error(t, err)
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "Data Engineer", CleanText("  Data \n  Engineer  "))
	assert.Equal(t, "", CleanText("   "))
}
