package linkedin

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobradar-engine/internal/domain"
	"jobradar-engine/internal/fetch"
	"jobradar-engine/internal/source"
)

const listingHTML = `<html><body>
<div class="base-card" data-entity-urn="urn:li:jobPosting:4012345678">
  <a class="base-card__full-link" href="https://www.linkedin.com/jobs/view/data-engineer-4012345678?refId=x"></a>
  <h3 class="base-search-card__title">Data Engineer</h3>
  <h4 class="base-search-card__subtitle">Acme Corp</h4>
  <span class="job-search-card__location">New York, NY</span>
  <time datetime="2026-08-28">3 days ago</time>
</div>
<div class="base-card">
  <a class="base-card__full-link" href="https://www.linkedin.com/jobs/view/platform-engineer-4098765432/?trk=guest"></a>
  <h3 class="base-search-card__title">Platform Engineer</h3>
  <h4 class="base-search-card__subtitle">Beta Inc</h4>
  <span class="job-search-card__location">Remote</span>
</div>
</body></html>`

func testServer(t *testing.T, descriptions map[string]string) *Source {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/jobs-guest/jobs/api/seeMoreJobPostings/search", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, listingHTML)
	})
	mux.HandleFunc("/jobs-guest/jobs/api/jobPosting/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/jobs-guest/jobs/api/jobPosting/")
		desc, ok := descriptions[id]
		if !ok {
			http.NotFound(w, r)
			return
		}
		fmt.Fprintf(w, `<html><body><div class="show-more-less-html__markup">%s</div></body></html>`, desc)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	s := New(source.NewHostLimiter(100, 100))
	s.baseURL = srv.URL
	return s
}

func TestListStubs(t *testing.T) {
	s := testServer(t, nil)

	stubs, err := s.ListStubs(context.Background(), source.Query{Role: "Data Engineer", Location: "United States"})
	require.NoError(t, err)
	require.Len(t, stubs, 2)

	assert.Equal(t, "4012345678", stubs[0].PlatformID, "id comes from the entity URN")
	assert.Equal(t, "linkedin", stubs[0].Source)
	assert.Equal(t, "Data Engineer", stubs[0].Title)
	assert.Equal(t, "Acme Corp", stubs[0].Company)
	assert.Equal(t, "New York, NY", stubs[0].Location)
	assert.Equal(t, "2026-08-28", stubs[0].PostedDate)

	assert.Equal(t, "4098765432", stubs[1].PlatformID, "id falls back to the detail link")
}

func TestFetchDescription(t *testing.T) {
	s := testServer(t, map[string]string{"4012345678": "Senior role. Spark and Airflow."})

	text, err := s.FetchDescription(context.Background(), domain.JobStub{PlatformID: "4012345678", Source: "linkedin"})
	require.NoError(t, err)
	assert.Equal(t, "Senior role. Spark and Airflow.", text)
}

func TestFetchDescriptionNotFound(t *testing.T) {
	s := testServer(t, nil)

	_, err := s.FetchDescription(context.Background(), domain.JobStub{PlatformID: "0", Source: "linkedin"})
	assert.ErrorIs(t, err, fetch.ErrNotFound)
}
