// Package indeed lists postings from Indeed's search pages and fetches
// posting descriptions from the view-job page.
package indeed

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"github.com/PuerkitoBio/goquery"

	"jobradar-engine/internal/domain"
	"jobradar-engine/internal/fetch"
	"jobradar-engine/internal/source"
)

const userAgent = "jobradar/1.0 (+local)"

// jkPattern pulls the job key out of card hrefs when the data-jk attribute
// is missing.
var jkPattern = regexp.MustCompile(`jk=([a-f0-9]+)`)

type Source struct {
	hc      *http.Client
	limiter *source.HostLimiter
	baseURL string
}

func New(limiter *source.HostLimiter) *Source {
	return &Source{
		hc:      &http.Client{Timeout: 20 * time.Second},
		limiter: limiter,
		baseURL: "https://www.indeed.com",
	}
}

func (s *Source) Name() string { return "indeed" }

// ListStubs loads the search page for the query (last 7 days) and extracts
// one stub per job card. Cards without a job key are skipped.
func (s *Source) ListStubs(ctx context.Context, q source.Query) ([]domain.JobStub, error) {
	searchURL := fmt.Sprintf("%s/jobs?q=%s&l=%s&fromage=7",
		s.baseURL, url.QueryEscape(q.Role), url.QueryEscape(q.Location))

	doc, err := s.get(ctx, searchURL)
	if err != nil {
		return nil, fmt.Errorf("indeed list: %w", err)
	}

	cards := doc.Find("div.job_seen_beacon")
	if cards.Length() == 0 {
		cards = doc.Find("div.cardOutline")
	}

	var stubs []domain.JobStub
	cards.EachWithBreak(func(_ int, card *goquery.Selection) bool {
		if q.MaxJobs > 0 && len(stubs) >= q.MaxJobs {
			return false
		}

		jk := jobKey(card)
		if jk == "" {
			return true
		}

		title, _ := card.Find("h2.jobTitle span[title]").Attr("title")
		if title == "" {
			title = card.Find("h2.jobTitle").Text()
		}
		company := card.Find(`span[data-testid="company-name"]`).Text()
		if company == "" {
			company = card.Find("span.companyName").Text()
		}
		location := card.Find(`div[data-testid="text-location"]`).Text()
		if location == "" {
			location = card.Find("div.companyLocation").Text()
		}

		stubs = append(stubs, domain.JobStub{
			PlatformID: jk,
			Source:     s.Name(),
			Title:      orUnknown(source.CleanText(title)),
			Company:    orUnknown(source.CleanText(company)),
			Location:   orUnknown(source.CleanText(location)),
			PostedDate: source.CleanText(card.Find("span.date").Text()),
			URL:        fmt.Sprintf("%s/viewjob?jk=%s", s.baseURL, jk),
		})
		return true
	})

	return stubs, nil
}

// FetchDescription loads the view-job page and extracts the description
// text. Selector fallbacks cover the board's layout variants.
func (s *Source) FetchDescription(ctx context.Context, stub domain.JobStub) (string, error) {
	doc, err := s.get(ctx, fmt.Sprintf("%s/viewjob?jk=%s", s.baseURL, stub.PlatformID))
	if err != nil {
		return "", fmt.Errorf("indeed detail %s: %w", stub.PlatformID, err)
	}

	for _, sel := range []string{
		"#jobDescriptionText",
		"div.jobsearch-jobDescriptionText",
		"div[id*='jobDescriptionText']",
		"div.job-description",
	} {
		if text := source.CleanText(doc.Find(sel).First().Text()); text != "" {
			return text, nil
		}
	}
	return "", fetch.ErrMissingDescription
}

func (s *Source) get(ctx context.Context, rawURL string) (*goquery.Document, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	if err := s.limiter.Acquire(ctx, u.Host); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	res, err := s.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, fetch.ErrNotFound
	}
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("status %d", res.StatusCode)
	}
	return goquery.NewDocumentFromReader(res.Body)
}

func jobKey(card *goquery.Selection) string {
	link := card.Find("a[data-jk]").First()
	if jk, ok := link.Attr("data-jk"); ok && jk != "" {
		return jk
	}
	link = card.Find("a.jcs-JobTitle").First()
	if href, ok := link.Attr("href"); ok {
		if m := jkPattern.FindStringSubmatch(href); m != nil {
			return m[1]
		}
	}
	return ""
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
