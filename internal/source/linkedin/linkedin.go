// Package linkedin lists postings through LinkedIn's guest job-search API,
// which serves plain HTML fragments and needs no session.
package linkedin

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"jobradar-engine/internal/domain"
	"jobradar-engine/internal/fetch"
	"jobradar-engine/internal/source"
)

const userAgent = "jobradar/1.0 (+local)"

type Source struct {
	hc      *http.Client
	limiter *source.HostLimiter
	baseURL string
}

func New(limiter *source.HostLimiter) *Source {
	return &Source{
		hc:      &http.Client{Timeout: 20 * time.Second},
		limiter: limiter,
		baseURL: "https://www.linkedin.com",
	}
}

func (s *Source) Name() string { return "linkedin" }

func (s *Source) ListStubs(ctx context.Context, q source.Query) ([]domain.JobStub, error) {
	searchURL := fmt.Sprintf("%s/jobs-guest/jobs/api/seeMoreJobPostings/search?keywords=%s&location=%s&start=0",
		s.baseURL, url.QueryEscape(q.Role), url.QueryEscape(q.Location))

	doc, err := s.get(ctx, searchURL)
	if err != nil {
		return nil, fmt.Errorf("linkedin list: %w", err)
	}

	var stubs []domain.JobStub
	doc.Find("div.base-card").EachWithBreak(func(_ int, card *goquery.Selection) bool {
		if q.MaxJobs > 0 && len(stubs) >= q.MaxJobs {
			return false
		}

		id := postingID(card)
		if id == "" {
			return true
		}

		stubs = append(stubs, domain.JobStub{
			PlatformID: id,
			Source:     s.Name(),
			Title:      orUnknown(source.CleanText(card.Find("h3.base-search-card__title").Text())),
			Company:    orUnknown(source.CleanText(card.Find("h4.base-search-card__subtitle").Text())),
			Location:   orUnknown(source.CleanText(card.Find("span.job-search-card__location").Text())),
			PostedDate: postedDate(card),
			URL:        fmt.Sprintf("%s/jobs/view/%s", s.baseURL, id),
		})
		return true
	})

	return stubs, nil
}

func (s *Source) FetchDescription(ctx context.Context, stub domain.JobStub) (string, error) {
	doc, err := s.get(ctx, fmt.Sprintf("%s/jobs-guest/jobs/api/jobPosting/%s", s.baseURL, stub.PlatformID))
	if err != nil {
		return "", fmt.Errorf("linkedin detail %s: %w", stub.PlatformID, err)
	}

	for _, sel := range []string{
		"div.show-more-less-html__markup",
		"div.description__text",
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

// postingID extracts the numeric posting id from the card's entity URN
// (urn:li:jobPosting:4012345678), falling back to the detail link path.
func postingID(card *goquery.Selection) string {
	if urn, ok := card.Attr("data-entity-urn"); ok {
		if i := strings.LastIndex(urn, ":"); i >= 0 && i+1 < len(urn) {
			return urn[i+1:]
		}
	}
	href, ok := card.Find("a.base-card__full-link").Attr("href")
	if !ok {
		return ""
	}
	href = strings.SplitN(href, "?", 2)[0]
	href = strings.TrimRight(href, "/")
	seg := href[strings.LastIndex(href, "-")+1:]
	if seg == "" || strings.ContainsAny(seg, "/:") {
		return ""
	}
	return seg
}

func postedDate(card *goquery.Selection) string {
	t := card.Find("time").First()
	if dt, ok := t.Attr("datetime"); ok {
		return dt
	}
	return source.CleanText(t.Text())
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
