package domain

import "time"

// WorkMode is where the role expects you to sit.
type WorkMode string

const (
	WorkModeRemote WorkMode = "remote"
	WorkModeHybrid WorkMode = "hybrid"
	WorkModeOnsite WorkMode = "onsite"
)

// VisaSignal is a tri-state sponsorship signal. "unknown" means the posting
// said nothing either way; it is not the same as "no".
type VisaSignal string

const (
	VisaSponsors      VisaSignal = "sponsors"
	VisaNoSponsorship VisaSignal = "no_sponsorship"
	VisaUnknown       VisaSignal = "unknown"
)

// FetchStatus tracks a posting through the pipeline. Transitions are
// new -> fetched or new -> failed, never backward.
type FetchStatus string

const (
	StatusNew     FetchStatus = "new"
	StatusFetched FetchStatus = "fetched"
	StatusFailed  FetchStatus = "failed"
)

// JobStub is the cheap identity pulled off a listing page, before any
// detail fetch has been paid for.
type JobStub struct {
	PlatformID string `json:"platform_id"`
	Source     string `json:"source"`
	Title      string `json:"job_title"`
	Company    string `json:"company_name"`
	Location   string `json:"location"`
	PostedDate string `json:"posted_date,omitempty"`
	URL        string `json:"application_link,omitempty"`
}

// DedupKey identifies a posting across runs. Platform ids are only unique
// within their source, so the source tag is part of the key.
func (s JobStub) DedupKey() string {
	return s.Source + ":" + s.PlatformID
}

// JobRecord is a stub plus everything learned from the detail page.
type JobRecord struct {
	JobStub
	Description     string      `json:"job_description"`
	Skills          []string    `json:"skills"`
	MatchScore      float64     `json:"match_score"`
	VisaSponsorship VisaSignal  `json:"visa_sponsorship"`
	WorkMode        WorkMode    `json:"work_mode"`
	Status          FetchStatus `json:"status"`
	FetchedAt       time.Time   `json:"fetched_at"`
}
