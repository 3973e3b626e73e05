package hospital

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// feedSite mirrors the upstream schema, which uses capitalized keys.
// Normalization into FacilityRecord happens once here, at the ingestion
// boundary.
type feedSite struct {
	Name          string `json:"Name"`
	WaitTime      string `json:"WaitTime"`
	Note          string `json:"Note"`
	Address       string `json:"Address"`
	URL           string `json:"URL"`
	Category      string `json:"Category"`
	SplitFacility bool   `json:"SplitFacility"`
}

// FeedClient fetches the nested region -> category -> facility wait-time
// feed and flattens it into FacilityRecords.
type FeedClient struct {
	url        string
	httpClient *http.Client
}

func NewFeedClient(url string, timeout time.Duration) *FeedClient {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &FeedClient{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Fetch retrieves and flattens the current feed. The call is bounded by the
// client timeout and by ctx.
func (c *FeedClient) Fetch(ctx context.Context) ([]FacilityRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "HealthFlow/1.0 (+https://github.com/healthflow)")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch facility feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("facility feed returned status: %s", resp.Status)
	}

	var raw map[string]map[string][]feedSite
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode facility feed: %w", err)
	}
	return flatten(raw), nil
}

// flatten walks region -> category -> sites and produces one normalized
// record per site, skipping unnamed entries.
func flatten(raw map[string]map[string][]feedSite) []FacilityRecord {
	var records []FacilityRecord
	for region, categories := range raw {
		for _, sites := range categories {
			for _, site := range sites {
				name := strings.TrimSpace(site.Name)
				if name == "" {
					continue
				}
				records = append(records, FacilityRecord{
					Name:     name,
					Category: mapCategory(site.Category),
					Region:   region,
					WaitTime: site.WaitTime,
					Note:     site.Note,
					Address:  site.Address,
					URL:      site.URL,
				})
			}
		}
	}
	return records
}

// mapCategory folds the feed's site categories onto the three care tiers.
func mapCategory(feedCategory string) Category {
	switch {
	case feedCategory == "Emergency":
		return CategoryEmergency
	case strings.Contains(feedCategory, "Urgent"):
		return CategoryUrgent
	default:
		return CategoryPrimaryCare
	}
}
