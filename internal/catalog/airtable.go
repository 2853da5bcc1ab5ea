package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"

	"github.com/boredinsantacruz/guide-service/internal/activities"
	"github.com/boredinsantacruz/guide-service/internal/common"
)

const defaultBaseURL = "https://api.airtable.com/v0"

// AirtableClient lists activity records from an Airtable base. Records come
// back as loosely-typed field maps and are normalized once, right here at
// the boundary.
type AirtableClient struct {
	apiKey  string
	baseID  string
	table   string
	baseURL string
	httpCfg common.HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewAirtableClient(client *http.Client, apiKey, baseID, table string) *AirtableClient {
	return &AirtableClient{
		apiKey:  apiKey,
		baseID:  baseID,
		table:   table,
		baseURL: defaultBaseURL,
		httpCfg: common.HTTPClientConfig{
			Client:  client,
			Backoff: common.DefaultBackoff(),
		},
		circuit: common.NewCircuitBreaker("airtable"),
	}
}

// WithBaseURL overrides the API endpoint; used by tests.
func (c *AirtableClient) WithBaseURL(u string) *AirtableClient {
	c.baseURL = u
	return c
}

// FetchActivities pages through the table and returns the normalized catalog.
func (c *AirtableClient) FetchActivities(ctx context.Context) ([]activities.Activity, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("airtable api key is not configured")
	}
	if c.baseID == "" || c.table == "" {
		return nil, fmt.Errorf("airtable base and table are not configured")
	}

	var records []activities.RawRecord
	offset := ""

	for {
		page, next, err := c.fetchPage(ctx, offset)
		if err != nil {
			return nil, err
		}
		records = append(records, page...)
		if next == "" {
			break
		}
		offset = next
	}

	return activities.FromRecords(records), nil
}

func (c *AirtableClient) fetchPage(ctx context.Context, offset string) ([]activities.RawRecord, string, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		if offset != "" {
			values.Set("offset", offset)
		}

		u := fmt.Sprintf("%s/%s/%s", c.baseURL, c.baseID, url.PathEscape(c.table))
		if encoded := values.Encode(); encoded != "" {
			u += "?" + encoded
		}

		req, err := http.NewRequest(http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		return req, nil
	}

	resp, err := common.DoWithResilience(ctx, c.httpCfg, c.circuit, buildRequest)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	var payload struct {
		Records []struct {
			ID     string         `json:"id"`
			Fields map[string]any `json:"fields"`
		} `json:"records"`
		Offset string `json:"offset"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, "", err
	}

	records := make([]activities.RawRecord, 0, len(payload.Records))
	for _, rec := range payload.Records {
		records = append(records, activities.RawRecord{ID: rec.ID, Fields: rec.Fields})
	}

	return records, payload.Offset, nil
}
