package crustdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"prospect-pipeline/internal/common/config"
	"prospect-pipeline/internal/common/httpclient"
	"prospect-pipeline/internal/common/logger"
	"prospect-pipeline/internal/common/metrics"
)

const (
	screenPath        = "/screener/screen/"
	companySearchPath = "/screener/company/search"
	personSearchPath  = "/screener/person/search"
	enrichPath        = "/screener/company"
)

const maxEnrichDomains = 25

var (
	ErrScreenFailed       = errors.New("SCREEN_FAILED")
	ErrSearchFailed       = errors.New("SEARCH_FAILED")
	ErrEnrichFailed       = errors.New("ENRICH_FAILED")
	ErrPeopleSearchFailed = errors.New("PEOPLE_SEARCH_FAILED")
)

// Client issues the four provider calls behind one bearer credential.
// Each method returns the decoded response or an error on non-2xx /
// transport failure; the caller decides which failures are fatal.
type Client struct {
	baseURL string
	apiKey  string
	client  *httpclient.Client
	logger  logger.Logger
}

func NewClient(cfg config.CrustdataConfig, log logger.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		client:  httpclient.NewClient(cfg.TimeoutDuration()),
		logger:  log.WithFields(map[string]interface{}{"component": "crustdata"}),
	}
}

// BaseURL exposes the configured endpoint root for curl rendering.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) headers() map[string]string {
	return map[string]string{
		"Authorization": "Bearer " + c.apiKey,
	}
}

func (c *Client) ScreenCompanies(ctx context.Context, payload ScreeningRequest) (*ScreenResponse, error) {
	var resp ScreenResponse
	if err := c.post(ctx, screenPath, payload, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScreenFailed, err)
	}
	return &resp, nil
}

func (c *Client) SearchCompanies(ctx context.Context, payload CompanySearchRequest) (*CompanySearchResponse, error) {
	var resp CompanySearchResponse
	if err := c.post(ctx, companySearchPath, payload, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}
	return &resp, nil
}

func (c *Client) SearchPeople(ctx context.Context, payload CompanySearchRequest) (*PeopleSearchResponse, error) {
	var resp PeopleSearchResponse
	if err := c.post(ctx, personSearchPath, payload, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPeopleSearchFailed, err)
	}
	return &resp, nil
}

// EnrichCompanies looks up a capped domain list with the fixed
// enrichment field set. A single-object reply is normalized into a
// one-element list.
func (c *Client) EnrichCompanies(ctx context.Context, domains []string) ([]EnrichedCompany, error) {
	capped := domains
	if len(capped) > maxEnrichDomains {
		capped = capped[:maxEnrichDomains]
	}

	params := url.Values{}
	params.Set("company_domain", strings.Join(capped, ","))
	params.Set("fields", strings.Join(enrichmentFields, ","))
	fullURL := c.baseURL + enrichPath + "?" + params.Encode()

	var raw json.RawMessage
	if err := c.client.DoJSON(ctx, "GET", fullURL, c.headers(), nil, &raw); err != nil {
		c.recordOutcome(enrichPath, err)
		c.logger.Error("enrichment call failed", map[string]interface{}{
			"url":     fullURL,
			"domains": len(capped),
			"error":   err.Error(),
		})
		return nil, fmt.Errorf("%w: %v", ErrEnrichFailed, err)
	}
	c.recordOutcome(enrichPath, nil)

	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "[") {
		var list []EnrichedCompany
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, fmt.Errorf("%w: decode list: %v", ErrEnrichFailed, err)
		}
		return list, nil
	}

	var single EnrichedCompany
	if err := json.Unmarshal(raw, &single); err != nil {
		return nil, fmt.Errorf("%w: decode object: %v", ErrEnrichFailed, err)
	}
	return []EnrichedCompany{single}, nil
}

func (c *Client) post(ctx context.Context, path string, payload, out interface{}) error {
	err := c.client.DoJSON(ctx, "POST", c.baseURL+path, c.headers(), payload, out)
	c.recordOutcome(path, err)
	if err != nil {
		c.logger.Error("provider call failed", map[string]interface{}{
			"url":   c.baseURL + path,
			"error": err.Error(),
		})
	}
	return err
}

func (c *Client) recordOutcome(path string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
		var statusErr *httpclient.StatusError
		if errors.As(err, &statusErr) {
			outcome = fmt.Sprintf("http_%dxx", statusErr.StatusCode/100)
		}
	}
	metrics.UpstreamCalls.WithLabelValues(strings.Trim(path, "/"), outcome).Inc()
}
