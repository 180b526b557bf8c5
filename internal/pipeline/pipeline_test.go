package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prospect-pipeline/internal/canonical"
	"prospect-pipeline/internal/common/logger"
	"prospect-pipeline/internal/crustdata"
)

// ==========================
// Test Helper Functions
// ==========================

// fakeProvider scripts each provider call and records what was invoked.
type fakeProvider struct {
	screenResp *crustdata.ScreenResponse
	screenErr  error

	searchResp   *crustdata.CompanySearchResponse
	searchErr    error
	searchCalled bool

	enrichResp    []crustdata.EnrichedCompany
	enrichErr     error
	enrichCalled  bool
	enrichDomains []string

	peopleResp *crustdata.PeopleSearchResponse
	peopleErr  error
}

func (f *fakeProvider) BaseURL() string { return "https://api.example.com" }

func (f *fakeProvider) ScreenCompanies(ctx context.Context, payload crustdata.ScreeningRequest) (*crustdata.ScreenResponse, error) {
	return f.screenResp, f.screenErr
}

func (f *fakeProvider) SearchCompanies(ctx context.Context, payload crustdata.CompanySearchRequest) (*crustdata.CompanySearchResponse, error) {
	f.searchCalled = true
	return f.searchResp, f.searchErr
}

func (f *fakeProvider) SearchPeople(ctx context.Context, payload crustdata.CompanySearchRequest) (*crustdata.PeopleSearchResponse, error) {
	return f.peopleResp, f.peopleErr
}

func (f *fakeProvider) EnrichCompanies(ctx context.Context, domains []string) ([]crustdata.EnrichedCompany, error) {
	f.enrichCalled = true
	f.enrichDomains = domains
	return f.enrichResp, f.enrichErr
}

func newPipeline(t *testing.T, provider ProviderClient) *Pipeline {
	log := logger.NewTestLogger(t)
	return New(canonical.New(nil, log), provider, log)
}

func screenWithDomains(domains ...string) *crustdata.ScreenResponse {
	rows := make([][]interface{}, len(domains))
	for i, d := range domains {
		rows[i] = []interface{}{d}
	}
	return &crustdata.ScreenResponse{
		Fields: []crustdata.ScreenField{{APIName: "company_website_domain"}},
		Rows:   rows,
	}
}

func stepStatus(t *testing.T, steps []StepOutcome, name string) string {
	t.Helper()
	for _, s := range steps {
		if s.Step == name {
			return s.Status
		}
	}
	t.Fatalf("step %q missing from trace", name)
	return ""
}

// ==========================
// Parse Tests
// ==========================

func TestParse_BuildsEverythingWithoutCallingProvider(t *testing.T) {
	provider := &fakeProvider{}
	p := newPipeline(t, provider)

	result := p.Parse(context.Background(), "fintech in india with 50-200 employees")

	assert.Equal(t, []string{"Financial Services"}, result.Canonical.Industry)
	assert.Contains(t, result.Curls.Screen, "/screener/screen/")
	assert.Contains(t, result.Curls.Search, "/screener/company/search")
	assert.Contains(t, result.Curls.People, "/screener/person/search")
	assert.Equal(t, noDomainsEnrichCurl, result.Curls.Enrich)

	assert.False(t, provider.searchCalled)
	assert.False(t, provider.enrichCalled)
}

// ==========================
// Run Tests
// ==========================

func TestRun_HappyPathSkipsSearch(t *testing.T) {
	provider := &fakeProvider{
		screenResp: screenWithDomains("acme.com", "globex.io"),
		enrichResp: []crustdata.EnrichedCompany{{"company_name": "Acme"}},
		peopleResp: &crustdata.PeopleSearchResponse{
			Profiles: []crustdata.PersonProfile{
				{
					Name:     "Priya Sharma",
					Employer: []crustdata.Employment{{CompanyName: "Acme", Title: "CEO"}},
				},
			},
		},
	}
	p := newPipeline(t, provider)

	result := p.Run(context.Background(), "saas companies")

	assert.False(t, provider.searchCalled, "search must be skipped when screening yields domains")
	assert.True(t, provider.enrichCalled)
	assert.Equal(t, []string{"acme.com", "globex.io"}, provider.enrichDomains)

	require.Len(t, result.CompaniesEnriched, 1)
	require.Contains(t, result.PeopleMatched, "acme")
	assert.Equal(t, "Priya Sharma", result.PeopleMatched["acme"][0].Name)

	assert.Equal(t, StepOK, stepStatus(t, result.Steps, "screen"))
	assert.Equal(t, StepSkipped, stepStatus(t, result.Steps, "search"))
	assert.Equal(t, StepOK, stepStatus(t, result.Steps, "enrich"))
	assert.Equal(t, StepOK, stepStatus(t, result.Steps, "people"))
	assert.Contains(t, result.Curls.Enrich, "acme.com")
}

func TestRun_ScreenFailureFallsBackToSearch(t *testing.T) {
	provider := &fakeProvider{
		screenErr: errors.New("SCREEN_FAILED: upstream 500"),
		searchResp: &crustdata.CompanySearchResponse{
			Companies: []crustdata.SearchCompany{{Name: "Acme", Website: "https://acme.com/"}},
		},
		enrichResp: []crustdata.EnrichedCompany{{"company_name": "Acme"}},
		peopleResp: &crustdata.PeopleSearchResponse{},
	}
	p := newPipeline(t, provider)

	result := p.Run(context.Background(), "saas companies")

	assert.True(t, provider.searchCalled)
	assert.True(t, provider.enrichCalled)
	assert.Equal(t, []string{"acme.com"}, provider.enrichDomains)
	assert.Len(t, result.CompaniesEnriched, 1)

	assert.Equal(t, StepFailed, stepStatus(t, result.Steps, "screen"))
	assert.Equal(t, StepOK, stepStatus(t, result.Steps, "search"))
}

func TestRun_NoDomainsAnywhereSkipsEnrich(t *testing.T) {
	provider := &fakeProvider{
		screenResp: &crustdata.ScreenResponse{},
		searchResp: &crustdata.CompanySearchResponse{},
		peopleResp: &crustdata.PeopleSearchResponse{},
	}
	p := newPipeline(t, provider)

	result := p.Run(context.Background(), "saas companies")

	assert.False(t, provider.enrichCalled)
	assert.Equal(t, noDomainsEnrichCurl, result.Curls.Enrich)
	assert.Equal(t, StepSkipped, stepStatus(t, result.Steps, "enrich"))
	assert.Empty(t, result.CompaniesEnriched)
}

func TestRun_PeopleAlwaysAttempted(t *testing.T) {
	provider := &fakeProvider{
		screenErr: errors.New("screen down"),
		searchErr: errors.New("search down"),
		peopleResp: &crustdata.PeopleSearchResponse{
			Profiles: []crustdata.PersonProfile{
				{Name: "Ravi", Employer: []crustdata.Employment{{CompanyName: "Acme"}}},
			},
		},
	}
	p := newPipeline(t, provider)

	result := p.Run(context.Background(), "anything")

	// People search ran even though every company step failed; with no
	// enriched companies nothing matches.
	assert.Equal(t, StepOK, stepStatus(t, result.Steps, "people"))
	assert.Empty(t, result.PeopleMatched)
}

func TestRun_PeopleFailureIsNonFatal(t *testing.T) {
	provider := &fakeProvider{
		screenResp: screenWithDomains("acme.com"),
		enrichResp: []crustdata.EnrichedCompany{{"company_name": "Acme"}},
		peopleErr:  errors.New("PEOPLE_SEARCH_FAILED: 502"),
	}
	p := newPipeline(t, provider)

	result := p.Run(context.Background(), "anything")

	assert.Equal(t, StepFailed, stepStatus(t, result.Steps, "people"))
	assert.Len(t, result.CompaniesEnriched, 1)
	assert.NotNil(t, result.PeopleMatched)
}

func TestRun_ResultAlwaysHasNonNilCollections(t *testing.T) {
	provider := &fakeProvider{
		screenErr: errors.New("down"),
		searchErr: errors.New("down"),
		peopleErr: errors.New("down"),
	}
	p := newPipeline(t, provider)

	result := p.Run(context.Background(), "anything")

	require.NotNil(t, result)
	assert.NotNil(t, result.CompaniesEnriched)
	assert.NotNil(t, result.PeopleMatched)
	assert.Len(t, result.Steps, 4)
}
