// Package pipeline orchestrates the full prompt-to-prospects flow:
// canonicalize the prompt, render provider payloads and curl commands,
// call the provider step by step, and join the results.
package pipeline

import (
	"context"
	"time"

	"prospect-pipeline/internal/canonical"
	"prospect-pipeline/internal/common/logger"
	"prospect-pipeline/internal/common/metrics"
	"prospect-pipeline/internal/crustdata"
)

// noDomainsEnrichCurl is rendered in place of the enrichment command when
// neither screening nor search produced any domains.
const noDomainsEnrichCurl = "No domains available for enrichment"

// ProviderClient is the provider surface the orchestrator depends on.
// *crustdata.Client satisfies it; tests inject fakes.
type ProviderClient interface {
	BaseURL() string
	ScreenCompanies(ctx context.Context, payload crustdata.ScreeningRequest) (*crustdata.ScreenResponse, error)
	SearchCompanies(ctx context.Context, payload crustdata.CompanySearchRequest) (*crustdata.CompanySearchResponse, error)
	SearchPeople(ctx context.Context, payload crustdata.CompanySearchRequest) (*crustdata.PeopleSearchResponse, error)
	EnrichCompanies(ctx context.Context, domains []string) ([]crustdata.EnrichedCompany, error)
}

// state names the orchestrator's position in the run.
type state string

const (
	stateScreen state = "screen"
	stateSearch state = "search"
	stateEnrich state = "enrich"
	statePeople state = "people"
	stateDone   state = "done"
)

// Step outcome labels recorded in the trace.
const (
	StepOK      = "ok"
	StepFailed  = "failed"
	StepSkipped = "skipped"
)

// StepOutcome is one entry of the run trace.
type StepOutcome struct {
	Step   string `json:"step"`
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// Curls holds the copy-pasteable command string for each provider call.
type Curls struct {
	Screen string `json:"screen"`
	Search string `json:"search"`
	Enrich string `json:"enrich"`
	People string `json:"people"`
}

// Payloads holds the structured request bodies derived from a prompt.
type Payloads struct {
	Screen crustdata.ScreeningRequest     `json:"screen"`
	Search crustdata.CompanySearchRequest `json:"search"`
	People crustdata.CompanySearchRequest `json:"people"`
}

// ParseResult is the dry-run output: everything derived from the
// prompt without calling the provider.
type ParseResult struct {
	Canonical canonical.CanonicalFilters `json:"canonical"`
	Payloads  Payloads                   `json:"payloads"`
	Curls     Curls                      `json:"curls"`
}

// Result is the full run output.
type Result struct {
	Canonical         canonical.CanonicalFilters        `json:"canonical"`
	Curls             Curls                             `json:"curls"`
	Screen            *crustdata.ScreenResponse         `json:"screenResponse,omitempty"`
	CompaniesEnriched []crustdata.EnrichedCompany       `json:"companiesEnriched"`
	PeopleMatched     map[string][]crustdata.PersonLite `json:"peopleMatched"`
	Steps             []StepOutcome                     `json:"steps"`
}

// Pipeline wires the canonicalizer to a provider client.
type Pipeline struct {
	canonicalizer *canonical.Canonicalizer
	provider      ProviderClient
	logger        logger.Logger
}

func New(canonicalizer *canonical.Canonicalizer, provider ProviderClient, log logger.Logger) *Pipeline {
	return &Pipeline{
		canonicalizer: canonicalizer,
		provider:      provider,
		logger:        log.WithFields(map[string]interface{}{"component": "pipeline"}),
	}
}

// Parse canonicalizes the prompt and renders payloads and curl
// commands without touching the provider. The enrichment command is a
// placeholder: its domain list only exists after a live run.
func (p *Pipeline) Parse(ctx context.Context, prompt string) ParseResult {
	filters := p.canonicalizer.Canonicalize(ctx, prompt)

	screenPayload := crustdata.BuildScreeningPayload(filters)
	searchPayload := crustdata.BuildCompanySearchPayload(filters)
	peoplePayload := crustdata.BuildPersonSearchPayload(filters)

	base := p.provider.BaseURL()
	return ParseResult{
		Canonical: filters,
		Payloads: Payloads{
			Screen: screenPayload,
			Search: searchPayload,
			People: peoplePayload,
		},
		Curls: Curls{
			Screen: crustdata.BuildScreenCurl(base, screenPayload),
			Search: crustdata.BuildCompanySearchCurl(base, searchPayload),
			Enrich: noDomainsEnrichCurl,
			People: crustdata.BuildPersonSearchCurl(base, peoplePayload),
		},
	}
}

// Run executes the full pipeline. Upstream failures are recorded in
// the step trace and the run continues with whatever data is
// available; Run itself never fails.
//
// Step order and gating:
//   - screen always runs; a failure is non-fatal
//   - search runs only when screening produced no domains
//   - enrich runs only when some step produced domains
//   - people search always runs, joined against enriched companies
func (p *Pipeline) Run(ctx context.Context, prompt string) *Result {
	filters := p.canonicalizer.Canonicalize(ctx, prompt)

	screenPayload := crustdata.BuildScreeningPayload(filters)
	searchPayload := crustdata.BuildCompanySearchPayload(filters)
	peoplePayload := crustdata.BuildPersonSearchPayload(filters)

	base := p.provider.BaseURL()
	result := &Result{
		Canonical:         filters,
		CompaniesEnriched: []crustdata.EnrichedCompany{},
		PeopleMatched:     map[string][]crustdata.PersonLite{},
		Curls: Curls{
			Screen: crustdata.BuildScreenCurl(base, screenPayload),
			Search: crustdata.BuildCompanySearchCurl(base, searchPayload),
			Enrich: noDomainsEnrichCurl,
			People: crustdata.BuildPersonSearchCurl(base, peoplePayload),
		},
	}

	var domains []string

	for st := stateScreen; st != stateDone; {
		switch st {
		case stateScreen:
			screenRes, err := timedStep(ctx, p, "screen", func(ctx context.Context) (*crustdata.ScreenResponse, error) {
				return p.provider.ScreenCompanies(ctx, screenPayload)
			})
			if err != nil {
				result.Steps = append(result.Steps, StepOutcome{Step: "screen", Status: StepFailed, Detail: err.Error()})
			} else {
				result.Screen = screenRes
				domains = crustdata.ExtractDomainsFromScreenResponse(result.Screen)
				result.Steps = append(result.Steps, StepOutcome{Step: "screen", Status: StepOK})
			}
			st = stateSearch

		case stateSearch:
			if len(domains) > 0 {
				result.Steps = append(result.Steps, StepOutcome{Step: "search", Status: StepSkipped, Detail: "screening already produced domains"})
				st = stateEnrich
				continue
			}
			searchRes, err := timedStep(ctx, p, "search", func(ctx context.Context) (*crustdata.CompanySearchResponse, error) {
				return p.provider.SearchCompanies(ctx, searchPayload)
			})
			if err != nil {
				result.Steps = append(result.Steps, StepOutcome{Step: "search", Status: StepFailed, Detail: err.Error()})
			} else {
				domains = crustdata.ExtractDomainsFromSearchResponse(searchRes)
				result.Steps = append(result.Steps, StepOutcome{Step: "search", Status: StepOK})
			}
			st = stateEnrich

		case stateEnrich:
			if len(domains) == 0 {
				result.Steps = append(result.Steps, StepOutcome{Step: "enrich", Status: StepSkipped, Detail: "no domains available"})
				st = statePeople
				continue
			}
			result.Curls.Enrich = crustdata.BuildEnrichCurl(base, domains)
			enriched, err := timedStep(ctx, p, "enrich", func(ctx context.Context) ([]crustdata.EnrichedCompany, error) {
				return p.provider.EnrichCompanies(ctx, domains)
			})
			if err != nil {
				result.Steps = append(result.Steps, StepOutcome{Step: "enrich", Status: StepFailed, Detail: err.Error()})
			} else {
				result.CompaniesEnriched = enriched
				result.Steps = append(result.Steps, StepOutcome{Step: "enrich", Status: StepOK})
			}
			st = statePeople

		case statePeople:
			peopleRes, err := timedStep(ctx, p, "people", func(ctx context.Context) (*crustdata.PeopleSearchResponse, error) {
				return p.provider.SearchPeople(ctx, peoplePayload)
			})
			if err != nil {
				result.Steps = append(result.Steps, StepOutcome{Step: "people", Status: StepFailed, Detail: err.Error()})
			} else {
				result.PeopleMatched = crustdata.JoinPeopleToCompanies(peopleRes, result.CompaniesEnriched)
				result.Steps = append(result.Steps, StepOutcome{Step: "people", Status: StepOK})
			}
			st = stateDone
		}
	}

	p.logger.Info("pipeline run complete", map[string]interface{}{
		"domains":   len(domains),
		"companies": len(result.CompaniesEnriched),
		"people":    len(result.PeopleMatched),
	})
	return result
}

// timedStep runs one provider step and records its duration.
func timedStep[T any](ctx context.Context, p *Pipeline, step string, fn func(ctx context.Context) (T, error)) (T, error) {
	start := time.Now()
	out, err := fn(ctx)
	metrics.PipelineStepDuration.WithLabelValues(step).Observe(time.Since(start).Seconds())
	if err != nil {
		p.logger.Warn("pipeline step failed", map[string]interface{}{
			"step":  step,
			"error": err.Error(),
		})
	}
	return out, err
}
