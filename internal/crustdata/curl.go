package crustdata

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// Command-string rendering: each payload becomes a copy-pasteable curl
// invocation for operator inspection and replay. The credential is
// always the $CRUSTDATA_API_KEY placeholder, never a real secret, and
// nothing here is ever executed by the service itself.

const curlKeyPlaceholder = "$CRUSTDATA_API_KEY"

// enrichmentFields is the fixed field list requested from the
// enrichment endpoint.
var enrichmentFields = []string{
	"company_name",
	"company_website_domain",
	"taxonomy.industries",
	"headcount.headcount",
	"headcount.headcount_total_growth_percent.six_months",
	"FundingAndInvestment.total_investment_usd",
	"FundingAndInvestment.days_since_last_fundraise",
}

func BuildScreenCurl(baseURL string, payload ScreeningRequest) string {
	return buildPostCurl(baseURL+screenPath, payload)
}

func BuildCompanySearchCurl(baseURL string, payload CompanySearchRequest) string {
	return buildPostCurl(baseURL+companySearchPath, payload)
}

func BuildPersonSearchCurl(baseURL string, payload CompanySearchRequest) string {
	return buildPostCurl(baseURL+personSearchPath, payload)
}

func BuildEnrichCurl(baseURL string, domains []string) string {
	capped := domains
	if len(capped) > maxEnrichDomains {
		capped = capped[:maxEnrichDomains]
	}

	params := url.Values{}
	params.Set("company_domain", strings.Join(capped, ","))
	params.Set("fields", strings.Join(enrichmentFields, ","))

	return fmt.Sprintf(`curl -sX GET "%s%s?%s" \
  -H "Authorization: Bearer %s"`,
		baseURL, enrichPath, params.Encode(), curlKeyPlaceholder)
}

func buildPostCurl(fullURL string, payload interface{}) string {
	body, _ := json.MarshalIndent(payload, "", "  ")
	escaped := strings.ReplaceAll(string(body), `"`, `\"`)

	return fmt.Sprintf(`curl -sX POST "%s" \
  -H "Authorization: Bearer %s" \
  -H "Content-Type: application/json" \
  -d "%s"`,
		fullURL, curlKeyPlaceholder, escaped)
}
