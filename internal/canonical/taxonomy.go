package canonical

import "strings"

// Canonical industry labels accepted by the data provider. Raw user
// terms are mapped onto these before anything leaves this package.
const (
	IndustrySoftware   = "Software Development"
	IndustryFinance    = "Financial Services"
	IndustryRetail     = "Retail"
	IndustryRealEstate = "Real Estate"
	IndustryTelecom    = "Telecommunications"
)

var CanonicalIndustries = []string{
	IndustrySoftware,
	IndustryFinance,
	IndustryRetail,
	IndustryRealEstate,
	IndustryTelecom,
}

// industrySynonyms maps lower-cased user terms to canonical labels.
// The groupings follow the provider's own documentation (AI, SaaS and
// even Healthcare startups are classified under Software Development).
var industrySynonyms = map[string]string{
	"ai":                      IndustrySoftware,
	"artificial intelligence": IndustrySoftware,
	"tech":                    IndustrySoftware,
	"technology":              IndustrySoftware,
	"software":                IndustrySoftware,
	"saas":                    IndustrySoftware,
	"cybersecurity":           IndustrySoftware,
	"edtech":                  IndustrySoftware,
	"cleantech":               IndustrySoftware,
	"healthcare":              IndustrySoftware,
	"health":                  IndustrySoftware,
	"fintech":                 IndustryFinance,
	"finance":                 IndustryFinance,
	"financial":               IndustryFinance,
	"banking":                 IndustryFinance,
	"ecommerce":               IndustryRetail,
	"e-commerce":              IndustryRetail,
	"retail":                  IndustryRetail,
	"consumer goods":          IndustryRetail,
	"proptech":                IndustryRealEstate,
	"real estate":             IndustryRealEstate,
	"telecom":                 IndustryTelecom,
	"telecommunications":      IndustryTelecom,
	"communications":          IndustryTelecom,
}

// MapIndustry resolves a user-supplied industry term to its canonical
// label. Terms that are already canonical pass through unchanged.
func MapIndustry(term string) (string, bool) {
	trimmed := strings.TrimSpace(term)
	if IsCanonicalIndustry(trimmed) {
		return trimmed, true
	}
	canonical, ok := industrySynonyms[strings.ToLower(trimmed)]
	return canonical, ok
}

func IsCanonicalIndustry(label string) bool {
	for _, c := range CanonicalIndustries {
		if c == label {
			return true
		}
	}
	return false
}

// MapIndustries maps a list of terms, dropping anything unmappable and
// de-duplicating while preserving first-seen order.
func MapIndustries(terms []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, term := range terms {
		canonical, ok := MapIndustry(term)
		if !ok || seen[canonical] {
			continue
		}
		out = append(out, canonical)
		seen[canonical] = true
	}
	return out
}

// ValidFundingStages is the closed set of funding round labels the
// provider recognizes.
var ValidFundingStages = []string{
	"Pre-Seed", "Seed", "Angel", "Bridge",
	"Series A", "Series B", "Series C", "Series D", "Series E",
	"Growth",
}
