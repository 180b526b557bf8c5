package canonical

import (
	"regexp"
	"strconv"
	"strings"
)

// Deterministic keyword tables. Ordered slices keep the output stable
// across runs; all matching is word-bounded to avoid substring hits
// ("retail" must not trigger "ai").

type keywordRule struct {
	pattern *regexp.Regexp
	value   string
}

func rule(keyword, value string) keywordRule {
	return keywordRule{
		pattern: regexp.MustCompile(`\b` + regexp.QuoteMeta(keyword) + `\b`),
		value:   value,
	}
}

var industryRules = []keywordRule{
	rule("ai", IndustrySoftware),
	rule("artificial intelligence", IndustrySoftware),
	rule("saas", IndustrySoftware),
	rule("software", IndustrySoftware),
	rule("cybersecurity", IndustrySoftware),
	rule("tech", IndustrySoftware),
	rule("healthcare", IndustrySoftware),
	rule("health", IndustrySoftware),
	rule("fintech", IndustryFinance),
	rule("financial", IndustryFinance),
	rule("finance", IndustryFinance),
	rule("ecommerce", IndustryRetail),
	rule("e-commerce", IndustryRetail),
	rule("proptech", IndustryRealEstate),
	rule("real estate", IndustryRealEstate),
	rule("telecom", IndustryTelecom),
}

var countryRules = []keywordRule{
	rule("india", "India"),
	rule("united states", "United States"),
	rule("america", "United States"),
	rule("usa", "United States"),
	rule("us", "United States"),
	rule("singapore", "Singapore"),
}

var regionRules = []keywordRule{
	rule("europe", "Europe"),
	rule("european", "Europe"),
	rule("north america", "North America"),
	rule("asia", "Asia"),
}

var fundingRules = []keywordRule{
	rule("pre-seed", "Pre-Seed"),
	rule("seed", "Seed"),
	rule("series a", "Series A"),
	rule("series b", "Series B"),
	rule("series c", "Series C"),
	rule("series d", "Series D"),
	rule("series e", "Series E"),
}

var growthTriggers = []string{"fast growth", "high growth", "fast-growing", "growing fast"}

var (
	headcountRangeRe = regexp.MustCompile(`(\d+)\s*[-–]\s*(\d+)\s*employees?`)
	headcountOpenRe  = regexp.MustCompile(`(\d+)\+\s*employees?`)
	foundedAfterRe   = regexp.MustCompile(`founded after (\d{4})`)
	foundedBeforeRe  = regexp.MustCompile(`founded before (\d{4})`)
)

const defaultGrowthPctMin = 20

// parseFallback scans the lower-cased prompt for fixed keyword triggers
// and populates whichever canonical fields match. Never fails; fields
// without a trigger stay absent. Limit and page always default so a
// partial LLM result still ends up complete after merging.
func parseFallback(prompt string) CanonicalFilters {
	lower := strings.ToLower(prompt)

	filters := CanonicalFilters{
		Limit: 50,
		Page:  1,
	}

	filters.Industry = matchRules(lower, industryRules)
	filters.Countries = matchRules(lower, countryRules)
	filters.Regions = matchRules(lower, regionRules)
	filters.FundingStages = matchRules(lower, fundingRules)

	if m := headcountRangeRe.FindStringSubmatch(lower); m != nil {
		min, _ := strconv.Atoi(m[1])
		max, _ := strconv.Atoi(m[2])
		filters.HeadcountRange = &HeadcountRange{Min: min, Max: max}
	} else if m := headcountOpenRe.FindStringSubmatch(lower); m != nil {
		min, _ := strconv.Atoi(m[1])
		filters.HeadcountRange = &HeadcountRange{Min: min, Max: OpenEndedHeadcount}
	}

	if m := foundedAfterRe.FindStringSubmatch(lower); m != nil {
		filters.FoundedAfter = m[1]
	}
	if m := foundedBeforeRe.FindStringSubmatch(lower); m != nil {
		filters.FoundedBefore = m[1]
	}

	for _, trigger := range growthTriggers {
		if strings.Contains(lower, trigger) {
			growth := float64(defaultGrowthPctMin)
			filters.HCGrowth6mPctMin = &growth
			break
		}
	}

	return filters
}

func matchRules(lower string, rules []keywordRule) []string {
	var out []string
	seen := make(map[string]bool)
	for _, r := range rules {
		if seen[r.value] {
			continue
		}
		if r.pattern.MatchString(lower) {
			out = append(out, r.value)
			seen[r.value] = true
		}
	}
	return out
}
