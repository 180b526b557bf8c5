package crustdata

import (
	"strings"

	"prospect-pipeline/internal/canonical"
)

// Screener column names.
const (
	colIndustries     = "taxonomy.industries"
	colCategories     = "taxonomy.categories"
	colCountry        = "largest_headcount_country"
	colHeadcount      = "headcount"
	colYearFounded    = "year_founded"
	colFundingStage   = "FundingAndInvestment.last_funding_round_type"
	colGrowthSixMonth = "headcount_total_growth_percent.six_months"
)

const maxScreenCount = 100

// headcountBucket ties a discrete search label to its numeric span.
type headcountBucket struct {
	Label string
	Min   int
	Max   int
}

// headcountLadder is the provider's fixed set of bucket labels.
var headcountLadder = []headcountBucket{
	{"1-10", 1, 10},
	{"11-50", 11, 50},
	{"51-200", 51, 200},
	{"201-500", 201, 500},
	{"501-1,000", 501, 1000},
	{"1,001-5,000", 1001, 5000},
	{"5,001-10,000", 5001, 10000},
	{"10,001+", 10001, 1 << 30},
}

// defaultPersonTitles is the fixed decision-maker title set for people
// search payloads.
var defaultPersonTitles = []string{
	"Founder", "Co-Founder", "CEO", "CTO", "VP Engineering", "Head of Product",
}

// BuildScreeningPayload maps canonical filters onto the screener's
// boolean tree: one condition per present field, combined under a
// single top-level "and" group. Pure; never fails.
func BuildScreeningPayload(c canonical.CanonicalFilters) ScreeningRequest {
	var conditions []FilterNode

	if len(c.Industry) > 0 {
		conditions = append(conditions, Condition{
			Column:     colIndustries,
			Comparison: CompareContainsAny,
			Value:      strings.Join(c.Industry, ","),
		})
	}

	if len(c.Categories) > 0 {
		conditions = append(conditions, Condition{
			Column:     colCategories,
			Comparison: CompareContainsAny,
			Value:      strings.Join(c.Categories, ","),
		})
	}

	if len(c.Countries) > 0 {
		conditions = append(conditions, Condition{
			Column:     colCountry,
			Comparison: CompareIn,
			Value:      strings.Join(c.Countries, ","),
		})
	}

	if r := c.HeadcountRange; r != nil && r.IsNumeric() {
		conditions = append(conditions, Condition{
			Column:     colHeadcount,
			Comparison: CompareGTE,
			Value:      r.Min,
		})
		// Open-ended ranges ("1000+") carry the sentinel max and get
		// no upper bound condition.
		if !r.IsOpenEnded() {
			conditions = append(conditions, Condition{
				Column:     colHeadcount,
				Comparison: CompareLTE,
				Value:      r.Max,
			})
		}
	}

	if c.FoundedAfter != "" {
		conditions = append(conditions, Condition{
			Column:     colYearFounded,
			Comparison: CompareGTE,
			Value:      c.FoundedAfter,
		})
	}

	if c.FoundedBefore != "" {
		conditions = append(conditions, Condition{
			Column:     colYearFounded,
			Comparison: CompareLTE,
			Value:      c.FoundedBefore,
		})
	}

	if len(c.FundingStages) > 0 {
		conditions = append(conditions, Condition{
			Column:     colFundingStage,
			Comparison: CompareIn,
			Value:      strings.Join(c.FundingStages, ","),
		})
	}

	if c.HCGrowth6mPctMin != nil {
		conditions = append(conditions, Condition{
			Column:     colGrowthSixMonth,
			Comparison: CompareGTE,
			Value:      *c.HCGrowth6mPctMin,
		})
	}

	count := c.Limit
	if count <= 0 {
		count = 50
	}
	if count > maxScreenCount {
		count = maxScreenCount
	}

	return ScreeningRequest{
		Filters: FilterGroup{Op: OpAnd, Conditions: conditions},
		Offset:  0,
		Count:   count,
		Sorts:   []interface{}{},
	}
}

// BuildCompanySearchPayload maps canonical filters onto discrete search
// filters. Industry values are re-mapped through the canonical
// enumeration; anything unmappable is dropped rather than forwarded raw.
func BuildCompanySearchPayload(c canonical.CanonicalFilters) CompanySearchRequest {
	var filters []CompanySearchFilter

	if industries := canonical.MapIndustries(c.Industry); len(industries) > 0 {
		if f, err := NewCompanySearchFilter(FilterIndustry, SearchIn, industries); err == nil {
			filters = append(filters, f)
		}
	}

	if regions := searchRegions(c); len(regions) > 0 {
		if f, err := NewCompanySearchFilter(FilterRegion, SearchIn, regions); err == nil {
			filters = append(filters, f)
		}
	}

	if buckets := headcountBuckets(c.HeadcountRange); len(buckets) > 0 {
		if f, err := NewCompanySearchFilter(FilterCompanyHeadcount, SearchIn, buckets); err == nil {
			filters = append(filters, f)
		}
	}

	page := c.Page
	if page <= 0 {
		page = 1
	}

	return CompanySearchRequest{Filters: filters, Page: page}
}

// BuildPersonSearchPayload always targets the fixed decision-maker
// titles, narrowed by whatever industry/region filters are present.
func BuildPersonSearchPayload(c canonical.CanonicalFilters) CompanySearchRequest {
	var filters []CompanySearchFilter

	if f, err := NewCompanySearchFilter(FilterCurrentTitle, SearchIn, defaultPersonTitles); err == nil {
		filters = append(filters, f)
	}

	if regions := searchRegions(c); len(regions) > 0 {
		if f, err := NewCompanySearchFilter(FilterRegion, SearchIn, regions); err == nil {
			filters = append(filters, f)
		}
	}

	if industries := canonical.MapIndustries(c.Industry); len(industries) > 0 {
		if f, err := NewCompanySearchFilter(FilterIndustry, SearchIn, industries); err == nil {
			filters = append(filters, f)
		}
	}

	return CompanySearchRequest{Filters: filters, Page: 1}
}

// searchRegions folds countries and regions into the REGION filter's
// value list, countries first.
func searchRegions(c canonical.CanonicalFilters) []string {
	var out []string
	seen := make(map[string]bool)
	for _, v := range append(append([]string{}, c.Countries...), c.Regions...) {
		if v == "" || seen[v] {
			continue
		}
		out = append(out, v)
		seen[v] = true
	}
	return out
}

// headcountBuckets resolves a canonical headcount range to bucket
// labels: pre-labelled values pass through unchanged, numeric ranges
// select every bucket whose span intersects [min,max].
func headcountBuckets(r *canonical.HeadcountRange) []string {
	if r == nil {
		return nil
	}
	if !r.IsNumeric() {
		return r.Buckets
	}

	max := r.Max
	if r.IsOpenEnded() {
		max = 1 << 30
	}

	var out []string
	for _, bucket := range headcountLadder {
		if bucket.Min <= max && bucket.Max >= r.Min {
			out = append(out, bucket.Label)
		}
	}
	return out
}
