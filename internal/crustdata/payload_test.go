package crustdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prospect-pipeline/internal/canonical"
)

// ==========================
// Test Helper Functions
// ==========================

func findConditions(t *testing.T, req ScreeningRequest, column string) []Condition {
	t.Helper()
	var out []Condition
	for _, node := range req.Filters.Conditions {
		cond, ok := node.(Condition)
		require.True(t, ok, "nested groups are not produced by the builder")
		if cond.Column == column {
			out = append(out, cond)
		}
	}
	return out
}

func growthPtr(v float64) *float64 { return &v }

// ==========================
// Screening Payload Tests
// ==========================

func TestBuildScreeningPayload_AllFields(t *testing.T) {
	req := BuildScreeningPayload(canonical.CanonicalFilters{
		Industry:         []string{"Software Development"},
		Categories:       []string{"B2B SaaS"},
		Countries:        []string{"India"},
		HeadcountRange:   &canonical.HeadcountRange{Min: 50, Max: 200},
		FoundedAfter:     "2018",
		FoundedBefore:    "2023",
		FundingStages:    []string{"Series A"},
		HCGrowth6mPctMin: growthPtr(20),
		Limit:            30,
	})

	assert.Equal(t, OpAnd, req.Filters.Op)
	assert.Equal(t, 30, req.Count)
	assert.Equal(t, 0, req.Offset)
	assert.NotNil(t, req.Sorts)

	industries := findConditions(t, req, "taxonomy.industries")
	require.Len(t, industries, 1)
	assert.Equal(t, CompareContainsAny, industries[0].Comparison)
	assert.Equal(t, "Software Development", industries[0].Value)

	headcount := findConditions(t, req, "headcount")
	require.Len(t, headcount, 2)
	assert.Equal(t, CompareGTE, headcount[0].Comparison)
	assert.Equal(t, 50, headcount[0].Value)
	assert.Equal(t, CompareLTE, headcount[1].Comparison)
	assert.Equal(t, 200, headcount[1].Value)

	founded := findConditions(t, req, "year_founded")
	require.Len(t, founded, 2)
}

func TestBuildScreeningPayload_OpenEndedRangeOmitsUpperBound(t *testing.T) {
	tests := []struct {
		name           string
		headcountRange *canonical.HeadcountRange
		wantConditions int
	}{
		{
			name:           "bounded range gets both conditions",
			headcountRange: &canonical.HeadcountRange{Min: 50, Max: 200},
			wantConditions: 2,
		},
		{
			name:           "open ended range gets lower bound only",
			headcountRange: &canonical.HeadcountRange{Min: 1000, Max: canonical.OpenEndedHeadcount},
			wantConditions: 1,
		},
		{
			name:           "max above the sentinel also counts as open ended",
			headcountRange: &canonical.HeadcountRange{Min: 1, Max: canonical.OpenEndedHeadcount + 1},
			wantConditions: 1,
		},
		{
			name:           "bucket labels produce no screener conditions",
			headcountRange: &canonical.HeadcountRange{Buckets: []string{"51-200"}},
			wantConditions: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := BuildScreeningPayload(canonical.CanonicalFilters{HeadcountRange: tt.headcountRange})
			assert.Len(t, findConditions(t, req, "headcount"), tt.wantConditions)
		})
	}
}

func TestBuildScreeningPayload_CountDefaultsAndClamps(t *testing.T) {
	assert.Equal(t, 50, BuildScreeningPayload(canonical.CanonicalFilters{}).Count)
	assert.Equal(t, 50, BuildScreeningPayload(canonical.CanonicalFilters{Limit: -3}).Count)
	assert.Equal(t, 100, BuildScreeningPayload(canonical.CanonicalFilters{Limit: 5000}).Count)
	assert.Equal(t, 25, BuildScreeningPayload(canonical.CanonicalFilters{Limit: 25}).Count)
}

func TestBuildScreeningPayload_EmptyFiltersYieldEmptyGroup(t *testing.T) {
	req := BuildScreeningPayload(canonical.CanonicalFilters{})

	assert.Equal(t, OpAnd, req.Filters.Op)
	assert.Empty(t, req.Filters.Conditions)
}

// ==========================
// Company Search Payload Tests
// ==========================

func TestBuildCompanySearchPayload(t *testing.T) {
	req := BuildCompanySearchPayload(canonical.CanonicalFilters{
		Industry:       []string{"AI", "fintech"},
		Countries:      []string{"India"},
		Regions:        []string{"Asia"},
		HeadcountRange: &canonical.HeadcountRange{Min: 50, Max: 200},
		Page:           3,
	})

	assert.Equal(t, 3, req.Page)
	require.Len(t, req.Filters, 3)

	byType := map[FilterType]CompanySearchFilter{}
	for _, f := range req.Filters {
		byType[f.FilterType] = f
	}

	// Raw terms are canonicalized on the way in.
	assert.Equal(t, []string{"Software Development", "Financial Services"}, byType[FilterIndustry].Value)
	assert.Equal(t, []string{"India", "Asia"}, byType[FilterRegion].Value)
	assert.Equal(t, []string{"11-50", "51-200"}, byType[FilterCompanyHeadcount].Value)
}

func TestBuildCompanySearchPayload_HeadcountBuckets(t *testing.T) {
	tests := []struct {
		name     string
		hr       *canonical.HeadcountRange
		expected []string
	}{
		{
			name:     "range intersecting two buckets",
			hr:       &canonical.HeadcountRange{Min: 50, Max: 200},
			expected: []string{"11-50", "51-200"},
		},
		{
			name:     "exact bucket span",
			hr:       &canonical.HeadcountRange{Min: 51, Max: 200},
			expected: []string{"51-200"},
		},
		{
			name:     "open ended selects every bucket from min up",
			hr:       &canonical.HeadcountRange{Min: 1001, Max: canonical.OpenEndedHeadcount},
			expected: []string{"1,001-5,000", "5,001-10,000", "10,001+"},
		},
		{
			name:     "labels pass through untouched",
			hr:       &canonical.HeadcountRange{Buckets: []string{"1-10", "10,001+"}},
			expected: []string{"1-10", "10,001+"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, headcountBuckets(tt.hr))
		})
	}
}

func TestBuildCompanySearchPayload_PageDefaultsToOne(t *testing.T) {
	req := BuildCompanySearchPayload(canonical.CanonicalFilters{})
	assert.Equal(t, 1, req.Page)
	assert.Empty(t, req.Filters)
}

// ==========================
// Person Search Payload Tests
// ==========================

func TestBuildPersonSearchPayload_AlwaysTargetsDecisionMakers(t *testing.T) {
	req := BuildPersonSearchPayload(canonical.CanonicalFilters{
		Industry: []string{"saas"},
		Regions:  []string{"Europe"},
	})

	require.NotEmpty(t, req.Filters)
	assert.Equal(t, FilterCurrentTitle, req.Filters[0].FilterType)
	assert.Equal(t, defaultPersonTitles, req.Filters[0].Value)
	assert.Equal(t, 1, req.Page)
}

func TestBuildPersonSearchPayload_NoFiltersStillHasTitles(t *testing.T) {
	req := BuildPersonSearchPayload(canonical.CanonicalFilters{})

	require.Len(t, req.Filters, 1)
	assert.Equal(t, FilterCurrentTitle, req.Filters[0].FilterType)
}

// ==========================
// Filter Constructor Tests
// ==========================

func TestNewCompanySearchFilter(t *testing.T) {
	_, err := NewCompanySearchFilter("NOT_A_FILTER", SearchIn, []string{"x"})
	assert.Error(t, err)

	_, err = NewCompanySearchFilter(FilterIndustry, "around", []string{"x"})
	assert.Error(t, err)

	_, err = NewCompanySearchFilter(FilterIndustry, SearchIn, nil)
	assert.Error(t, err)

	f, err := NewCompanySearchFilter(FilterIndustry, SearchIn, []string{"Retail"})
	require.NoError(t, err)
	assert.Equal(t, FilterIndustry, f.FilterType)
}
