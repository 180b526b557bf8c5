// Package crustdata contains the typed request/response shapes for the
// company-data provider, the payload builders that produce them from
// canonical filters, and the HTTP client that issues the calls.
package crustdata

import (
	"fmt"
	"strings"
)

// Comparator enumerates the screener's condition operators.
type Comparator string

const (
	CompareGTE         Comparator = "=>"
	CompareLTE         Comparator = "=<"
	CompareEQ          Comparator = "="
	CompareLT          Comparator = "<"
	CompareGT          Comparator = ">"
	CompareNEQ         Comparator = "!="
	CompareIn          Comparator = "in"
	CompareContainsAny Comparator = "(.)"
	CompareContainsAll Comparator = "[.]"
)

// BoolOp combines conditions inside a FilterGroup.
type BoolOp string

const (
	OpAnd BoolOp = "and"
	OpOr  BoolOp = "or"
)

// FilterNode is the boolean-tree node of a screening request: either a
// leaf Condition or a nested FilterGroup.
type FilterNode interface {
	filterNode()
}

type Condition struct {
	Column     string      `json:"column"`
	Comparison Comparator  `json:"type"`
	Value      interface{} `json:"value"`
	AllowNull  bool        `json:"allow_null,omitempty"`
}

func (Condition) filterNode() {}

type FilterGroup struct {
	Op         BoolOp       `json:"op"`
	Conditions []FilterNode `json:"conditions"`
}

func (FilterGroup) filterNode() {}

// ScreeningRequest is the boolean-tree payload for the screener endpoint.
type ScreeningRequest struct {
	Filters FilterGroup   `json:"filters"`
	Offset  int           `json:"offset"`
	Count   int           `json:"count"`
	Sorts   []interface{} `json:"sorts"`
}

// FilterType enumerates the discrete company/people search filters.
type FilterType string

const (
	FilterCompanyHeadcount     FilterType = "COMPANY_HEADCOUNT"
	FilterCurrentTitle         FilterType = "CURRENT_TITLE"
	FilterCompanyHeadquarters  FilterType = "COMPANY_HEADQUARTERS"
	FilterIndustry             FilterType = "INDUSTRY"
	FilterRegion               FilterType = "REGION"
)

// SearchComparator enumerates the flat-search comparison modes.
type SearchComparator string

const (
	SearchIn      SearchComparator = "in"
	SearchNotIn   SearchComparator = "not in"
	SearchBetween SearchComparator = "between"
)

// CompanySearchFilter is one discrete filter entry. Build it through
// NewCompanySearchFilter so only valid enum combinations exist.
type CompanySearchFilter struct {
	FilterType FilterType       `json:"filter_type"`
	Comparison SearchComparator `json:"type"`
	Value      []string         `json:"value"`
}

var validFilterTypes = map[FilterType]bool{
	FilterCompanyHeadcount:    true,
	FilterCurrentTitle:        true,
	FilterCompanyHeadquarters: true,
	FilterIndustry:            true,
	FilterRegion:              true,
}

var validSearchComparators = map[SearchComparator]bool{
	SearchIn:      true,
	SearchNotIn:   true,
	SearchBetween: true,
}

// NewCompanySearchFilter validates the enum pair at construction time.
func NewCompanySearchFilter(ft FilterType, cmp SearchComparator, values []string) (CompanySearchFilter, error) {
	if !validFilterTypes[ft] {
		return CompanySearchFilter{}, fmt.Errorf("invalid filter_type %q", ft)
	}
	if !validSearchComparators[cmp] {
		return CompanySearchFilter{}, fmt.Errorf("invalid comparison %q", cmp)
	}
	if len(values) == 0 {
		return CompanySearchFilter{}, fmt.Errorf("filter %q requires at least one value", ft)
	}
	return CompanySearchFilter{FilterType: ft, Comparison: cmp, Value: values}, nil
}

// CompanySearchRequest is the flat-filter payload shared by the company
// and people search endpoints.
type CompanySearchRequest struct {
	Filters []CompanySearchFilter `json:"filters"`
	Page    int                   `json:"page"`
}

// ScreenResponse is the tabular screener reply: declared columns plus
// positional row values.
type ScreenResponse struct {
	Fields []ScreenField   `json:"fields"`
	Rows   [][]interface{} `json:"rows"`
}

type ScreenField struct {
	APIName string `json:"api_name"`
}

// CompanySearchResponse is the company search reply.
type CompanySearchResponse struct {
	Companies         []SearchCompany `json:"companies"`
	TotalDisplayCount int             `json:"total_display_count"`
}

type SearchCompany struct {
	Name    string `json:"company_name"`
	Website string `json:"website"`
}

// PeopleSearchResponse is the person search reply.
type PeopleSearchResponse struct {
	Profiles          []PersonProfile `json:"profiles"`
	TotalDisplayCount int             `json:"total_display_count"`
}

type PersonProfile struct {
	Name               string       `json:"name"`
	CurrentTitle       string       `json:"current_title"`
	LinkedinProfileURL string       `json:"linkedin_profile_url"`
	Location           string       `json:"location"`
	Employer           []Employment `json:"employer"`
}

type Employment struct {
	CompanyName string `json:"company_name"`
	Title       string `json:"title"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Location    string `json:"location"`
}

// EnrichedCompany keeps the enrichment record as-is; the requested
// field list varies, so a map preserves every key for the response.
type EnrichedCompany map[string]interface{}

// Name returns the company_name field when present.
func (c EnrichedCompany) Name() string {
	if name, ok := c["company_name"].(string); ok {
		return strings.TrimSpace(name)
	}
	return ""
}

// PersonLite is the derived projection of a matched person, keyed in
// the pipeline result by lowercased employer name.
type PersonLite struct {
	Name      string `json:"name"`
	Title     string `json:"title"`
	Linkedin  string `json:"linkedin"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
	Location  string `json:"location,omitempty"`
}
