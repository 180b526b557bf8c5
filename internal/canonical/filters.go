// Package canonical holds the provider-agnostic representation of a
// user's search intent and the logic that produces it from free text.
package canonical

import (
	"encoding/json"
	"fmt"
)

// OpenEndedHeadcount is the sentinel upper bound for ranges like
// "1000+ employees". Downstream builders treat max >= this value as
// "no upper bound".
const OpenEndedHeadcount = 100000

// HeadcountRange carries either a numeric [min,max] pair or a list of
// discrete provider bucket labels (e.g. "51-200"), never both.
type HeadcountRange struct {
	Min     int
	Max     int
	Buckets []string
}

func (r HeadcountRange) IsNumeric() bool {
	return len(r.Buckets) == 0
}

// IsOpenEnded reports whether the numeric range has no real upper bound.
func (r HeadcountRange) IsOpenEnded() bool {
	return r.IsNumeric() && r.Max >= OpenEndedHeadcount
}

func (r HeadcountRange) MarshalJSON() ([]byte, error) {
	if len(r.Buckets) > 0 {
		return json.Marshal(r.Buckets)
	}
	return json.Marshal([2]int{r.Min, r.Max})
}

func (r *HeadcountRange) UnmarshalJSON(data []byte) error {
	var items []interface{}
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}

	var nums []int
	var labels []string
	for _, item := range items {
		switch v := item.(type) {
		case float64:
			nums = append(nums, int(v))
		case string:
			labels = append(labels, v)
		default:
			return fmt.Errorf("headcountRange: unsupported element %T", item)
		}
	}

	switch {
	case len(labels) > 0 && len(nums) > 0:
		return fmt.Errorf("headcountRange: mixed numeric and bucket values")
	case len(labels) > 0:
		r.Buckets = labels
	case len(nums) == 2:
		r.Min, r.Max = nums[0], nums[1]
	default:
		return fmt.Errorf("headcountRange: expected [min,max] pair, got %d values", len(nums))
	}
	return nil
}

// CanonicalFilters is the normalized filter object. Every field is
// optional; absence means "no constraint", never a wildcard.
type CanonicalFilters struct {
	Industry         []string        `json:"industry,omitempty"`
	Categories       []string        `json:"categories,omitempty"`
	Regions          []string        `json:"regions,omitempty"`
	Countries        []string        `json:"countries,omitempty"`
	HeadcountRange   *HeadcountRange `json:"headcountRange,omitempty"`
	FoundedAfter     string          `json:"foundedAfter,omitempty"`
	FoundedBefore    string          `json:"foundedBefore,omitempty"`
	FundingStages    []string        `json:"fundingStages,omitempty"`
	HCGrowth6mPctMin *float64        `json:"hcGrowth6mPctMin,omitempty"`
	Limit            int             `json:"limit,omitempty"`
	Page             int             `json:"page,omitempty"`
}
