package canonical

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// canonicalSchema constrains what an LLM reply may contain. Anything
// outside this shape is discarded in favor of the deterministic pass.
var canonicalSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"industry":   stringArraySchema(),
		"categories": stringArraySchema(),
		"regions":    stringArraySchema(),
		"countries":  stringArraySchema(),
		"headcountRange": map[string]interface{}{
			"type":     "array",
			"items":    map[string]interface{}{"type": []string{"number", "string"}},
			"minItems": 1,
		},
		"foundedAfter":     map[string]interface{}{"type": "string"},
		"foundedBefore":    map[string]interface{}{"type": "string"},
		"fundingStages":    stringArraySchema(),
		"hcGrowth6mPctMin": map[string]interface{}{"type": "number"},
		"limit":            map[string]interface{}{"type": "number"},
		"page":             map[string]interface{}{"type": "number"},
	},
	"additionalProperties": false,
}

func stringArraySchema() map[string]interface{} {
	return map[string]interface{}{
		"type":  "array",
		"items": map[string]interface{}{"type": "string"},
	}
}

// validateCanonicalJSON checks a raw JSON document against the
// CanonicalFilters schema.
func validateCanonicalJSON(raw []byte) error {
	schemaLoader := gojsonschema.NewGoLoader(canonicalSchema)
	documentLoader := gojsonschema.NewBytesLoader(raw)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	if !result.Valid() {
		var msgs []string
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return fmt.Errorf("schema violations: %s", strings.Join(msgs, "; "))
	}
	return nil
}
