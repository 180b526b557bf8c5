package canonical

import (
	"context"
	"encoding/json"
	"strings"

	"prospect-pipeline/internal/common/logger"
	"prospect-pipeline/internal/llm"
)

// Canonicalizer turns free-text prompts into CanonicalFilters. When a
// Completer is injected it is tried first; the deterministic keyword
// pass always runs and backs every failure mode, so Canonicalize never
// fails and never returns raw user terms.
type Canonicalizer struct {
	completer llm.Completer
	logger    logger.Logger
}

// New builds a Canonicalizer. completer may be nil, in which case only
// the deterministic pass runs.
func New(completer llm.Completer, log logger.Logger) *Canonicalizer {
	return &Canonicalizer{
		completer: completer,
		logger:    log.WithFields(map[string]interface{}{"component": "canonicalizer"}),
	}
}

// Canonicalize parses a prompt into canonical filters. The LLM result,
// when available and valid, is shallow-merged over the deterministic
// result so defaults the model forgot (limit, page) still populate.
func (c *Canonicalizer) Canonicalize(ctx context.Context, prompt string) CanonicalFilters {
	fallback := parseFallback(prompt)

	if c.completer == nil {
		return fallback
	}

	reply, err := c.completer.Complete(ctx, systemPrompt, prompt)
	if err != nil {
		c.logger.Warn("llm canonicalization failed, using fallback", map[string]interface{}{
			"error": err.Error(),
		})
		return fallback
	}

	raw := extractJSON(reply)
	if err := validateCanonicalJSON([]byte(raw)); err != nil {
		c.logger.Warn("llm reply rejected by schema, using fallback", map[string]interface{}{
			"error": err.Error(),
		})
		return fallback
	}

	var parsed CanonicalFilters
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		c.logger.Warn("llm reply is not valid filter JSON, using fallback", map[string]interface{}{
			"error": err.Error(),
		})
		return fallback
	}

	parsed.Industry = MapIndustries(parsed.Industry)

	merged := mergeFilters(fallback, parsed)
	c.logger.Debug("canonicalized via llm", map[string]interface{}{
		"fieldsFromLLM": countPresentFields(parsed),
	})
	return merged
}

// extractJSON strips markdown code fences some models wrap around
// their JSON output.
func extractJSON(reply string) string {
	trimmed := strings.TrimSpace(reply)
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```json")
		trimmed = strings.TrimPrefix(trimmed, "```")
		if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
			trimmed = trimmed[:idx]
		}
		trimmed = strings.TrimSpace(trimmed)
	}
	return trimmed
}

// mergeFilters overlays the LLM result on the deterministic result;
// the overlay wins for any field it populated.
func mergeFilters(base, overlay CanonicalFilters) CanonicalFilters {
	out := base
	if len(overlay.Industry) > 0 {
		out.Industry = overlay.Industry
	}
	if len(overlay.Categories) > 0 {
		out.Categories = overlay.Categories
	}
	if len(overlay.Regions) > 0 {
		out.Regions = overlay.Regions
	}
	if len(overlay.Countries) > 0 {
		out.Countries = overlay.Countries
	}
	if overlay.HeadcountRange != nil {
		out.HeadcountRange = overlay.HeadcountRange
	}
	if overlay.FoundedAfter != "" {
		out.FoundedAfter = overlay.FoundedAfter
	}
	if overlay.FoundedBefore != "" {
		out.FoundedBefore = overlay.FoundedBefore
	}
	if len(overlay.FundingStages) > 0 {
		out.FundingStages = overlay.FundingStages
	}
	if overlay.HCGrowth6mPctMin != nil {
		out.HCGrowth6mPctMin = overlay.HCGrowth6mPctMin
	}
	if overlay.Limit > 0 {
		out.Limit = overlay.Limit
	}
	if overlay.Page > 0 {
		out.Page = overlay.Page
	}
	return out
}

func countPresentFields(f CanonicalFilters) int {
	count := 0
	if len(f.Industry) > 0 {
		count++
	}
	if len(f.Categories) > 0 {
		count++
	}
	if len(f.Regions) > 0 {
		count++
	}
	if len(f.Countries) > 0 {
		count++
	}
	if f.HeadcountRange != nil {
		count++
	}
	if f.FoundedAfter != "" {
		count++
	}
	if f.FoundedBefore != "" {
		count++
	}
	if len(f.FundingStages) > 0 {
		count++
	}
	if f.HCGrowth6mPctMin != nil {
		count++
	}
	return count
}
