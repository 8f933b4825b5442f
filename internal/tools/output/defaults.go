package output

// DisplaySpec holds the display and pagination parameters of a listing.
// A nil field is unset: the caller did not provide it and the advisor may fill it.
type DisplaySpec struct {
	Summary  *bool `json:"summary,omitempty"`
	Page     *int  `json:"page,omitempty"`
	Limit    *int  `json:"limit,omitempty"`
	MetaOnly *bool `json:"metaOnly,omitempty"`
}

// AppliedRule records one smart-default rule that changed the display parameters.
type AppliedRule struct {
	// Rule names the rule: "auto_summary", "limit_cap" or "meta_only".
	Rule string `json:"rule"`

	// Count is the filtered item count that triggered the rule.
	Count int `json:"count"`

	// Threshold is the cut point the count exceeded.
	Threshold int `json:"threshold"`

	// Value is the value the rule set.
	Value any `json:"value"`
}

// Rule names reported in AppliedRule.
const (
	RuleAutoSummary = "auto_summary"
	RuleLimitCap    = "limit_cap"
	RuleMetaOnly    = "meta_only"
)

// ComputeDefaults fills the display parameters the caller left unset, based on
// the size of the filtered collection. Rules are applied independently:
//
//   - count > AutoSummaryThreshold and summary unset: summary = true
//   - count > 50 and (limit unset or limit > 10): limit = min(limit or 10, 10)
//   - count > 100 and metaOnly unset: metaOnly = true
//
// An explicit false or 0 is never overridden. With smart defaults disabled the
// requested spec is returned unchanged. The input is not modified.
func ComputeDefaults(filteredCount int, requested DisplaySpec, cfg *Config) (DisplaySpec, []AppliedRule) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	result := requested
	if !cfg.EnableSmartDefaults {
		return result, nil
	}

	var applied []AppliedRule

	if filteredCount > cfg.AutoSummaryThreshold && requested.Summary == nil {
		result.Summary = boolPtr(true)
		applied = append(applied, AppliedRule{
			Rule: RuleAutoSummary, Count: filteredCount, Threshold: cfg.AutoSummaryThreshold, Value: true,
		})
	}

	if filteredCount > LimitThreshold && (requested.Limit == nil || *requested.Limit > CappedLimit) {
		limit := CappedLimit
		if requested.Limit != nil {
			limit = min(*requested.Limit, CappedLimit)
		}
		result.Limit = intPtr(limit)
		applied = append(applied, AppliedRule{
			Rule: RuleLimitCap, Count: filteredCount, Threshold: LimitThreshold, Value: limit,
		})
	}

	if filteredCount > MetaOnlyThreshold && requested.MetaOnly == nil {
		result.MetaOnly = boolPtr(true)
		applied = append(applied, AppliedRule{
			Rule: RuleMetaOnly, Count: filteredCount, Threshold: MetaOnlyThreshold, Value: true,
		})
	}

	return result, applied
}

// ResolvedDisplay is a DisplaySpec with every field decided.
type ResolvedDisplay struct {
	Summary  bool `json:"summary"`
	Page     int  `json:"page"`
	Limit    int  `json:"limit"`
	MetaOnly bool `json:"metaOnly"`
}

// Resolve fills the fields still unset after smart defaults with the documented
// defaults: summary on, page 1, limit 20 (capped at maxPerPage), metaOnly off.
func Resolve(spec DisplaySpec, maxPerPage int) ResolvedDisplay {
	resolved := ResolvedDisplay{
		Summary:  true,
		Page:     1,
		Limit:    min(DefaultPageSize, max(maxPerPage, 1)),
		MetaOnly: false,
	}
	if spec.Summary != nil {
		resolved.Summary = *spec.Summary
	}
	if spec.Page != nil {
		resolved.Page = *spec.Page
	}
	if spec.Limit != nil {
		resolved.Limit = *spec.Limit
	}
	if spec.MetaOnly != nil {
		resolved.MetaOnly = *spec.MetaOnly
	}
	return resolved
}

func boolPtr(b bool) *bool { return &b }

func intPtr(i int) *int { return &i }
