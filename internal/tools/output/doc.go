// Package output shapes tool responses for LLM clients that pay per character.
//
// Inventory listings can be large: a busy smart home easily exposes hundreds of
// accessories with nested services and characteristics. This package holds the
// generic half of the response-shaping pipeline that keeps such listings usable.
//
// # Pipeline
//
// Smart defaults: [ComputeDefaults] sizes a filtered collection and fills the
// display parameters the caller left unset (summary, limit, metaOnly). A value
// the caller set explicitly, including false and 0, is never overridden.
//
// Pagination: [Paginate] clamps page and limit against the configured maximum
// and slices one page out of the collection. Out-of-range pages are empty, not
// errors.
//
// Envelope: [Envelope] pairs the human-readable text blocks with the
// machine-readable [Meta] (counts, pagination, echoed filters, items).
//
// Size guard: [ProcessResponse] measures the serialised text blocks, warns
// above a threshold and truncates above a hard limit. The bound is soft; a
// truncated response may still exceed the limit by a small margin.
//
// # Configuration
//
// Limits and toggles live in [Config]:
//
//	cfg := output.DefaultConfig()
//	cfg.MaxResponseSize = 20000  // characters
//	cfg.MaxDevicesPerPage = 10
//	cfg.EnableSmartDefaults = false
//
// # Usage Example
//
//	p := output.NewProcessor(cfg, logger)
//	display, _ := p.Defaults(ctx, "spruthub_list_accessories", len(filtered), requested)
//	resolved := p.Resolve(display)
//	page := output.Paginate(filtered, resolved.Page, resolved.Limit, p.Config().MaxDevicesPerPage)
//	...
//	return p.Finalize(ctx, "spruthub_list_accessories", envelope), nil
package output
