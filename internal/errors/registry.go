package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Runtime Errors (E101-E199)
	// ============================================

	"E101": {
		Category: CategoryRuntime,
		Message:  "Tooltip shown without an anchor",
		Detail:   "A show trigger reached a tooltip whose target is nil. The tooltip had no preceding sibling when it was attached and no target was assigned explicitly, so there is nothing to position against.",
		DocURL:   "https://vango.dev/docs/rating/errors/E101",
	},
	"E102": {
		Category: CategoryRuntime,
		Message:  "Tooltip placement failed",
		Detail:   "The geometry pass could not measure the anchor or the tooltip. The tooltip stays visible at its last position.",
		DocURL:   "https://vango.dev/docs/rating/errors/E102",
	},
	"E103": {
		Category: CategoryRuntime,
		Message:  "Placement reset limit reached",
		Detail:   "Placement middleware kept requesting a different placement. The last computed coordinates were used.",
		DocURL:   "https://vango.dev/docs/rating/errors/E103",
	},

	// ============================================
	// Validation Errors (E201-E299)
	// ============================================

	"E201": {
		Category: CategoryValidation,
		Message:  "Unknown star size",
		Detail:   "Star sizes are s, m and l. Unrecognized values render at the small size (16px).",
		DocURL:   "https://vango.dev/docs/rating/errors/E201",
	},

	// ============================================
	// Config Errors (E301-E399)
	// ============================================

	"E301": {
		Category: CategoryConfig,
		Message:  "Invalid configuration file",
		Detail:   "rating.json or rating.yaml exists but could not be read or parsed.",
		DocURL:   "https://vango.dev/docs/rating/errors/E301",
	},
	"E302": {
		Category: CategoryConfig,
		Message:  "Configuration value out of range",
		Detail:   "A configuration value failed validation. Offsets must not be negative and ports must be between 1 and 65535.",
		DocURL:   "https://vango.dev/docs/rating/errors/E302",
	},

	// ============================================
	// Protocol Errors (E401-E499)
	// ============================================

	"E401": {
		Category: CategoryProtocol,
		Message:  "Malformed live message",
		Detail:   "The browser sent a frame that is not a valid JSON live message.",
		DocURL:   "https://vango.dev/docs/rating/errors/E401",
	},
	"E402": {
		Category: CategoryProtocol,
		Message:  "Unknown element id",
		Detail:   "A live message referenced an element the session does not know about.",
		DocURL:   "https://vango.dev/docs/rating/errors/E402",
	},
}

// Lookup returns the template registered for code.
func Lookup(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
