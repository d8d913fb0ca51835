package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Patch Errors (E100-E119)
	// ============================================

	"E100": {
		Category: CategoryPatch,
		Message:  "DOM mutation rejected",
		Detail:   "The real tree refused a mutation while patches were applied. The tree may be partially updated.",
	},
	"E101": {
		Category: CategoryDOM,
		Message:  "Invalid attribute name",
		Detail:   "Attribute names must be non-empty and may not contain whitespace, quotes, '>', '/', '=' or '<'.",
	},
	"E102": {
		Category: CategoryDOM,
		Message:  "Node is not a child",
		Detail:   "A reference or removed node was expected to be a child of the target node.",
	},
	"E103": {
		Category: CategoryDOM,
		Message:  "Node has no parent",
		Detail:   "The node must be attached to a parent before it can be replaced or used as an anchor.",
	},
	"E110": {
		Category: CategoryPatch,
		Message:  "Node creation failed",
		Detail:   "A real node could not be built from a virtual node.",
	},
	"E111": {
		Category: CategoryPatch,
		Message:  "Patched tree does not match",
		Detail:   "After applying the patches the real tree serializes differently from the new virtual tree.",
	},

	// ============================================
	// Config Errors (E120-E129)
	// ============================================

	"E120": {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
		Detail:   "No vdom.json, vdom.yaml or vdom.yml was found in the directory or any parent.",
	},
	"E121": {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
		Detail:   "A configuration value is out of range or has an unknown setting.",
	},
	"E122": {
		Category: CategoryConfig,
		Message:  "Configuration parse error",
		Detail:   "The configuration file is not valid JSON or YAML.",
	},

	// ============================================
	// Input Errors (E130-E149)
	// ============================================

	"E130": {
		Category: CategoryParse,
		Message:  "HTML parse error",
		Detail:   "The input could not be turned into a single virtual element.",
	},
	"E140": {
		Category: CategoryCLI,
		Message:  "Invalid command input",
		Detail:   "A command argument or input file could not be used.",
	},
}

// GetAllCodes returns all registered error codes in ascending order.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
