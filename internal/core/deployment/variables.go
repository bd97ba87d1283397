package deployment

import "regexp"

// =============================================================================
// Variable Expansion Functions
// =============================================================================

// varPlaceholderRegex matches ${VAR}, ${VAR:-default} and ${VAR:-}.
// Groups:
//   - Group 1: Variable name
//   - Group 2: ":-" marker, present when a default is given
//   - Group 3: Default value
var varPlaceholderRegex = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(:-([^}]*))?\}`)

// ExpandVariables replaces ${VAR} and ${VAR:-default} placeholders in a
// container command or environment value.
//
// Behavior:
//   - ${VAR} - replaced with variables["VAR"] if set, otherwise kept as-is
//   - ${VAR:-default} - replaced with variables["VAR"] if set, otherwise "default"
//   - Unmatched text is left unchanged
//
// Examples:
//
//	ExpandVariables("${ZK_HOST}", map[string]string{"ZK_HOST": "zk1"})
//	// Returns: "zk1"
//
//	ExpandVariables("${PORT:-2181}", nil)
//	// Returns: "2181"
//
//	ExpandVariables("${MISSING}", nil)
//	// Returns: "${MISSING}"
func ExpandVariables(value string, variables map[string]string) string {
	return varPlaceholderRegex.ReplaceAllStringFunc(value, func(match string) string {
		submatch := varPlaceholderRegex.FindStringSubmatch(match)
		if val, ok := variables[submatch[1]]; ok {
			return val
		}
		if submatch[2] != "" {
			return submatch[3]
		}
		return match
	})
}
